package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Webhook      WebhookConfig
	Listing      ListingConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STUDOCS_APP_ENV" required:"true"`
	Port         string `envconfig:"STUDOCS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STUDOCS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STUDOCS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STUDOCS_DB_DSN"`
	Driver string `envconfig:"STUDOCS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STUDOCS_DB_HOST"`
	LegacyPort     int    `envconfig:"STUDOCS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STUDOCS_DB_USER"`
	LegacyPassword string `envconfig:"STUDOCS_DB_PASSWORD"`
	LegacyName     string `envconfig:"STUDOCS_DB_NAME"`
	LegacySSLMode  string `envconfig:"STUDOCS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STUDOCS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STUDOCS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STUDOCS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STUDOCS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STUDOCS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STUDOCS_REDIS_ADDR"`
	Password     string        `envconfig:"STUDOCS_REDIS_PASSWORD"`
	DB           int           `envconfig:"STUDOCS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STUDOCS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STUDOCS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STUDOCS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STUDOCS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STUDOCS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// WebhookConfig covers the identity-provider webhook consumer.
type WebhookConfig struct {
	SigningSecret  string        `envconfig:"STUDOCS_WEBHOOK_SIGNING_SECRET" required:"true"`
	IdempotencyTTL time.Duration `envconfig:"STUDOCS_WEBHOOK_IDEMPOTENCY_TTL" default:"720h"`
}

// ListingConfig bounds document listing page sizes.
type ListingConfig struct {
	DefaultPageSize int `envconfig:"STUDOCS_LISTING_DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize     int `envconfig:"STUDOCS_LISTING_MAX_PAGE_SIZE" default:"100"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STUDOCS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STUDOCS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" {
		return nil
	}
	if useSQLite {
		db.DSN = "file:studocs.db?cache=shared"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
