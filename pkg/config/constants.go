package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "STUDOCS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv        = "STUDOCS_APP_ENV"
	EnvPort          = "STUDOCS_APP_PORT"
	EnvDBDSN         = "STUDOCS_DB_DSN"
	EnvDBHost        = "STUDOCS_DB_HOST"
	EnvDBUser        = "STUDOCS_DB_USER"
	EnvDBName        = "STUDOCS_DB_NAME"
	EnvRedisURL      = "STUDOCS_REDIS_URL"
	EnvWebhookSecret = "STUDOCS_WEBHOOK_SIGNING_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
