package controllers

import (
	"net/http"

	"github.com/studocs/studocs-backend/api/responses"
	"github.com/studocs/studocs-backend/pkg/config"
	"github.com/studocs/studocs-backend/pkg/db"
	pkgerrors "github.com/studocs/studocs-backend/pkg/errors"
	"github.com/studocs/studocs-backend/pkg/logger"
	"github.com/studocs/studocs-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Studocs-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
// Ping failures are logged with the real error; the response carries only a
// per-check status so connection strings never leave the process.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Studocs-Env", cfg.App.Env)

		checks := map[string]string{"db": "ok", "redis": "ok"}
		failed := false

		if dbP == nil {
			checks["db"] = "not configured"
			failed = true
		} else if err := dbP.Ping(ctx); err != nil {
			if logg != nil {
				logg.Error(ctx, "db ping failed", err)
			}
			checks["db"] = "unavailable"
			failed = true
		}

		if redisP == nil {
			checks["redis"] = "not configured"
			failed = true
		} else if err := redisP.Ping(ctx); err != nil {
			if logg != nil {
				logg.Error(ctx, "redis ping failed", err)
			}
			checks["redis"] = "unavailable"
			failed = true
		}

		if failed {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "not ready").
				WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
