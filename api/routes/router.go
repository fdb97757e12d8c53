package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studocs/studocs-backend/api/controllers"
	webhookcontrollers "github.com/studocs/studocs-backend/api/controllers/webhooks"
	"github.com/studocs/studocs-backend/api/middleware"
	"github.com/studocs/studocs-backend/internal/documents"
	"github.com/studocs/studocs-backend/internal/users"
	identitywebhook "github.com/studocs/studocs-backend/internal/webhooks/identity"
	"github.com/studocs/studocs-backend/pkg/config"
	"github.com/studocs/studocs-backend/pkg/db"
	"github.com/studocs/studocs-backend/pkg/logger"
	"github.com/studocs/studocs-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	usersService users.Service,
	documentsService documents.Service,
	identityService webhookcontrollers.IdentityWebhookService,
	identityVerifier identitywebhook.Verifier,
	identityGuard *identitywebhook.IdempotencyGuard,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/identity", webhookcontrollers.IdentityWebhook(identityService, identityVerifier, identityGuard, logg))
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/sync", controllers.UserSync(usersService, logg))
	})

	r.Route("/api/v1/documents", func(r chi.Router) {
		r.Get("/", controllers.DocumentList(documentsService, logg))
		r.Post("/", controllers.DocumentCreate(documentsService, logg))
	})

	return r
}
