package webhooks

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/studocs/studocs-backend/api/responses"
	identitywebhook "github.com/studocs/studocs-backend/internal/webhooks/identity"
	pkgerrors "github.com/studocs/studocs-backend/pkg/errors"
	"github.com/studocs/studocs-backend/pkg/logger"
)

const messageIDHeader = "svix-id"

type IdentityWebhookService interface {
	HandleEvent(ctx context.Context, event *identitywebhook.Event) error
}

type identityWebhookGuard interface {
	CheckAndMark(ctx context.Context, messageID string) (bool, error)
	Delete(ctx context.Context, messageID string) error
}

// IdentityWebhook consumes identity-provider user lifecycle events.
func IdentityWebhook(svc IdentityWebhookService, verifier identitywebhook.Verifier, guard identityWebhookGuard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}
		if verifier == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook verifier unavailable"))
			return
		}
		if guard == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "idempotency guard unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}

		event, err := verifier.Verify(payload, r.Header)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithExternalUserID(ctx, event.Data.ID)
		}

		messageID := r.Header.Get(messageIDHeader)
		if messageID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "webhook message id missing"))
			return
		}

		alreadyProcessed, err := guard.CheckAndMark(ctx, messageID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
			return
		}
		if alreadyProcessed {
			responses.WriteSuccess(w, nil)
			return
		}

		if err := svc.HandleEvent(ctx, event); err != nil {
			_ = guard.Delete(ctx, messageID)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, fmt.Sprintf("identity event %s processed", messageID))
		}
		responses.WriteSuccess(w, nil)
	}
}
