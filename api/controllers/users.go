package controllers

import (
	"net/http"

	"github.com/studocs/studocs-backend/api/responses"
	"github.com/studocs/studocs-backend/api/validators"
	"github.com/studocs/studocs-backend/internal/users"
	pkgerrors "github.com/studocs/studocs-backend/pkg/errors"
	"github.com/studocs/studocs-backend/pkg/logger"
)

type userSyncRequest struct {
	ExternalID string  `json:"externalId" validate:"required"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Name       *string `json:"name"`
	AvatarURL  *string `json:"avatarUrl" validate:"omitempty,url"`
}

func (r userSyncRequest) toInput() users.SyncInput {
	return users.SyncInput{
		ExternalID: r.ExternalID,
		Email:      r.Email,
		Name:       r.Name,
		AvatarURL:  r.AvatarURL,
	}
}

// UserSync upserts a directory entry from an identity-provider profile
// snapshot pushed by the frontend.
func UserSync(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var payload userSyncRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Sync(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}
