package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/studocs/studocs-backend/pkg/db/models"
)

// UserDTO is the transport shape of a directory entry.
type UserDTO struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      *string   `json:"email,omitempty"`
	Name       string    `json:"name"`
	AvatarURL  *string   `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		Name:       u.Name,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
