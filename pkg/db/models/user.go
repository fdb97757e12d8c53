package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors one identity-provider account. ExternalID is the stable id the
// provider assigns and is the natural key for every sync/upsert.
type User struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ExternalID string    `gorm:"column:external_id;not null;uniqueIndex"`
	Email      *string   `gorm:"column:email"`
	Name       string    `gorm:"column:name;not null"`
	AvatarURL  *string   `gorm:"column:avatar_url"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
