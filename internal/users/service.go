package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/studocs/studocs-backend/pkg/db"
	"github.com/studocs/studocs-backend/pkg/db/models"
	pkgerrors "github.com/studocs/studocs-backend/pkg/errors"
	"gorm.io/gorm"
)

// PlaceholderName is stored when the identity provider supplies no usable
// display name.
const PlaceholderName = "Student"

type directoryRepository interface {
	Upsert(ctx context.Context, externalID string, defaultName string, fields UpsertFields) (*models.User, error)
	EnsureByExternalIDWithTx(ctx context.Context, tx *gorm.DB, externalID string, name string) (*models.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
	DeleteByExternalID(ctx context.Context, externalID string) (bool, error)
}

// SyncInput carries one identity-provider profile snapshot. Nil pointers mean
// "not supplied"; the directory writes exactly what it is given.
type SyncInput struct {
	ExternalID string
	Email      *string
	Name       *string
	AvatarURL  *string
}

// Service maintains one local record per external identity.
type Service interface {
	Sync(ctx context.Context, input SyncInput) (*UserDTO, error)
	EnsureUserWithTx(ctx context.Context, tx *gorm.DB, externalID, nameHint string) (*models.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*UserDTO, error)
	LookupByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error)
	DeleteByExternalID(ctx context.Context, externalID string) error
}

type service struct {
	repo directoryRepository
}

// NewService constructs the user directory service.
func NewService(repo directoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

// Sync upserts the directory entry keyed by ExternalID. Safe to call
// concurrently for the same id; the row's uniqueness constraint guarantees a
// single winner.
func (s *service) Sync(ctx context.Context, input SyncInput) (*UserDTO, error) {
	externalID := strings.TrimSpace(input.ExternalID)
	if externalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "externalId is required")
	}

	fields := UpsertFields{
		Email:     input.Email,
		AvatarURL: input.AvatarURL,
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			name = PlaceholderName
		}
		fields.Name = &name
	}

	user, err := s.repo.Upsert(ctx, externalID, PlaceholderName, fields)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "upsert user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert user")
	}
	return FromModel(user), nil
}

// EnsureUserWithTx returns the directory entry for externalID, creating it
// with the hinted name when absent. Existing entries are returned untouched.
// Runs on the caller's transaction so the entry can be rolled back with the
// write that needed it.
func (s *service) EnsureUserWithTx(ctx context.Context, tx *gorm.DB, externalID, nameHint string) (*models.User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "externalId is required")
	}

	name := strings.TrimSpace(nameHint)
	if name == "" {
		name = PlaceholderName
	}

	user, err := s.repo.EnsureByExternalIDWithTx(ctx, tx, externalID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure user")
	}
	return user, nil
}

func (s *service) GetByExternalID(ctx context.Context, externalID string) (*UserDTO, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "externalId is required")
	}

	user, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return FromModel(user), nil
}

// LookupByIDs resolves users by primary key for listing enrichment. Unknown
// ids are simply absent from the result.
func (s *service) LookupByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error) {
	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup users")
	}
	byID := make(map[uuid.UUID]models.User, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	return byID, nil
}

func (s *service) DeleteByExternalID(ctx context.Context, externalID string) error {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "externalId is required")
	}

	deleted, err := s.repo.DeleteByExternalID(ctx, externalID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}
