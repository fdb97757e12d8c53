package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/studocs/studocs-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertFields carries the profile values a sync call supplies. Nil means the
// caller did not supply the field; a pointer to the empty string means the
// caller explicitly cleared it.
type UpsertFields struct {
	Email     *string
	Name      *string
	AvatarURL *string
}

// Repository exposes user-directory persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert atomically creates or overwrites the row keyed by external_id. The
// unique index on external_id is what makes concurrent calls safe: the insert
// and the conflict update run as a single statement.
func (r *Repository) Upsert(ctx context.Context, externalID string, defaultName string, fields UpsertFields) (*models.User, error) {
	user := models.User{
		ID:         uuid.New(),
		ExternalID: externalID,
		Name:       defaultName,
	}
	assign := []string{"updated_at"}
	if fields.Email != nil {
		user.Email = fields.Email
		assign = append(assign, "email")
	}
	if fields.Name != nil {
		user.Name = *fields.Name
		assign = append(assign, "name")
	}
	if fields.AvatarURL != nil {
		user.AvatarURL = fields.AvatarURL
		assign = append(assign, "avatar_url")
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns(assign),
		}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}
	return r.FindByExternalID(ctx, externalID)
}

// EnsureByExternalIDWithTx inserts the row if absent and returns whichever
// row ends up stored, all on the caller's transaction. An existing user is
// never modified, so an upload cannot rename someone who already synced a
// profile. The re-read goes through the same transaction so an uncommitted
// insert is visible to it.
func (r *Repository) EnsureByExternalIDWithTx(ctx context.Context, tx *gorm.DB, externalID string, name string) (*models.User, error) {
	user := models.User{
		ID:         uuid.New(),
		ExternalID: externalID,
		Name:       name,
	}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}

	var stored models.User
	if err := tx.WithContext(ctx).Where("external_id = ?", externalID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindByExternalID retrieves the user matching the identity-provider id.
func (r *Repository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs loads users by primary key, for uploader enrichment.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteByExternalID removes the user row. Documents referencing the user are
// left in place.
func (r *Repository) DeleteByExternalID(ctx context.Context, externalID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("external_id = ?", externalID).Delete(&models.User{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
