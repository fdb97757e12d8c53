package documents

import (
	"context"

	"github.com/studocs/studocs-backend/pkg/db/models"
	"github.com/studocs/studocs-backend/pkg/enums"
	"gorm.io/gorm"
)

type listQuery struct {
	level  *enums.Level
	offset int
	limit  int
}

// Repository exposes document metadata persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a documents repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx persists a document record on the caller's transaction.
// Documents are create-only; there is no update or delete path.
func (r *Repository) CreateWithTx(ctx context.Context, tx *gorm.DB, doc *models.Document) (*models.Document, error) {
	if err := tx.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns one page of documents newest-first plus the total row count
// for the same filter.
func (r *Repository) List(ctx context.Context, query listQuery) ([]models.Document, int64, error) {
	scope := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&models.Document{})
		if query.level != nil {
			tx = tx.Where("level = ?", *query.level)
		}
		return tx
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Document
	if err := scope().
		Order("created_at DESC, id DESC").
		Offset(query.offset).
		Limit(query.limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
