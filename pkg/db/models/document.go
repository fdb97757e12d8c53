package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/studocs/studocs-backend/pkg/enums"
)

// Document captures metadata for an uploaded course document. Rows are
// create-only; the file bytes live in external blob storage behind FileURL.
//
// UploadedByID deliberately carries no database-level foreign key: deleting a
// user through the identity webhook orphans their documents instead of
// blocking the delete or cascading.
type Document struct {
	ID             int64       `gorm:"column:id;primaryKey;autoIncrement"`
	Title          string      `gorm:"column:title;not null"`
	Description    string      `gorm:"column:description;not null;default:''"`
	Level          enums.Level `gorm:"column:level;type:text;not null;index"`
	FileURL        string      `gorm:"column:file_url;not null"`
	Filename       string      `gorm:"column:filename;not null"`
	FileType       string      `gorm:"column:file_type;not null"`
	UploadedByID   uuid.UUID   `gorm:"column:uploaded_by_id;type:uuid;not null;index"`
	UploadedByName string      `gorm:"column:uploaded_by_name;not null"`
	CreatedAt      time.Time   `gorm:"column:created_at;autoCreateTime;index:idx_documents_created_at,sort:desc"`
}
