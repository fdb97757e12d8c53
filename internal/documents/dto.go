package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/studocs/studocs-backend/pkg/db/models"
	"github.com/studocs/studocs-backend/pkg/enums"
)

// UploaderDTO carries the live directory fields for a document's uploader.
// It is absent when the uploader was deleted after the upload.
type UploaderDTO struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// DocumentDTO is the transport shape of a registry entry. UploadedByName is
// the name frozen at upload time; Uploader reflects the directory now.
type DocumentDTO struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Level          enums.Level  `json:"level"`
	FileURL        string       `json:"fileUrl"`
	Filename       string       `json:"filename"`
	FileType       string       `json:"fileType"`
	UploadedByID   uuid.UUID    `json:"uploadedById"`
	UploadedByName string       `json:"uploadedByName"`
	Uploader       *UploaderDTO `json:"uploader,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}

func fromModel(d models.Document) DocumentDTO {
	return DocumentDTO{
		ID:             d.ID,
		Title:          d.Title,
		Description:    d.Description,
		Level:          d.Level,
		FileURL:        d.FileURL,
		Filename:       d.Filename,
		FileType:       d.FileType,
		UploadedByID:   d.UploadedByID,
		UploadedByName: d.UploadedByName,
		CreatedAt:      d.CreatedAt,
	}
}
