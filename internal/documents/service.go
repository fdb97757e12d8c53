package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studocs/studocs-backend/pkg/config"
	"github.com/studocs/studocs-backend/pkg/db"
	"github.com/studocs/studocs-backend/pkg/db/models"
	"github.com/studocs/studocs-backend/pkg/enums"
	pkgerrors "github.com/studocs/studocs-backend/pkg/errors"
	"github.com/studocs/studocs-backend/pkg/pagination"
)

const (
	// AnonymousUploaderName is frozen into uploadedByName when neither the
	// request hint nor the directory yields a usable display name.
	AnonymousUploaderName = "Anonymous"

	// DefaultFileType is stored when the upload pipeline did not report a
	// content type.
	DefaultFileType = "application/octet-stream"
)

// allowedFileTypes is the PDF/Office set the upload pipeline produces.
var allowedFileTypes = map[string]struct{}{
	"application/pdf":               {},
	"application/msword":            {},
	"application/vnd.ms-powerpoint": {},
	"application/vnd.ms-excel":      {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {},
}

type documentRepository interface {
	CreateWithTx(ctx context.Context, tx *gorm.DB, doc *models.Document) (*models.Document, error)
	List(ctx context.Context, query listQuery) ([]models.Document, int64, error)
}

type uploaderDirectory interface {
	EnsureUserWithTx(ctx context.Context, tx *gorm.DB, externalID, nameHint string) (*models.User, error)
	LookupByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateInput carries one upload-completion record. The file bytes already
// live in external storage; this registers the metadata.
type CreateInput struct {
	Title              string
	Description        string
	Level              enums.Level
	FileURL            string
	Filename           string
	FileType           string
	UploaderExternalID string
	UploaderNameHint   string
}

// ListParams filters and pages the registry listing. A nil Level means no
// filter; zero Page/PageSize take the defaults.
type ListParams struct {
	Level    *enums.Level
	Page     int
	PageSize int
}

// ListResult is one page of documents plus its pagination metadata.
type ListResult struct {
	Documents  []DocumentDTO   `json:"documents"`
	Pagination pagination.Meta `json:"pagination"`
}

// Service is the document registry: create-only metadata records with a
// filtered, paginated listing.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*DocumentDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

// ServiceParams bundles the registry's dependencies. Listing bounds come from
// configuration; zero values fall back to the pagination package defaults.
type ServiceParams struct {
	Repo     documentRepository
	Users    uploaderDirectory
	TxRunner txRunner
	Listing  config.ListingConfig
}

type service struct {
	repo   documentRepository
	users  uploaderDirectory
	tx     txRunner
	bounds pagination.Bounds
}

// NewService constructs the document registry service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("documents repository required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users service required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:   params.Repo,
		users:  params.Users,
		tx:     params.TxRunner,
		bounds: pagination.NewBounds(params.Listing.DefaultPageSize, params.Listing.MaxPageSize),
	}, nil
}

// Create validates the record, resolves the uploader (creating a directory
// entry when the identity has never synced), and persists. Resolution and
// insert run in one transaction so a failed insert never leaves a stray
// directory entry. The uploader's display name is denormalized into the row
// so listings survive a later account deletion.
func (s *service) Create(ctx context.Context, input CreateInput) (*DocumentDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.Level.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid level").
			WithDetails(map[string]any{"allowed": enums.Levels()})
	}
	fileURL := strings.TrimSpace(input.FileURL)
	if fileURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fileUrl is required")
	}
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}
	uploaderExternalID := strings.TrimSpace(input.UploaderExternalID)
	if uploaderExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploaderExternalId is required")
	}

	fileType := strings.TrimSpace(input.FileType)
	if fileType == "" {
		fileType = DefaultFileType
	} else if _, ok := allowedFileTypes[fileType]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported fileType")
	}

	nameHint := strings.TrimSpace(input.UploaderNameHint)

	var dto DocumentDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		uploader, err := s.users.EnsureUserWithTx(ctx, tx, uploaderExternalID, nameHint)
		if err != nil {
			return err
		}

		uploadedByName := nameHint
		if uploadedByName == "" {
			uploadedByName = uploader.Name
		}
		if uploadedByName == "" {
			uploadedByName = AnonymousUploaderName
		}

		doc := &models.Document{
			Title:          title,
			Description:    strings.TrimSpace(input.Description),
			Level:          input.Level,
			FileURL:        fileURL,
			Filename:       filename,
			FileType:       fileType,
			UploadedByID:   uploader.ID,
			UploadedByName: uploadedByName,
		}
		created, err := s.repo.CreateWithTx(ctx, tx, doc)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "create document")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create document")
		}

		dto = fromModel(*created)
		dto.Uploader = &UploaderDTO{Name: uploader.Name, AvatarURL: uploader.AvatarURL}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create document")
	}

	return &dto, nil
}

// List returns one page of documents newest-first. Each row carries a live
// uploader block when the directory still knows the user; rows whose uploader
// was deleted keep only the frozen uploadedByName.
func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Level != nil && !params.Level.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid level").
			WithDetails(map[string]any{"allowed": enums.Levels()})
	}
	if params.Page < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page must not be negative")
	}
	if params.PageSize < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pageSize must not be negative")
	}

	page := pagination.NormalizePage(params.Page)
	pageSize := s.bounds.NormalizePageSize(params.PageSize)

	rows, total, err := s.repo.List(ctx, listQuery{
		level:  params.Level,
		offset: pagination.Offset(page, pageSize),
		limit:  pageSize,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list documents")
	}

	uploaderIDs := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.UploadedByID]; ok {
			continue
		}
		seen[row.UploadedByID] = struct{}{}
		uploaderIDs = append(uploaderIDs, row.UploadedByID)
	}
	uploaders, err := s.users.LookupByIDs(ctx, uploaderIDs)
	if err != nil {
		return nil, err
	}

	docs := make([]DocumentDTO, 0, len(rows))
	for _, row := range rows {
		dto := fromModel(row)
		if user, ok := uploaders[row.UploadedByID]; ok {
			dto.Uploader = &UploaderDTO{Name: user.Name, AvatarURL: user.AvatarURL}
		}
		docs = append(docs, dto)
	}

	return &ListResult{
		Documents:  docs,
		Pagination: pagination.NewMeta(page, pageSize, total),
	}, nil
}
