package controllers

import (
	"net/http"
	"strings"

	"github.com/studocs/studocs-backend/api/responses"
	"github.com/studocs/studocs-backend/api/validators"
	"github.com/studocs/studocs-backend/internal/documents"
	"github.com/studocs/studocs-backend/pkg/enums"
	pkgerrors "github.com/studocs/studocs-backend/pkg/errors"
	"github.com/studocs/studocs-backend/pkg/logger"
	"github.com/studocs/studocs-backend/pkg/pagination"
)

const maxQueryInt = 1 << 30

type documentCreateRequest struct {
	Title              string `json:"title" validate:"required"`
	Description        string `json:"description"`
	Level              string `json:"level" validate:"required"`
	FileURL            string `json:"fileUrl" validate:"required,url"`
	Filename           string `json:"filename" validate:"required"`
	FileType           string `json:"fileType"`
	UploaderExternalID string `json:"uploaderExternalId" validate:"required"`
	UploaderName       string `json:"uploaderName"`
}

func (r documentCreateRequest) toInput() (documents.CreateInput, error) {
	level, err := enums.ParseLevel(strings.TrimSpace(r.Level))
	if err != nil {
		return documents.CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid level").
			WithDetails(map[string]any{"allowed": enums.Levels()})
	}

	return documents.CreateInput{
		Title:              r.Title,
		Description:        r.Description,
		Level:              level,
		FileURL:            r.FileURL,
		Filename:           r.Filename,
		FileType:           r.FileType,
		UploaderExternalID: r.UploaderExternalID,
		UploaderNameHint:   r.UploaderName,
	}, nil
}

// DocumentCreate registers metadata for an already-uploaded file.
func DocumentCreate(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "documents service unavailable"))
			return
		}

		var payload documentCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// DocumentList returns one page of the registry, newest first.
func DocumentList(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "documents service unavailable"))
			return
		}

		params := documents.ListParams{}

		if raw := strings.TrimSpace(r.URL.Query().Get("level")); raw != "" {
			level, err := enums.ParseLevel(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid level").
					WithDetails(map[string]any{"allowed": enums.Levels()}))
				return
			}
			params.Level = &level
		}

		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, maxQueryInt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.Page = page

		// Absent pageSize stays zero so the service applies its configured
		// default; oversized values are capped by the service, not rejected.
		pageSize, err := validators.ParseQueryInt(r, "pageSize", 0, 1, maxQueryInt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.PageSize = pageSize

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
