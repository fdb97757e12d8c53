package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/studocs/studocs-backend/internal/documents"
	"github.com/studocs/studocs-backend/pkg/enums"
	pkgerrors "github.com/studocs/studocs-backend/pkg/errors"
	"github.com/studocs/studocs-backend/pkg/logger"
	"github.com/studocs/studocs-backend/pkg/pagination"
)

type testDocumentsService struct {
	createFn func(ctx context.Context, input documents.CreateInput) (*documents.DocumentDTO, error)
	listFn   func(ctx context.Context, params documents.ListParams) (*documents.ListResult, error)
}

func (s *testDocumentsService) Create(ctx context.Context, input documents.CreateInput) (*documents.DocumentDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &documents.DocumentDTO{}, nil
}

func (s *testDocumentsService) List(ctx context.Context, params documents.ListParams) (*documents.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &documents.ListResult{}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestDocumentCreateSuccess(t *testing.T) {
	var got documents.CreateInput
	svc := &testDocumentsService{
		createFn: func(_ context.Context, input documents.CreateInput) (*documents.DocumentDTO, error) {
			got = input
			return &documents.DocumentDTO{ID: 7, Title: input.Title, Level: input.Level}, nil
		},
	}

	body := `{
		"title": "Calculus cheat sheet",
		"level": "L2",
		"fileUrl": "https://files.example.com/calc.pdf",
		"filename": "calc.pdf",
		"fileType": "application/pdf",
		"uploaderExternalId": "ext-1",
		"uploaderName": "Alice"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", strings.NewReader(body))
	resp := httptest.NewRecorder()
	DocumentCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
	if got.Level != enums.LevelL2 || got.UploaderNameHint != "Alice" {
		t.Fatalf("unexpected input passed to service: %+v", got)
	}

	var envelope struct {
		Data documents.DocumentDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != 7 {
		t.Fatalf("unexpected data: %+v", envelope.Data)
	}
}

func TestDocumentCreateRejectsUnknownLevel(t *testing.T) {
	called := false
	svc := &testDocumentsService{
		createFn: func(context.Context, documents.CreateInput) (*documents.DocumentDTO, error) {
			called = true
			return nil, nil
		},
	}

	body := `{
		"title": "x",
		"level": "PhD",
		"fileUrl": "https://files.example.com/x.pdf",
		"filename": "x.pdf",
		"uploaderExternalId": "ext-1"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", strings.NewReader(body))
	resp := httptest.NewRecorder()
	DocumentCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if called {
		t.Fatal("service must not be called for an unknown level")
	}
}

func TestDocumentCreateRejectsMissingFields(t *testing.T) {
	svc := &testDocumentsService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", strings.NewReader(`{"title": "only a title"}`))
	resp := httptest.NewRecorder()
	DocumentCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
	if _, ok := envelope.Error.Details["fileUrl"]; !ok {
		t.Fatalf("expected fileUrl in details, got %v", envelope.Error.Details)
	}
}

func TestDocumentListDefaults(t *testing.T) {
	var got documents.ListParams
	svc := &testDocumentsService{
		listFn: func(_ context.Context, params documents.ListParams) (*documents.ListResult, error) {
			got = params
			return &documents.ListResult{
				Documents:  []documents.DocumentDTO{},
				Pagination: pagination.NewMeta(params.Page, params.PageSize, 0),
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	DocumentList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	if got.Level != nil {
		t.Fatalf("expected no level filter, got %v", got.Level)
	}
	if got.Page != pagination.DefaultPage || got.PageSize != 0 {
		t.Fatalf("expected default page and unset pageSize, got %+v", got)
	}
}

func TestDocumentListLevelFilter(t *testing.T) {
	var got documents.ListParams
	svc := &testDocumentsService{
		listFn: func(_ context.Context, params documents.ListParams) (*documents.ListResult, error) {
			got = params
			return &documents.ListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents?level=M1&page=2&pageSize=5", nil)
	resp := httptest.NewRecorder()
	DocumentList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got.Level == nil || *got.Level != enums.LevelM1 {
		t.Fatalf("expected M1 filter, got %v", got.Level)
	}
	if got.Page != 2 || got.PageSize != 5 {
		t.Fatalf("unexpected paging: %+v", got)
	}
}

func TestDocumentListRejectsBadQuery(t *testing.T) {
	for name, target := range map[string]string{
		"unknown level":    "/api/v1/documents?level=kindergarten",
		"zero page":        "/api/v1/documents?page=0",
		"negative page":    "/api/v1/documents?page=-2",
		"non-numeric size": "/api/v1/documents?pageSize=lots",
	} {
		t.Run(name, func(t *testing.T) {
			called := false
			svc := &testDocumentsService{
				listFn: func(context.Context, documents.ListParams) (*documents.ListResult, error) {
					called = true
					return &documents.ListResult{}, nil
				},
			}

			req := httptest.NewRequest(http.MethodGet, target, nil)
			resp := httptest.NewRecorder()
			DocumentList(svc, testLogger())(resp, req)

			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", resp.Code, resp.Body.String())
			}
			if called {
				t.Fatal("service must not be called for invalid query input")
			}
		})
	}
}

func TestDocumentListServiceErrorMapsToStatus(t *testing.T) {
	svc := &testDocumentsService{
		listFn: func(context.Context, documents.ListParams) (*documents.ListResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "store down")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	DocumentList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
