package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studocs/studocs-backend/internal/documents"
	"github.com/studocs/studocs-backend/internal/users"
	identitywebhook "github.com/studocs/studocs-backend/internal/webhooks/identity"
	"github.com/studocs/studocs-backend/pkg/config"
	"github.com/studocs/studocs-backend/pkg/db/models"
	"github.com/studocs/studocs-backend/pkg/logger"
	"github.com/studocs/studocs-backend/pkg/pagination"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type routerUsersService struct{}

func (routerUsersService) Sync(_ context.Context, input users.SyncInput) (*users.UserDTO, error) {
	return &users.UserDTO{ExternalID: input.ExternalID}, nil
}

func (routerUsersService) EnsureUserWithTx(context.Context, *gorm.DB, string, string) (*models.User, error) {
	return &models.User{}, nil
}

func (routerUsersService) GetByExternalID(context.Context, string) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

func (routerUsersService) LookupByIDs(context.Context, []uuid.UUID) (map[uuid.UUID]models.User, error) {
	return nil, nil
}

func (routerUsersService) DeleteByExternalID(context.Context, string) error { return nil }

type routerDocumentsService struct{}

func (routerDocumentsService) Create(context.Context, documents.CreateInput) (*documents.DocumentDTO, error) {
	return &documents.DocumentDTO{}, nil
}

func (routerDocumentsService) List(context.Context, documents.ListParams) (*documents.ListResult, error) {
	return &documents.ListResult{
		Documents:  []documents.DocumentDTO{},
		Pagination: pagination.NewMeta(1, 20, 0),
	}, nil
}

type routerIdentityService struct{}

func (routerIdentityService) HandleEvent(context.Context, *identitywebhook.Event) error { return nil }

type acceptAllVerifier struct{}

func (acceptAllVerifier) Verify([]byte, http.Header) (*identitywebhook.Event, error) {
	return &identitywebhook.Event{Type: identitywebhook.EventUserCreated, Data: identitywebhook.EventData{ID: "ext-1"}}, nil
}

type noopStore struct{}

func (noopStore) SetNX(context.Context, string, any, time.Duration) (bool, error) {
	return true, nil
}

func (noopStore) IdempotencyKey(scope, id string) string { return scope + ":" + id }

func (noopStore) Del(context.Context, ...string) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	guard, err := identitywebhook.NewIdempotencyGuard(noopStore{}, time.Minute, "identity")
	if err != nil {
		t.Fatalf("guard setup: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	return NewRouter(
		cfg,
		logg,
		okPinger{},
		okPinger{},
		routerUsersService{},
		routerDocumentsService{},
		routerIdentityService{},
		acceptAllVerifier{},
		guard,
	)
}

func TestRouterWiring(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/api/v1/documents", http.StatusOK},
		{http.MethodPost, "/api/v1/users/sync", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/users/sync", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.target, tc.status, rec.Code, rec.Body.String())
		}
	}
}

func TestRouterSetsRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header on every response")
	}
}
