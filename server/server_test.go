package server

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mechtronglobal/backend/config"
	"github.com/mechtronglobal/backend/server/auth"
	"github.com/mechtronglobal/backend/server/state"
	"github.com/mechtronglobal/backend/storage/content"
	"github.com/mechtronglobal/backend/storage/media"
)

type fakeMediaStore struct {
	kind    string
	deleted []string
}

func (f *fakeMediaStore) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*media.StoredAsset, error) {
	return &media.StoredAsset{Filename: header.Filename}, nil
}

func (f *fakeMediaStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeMediaStore) Kind() string { return f.kind }

type emptyContentStore struct{}

func (emptyContentStore) List(ctx context.Context, collection string, f content.Filter) ([]content.Document, *content.Pagination, error) {
	return nil, &content.Pagination{Page: 1, Limit: 20}, nil
}
func (emptyContentStore) Get(ctx context.Context, collection string, id string) (*content.Document, error) {
	return nil, content.ErrNotFound
}
func (emptyContentStore) GetBySlug(ctx context.Context, collection string, slug string) (*content.Document, error) {
	return nil, content.ErrNotFound
}
func (emptyContentStore) Insert(ctx context.Context, collection string, doc *content.Document) error {
	return nil
}
func (emptyContentStore) Update(ctx context.Context, collection string, doc *content.Document) error {
	return content.ErrNotFound
}
func (emptyContentStore) Upsert(ctx context.Context, collection string, doc *content.Document) error {
	return nil
}
func (emptyContentStore) Delete(ctx context.Context, collection string, id string) error {
	return content.ErrNotFound
}
func (emptyContentStore) Close() error { return nil }

func routerState(t *testing.T, strategy string) *state.ServerState {
	t.Helper()

	return &state.ServerState{
		Cfg: &config.Config{
			Server: config.Server{
				Limits: config.ServerLimits{
					MaxFileSize:     1 << 20,
					MaxFiles:        3,
					MaxMultipartMem: 4 << 20,
				},
			},
			Auth: config.Auth{
				JwtSecret:       "0123456789abcdef0123456789abcdef",
				TokenTTLMinutes: 60,
			},
			Media: config.Media{
				Strategy: strategy,
				Local: &config.LocalMediaStrategy{
					UploadsDir: t.TempDir(),
					PublicPath: "/uploads",
				},
			},
		},
		MediaStore:   &fakeMediaStore{kind: strategy},
		ContentStore: emptyContentStore{},
	}
}

func TestRouter_HealthReportsStrategy(t *testing.T) {
	r := NewRouter(routerState(t, config.MediaStrategyS3))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Status != "ok" || body.Storage != "s3" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRouter_PublicReadsAreOpen(t *testing.T) {
	r := NewRouter(routerState(t, config.MediaStrategyLocal))

	for _, path := range []string{"/api/projects", "/api/services", "/api/testimonials", "/api/site-settings"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rr.Code)
		}
	}
}

func TestRouter_MutationsRequireToken(t *testing.T) {
	r := NewRouter(routerState(t, config.MediaStrategyLocal))

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/projects/p1"},
		{http.MethodDelete, "/api/projects/p1"},
		{http.MethodPost, "/api/services"},
		{http.MethodPost, "/api/testimonials"},
		{http.MethodPut, "/api/testimonials/t1"},
		{http.MethodGet, "/api/inquiries"},
		{http.MethodPatch, "/api/inquiries/i1/status"},
		{http.MethodPut, "/api/site-settings"},
		{http.MethodPost, "/api/upload/single"},
		{http.MethodPost, "/api/upload/multiple"},
		{http.MethodDelete, "/api/upload/s3/key.jpg"},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rr.Code)
		}
	}
}

func TestRouter_PublicInquirySubmission(t *testing.T) {
	r := NewRouter(routerState(t, config.MediaStrategyLocal))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries",
		strings.NewReader(`{"name":"Alex","email":"alex@example.com","message":"hello"}`))
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRouter_UploadConfigIsPublic(t *testing.T) {
	r := NewRouter(routerState(t, config.MediaStrategyLocal))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/upload/config", nil)
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRouter_AuthorizedMutationPassesGuard(t *testing.T) {
	st := routerState(t, config.MediaStrategyLocal)
	r := NewRouter(st)

	token, err := auth.IssueToken(&st.Cfg.Auth, "admin")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/inquiries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRouter_StaticUploadsOnlyUnderLocalStrategy(t *testing.T) {
	local := NewRouter(routerState(t, config.MediaStrategyLocal))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/uploads/missing.jpg", nil)
	local.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing file, got %d", rr.Code)
	}

	remote := NewRouter(routerState(t, config.MediaStrategyS3))

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/uploads/missing.jpg", nil)
	remote.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without static route, got %d", rr.Code)
	}
}
