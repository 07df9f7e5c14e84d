package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/storage/content"
	"github.com/mechtronglobal/backend/storage/media"
)

func writeError(t *testing.T, err error) (*httptest.ResponseRecorder, resp.ErrorResponse) {
	t.Helper()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projects/p1", nil)

	LogAndWriteError(rr, req, "get project", err)

	var body resp.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	return rr, body
}

func TestLogAndWriteError_NotFound(t *testing.T) {
	rr, body := writeError(t, content.ErrNotFound)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if body.Error != "not found" {
		t.Fatalf("unexpected message %q", body.Error)
	}
}

func TestLogAndWriteError_NotConfigured(t *testing.T) {
	rr, body := writeError(t, media.ErrNotConfigured)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body.Error != "Remote storage not configured" {
		t.Fatalf("unexpected message %q", body.Error)
	}
}

func TestLogAndWriteError_UnknownErrorHidesDetail(t *testing.T) {
	rr, body := writeError(t, errors.New("pq: connection reset"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if body.Error != "get project failed" {
		t.Fatalf("internal detail leaked: %q", body.Error)
	}
}
