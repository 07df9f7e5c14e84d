package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	store "github.com/mechtronglobal/backend/storage/content"
)

func TestHandleCreateTestimonial_DefaultsRating(t *testing.T) {
	cs := newStubContentStore()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/testimonials",
		strings.NewReader(`{"quote":"Outstanding BIM delivery","author":"Sam Lee","company":"BuildCo"}`))

	HandleCreateTestimonial(testState(cs)).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var body struct {
		Data store.Testimonial `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Data.Rating != 5 {
		t.Fatalf("expected default rating 5, got %d", body.Data.Rating)
	}
}

func TestHandleCreateTestimonial_RejectsOutOfRangeRating(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/testimonials",
		strings.NewReader(`{"quote":"q","author":"a","rating":9}`))

	HandleCreateTestimonial(testState(newStubContentStore())).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleCreateTestimonial_RequiresQuoteAndAuthor(t *testing.T) {
	for _, body := range []string{`{"author":"a"}`, `{"quote":"q"}`} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/testimonials", strings.NewReader(body))

		HandleCreateTestimonial(testState(newStubContentStore())).ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rr.Code)
		}
	}
}

func TestHandleDeleteTestimonial_MissingIsNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/testimonials/missing", nil), "id", "missing")

	HandleDeleteTestimonial(testState(newStubContentStore())).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
