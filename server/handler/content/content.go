// Package content exposes the CRUD handlers for the site's editorial
// entities: projects, services, testimonials, inquiries, and settings.
package content

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mechtronglobal/backend/server/resp"
	store "github.com/mechtronglobal/backend/storage/content"
)

const maxBodySize = 1 << 20

// decodeJSON reads a size-capped JSON request body into dst, rejecting
// unknown fields so typos surface instead of silently dropping data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

// listFilter builds a store filter from the common query parameters.
func listFilter(r *http.Request) store.Filter {
	q := r.URL.Query()

	f := store.Filter{
		Category: q.Get("category"),
		Page:     atoiDefault(q.Get("page"), 1),
		Limit:    atoiDefault(q.Get("limit"), 20),
	}
	if f.Category == "All" {
		f.Category = ""
	}
	if q.Get("featured") == "true" {
		featured := true
		f.Featured = &featured
	}

	return f
}

func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}

	return n
}

// decodeDocs unmarshals a page of documents into typed entities.
func decodeDocs[T any](docs []store.Document) ([]T, error) {
	entities := make([]T, 0, len(docs))
	for i := range docs {
		var entity T
		if err := store.UnmarshalDoc(&docs[i], &entity); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, nil
}

func writeRequiredFieldError(w http.ResponseWriter, field string) {
	resp.WriteInvalidRequest(w, fmt.Sprintf("%s is required", field))
}
