package content

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mechtronglobal/backend/server/handler/common"
	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/server/state"
	store "github.com/mechtronglobal/backend/storage/content"
)

func HandleListTestimonials(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, pagination, err := st.ContentStore.List(r.Context(), store.CollectionTestimonials, listFilter(r))
		if err != nil {
			common.LogAndWriteError(w, r, "list testimonials", err)
			return
		}

		testimonials, err := decodeDocs[store.Testimonial](docs)
		if err != nil {
			common.LogAndWriteError(w, r, "list testimonials", err)
			return
		}

		resp.WriteDataPage(w, testimonials, pagination)
	}
}

func HandleCreateTestimonial(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var testimonial store.Testimonial
		if err := decodeJSON(w, r, &testimonial); err != nil {
			resp.WriteInvalidRequest(w, err.Error())
			return
		}

		if !validateTestimonial(w, &testimonial) {
			return
		}

		testimonial.ID = uuid.New().String()
		if testimonial.Rating == 0 {
			testimonial.Rating = 5
		}
		now := time.Now().UTC()
		testimonial.CreatedAt = now
		testimonial.UpdatedAt = now

		doc, err := store.MarshalDoc(testimonial.ID, "", "", testimonial.Featured, &testimonial)
		if err != nil {
			common.LogAndWriteError(w, r, "create testimonial", err)
			return
		}

		if err := st.ContentStore.Insert(r.Context(), store.CollectionTestimonials, doc); err != nil {
			common.LogAndWriteError(w, r, "create testimonial", err)
			return
		}

		resp.WriteDataCreated(w, testimonial)
	}
}

func HandleUpdateTestimonial(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		existing, err := st.ContentStore.Get(r.Context(), store.CollectionTestimonials, id)
		if err != nil {
			common.LogAndWriteError(w, r, "update testimonial", err)
			return
		}

		var testimonial store.Testimonial
		if err := decodeJSON(w, r, &testimonial); err != nil {
			resp.WriteInvalidRequest(w, err.Error())
			return
		}

		if !validateTestimonial(w, &testimonial) {
			return
		}

		testimonial.ID = id
		testimonial.CreatedAt = existing.CreatedAt
		testimonial.UpdatedAt = time.Now().UTC()

		doc, err := store.MarshalDoc(testimonial.ID, "", "", testimonial.Featured, &testimonial)
		if err != nil {
			common.LogAndWriteError(w, r, "update testimonial", err)
			return
		}

		if err := st.ContentStore.Update(r.Context(), store.CollectionTestimonials, doc); err != nil {
			common.LogAndWriteError(w, r, "update testimonial", err)
			return
		}

		resp.WriteData(w, testimonial)
	}
}

func HandleDeleteTestimonial(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.ContentStore.Delete(r.Context(), store.CollectionTestimonials, chi.URLParam(r, "id")); err != nil {
			common.LogAndWriteError(w, r, "delete testimonial", err)
			return
		}

		resp.WriteData(w, nil)
	}
}

func validateTestimonial(w http.ResponseWriter, testimonial *store.Testimonial) bool {
	switch {
	case testimonial.Quote == "":
		writeRequiredFieldError(w, "quote")
	case testimonial.Author == "":
		writeRequiredFieldError(w, "author")
	case testimonial.Rating < 0 || testimonial.Rating > 5:
		resp.WriteInvalidRequest(w, "rating must be between 1 and 5")
	default:
		return true
	}

	return false
}
