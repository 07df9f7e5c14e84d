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

func HandleListServices(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, pagination, err := st.ContentStore.List(r.Context(), store.CollectionServices, listFilter(r))
		if err != nil {
			common.LogAndWriteError(w, r, "list services", err)
			return
		}

		services, err := decodeDocs[store.Service](docs)
		if err != nil {
			common.LogAndWriteError(w, r, "list services", err)
			return
		}

		resp.WriteDataPage(w, services, pagination)
	}
}

func HandleGetService(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := st.ContentStore.Get(r.Context(), store.CollectionServices, chi.URLParam(r, "id"))
		if err != nil {
			common.LogAndWriteError(w, r, "get service", err)
			return
		}

		var service store.Service
		if err := store.UnmarshalDoc(doc, &service); err != nil {
			common.LogAndWriteError(w, r, "get service", err)
			return
		}

		resp.WriteData(w, service)
	}
}

func HandleGetServiceBySlug(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := st.ContentStore.GetBySlug(r.Context(), store.CollectionServices, chi.URLParam(r, "slug"))
		if err != nil {
			common.LogAndWriteError(w, r, "get service", err)
			return
		}

		var service store.Service
		if err := store.UnmarshalDoc(doc, &service); err != nil {
			common.LogAndWriteError(w, r, "get service", err)
			return
		}

		resp.WriteData(w, service)
	}
}

func HandleCreateService(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var service store.Service
		if err := decodeJSON(w, r, &service); err != nil {
			resp.WriteInvalidRequest(w, err.Error())
			return
		}

		if !validateService(w, &service) {
			return
		}

		service.ID = uuid.New().String()
		if service.Slug == "" {
			service.Slug = store.SlugFromTitle(service.Title)
		}
		now := time.Now().UTC()
		service.CreatedAt = now
		service.UpdatedAt = now

		doc, err := store.MarshalDoc(service.ID, service.Slug, service.Category, false, &service)
		if err != nil {
			common.LogAndWriteError(w, r, "create service", err)
			return
		}

		if err := st.ContentStore.Insert(r.Context(), store.CollectionServices, doc); err != nil {
			common.LogAndWriteError(w, r, "create service", err)
			return
		}

		resp.WriteDataCreated(w, service)
	}
}

func HandleUpdateService(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		existing, err := st.ContentStore.Get(r.Context(), store.CollectionServices, id)
		if err != nil {
			common.LogAndWriteError(w, r, "update service", err)
			return
		}

		var service store.Service
		if err := decodeJSON(w, r, &service); err != nil {
			resp.WriteInvalidRequest(w, err.Error())
			return
		}

		if !validateService(w, &service) {
			return
		}

		service.ID = id
		if service.Slug == "" {
			service.Slug = store.SlugFromTitle(service.Title)
		}
		service.CreatedAt = existing.CreatedAt
		service.UpdatedAt = time.Now().UTC()

		doc, err := store.MarshalDoc(service.ID, service.Slug, service.Category, false, &service)
		if err != nil {
			common.LogAndWriteError(w, r, "update service", err)
			return
		}

		if err := st.ContentStore.Update(r.Context(), store.CollectionServices, doc); err != nil {
			common.LogAndWriteError(w, r, "update service", err)
			return
		}

		resp.WriteData(w, service)
	}
}

func HandleDeleteService(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.ContentStore.Delete(r.Context(), store.CollectionServices, chi.URLParam(r, "id")); err != nil {
			common.LogAndWriteError(w, r, "delete service", err)
			return
		}

		resp.WriteData(w, nil)
	}
}

func validateService(w http.ResponseWriter, service *store.Service) bool {
	switch {
	case service.Title == "":
		writeRequiredFieldError(w, "title")
	case service.Description == "":
		writeRequiredFieldError(w, "description")
	default:
		return true
	}

	return false
}
