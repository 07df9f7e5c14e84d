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

func HandleListProjects(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, pagination, err := st.ContentStore.List(r.Context(), store.CollectionProjects, listFilter(r))
		if err != nil {
			common.LogAndWriteError(w, r, "list projects", err)
			return
		}

		projects, err := decodeDocs[store.Project](docs)
		if err != nil {
			common.LogAndWriteError(w, r, "list projects", err)
			return
		}

		resp.WriteDataPage(w, projects, pagination)
	}
}

func HandleGetProject(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := st.ContentStore.Get(r.Context(), store.CollectionProjects, chi.URLParam(r, "id"))
		if err != nil {
			common.LogAndWriteError(w, r, "get project", err)
			return
		}

		var project store.Project
		if err := store.UnmarshalDoc(doc, &project); err != nil {
			common.LogAndWriteError(w, r, "get project", err)
			return
		}

		resp.WriteData(w, project)
	}
}

func HandleGetProjectBySlug(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := st.ContentStore.GetBySlug(r.Context(), store.CollectionProjects, chi.URLParam(r, "slug"))
		if err != nil {
			common.LogAndWriteError(w, r, "get project", err)
			return
		}

		var project store.Project
		if err := store.UnmarshalDoc(doc, &project); err != nil {
			common.LogAndWriteError(w, r, "get project", err)
			return
		}

		resp.WriteData(w, project)
	}
}

func HandleCreateProject(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project store.Project
		if err := decodeJSON(w, r, &project); err != nil {
			resp.WriteInvalidRequest(w, err.Error())
			return
		}

		if !validateProject(w, &project) {
			return
		}

		project.ID = uuid.New().String()
		if project.Slug == "" {
			project.Slug = store.SlugFromTitle(project.Title)
		}
		now := time.Now().UTC()
		project.CreatedAt = now
		project.UpdatedAt = now

		doc, err := store.MarshalDoc(project.ID, project.Slug, project.Category, project.Featured, &project)
		if err != nil {
			common.LogAndWriteError(w, r, "create project", err)
			return
		}

		if err := st.ContentStore.Insert(r.Context(), store.CollectionProjects, doc); err != nil {
			common.LogAndWriteError(w, r, "create project", err)
			return
		}

		resp.WriteDataCreated(w, project)
	}
}

func HandleUpdateProject(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		existing, err := st.ContentStore.Get(r.Context(), store.CollectionProjects, id)
		if err != nil {
			common.LogAndWriteError(w, r, "update project", err)
			return
		}

		var project store.Project
		if err := decodeJSON(w, r, &project); err != nil {
			resp.WriteInvalidRequest(w, err.Error())
			return
		}

		if !validateProject(w, &project) {
			return
		}

		project.ID = id
		if project.Slug == "" {
			project.Slug = store.SlugFromTitle(project.Title)
		}
		project.CreatedAt = existing.CreatedAt
		project.UpdatedAt = time.Now().UTC()

		doc, err := store.MarshalDoc(project.ID, project.Slug, project.Category, project.Featured, &project)
		if err != nil {
			common.LogAndWriteError(w, r, "update project", err)
			return
		}

		if err := st.ContentStore.Update(r.Context(), store.CollectionProjects, doc); err != nil {
			common.LogAndWriteError(w, r, "update project", err)
			return
		}

		resp.WriteData(w, project)
	}
}

func HandleDeleteProject(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.ContentStore.Delete(r.Context(), store.CollectionProjects, chi.URLParam(r, "id")); err != nil {
			common.LogAndWriteError(w, r, "delete project", err)
			return
		}

		resp.WriteData(w, nil)
	}
}

func validateProject(w http.ResponseWriter, project *store.Project) bool {
	switch {
	case project.Title == "":
		writeRequiredFieldError(w, "title")
	case project.Category == "":
		writeRequiredFieldError(w, "category")
	case project.Description == "":
		writeRequiredFieldError(w, "description")
	default:
		return true
	}

	return false
}
