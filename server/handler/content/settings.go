package content

import (
	"errors"
	"net/http"

	"github.com/mechtronglobal/backend/server/handler/common"
	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/server/state"
	store "github.com/mechtronglobal/backend/storage/content"
)

func defaultSettings() store.SiteSettings {
	return store.SiteSettings{
		CompanyName: "Mechtron Global",
		Tagline:     "Advanced BIM Solutions",
	}
}

// HandleGetSettings returns the settings singleton, falling back to the
// built-in defaults when nothing has been saved yet.
func HandleGetSettings(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := st.ContentStore.Get(r.Context(), store.CollectionSettings, store.SettingsDocID)
		if errors.Is(err, store.ErrNotFound) {
			resp.WriteData(w, defaultSettings())
			return
		}
		if err != nil {
			common.LogAndWriteError(w, r, "get settings", err)
			return
		}

		var settings store.SiteSettings
		if err := store.UnmarshalDoc(doc, &settings); err != nil {
			common.LogAndWriteError(w, r, "get settings", err)
			return
		}

		resp.WriteData(w, settings)
	}
}

func HandleUpdateSettings(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings store.SiteSettings
		if err := decodeJSON(w, r, &settings); err != nil {
			resp.WriteInvalidRequest(w, err.Error())
			return
		}

		if settings.CompanyName == "" {
			writeRequiredFieldError(w, "companyName")
			return
		}

		doc, err := store.MarshalDoc(store.SettingsDocID, "", "", false, &settings)
		if err != nil {
			common.LogAndWriteError(w, r, "update settings", err)
			return
		}

		if err := st.ContentStore.Upsert(r.Context(), store.CollectionSettings, doc); err != nil {
			common.LogAndWriteError(w, r, "update settings", err)
			return
		}

		resp.WriteData(w, settings)
	}
}
