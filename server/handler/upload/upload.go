// Package upload implements the image upload gateway: it validates multipart
// requests, delegates each file to the process-wide storage strategy, and
// normalizes the response shape so callers see the same contract whether the
// bytes landed on local disk or in a remote bucket.
package upload

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/mechtronglobal/backend/server/handler/common"
	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/server/state"
	"github.com/mechtronglobal/backend/server/util"
	"github.com/mechtronglobal/backend/storage/media"
)

const (
	singleField   = "file"
	multipleField = "files"
)

var allowedFormats = []string{"jpg", "jpeg", "png", "gif", "webp", "svg"}

// SingleResponse is the wire shape of a successful single-file upload.
type SingleResponse struct {
	Success  bool           `json:"success"`
	Url      string         `json:"url"`
	Urls     media.Variants `json:"urls"`
	Filename string         `json:"filename"`
	Storage  string         `json:"storage"`
}

// MultipleResponse is the wire shape of a successful batch upload. Urls and
// Details are ordered by input position, not completion order.
type MultipleResponse struct {
	Success bool             `json:"success"`
	Urls    []string         `json:"urls"`
	Details []media.Variants `json:"details"`
	Storage string           `json:"storage"`
}

type ConfigResponse struct {
	Storage        string   `json:"storage"`
	MaxFileSize    string   `json:"maxFileSize"`
	MaxFiles       int      `json:"maxFiles"`
	AllowedFormats []string `json:"allowedFormats"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

// HandleSingle accepts one image under the "file" field.
func HandleSingle(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !util.RequireMultipartContentType(w, r) {
			return
		}

		limits := st.Cfg.Server.Limits
		pm, err := util.ParseMultipart(w, r, limits.MaxMultipartMem, limits.MaxFileSize+bodySlack)
		if err != nil {
			writeParseError(w, limits, err)
			return
		}

		files, err := validateFiles(pm, singleField, limits, 1)
		if err != nil {
			writeValidationError(w, limits, singleField, err)
			return
		}

		asset, err := saveOne(r.Context(), st.MediaStore, files[0])
		if err != nil {
			common.LogAndWriteError(w, r, "upload", err)
			return
		}

		resp.WriteOK(w, SingleResponse{
			Success:  true,
			Url:      asset.Optimized,
			Urls:     asset.Variants(),
			Filename: asset.Filename,
			Storage:  st.MediaStore.Kind(),
		})
	}
}

// HandleMultiple accepts up to the configured number of images under the
// "files" field. Files are persisted concurrently; the response preserves
// input order by indexing results back to the request, and one file's
// derivation failure never affects its siblings.
func HandleMultiple(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !util.RequireMultipartContentType(w, r) {
			return
		}

		limits := st.Cfg.Server.Limits
		maxBody := int64(limits.MaxFiles)*limits.MaxFileSize + bodySlack
		pm, err := util.ParseMultipart(w, r, limits.MaxMultipartMem, maxBody)
		if err != nil {
			writeParseError(w, limits, err)
			return
		}

		files, err := validateFiles(pm, multipleField, limits, limits.MaxFiles)
		if err != nil {
			writeValidationError(w, limits, multipleField, err)
			return
		}

		assets := make([]*media.StoredAsset, len(files))
		errs := make([]error, len(files))

		var wg sync.WaitGroup
		for i, fh := range files {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assets[i], errs[i] = saveOne(r.Context(), st.MediaStore, fh)
			}()
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				common.LogAndWriteError(w, r, "upload", err)
				return
			}
		}

		urls := make([]string, len(assets))
		details := make([]media.Variants, len(assets))
		for i, asset := range assets {
			urls[i] = asset.Optimized
			details[i] = asset.Variants()
		}

		resp.WriteOK(w, MultipleResponse{
			Success: true,
			Urls:    urls,
			Details: details,
			Storage: st.MediaStore.Kind(),
		})
	}
}

// HandleConfig reports the active strategy and limits so clients can
// pre-validate. Advisory only; the server re-checks everything.
func HandleConfig(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limits := st.Cfg.Server.Limits
		resp.WriteOK(w, ConfigResponse{
			Storage:        st.MediaStore.Kind(),
			MaxFileSize:    maxFileSizeLabel(limits.MaxFileSize),
			MaxFiles:       limits.MaxFiles,
			AllowedFormats: allowedFormats,
		})
	}
}

// HandleRemoteDelete removes a remotely stored asset by object key. Under
// the local strategy the store reports it is not configured for deletes.
func HandleRemoteDelete(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		if key == "" {
			resp.WriteInvalidRequest(w, "missing object key")
			return
		}

		if err := st.MediaStore.Delete(r.Context(), key); err != nil {
			common.LogAndWriteError(w, r, "delete media", err)
			return
		}

		resp.WriteOK(w, DeleteResponse{Success: true, Result: "deleted"})
	}
}
