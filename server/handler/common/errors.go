package common

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/server/util"
	"github.com/mechtronglobal/backend/storage/content"
	"github.com/mechtronglobal/backend/storage/media"
)

// LogAndWriteError logs an error with request context and maps known
// conditions to client responses. Unknown errors become a generic 500 so no
// internal path or driver detail leaks to the caller.
func LogAndWriteError(w http.ResponseWriter, r *http.Request, op string, err error) {
	rl := util.FromContext(r.Context())
	if rl == nil {
		rl = util.WithRequest(log.Default(), r, "")
	}
	rl.Errorf("%s failed: %v", op, err)

	switch {
	case errors.Is(err, content.ErrNotFound):
		resp.WriteNotFound(w, "not found")
	case errors.Is(err, media.ErrNotConfigured):
		resp.WriteInvalidRequest(w, "Remote storage not configured")
	default:
		resp.WriteInternalServerError(w, fmt.Sprintf("%s failed", op))
	}
}
