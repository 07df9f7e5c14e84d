package upload

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/mechtronglobal/backend/config"
	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/server/util"
	"github.com/mechtronglobal/backend/storage/media"
)

// bodySlack covers multipart boundaries and form values on top of the raw
// file bytes when capping the request body.
const bodySlack = 1 << 20

// validateFiles enforces the gateway's constraints on a parsed form: only
// the expected field carries files, the count is within bounds, and every
// file is a size-conforming image. It runs before any file is opened, so a
// rejected request writes nothing anywhere.
func validateFiles(pm *util.ParsedMultipart, field string, limits config.ServerLimits, maxCount int) ([]*multipart.FileHeader, error) {
	for _, got := range pm.FileFields() {
		if got != field {
			return nil, fmt.Errorf("%w %q", ErrUnexpectedField, got)
		}
	}

	files := pm.FilesFor(field)
	if len(files) == 0 {
		return nil, ErrMissingFile
	}
	if len(files) > maxCount {
		return nil, ErrTooManyFiles
	}

	for _, fh := range files {
		if !util.IsImageContentType(fh.Header.Get("Content-Type")) {
			return nil, ErrUnsupportedType
		}
		if fh.Size > limits.MaxFileSize {
			return nil, ErrFileTooLarge
		}
	}

	return files, nil
}

// writeValidationError maps a taxonomy error to its specific 400 message.
func writeValidationError(w http.ResponseWriter, limits config.ServerLimits, field string, err error) {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		resp.WriteInvalidRequest(w, fmt.Sprintf("File size too large. Maximum size is %dMB.", limits.MaxFileSize>>20))
	case errors.Is(err, ErrTooManyFiles):
		resp.WriteInvalidRequest(w, fmt.Sprintf("Too many files. Maximum is %d files.", limits.MaxFiles))
	case errors.Is(err, ErrUnexpectedField):
		resp.WriteInvalidRequest(w, fmt.Sprintf("Unexpected file field name. Use %q.", field))
	case errors.Is(err, ErrUnsupportedType):
		resp.WriteInvalidRequest(w, "Only image files are allowed")
	case errors.Is(err, ErrMissingFile):
		resp.WriteInvalidRequest(w, "No file uploaded")
	default:
		resp.WriteInvalidRequest(w, "File upload failed")
	}
}

// writeParseError distinguishes an over-limit body from a malformed one.
func writeParseError(w http.ResponseWriter, limits config.ServerLimits, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		resp.WriteInvalidRequest(w, fmt.Sprintf("File size too large. Maximum size is %dMB.", limits.MaxFileSize>>20))
		return
	}

	resp.WriteInvalidRequest(w, "Invalid multipart payload")
}

func maxFileSizeLabel(maxFileSize int64) string {
	return fmt.Sprintf("%dMB", maxFileSize>>20)
}

// saveOne opens a validated file and hands it to the active store. Every
// error past this point is a storage failure, never a validation one.
func saveOne(ctx context.Context, store media.Store, fh *multipart.FileHeader) (*media.StoredAsset, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return store.Save(ctx, file, fh)
}
