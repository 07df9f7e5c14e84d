package util

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/mechtronglobal/backend/server/resp"
)

// RequireMultipartContentType rejects upload requests whose Content-Type is
// not multipart/form-data. Returns false after writing the response.
func RequireMultipartContentType(w http.ResponseWriter, r *http.Request) bool {
	mediaType, ok := ExtractMediaType(w, r)
	if !ok {
		return false
	}

	if mediaType != "multipart/form-data" {
		resp.WriteUnsupportedMediaType(w, "Invalid Content-Type: only multipart/form-data allowed")
		return false
	}

	return true
}

// ExtractMediaType parses the request's Content-Type header, writing a 415
// response when the header is missing or malformed.
func ExtractMediaType(w http.ResponseWriter, r *http.Request) (string, bool) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		resp.WriteUnsupportedMediaType(w, "Content-Type must be specified")
		return "", false
	}

	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		resp.WriteUnsupportedMediaType(w, fmt.Errorf("Invalid Content-Type: %w", err).Error())
		return "", false
	}

	return mediaType, true
}

// IsImageContentType reports whether a declared MIME type is an image type.
func IsImageContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return strings.HasPrefix(mediaType, "image/")
}
