package util

import (
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeBaseName replaces every character outside [a-zA-Z0-9_-] with an
// underscore so the stored name is safe as both a path segment and a URL.
func SanitizeBaseName(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// UniqueFilename builds a stored filename from an uploaded one: the base name
// is sanitized and suffixed with a nanosecond timestamp, so two uploads of the
// same name in the same millisecond still land on distinct files without any
// coordination. The extension is preserved, falling back to the declared
// content type when the name has none.
func UniqueFilename(original string, contentType string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" && contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	base := SanitizeBaseName(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" || base == strings.Repeat("_", len(base)) {
		base = uuid.New().String()
	}

	return fmt.Sprintf("%s-%d%s", base, now.UnixNano(), ext)
}
