package util

import (
	"mime/multipart"
	"net/http"
)

// ParsedMultipart holds the parts of a parsed multipart form. File headers
// are collected without opening or filtering them; policy checks (type, size,
// count) belong to the caller and run before any file is read.
type ParsedMultipart struct {
	Values MultipartValues
	Files  map[string][]*multipart.FileHeader
}

type MultipartValues map[string]any

// FilesFor returns the headers posted under one field, preserving the order
// they appeared in the request body.
func (pm *ParsedMultipart) FilesFor(field string) []*multipart.FileHeader {
	return pm.Files[field]
}

// FileFields returns the names of every field that carried a file.
func (pm *ParsedMultipart) FileFields() []string {
	fields := make([]string, 0, len(pm.Files))
	for key := range pm.Files {
		fields = append(fields, key)
	}

	return fields
}

// ParseMultipart parses a multipart request body capped at maxBody bytes,
// spooling parts above maxMemory to temp files.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxMemory, maxBody int64) (*ParsedMultipart, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, err
	}

	parsed := &ParsedMultipart{
		Values: make(MultipartValues),
		Files:  make(map[string][]*multipart.FileHeader),
	}

	if r.MultipartForm == nil {
		return parsed, nil
	}

	for key, arr := range r.MultipartForm.Value {
		switch len(arr) {
		case 0:
			continue
		case 1:
			parsed.Values[key] = arr[0]
		default:
			asAny := make([]any, len(arr))
			for i, v := range arr {
				asAny[i] = v
			}
			parsed.Values[key] = asAny
		}
	}

	for key, fhs := range r.MultipartForm.File {
		parsed.Files[key] = fhs
	}

	return parsed, nil
}
