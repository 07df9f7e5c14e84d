package util

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func buildMultipartRequest(t *testing.T, values map[string][]string, files map[string][][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, arr := range values {
		for _, v := range arr {
			if err := writer.WriteField(key, v); err != nil {
				t.Fatalf("failed to write field: %v", err)
			}
		}
	}
	for key, bodies := range files {
		for i, body := range bodies {
			part, err := writer.CreateFormFile(key, fmt.Sprintf("%s-%d.jpg", key, i))
			if err != nil {
				t.Fatalf("failed to create file part: %v", err)
			}
			if _, err := part.Write(body); err != nil {
				t.Fatalf("failed to write file part: %v", err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

func TestParseMultipart_ValuesAndFiles(t *testing.T) {
	req := buildMultipartRequest(t,
		map[string][]string{"caption": {"front elevation"}, "tags": {"bim", "cad"}},
		map[string][][]byte{"files": {[]byte("a"), []byte("b")}},
	)
	rr := httptest.NewRecorder()

	pm, err := ParseMultipart(rr, req, 1<<20, 4<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pm.Values["caption"] != "front elevation" {
		t.Fatalf("unexpected caption value: %v", pm.Values["caption"])
	}
	tags, ok := pm.Values["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Fatalf("expected repeated field as slice, got %v", pm.Values["tags"])
	}

	files := pm.FilesFor("files")
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Filename != "files-0.jpg" || files[1].Filename != "files-1.jpg" {
		t.Fatalf("file order not preserved: %q, %q", files[0].Filename, files[1].Filename)
	}

	fields := pm.FileFields()
	if len(fields) != 1 || fields[0] != "files" {
		t.Fatalf("unexpected file fields: %v", fields)
	}
}

func TestParseMultipart_BodyCap(t *testing.T) {
	req := buildMultipartRequest(t, nil,
		map[string][][]byte{"file": {bytes.Repeat([]byte("x"), 2048)}},
	)
	rr := httptest.NewRecorder()

	if _, err := ParseMultipart(rr, req, 1<<20, 512); err == nil {
		t.Fatalf("expected error when body exceeds cap")
	}
}

func TestParseMultipart_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not multipart")))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=missing")
	rr := httptest.NewRecorder()

	if _, err := ParseMultipart(rr, req, 1<<20, 1<<20); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}
