package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"causeway/internal/pricing"
	"causeway/internal/storage"
)

func multipartImage(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func newUploadApp(t *testing.T, maxBytes int64) *App {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	uploader := storage.NewImageUploader(store, "http://cdn.test/static", maxBytes)
	return NewApp(&fakeBackend{}, nil, pricing.DefaultBounds(), uploader, nil)
}

func uploadRequest(t *testing.T, h http.Handler, filename, contentType string, data []byte) (int, map[string]string) {
	t.Helper()
	body, ct := multipartImage(t, filename, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, resp
}

func TestUploadImage(t *testing.T) {
	h := routes(newUploadApp(t, 1024))

	code, resp := uploadRequest(t, h, "cover.png", "image/png", []byte("png-bytes"))
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d: %+v", code, resp)
	}
	if !strings.HasPrefix(resp["url"], "http://cdn.test/static/images/") || !strings.HasSuffix(resp["url"], ".png") {
		t.Fatalf("unexpected url %q", resp["url"])
	}
}

func TestUploadImageRejections(t *testing.T) {
	h := routes(newUploadApp(t, 1024*1024))

	code, resp := uploadRequest(t, h, "anim.gif", "image/gif", []byte("gif"))
	if code != http.StatusBadRequest || resp["error"] != "Invalid file type. Only JPEG, PNG, and WebP are allowed." {
		t.Fatalf("unexpected response %d %+v", code, resp)
	}

	code, resp = uploadRequest(t, h, "big.jpg", "image/jpeg", make([]byte, 1024*1024+1))
	if code != http.StatusBadRequest || resp["error"] != "File size too large. Maximum size is 1MB." {
		t.Fatalf("unexpected response %d %+v", code, resp)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rr.Code)
	}
}

func TestUploadImageDisabled(t *testing.T) {
	h := routes(newTestApp(&fakeBackend{}))
	code, _ := uploadRequest(t, h, "a.png", "image/png", []byte("x"))
	if code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status %d", code)
	}
}
