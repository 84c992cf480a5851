package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"causeway/internal/domain"
)

// DefaultMaxImageBytes is the upload ceiling for cause and token images.
const DefaultMaxImageBytes = 5 * 1024 * 1024

const keyAttempts = 3

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

var allowedImageExts = map[string]bool{"jpg": true, "jpeg": true, "png": true, "webp": true}

// BlobWriter persists bytes under a key and returns the canonical key.
type BlobWriter interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
}

// ImageError is an upload rejection whose message is safe to show to users.
type ImageError struct {
	Message string
}

func (e *ImageError) Error() string { return e.Message }

func (e *ImageError) Unwrap() error { return domain.ErrUnsupportedFile }

// ImageUploader validates and stores cause images, handing back public URLs.
type ImageUploader struct {
	store    BlobWriter
	baseURL  string
	maxBytes int64
	now      func() time.Time
}

// NewImageUploader builds an uploader that serves files from baseURL.
func NewImageUploader(store BlobWriter, baseURL string, maxBytes int64) *ImageUploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageUploader{
		store:    store,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// MaxBytes is the largest accepted upload.
func (u *ImageUploader) MaxBytes() int64 {
	return u.maxBytes
}

// Upload checks the declared content type and size, stores the image as
// images/<unix-ms>_<random>.<ext> and returns its public URL.
func (u *ImageUploader) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	defaultExt, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", &ImageError{Message: "Invalid file type. Only JPEG, PNG, and WebP are allowed."}
	}
	if int64(len(data)) > u.maxBytes {
		return "", &ImageError{Message: fmt.Sprintf("File size too large. Maximum size is %dMB.", u.maxBytes/(1024*1024))}
	}
	if len(data) == 0 {
		return "", &ImageError{Message: "No file provided"}
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if !allowedImageExts[ext] {
		ext = defaultExt
	}
	var stored string
	var err error
	for attempt := 0; attempt < keyAttempts; attempt++ {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
		key := fmt.Sprintf("images/%d_%s.%s", u.now().UnixMilli(), suffix, ext)
		stored, err = u.store.Write(ctx, key, data)
		if !errors.Is(err, ErrKeyExists) {
			break
		}
	}
	if err != nil {
		return "", err
	}
	return u.baseURL + "/" + (&url.URL{Path: stored}).EscapedPath(), nil
}
