package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"causeway/internal/domain"
)

// multipart overhead allowed on top of the file limit
const uploadSlack = 64 << 10

// UploadImage stores a cause or token image sent as the multipart "file" field.
func (a *App) UploadImage(w http.ResponseWriter, r *http.Request) {
	if a.Uploader == nil {
		a.json(w, http.StatusServiceUnavailable, map[string]string{"error": "Image uploads are disabled"})
		return
	}
	maxBytes := a.Uploader.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+uploadSlack)
	if err := r.ParseMultipartForm(maxBytes + uploadSlack); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.json(w, http.StatusBadRequest, map[string]string{"error": "File size too large. Maximum size is " + megabytes(maxBytes) + "."})
			return
		}
		a.json(w, http.StatusBadRequest, map[string]string{"error": "No file provided"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "No file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		a.Logger.Error().Err(err).Msg("upload: read file failed")
		a.json(w, http.StatusInternalServerError, map[string]string{"error": "Failed to upload image"})
		return
	}

	url, err := a.Uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFile) {
			a.json(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		a.Logger.Error().Err(err).Msg("upload: store failed")
		a.json(w, http.StatusInternalServerError, map[string]string{"error": "Failed to upload image"})
		return
	}
	a.Logger.Info().Str("url", url).Int("bytes", len(data)).Msg("upload: image stored")
	a.json(w, http.StatusOK, map[string]string{"url": url})
}

func megabytes(n int64) string {
	return strconv.FormatInt(n/(1024*1024), 10) + "MB"
}
