package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"slices"

	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/storage"

	"github.com/gorilla/mux"
)

// UploadHandler serves the presigned upload routes of mock storage
type UploadHandler struct {
	mockStorage  *storage.MockStorageService
	allowedTypes []string
	maxBytes     int64
}

func NewUploadHandler(mockStorage *storage.MockStorageService, allowedTypes []string, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		mockStorage:  mockStorage,
		allowedTypes: allowedTypes,
		maxBytes:     maxBytes,
	}
}

// Put accepts the body of a presigned upload URL signed by mock storage
func (h *UploadHandler) Put(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	contentType := r.Header.Get("Content-Type")

	if err := h.mockStorage.VerifyUpload(key, contentType, r.URL.Query().Get("token")); err != nil {
		switch {
		case errors.Is(err, storage.ErrUploadExpired):
			http.Error(w, "Upload URL expired", http.StatusForbidden)
		case errors.Is(err, storage.ErrUploadContentType):
			http.Error(w, "Invalid content type", http.StatusBadRequest)
		case errors.Is(err, storage.ErrInvalidKey):
			http.Error(w, "Invalid key", http.StatusBadRequest)
		default:
			http.Error(w, "Invalid upload signature", http.StatusForbidden)
		}
		return
	}

	if !slices.Contains(h.allowedTypes, contentType) {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.mockStorage.SaveFile(key, r.Body, h.maxBytes); err != nil {
		switch {
		case errors.Is(err, storage.ErrTooLarge):
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, storage.ErrInvalidKey):
			http.Error(w, "Invalid key", http.StatusBadRequest)
		default:
			logger.FromContext(r.Context()).Error("Failed to save upload", "key", key, "error", err)
			http.Error(w, "Failed to save file", http.StatusInternalServerError)
		}
		return
	}

	// Mimic the S3 response
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = io.Copy(w, file)
}
