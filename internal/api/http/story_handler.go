package http

import (
	"net/http"

	"ecodonate-backend/internal/service"
)

type StoryHandler struct {
	svc service.StoryService
}

func NewStoryHandler(svc service.StoryService) *StoryHandler {
	return &StoryHandler{svc: svc}
}

type createStoryRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
}

type uploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	story, err := h.svc.CreateStory(r.Context(), UserIDFromContext(r.Context()), req.Title, req.Content, req.ImageURL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, story)
}

func (h *StoryHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	upload, err := h.svc.ImageUploadURL(r.Context(), UserIDFromContext(r.Context()), req.Filename, req.ContentType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}
