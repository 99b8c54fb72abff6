package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/service"

	"github.com/gorilla/mux"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps a service error to its status code. Internal causes are
// logged and replaced by a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		se = service.ErrInternal(err)
	}

	status := http.StatusInternalServerError
	switch se.Kind {
	case service.KindValidation, service.KindConflict, service.KindUpstream:
		status = http.StatusBadRequest
	case service.KindUnauthorized:
		status = http.StatusUnauthorized
	case service.KindForbidden:
		status = http.StatusForbidden
	case service.KindNotFound:
		status = http.StatusNotFound
	}

	log := logger.FromContext(r.Context())
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "path", r.URL.Path, "error", err)
		writeErrorMessage(w, status, "internal server error")
		return
	}
	if se.Err != nil {
		log.Warn("Request rejected", "path", r.URL.Path, "kind", se.Kind.String(), "error", se.Err)
	}
	writeErrorMessage(w, status, se.Message)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeErrorMessage(w, http.StatusBadRequest, "request body is required")
			return false
		}
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeErrorMessage(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
