package http

import (
	"net/http"
	"time"

	"ecodonate-backend/internal/service"
)

type BeneficiaryHandler struct {
	svc service.BeneficiaryService
}

func NewBeneficiaryHandler(svc service.BeneficiaryService) *BeneficiaryHandler {
	return &BeneficiaryHandler{svc: svc}
}

type createBeneficiaryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type inventoryRequest struct {
	ItemName string  `json:"item_name"`
	Quantity int32   `json:"quantity"`
	DateSent *string `json:"date_sent"`
}

func (h *BeneficiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBeneficiaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.svc.CreateBeneficiary(r.Context(), UserIDFromContext(r.Context()), req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BeneficiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListBeneficiaries(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *BeneficiaryHandler) AddInventory(w http.ResponseWriter, r *http.Request) {
	beneficiaryID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req inventoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var dateSent *time.Time
	if req.DateSent != nil && *req.DateSent != "" {
		t, err := parseDate(*req.DateSent)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "date_sent must be YYYY-MM-DD or RFC 3339")
			return
		}
		dateSent = &t
	}

	item, err := h.svc.RecordInventory(r.Context(), UserIDFromContext(r.Context()), beneficiaryID, req.ItemName, req.Quantity, dateSent)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *BeneficiaryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	beneficiaryID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.svc.ListInventory(r.Context(), UserIDFromContext(r.Context()), beneficiaryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
