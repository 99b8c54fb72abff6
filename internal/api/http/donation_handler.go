package http

import (
	"io"
	"net/http"

	"ecodonate-backend/internal/payment"
	"ecodonate-backend/internal/service"

	"github.com/shopspring/decimal"
)

const maxWebhookBody = 64 << 10

type DonationHandler struct {
	svc service.DonationService
}

func NewDonationHandler(svc service.DonationService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

type createDonationRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	OrganizationID int64           `json:"organization_id"`
	IsAnonymous    bool            `json:"is_anonymous"`
	IsRecurring    bool            `json:"is_recurring"`
	Frequency      *string         `json:"frequency"`
}

func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	intent, err := h.svc.Create(r.Context(), UserIDFromContext(r.Context()), service.CreateDonationInput{
		Amount:         req.Amount,
		OrganizationID: req.OrganizationID,
		IsAnonymous:    req.IsAnonymous,
		IsRecurring:    req.IsRecurring,
		Frequency:      req.Frequency,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, intent)
}

// PaymentWebhook receives processor events. The raw body is needed for signature verification.
func (h *DonationHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "unable to read request body")
		return
	}

	if err := h.svc.HandlePaymentEvent(r.Context(), payload, r.Header.Get(payment.SignatureHeader)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
