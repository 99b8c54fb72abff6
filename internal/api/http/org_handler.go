package http

import (
	"net/http"

	"ecodonate-backend/internal/service"
)

type OrganizationHandler struct {
	orgs      service.OrganizationService
	donations service.DonationService
	stories   service.StoryService
}

func NewOrganizationHandler(orgs service.OrganizationService, donations service.DonationService, stories service.StoryService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs, donations: donations, stories: stories}
}

type applyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgs.ListApproved(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) Stories(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	stories, err := h.stories.ListStories(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stories)
}

func (h *OrganizationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	org, err := h.orgs.Apply(r.Context(), UserIDFromContext(r.Context()), req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgs.GetMine(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Donations(w http.ResponseWriter, r *http.Request) {
	records, err := h.donations.ListForOrganization(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DonationsXLSX streams the donation report as a spreadsheet attachment
func (h *OrganizationHandler) DonationsXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.donations.ExportForOrganization(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="donations.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// UpdateStatus is the admin review action for an application
func (h *OrganizationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	org, err := h.orgs.UpdateStatus(r.Context(), UserIDFromContext(r.Context()), orgID, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}
