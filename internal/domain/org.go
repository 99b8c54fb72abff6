package domain

import "time"

type OrganizationStatus string

const (
	OrganizationStatusPending  OrganizationStatus = "pending"
	OrganizationStatusApproved OrganizationStatus = "approved"
	OrganizationStatusRejected OrganizationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses
func (s OrganizationStatus) Valid() bool {
	switch s {
	case OrganizationStatusPending, OrganizationStatusApproved, OrganizationStatusRejected:
		return true
	}
	return false
}

type Organization struct {
	ID          int64              `json:"id"`
	OwnerID     int64              `json:"owner_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Status      OrganizationStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

// OrganizationSummary is the public projection of an approved organization
type OrganizationSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (o Organization) Summary() OrganizationSummary {
	return OrganizationSummary{ID: o.ID, Name: o.Name, Description: o.Description}
}
