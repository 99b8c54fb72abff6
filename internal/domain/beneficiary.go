package domain

import "time"

type Beneficiary struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// Inventory is a batch of items sent to a beneficiary
type Inventory struct {
	ID            int64     `json:"id"`
	BeneficiaryID int64     `json:"beneficiary_id"`
	ItemName      string    `json:"item_name"`
	Quantity      int32     `json:"quantity"`
	DateSent      time.Time `json:"date_sent"`
	CreatedAt     time.Time `json:"created_at"`
}
