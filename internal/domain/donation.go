package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
)

type DonationFrequency string

const (
	DonationFrequencyMonthly   DonationFrequency = "monthly"
	DonationFrequencyQuarterly DonationFrequency = "quarterly"
	DonationFrequencyYearly    DonationFrequency = "yearly"
)

// Valid reports whether f is one of the known frequencies
func (f DonationFrequency) Valid() bool {
	switch f {
	case DonationFrequencyMonthly, DonationFrequencyQuarterly, DonationFrequencyYearly:
		return true
	}
	return false
}

type Donation struct {
	ID              int64              `json:"id"`
	DonorID         int64              `json:"donor_id"`
	OrganizationID  int64              `json:"organization_id"`
	Amount          decimal.Decimal    `json:"amount"`
	IsAnonymous     bool               `json:"is_anonymous"`
	IsRecurring     bool               `json:"is_recurring"`
	Frequency       *DonationFrequency `json:"frequency"`
	Status          DonationStatus     `json:"status"`
	PaymentIntentID string             `json:"-"`
	CreatedAt       time.Time          `json:"created_at"`
}

// DonationRecord is a donation as shown to the receiving organization.
// Donor fields are empty for anonymous donations.
type DonationRecord struct {
	Donation
	DonorName  string `json:"donor_name,omitempty"`
	DonorEmail string `json:"donor_email,omitempty"`
}

// MaxDonationAmount is the largest amount the NUMERIC(10,2) column holds
var MaxDonationAmount = decimal.RequireFromString("99999999.99")

// ChargedAmount drops sub-cent fractions so the stored amount matches what the processor charges
func ChargedAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Truncate(2)
}

// MinorUnits converts a major-unit amount to minor units (cents), truncating sub-cent fractions
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Truncate(0).IntPart()
}
