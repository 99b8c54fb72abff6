package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"25.00", 2500},
		{"19.99", 1999},
		{"0.01", 1},
		{"0.009", 0},
		{"10.129", 1012},
		{"1000", 100000},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, MinorUnits(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestChargedAmount(t *testing.T) {
	charged := ChargedAmount(decimal.RequireFromString("25.009"))
	assert.True(t, charged.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, MinorUnits(decimal.RequireFromString("25.009")), MinorUnits(charged))
	assert.True(t, ChargedAmount(decimal.RequireFromString("99999999.999")).Equal(MaxDonationAmount))
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, UserRoleAdmin.Valid())
	assert.False(t, UserRole("superuser").Valid())
	assert.True(t, OrganizationStatusRejected.Valid())
	assert.False(t, OrganizationStatus("archived").Valid())
	assert.True(t, DonationFrequencyQuarterly.Valid())
	assert.False(t, DonationFrequency("weekly").Valid())
}
