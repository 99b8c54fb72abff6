package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_EmailIsCaseInsensitiveUnique(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.UserRepository.Create(ctx, &domain.User{Email: "ann@example.org", Role: domain.UserRoleDonor}))
	err := store.UserRepository.Create(ctx, &domain.User{Email: "ANN@example.org", Role: domain.UserRoleDonor})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	u, err := store.UserRepository.GetByEmail(ctx, "Ann@Example.org")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.org", u.Email)

	_, err = store.UserRepository.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrganizations_StatusLifecycle(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	owner := &domain.User{Email: "owner@example.org", Role: domain.UserRoleOrgAdmin}
	require.NoError(t, store.UserRepository.Create(ctx, owner))

	org := &domain.Organization{OwnerID: owner.ID, Name: "Green", Status: domain.OrganizationStatusPending}
	require.NoError(t, store.OrganizationRepository.Create(ctx, org))
	assert.ErrorIs(t, store.OrganizationRepository.Create(ctx, &domain.Organization{OwnerID: owner.ID}), repository.ErrDuplicate)

	approved, err := store.OrganizationRepository.ListByStatus(ctx, domain.OrganizationStatusApproved)
	require.NoError(t, err)
	assert.Empty(t, approved)

	require.NoError(t, store.OrganizationRepository.UpdateStatus(ctx, org.ID, domain.OrganizationStatusApproved))
	approved, err = store.OrganizationRepository.ListByStatus(ctx, domain.OrganizationStatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Green", approved[0].Name)

	assert.ErrorIs(t, store.OrganizationRepository.UpdateStatus(ctx, 12345, domain.OrganizationStatusRejected), repository.ErrNotFound)
}

func TestDonations_TransitionOnlyFromExpectedStatus(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	donor := &domain.User{Email: "d@example.org", Name: "Dee", Role: domain.UserRoleDonor}
	require.NoError(t, store.UserRepository.Create(ctx, donor))

	d := &domain.Donation{DonorID: donor.ID, OrganizationID: 7, Amount: decimal.NewFromInt(5), Status: domain.DonationStatusPending, PaymentIntentID: "pi_1"}
	require.NoError(t, store.DonationRepository.Create(ctx, d))

	moved, err := store.DonationRepository.TransitionStatus(ctx, d.ID, domain.DonationStatusPending, domain.DonationStatusCompleted)
	require.NoError(t, err)
	assert.True(t, moved)

	moved, err = store.DonationRepository.TransitionStatus(ctx, d.ID, domain.DonationStatusPending, domain.DonationStatusFailed)
	require.NoError(t, err)
	assert.False(t, moved)

	records, err := store.DonationRepository.ListByOrganization(ctx, 7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.DonationStatusCompleted, records[0].Status)
	assert.Equal(t, "Dee", records[0].DonorName)
}

func TestInventory_OrderedByDateSent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	b := &domain.Beneficiary{OrganizationID: 1, Name: "Shelter"}
	require.NoError(t, store.BeneficiaryRepository.Create(ctx, b))

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 1, 0)
	require.NoError(t, store.InventoryRepository.Create(ctx, &domain.Inventory{BeneficiaryID: b.ID, ItemName: "Rice", Quantity: 10, DateSent: older}))
	require.NoError(t, store.InventoryRepository.Create(ctx, &domain.Inventory{BeneficiaryID: b.ID, ItemName: "Soap", Quantity: 3, DateSent: newer}))

	items, err := store.InventoryRepository.ListByBeneficiary(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Soap", items[0].ItemName)

	err = store.InventoryRepository.Create(ctx, &domain.Inventory{BeneficiaryID: 404, ItemName: "x", DateSent: newer})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConcurrentRegistrationYieldsSingleUser(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.UserRepository.Create(ctx, &domain.User{Email: "race@example.org", Role: domain.UserRoleDonor}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}

func TestUsers_ListByRole(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.UserRepository.Create(ctx, &domain.User{Email: "a@example.org", Role: domain.UserRoleAdmin}))
	require.NoError(t, store.UserRepository.Create(ctx, &domain.User{Email: "d@example.org", Role: domain.UserRoleDonor}))
	require.NoError(t, store.UserRepository.Create(ctx, &domain.User{Email: "b@example.org", Role: domain.UserRoleAdmin}))

	admins, err := store.UserRepository.ListByRole(ctx, domain.UserRoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "a@example.org", admins[0].Email)
	assert.Equal(t, "b@example.org", admins[1].Email)
}
