package repository

import (
	"context"
	"errors"

	"ecodonate-backend/internal/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
	GetByOwner(ctx context.Context, ownerID int64) (*domain.Organization, error)
	ListByStatus(ctx context.Context, status domain.OrganizationStatus) ([]domain.Organization, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrganizationStatus) error
}

type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	GetByID(ctx context.Context, id int64) (*domain.Donation, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Donation, error)
	// TransitionStatus moves a donation out of `from` into `to`; it reports false when
	// the donation was not in `from`.
	TransitionStatus(ctx context.Context, id int64, from, to domain.DonationStatus) (bool, error)
	ListByOrganization(ctx context.Context, orgID int64) ([]domain.DonationRecord, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	ListByOrganization(ctx context.Context, orgID int64) ([]domain.Story, error)
}

type BeneficiaryRepository interface {
	Create(ctx context.Context, beneficiary *domain.Beneficiary) error
	GetByID(ctx context.Context, id int64) (*domain.Beneficiary, error)
	ListByOrganization(ctx context.Context, orgID int64) ([]domain.Beneficiary, error)
}

type InventoryRepository interface {
	Create(ctx context.Context, item *domain.Inventory) error
	ListByBeneficiary(ctx context.Context, beneficiaryID int64) ([]domain.Inventory, error)
}
