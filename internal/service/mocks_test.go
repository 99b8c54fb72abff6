package service

import (
	"context"
	"time"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/payment"
	"ecodonate-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) GetByOwner(ctx context.Context, ownerID int64) (*domain.Organization, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) ListByStatus(ctx context.Context, status domain.OrganizationStatus) ([]domain.Organization, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrganizationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockDonationRepo
type MockDonationRepo struct {
	mock.Mock
}

func (m *MockDonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDonationRepo) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Donation, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) TransitionStatus(ctx context.Context, id int64, from, to domain.DonationStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockDonationRepo) ListByOrganization(ctx context.Context, orgID int64) ([]domain.DonationRecord, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.DonationRecord), args.Error(1)
}

// MockStoryRepo
type MockStoryRepo struct {
	mock.Mock
}

func (m *MockStoryRepo) Create(ctx context.Context, s *domain.Story) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockStoryRepo) ListByOrganization(ctx context.Context, orgID int64) ([]domain.Story, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Story), args.Error(1)
}

// MockBeneficiaryRepo
type MockBeneficiaryRepo struct {
	mock.Mock
}

func (m *MockBeneficiaryRepo) Create(ctx context.Context, b *domain.Beneficiary) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBeneficiaryRepo) GetByID(ctx context.Context, id int64) (*domain.Beneficiary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Beneficiary), args.Error(1)
}
func (m *MockBeneficiaryRepo) ListByOrganization(ctx context.Context, orgID int64) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Beneficiary), args.Error(1)
}

// MockInventoryRepo
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) Create(ctx context.Context, item *domain.Inventory) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockInventoryRepo) ListByBeneficiary(ctx context.Context, beneficiaryID int64) ([]domain.Inventory, error) {
	args := m.Called(ctx, beneficiaryID)
	return args.Get(0).([]domain.Inventory), args.Error(1)
}

// MockProcessor
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*payment.Intent, error) {
	args := m.Called(ctx, amountMinor, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OrganizationStatusChanged(ctx context.Context, owner *domain.User, org *domain.Organization) error {
	args := m.Called(ctx, owner, org)
	return args.Error(0)
}
func (m *MockNotifier) DonationReceipt(ctx context.Context, donor *domain.User, org *domain.Organization, donation *domain.Donation) error {
	args := m.Called(ctx, donor, org, donation)
	return args.Error(0)
}
func (m *MockNotifier) ApplicationSubmitted(ctx context.Context, admin *domain.User, org *domain.Organization) error {
	args := m.Called(ctx, admin, org)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int64, role domain.UserRole) (string, time.Time, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenManager) ValidateToken(token string) (*security.UserClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}

// MockRevoker
type MockRevoker struct {
	mock.Mock
}

func (m *MockRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	args := m.Called(ctx, jti, expiresAt)
	return args.Error(0)
}
func (m *MockRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
func (m *MockStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorage) KeyFromURL(rawURL string) (string, bool) {
	args := m.Called(rawURL)
	return args.String(0), args.Bool(1)
}

// MockVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) ParseEvent(payload []byte, header string) (*payment.Event, error) {
	args := m.Called(payload, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Event), args.Error(1)
}
