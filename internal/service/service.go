package service

import (
	"context"
	"time"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/payment"
	"ecodonate-backend/internal/security"

	"github.com/shopspring/decimal"
)

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

type LoginResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *domain.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, claims *security.UserClaims) error
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

type OrganizationService interface {
	ListApproved(ctx context.Context) ([]domain.OrganizationSummary, error)
	Apply(ctx context.Context, callerID int64, name, description string) (*domain.Organization, error)
	UpdateStatus(ctx context.Context, callerID, orgID int64, status string) (*domain.Organization, error)
	GetMine(ctx context.Context, callerID int64) (*domain.Organization, error)
}

type CreateDonationInput struct {
	Amount         decimal.Decimal
	OrganizationID int64
	IsAnonymous    bool
	IsRecurring    bool
	Frequency      *string
}

type DonationIntent struct {
	DonationID   int64  `json:"donation_id"`
	ClientSecret string `json:"client_secret"`
}

type DonationService interface {
	Create(ctx context.Context, callerID int64, in CreateDonationInput) (*DonationIntent, error)
	HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error
	ListForOrganization(ctx context.Context, callerID int64) ([]domain.DonationRecord, error)
	ExportForOrganization(ctx context.Context, callerID int64) ([]byte, error)
}

type StoryService interface {
	CreateStory(ctx context.Context, callerID int64, title, content string, imageURL *string) (*domain.Story, error)
	ListStories(ctx context.Context, orgID int64) ([]domain.Story, error)
	ImageUploadURL(ctx context.Context, callerID int64, filename, contentType string) (*domain.ImageUpload, error)
}

type BeneficiaryService interface {
	CreateBeneficiary(ctx context.Context, callerID int64, name, description string) (*domain.Beneficiary, error)
	ListBeneficiaries(ctx context.Context, callerID int64) ([]domain.Beneficiary, error)
	RecordInventory(ctx context.Context, callerID, beneficiaryID int64, itemName string, quantity int32, dateSent *time.Time) (*domain.Inventory, error)
	ListInventory(ctx context.Context, callerID, beneficiaryID int64) ([]domain.Inventory, error)
}

// EventVerifier authenticates and decodes payment processor webhooks
type EventVerifier interface {
	ParseEvent(payload []byte, header string) (*payment.Event, error)
}
