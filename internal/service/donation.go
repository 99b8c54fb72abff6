package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/notify"
	"ecodonate-backend/internal/payment"
	"ecodonate-backend/internal/repository"
)

type donationService struct {
	donationRepo repository.DonationRepository
	orgRepo      repository.OrganizationRepository
	userRepo     repository.UserRepository
	processor    payment.Processor
	verifier     EventVerifier
	notifier     notify.Notifier
	currency     string
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	processor payment.Processor,
	verifier EventVerifier,
	notifier notify.Notifier,
	currency string,
) DonationService {
	if currency == "" {
		currency = "usd"
	}
	return &donationService{
		donationRepo: donationRepo,
		orgRepo:      orgRepo,
		userRepo:     userRepo,
		processor:    processor,
		verifier:     verifier,
		notifier:     notifier,
		currency:     currency,
	}
}

func (s *donationService) Create(ctx context.Context, callerID int64, in CreateDonationInput) (*DonationIntent, error) {
	logger.EnterMethod(ctx, "donationService.Create", "callerID", callerID, "orgID", in.OrganizationID, "amount", in.Amount.String())

	if !in.Amount.IsPositive() {
		return nil, ErrValidation("amount must be greater than zero")
	}
	amount := domain.ChargedAmount(in.Amount)
	if amount.GreaterThan(domain.MaxDonationAmount) {
		return nil, ErrValidation("amount must not exceed " + domain.MaxDonationAmount.StringFixed(2))
	}
	minor := domain.MinorUnits(amount)
	if minor < 1 {
		return nil, ErrValidation("amount must be at least 0.01")
	}

	var frequency *domain.DonationFrequency
	if in.Frequency != nil && strings.TrimSpace(*in.Frequency) != "" {
		f := domain.DonationFrequency(strings.TrimSpace(*in.Frequency))
		if !f.Valid() {
			return nil, ErrValidation("frequency must be one of monthly, quarterly, yearly")
		}
		frequency = &f
	}

	org, err := s.orgRepo.GetByID(ctx, in.OrganizationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound("organization not found")
		}
		return nil, ErrInternal(err)
	}
	if org.Status != domain.OrganizationStatusApproved {
		return nil, ErrValidation("organization is not accepting donations")
	}

	intent, err := s.processor.CreatePaymentIntent(ctx, minor, s.currency, map[string]string{
		"donor_id":        strconv.FormatInt(callerID, 10),
		"organization_id": strconv.FormatInt(org.ID, 10),
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "donationService.Create", err, "orgID", org.ID)
		var perr *payment.ProcessorError
		if errors.As(err, &perr) {
			return nil, ErrUpstream(perr.Message, err)
		}
		return nil, ErrUpstream("payment processor unavailable", err)
	}

	donation := &domain.Donation{
		DonorID:         callerID,
		OrganizationID:  org.ID,
		Amount:          amount,
		IsAnonymous:     in.IsAnonymous,
		IsRecurring:     in.IsRecurring,
		Frequency:       frequency,
		Status:          domain.DonationStatusPending,
		PaymentIntentID: intent.ID,
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		// The intent stays unconfirmed at the processor and is never charged
		logger.FromContext(ctx).Error("Donation not persisted after payment intent was created",
			"intentID", intent.ID, "orgID", org.ID, "error", err)
		return nil, ErrInternal(err)
	}

	logger.ExitMethod(ctx, "donationService.Create", "donationID", donation.ID, "intentID", intent.ID)
	return &DonationIntent{DonationID: donation.ID, ClientSecret: intent.ClientSecret}, nil
}

func (s *donationService) HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := s.verifier.ParseEvent(payload, signature)
	if err != nil {
		logger.FromContext(ctx).Warn("Rejected payment webhook", "error", err)
		return ErrValidation("invalid webhook signature")
	}
	log := logger.FromContext(ctx).With("eventID", event.ID, "eventType", event.Type, "intentID", event.IntentID())

	var target domain.DonationStatus
	switch event.Type {
	case payment.EventPaymentSucceeded:
		target = domain.DonationStatusCompleted
	case payment.EventPaymentFailed:
		target = domain.DonationStatusFailed
	default:
		log.Debug("Ignoring payment event")
		return nil
	}

	donation, err := s.donationRepo.GetByPaymentIntentID(ctx, event.IntentID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Payment event for unknown intent")
			return nil
		}
		return ErrInternal(err)
	}

	moved, err := s.donationRepo.TransitionStatus(ctx, donation.ID, domain.DonationStatusPending, target)
	if err != nil {
		return ErrInternal(err)
	}
	if !moved {
		log.Info("Donation already settled, event ignored", "donationID", donation.ID, "status", donation.Status)
		return nil
	}
	donation.Status = target
	log.Info("Donation settled", "donationID", donation.ID, "status", target)

	if target == domain.DonationStatusCompleted {
		s.sendReceipt(ctx, donation)
	}
	return nil
}

// sendReceipt is best effort; failures are logged only
func (s *donationService) sendReceipt(ctx context.Context, donation *domain.Donation) {
	donor, err := s.userRepo.GetByID(ctx, donation.DonorID)
	if err != nil {
		logger.FromContext(ctx).Warn("Could not load donor for receipt", "donationID", donation.ID, "error", err)
		return
	}
	org, err := s.orgRepo.GetByID(ctx, donation.OrganizationID)
	if err != nil {
		logger.FromContext(ctx).Warn("Could not load organization for receipt", "donationID", donation.ID, "error", err)
		return
	}
	if err := s.notifier.DonationReceipt(ctx, donor, org, donation); err != nil {
		logger.FromContext(ctx).Warn("Failed to send donation receipt", "donationID", donation.ID, "error", err)
	}
}

func (s *donationService) ListForOrganization(ctx context.Context, callerID int64) ([]domain.DonationRecord, error) {
	org, err := ownedOrganization(ctx, s.orgRepo, callerID)
	if err != nil {
		return nil, err
	}

	records, err := s.donationRepo.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, ErrInternal(err)
	}
	for i := range records {
		if records[i].IsAnonymous {
			records[i].DonorName = ""
			records[i].DonorEmail = ""
		}
	}
	if records == nil {
		records = []domain.DonationRecord{}
	}
	return records, nil
}

func (s *donationService) ExportForOrganization(ctx context.Context, callerID int64) ([]byte, error) {
	records, err := s.ListForOrganization(ctx, callerID)
	if err != nil {
		return nil, err
	}
	data, err := buildDonationWorkbook(records)
	if err != nil {
		return nil, ErrInternal(err)
	}
	return data, nil
}
