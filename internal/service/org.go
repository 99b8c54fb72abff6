package service

import (
	"context"
	"errors"
	"strings"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/notify"
	"ecodonate-backend/internal/repository"
)

type organizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
	notifier notify.Notifier
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository, notifier notify.Notifier) OrganizationService {
	return &organizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *organizationService) ListApproved(ctx context.Context) ([]domain.OrganizationSummary, error) {
	orgs, err := s.orgRepo.ListByStatus(ctx, domain.OrganizationStatusApproved)
	if err != nil {
		return nil, ErrInternal(err)
	}
	summaries := make([]domain.OrganizationSummary, 0, len(orgs))
	for _, o := range orgs {
		summaries = append(summaries, o.Summary())
	}
	return summaries, nil
}

func (s *organizationService) Apply(ctx context.Context, callerID int64, name, description string) (*domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation("name is required")
	}

	org := &domain.Organization{
		OwnerID:     callerID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Status:      domain.OrganizationStatusPending,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict("caller already has an organization")
		}
		return nil, ErrInternal(err)
	}

	logger.FromContext(ctx).Info("Organization application submitted", "orgID", org.ID, "ownerID", callerID)
	s.notifyAdmins(ctx, org)
	return org, nil
}

// notifyAdmins is best effort; failures are logged only
func (s *organizationService) notifyAdmins(ctx context.Context, org *domain.Organization) {
	admins, err := s.userRepo.ListByRole(ctx, domain.UserRoleAdmin)
	if err != nil {
		logger.FromContext(ctx).Warn("Could not load admins for application alert", "orgID", org.ID, "error", err)
		return
	}
	for i := range admins {
		if err := s.notifier.ApplicationSubmitted(ctx, &admins[i], org); err != nil {
			logger.FromContext(ctx).Warn("Failed to alert admin of application", "orgID", org.ID, "adminID", admins[i].ID, "error", err)
		}
	}
}

func (s *organizationService) UpdateStatus(ctx context.Context, callerID, orgID int64, status string) (*domain.Organization, error) {
	logger.EnterMethod(ctx, "organizationService.UpdateStatus", "callerID", callerID, "orgID", orgID, "status", status)

	// Role is checked before the target organization is looked up
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized("user no longer exists")
		}
		return nil, ErrInternal(err)
	}
	if caller.Role != domain.UserRoleAdmin {
		return nil, ErrForbidden("admin role required")
	}

	newStatus := domain.OrganizationStatus(strings.TrimSpace(status))
	if !newStatus.Valid() {
		return nil, ErrValidation("status must be one of pending, approved, rejected")
	}

	if err := s.orgRepo.UpdateStatus(ctx, orgID, newStatus); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound("organization not found")
		}
		logger.ExitMethodWithError(ctx, "organizationService.UpdateStatus", err, "orgID", orgID)
		return nil, ErrInternal(err)
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, ErrInternal(err)
	}

	// Owner notification is best effort
	if owner, err := s.userRepo.GetByID(ctx, org.OwnerID); err != nil {
		logger.FromContext(ctx).Warn("Could not load organization owner for notification", "orgID", org.ID, "error", err)
	} else if err := s.notifier.OrganizationStatusChanged(ctx, owner, org); err != nil {
		logger.FromContext(ctx).Warn("Failed to notify organization owner", "orgID", org.ID, "error", err)
	}

	logger.ExitMethod(ctx, "organizationService.UpdateStatus", "orgID", org.ID, "status", org.Status)
	return org, nil
}

func (s *organizationService) GetMine(ctx context.Context, callerID int64) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByOwner(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound("caller has no organization")
		}
		return nil, ErrInternal(err)
	}
	return org, nil
}
