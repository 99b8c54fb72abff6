package service

import (
	"context"
	"errors"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/repository"
)

// ownedOrganization returns the organization owned by callerID, or Forbidden
// when the caller owns none.
func ownedOrganization(ctx context.Context, orgRepo repository.OrganizationRepository, callerID int64) (*domain.Organization, error) {
	org, err := orgRepo.GetByOwner(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrForbidden("caller does not own an organization")
		}
		return nil, ErrInternal(err)
	}
	return org, nil
}
