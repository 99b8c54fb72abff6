package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/repository"
)

type beneficiaryService struct {
	beneficiaryRepo repository.BeneficiaryRepository
	inventoryRepo   repository.InventoryRepository
	orgRepo         repository.OrganizationRepository
}

func NewBeneficiaryService(
	beneficiaryRepo repository.BeneficiaryRepository,
	inventoryRepo repository.InventoryRepository,
	orgRepo repository.OrganizationRepository,
) BeneficiaryService {
	return &beneficiaryService{
		beneficiaryRepo: beneficiaryRepo,
		inventoryRepo:   inventoryRepo,
		orgRepo:         orgRepo,
	}
}

func (s *beneficiaryService) CreateBeneficiary(ctx context.Context, callerID int64, name, description string) (*domain.Beneficiary, error) {
	org, err := ownedOrganization(ctx, s.orgRepo, callerID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation("name is required")
	}

	b := &domain.Beneficiary{
		OrganizationID: org.ID,
		Name:           name,
		Description:    strings.TrimSpace(description),
	}
	if err := s.beneficiaryRepo.Create(ctx, b); err != nil {
		return nil, ErrInternal(err)
	}
	return b, nil
}

func (s *beneficiaryService) ListBeneficiaries(ctx context.Context, callerID int64) ([]domain.Beneficiary, error) {
	org, err := ownedOrganization(ctx, s.orgRepo, callerID)
	if err != nil {
		return nil, err
	}

	list, err := s.beneficiaryRepo.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, ErrInternal(err)
	}
	if list == nil {
		list = []domain.Beneficiary{}
	}
	return list, nil
}

func (s *beneficiaryService) RecordInventory(ctx context.Context, callerID, beneficiaryID int64, itemName string, quantity int32, dateSent *time.Time) (*domain.Inventory, error) {
	b, err := s.ownedBeneficiary(ctx, callerID, beneficiaryID)
	if err != nil {
		return nil, err
	}

	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, ErrValidation("item name is required")
	}
	if quantity < 0 {
		return nil, ErrValidation("quantity must not be negative")
	}

	sent := time.Now().UTC()
	if dateSent != nil {
		sent = dateSent.UTC()
	}

	item := &domain.Inventory{
		BeneficiaryID: b.ID,
		ItemName:      itemName,
		Quantity:      quantity,
		DateSent:      sent,
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, ErrInternal(err)
	}
	return item, nil
}

func (s *beneficiaryService) ListInventory(ctx context.Context, callerID, beneficiaryID int64) ([]domain.Inventory, error) {
	b, err := s.ownedBeneficiary(ctx, callerID, beneficiaryID)
	if err != nil {
		return nil, err
	}

	items, err := s.inventoryRepo.ListByBeneficiary(ctx, b.ID)
	if err != nil {
		return nil, ErrInternal(err)
	}
	if items == nil {
		items = []domain.Inventory{}
	}
	return items, nil
}

// ownedBeneficiary loads a beneficiary and checks it belongs to the caller's organization
func (s *beneficiaryService) ownedBeneficiary(ctx context.Context, callerID, beneficiaryID int64) (*domain.Beneficiary, error) {
	org, err := ownedOrganization(ctx, s.orgRepo, callerID)
	if err != nil {
		return nil, err
	}

	b, err := s.beneficiaryRepo.GetByID(ctx, beneficiaryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound("beneficiary not found")
		}
		return nil, ErrInternal(err)
	}
	if b.OrganizationID != org.ID {
		return nil, ErrForbidden("beneficiary belongs to another organization")
	}
	return b, nil
}
