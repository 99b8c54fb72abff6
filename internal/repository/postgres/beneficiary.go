package postgres

import (
	"context"
	"database/sql"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/repository"
)

type beneficiaryRepository struct {
	db *sql.DB
}

func NewBeneficiaryRepository(db *sql.DB) repository.BeneficiaryRepository {
	return &beneficiaryRepository{db: db}
}

func (r *beneficiaryRepository) Create(ctx context.Context, b *domain.Beneficiary) error {
	query := `INSERT INTO beneficiaries (organization_id, name, description) 
	          VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, b.OrganizationID, b.Name, b.Description).Scan(&b.ID, &b.CreatedAt)
	return translateError(err)
}

func (r *beneficiaryRepository) GetByID(ctx context.Context, id int64) (*domain.Beneficiary, error) {
	b := &domain.Beneficiary{}
	query := `SELECT id, organization_id, name, description, created_at FROM beneficiaries WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.OrganizationID, &b.Name, &b.Description, &b.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return b, nil
}

func (r *beneficiaryRepository) ListByOrganization(ctx context.Context, orgID int64) ([]domain.Beneficiary, error) {
	query := `SELECT id, organization_id, name, description, created_at FROM beneficiaries WHERE organization_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Beneficiary
	for rows.Next() {
		var b domain.Beneficiary
		if err := rows.Scan(&b.ID, &b.OrganizationID, &b.Name, &b.Description, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.Inventory) error {
	query := `INSERT INTO inventory (beneficiary_id, item_name, quantity, date_sent) 
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, item.BeneficiaryID, item.ItemName, item.Quantity, item.DateSent).Scan(&item.ID, &item.CreatedAt)
	return translateError(err)
}

func (r *inventoryRepository) ListByBeneficiary(ctx context.Context, beneficiaryID int64) ([]domain.Inventory, error) {
	query := `SELECT id, beneficiary_id, item_name, quantity, date_sent, created_at FROM inventory WHERE beneficiary_id = $1 ORDER BY date_sent DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, beneficiaryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Inventory
	for rows.Next() {
		var it domain.Inventory
		if err := rows.Scan(&it.ID, &it.BeneficiaryID, &it.ItemName, &it.Quantity, &it.DateSent, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
