package postgres

import (
	"context"
	"database/sql"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	query := `INSERT INTO organizations (user_id, name, description, status) 
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, o.OwnerID, o.Name, o.Description, o.Status).Scan(&o.ID, &o.CreatedAt)
	return translateError(err)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, user_id, name, description, status, created_at FROM organizations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.OwnerID, &o.Name, &o.Description, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return o, nil
}

func (r *organizationRepository) GetByOwner(ctx context.Context, ownerID int64) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, user_id, name, description, status, created_at FROM organizations WHERE user_id = $1 ORDER BY id LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&o.ID, &o.OwnerID, &o.Name, &o.Description, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return o, nil
}

func (r *organizationRepository) ListByStatus(ctx context.Context, status domain.OrganizationStatus) ([]domain.Organization, error) {
	query := `SELECT id, user_id, name, description, status, created_at FROM organizations WHERE status = $1 ORDER BY id`
	logger.DatabaseCall(ctx, "SELECT", "organizations", "status", status)

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		logger.DatabaseResult(ctx, "SELECT", 0, err, "status", status)
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.Name, &o.Description, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logger.DatabaseResult(ctx, "SELECT", int64(len(orgs)), nil, "status", status)
	return orgs, nil
}

func (r *organizationRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrganizationStatus) error {
	query := `UPDATE organizations SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
