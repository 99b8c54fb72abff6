package postgres

import (
	"context"
	"database/sql"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/repository"
)

type donationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) repository.DonationRepository {
	return &donationRepository{db: db}
}

const donationColumns = `id, user_id, organization_id, amount, is_anonymous, is_recurring, frequency, status, payment_intent_id, created_at`

func (r *donationRepository) Create(ctx context.Context, d *domain.Donation) error {
	query := `INSERT INTO donations (user_id, organization_id, amount, is_anonymous, is_recurring, frequency, status, payment_intent_id) 
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	logger.DatabaseCall(ctx, "INSERT", "donations", "organizationID", d.OrganizationID, "intentID", d.PaymentIntentID)

	var frequency sql.NullString
	if d.Frequency != nil {
		frequency = sql.NullString{String: string(*d.Frequency), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		d.DonorID, d.OrganizationID, d.Amount, d.IsAnonymous, d.IsRecurring, frequency, d.Status, d.PaymentIntentID,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		logger.DatabaseResult(ctx, "INSERT", 0, err, "table", "donations")
		return translateError(err)
	}
	logger.DatabaseResult(ctx, "INSERT", 1, nil, "table", "donations", "donationID", d.ID)
	return nil
}

func (r *donationRepository) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`
	return scanDonation(r.db.QueryRowContext(ctx, query, id))
}

func (r *donationRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE payment_intent_id = $1`
	return scanDonation(r.db.QueryRowContext(ctx, query, intentID))
}

func (r *donationRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.DonationStatus) (bool, error) {
	query := `UPDATE donations SET status = $1 WHERE id = $2 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *donationRepository) ListByOrganization(ctx context.Context, orgID int64) ([]domain.DonationRecord, error) {
	query := `SELECT d.id, d.user_id, d.organization_id, d.amount, d.is_anonymous, d.is_recurring, d.frequency, d.status, d.payment_intent_id, d.created_at,
	                 u.name, u.email
	          FROM donations d
	          JOIN users u ON u.id = d.user_id
	          WHERE d.organization_id = $1
	          ORDER BY d.created_at DESC, d.id DESC`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.DonationRecord
	for rows.Next() {
		var rec domain.DonationRecord
		var frequency sql.NullString
		if err := rows.Scan(
			&rec.ID, &rec.DonorID, &rec.OrganizationID, &rec.Amount, &rec.IsAnonymous, &rec.IsRecurring,
			&frequency, &rec.Status, &rec.PaymentIntentID, &rec.CreatedAt,
			&rec.DonorName, &rec.DonorEmail,
		); err != nil {
			return nil, err
		}
		if frequency.Valid {
			f := domain.DonationFrequency(frequency.String)
			rec.Frequency = &f
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanDonation(row *sql.Row) (*domain.Donation, error) {
	d := &domain.Donation{}
	var frequency sql.NullString
	err := row.Scan(&d.ID, &d.DonorID, &d.OrganizationID, &d.Amount, &d.IsAnonymous, &d.IsRecurring, &frequency, &d.Status, &d.PaymentIntentID, &d.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	if frequency.Valid {
		f := domain.DonationFrequency(frequency.String)
		d.Frequency = &f
	}
	return d, nil
}
