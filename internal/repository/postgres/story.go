package postgres

import (
	"context"
	"database/sql"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/repository"
)

type storyRepository struct {
	db *sql.DB
}

func NewStoryRepository(db *sql.DB) repository.StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, s *domain.Story) error {
	query := `INSERT INTO stories (organization_id, title, content, image_url) 
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, s.OrganizationID, s.Title, s.Content, nullableString(s.ImageURL)).Scan(&s.ID, &s.CreatedAt)
	return translateError(err)
}

func (r *storyRepository) ListByOrganization(ctx context.Context, orgID int64) ([]domain.Story, error) {
	query := `SELECT id, organization_id, title, content, image_url, created_at FROM stories WHERE organization_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		var s domain.Story
		var imageURL sql.NullString
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.Title, &s.Content, &imageURL, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.ImageURL = stringPtr(imageURL)
		stories = append(stories, s)
	}
	return stories, rows.Err()
}
