package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) site.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// GetForWorker implements site.AssignmentRepository. Multiple assignments may
// exist upstream for the same tuple; the first match in stable order wins.
func (r *assignmentRepository) GetForWorker(ctx context.Context, userID, siteID, date string) (*site.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, site_id, user_id, shift, date, created_at, updated_at
		FROM site_assignments
		WHERE user_id = $1
		  AND date = $2
		  AND ($3 = '' OR site_id = $3)
		ORDER BY created_at, id
		LIMIT 1
	`

	var a site.Assignment
	err := q.QueryRow(ctx, query, userID, date, siteID).Scan(
		&a.ID, &a.SiteID, &a.UserID, &a.Shift, &a.Date, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assignment for worker: %w", err)
	}

	return &a, nil
}

// ListForWorker implements site.AssignmentRepository.
func (r *assignmentRepository) ListForWorker(ctx context.Context, userID, date string) ([]site.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, site_id, user_id, shift, date, created_at, updated_at
		FROM site_assignments
		WHERE user_id = $1
		  AND date = $2
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []site.Assignment
	for rows.Next() {
		var a site.Assignment
		if err := rows.Scan(&a.ID, &a.SiteID, &a.UserID, &a.Shift, &a.Date, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}
