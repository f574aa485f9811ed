package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type siteRepository struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepository{db: db}
}

// List implements site.SiteRepository. Order is stable so nearest-site
// tie-breaking is deterministic across passes.
func (r *siteRepository) List(ctx context.Context) ([]site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM sites
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []site.Site
	for rows.Next() {
		var s site.Site
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sites: %w", err)
	}

	return sites, nil
}

// GetByID implements site.SiteRepository.
func (r *siteRepository) GetByID(ctx context.Context, id string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM sites
		WHERE id = $1
	`

	var s site.Site
	err := q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site by id: %w", err)
	}

	return s, nil
}
