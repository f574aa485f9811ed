package site

import "context"

// SiteRepository defines data access for guarded sites.
type SiteRepository interface {
	// List retrieves all sites.
	List(ctx context.Context) ([]Site, error)

	// GetByID retrieves a single site.
	GetByID(ctx context.Context, id string) (Site, error)
}

// AssignmentRepository defines data access for site-worker assignments.
type AssignmentRepository interface {
	// GetForWorker returns the worker's assignment on the given date,
	// optionally scoped to a site (empty siteID means any site). When
	// multiple assignments exist upstream the first match wins. Returns
	// nil when no assignment exists.
	GetForWorker(ctx context.Context, userID, siteID, date string) (*Assignment, error)

	// ListForWorker returns the worker's assignments on the given date
	// across all sites, in stable order.
	ListForWorker(ctx context.Context, userID, date string) ([]Assignment, error)
}
