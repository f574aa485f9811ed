package site

import (
	"context"

	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/geo"
)

// SiteSource records how the active site was determined.
type SiteSource string

const (
	// SourceParam means the caller named the site explicitly. Explicit
	// selection always wins, regardless of distance.
	SourceParam SiteSource = "param"
	// SourceNearest means the site was found by geofenced nearest search.
	SourceNearest SiteSource = "nearest"
	// SourceNone means no site could be resolved at all.
	SourceNone SiteSource = "none"
)

// Resolution is the outcome of a successful site lookup.
type Resolution struct {
	Site           Site
	Source         SiteSource
	DistanceMeters float64 // 0 for explicit selection
}

// SiteResolver determines the authoritative site for a worker's position.
type SiteResolver interface {
	// Resolve returns the explicit site when explicitSiteID is set,
	// otherwise the nearest site within the configured geofence radius.
	// Fails with ErrSiteNotFound, ErrNearestDisabled or ErrNoSiteInRange.
	Resolve(ctx context.Context, explicitSiteID string, position geo.Coordinates) (Resolution, error)
}
