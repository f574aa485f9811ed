package site

import (
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/geo"
)

// Site is a guarded location with a geofence anchor point.
type Site struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Coordinates returns the site's anchor point.
func (s Site) Coordinates() geo.Coordinates {
	return geo.Coordinates{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Assignment is the authoritative scheduling record for a worker at a site on
// a calendar date. Shift is stored raw; parsing goes through
// settings.ParseShiftKind at resolution time.
type Assignment struct {
	ID        string
	SiteID    string
	UserID    string
	Shift     string
	Date      string // ISO date, used verbatim as the attendance date
	CreatedAt time.Time
	UpdatedAt time.Time
}
