package shift

import (
	"context"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
)

// Source records which rule produced the active shift.
type Source string

const (
	// SourceEmployee means the worker's own assignment at the site decided
	// the shift. An assigned shift is authoritative even when its window is
	// not currently active; window gating happens at attendance time.
	SourceEmployee Source = "employee"
	// SourceRelief means the shift was matched purely by the current time
	// falling into a relief coverage window.
	SourceRelief Source = "relief"
)

// Decision is the outcome of one shift resolution pass. It is produced fresh
// on every pass and never persisted.
type Decision struct {
	CanAttend   bool
	SiteID      string
	Shift       settings.ShiftKind
	ShiftSource Source
	// Date is the ISO calendar date the shift belongs to. For an employee
	// assignment it is the assignment's date verbatim; for a relief match
	// it is derived from now and the window (yesterday for the tail of a
	// midnight-wrapping window).
	Date string
	// Reason is the human-diagnostic explanation when CanAttend is false.
	Reason     string
	SiteSource site.SiteSource
}

// CanAttendAt builds a positive decision.
func CanAttendAt(siteID string, kind settings.ShiftKind, src Source, date string, siteSrc site.SiteSource) Decision {
	return Decision{
		CanAttend:   true,
		SiteID:      siteID,
		Shift:       kind,
		ShiftSource: src,
		Date:        date,
		SiteSource:  siteSrc,
	}
}

// CannotAttend builds a negative decision with a diagnostic reason.
func CannotAttend(reason string, siteSrc site.SiteSource) Decision {
	return Decision{CanAttend: false, Reason: reason, SiteSource: siteSrc}
}

// Resolver determines the active shift variant and the date it belongs to.
type Resolver interface {
	// Resolve applies the precedence rules: the worker's assignment at the
	// site first, then the relief windows, else a CannotAttend decision.
	Resolve(ctx context.Context, st site.Site, userID string, siteSrc site.SiteSource, now time.Time) (Decision, error)
}
