package attendance

import (
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/clock"
)

// Record is one worker's attendance for a (site, shift, date) tuple. The
// engine only ever derives state from a freshly fetched Record; it never
// mutates one it already holds.
type Record struct {
	ID          string
	SiteID      string
	UserID      string
	Shift       settings.ShiftKind
	Date        string // ISO date the shift belongs to
	TimeIn      *time.Time
	TimeOut     *time.Time
	Early       bool
	EarlyReason *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Duration returns the worked duration, clamped to zero when the recorded
// stamps are skewed (time out at or before time in).
func (r *Record) Duration() time.Duration {
	if r == nil || r.TimeIn == nil || r.TimeOut == nil {
		return 0
	}
	d := r.TimeOut.Sub(*r.TimeIn)
	if d < 0 {
		return 0
	}
	return d
}

// DurationLabel renders the worked duration for display ("7h58m", "0h0m").
func (r *Record) DurationLabel() string {
	return clock.FormatDuration(r.Duration())
}
