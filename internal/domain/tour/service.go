package tour

import (
	"context"
	"time"
)

// GateResult says whether guard-tour rounds may be started right now.
// Tours are allowed only while the worker is checked in for the resolved
// site/shift/date; otherwise the resolver's reason is surfaced.
type GateResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	SiteID  string `json:"site_id,omitempty"`
	Shift   string `json:"shift,omitempty"`
	Date    string `json:"date,omitempty"`
}

// TourGate gates the tour-round feature on attendance state. It is evaluated
// once per tour-page entry, not continuously.
type TourGate interface {
	Allowed(ctx context.Context, siteID string, now time.Time) (GateResult, error)
}
