package settings

import (
	"regexp"
	"strings"

	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/clock"
)

// ShiftKind identifies one of the four configured shift variants.
type ShiftKind string

const (
	ShiftDay         ShiftKind = "day"
	ShiftNight       ShiftKind = "night"
	ShiftReliefDay   ShiftKind = "relief-day"
	ShiftReliefNight ShiftKind = "relief-night"
)

var ShiftKindValues = []string{
	string(ShiftDay),
	string(ShiftNight),
	string(ShiftReliefDay),
	string(ShiftReliefNight),
}

var shiftSeparators = regexp.MustCompile(`[\s_]+`)

// ParseShiftKind normalizes raw shift labels ("relief-night", "relief_night",
// "Relief Night") into a ShiftKind. This is the only place shift strings are
// normalized; no call site carries its own variant handling.
func ParseShiftKind(raw string) (ShiftKind, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = shiftSeparators.ReplaceAllString(normalized, "-")

	switch ShiftKind(normalized) {
	case ShiftDay, ShiftNight, ShiftReliefDay, ShiftReliefNight:
		return ShiftKind(normalized), true
	}
	return "", false
}

// IsRelief reports whether the kind is one of the relief coverage shifts.
func (k ShiftKind) IsRelief() bool {
	return k == ShiftReliefDay || k == ShiftReliefNight
}

// Window is a configured shift boundary pair in minute-of-day values. Start
// equal to End means a zero-length window that is never active. Defined is
// false when the stored HH:MM could not be parsed, which likewise makes the
// window never active.
type Window struct {
	Start   int
	End     int
	Defined bool
}

// Contains reports whether the minute-of-day value falls inside the window,
// honoring midnight wrap.
func (w Window) Contains(minuteOfDay int) bool {
	if !w.Defined {
		return false
	}
	return clock.InWindow(minuteOfDay, w.Start, w.End)
}

// CrossesMidnight reports whether the window wraps past midnight.
func (w Window) CrossesMidnight() bool {
	return w.Defined && clock.CrossesMidnight(w.Start, w.End)
}

// ParseWindow builds a Window from stored "HH:MM" boundary strings. A
// malformed boundary yields an undefined window rather than an error.
func ParseWindow(start, end string) Window {
	s, okS := clock.ParseHHMM(start)
	e, okE := clock.ParseHHMM(end)
	if !okS || !okE {
		return Window{}
	}
	return Window{Start: s, End: e, Defined: true}
}

// ShiftSettings is the immutable per-session snapshot of configured shift
// boundaries. It is loaded once at startup and treated as read-only.
type ShiftSettings struct {
	GracePeriodMinutes   int
	GeofenceRadiusMeters int
	Day                  Window
	Night                Window
	ReliefDay            Window
	ReliefNight          Window
}

// WindowFor returns the configured window for a shift kind.
func (s ShiftSettings) WindowFor(kind ShiftKind) Window {
	switch kind {
	case ShiftDay:
		return s.Day
	case ShiftNight:
		return s.Night
	case ShiftReliefDay:
		return s.ReliefDay
	case ShiftReliefNight:
		return s.ReliefNight
	}
	return Window{}
}

// NearestSearchEnabled reports whether geofenced nearest-site search is on.
// A radius of zero or below is the configured escape hatch that disables it.
func (s ShiftSettings) NearestSearchEnabled() bool {
	return s.GeofenceRadiusMeters > 0
}
