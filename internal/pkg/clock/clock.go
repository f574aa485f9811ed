package clock

import (
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day. Window boundaries
// are minute-of-day integers in [0, MinutesPerDay).
const MinutesPerDay = 24 * 60

// siteZone is the fixed zone all shift comparisons run in. Singapore has no
// DST, so a fixed offset is always correct and avoids a tzdata dependency in
// minimal images. Device or server local zones must never leak into window
// math.
var siteZone = time.FixedZone("Asia/Singapore", 8*60*60)

// Zone returns the fixed zone used for all shift calculations.
func Zone() *time.Location {
	return siteZone
}

// MinutesOfDay converts t to the site zone and returns its minute of day.
func MinutesOfDay(t time.Time) int {
	local := t.In(siteZone)
	return local.Hour()*60 + local.Minute()
}

// ParseHHMM parses "HH:MM" into a minute-of-day value. Malformed input
// returns ok=false; callers treat that as "window undefined, never active"
// rather than an error.
func ParseHHMM(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}

	return hour*60 + minute, true
}

// FormatHHMM renders a minute-of-day value back to "HH:MM".
func FormatHHMM(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	h := minutes / 60
	m := minutes % 60
	return twoDigits(h) + ":" + twoDigits(m)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// InWindow reports whether now falls inside [start, end), treating start >
// end as a window that wraps midnight (e.g. 22:00-06:00). start == end is a
// zero-length window and never matches. Every shift and grace comparison in
// the engine goes through this one predicate.
func InWindow(now, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return now >= start && now < end
	}
	return now >= start || now < end
}

// CrossesMidnight reports whether a window wraps past midnight.
func CrossesMidnight(start, end int) bool {
	return start > end
}

// ShiftDate returns the ISO calendar date (site zone) a shift active at now
// logically belongs to. For a midnight-wrapping window the portion before end
// still belongs to the previous day's shift.
func ShiftDate(now time.Time, start, end int) string {
	local := now.In(siteZone)
	if CrossesMidnight(start, end) && MinutesOfDay(now) < end {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format("2006-01-02")
}

// Today returns the current ISO calendar date in the site zone.
func Today(now time.Time) string {
	return now.In(siteZone).Format("2006-01-02")
}

// FormatDuration renders a non-negative duration as "7h58m" for display.
// Negative inputs (clock skew between recorded in/out stamps) clamp to zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d.Minutes())
	return strconv.Itoa(totalMinutes/60) + "h" + strconv.Itoa(totalMinutes%60) + "m"
}
