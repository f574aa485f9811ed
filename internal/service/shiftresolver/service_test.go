package shiftresolver

import (
	"context"
	"testing"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/shift"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssignmentRepo struct {
	assignments []site.Assignment
}

func (f *fakeAssignmentRepo) GetForWorker(ctx context.Context, userID, siteID, date string) (*site.Assignment, error) {
	for i, a := range f.assignments {
		if a.UserID != userID {
			continue
		}
		if a.Date != date {
			continue
		}
		if siteID != "" && a.SiteID != siteID {
			continue
		}
		return &f.assignments[i], nil
	}
	return nil, nil
}

func (f *fakeAssignmentRepo) ListForWorker(ctx context.Context, userID, date string) ([]site.Assignment, error) {
	var out []site.Assignment
	for _, a := range f.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	cfg settings.ShiftSettings
}

func (f *fakeSettingsRepo) GetShiftSettings(ctx context.Context) (settings.ShiftSettings, error) {
	return f.cfg, nil
}

func testSettings() settings.ShiftSettings {
	return settings.ShiftSettings{
		GracePeriodMinutes:   15,
		GeofenceRadiusMeters: 100,
		Day:                  settings.ParseWindow("08:00", "20:00"),
		Night:                settings.ParseWindow("20:00", "08:00"),
		ReliefDay:            settings.ParseWindow("09:00", "18:00"),
		ReliefNight:          settings.ParseWindow("21:00", "06:00"),
	}
}

var testSite = site.Site{ID: "site-a", Name: "Alpha Tower"}

// sgt builds an instant at the given Singapore wall-clock time.
func sgt(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.FixedZone("Asia/Singapore", 8*60*60))
}

func newResolver(assignments ...site.Assignment) shift.Resolver {
	return NewShiftResolver(
		&fakeAssignmentRepo{assignments: assignments},
		&fakeSettingsRepo{cfg: testSettings()},
	)
}

func TestResolve_AssignmentBeatsRelief(t *testing.T) {
	// 10:00 SGT is inside the relief-day window, but the worker is
	// explicitly scheduled for the night shift at this site.
	r := newResolver(site.Assignment{
		SiteID: "site-a", UserID: "guard-1", Shift: "night", Date: "2026-03-02",
	})

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceParam, sgt(2026, 3, 2, 10, 0))
	require.NoError(t, err)
	assert.True(t, d.CanAttend)
	assert.Equal(t, settings.ShiftNight, d.Shift)
	assert.Equal(t, shift.SourceEmployee, d.ShiftSource)
	assert.Equal(t, "2026-03-02", d.Date, "assignment date is used verbatim")
}

func TestResolve_AssignmentShiftLabelVariants(t *testing.T) {
	r := newResolver(site.Assignment{
		SiteID: "site-a", UserID: "guard-1", Shift: "Relief Night", Date: "2026-03-02",
	})

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceParam, sgt(2026, 3, 2, 10, 0))
	require.NoError(t, err)
	assert.True(t, d.CanAttend)
	assert.Equal(t, settings.ShiftReliefNight, d.Shift)
	assert.Equal(t, shift.SourceEmployee, d.ShiftSource)
}

func TestResolve_ReliefDayFallback(t *testing.T) {
	r := newResolver() // no assignments

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceNearest, sgt(2026, 3, 2, 10, 0))
	require.NoError(t, err)
	assert.True(t, d.CanAttend)
	assert.Equal(t, settings.ShiftReliefDay, d.Shift)
	assert.Equal(t, shift.SourceRelief, d.ShiftSource)
	assert.Equal(t, "2026-03-02", d.Date)
}

func TestResolve_ReliefNightBeforeMidnight(t *testing.T) {
	r := newResolver()

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceNearest, sgt(2026, 3, 2, 23, 0))
	require.NoError(t, err)
	assert.Equal(t, settings.ShiftReliefNight, d.Shift)
	assert.Equal(t, "2026-03-02", d.Date)
}

func TestResolve_ReliefNightAfterMidnightDatesYesterday(t *testing.T) {
	// 03:00 SGT on March 3rd is the tail of the 21:00-06:00 relief-night
	// window that started on March 2nd.
	r := newResolver()

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceNearest, sgt(2026, 3, 3, 3, 0))
	require.NoError(t, err)
	assert.Equal(t, settings.ShiftReliefNight, d.Shift)
	assert.Equal(t, "2026-03-02", d.Date)
}

func TestResolve_OvernightAssignmentCarriesPastMidnight(t *testing.T) {
	// The 20:00-08:00 night shift assigned for March 2nd is still the
	// active assignment at 03:00 on March 3rd; relief-night must not win.
	r := newResolver(site.Assignment{
		SiteID: "site-a", UserID: "guard-1", Shift: "night", Date: "2026-03-02",
	})

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceParam, sgt(2026, 3, 3, 3, 0))
	require.NoError(t, err)
	assert.True(t, d.CanAttend)
	assert.Equal(t, settings.ShiftNight, d.Shift)
	assert.Equal(t, shift.SourceEmployee, d.ShiftSource)
	assert.Equal(t, "2026-03-02", d.Date, "assignment date is used verbatim")
}

func TestResolve_OvernightCarryOverEndsWithWindow(t *testing.T) {
	// 08:30 is past the night window's 08:00 end, so yesterday's
	// assignment no longer applies and no relief window is active yet.
	r := newResolver(site.Assignment{
		SiteID: "site-a", UserID: "guard-1", Shift: "night", Date: "2026-03-02",
	})

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceParam, sgt(2026, 3, 3, 8, 30))
	require.NoError(t, err)
	assert.False(t, d.CanAttend)
}

func TestResolve_DayAssignmentDoesNotCarryOver(t *testing.T) {
	// Yesterday's day shift ended at 20:00; at 03:00 the next morning
	// only the relief-night window applies.
	r := newResolver(site.Assignment{
		SiteID: "site-a", UserID: "guard-1", Shift: "day", Date: "2026-03-02",
	})

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceParam, sgt(2026, 3, 3, 3, 0))
	require.NoError(t, err)
	assert.True(t, d.CanAttend)
	assert.Equal(t, settings.ShiftReliefNight, d.Shift)
	assert.Equal(t, shift.SourceRelief, d.ShiftSource)
}

func TestResolve_NoActiveShift(t *testing.T) {
	// 06:30 SGT falls between relief-night end (06:00) and relief-day
	// start (09:00).
	r := newResolver()

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceNearest, sgt(2026, 3, 2, 6, 30))
	require.NoError(t, err)
	assert.False(t, d.CanAttend)
	assert.NotEmpty(t, d.Reason)
}

func TestResolve_UnknownAssignmentShiftFallsThroughToRelief(t *testing.T) {
	r := newResolver(site.Assignment{
		SiteID: "site-a", UserID: "guard-1", Shift: "graveyard", Date: "2026-03-02",
	})

	d, err := r.Resolve(context.Background(), testSite, "guard-1", site.SourceParam, sgt(2026, 3, 2, 10, 0))
	require.NoError(t, err)
	assert.True(t, d.CanAttend)
	assert.Equal(t, shift.SourceRelief, d.ShiftSource)
}
