package shiftresolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/shift"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/clock"
)

type ShiftResolverImpl struct {
	site.AssignmentRepository
	settings.SettingsRepository
}

func NewShiftResolver(assignmentRepo site.AssignmentRepository, settingsRepo settings.SettingsRepository) shift.Resolver {
	return &ShiftResolverImpl{
		AssignmentRepository: assignmentRepo,
		SettingsRepository:   settingsRepo,
	}
}

// Resolve implements shift.Resolver. Precedence is strict: a worker
// explicitly scheduled at the site always beats ad-hoc relief coverage, even
// when the assigned window is not currently active. Window gating belongs to
// the attendance state machine, not here.
func (s *ShiftResolverImpl) Resolve(ctx context.Context, st site.Site, userID string, siteSrc site.SiteSource, now time.Time) (shift.Decision, error) {
	cfg, err := s.SettingsRepository.GetShiftSettings(ctx)
	if err != nil {
		return shift.Decision{}, fmt.Errorf("failed to get shift settings: %w", err)
	}

	// 1. Employee-assigned shift at this site.
	assignment, err := s.AssignmentRepository.GetForWorker(ctx, userID, st.ID, clock.Today(now))
	if err != nil {
		return shift.Decision{}, fmt.Errorf("failed to get worker assignment: %w", err)
	}
	if assignment == nil {
		// A midnight-crossing assignment dated D is still the active
		// shift during its tail on D+1; an exact-date lookup for D+1
		// misses it.
		assignment, err = s.overnightCarryOver(ctx, cfg, userID, st.ID, now)
		if err != nil {
			return shift.Decision{}, fmt.Errorf("failed to get worker assignment: %w", err)
		}
	}
	if assignment != nil {
		if kind, ok := settings.ParseShiftKind(assignment.Shift); ok {
			// The assignment's date is used verbatim as the attendance
			// date, never recomputed from now.
			return shift.CanAttendAt(st.ID, kind, shift.SourceEmployee, assignment.Date, siteSrc), nil
		}
		slog.Warn("assignment carries unknown shift label, falling through to relief",
			"user_id", userID, "site_id", st.ID, "shift", assignment.Shift)
	}

	// 2. Relief fallback, day window checked before night.
	nowMinutes := clock.MinutesOfDay(now)
	for _, kind := range []settings.ShiftKind{settings.ShiftReliefDay, settings.ShiftReliefNight} {
		window := cfg.WindowFor(kind)
		if !window.Contains(nowMinutes) {
			continue
		}
		date := clock.Today(now)
		if window.CrossesMidnight() {
			date = clock.ShiftDate(now, window.Start, window.End)
		}
		return shift.CanAttendAt(st.ID, kind, shift.SourceRelief, date, siteSrc), nil
	}

	// 3. Neither resolves.
	return shift.CannotAttend("current time does not fall into relief day/night", siteSrc), nil
}

// overnightCarryOver returns yesterday's assignment when its shift window
// crosses midnight and now still falls inside the tail of that window.
func (s *ShiftResolverImpl) overnightCarryOver(ctx context.Context, cfg settings.ShiftSettings, userID, siteID string, now time.Time) (*site.Assignment, error) {
	yesterday := clock.Today(now.AddDate(0, 0, -1))
	assignment, err := s.AssignmentRepository.GetForWorker(ctx, userID, siteID, yesterday)
	if err != nil || assignment == nil {
		return assignment, err
	}

	kind, ok := settings.ParseShiftKind(assignment.Shift)
	if !ok {
		return nil, nil
	}
	window := cfg.WindowFor(kind)
	if !window.Defined || !window.CrossesMidnight() {
		return nil, nil
	}
	if clock.MinutesOfDay(now) >= window.End {
		return nil, nil
	}
	return assignment, nil
}
