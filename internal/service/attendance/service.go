package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/clock"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	settings.SettingsRepository
	now func() time.Time
}

// NewAttendanceService builds the attendance state machine. now is injected
// so window decisions are testable with a fixed clock.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	settingsRepo settings.SettingsRepository,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		SettingsRepository:   settingsRepo,
		now:                  now,
	}
}

// timePtrToString renders a timestamp in the site zone for display.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(clock.Zone()).Format("2006-01-02 15:04:05")
	return &formatted
}

func userIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// Snapshot implements attendance.AttendanceService. Phase and permitted
// action are a pure function of the freshly fetched record and now.
func (s *AttendanceServiceImpl) Snapshot(ctx context.Context, siteID, userID string, kind settings.ShiftKind, date string, now time.Time) (attendance.Snapshot, error) {
	cfg, err := s.SettingsRepository.GetShiftSettings(ctx)
	if err != nil {
		return attendance.Snapshot{}, fmt.Errorf("failed to get shift settings: %w", err)
	}

	rec, err := s.AttendanceRepository.Get(ctx, siteID, userID, kind, date)
	if err != nil {
		return attendance.Snapshot{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	phase := attendance.PhaseOf(rec)
	action := attendance.EvaluateAction(phase, clock.MinutesOfDay(now), cfg.WindowFor(kind), cfg.GracePeriodMinutes)

	snap := attendance.Snapshot{
		SiteID:        siteID,
		UserID:        userID,
		Shift:         string(kind),
		Date:          date,
		Phase:         phase,
		Action:        action,
		DurationLabel: rec.DurationLabel(),
	}
	if rec != nil {
		snap.TimeIn = timePtrToString(rec.TimeIn)
		snap.TimeOut = timePtrToString(rec.TimeOut)
		snap.Early = rec.Early
		snap.EarlyReason = rec.EarlyReason
	}
	return snap, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Snapshot, error) {
	if err := req.Validate(); err != nil {
		return attendance.Snapshot{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.Snapshot{}, err
	}

	kind, _ := settings.ParseShiftKind(req.Shift)
	now := s.now()

	snap, err := s.Snapshot(ctx, req.SiteID, userID, kind, req.Date, now)
	if err != nil {
		return attendance.Snapshot{}, err
	}

	switch snap.Phase {
	case attendance.PhaseCheckedIn, attendance.PhaseCompleted:
		return attendance.Snapshot{}, attendance.ErrAlreadyCheckedIn
	}
	if snap.Action.Action != attendance.ActionCheckIn || !snap.Action.Enabled {
		return attendance.Snapshot{}, attendance.ErrCheckInNotOpen
	}

	if err := s.AttendanceRepository.CheckIn(ctx, req.SiteID, userID, kind, req.Date); err != nil {
		return attendance.Snapshot{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	// Re-fetch instead of assuming the write's outcome.
	return s.Snapshot(ctx, req.SiteID, userID, kind, req.Date, now)
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.Snapshot, error) {
	if err := req.Validate(); err != nil {
		return attendance.Snapshot{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.Snapshot{}, err
	}

	kind, _ := settings.ParseShiftKind(req.Shift)
	now := s.now()

	snap, err := s.Snapshot(ctx, req.SiteID, userID, kind, req.Date, now)
	if err != nil {
		return attendance.Snapshot{}, err
	}

	switch snap.Phase {
	case attendance.PhaseNotStarted:
		return attendance.Snapshot{}, attendance.ErrNotCheckedIn
	case attendance.PhaseCompleted:
		return attendance.Snapshot{}, attendance.ErrAlreadyCheckedOut
	}
	if snap.Action.Action != attendance.ActionCheckOut || !snap.Action.Enabled {
		return attendance.Snapshot{}, attendance.ErrCheckOutNotOpen
	}

	// An early check-out must carry a non-empty justification before the
	// intent is issued.
	if snap.Action.RequiresReason && validator.IsEmpty(req.Reason) {
		return attendance.Snapshot{}, attendance.ErrEarlyReasonMissing
	}

	if err := s.AttendanceRepository.CheckOut(ctx, req.SiteID, userID, kind, req.Date, snap.Action.Early, req.Reason); err != nil {
		return attendance.Snapshot{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	return s.Snapshot(ctx, req.SiteID, userID, kind, req.Date, now)
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, page, limit int) (attendance.ListResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	records, total, err := s.AttendanceRepository.ListForWorker(ctx, userID, page, limit)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Showing:    showing,
		Records:    responses,
	}, nil
}

func mapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:            rec.ID,
		SiteID:        rec.SiteID,
		UserID:        rec.UserID,
		Shift:         string(rec.Shift),
		Date:          rec.Date,
		TimeIn:        timePtrToString(rec.TimeIn),
		TimeOut:       timePtrToString(rec.TimeOut),
		DurationLabel: rec.DurationLabel(),
		Early:         rec.Early,
		EarlyReason:   rec.EarlyReason,
	}
}
