package tour

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/shift"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/tour"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type TourGateImpl struct {
	site.SiteRepository
	shiftResolver     shift.Resolver
	attendanceService attendance.AttendanceService
}

func NewTourGate(siteRepo site.SiteRepository, shiftResolver shift.Resolver, attendanceService attendance.AttendanceService) tour.TourGate {
	return &TourGateImpl{
		SiteRepository:    siteRepo,
		shiftResolver:     shiftResolver,
		attendanceService: attendanceService,
	}
}

// Allowed implements tour.TourGate. A round may start only while the worker
// is checked in for the resolved site/shift/date; any other outcome carries
// the specific reason for the denial.
func (t *TourGateImpl) Allowed(ctx context.Context, siteID string, now time.Time) (tour.GateResult, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return tour.GateResult{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return tour.GateResult{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	st, err := t.SiteRepository.GetByID(ctx, siteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, site.ErrSiteNotFound) {
			return tour.GateResult{}, site.ErrSiteNotFound
		}
		return tour.GateResult{}, fmt.Errorf("failed to get site: %w", err)
	}

	decision, err := t.shiftResolver.Resolve(ctx, st, userID, site.SourceParam, now)
	if err != nil {
		return tour.GateResult{}, fmt.Errorf("failed to resolve shift: %w", err)
	}
	if !decision.CanAttend {
		return tour.GateResult{Allowed: false, Reason: decision.Reason, SiteID: siteID}, nil
	}

	snap, err := t.attendanceService.Snapshot(ctx, siteID, userID, decision.Shift, decision.Date, now)
	if err != nil {
		return tour.GateResult{}, fmt.Errorf("failed to get attendance snapshot: %w", err)
	}

	result := tour.GateResult{
		SiteID: siteID,
		Shift:  string(decision.Shift),
		Date:   decision.Date,
	}
	if snap.Phase != attendance.PhaseCheckedIn {
		result.Reason = snap.Action.Label
		return result, nil
	}

	result.Allowed = true
	return result, nil
}
