package resolution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/shift"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/geo"
	"github.com/go-chi/jwtauth/v5"
)

// AttendanceContext is the atomically published result of one resolution
// pass. It replaces the cross-screen mutable "currently resolved site/shift"
// state: constructed once per pass, immutable after creation.
type AttendanceContext struct {
	Seq        uint64               `json:"seq"`
	ResolvedAt time.Time            `json:"resolved_at"`
	Decision   shift.Decision       `json:"decision"`
	Site       *site.SiteResponse   `json:"site,omitempty"`
	Snapshot   *attendance.Snapshot `json:"snapshot,omitempty"`
}

// ResolveRequest carries the inputs of a resolution pass. When Coordinates is
// nil the configured locator is asked for a position fix.
type ResolveRequest struct {
	SiteID      string           `json:"site_id,omitempty"`
	Coordinates *geo.Coordinates `json:"coordinates,omitempty"`
}

// Service runs resolution passes and publishes their results. Contexts and
// pass sequences are keyed by worker: one worker's pass never observes or
// discards another's. Concurrent passes for the same worker never interleave
// partial writes: each pass builds its context in full, then swaps it in
// under the lock, and a pass that finishes after a newer one started is
// discarded (last-writer-wins by sequence, not arrival order).
type Service struct {
	siteResolver      site.SiteResolver
	shiftResolver     shift.Resolver
	attendanceService attendance.AttendanceService
	locator           geo.Locator // nil when clients always post coordinates
	timeoutPolicy     geo.TimeoutPolicy
	now               func() time.Time

	mu      sync.Mutex
	started map[string]uint64
	current map[string]*AttendanceContext
}

func NewService(
	siteResolver site.SiteResolver,
	shiftResolver shift.Resolver,
	attendanceService attendance.AttendanceService,
	locator geo.Locator,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		siteResolver:      siteResolver,
		shiftResolver:     shiftResolver,
		attendanceService: attendanceService,
		locator:           locator,
		timeoutPolicy:     geo.DefaultTimeoutPolicy(),
		now:               now,
		started:           make(map[string]uint64),
		current:           make(map[string]*AttendanceContext),
	}
}

// begin allocates the worker's next pass sequence number.
func (s *Service) begin(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started[userID]++
	return s.started[userID]
}

// publish swaps the worker's context in unless a newer pass for the same
// worker has started since this one began. Returns whether the context was
// published.
func (s *Service) publish(userID string, ctx AttendanceContext) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Seq != s.started[userID] {
		return false
	}
	s.current[userID] = &ctx
	return true
}

// Current returns the worker's most recently published context, or nil
// before their first completed pass.
func (s *Service) Current(userID string) *AttendanceContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current[userID]
}

// Resolve runs one full resolution pass: position, site, shift, attendance
// snapshot. Expected non-matches (no site in range, no active shift) come
// back as CannotAttend decisions, not errors; only transport failures error.
func (s *Service) Resolve(ctx context.Context, req ResolveRequest) (AttendanceContext, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return AttendanceContext{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return AttendanceContext{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	seq := s.begin(userID)
	now := s.now()
	result := AttendanceContext{Seq: seq, ResolvedAt: now}

	position, err := s.position(ctx, req)
	if err != nil {
		return AttendanceContext{}, err
	}

	resolution, err := s.siteResolver.Resolve(ctx, req.SiteID, position)
	if err != nil {
		reason, ok := siteFailureReason(err)
		if !ok {
			return AttendanceContext{}, err
		}
		result.Decision = shift.CannotAttend(reason, site.SourceNone)
		s.publish(userID, result)
		return result, nil
	}

	siteResp := site.MapSiteToResponse(resolution.Site)
	result.Site = &siteResp

	decision, err := s.shiftResolver.Resolve(ctx, resolution.Site, userID, resolution.Source, now)
	if err != nil {
		return AttendanceContext{}, err
	}
	result.Decision = decision

	if decision.CanAttend {
		snap, err := s.attendanceService.Snapshot(ctx, decision.SiteID, userID, decision.Shift, decision.Date, now)
		if err != nil {
			return AttendanceContext{}, err
		}
		result.Snapshot = &snap
	}

	s.publish(userID, result)
	return result, nil
}

func (s *Service) position(ctx context.Context, req ResolveRequest) (geo.Coordinates, error) {
	if req.Coordinates != nil {
		if !req.Coordinates.Valid() {
			return geo.Coordinates{}, &geo.LocationError{Kind: geo.KindUnavailable, Err: errors.New("coordinates out of range")}
		}
		return *req.Coordinates, nil
	}
	if req.SiteID != "" {
		// Explicit site selection does not need a position at all.
		return geo.Coordinates{}, nil
	}
	if s.locator == nil {
		return geo.Coordinates{}, &geo.LocationError{Kind: geo.KindUnavailable, Err: errors.New("no position source configured")}
	}
	return geo.Acquire(ctx, s.locator, s.timeoutPolicy)
}

// siteFailureReason maps expected site-resolution outcomes to the diagnostic
// reason carried by a CannotAttend decision.
func siteFailureReason(err error) (string, bool) {
	switch {
	case errors.Is(err, site.ErrNearestDisabled):
		return "no siteId & nearest disabled", true
	case errors.Is(err, site.ErrNoSiteInRange):
		return "no site within the geofence radius", true
	case errors.Is(err, site.ErrSiteNotFound):
		return "site not found", true
	}
	return "", false
}
