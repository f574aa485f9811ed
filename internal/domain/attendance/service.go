package attendance

import (
	"context"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
)

// AttendanceService derives attendance state and issues check-in/out intents.
// State is always recomputed from a fresh fetch; after any issued action the
// service re-fetches rather than mutating what it already holds, so
// server-side validation stays authoritative.
type AttendanceService interface {
	// Snapshot fetches the record for the tuple and derives phase and
	// permitted action at now.
	Snapshot(ctx context.Context, siteID, userID string, shift settings.ShiftKind, date string, now time.Time) (Snapshot, error)

	// CheckIn validates the check-in window and issues the intent for the
	// authenticated worker, then returns a fresh snapshot.
	CheckIn(ctx context.Context, req CheckInRequest) (Snapshot, error)

	// CheckOut validates the check-out window (collecting an early reason
	// when required) and issues the intent, then returns a fresh snapshot.
	CheckOut(ctx context.Context, req CheckOutRequest) (Snapshot, error)

	// GetMyAttendance lists the authenticated worker's records.
	GetMyAttendance(ctx context.Context, page, limit int) (ListResponse, error)
}
