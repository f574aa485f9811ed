package attendance

import (
	"context"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
)

// AttendanceRepository defines data access for attendance records. The
// engine derives all state from what these methods return; it never assumes
// the outcome of a write and re-fetches after every issued action.
type AttendanceRepository interface {
	// Get returns the record for the (site, user, shift, date) tuple, or
	// nil when no check-in has been recorded.
	Get(ctx context.Context, siteID, userID string, shift settings.ShiftKind, date string) (*Record, error)

	// CheckIn records the check-in intent for the tuple. Fails with
	// ErrAlreadyCheckedIn when a record already carries a time-in.
	CheckIn(ctx context.Context, siteID, userID string, shift settings.ShiftKind, date string) error

	// CheckOut records the check-out intent on the existing record,
	// flagging it early with the reason when early is set. Fails with
	// ErrNotCheckedIn / ErrAlreadyCheckedOut on phase mismatch.
	CheckOut(ctx context.Context, siteID, userID string, shift settings.ShiftKind, date string, early bool, reason string) error

	// ListForWorker returns the worker's records newest first, paginated.
	ListForWorker(ctx context.Context, userID string, page, limit int) ([]Record, int64, error)
}
