package response

import (
	"errors"
	"net/http"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/auth"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/geo"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Every expected condition
// gets a specific, actionable message; only genuinely unexpected failures
// fall through to a 500.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Location acquisition failures are recoverable; tell the worker what
	// to fix.
	if le, ok := geo.AsLocationError(err); ok {
		switch le.Kind {
		case geo.KindPermissionDenied:
			Forbidden(w, "Location permission denied. Allow location access and try again")
		case geo.KindInsecureContext:
			BadRequest(w, "Location requires a secure (HTTPS) connection", nil)
		case geo.KindTimeout:
			BadRequest(w, "Timed out getting your location. Move to open sky and retry", nil)
		default:
			BadRequest(w, "Your location is unavailable. Check device location settings and retry", nil)
		}
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Site domain errors
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")
	case errors.Is(err, site.ErrNoSiteInRange):
		NotFound(w, "No site within range. Move closer to your site or contact your admin")
	case errors.Is(err, site.ErrNearestDisabled):
		BadRequest(w, "Nearest-site search is disabled. Select a site explicitly", nil)
	case errors.Is(err, site.ErrAssignmentNotFound):
		NotFound(w, "No assignment found for this worker")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Shift settings are not configured")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in for this shift")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "You have not checked in yet")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out")
	case errors.Is(err, attendance.ErrCheckInNotOpen):
		Forbidden(w, "Check-in window is not open")
	case errors.Is(err, attendance.ErrCheckOutNotOpen):
		Forbidden(w, "Check-out window is not open")
	case errors.Is(err, attendance.ErrEarlyReasonMissing):
		BadRequest(w, "Early check-out requires a reason", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
