package attendance

import (
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	SiteID string `json:"site_id"`
	Shift  string `json:"shift"`
	Date   string `json:"date"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id is required",
		})
	}

	if _, ok := settings.ParseShiftKind(r.Shift); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "shift",
			Message: "shift must be one of day, night, relief-day, relief-night",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	SiteID string `json:"site_id"`
	Shift  string `json:"shift"`
	Date   string `json:"date"`
	// Reason is required when the check-out happens before the checkout
	// window opens; whitespace-only values are rejected before any write.
	Reason string `json:"reason,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id is required",
		})
	}

	if _, ok := settings.ParseShiftKind(r.Shift); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "shift",
			Message: "shift must be one of day, night, relief-day, relief-night",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Snapshot is the derived attendance state for one (site, user, shift, date)
// tuple at one instant.
type Snapshot struct {
	SiteID        string      `json:"site_id"`
	UserID        string      `json:"user_id"`
	Shift         string      `json:"shift"`
	Date          string      `json:"date"`
	Phase         Phase       `json:"phase"`
	Action        ActionState `json:"action"`
	TimeIn        *string     `json:"time_in,omitempty"`
	TimeOut       *string     `json:"time_out,omitempty"`
	DurationLabel string      `json:"duration"`
	Early         bool        `json:"early,omitempty"`
	EarlyReason   *string     `json:"early_reason,omitempty"`
}

// RecordResponse is the wire shape for a stored attendance record.
type RecordResponse struct {
	ID            string  `json:"id"`
	SiteID        string  `json:"site_id"`
	UserID        string  `json:"user_id"`
	Shift         string  `json:"shift"`
	Date          string  `json:"date"`
	TimeIn        *string `json:"time_in,omitempty"`
	TimeOut       *string `json:"time_out,omitempty"`
	DurationLabel string  `json:"duration"`
	Early         bool    `json:"early"`
	EarlyReason   *string `json:"early_reason,omitempty"`
}

// ListResponse is a paginated attendance history.
type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Records    []RecordResponse `json:"records"`
}
