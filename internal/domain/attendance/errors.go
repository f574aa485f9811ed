package attendance

import "errors"

var (
	// Check-in errors
	ErrAlreadyCheckedIn   = errors.New("you have already checked in for this shift")
	ErrCheckInNotOpen     = errors.New("check-in window is not open")
	ErrNotCheckedIn       = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out")
	ErrCheckOutNotOpen    = errors.New("check-out window is not open")
	ErrEarlyReasonMissing = errors.New("early check-out requires a reason")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
