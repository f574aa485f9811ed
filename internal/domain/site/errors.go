package site

import "errors"

var (
	ErrSiteNotFound       = errors.New("site not found")
	ErrNoSiteInRange      = errors.New("no site within the geofence radius")
	ErrNearestDisabled    = errors.New("nearest-site search is disabled")
	ErrAssignmentNotFound = errors.New("no assignment found for this worker")
)
