package shift

import "errors"

var (
	ErrNoActiveShift = errors.New("no assignment or relief window matches the current time")
)
