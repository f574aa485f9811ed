package tour

import "errors"

var (
	ErrToursNotAllowed = errors.New("tours are not allowed until you are checked in")
)
