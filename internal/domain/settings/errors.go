package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("shift settings not configured")
)
