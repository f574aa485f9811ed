package settings

import "context"

// SettingsRepository loads the configured shift boundaries. Implementations
// may cache: the snapshot is immutable for the life of a session.
type SettingsRepository interface {
	// GetShiftSettings returns the configured shift windows, grace period
	// and geofence radius.
	GetShiftSettings(ctx context.Context) (ShiftSettings, error)
}
