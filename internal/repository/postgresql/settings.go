package postgresql

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db *database.DB

	mu     sync.Mutex
	cached *settings.ShiftSettings
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// GetShiftSettings implements settings.SettingsRepository. The snapshot is
// immutable for the life of the process, so the first successful load is
// cached.
func (r *settingsRepository) GetShiftSettings(ctx context.Context) (settings.ShiftSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil {
		return *r.cached, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT grace_period_minutes, geofence_radius_meters,
		       day_start, day_end,
		       night_start, night_end,
		       relief_day_start, relief_day_end,
		       relief_night_start, relief_night_end
		FROM shift_settings
		ORDER BY created_at DESC
		LIMIT 1
	`

	var (
		cfg                              settings.ShiftSettings
		dayStart, dayEnd                 string
		nightStart, nightEnd             string
		reliefDayStart, reliefDayEnd     string
		reliefNightStart, reliefNightEnd string
	)
	err := q.QueryRow(ctx, query).Scan(
		&cfg.GracePeriodMinutes, &cfg.GeofenceRadiusMeters,
		&dayStart, &dayEnd,
		&nightStart, &nightEnd,
		&reliefDayStart, &reliefDayEnd,
		&reliefNightStart, &reliefNightEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.ShiftSettings{}, settings.ErrSettingsNotFound
		}
		return settings.ShiftSettings{}, fmt.Errorf("failed to get shift settings: %w", err)
	}

	// Malformed boundary strings become undefined, never-active windows
	// rather than load failures.
	cfg.Day = settings.ParseWindow(dayStart, dayEnd)
	cfg.Night = settings.ParseWindow(nightStart, nightEnd)
	cfg.ReliefDay = settings.ParseWindow(reliefDayStart, reliefDayEnd)
	cfg.ReliefNight = settings.ParseWindow(reliefNightStart, reliefNightEnd)

	r.cached = &cfg
	return cfg, nil
}
