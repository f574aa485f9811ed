package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Get implements attendance.AttendanceRepository.
func (r *attendanceRepository) Get(ctx context.Context, siteID, userID string, shift settings.ShiftKind, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, site_id, user_id, shift, date,
		       time_in, time_out, early, early_reason,
		       created_at, updated_at
		FROM attendances
		WHERE site_id = $1 AND user_id = $2 AND shift = $3 AND date = $4
		LIMIT 1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, siteID, userID, string(shift), date).Scan(
		&rec.ID, &rec.SiteID, &rec.UserID, &rec.Shift, &rec.Date,
		&rec.TimeIn, &rec.TimeOut, &rec.Early, &rec.EarlyReason,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// CheckIn implements attendance.AttendanceRepository. The unique constraint
// on (site_id, user_id, shift, date) makes a double check-in a no-op insert.
func (r *attendanceRepository) CheckIn(ctx context.Context, siteID, userID string, shift settings.ShiftKind, date string) error {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (id, site_id, user_id, shift, date, time_in)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (site_id, user_id, shift, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, id.String(), siteID, userID, string(shift), date)
	if err != nil {
		return fmt.Errorf("failed to insert attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedIn
	}

	return nil
}

// CheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) CheckOut(ctx context.Context, siteID, userID string, shift settings.ShiftKind, date string, early bool, reason string) error {
	q := GetQuerier(ctx, r.db)

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	query := `
		UPDATE attendances
		SET time_out = NOW(), early = $5, early_reason = $6, updated_at = NOW()
		WHERE site_id = $1 AND user_id = $2 AND shift = $3 AND date = $4
		  AND time_in IS NOT NULL
		  AND time_out IS NULL
	`

	tag, err := q.Exec(ctx, query, siteID, userID, string(shift), date, early, reasonPtr)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish "never checked in" from "already checked out".
		rec, err := r.Get(ctx, siteID, userID, shift, date)
		if err != nil {
			return err
		}
		if rec == nil || rec.TimeIn == nil {
			return attendance.ErrNotCheckedIn
		}
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// ListForWorker implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListForWorker(ctx context.Context, userID string, page, limit int) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances WHERE user_id = $1`
	if err := q.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `
		SELECT id, site_id, user_id, shift, date,
		       time_in, time_out, early, early_reason,
		       created_at, updated_at
		FROM attendances
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.SiteID, &rec.UserID, &rec.Shift, &rec.Date,
			&rec.TimeIn, &rec.TimeOut, &rec.Early, &rec.EarlyReason,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}
