package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/models"
)

const attendanceTable = "attendance"

var attendanceColumns = []string{
	"id", "sis_id", "student_id", "date", "period", "status", "note",
	"sync_status", "last_modified",
}

type attendanceRepository struct {
	*DB
	logger *logger.Logger
}

func NewAttendanceRepository(db *DB, logger *logger.Logger) AttendanceRepository {
	return &attendanceRepository{DB: db, logger: logger}
}

func (r *attendanceRepository) Save(ctx context.Context, a *models.Attendance) error {
	stampLocalEdit(&a.SyncMeta, uuid.NewString)

	query, args, err := qb.Insert(attendanceTable).
		Columns(attendanceColumns...).
		Values(a.ID, a.SISID, a.StudentID, a.Date, a.Period, string(a.Status),
			a.Note, string(a.SyncStatus), a.LastModified).
		Suffix(upsertSuffix(attendanceColumns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("build attendance upsert: %w", err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save attendance (id=%s): %w", a.ID, err)
	}
	return nil
}

func (r *attendanceRepository) Get(ctx context.Context, id string) (models.Attendance, error) {
	query, args, err := qb.Select(attendanceColumns...).
		From(attendanceTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Attendance{}, fmt.Errorf("build attendance select: %w", err)
	}

	a, err := scanAttendance(r.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Attendance{}, ErrNotFound
	}
	if err != nil {
		return models.Attendance{}, fmt.Errorf("failed to scan attendance row: %w", err)
	}
	return a, nil
}

func (r *attendanceRepository) ListPending(ctx context.Context) ([]models.Attendance, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectWhereStatus(attendanceTable, attendanceColumns, models.SyncPending).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending attendance query: %w", err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "attendanceRepository.ListPending").
			Msg("failed to execute query for pending attendance")
		return nil, fmt.Errorf("failed to query pending attendance: %w", err)
	}
	defer rows.Close()

	var items []models.Attendance
	for rows.Next() {
		a, scanErr := scanAttendance(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", scanErr)
		}
		items = append(items, a)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", rowsErr)
	}
	return items, nil
}

func (r *attendanceRepository) MarkSynced(ctx context.Context, id, sisID string) error {
	return r.markSynced(ctx, attendanceTable, id, sisID)
}

func (r *attendanceRepository) MarkConflict(ctx context.Context, id string) error {
	return r.markConflict(ctx, attendanceTable, id)
}

func scanAttendance(scan func(...any) error) (models.Attendance, error) {
	var a models.Attendance
	var date, lastModified sql.NullTime
	err := scan(
		&a.ID,
		&a.SISID,
		&a.StudentID,
		&date,
		&a.Period,
		&a.Status,
		&a.Note,
		&a.SyncStatus,
		&lastModified,
	)
	if err != nil {
		return models.Attendance{}, err
	}
	if date.Valid {
		a.Date = date.Time
	}
	if lastModified.Valid {
		a.LastModified = lastModified.Time
	}
	return a, nil
}
