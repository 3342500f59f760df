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

const hallPassesTable = "hall_passes"

var hallPassColumns = []string{
	"id", "sis_id", "student_id", "destination", "status", "time_out",
	"time_in", "duration_minutes", "notes", "sync_status", "last_modified",
}

type hallPassRepository struct {
	*DB
	logger *logger.Logger
}

func NewHallPassRepository(db *DB, logger *logger.Logger) HallPassRepository {
	return &hallPassRepository{DB: db, logger: logger}
}

func (r *hallPassRepository) Save(ctx context.Context, p *models.HallPass) error {
	stampLocalEdit(&p.SyncMeta, uuid.NewString)
	return r.upsert(ctx, *p)
}

func (r *hallPassRepository) Update(ctx context.Context, p models.HallPass) error {
	return r.upsert(ctx, p)
}

func (r *hallPassRepository) upsert(ctx context.Context, p models.HallPass) error {
	log := logger.FromContext(ctx)

	var timeIn any
	if p.TimeIn != nil {
		timeIn = *p.TimeIn
	}

	query, args, err := qb.Insert(hallPassesTable).
		Columns(hallPassColumns...).
		Values(p.ID, p.SISID, p.StudentID, string(p.Destination), string(p.Status),
			p.TimeOut, timeIn, p.DurationMinutes, p.Notes,
			string(p.SyncStatus), p.LastModified).
		Suffix(upsertSuffix(hallPassColumns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("build hall pass upsert: %w", err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "hallPassRepository.upsert").
			Str("id", p.ID).
			Msg("failed to execute upsert for hall pass")
		return fmt.Errorf("failed to save hall pass (id=%s): %w", p.ID, err)
	}
	return nil
}

func (r *hallPassRepository) Get(ctx context.Context, id string) (models.HallPass, error) {
	query, args, err := qb.Select(hallPassColumns...).
		From(hallPassesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.HallPass{}, fmt.Errorf("build hall pass select: %w", err)
	}

	p, err := scanHallPass(r.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HallPass{}, ErrNotFound
	}
	if err != nil {
		return models.HallPass{}, fmt.Errorf("failed to scan hall pass row: %w", err)
	}
	return p, nil
}

func (r *hallPassRepository) ListPending(ctx context.Context) ([]models.HallPass, error) {
	return r.listWhereStatus(ctx, models.SyncPending)
}

func (r *hallPassRepository) ListConflicts(ctx context.Context) ([]models.HallPass, error) {
	return r.listWhereStatus(ctx, models.SyncConflict)
}

func (r *hallPassRepository) listWhereStatus(ctx context.Context, status models.SyncStatus) ([]models.HallPass, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectWhereStatus(hallPassesTable, hallPassColumns, status).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build hall pass status query: %w", err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "hallPassRepository.listWhereStatus").
			Str("status", string(status)).
			Msg("failed to execute query for hall passes")
		return nil, fmt.Errorf("failed to query hall passes: %w", err)
	}
	defer rows.Close()

	var items []models.HallPass
	for rows.Next() {
		p, scanErr := scanHallPass(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan hall pass row: %w", scanErr)
		}
		items = append(items, p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating hall pass rows: %w", rowsErr)
	}
	return items, nil
}

func (r *hallPassRepository) MarkSynced(ctx context.Context, id, sisID string) error {
	return r.markSynced(ctx, hallPassesTable, id, sisID)
}

func (r *hallPassRepository) MarkConflict(ctx context.Context, id string) error {
	return r.markConflict(ctx, hallPassesTable, id)
}

func scanHallPass(scan func(...any) error) (models.HallPass, error) {
	var p models.HallPass
	var timeOut, timeIn, lastModified sql.NullTime
	err := scan(
		&p.ID,
		&p.SISID,
		&p.StudentID,
		&p.Destination,
		&p.Status,
		&timeOut,
		&timeIn,
		&p.DurationMinutes,
		&p.Notes,
		&p.SyncStatus,
		&lastModified,
	)
	if err != nil {
		return models.HallPass{}, err
	}
	if timeOut.Valid {
		p.TimeOut = timeOut.Time
	}
	if timeIn.Valid {
		t := timeIn.Time
		p.TimeIn = &t
	}
	if lastModified.Valid {
		p.LastModified = lastModified.Time
	}
	return p, nil
}
