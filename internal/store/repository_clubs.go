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

const clubsTable = "clubs"

var clubColumns = []string{
	"id", "sis_id", "name", "description", "meeting_day", "sync_status",
	"last_modified",
}

type clubRepository struct {
	*DB
	logger *logger.Logger
}

func NewClubRepository(db *DB, logger *logger.Logger) ClubRepository {
	return &clubRepository{DB: db, logger: logger}
}

func (r *clubRepository) Save(ctx context.Context, c *models.Club) error {
	stampLocalEdit(&c.SyncMeta, uuid.NewString)

	query, args, err := qb.Insert(clubsTable).
		Columns(clubColumns...).
		Values(c.ID, c.SISID, c.Name, c.Description, c.MeetingDay,
			string(c.SyncStatus), c.LastModified).
		Suffix(upsertSuffix(clubColumns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("build club upsert: %w", err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save club (id=%s): %w", c.ID, err)
	}
	return nil
}

func (r *clubRepository) Get(ctx context.Context, id string) (models.Club, error) {
	query, args, err := qb.Select(clubColumns...).
		From(clubsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Club{}, fmt.Errorf("build club select: %w", err)
	}

	c, err := scanClub(r.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Club{}, ErrNotFound
	}
	if err != nil {
		return models.Club{}, fmt.Errorf("failed to scan club row: %w", err)
	}
	return c, nil
}

func (r *clubRepository) ListPending(ctx context.Context) ([]models.Club, error) {
	query, args, err := selectWhereStatus(clubsTable, clubColumns, models.SyncPending).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending clubs query: %w", err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending clubs: %w", err)
	}
	defer rows.Close()

	var items []models.Club
	for rows.Next() {
		c, scanErr := scanClub(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan club row: %w", scanErr)
		}
		items = append(items, c)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating club rows: %w", rowsErr)
	}
	return items, nil
}

func (r *clubRepository) MarkSynced(ctx context.Context, id, sisID string) error {
	return r.markSynced(ctx, clubsTable, id, sisID)
}

func (r *clubRepository) MarkConflict(ctx context.Context, id string) error {
	return r.markConflict(ctx, clubsTable, id)
}

func scanClub(scan func(...any) error) (models.Club, error) {
	var c models.Club
	var lastModified sql.NullTime
	err := scan(&c.ID, &c.SISID, &c.Name, &c.Description, &c.MeetingDay,
		&c.SyncStatus, &lastModified)
	if err != nil {
		return models.Club{}, err
	}
	if lastModified.Valid {
		c.LastModified = lastModified.Time
	}
	return c, nil
}
