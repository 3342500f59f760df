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

const gradesTable = "grades"

var gradeColumns = []string{
	"id", "sis_id", "student_id", "assignment_id", "score", "comment",
	"graded_at", "sync_status", "last_modified",
}

type gradeRepository struct {
	*DB
	logger *logger.Logger
}

func NewGradeRepository(db *DB, logger *logger.Logger) GradeRepository {
	return &gradeRepository{DB: db, logger: logger}
}

func (r *gradeRepository) Save(ctx context.Context, g *models.Grade) error {
	log := logger.FromContext(ctx)

	stampLocalEdit(&g.SyncMeta, uuid.NewString)

	query, args, err := qb.Insert(gradesTable).
		Columns(gradeColumns...).
		Values(g.ID, g.SISID, g.StudentID, g.AssignmentID, g.Score, g.Comment,
			g.GradedAt, string(g.SyncStatus), g.LastModified).
		Suffix(upsertSuffix(gradeColumns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("build grade upsert: %w", err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "gradeRepository.Save").
			Str("id", g.ID).
			Msg("failed to execute upsert for grade")
		return fmt.Errorf("failed to save grade (id=%s): %w", g.ID, err)
	}
	return nil
}

func (r *gradeRepository) Get(ctx context.Context, id string) (models.Grade, error) {
	query, args, err := qb.Select(gradeColumns...).
		From(gradesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Grade{}, fmt.Errorf("build grade select: %w", err)
	}

	g, err := scanGrade(r.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Grade{}, ErrNotFound
	}
	if err != nil {
		return models.Grade{}, fmt.Errorf("failed to scan grade row: %w", err)
	}
	return g, nil
}

func (r *gradeRepository) ListPending(ctx context.Context) ([]models.Grade, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectWhereStatus(gradesTable, gradeColumns, models.SyncPending).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending grades query: %w", err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "gradeRepository.ListPending").
			Msg("failed to execute query for pending grades")
		return nil, fmt.Errorf("failed to query pending grades: %w", err)
	}
	defer rows.Close()

	var items []models.Grade
	for rows.Next() {
		g, scanErr := scanGrade(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan grade row: %w", scanErr)
		}
		items = append(items, g)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", rowsErr)
	}
	return items, nil
}

func (r *gradeRepository) MarkSynced(ctx context.Context, id, sisID string) error {
	return r.markSynced(ctx, gradesTable, id, sisID)
}

func (r *gradeRepository) MarkConflict(ctx context.Context, id string) error {
	return r.markConflict(ctx, gradesTable, id)
}

func scanGrade(scan func(...any) error) (models.Grade, error) {
	var g models.Grade
	var gradedAt, lastModified sql.NullTime
	err := scan(
		&g.ID,
		&g.SISID,
		&g.StudentID,
		&g.AssignmentID,
		&g.Score,
		&g.Comment,
		&gradedAt,
		&g.SyncStatus,
		&lastModified,
	)
	if err != nil {
		return models.Grade{}, err
	}
	if gradedAt.Valid {
		g.GradedAt = gradedAt.Time
	}
	if lastModified.Valid {
		g.LastModified = lastModified.Time
	}
	return g, nil
}
