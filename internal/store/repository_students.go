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

const studentsTable = "students"

var studentColumns = []string{
	"id", "sis_id", "first_name", "last_name", "grade_year", "email",
	"active", "sync_status", "last_modified",
}

type studentRepository struct {
	*DB
	logger *logger.Logger
}

func NewStudentRepository(db *DB, logger *logger.Logger) StudentRepository {
	return &studentRepository{DB: db, logger: logger}
}

func (r *studentRepository) Save(ctx context.Context, s *models.Student) error {
	stampLocalEdit(&s.SyncMeta, uuid.NewString)
	return r.upsert(ctx, s)
}

func (r *studentRepository) ApplyRemote(ctx context.Context, s *models.Student) error {
	s.SyncStatus = models.SyncSynced
	return r.upsert(ctx, s)
}

func (r *studentRepository) upsert(ctx context.Context, s *models.Student) error {
	log := logger.FromContext(ctx)

	query, args, err := qb.Insert(studentsTable).
		Columns(studentColumns...).
		Values(s.ID, s.SISID, s.FirstName, s.LastName, s.GradeYear, s.Email,
			s.Active, string(s.SyncStatus), s.LastModified).
		Suffix(upsertSuffix(studentColumns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("build student upsert: %w", err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "studentRepository.upsert").
			Str("id", s.ID).
			Msg("failed to execute upsert for student")
		return fmt.Errorf("failed to save student (id=%s): %w", s.ID, err)
	}
	return nil
}

func (r *studentRepository) Get(ctx context.Context, id string) (models.Student, error) {
	return r.getWhere(ctx, sq.Eq{"id": id})
}

func (r *studentRepository) GetBySISID(ctx context.Context, sisID string) (models.Student, error) {
	return r.getWhere(ctx, sq.Eq{"sis_id": sisID})
}

func (r *studentRepository) getWhere(ctx context.Context, pred sq.Eq) (models.Student, error) {
	query, args, err := qb.Select(studentColumns...).
		From(studentsTable).
		Where(pred).
		ToSql()
	if err != nil {
		return models.Student{}, fmt.Errorf("build student select: %w", err)
	}

	row := r.QueryRowContext(ctx, query, args...)
	s, err := scanStudent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to scan student row: %w", err)
	}
	return s, nil
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	query, args, err := qb.Select(studentColumns...).
		From(studentsTable).
		OrderBy("last_name ASC, first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student list: %w", err)
	}
	return r.queryStudents(ctx, query, args)
}

func (r *studentRepository) ListPending(ctx context.Context) ([]models.Student, error) {
	query, args, err := selectWhereStatus(studentsTable, studentColumns, models.SyncPending).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending students query: %w", err)
	}
	return r.queryStudents(ctx, query, args)
}

func (r *studentRepository) queryStudents(ctx context.Context, query string, args []any) ([]models.Student, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.queryStudents").
			Msg("failed to execute query for students")
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var items []models.Student
	for rows.Next() {
		s, scanErr := scanStudent(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", scanErr)
		}
		items = append(items, s)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", rowsErr)
	}
	return items, nil
}

func (r *studentRepository) MarkSynced(ctx context.Context, id, sisID string) error {
	return r.markSynced(ctx, studentsTable, id, sisID)
}

func (r *studentRepository) MarkConflict(ctx context.Context, id string) error {
	return r.markConflict(ctx, studentsTable, id)
}

func scanStudent(scan func(...any) error) (models.Student, error) {
	var s models.Student
	var lastModified sql.NullTime
	err := scan(
		&s.ID,
		&s.SISID,
		&s.FirstName,
		&s.LastName,
		&s.GradeYear,
		&s.Email,
		&s.Active,
		&s.SyncStatus,
		&lastModified,
	)
	if err != nil {
		return models.Student{}, err
	}
	if lastModified.Valid {
		s.LastModified = lastModified.Time
	}
	return s, nil
}
