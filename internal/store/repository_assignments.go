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

const (
	categoriesTable  = "assignment_categories"
	assignmentsTable = "assignments"
)

var (
	categoryColumns = []string{
		"id", "sis_id", "name", "weight", "sync_status", "last_modified",
	}
	assignmentColumns = []string{
		"id", "sis_id", "category_id", "title", "description", "max_points",
		"due_date", "sync_status", "last_modified",
	}
)

// ── assignment categories ────────────────────────────────────────────────────

type assignmentCategoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewAssignmentCategoryRepository(db *DB, logger *logger.Logger) AssignmentCategoryRepository {
	return &assignmentCategoryRepository{DB: db, logger: logger}
}

func (r *assignmentCategoryRepository) Save(ctx context.Context, c *models.AssignmentCategory) error {
	stampLocalEdit(&c.SyncMeta, uuid.NewString)
	return r.upsert(ctx, c)
}

func (r *assignmentCategoryRepository) ApplyRemote(ctx context.Context, c *models.AssignmentCategory) error {
	c.SyncStatus = models.SyncSynced
	return r.upsert(ctx, c)
}

func (r *assignmentCategoryRepository) upsert(ctx context.Context, c *models.AssignmentCategory) error {
	query, args, err := qb.Insert(categoriesTable).
		Columns(categoryColumns...).
		Values(c.ID, c.SISID, c.Name, c.Weight, string(c.SyncStatus), c.LastModified).
		Suffix(upsertSuffix(categoryColumns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("build category upsert: %w", err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save assignment category (id=%s): %w", c.ID, err)
	}
	return nil
}

func (r *assignmentCategoryRepository) Get(ctx context.Context, id string) (models.AssignmentCategory, error) {
	return r.getWhere(ctx, sq.Eq{"id": id})
}

func (r *assignmentCategoryRepository) GetBySISID(ctx context.Context, sisID string) (models.AssignmentCategory, error) {
	return r.getWhere(ctx, sq.Eq{"sis_id": sisID})
}

func (r *assignmentCategoryRepository) getWhere(ctx context.Context, pred sq.Eq) (models.AssignmentCategory, error) {
	query, args, err := qb.Select(categoryColumns...).
		From(categoriesTable).
		Where(pred).
		ToSql()
	if err != nil {
		return models.AssignmentCategory{}, fmt.Errorf("build category select: %w", err)
	}

	c, err := scanCategory(r.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AssignmentCategory{}, ErrNotFound
	}
	if err != nil {
		return models.AssignmentCategory{}, fmt.Errorf("failed to scan category row: %w", err)
	}
	return c, nil
}

func (r *assignmentCategoryRepository) List(ctx context.Context) ([]models.AssignmentCategory, error) {
	query, args, err := qb.Select(categoryColumns...).
		From(categoriesTable).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category list: %w", err)
	}
	return r.queryCategories(ctx, query, args)
}

func (r *assignmentCategoryRepository) ListPending(ctx context.Context) ([]models.AssignmentCategory, error) {
	query, args, err := selectWhereStatus(categoriesTable, categoryColumns, models.SyncPending).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending categories query: %w", err)
	}
	return r.queryCategories(ctx, query, args)
}

func (r *assignmentCategoryRepository) queryCategories(ctx context.Context, query string, args []any) ([]models.AssignmentCategory, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var items []models.AssignmentCategory
	for rows.Next() {
		c, scanErr := scanCategory(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", scanErr)
		}
		items = append(items, c)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rowsErr)
	}
	return items, nil
}

func (r *assignmentCategoryRepository) MarkSynced(ctx context.Context, id, sisID string) error {
	return r.markSynced(ctx, categoriesTable, id, sisID)
}

func (r *assignmentCategoryRepository) MarkConflict(ctx context.Context, id string) error {
	return r.markConflict(ctx, categoriesTable, id)
}

func scanCategory(scan func(...any) error) (models.AssignmentCategory, error) {
	var c models.AssignmentCategory
	var lastModified sql.NullTime
	err := scan(&c.ID, &c.SISID, &c.Name, &c.Weight, &c.SyncStatus, &lastModified)
	if err != nil {
		return models.AssignmentCategory{}, err
	}
	if lastModified.Valid {
		c.LastModified = lastModified.Time
	}
	return c, nil
}

// ── assignments ──────────────────────────────────────────────────────────────

type assignmentRepository struct {
	*DB
	logger *logger.Logger
}

func NewAssignmentRepository(db *DB, logger *logger.Logger) AssignmentRepository {
	return &assignmentRepository{DB: db, logger: logger}
}

func (r *assignmentRepository) Save(ctx context.Context, a *models.Assignment) error {
	stampLocalEdit(&a.SyncMeta, uuid.NewString)
	return r.upsert(ctx, a)
}

func (r *assignmentRepository) ApplyRemote(ctx context.Context, a *models.Assignment) error {
	a.SyncStatus = models.SyncSynced
	return r.upsert(ctx, a)
}

func (r *assignmentRepository) upsert(ctx context.Context, a *models.Assignment) error {
	log := logger.FromContext(ctx)

	query, args, err := qb.Insert(assignmentsTable).
		Columns(assignmentColumns...).
		Values(a.ID, a.SISID, a.CategoryID, a.Title, a.Description, a.MaxPoints,
			a.DueDate, string(a.SyncStatus), a.LastModified).
		Suffix(upsertSuffix(assignmentColumns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("build assignment upsert: %w", err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "assignmentRepository.upsert").
			Str("id", a.ID).
			Msg("failed to execute upsert for assignment")
		return fmt.Errorf("failed to save assignment (id=%s): %w", a.ID, err)
	}
	return nil
}

func (r *assignmentRepository) Get(ctx context.Context, id string) (models.Assignment, error) {
	return r.getWhere(ctx, sq.Eq{"id": id})
}

func (r *assignmentRepository) GetBySISID(ctx context.Context, sisID string) (models.Assignment, error) {
	return r.getWhere(ctx, sq.Eq{"sis_id": sisID})
}

func (r *assignmentRepository) getWhere(ctx context.Context, pred sq.Eq) (models.Assignment, error) {
	query, args, err := qb.Select(assignmentColumns...).
		From(assignmentsTable).
		Where(pred).
		ToSql()
	if err != nil {
		return models.Assignment{}, fmt.Errorf("build assignment select: %w", err)
	}

	a, err := scanAssignment(r.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Assignment{}, ErrNotFound
	}
	if err != nil {
		return models.Assignment{}, fmt.Errorf("failed to scan assignment row: %w", err)
	}
	return a, nil
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	query, args, err := qb.Select(assignmentColumns...).
		From(assignmentsTable).
		OrderBy("due_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build assignment list: %w", err)
	}
	return r.queryAssignments(ctx, query, args)
}

func (r *assignmentRepository) ListPending(ctx context.Context) ([]models.Assignment, error) {
	query, args, err := selectWhereStatus(assignmentsTable, assignmentColumns, models.SyncPending).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending assignments query: %w", err)
	}
	return r.queryAssignments(ctx, query, args)
}

func (r *assignmentRepository) queryAssignments(ctx context.Context, query string, args []any) ([]models.Assignment, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var items []models.Assignment
	for rows.Next() {
		a, scanErr := scanAssignment(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", scanErr)
		}
		items = append(items, a)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", rowsErr)
	}
	return items, nil
}

func (r *assignmentRepository) MarkSynced(ctx context.Context, id, sisID string) error {
	return r.markSynced(ctx, assignmentsTable, id, sisID)
}

func (r *assignmentRepository) MarkConflict(ctx context.Context, id string) error {
	return r.markConflict(ctx, assignmentsTable, id)
}

func scanAssignment(scan func(...any) error) (models.Assignment, error) {
	var a models.Assignment
	var dueDate, lastModified sql.NullTime
	err := scan(
		&a.ID,
		&a.SISID,
		&a.CategoryID,
		&a.Title,
		&a.Description,
		&a.MaxPoints,
		&dueDate,
		&a.SyncStatus,
		&lastModified,
	)
	if err != nil {
		return models.Assignment{}, err
	}
	if dueDate.Valid {
		a.DueDate = dueDate.Time
	}
	if lastModified.Valid {
		a.LastModified = lastModified.Time
	}
	return a, nil
}
