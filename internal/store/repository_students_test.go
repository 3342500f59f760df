package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/models"
)

func newTestStudentRepo(t *testing.T) (*studentRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewClientLogger("test")
	repo := &studentRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestApplyRemoteStudent_WritesSynced(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	modified := time.Now()
	student := models.Student{
		SyncMeta: models.SyncMeta{
			ID:           "st-1",
			SISID:        "sis-st-1",
			SyncStatus:   models.SyncPending,
			LastModified: modified,
		},
		FirstName: "Ada",
		LastName:  "Byron",
		GradeYear: 10,
		Email:     "ada@example.edu",
		Active:    true,
	}

	// pulled rows land as SYNCED regardless of the previous status
	mock.ExpectExec("INSERT INTO students").
		WithArgs("st-1", "sis-st-1", "Ada", "Byron", 10, "ada@example.edu",
			true, string(models.SyncSynced), modified).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ApplyRemote(context.Background(), &student); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student.SyncStatus != models.SyncSynced {
		t.Errorf("expected SYNCED status, got %s", student.SyncStatus)
	}
}

func TestGetStudentBySISID_Success(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows(studentColumns).
		AddRow("st-1", "sis-st-1", "Ada", "Byron", 10, "ada@example.edu", true, "SYNCED", now)

	mock.ExpectQuery(`WHERE sis_id = \?`).
		WithArgs("sis-st-1").
		WillReturnRows(rows)

	s, err := repo.GetBySISID(context.Background(), "sis-st-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "st-1" {
		t.Errorf("expected local id st-1, got %s", s.ID)
	}
}

func TestGetStudentBySISID_NotFound(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE sis_id = \?`).
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySISID(context.Background(), "unknown")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListStudents_OrderedByName(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows(studentColumns).
		AddRow("st-2", "sis-st-2", "Alan", "Turing", 11, "", true, "SYNCED", now).
		AddRow("st-1", "sis-st-1", "Ada", "Byron", 10, "", true, "SYNCED", now)

	mock.ExpectQuery("ORDER BY last_name ASC, first_name ASC").
		WillReturnRows(rows)

	students, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
}

func TestListStudents_QueryError(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	mock.ExpectQuery("FROM students").
		WillReturnError(errors.New("database is locked"))

	_, err := repo.List(context.Background())
	if err == nil {
		t.Fatal("expected query error, got nil")
	}
}
