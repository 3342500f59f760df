package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
)

// ClientStorages groups all local repositories into a single value that can
// be passed around the service layer.
type ClientStorages struct {
	Students    StudentRepository
	Categories  AssignmentCategoryRepository
	Assignments AssignmentRepository
	Grades      GradeRepository
	Attendance  AttendanceRepository
	HallPasses  HallPassRepository
	Clubs       ClubRepository

	db *DB
}

// NewClientStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs a [ClientStorages] value wired to one repository per
//     syncable entity type.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Students:    NewStudentRepository(db, logger),
		Categories:  NewAssignmentCategoryRepository(db, logger),
		Assignments: NewAssignmentRepository(db, logger),
		Grades:      NewGradeRepository(db, logger),
		Attendance:  NewAttendanceRepository(db, logger),
		HallPasses:  NewHallPassRepository(db, logger),
		Clubs:       NewClubRepository(db, logger),
		db:          db,
	}, nil
}

// Close releases the underlying database handle. Safe to call once during
// shutdown.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
