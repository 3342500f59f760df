// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-teacher-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Every repository distinguishes two write paths:
//
//   - Save is the UI mutation path: it stamps last_modified with the local
//     clock and resets sync_status to PENDING, which is what enqueues the
//     record for the background push loop.
//   - ApplyRemote is the pull path: it writes the record exactly as the SIS
//     sent it (server last_modified kept) and marks it SYNCED, so a pull
//     never re-enqueues work.
//
// MarkSynced and MarkConflict are single-statement status flips; together
// with SQLite's per-statement atomicity that makes every push/mark pair
// atomic with respect to one entity row.

// StudentRepository is the local roster store.
type StudentRepository interface {
	Save(ctx context.Context, s *models.Student) error
	ApplyRemote(ctx context.Context, s *models.Student) error
	Get(ctx context.Context, id string) (models.Student, error)
	// GetBySISID looks a student up by the server-assigned id; returns
	// ErrNotFound when the SIS record has never been pulled.
	GetBySISID(ctx context.Context, sisID string) (models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	ListPending(ctx context.Context) ([]models.Student, error)
	MarkSynced(ctx context.Context, id, sisID string) error
	MarkConflict(ctx context.Context, id string) error
}

// AssignmentCategoryRepository stores gradebook categories. Categories sync
// before assignments because assignments reference them.
type AssignmentCategoryRepository interface {
	Save(ctx context.Context, c *models.AssignmentCategory) error
	ApplyRemote(ctx context.Context, c *models.AssignmentCategory) error
	Get(ctx context.Context, id string) (models.AssignmentCategory, error)
	GetBySISID(ctx context.Context, sisID string) (models.AssignmentCategory, error)
	List(ctx context.Context) ([]models.AssignmentCategory, error)
	ListPending(ctx context.Context) ([]models.AssignmentCategory, error)
	MarkSynced(ctx context.Context, id, sisID string) error
	MarkConflict(ctx context.Context, id string) error
}

// AssignmentRepository stores gradebook assignments.
type AssignmentRepository interface {
	Save(ctx context.Context, a *models.Assignment) error
	ApplyRemote(ctx context.Context, a *models.Assignment) error
	Get(ctx context.Context, id string) (models.Assignment, error)
	GetBySISID(ctx context.Context, sisID string) (models.Assignment, error)
	List(ctx context.Context) ([]models.Assignment, error)
	ListPending(ctx context.Context) ([]models.Assignment, error)
	MarkSynced(ctx context.Context, id, sisID string) error
	MarkConflict(ctx context.Context, id string) error
}

// GradeRepository stores per-student scores.
type GradeRepository interface {
	Save(ctx context.Context, g *models.Grade) error
	Get(ctx context.Context, id string) (models.Grade, error)
	ListPending(ctx context.Context) ([]models.Grade, error)
	MarkSynced(ctx context.Context, id, sisID string) error
	MarkConflict(ctx context.Context, id string) error
}

// AttendanceRepository stores daily attendance marks.
type AttendanceRepository interface {
	Save(ctx context.Context, a *models.Attendance) error
	Get(ctx context.Context, id string) (models.Attendance, error)
	ListPending(ctx context.Context) ([]models.Attendance, error)
	MarkSynced(ctx context.Context, id, sisID string) error
	MarkConflict(ctx context.Context, id string) error
}

// HallPassRepository stores hall passes, the one entity with two-way edits.
type HallPassRepository interface {
	Save(ctx context.Context, p *models.HallPass) error
	// Update writes the pass exactly as given, including its SyncStatus
	// and LastModified. The conflict resolver uses it to persist a
	// resolution without re-stamping the record as a fresh local edit.
	Update(ctx context.Context, p models.HallPass) error
	Get(ctx context.Context, id string) (models.HallPass, error)
	ListPending(ctx context.Context) ([]models.HallPass, error)
	// ListConflicts returns passes parked in CONFLICT awaiting operator
	// action.
	ListConflicts(ctx context.Context) ([]models.HallPass, error)
	MarkSynced(ctx context.Context, id, sisID string) error
	MarkConflict(ctx context.Context, id string) error
}

// ClubRepository stores the teacher's club roster.
type ClubRepository interface {
	Save(ctx context.Context, c *models.Club) error
	Get(ctx context.Context, id string) (models.Club, error)
	ListPending(ctx context.Context) ([]models.Club, error)
	MarkSynced(ctx context.Context, id, sisID string) error
	MarkConflict(ctx context.Context, id string) error
}
