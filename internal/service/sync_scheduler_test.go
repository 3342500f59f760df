// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-teacher-desk/internal/adapter"
	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/internal/mock"
	"github.com/MKhiriev/go-teacher-desk/internal/store"
	"github.com/MKhiriev/go-teacher-desk/models"
)

type schedulerMocks struct {
	students    *mock.MockStudentRepository
	categories  *mock.MockAssignmentCategoryRepository
	assignments *mock.MockAssignmentRepository
	grades      *mock.MockGradeRepository
	attendance  *mock.MockAttendanceRepository
	hallPasses  *mock.MockHallPassRepository
	clubs       *mock.MockClubRepository
	sis         *mock.MockSISClient
	monitor     *mock.MockHealthMonitor
}

func newTestScheduler(t *testing.T, ctrl *gomock.Controller, enabled bool) (*syncScheduler, schedulerMocks) {
	t.Helper()

	mocks := schedulerMocks{
		students:    mock.NewMockStudentRepository(ctrl),
		categories:  mock.NewMockAssignmentCategoryRepository(ctrl),
		assignments: mock.NewMockAssignmentRepository(ctrl),
		grades:      mock.NewMockGradeRepository(ctrl),
		attendance:  mock.NewMockAttendanceRepository(ctrl),
		hallPasses:  mock.NewMockHallPassRepository(ctrl),
		clubs:       mock.NewMockClubRepository(ctrl),
		sis:         mock.NewMockSISClient(ctrl),
		monitor:     mock.NewMockHealthMonitor(ctrl),
	}
	storages := &store.ClientStorages{
		Students:    mocks.students,
		Categories:  mocks.categories,
		Assignments: mocks.assignments,
		Grades:      mocks.grades,
		Attendance:  mocks.attendance,
		HallPasses:  mocks.hallPasses,
		Clubs:       mocks.clubs,
	}

	resolver := NewConflictResolver(mocks.hallPasses, mocks.sis, logger.Nop())
	cfg := config.ClientSync{Enabled: enabled, Interval: time.Hour}
	s := NewSyncScheduler(cfg, storages, mocks.sis, mocks.monitor, resolver, logger.Nop()).(*syncScheduler)
	return s, mocks
}

// expectEmptyPending wires every repository to report nothing to push.
func expectEmptyPending(m schedulerMocks) {
	m.students.EXPECT().ListPending(gomock.Any()).Return(nil, nil).AnyTimes()
	m.categories.EXPECT().ListPending(gomock.Any()).Return(nil, nil).AnyTimes()
	m.assignments.EXPECT().ListPending(gomock.Any()).Return(nil, nil).AnyTimes()
	m.grades.EXPECT().ListPending(gomock.Any()).Return(nil, nil).AnyTimes()
	m.attendance.EXPECT().ListPending(gomock.Any()).Return(nil, nil).AnyTimes()
	m.hallPasses.EXPECT().ListPending(gomock.Any()).Return(nil, nil).AnyTimes()
	m.clubs.EXPECT().ListPending(gomock.Any()).Return(nil, nil).AnyTimes()
}

// ── tick gating ─────────────────────────────────────────────────────────────

func TestTick_MonitorUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	// no repository or push expectations: an unavailable server skips the
	// whole tick
	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(false)

	s.tick(context.Background())

	stats := s.Stats()
	assert.Zero(t, stats.TotalSynced)
	assert.Zero(t, stats.FailedAttempts)
	assert.True(t, stats.LastSyncTime.IsZero())
}

func TestTick_SyncDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, _ := newTestScheduler(t, ctrl, false)

	// not even the monitor is consulted
	s.tick(context.Background())

	assert.Zero(t, s.Stats().TotalSynced)
}

// ── pushing ─────────────────────────────────────────────────────────────────

func TestTick_PushesPendingGrade(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	grade := models.Grade{SyncMeta: models.SyncMeta{ID: "g-1", SyncStatus: models.SyncPending}, Score: 91}

	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(true)
	mocks.students.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.categories.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.assignments.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.grades.EXPECT().ListPending(gomock.Any()).Return([]models.Grade{grade}, nil)
	mocks.sis.EXPECT().PushGrade(gomock.Any(), grade.Record()).
		Return(models.PushAck{SISID: "sis-g-1"}, nil)
	mocks.grades.EXPECT().MarkSynced(gomock.Any(), "g-1", "sis-g-1").Return(nil)
	mocks.attendance.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.hallPasses.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.clubs.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	s.tick(context.Background())

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.TotalSynced)
	assert.Zero(t, stats.FailedAttempts)
	assert.False(t, stats.LastSyncTime.IsZero())
}

func TestTick_OneFailureDoesNotBlockSiblings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	failing := models.Grade{SyncMeta: models.SyncMeta{ID: "g-bad", SyncStatus: models.SyncPending}}
	passing := models.Grade{SyncMeta: models.SyncMeta{ID: "g-good", SyncStatus: models.SyncPending}}
	club := models.Club{SyncMeta: models.SyncMeta{ID: "c-1", SyncStatus: models.SyncPending}, Name: "Chess"}

	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(true)
	mocks.students.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.categories.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.assignments.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	mocks.grades.EXPECT().ListPending(gomock.Any()).Return([]models.Grade{failing, passing}, nil)
	mocks.sis.EXPECT().PushGrade(gomock.Any(), failing.Record()).
		Return(models.PushAck{}, adapter.ErrUnavailable)
	mocks.sis.EXPECT().PushGrade(gomock.Any(), passing.Record()).
		Return(models.PushAck{SISID: "sis-g-good"}, nil)
	mocks.grades.EXPECT().MarkSynced(gomock.Any(), "g-good", "sis-g-good").Return(nil)

	mocks.attendance.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.hallPasses.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	// a later entity type is still attempted after the grade failure
	mocks.clubs.EXPECT().ListPending(gomock.Any()).Return([]models.Club{club}, nil)
	mocks.sis.EXPECT().PushClub(gomock.Any(), club.Record()).
		Return(models.PushAck{SISID: "sis-c-1"}, nil)
	mocks.clubs.EXPECT().MarkSynced(gomock.Any(), "c-1", "sis-c-1").Return(nil)

	s.tick(context.Background())

	stats := s.Stats()
	assert.Equal(t, int64(2), stats.TotalSynced)
	assert.Equal(t, int64(1), stats.FailedAttempts)
}

func TestTick_FruitlessTicksAccumulateUntilProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	failing := models.Grade{SyncMeta: models.SyncMeta{ID: "g-bad", SyncStatus: models.SyncPending}}

	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(true).Times(3)
	mocks.students.EXPECT().ListPending(gomock.Any()).Return(nil, nil).Times(3)
	mocks.categories.EXPECT().ListPending(gomock.Any()).Return(nil, nil).Times(3)
	mocks.assignments.EXPECT().ListPending(gomock.Any()).Return(nil, nil).Times(3)
	mocks.attendance.EXPECT().ListPending(gomock.Any()).Return(nil, nil).Times(3)
	mocks.hallPasses.EXPECT().ListPending(gomock.Any()).Return(nil, nil).Times(3)
	mocks.clubs.EXPECT().ListPending(gomock.Any()).Return(nil, nil).Times(3)

	gomock.InOrder(
		mocks.grades.EXPECT().ListPending(gomock.Any()).Return([]models.Grade{failing}, nil),
		mocks.grades.EXPECT().ListPending(gomock.Any()).Return([]models.Grade{failing}, nil),
		mocks.grades.EXPECT().ListPending(gomock.Any()).Return([]models.Grade{failing}, nil),
	)
	gomock.InOrder(
		mocks.sis.EXPECT().PushGrade(gomock.Any(), failing.Record()).
			Return(models.PushAck{}, adapter.ErrUnavailable),
		mocks.sis.EXPECT().PushGrade(gomock.Any(), failing.Record()).
			Return(models.PushAck{}, adapter.ErrUnavailable),
		mocks.sis.EXPECT().PushGrade(gomock.Any(), failing.Record()).
			Return(models.PushAck{SISID: "sis-g-bad"}, nil),
	)
	mocks.grades.EXPECT().MarkSynced(gomock.Any(), "g-bad", "sis-g-bad").Return(nil)

	s.tick(context.Background())
	s.tick(context.Background())
	assert.Equal(t, int64(2), s.badTicks.Load())

	// a successful push resets the fruitless-tick counter
	s.tick(context.Background())
	assert.Equal(t, int64(0), s.badTicks.Load())
}

func TestTick_HallPassConflictRoutedToResolver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	pass := models.HallPass{
		SyncMeta: models.SyncMeta{ID: "hp-1", SISID: "sis-hp-1", SyncStatus: models.SyncPending},
		Status:   models.PassActive,
	}
	remote := models.HallPassRecord{SISID: "sis-hp-1", Status: "COMPLETED", TimeIn: timePtr(time.Now())}

	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(true)
	mocks.students.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.categories.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.assignments.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.grades.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.attendance.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	mocks.hallPasses.EXPECT().ListPending(gomock.Any()).Return([]models.HallPass{pass}, nil)
	mocks.sis.EXPECT().PushHallPass(gomock.Any(), gomock.Any()).
		Return(models.PushAck{}, adapter.ErrConflict)
	mocks.hallPasses.EXPECT().Get(gomock.Any(), "hp-1").Return(pass, nil)
	mocks.sis.EXPECT().GetHallPassSnapshot(gomock.Any(), "sis-hp-1").Return(remote, nil)

	var resolved models.HallPass
	mocks.hallPasses.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.HallPass) error {
			resolved = p
			return nil
		})

	mocks.clubs.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	s.tick(context.Background())

	assert.Equal(t, int64(1), s.Stats().TotalSynced, "a resolved conflict counts as progress")
	assert.Equal(t, models.SyncSynced, resolved.SyncStatus)
	assert.Equal(t, models.PassReturned, resolved.Status)
}

func TestTick_ConflictWithoutResolverParksRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	grade := models.Grade{SyncMeta: models.SyncMeta{ID: "g-1", SyncStatus: models.SyncPending}, Score: 77}

	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(true)
	mocks.students.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.categories.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.assignments.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	mocks.grades.EXPECT().ListPending(gomock.Any()).Return([]models.Grade{grade}, nil)
	mocks.sis.EXPECT().PushGrade(gomock.Any(), grade.Record()).
		Return(models.PushAck{}, adapter.ErrConflict)
	// grades have no resolver hook, the record is parked instead of retried
	mocks.grades.EXPECT().MarkConflict(gomock.Any(), "g-1").Return(nil)

	mocks.attendance.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.hallPasses.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.clubs.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	s.tick(context.Background())

	stats := s.Stats()
	assert.Zero(t, stats.TotalSynced, "a parked record is not progress")
	assert.Zero(t, stats.FailedAttempts, "a parked record is not a retryable failure")
}

func TestTick_NeverPushedHallPassConflictParksWithoutSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	// conflicted before the SIS ever assigned an id, so there is no remote
	// snapshot to fetch
	pass := models.HallPass{
		SyncMeta: models.SyncMeta{ID: "hp-1", SyncStatus: models.SyncPending},
		Status:   models.PassActive,
	}

	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(true)
	mocks.students.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.categories.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.assignments.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.grades.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	mocks.attendance.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	mocks.hallPasses.EXPECT().ListPending(gomock.Any()).Return([]models.HallPass{pass}, nil)
	mocks.sis.EXPECT().PushHallPass(gomock.Any(), gomock.Any()).
		Return(models.PushAck{}, adapter.ErrConflict)
	mocks.hallPasses.EXPECT().Get(gomock.Any(), "hp-1").Return(pass, nil)
	// no GetHallPassSnapshot expectation: a GET against an empty id must
	// never go out
	mocks.hallPasses.EXPECT().MarkConflict(gomock.Any(), "hp-1").Return(nil)

	mocks.clubs.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	s.tick(context.Background())

	stats := s.Stats()
	assert.Zero(t, stats.TotalSynced)
	assert.Zero(t, stats.FailedAttempts)
}

// ── lifecycle ───────────────────────────────────────────────────────────────

func TestScheduler_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(true).AnyTimes()
	expectEmptyPending(mocks)

	s.Start(context.Background(), 5*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	s.Stop()

	// Stop is idempotent
	s.Stop()
}

func TestScheduler_StartRestarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(true).AnyTimes()
	expectEmptyPending(mocks)

	ctx := context.Background()
	s.Start(ctx, 5*time.Millisecond)
	s.Start(ctx, 5*time.Millisecond)
	time.Sleep(15 * time.Millisecond)
	s.Stop()
}

func TestScheduler_ContextCancelStopsLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s, mocks := newTestScheduler(t, ctrl, true)

	mocks.monitor.EXPECT().IsAvailable(gomock.Any()).Return(true).AnyTimes()
	expectEmptyPending(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx, 5*time.Millisecond)
	cancel()

	require.Eventually(t, func() bool {
		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return true
		case <-time.After(10 * time.Millisecond):
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
