// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-teacher-desk/internal/adapter"
	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/internal/store"
	"github.com/MKhiriev/go-teacher-desk/models"
)

// stopGrace bounds how long Stop waits for a mid-flight tick before giving
// up on the goroutine.
const stopGrace = 5 * time.Second

// syncTarget is one entity type in the scheduler's walk: how to list its
// pending records, push one, and record the acknowledgement. A conflicted
// record goes through onConflict when the entity type has a resolver hook,
// and is parked through markConflict otherwise so it stops burning a push
// attempt every tick. onConflict reports whether the record actually
// advanced; a parked record advances nothing.
type syncTarget struct {
	entity       models.EntityType
	pending      func(ctx context.Context) ([]models.SyncEnvelope, error)
	push         func(ctx context.Context, env models.SyncEnvelope) (models.PushAck, error)
	markSynced   func(ctx context.Context, id, sisID string) error
	markConflict func(ctx context.Context, id string) error
	onConflict   func(ctx context.Context, env models.SyncEnvelope) (bool, error)
}

type syncScheduler struct {
	targets    []syncTarget
	monitor    adapter.HealthMonitor
	enabled    bool
	interval   time.Duration
	maxRetries int

	totalSynced    atomic.Int64
	failedAttempts atomic.Int64
	badTicks       atomic.Int64

	mu           sync.Mutex
	lastSyncTime time.Time
	cancel       context.CancelFunc
	wg           sync.WaitGroup

	logger *logger.Logger
}

// NewSyncScheduler builds the background push loop. Entity types are walked
// in dependency order (categories before the assignments that reference
// them, rosters before the grades that name students); clubs go last because
// nothing references them.
func NewSyncScheduler(cfg config.ClientSync, storages *store.ClientStorages, sis adapter.SISClient, monitor adapter.HealthMonitor, resolver ConflictResolver, log *logger.Logger) SyncScheduler {
	maxRetries := cfg.MaxRetryAttempts
	if maxRetries <= 0 {
		maxRetries = config.DefaultMaxRetryAttempts
	}
	return &syncScheduler{
		targets:    buildSyncTargets(storages, sis, resolver),
		monitor:    monitor,
		enabled:    cfg.Enabled,
		interval:   cfg.Interval,
		maxRetries: maxRetries,
		logger:     log,
	}
}

func buildSyncTargets(storages *store.ClientStorages, sis adapter.SISClient, resolver ConflictResolver) []syncTarget {
	return []syncTarget{
		{
			entity: models.EntityStudent,
			pending: func(ctx context.Context) ([]models.SyncEnvelope, error) {
				items, err := storages.Students.ListPending(ctx)
				if err != nil {
					return nil, err
				}
				envs := make([]models.SyncEnvelope, 0, len(items))
				for _, s := range items {
					envs = append(envs, models.SyncEnvelope{Type: models.EntityStudent, ID: s.ID, DTO: s.Record()})
				}
				return envs, nil
			},
			push: func(ctx context.Context, env models.SyncEnvelope) (models.PushAck, error) {
				return sis.PushStudent(ctx, env.DTO.(models.StudentRecord))
			},
			markSynced:   storages.Students.MarkSynced,
			markConflict: storages.Students.MarkConflict,
		},
		{
			entity: models.EntityAssignmentCategory,
			pending: func(ctx context.Context) ([]models.SyncEnvelope, error) {
				items, err := storages.Categories.ListPending(ctx)
				if err != nil {
					return nil, err
				}
				envs := make([]models.SyncEnvelope, 0, len(items))
				for _, c := range items {
					envs = append(envs, models.SyncEnvelope{Type: models.EntityAssignmentCategory, ID: c.ID, DTO: c.Record()})
				}
				return envs, nil
			},
			push: func(ctx context.Context, env models.SyncEnvelope) (models.PushAck, error) {
				return sis.PushAssignmentCategory(ctx, env.DTO.(models.AssignmentCategoryRecord))
			},
			markSynced:   storages.Categories.MarkSynced,
			markConflict: storages.Categories.MarkConflict,
		},
		{
			entity: models.EntityAssignment,
			pending: func(ctx context.Context) ([]models.SyncEnvelope, error) {
				items, err := storages.Assignments.ListPending(ctx)
				if err != nil {
					return nil, err
				}
				envs := make([]models.SyncEnvelope, 0, len(items))
				for _, a := range items {
					envs = append(envs, models.SyncEnvelope{Type: models.EntityAssignment, ID: a.ID, DTO: a.Record()})
				}
				return envs, nil
			},
			push: func(ctx context.Context, env models.SyncEnvelope) (models.PushAck, error) {
				return sis.PushAssignment(ctx, env.DTO.(models.AssignmentRecord))
			},
			markSynced:   storages.Assignments.MarkSynced,
			markConflict: storages.Assignments.MarkConflict,
		},
		{
			entity: models.EntityGrade,
			pending: func(ctx context.Context) ([]models.SyncEnvelope, error) {
				items, err := storages.Grades.ListPending(ctx)
				if err != nil {
					return nil, err
				}
				envs := make([]models.SyncEnvelope, 0, len(items))
				for _, g := range items {
					envs = append(envs, models.SyncEnvelope{Type: models.EntityGrade, ID: g.ID, DTO: g.Record()})
				}
				return envs, nil
			},
			push: func(ctx context.Context, env models.SyncEnvelope) (models.PushAck, error) {
				return sis.PushGrade(ctx, env.DTO.(models.GradeRecord))
			},
			markSynced:   storages.Grades.MarkSynced,
			markConflict: storages.Grades.MarkConflict,
		},
		{
			entity: models.EntityAttendance,
			pending: func(ctx context.Context) ([]models.SyncEnvelope, error) {
				items, err := storages.Attendance.ListPending(ctx)
				if err != nil {
					return nil, err
				}
				envs := make([]models.SyncEnvelope, 0, len(items))
				for _, a := range items {
					envs = append(envs, models.SyncEnvelope{Type: models.EntityAttendance, ID: a.ID, DTO: a.Record()})
				}
				return envs, nil
			},
			push: func(ctx context.Context, env models.SyncEnvelope) (models.PushAck, error) {
				return sis.PushAttendance(ctx, env.DTO.(models.AttendanceRecord))
			},
			markSynced:   storages.Attendance.MarkSynced,
			markConflict: storages.Attendance.MarkConflict,
		},
		{
			entity: models.EntityHallPass,
			pending: func(ctx context.Context) ([]models.SyncEnvelope, error) {
				items, err := storages.HallPasses.ListPending(ctx)
				if err != nil {
					return nil, err
				}
				envs := make([]models.SyncEnvelope, 0, len(items))
				for _, p := range items {
					envs = append(envs, models.SyncEnvelope{Type: models.EntityHallPass, ID: p.ID, DTO: hallPassRecord(p)})
				}
				return envs, nil
			},
			push: func(ctx context.Context, env models.SyncEnvelope) (models.PushAck, error) {
				return sis.PushHallPass(ctx, env.DTO.(models.HallPassRecord))
			},
			markSynced:   storages.HallPasses.MarkSynced,
			markConflict: storages.HallPasses.MarkConflict,
			onConflict: func(ctx context.Context, env models.SyncEnvelope) (bool, error) {
				local, err := storages.HallPasses.Get(ctx, env.ID)
				if err != nil {
					return false, err
				}
				if local.SISID == "" {
					// never acknowledged by the SIS, so there is no
					// snapshot to compare against; park for the operator
					return false, storages.HallPasses.MarkConflict(ctx, env.ID)
				}
				remote, err := sis.GetHallPassSnapshot(ctx, local.SISID)
				if err != nil {
					return false, err
				}
				if _, err = resolver.Resolve(ctx, local, remote); err != nil {
					return false, err
				}
				return true, nil
			},
		},
		{
			entity: models.EntityClub,
			pending: func(ctx context.Context) ([]models.SyncEnvelope, error) {
				items, err := storages.Clubs.ListPending(ctx)
				if err != nil {
					return nil, err
				}
				envs := make([]models.SyncEnvelope, 0, len(items))
				for _, c := range items {
					envs = append(envs, models.SyncEnvelope{Type: models.EntityClub, ID: c.ID, DTO: c.Record()})
				}
				return envs, nil
			},
			push: func(ctx context.Context, env models.SyncEnvelope) (models.PushAck, error) {
				return sis.PushClub(ctx, env.DTO.(models.ClubRecord))
			},
			markSynced:   storages.Clubs.MarkSynced,
			markConflict: storages.Clubs.MarkConflict,
		},
	}
}

// Start implements [SyncScheduler].
func (s *syncScheduler) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.interval
	}
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}

	s.Stop()

	s.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				s.tick(jobCtx)
			}
		}
	}()
}

// Stop implements [SyncScheduler]. It cancels the goroutine's context and
// waits for a mid-flight tick up to stopGrace before returning; an
// abandoned HTTP call is left to its own timeout.
func (s *syncScheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(stopGrace):
		s.logger.Warn().Msg("sync scheduler did not stop within grace period")
	}
}

// Stats implements [SyncScheduler].
func (s *syncScheduler) Stats() models.SchedulerStats {
	s.mu.Lock()
	last := s.lastSyncTime
	s.mu.Unlock()

	return models.SchedulerStats{
		TotalSynced:    s.totalSynced.Load(),
		FailedAttempts: s.failedAttempts.Load(),
		LastSyncTime:   last,
	}
}

// tick runs one push pass. One failing item never blocks its siblings; one
// failing entity type never blocks the other types.
func (s *syncScheduler) tick(ctx context.Context) {
	if !s.enabled {
		return
	}
	if !s.monitor.IsAvailable(ctx) {
		return
	}

	var synced, failed int
	for _, target := range s.targets {
		ts, tf := s.syncTarget(ctx, target)
		synced += ts
		failed += tf
	}

	s.totalSynced.Add(int64(synced))
	s.failedAttempts.Add(int64(failed))
	if synced > 0 {
		s.mu.Lock()
		s.lastSyncTime = time.Now()
		s.mu.Unlock()
	}

	if failed > 0 && synced == 0 {
		// escalate after maxRetries fruitless ticks in a row, the backlog
		// is not draining on its own
		bad := s.badTicks.Add(1)
		if bad >= int64(s.maxRetries) {
			s.logger.Error().
				Int("failed", failed).
				Int64("consecutive_bad_ticks", bad).
				Msg("sync backlog is stuck")
			return
		}
	} else {
		s.badTicks.Store(0)
	}

	if synced > 0 || failed > 0 {
		s.logger.Info().
			Int("synced", synced).
			Int("failed", failed).
			Msg("sync tick finished")
	}
}

func (s *syncScheduler) syncTarget(ctx context.Context, target syncTarget) (synced, failed int) {
	envs, err := target.pending(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("entity", string(target.entity)).Msg("list pending records")
		return 0, 1
	}

	for _, env := range envs {
		pushed, err := s.pushOne(ctx, target, env)
		if err != nil {
			failed++
			s.logger.Warn().
				Err(err).
				Str("entity", string(target.entity)).
				Str("id", env.ID).
				Msg("push failed, record stays pending")
			continue
		}
		if pushed {
			synced++
		}
	}
	return synced, failed
}

// pushOne pushes one record. pushed reports whether the record advanced to
// SYNCED; a conflicted record that ends up parked in CONFLICT returns
// (false, nil) because it is neither progress nor a retryable failure.
func (s *syncScheduler) pushOne(ctx context.Context, target syncTarget, env models.SyncEnvelope) (pushed bool, err error) {
	ack, err := target.push(ctx, env)
	if err == nil {
		if err = target.markSynced(ctx, env.ID, ack.SISID); err != nil {
			return false, err
		}
		return true, nil
	}

	if !errors.Is(err, adapter.ErrConflict) {
		return false, err
	}
	if target.onConflict != nil {
		return target.onConflict(ctx, env)
	}

	s.logger.Warn().
		Str("entity", string(target.entity)).
		Str("id", env.ID).
		Msg("push rejected as conflict, parked for review")
	return false, target.markConflict(ctx, env.ID)
}
