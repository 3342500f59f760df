// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-teacher-desk/internal/adapter"
	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/internal/store"
	"github.com/MKhiriev/go-teacher-desk/internal/validators"
	"github.com/MKhiriev/go-teacher-desk/models"
)

type syncManager struct {
	storages  *store.ClientStorages
	sis       adapter.SISClient
	monitor   adapter.HealthMonitor
	validator validators.Validator
	batchSize int

	inProgress atomic.Bool

	logger *logger.Logger
}

// NewSyncManager builds the [SyncManager] over the local storages and the
// SIS client. The health monitor gates the pass: an unreachable server turns
// the whole call into an immediate failed session instead of a cascade of
// timeouts. The validator filters malformed records out of batches before
// they cost a round trip.
func NewSyncManager(cfg config.ClientSync, storages *store.ClientStorages, sis adapter.SISClient, monitor adapter.HealthMonitor, log *logger.Logger) SyncManager {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	return &syncManager{
		storages:  storages,
		sis:       sis,
		monitor:   monitor,
		validator: validators.NewRecordValidator(),
		batchSize: batchSize,
		logger:    log,
	}
}

// FullSync implements [SyncManager]. The steps run in a strict order: pull
// students, pull categories, pull assignments, push the grade batch, push
// the attendance batch, then collect outstanding conflicts. Pulls are idempotent, so a
// failure mid-pass leaves nothing worse than re-pullable state; pushes are
// the only irreversible advance and each is marked synced only on a 2xx.
func (m *syncManager) FullSync(ctx context.Context) models.SyncSession {
	session := models.NewSyncSession()

	if !m.inProgress.CompareAndSwap(false, true) {
		return session.Finish(false, syncInProgressMessage)
	}
	defer m.inProgress.Store(false)

	if !m.sis.Session().Valid() {
		return session.Finish(false, "not authenticated with SIS")
	}
	if !m.monitor.IsAvailable(ctx) {
		return session.Finish(false, "SIS admin server unreachable")
	}

	if err := m.pullStudents(ctx, &session); err != nil {
		return m.fail(&session, "pull students", err)
	}
	if err := m.pullCategories(ctx, &session); err != nil {
		return m.fail(&session, "pull categories", err)
	}
	if err := m.pullAssignments(ctx, &session); err != nil {
		return m.fail(&session, "pull assignments", err)
	}
	if err := m.pushGrades(ctx, &session); err != nil {
		return m.fail(&session, "push grades", err)
	}
	if err := m.pushAttendance(ctx, &session); err != nil {
		return m.fail(&session, "push attendance", err)
	}
	if err := m.collectConflicts(ctx, &session); err != nil {
		return m.fail(&session, "collect conflicts", err)
	}

	m.logger.Info().
		Interface("pulled", session.Pulled).
		Interface("pushed", session.Pushed).
		Int("skipped_ambiguous", session.SkippedAmbiguous).
		Int("conflicts", len(session.Conflicts)).
		Msg("full sync finished")

	return session.Finish(true, "full sync complete")
}

func (m *syncManager) fail(session *models.SyncSession, step string, err error) models.SyncSession {
	m.logger.Error().Err(err).Str("step", step).Msg("full sync aborted")
	return session.Finish(false, fmt.Sprintf("%s: %v", step, err))
}

// pullStudents merges the remote roster into the local store with
// last-write-wins on last_modified.
func (m *syncManager) pullStudents(ctx context.Context, session *models.SyncSession) error {
	records, err := m.sis.GetStudents(ctx)
	if err != nil {
		return err
	}

	for _, r := range records {
		applied, err := m.mergeStudent(ctx, r, session)
		if err != nil {
			return fmt.Errorf("merge student %s: %w", r.SISID, err)
		}
		if applied {
			session.Pulled[models.EntityStudent]++
		}
	}
	return nil
}

func (m *syncManager) mergeStudent(ctx context.Context, r models.StudentRecord, session *models.SyncSession) (bool, error) {
	local, err := m.storages.Students.GetBySISID(ctx, r.SISID)
	if errors.Is(err, store.ErrNotFound) {
		student := models.Student{SyncMeta: models.SyncMeta{ID: uuid.NewString()}}
		student.Apply(r)
		return true, m.storages.Students.ApplyRemote(ctx, &student)
	}
	if err != nil {
		return false, err
	}

	if r.LastModified.IsZero() && local.LastModified.IsZero() {
		// neither side carries a usable stamp, leave the record alone
		session.SkippedAmbiguous++
		return false, nil
	}
	if !r.LastModified.After(local.LastModified) {
		return false, nil
	}

	local.Apply(r)
	return true, m.storages.Students.ApplyRemote(ctx, &local)
}

// pullCategories runs before pullAssignments because assignments reference
// categories by id.
func (m *syncManager) pullCategories(ctx context.Context, session *models.SyncSession) error {
	records, err := m.sis.GetAssignmentCategories(ctx)
	if err != nil {
		return err
	}

	for _, r := range records {
		applied, err := m.mergeCategory(ctx, r, session)
		if err != nil {
			return fmt.Errorf("merge category %s: %w", r.SISID, err)
		}
		if applied {
			session.Pulled[models.EntityAssignmentCategory]++
		}
	}
	return nil
}

func (m *syncManager) mergeCategory(ctx context.Context, r models.AssignmentCategoryRecord, session *models.SyncSession) (bool, error) {
	local, err := m.storages.Categories.GetBySISID(ctx, r.SISID)
	if errors.Is(err, store.ErrNotFound) {
		category := models.AssignmentCategory{SyncMeta: models.SyncMeta{ID: uuid.NewString()}}
		category.Apply(r)
		return true, m.storages.Categories.ApplyRemote(ctx, &category)
	}
	if err != nil {
		return false, err
	}

	if r.LastModified.IsZero() && local.LastModified.IsZero() {
		session.SkippedAmbiguous++
		return false, nil
	}
	if !r.LastModified.After(local.LastModified) {
		return false, nil
	}

	local.Apply(r)
	return true, m.storages.Categories.ApplyRemote(ctx, &local)
}

// pullAssignments uses the identical merge rule as pullStudents.
func (m *syncManager) pullAssignments(ctx context.Context, session *models.SyncSession) error {
	records, err := m.sis.GetAssignments(ctx)
	if err != nil {
		return err
	}

	for _, r := range records {
		applied, err := m.mergeAssignment(ctx, r, session)
		if err != nil {
			return fmt.Errorf("merge assignment %s: %w", r.SISID, err)
		}
		if applied {
			session.Pulled[models.EntityAssignment]++
		}
	}
	return nil
}

func (m *syncManager) mergeAssignment(ctx context.Context, r models.AssignmentRecord, session *models.SyncSession) (bool, error) {
	local, err := m.storages.Assignments.GetBySISID(ctx, r.SISID)
	if errors.Is(err, store.ErrNotFound) {
		assignment := models.Assignment{SyncMeta: models.SyncMeta{ID: uuid.NewString()}}
		assignment.Apply(r)
		return true, m.storages.Assignments.ApplyRemote(ctx, &assignment)
	}
	if err != nil {
		return false, err
	}

	if r.LastModified.IsZero() && local.LastModified.IsZero() {
		session.SkippedAmbiguous++
		return false, nil
	}
	if !r.LastModified.After(local.LastModified) {
		return false, nil
	}

	local.Apply(r)
	return true, m.storages.Assignments.ApplyRemote(ctx, &local)
}

// pushGrades submits the pending grades in batches of at most batchSize,
// marks the accepted ones synced, and closes each batch with a sync-complete
// call. A server that omits accepted_ids is trusted to have applied the
// batch whole.
func (m *syncManager) pushGrades(ctx context.Context, session *models.SyncSession) error {
	pending, err := m.storages.Grades.ListPending(ctx)
	if err != nil {
		return err
	}

	records := make([]models.GradeRecord, 0, len(pending))
	ids := make([]string, 0, len(pending))
	for _, g := range pending {
		r := g.Record()
		if err = m.validator.Validate(ctx, r, validators.FieldLocalID, validators.FieldScore); err != nil {
			m.logger.Warn().Err(err).Str("grade_id", g.ID).Msg("grade excluded from batch")
			continue
		}
		records = append(records, r)
		ids = append(ids, g.ID)
	}

	for start := 0; start < len(records); start += m.batchSize {
		end := min(start+m.batchSize, len(records))
		if err = m.submitGrades(ctx, session, records[start:end], ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (m *syncManager) submitGrades(ctx context.Context, session *models.SyncSession, records []models.GradeRecord, ids []string) error {
	resp, err := m.sis.SubmitGradeBatch(ctx, models.GradeBatchRequest{Grades: records})
	if err != nil {
		return err
	}

	accepted := acceptedSet(resp, ids)
	assigned := assignedIndex(resp)
	synced := make([]string, 0, len(ids))
	for _, id := range ids {
		if !accepted[id] {
			continue
		}
		if err = m.storages.Grades.MarkSynced(ctx, id, assigned[id]); err != nil {
			return fmt.Errorf("mark grade %s synced: %w", id, err)
		}
		synced = append(synced, id)
		session.Pushed[models.EntityGrade]++
	}

	if len(synced) == 0 {
		return nil
	}
	return m.sis.MarkSyncComplete(ctx, models.SyncCompleteRequest{
		EntityType: models.EntityGrade,
		IDs:        synced,
	})
}

// pushAttendance mirrors pushGrades with the attendance batch endpoint.
func (m *syncManager) pushAttendance(ctx context.Context, session *models.SyncSession) error {
	pending, err := m.storages.Attendance.ListPending(ctx)
	if err != nil {
		return err
	}

	records := make([]models.AttendanceRecord, 0, len(pending))
	ids := make([]string, 0, len(pending))
	for _, a := range pending {
		r := a.Record()
		if err = m.validator.Validate(ctx, r, validators.FieldLocalID, validators.FieldPeriod); err != nil {
			m.logger.Warn().Err(err).Str("attendance_id", a.ID).Msg("attendance excluded from batch")
			continue
		}
		records = append(records, r)
		ids = append(ids, a.ID)
	}

	for start := 0; start < len(records); start += m.batchSize {
		end := min(start+m.batchSize, len(records))
		if err = m.submitAttendance(ctx, session, records[start:end], ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (m *syncManager) submitAttendance(ctx context.Context, session *models.SyncSession, records []models.AttendanceRecord, ids []string) error {
	resp, err := m.sis.SubmitAttendanceBatch(ctx, models.AttendanceBatchRequest{Records: records})
	if err != nil {
		return err
	}

	accepted := acceptedSet(resp, ids)
	assigned := assignedIndex(resp)
	synced := make([]string, 0, len(ids))
	for _, id := range ids {
		if !accepted[id] {
			continue
		}
		if err = m.storages.Attendance.MarkSynced(ctx, id, assigned[id]); err != nil {
			return fmt.Errorf("mark attendance %s synced: %w", id, err)
		}
		synced = append(synced, id)
		session.Pushed[models.EntityAttendance]++
	}

	if len(synced) == 0 {
		return nil
	}
	return m.sis.MarkSyncComplete(ctx, models.SyncCompleteRequest{
		EntityType: models.EntityAttendance,
		IDs:        synced,
	})
}

// collectConflicts attaches the SIS-reported divergences to the session for
// the UI's conflict inbox. Nothing is auto-resolved here.
func (m *syncManager) collectConflicts(ctx context.Context, session *models.SyncSession) error {
	conflicts, err := m.sis.GetGradeConflicts(ctx)
	if err != nil {
		return err
	}
	session.Conflicts = conflicts
	return nil
}

// acceptedSet interprets the batch acknowledgement: servers that apply
// batches partially list the client ids they stored, servers with
// all-or-nothing batches omit the list and a 2xx means everything was
// accepted.
func acceptedSet(resp models.BatchResponse, allIDs []string) map[string]bool {
	accepted := make(map[string]bool, len(allIDs))
	if resp.AcceptedIDs == nil {
		for _, id := range allIDs {
			accepted[id] = true
		}
		return accepted
	}
	for _, id := range resp.AcceptedIDs {
		accepted[id] = true
	}
	return accepted
}

// assignedIndex maps local ids to the SIS ids assigned on first insert.
func assignedIndex(resp models.BatchResponse) map[string]string {
	idx := make(map[string]string, len(resp.Assigned))
	for _, pair := range resp.Assigned {
		idx[pair.LocalID] = pair.SISID
	}
	return idx
}
