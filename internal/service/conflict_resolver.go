// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-teacher-desk/internal/adapter"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/internal/store"
	"github.com/MKhiriev/go-teacher-desk/models"
)

type conflictResolver struct {
	passes store.HallPassRepository
	sis    adapter.SISClient
	logger *logger.Logger
}

// NewConflictResolver builds the hall-pass [ConflictResolver] over the local
// pass repository and the SIS client (needed by ForceSISResolution to fetch
// the current remote snapshot).
func NewConflictResolver(passes store.HallPassRepository, sis adapter.SISClient, log *logger.Logger) ConflictResolver {
	return &conflictResolver{passes: passes, sis: sis, logger: log}
}

// DetermineStrategy implements [ConflictResolver]. The rules are ordered and
// the first match wins:
//
//  1. the SIS closed a pass the teacher still shows open → SIS_WINS;
//  2. the teacher already recorded the student back → LOCAL_WINS;
//  3. the SIS snapshot carries an updated_at stamp → MERGE;
//  4. otherwise nothing is trustworthy enough to decide → MANUAL_REVIEW.
func (r *conflictResolver) DetermineStrategy(local models.HallPass, remote models.HallPassRecord) models.Strategy {
	if passStatusFromSIS(remote.Status) == models.PassReturned && local.Status == models.PassActive {
		return models.StrategySISWins
	}
	if local.Returned() {
		return models.StrategyLocalWins
	}
	if remote.UpdatedAt != nil {
		return models.StrategyMerge
	}
	return models.StrategyManualReview
}

// Resolve implements [ConflictResolver].
func (r *conflictResolver) Resolve(ctx context.Context, local models.HallPass, remote models.HallPassRecord) (models.ConflictRecord, error) {
	strategy := r.DetermineStrategy(local, remote)

	var err error
	switch strategy {
	case models.StrategySISWins:
		err = r.applySISWins(ctx, &local, remote)
	case models.StrategyLocalWins:
		err = r.applyLocalWins(ctx, &local)
	case models.StrategyMerge:
		err = r.applyMerge(ctx, &local, remote)
	case models.StrategyManualReview:
		err = r.applyManualReview(ctx, &local)
	}
	if err != nil {
		return models.ConflictRecord{}, fmt.Errorf("resolve hall pass %s (%s): %w", local.ID, strategy, err)
	}

	r.logger.Info().
		Str("pass_id", local.ID).
		Str("strategy", string(strategy)).
		Str("resolution", string(local.SyncStatus)).
		Msg("hall pass conflict resolved")

	return models.ConflictRecord{
		Local:      local,
		Remote:     remote,
		Strategy:   strategy,
		Resolution: local.SyncStatus,
		ResolvedAt: time.Now(),
	}, nil
}

// applySISWins overwrites the local mutable fields from the SIS snapshot and
// marks the pass synced.
func (r *conflictResolver) applySISWins(ctx context.Context, local *models.HallPass, remote models.HallPassRecord) error {
	applyHallPassRecord(local, remote)
	local.SyncStatus = models.SyncSynced
	return r.passes.Update(ctx, *local)
}

// applyLocalWins keeps every local field and re-queues the pass so the next
// push cycle re-sends local truth.
func (r *conflictResolver) applyLocalWins(ctx context.Context, local *models.HallPass) error {
	local.SyncStatus = models.SyncPending
	return r.passes.Update(ctx, *local)
}

// applyMerge combines both sides: non-duplicate notes are concatenated, a
// missing local return time is adopted from the SIS (closing the pass), and
// the duration is recomputed when both timestamps are present.
func (r *conflictResolver) applyMerge(ctx context.Context, local *models.HallPass, remote models.HallPassRecord) error {
	local.Notes = mergeNotes(local.Notes, remote.Notes)

	if (local.TimeIn == nil || local.TimeIn.IsZero()) && remote.TimeIn != nil && !remote.TimeIn.IsZero() {
		t := *remote.TimeIn
		local.TimeIn = &t
		local.Status = models.PassReturned
	}
	if d := passDuration(local.TimeOut, local.TimeIn); d > 0 {
		local.DurationMinutes = d
	}
	if remote.UpdatedAt != nil && remote.UpdatedAt.After(local.LastModified) {
		local.LastModified = *remote.UpdatedAt
	}

	local.SyncStatus = models.SyncSynced
	return r.passes.Update(ctx, *local)
}

// applyManualReview parks the pass in CONFLICT with an audit note. Only the
// Force operations move it out of this state.
func (r *conflictResolver) applyManualReview(ctx context.Context, local *models.HallPass) error {
	note := fmt.Sprintf("[conflict %s] divergent edit history, awaiting review", time.Now().UTC().Format(time.RFC3339))
	local.Notes = mergeNotes(local.Notes, note)
	local.SyncStatus = models.SyncConflict
	return r.passes.Update(ctx, *local)
}

// ForceLocalResolution implements [ConflictResolver].
func (r *conflictResolver) ForceLocalResolution(ctx context.Context, id string) error {
	pass, err := r.passes.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load hall pass %s: %w", id, err)
	}
	if pass.SyncStatus != models.SyncConflict {
		return ErrNotInConflict
	}

	pass.SyncStatus = models.SyncPending
	if err = r.passes.Update(ctx, pass); err != nil {
		return fmt.Errorf("force local resolution for %s: %w", id, err)
	}

	r.logger.Info().Str("pass_id", id).Msg("conflict force-resolved in favour of local record")
	return nil
}

// ForceSISResolution implements [ConflictResolver].
func (r *conflictResolver) ForceSISResolution(ctx context.Context, id string) error {
	pass, err := r.passes.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load hall pass %s: %w", id, err)
	}
	if pass.SyncStatus != models.SyncConflict {
		return ErrNotInConflict
	}
	if pass.SISID == "" {
		return ErrNoRemoteSnapshot
	}

	remote, err := r.sis.GetHallPassSnapshot(ctx, pass.SISID)
	if err != nil {
		return fmt.Errorf("fetch SIS snapshot for %s: %w", id, err)
	}

	applyHallPassRecord(&pass, remote)
	pass.SyncStatus = models.SyncSynced
	if err = r.passes.Update(ctx, pass); err != nil {
		return fmt.Errorf("force SIS resolution for %s: %w", id, err)
	}

	r.logger.Info().Str("pass_id", id).Msg("conflict force-resolved in favour of SIS record")
	return nil
}

// ListUnresolved implements [ConflictResolver].
func (r *conflictResolver) ListUnresolved(ctx context.Context) ([]models.HallPass, error) {
	return r.passes.ListConflicts(ctx)
}

// mergeNotes appends addition to base unless base already contains it.
func mergeNotes(base, addition string) string {
	if addition == "" {
		return base
	}
	if base == "" {
		return addition
	}
	if strings.Contains(base, addition) {
		return base
	}
	return base + "\n" + addition
}
