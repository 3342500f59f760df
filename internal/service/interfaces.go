// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-teacher-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncScheduler defines the contract for the background push loop. One
// instance runs for the lifetime of the client, waking on a fixed-delay
// ticker and pushing every locally pending record to the SIS.
type SyncScheduler interface {
	// Start launches the background goroutine. A zero or negative interval
	// falls back to the configured default. Calling Start while the
	// scheduler is already running restarts it. The goroutine exits when
	// ctx is cancelled or Stop is called.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the background goroutine and blocks until it has fully
	// exited, waiting a bounded grace period for a mid-flight tick. Safe
	// to call when the scheduler is not running.
	Stop()

	// Stats returns a snapshot of the cumulative push counters for status
	// indicators (pending count badges, "last synced" labels).
	Stats() models.SchedulerStats
}

// SyncManager defines the contract for the manually triggered bidirectional
// reconciliation: pull rosters and assignments, push grade and attendance
// batches, then collect outstanding conflicts.
type SyncManager interface {
	// FullSync runs one complete reconciliation pass and reports what
	// happened. It never returns an error: precondition failures (not
	// authenticated, server unreachable) and mid-pass failures all come
	// back as a failed SyncSession with a descriptive message. A second
	// call while one is running returns immediately with an "already in
	// progress" session and performs no remote calls.
	FullSync(ctx context.Context) models.SyncSession
}

// ConflictResolver defines the contract for reconciling hall passes that
// both sides edited. Hall passes are the one two-way-editable entity: a
// hallway kiosk may close a pass the teacher still shows as open.
type ConflictResolver interface {
	// DetermineStrategy picks the resolution rule for one divergent pair.
	// It is a pure function of its inputs: the same pair always yields the
	// same strategy.
	DetermineStrategy(local models.HallPass, remote models.HallPassRecord) models.Strategy

	// Resolve applies the selected strategy and persists the outcome.
	// SIS_WINS and MERGE leave the record SYNCED, LOCAL_WINS re-queues it
	// as PENDING, MANUAL_REVIEW parks it in CONFLICT until one of the
	// Force methods is called.
	Resolve(ctx context.Context, local models.HallPass, remote models.HallPassRecord) (models.ConflictRecord, error)

	// ForceLocalResolution is the operator escape hatch that keeps the
	// local record: the pass leaves CONFLICT and is re-queued for push.
	ForceLocalResolution(ctx context.Context, id string) error

	// ForceSISResolution is the operator escape hatch that accepts the
	// SIS snapshot: the current remote state is fetched, applied over the
	// local record, and the pass leaves CONFLICT as SYNCED.
	ForceSISResolution(ctx context.Context, id string) error

	// ListUnresolved returns the passes parked in CONFLICT, for the UI's
	// conflict inbox.
	ListUnresolved(ctx context.Context) ([]models.HallPass, error)
}
