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

	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/internal/mock"
	"github.com/MKhiriev/go-teacher-desk/models"
)

func newTestResolver(t *testing.T, ctrl *gomock.Controller) (*conflictResolver, *mock.MockHallPassRepository, *mock.MockSISClient) {
	t.Helper()
	passes := mock.NewMockHallPassRepository(ctrl)
	sis := mock.NewMockSISClient(ctrl)
	r := NewConflictResolver(passes, sis, logger.Nop()).(*conflictResolver)
	return r, passes, sis
}

func timePtr(t time.Time) *time.Time { return &t }

// ── DetermineStrategy ───────────────────────────────────────────────────────

func TestDetermineStrategy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	now := time.Now()

	tests := []struct {
		name   string
		local  models.HallPass
		remote models.HallPassRecord
		want   models.Strategy
	}{
		{
			name:   "kiosk closed a pass the teacher shows open",
			local:  models.HallPass{Status: models.PassActive},
			remote: models.HallPassRecord{Status: "COMPLETED"},
			want:   models.StrategySISWins,
		},
		{
			name:   "teacher already recorded the return",
			local:  models.HallPass{Status: models.PassReturned, TimeIn: timePtr(now)},
			remote: models.HallPassRecord{Status: "IN_PROGRESS"},
			want:   models.StrategyLocalWins,
		},
		{
			// the local-return rule fires before the updated_at check
			name:   "local return beats remote updated_at",
			local:  models.HallPass{Status: models.PassReturned, TimeIn: timePtr(now)},
			remote: models.HallPassRecord{Status: "IN_PROGRESS", UpdatedAt: timePtr(now)},
			want:   models.StrategyLocalWins,
		},
		{
			name:   "local return with no remote updated_at",
			local:  models.HallPass{Status: models.PassReturned, TimeIn: timePtr(now)},
			remote: models.HallPassRecord{Status: "VOIDED"},
			want:   models.StrategyLocalWins,
		},
		{
			name:   "remote carries an updated_at stamp",
			local:  models.HallPass{Status: models.PassExpired},
			remote: models.HallPassRecord{Status: "TIMED_OUT", UpdatedAt: timePtr(now)},
			want:   models.StrategyMerge,
		},
		{
			name:   "nothing decisive on either side",
			local:  models.HallPass{Status: models.PassExpired},
			remote: models.HallPassRecord{Status: "TIMED_OUT"},
			want:   models.StrategyManualReview,
		},
		{
			// a RETURNED status without a recorded time is not a real return
			name:   "returned status but no time_in falls through",
			local:  models.HallPass{Status: models.PassReturned},
			remote: models.HallPassRecord{Status: "IN_PROGRESS"},
			want:   models.StrategyManualReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.DetermineStrategy(tt.local, tt.remote)
			assert.Equal(t, tt.want, got)

			// same inputs, same answer
			assert.Equal(t, got, r.DetermineStrategy(tt.local, tt.remote))
		})
	}
}

// ── Resolve ─────────────────────────────────────────────────────────────────

func TestResolve_SISWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, passes, _ := newTestResolver(t, ctrl)

	timeIn := time.Now()
	local := models.HallPass{
		SyncMeta:    models.SyncMeta{ID: "hp-1", SISID: "sis-1", SyncStatus: models.SyncPending},
		Status:      models.PassActive,
		Destination: models.DestRestroom,
		TimeOut:     timeIn.Add(-7 * time.Minute),
	}
	remote := models.HallPassRecord{
		SISID:       "sis-1",
		Status:      "COMPLETED",
		Destination: "RESTROOM",
		TimeIn:      &timeIn,
		Duration:    7,
	}

	var saved models.HallPass
	passes.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.HallPass) error {
			saved = p
			return nil
		})

	record, err := r.Resolve(context.Background(), local, remote)

	require.NoError(t, err)
	assert.Equal(t, models.StrategySISWins, record.Strategy)
	assert.Equal(t, models.SyncSynced, saved.SyncStatus)
	assert.Equal(t, models.PassReturned, saved.Status)
	require.NotNil(t, saved.TimeIn)
	assert.Equal(t, timeIn, *saved.TimeIn)
	assert.Equal(t, 7, saved.DurationMinutes)
	assert.Equal(t, "hp-1", saved.ID, "local id must survive the overwrite")
}

func TestResolve_LocalWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, passes, _ := newTestResolver(t, ctrl)

	timeIn := time.Now()
	local := models.HallPass{
		SyncMeta: models.SyncMeta{ID: "hp-1", SyncStatus: models.SyncSynced},
		Status:   models.PassReturned,
		TimeIn:   &timeIn,
		Notes:    "came back early",
	}
	remote := models.HallPassRecord{Status: "IN_PROGRESS"}

	var saved models.HallPass
	passes.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.HallPass) error {
			saved = p
			return nil
		})

	record, err := r.Resolve(context.Background(), local, remote)

	require.NoError(t, err)
	assert.Equal(t, models.StrategyLocalWins, record.Strategy)
	assert.Equal(t, models.SyncPending, saved.SyncStatus, "re-queued so the next push re-sends local truth")
	assert.Equal(t, models.PassReturned, saved.Status)
	assert.Equal(t, "came back early", saved.Notes, "local fields untouched")
}

func TestResolve_Merge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, passes, _ := newTestResolver(t, ctrl)

	out := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	in := out.Add(12 * time.Minute)
	updated := in.Add(time.Minute)
	local := models.HallPass{
		SyncMeta: models.SyncMeta{ID: "hp-1", SyncStatus: models.SyncPending},
		Status:   models.PassActive,
		TimeOut:  out,
		Notes:    "left during quiz",
	}
	remote := models.HallPassRecord{
		Status:    "IN_PROGRESS",
		TimeIn:    &in,
		Notes:     "scanned back at kiosk B",
		UpdatedAt: &updated,
	}

	var saved models.HallPass
	passes.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.HallPass) error {
			saved = p
			return nil
		})

	record, err := r.Resolve(context.Background(), local, remote)

	require.NoError(t, err)
	assert.Equal(t, models.StrategyMerge, record.Strategy)
	assert.Equal(t, models.SyncSynced, saved.SyncStatus)
	assert.Equal(t, models.PassReturned, saved.Status, "adopting the remote return closes the pass")
	require.NotNil(t, saved.TimeIn)
	assert.Equal(t, in, *saved.TimeIn)
	assert.Equal(t, 12, saved.DurationMinutes)
	assert.Contains(t, saved.Notes, "left during quiz")
	assert.Contains(t, saved.Notes, "scanned back at kiosk B")
}

func TestResolve_ManualReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, passes, _ := newTestResolver(t, ctrl)

	local := models.HallPass{
		SyncMeta: models.SyncMeta{ID: "hp-1", SyncStatus: models.SyncPending},
		Status:   models.PassExpired,
	}
	remote := models.HallPassRecord{Status: "TIMED_OUT"}

	var saved models.HallPass
	passes.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.HallPass) error {
			saved = p
			return nil
		})

	record, err := r.Resolve(context.Background(), local, remote)

	require.NoError(t, err)
	assert.Equal(t, models.StrategyManualReview, record.Strategy)
	assert.Equal(t, models.SyncConflict, saved.SyncStatus)
	assert.Contains(t, saved.Notes, "awaiting review")
}

// ── Force operations ────────────────────────────────────────────────────────

func TestForceLocalResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, passes, _ := newTestResolver(t, ctrl)

	pass := models.HallPass{SyncMeta: models.SyncMeta{ID: "hp-1", SyncStatus: models.SyncConflict}}
	passes.EXPECT().Get(gomock.Any(), "hp-1").Return(pass, nil)

	var saved models.HallPass
	passes.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.HallPass) error {
			saved = p
			return nil
		})

	err := r.ForceLocalResolution(context.Background(), "hp-1")

	require.NoError(t, err)
	assert.Equal(t, models.SyncPending, saved.SyncStatus)
}

func TestForceLocalResolution_NotInConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, passes, _ := newTestResolver(t, ctrl)

	pass := models.HallPass{SyncMeta: models.SyncMeta{ID: "hp-1", SyncStatus: models.SyncSynced}}
	passes.EXPECT().Get(gomock.Any(), "hp-1").Return(pass, nil)

	err := r.ForceLocalResolution(context.Background(), "hp-1")

	assert.ErrorIs(t, err, ErrNotInConflict)
}

func TestForceSISResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, passes, sis := newTestResolver(t, ctrl)

	timeIn := time.Now()
	pass := models.HallPass{
		SyncMeta: models.SyncMeta{ID: "hp-1", SISID: "sis-1", SyncStatus: models.SyncConflict},
		Status:   models.PassActive,
	}
	remote := models.HallPassRecord{SISID: "sis-1", Status: "COMPLETED", TimeIn: &timeIn}

	passes.EXPECT().Get(gomock.Any(), "hp-1").Return(pass, nil)
	sis.EXPECT().GetHallPassSnapshot(gomock.Any(), "sis-1").Return(remote, nil)

	var saved models.HallPass
	passes.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.HallPass) error {
			saved = p
			return nil
		})

	err := r.ForceSISResolution(context.Background(), "hp-1")

	require.NoError(t, err)
	assert.Equal(t, models.SyncSynced, saved.SyncStatus)
	assert.Equal(t, models.PassReturned, saved.Status)
}

func TestForceSISResolution_NeverPushed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, passes, _ := newTestResolver(t, ctrl)

	pass := models.HallPass{SyncMeta: models.SyncMeta{ID: "hp-1", SyncStatus: models.SyncConflict}}
	passes.EXPECT().Get(gomock.Any(), "hp-1").Return(pass, nil)

	err := r.ForceSISResolution(context.Background(), "hp-1")

	assert.ErrorIs(t, err, ErrNoRemoteSnapshot)
}

// ── vocabulary ──────────────────────────────────────────────────────────────

func TestVocabulary_RoundTripAndFallback(t *testing.T) {
	for local, wire := range statusToSIS {
		assert.Equal(t, local, passStatusFromSIS(wire))
	}
	for local, wire := range destinationToSIS {
		assert.Equal(t, local, destFromSIS(wire))
	}

	assert.Equal(t, models.DestOther, destFromSIS("CAFETERIA"))
	assert.Equal(t, "OTHER", destToSIS(models.PassDestination("GYM")))
	assert.Equal(t, models.PassActive, passStatusFromSIS("SOMETHING_NEW"))
}

func TestPassDuration(t *testing.T) {
	out := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, passDuration(time.Time{}, nil))
	assert.Equal(t, 0, passDuration(out, nil))
	assert.Equal(t, 1, passDuration(out, timePtr(out.Add(30*time.Second))), "sub-minute trips round up")
	assert.Equal(t, 12, passDuration(out, timePtr(out.Add(12*time.Minute))))
	assert.Equal(t, 0, passDuration(out, timePtr(out.Add(-time.Minute))), "clock skew never yields negative minutes")
}

func TestMergeNotes(t *testing.T) {
	assert.Equal(t, "a", mergeNotes("a", ""))
	assert.Equal(t, "b", mergeNotes("", "b"))
	assert.Equal(t, "a\nb", mergeNotes("a", "b"))
	assert.Equal(t, "a\nb", mergeNotes("a\nb", "b"), "duplicates are not re-appended")
}
