package models

import "time"

// Strategy is the rule the conflict resolver picked for one divergent
// record.
type Strategy string

const (
	// StrategySISWins overwrites local mutable fields from the SIS
	// snapshot; the SIS is the system of record.
	StrategySISWins Strategy = "SIS_WINS"

	// StrategyLocalWins keeps the local record and re-queues it so the
	// next push cycle re-sends local truth.
	StrategyLocalWins Strategy = "LOCAL_WINS"

	// StrategyMerge combines both sides field by field (notes are
	// concatenated, missing return times adopted).
	StrategyMerge Strategy = "MERGE"

	// StrategyManualReview parks the record in CONFLICT until an operator
	// forces a resolution. This is a sink state, never left automatically.
	StrategyManualReview Strategy = "MANUAL_REVIEW"
)

// ConflictRecord pairs a locally stored hall pass with the competing SIS
// snapshot, annotated with the strategy the resolver applied and the sync
// status the record ended up in.
type ConflictRecord struct {
	Local      HallPass       `json:"local"`
	Remote     HallPassRecord `json:"remote"`
	Strategy   Strategy       `json:"strategy"`
	Resolution SyncStatus     `json:"resolution"`
	ResolvedAt time.Time      `json:"resolved_at"`
}

// SyncSession describes one full-sync attempt. It is ephemeral: built during
// a single orchestration call, returned to the caller, never persisted.
type SyncSession struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Pulled and Pushed count applied records per entity type.
	Pulled map[EntityType]int `json:"pulled"`
	Pushed map[EntityType]int `json:"pushed"`

	// SkippedAmbiguous counts pulled records left untouched because
	// neither side carried a usable modification timestamp.
	SkippedAmbiguous int `json:"skipped_ambiguous"`

	// Conflicts lists unresolved divergences reported by the SIS during
	// this pass. They are attached for the UI, not auto-resolved here.
	Conflicts []ConflictReport `json:"conflicts,omitempty"`

	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewSyncSession returns a session stamped with the current time and empty
// counters.
func NewSyncSession() SyncSession {
	return SyncSession{
		StartedAt: time.Now(),
		Pulled:    make(map[EntityType]int),
		Pushed:    make(map[EntityType]int),
	}
}

// Finish stamps the end time and records the outcome.
func (s *SyncSession) Finish(success bool, message string) SyncSession {
	s.FinishedAt = time.Now()
	s.Success = success
	s.Message = message
	return *s
}

// SchedulerStats is a point-in-time snapshot of the background push loop's
// cumulative counters, exposed for status indicators.
type SchedulerStats struct {
	TotalSynced    int64     `json:"total_synced"`
	FailedAttempts int64     `json:"failed_attempts"`
	LastSyncTime   time.Time `json:"last_sync_time"`
}
