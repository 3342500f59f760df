package models

import "time"

// SyncStatus describes where a locally stored record stands relative to the
// remote system of record.
type SyncStatus string

const (
	// SyncPending marks a record with local changes the remote has not
	// acknowledged yet.
	SyncPending SyncStatus = "PENDING"

	// SyncSynced marks a record whose last local change was acknowledged
	// with a 2xx response.
	SyncSynced SyncStatus = "SYNCED"

	// SyncConflict marks a record with divergent local and remote edit
	// history awaiting resolution.
	SyncConflict SyncStatus = "CONFLICT"
)

// EntityType identifies one syncable record kind. The scheduler walks types
// in a fixed dependency order, so the values double as log labels.
type EntityType string

const (
	EntityStudent            EntityType = "student"
	EntityAssignmentCategory EntityType = "assignment_category"
	EntityAssignment         EntityType = "assignment"
	EntityGrade              EntityType = "grade"
	EntityAttendance         EntityType = "attendance"
	EntityHallPass           EntityType = "hall_pass"
	EntityClub               EntityType = "club"
)

// SyncMeta carries the sync bookkeeping shared by every syncable entity.
//
// ID is assigned locally (uuid) and owned by the client. SISID is the
// identifier the admin server assigned to the record; it stays empty until
// the first successful push. LastModified drives last-write-wins merges; a
// zero value means the modification time is unknown and the record must not
// be merged automatically.
type SyncMeta struct {
	ID           string     `json:"id" db:"id"`
	SISID        string     `json:"sis_id,omitempty" db:"sis_id"`
	SyncStatus   SyncStatus `json:"sync_status" db:"sync_status"`
	LastModified time.Time  `json:"last_modified" db:"last_modified"`
}

// SyncEnvelope is the unit the scheduler pushes: one pending record reduced
// to its type, local id and wire payload.
type SyncEnvelope struct {
	Type EntityType
	ID   string
	DTO  any
}
