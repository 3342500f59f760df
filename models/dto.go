package models

import "time"

// Wire-format projections of the local entities. The SIS owns the
// `last_modified` stamps on these records; local-only fields (sync status,
// UI caches) never cross this boundary.

type StudentRecord struct {
	SISID        string    `json:"id,omitempty"`
	LocalID      string    `json:"client_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	GradeYear    int       `json:"grade_year"`
	Email        string    `json:"email,omitempty"`
	Active       bool      `json:"active"`
	LastModified time.Time `json:"last_modified"`
}

type AssignmentCategoryRecord struct {
	SISID        string    `json:"id,omitempty"`
	LocalID      string    `json:"client_id"`
	Name         string    `json:"name"`
	Weight       float64   `json:"weight"`
	LastModified time.Time `json:"last_modified"`
}

type AssignmentRecord struct {
	SISID        string    `json:"id,omitempty"`
	LocalID      string    `json:"client_id"`
	CategoryID   string    `json:"category_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	MaxPoints    float64   `json:"max_points"`
	DueDate      time.Time `json:"due_date"`
	LastModified time.Time `json:"last_modified"`
}

type GradeRecord struct {
	SISID        string    `json:"id,omitempty"`
	LocalID      string    `json:"client_id"`
	StudentID    string    `json:"student_id"`
	AssignmentID string    `json:"assignment_id"`
	Score        float64   `json:"score"`
	Comment      string    `json:"comment,omitempty"`
	GradedAt     time.Time `json:"graded_at"`
	LastModified time.Time `json:"last_modified"`
}

type AttendanceRecord struct {
	SISID        string    `json:"id,omitempty"`
	LocalID      string    `json:"client_id"`
	StudentID    string    `json:"student_id"`
	Date         time.Time `json:"date"`
	Period       int       `json:"period"`
	Status       string    `json:"status"`
	Note         string    `json:"note,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// HallPassRecord is the SIS view of a hall pass. Status and Destination use
// the SIS vocabulary (IN_PROGRESS, COMPLETED, ...), translated by the
// conflict resolver's mapping tables. UpdatedAt is a pointer because older
// SIS versions omit it, which the strategy rules care about.
type HallPassRecord struct {
	SISID       string     `json:"id,omitempty"`
	LocalID     string     `json:"client_id"`
	StudentID   string     `json:"student_id"`
	Destination string     `json:"destination"`
	Status      string     `json:"status"`
	TimeOut     time.Time  `json:"time_out"`
	TimeIn      *time.Time `json:"time_in,omitempty"`
	Duration    int        `json:"duration_minutes"`
	Notes       string     `json:"notes,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ClubRecord struct {
	SISID        string    `json:"id,omitempty"`
	LocalID      string    `json:"client_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	MeetingDay   string    `json:"meeting_day,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// GradeBatchRequest submits all pending grades in one call.
type GradeBatchRequest struct {
	Grades []GradeRecord `json:"grades"`
	Length int           `json:"length"`
}

// AttendanceBatchRequest submits all pending attendance marks in one call.
type AttendanceBatchRequest struct {
	Records []AttendanceRecord `json:"records"`
	Length  int                `json:"length"`
}

// BatchResponse is the SIS answer to a batch push. AcceptedIDs is optional:
// servers with all-or-nothing batches omit it, servers that apply batches
// partially list the client ids they actually stored.
type BatchResponse struct {
	AcceptedIDs []string `json:"accepted_ids,omitempty"`
	Assigned    []IDPair `json:"assigned,omitempty"`
}

// IDPair maps a client-owned id to the SIS id assigned on first insert.
type IDPair struct {
	LocalID string `json:"client_id"`
	SISID   string `json:"id"`
}

// PushAck is the response to a single-entity push.
type PushAck struct {
	SISID        string    `json:"id"`
	LastModified time.Time `json:"last_modified"`
}

// SyncCompleteRequest tells the SIS which client ids the client now
// considers synced, closing the loop after a batch push.
type SyncCompleteRequest struct {
	EntityType EntityType `json:"entity_type"`
	IDs        []string   `json:"ids"`
}

// ConflictReport is one divergence the SIS flagged on its side. It carries
// the remote snapshot so the resolver (or the operator) can act without
// another round trip.
type ConflictReport struct {
	EntityType EntityType      `json:"entity_type"`
	LocalID    string          `json:"client_id"`
	Reason     string          `json:"reason"`
	Remote     *HallPassRecord `json:"remote,omitempty"`
	ReportedAt time.Time       `json:"reported_at"`
}
