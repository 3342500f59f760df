package models

import "time"

// HallPassStatus is the local lifecycle state of a hall pass. The SIS uses
// its own vocabulary; the conflict resolver owns the mapping between the two.
type HallPassStatus string

const (
	PassActive    HallPassStatus = "ACTIVE"
	PassReturned  HallPassStatus = "RETURNED"
	PassExpired   HallPassStatus = "EXPIRED"
	PassCancelled HallPassStatus = "CANCELLED"
)

// PassDestination is where the student went on the pass.
type PassDestination string

const (
	DestRestroom  PassDestination = "RESTROOM"
	DestNurse     PassDestination = "NURSE"
	DestOffice    PassDestination = "OFFICE"
	DestLibrary   PassDestination = "LIBRARY"
	DestCounselor PassDestination = "COUNSELOR"
	DestOther     PassDestination = "OTHER"
)

// HallPass is a two-way-editable record: both the teacher's client and the
// SIS hallway kiosks may close a pass, so it is the one entity that can
// genuinely diverge and needs the conflict resolver.
type HallPass struct {
	SyncMeta

	StudentID       string          `json:"student_id" db:"student_id"`
	Destination     PassDestination `json:"destination" db:"destination"`
	Status          HallPassStatus  `json:"status" db:"status"`
	TimeOut         time.Time       `json:"time_out" db:"time_out"`
	TimeIn          *time.Time      `json:"time_in,omitempty" db:"time_in"`
	DurationMinutes int             `json:"duration_minutes" db:"duration_minutes"`
	Notes           string          `json:"notes,omitempty" db:"notes"`
}

// Returned reports whether the pass has been closed locally with a recorded
// return time.
func (p HallPass) Returned() bool {
	return p.Status == PassReturned && p.TimeIn != nil && !p.TimeIn.IsZero()
}
