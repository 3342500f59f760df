package models

// Club is an extracurricular group the teacher sponsors. Clubs are created
// locally and pushed last in the sync order because nothing references them.
type Club struct {
	SyncMeta

	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
	MeetingDay  string `json:"meeting_day,omitempty" db:"meeting_day"`
}
