package models

// Student is a roster entry owned by the SIS and cached locally.
type Student struct {
	SyncMeta

	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	GradeYear int    `json:"grade_year" db:"grade_year"`
	Email     string `json:"email,omitempty" db:"email"`
	Active    bool   `json:"active" db:"active"`
}

// FullName returns "First Last" for display and log fields.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
