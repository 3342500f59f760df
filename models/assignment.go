package models

import "time"

// AssignmentCategory groups assignments (homework, quizzes, ...). Categories
// sync before assignments because assignments reference them.
type AssignmentCategory struct {
	SyncMeta

	Name   string  `json:"name" db:"name"`
	Weight float64 `json:"weight" db:"weight"`
}

// Assignment is one gradable task in the teacher's gradebook.
type Assignment struct {
	SyncMeta

	CategoryID  string    `json:"category_id" db:"category_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	MaxPoints   float64   `json:"max_points" db:"max_points"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
}
