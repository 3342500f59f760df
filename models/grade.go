package models

import "time"

// Grade is one student's score on one assignment.
type Grade struct {
	SyncMeta

	StudentID    string    `json:"student_id" db:"student_id"`
	AssignmentID string    `json:"assignment_id" db:"assignment_id"`
	Score        float64   `json:"score" db:"score"`
	Comment      string    `json:"comment,omitempty" db:"comment"`
	GradedAt     time.Time `json:"graded_at" db:"graded_at"`
}
