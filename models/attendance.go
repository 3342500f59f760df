package models

import "time"

// AttendanceStatus is the per-period attendance mark for one student.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceTardy   AttendanceStatus = "TARDY"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Attendance records one student's attendance mark for one school day.
type Attendance struct {
	SyncMeta

	StudentID string           `json:"student_id" db:"student_id"`
	Date      time.Time        `json:"date" db:"date"`
	Period    int              `json:"period" db:"period"`
	Status    AttendanceStatus `json:"status" db:"status"`
	Note      string           `json:"note,omitempty" db:"note"`
}
