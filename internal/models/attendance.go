package models

import "time"

// AttendanceStatus marks a student's presence for one calendar day.
// Persisted integers; do not reorder.
type AttendanceStatus int

const (
	AttendanceAbsent AttendanceStatus = iota
	AttendancePresent
	AttendanceLate
)

func (s AttendanceStatus) String() string {
	switch s {
	case AttendancePresent:
		return "Present"
	case AttendanceLate:
		return "Late"
	default:
		return "Absent"
	}
}

// Attendance is the single mark per (student, calendar day) pair.
type Attendance struct {
	ID        int64            `db:"id" json:"id"`
	StudentID int64            `db:"student_id" json:"student_id"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Notes     string           `db:"notes" json:"notes"`
}
