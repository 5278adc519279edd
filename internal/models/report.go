package models

// AttendanceSummary aggregates one student's attendance marks. Percentage is
// nil when no days were marked at all; late days count as attended.
type AttendanceSummary struct {
	StudentID  int64    `db:"student_id"`
	Name       string   `db:"name"`
	RollNumber string   `db:"roll_number"`
	TotalDays  int      `db:"total_days"`
	Present    int      `db:"present"`
	Absent     int      `db:"absent"`
	Late       int      `db:"late"`
	Percentage *float64 `db:"-"`
}

// AssignmentCompletion aggregates one assignment's submissions across the
// class roster. Percentage is nil when the class has no students.
type AssignmentCompletion struct {
	AssignmentID  int64    `db:"assignment_id"`
	Title         string   `db:"title"`
	Subject       string   `db:"subject"`
	TotalStudents int      `db:"-"`
	Completed     int      `db:"completed"`
	Pending       int      `db:"-"`
	Percentage    *float64 `db:"-"`
}

// StudentReport combines identity, attendance totals and assignment
// completion for a single student.
type StudentReport struct {
	Student Student

	AttendanceTotal      int
	AttendancePresent    int
	AttendanceAbsent     int
	AttendanceLate       int
	AttendancePercentage float64

	AssignmentsTotal     int
	AssignmentsCompleted int
	AssignmentsPending   int
	CompletionPercentage float64
}
