package models

import "time"

// SubmissionStatus records whether and when an assignment was handed in.
// The values are persisted integers; do not reorder.
type SubmissionStatus int

const (
	SubmissionNone SubmissionStatus = iota
	SubmissionTimely
	SubmissionLate
)

func (s SubmissionStatus) String() string {
	switch s {
	case SubmissionTimely:
		return "Timely"
	case SubmissionLate:
		return "Late"
	default:
		return "Not Submitted"
	}
}

// Completed reports whether the status counts toward completion totals.
func (s SubmissionStatus) Completed() bool {
	return s == SubmissionTimely || s == SubmissionLate
}

// Quality grades the work handed in. Persisted integers; do not reorder.
type Quality int

const (
	QualityPoor Quality = iota
	QualityBelowAverage
	QualityAboveAverage
	QualityHigh
)

func (q Quality) String() string {
	switch q {
	case QualityBelowAverage:
		return "Below Average"
	case QualityAboveAverage:
		return "Above Average"
	case QualityHigh:
		return "High"
	default:
		return "Poor"
	}
}

// Submission is the single tracking record per (assignment, student) pair.
// Re-marking overwrites in place and refreshes SubmittedAt.
type Submission struct {
	ID           int64            `db:"id" json:"id"`
	AssignmentID int64            `db:"assignment_id" json:"assignment_id"`
	StudentID    int64            `db:"student_id" json:"student_id"`
	Status       SubmissionStatus `db:"status" json:"status"`
	Quality      Quality          `db:"quality" json:"quality"`
	SubmittedAt  time.Time        `db:"submitted_at" json:"submitted_at"`
	Notes        string           `db:"notes" json:"notes"`
}
