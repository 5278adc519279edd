package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classtrack/internal/models"
)

// ReportRepository runs the read-only aggregate queries behind reports.
// Nothing here is cached; every call re-queries the store.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ClassAttendanceSummary aggregates attendance per student for a class,
// ordered by roll number. Percentages are left to the service layer.
func (r *ReportRepository) ClassAttendanceSummary(ctx context.Context, classID int64) ([]models.AttendanceSummary, error) {
	const query = `SELECT s.id AS student_id, s.name, s.roll_number,
		COUNT(DISTINCT a.date) AS total_days,
		COALESCE(SUM(CASE WHEN a.status = 1 THEN 1 ELSE 0 END), 0) AS present,
		COALESCE(SUM(CASE WHEN a.status = 0 THEN 1 ELSE 0 END), 0) AS absent,
		COALESCE(SUM(CASE WHEN a.status = 2 THEN 1 ELSE 0 END), 0) AS late
		FROM students s
		LEFT JOIN attendance a ON s.id = a.student_id
		WHERE s.class_id = ?
		GROUP BY s.id, s.name, s.roll_number
		ORDER BY s.roll_number`
	var summaries []models.AttendanceSummary
	if err := r.db.SelectContext(ctx, &summaries, query, classID); err != nil {
		return nil, fmt.Errorf("class attendance summary: %w", err)
	}
	return summaries, nil
}

// ClassAssignmentCompletion counts completed submissions per assignment for
// a class, ordered by title. A submission counts as completed when its
// status is timely or late, i.e. anything but "not submitted".
func (r *ReportRepository) ClassAssignmentCompletion(ctx context.Context, classID int64) ([]models.AssignmentCompletion, error) {
	const query = `SELECT a.id AS assignment_id, a.title, a.subject,
		COUNT(CASE WHEN s.status IN (1, 2) THEN 1 END) AS completed
		FROM assignments a
		LEFT JOIN assignment_submissions s ON a.id = s.assignment_id
		WHERE a.class_id = ?
		GROUP BY a.id, a.title, a.subject
		ORDER BY a.title`
	var completions []models.AssignmentCompletion
	if err := r.db.SelectContext(ctx, &completions, query, classID); err != nil {
		return nil, fmt.Errorf("class assignment completion: %w", err)
	}
	return completions, nil
}

// StudentAttendanceTotals aggregates one student's marks across all days.
func (r *ReportRepository) StudentAttendanceTotals(ctx context.Context, studentID int64) (total, present, absent, late int, err error) {
	const query = `SELECT COUNT(DISTINCT date) AS total,
		COALESCE(SUM(CASE WHEN status = 1 THEN 1 ELSE 0 END), 0) AS present,
		COALESCE(SUM(CASE WHEN status = 0 THEN 1 ELSE 0 END), 0) AS absent,
		COALESCE(SUM(CASE WHEN status = 2 THEN 1 ELSE 0 END), 0) AS late
		FROM attendance WHERE student_id = ?`
	row := r.db.QueryRowxContext(ctx, query, studentID)
	if err = row.Scan(&total, &present, &absent, &late); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("student attendance totals: %w", err)
	}
	return total, present, absent, late, nil
}

// StudentAssignmentTotals counts a class's assignments and how many of them
// the student has completed.
func (r *ReportRepository) StudentAssignmentTotals(ctx context.Context, studentID, classID int64) (total, completed int, err error) {
	const query = `SELECT COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN s.status IN (1, 2) THEN 1 ELSE 0 END), 0) AS completed
		FROM assignments a
		LEFT JOIN assignment_submissions s ON a.id = s.assignment_id AND s.student_id = ?
		WHERE a.class_id = ?`
	row := r.db.QueryRowxContext(ctx, query, studentID, classID)
	if err = row.Scan(&total, &completed); err != nil {
		return 0, 0, fmt.Errorf("student assignment totals: %w", err)
	}
	return total, completed, nil
}
