package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classtrack/internal/models"
)

// SubmissionRepository manages assignment tracking records.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs a SubmissionRepository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

type submissionRow struct {
	ID           int64          `db:"id"`
	AssignmentID int64          `db:"assignment_id"`
	StudentID    int64          `db:"student_id"`
	Status       int            `db:"status"`
	Quality      int            `db:"quality"`
	SubmittedAt  sql.NullInt64  `db:"submitted_at"`
	Notes        sql.NullString `db:"notes"`
}

func (r submissionRow) toModel() models.Submission {
	sub := models.Submission{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		StudentID:    r.StudentID,
		Status:       models.SubmissionStatus(r.Status),
		Quality:      models.Quality(r.Quality),
		Notes:        r.Notes.String,
	}
	if r.SubmittedAt.Valid {
		sub.SubmittedAt = time.Unix(r.SubmittedAt.Int64, 0).UTC()
	}
	return sub
}

const submissionColumns = `id, assignment_id, student_id, status, quality, CAST(strftime('%s', submitted_at) AS INTEGER) AS submitted_at, notes`

// Upsert inserts or overwrites the single tracking record for the
// (assignment, student) pair. The marked-at timestamp is refreshed on every
// save, including pure re-marks.
func (r *SubmissionRepository) Upsert(ctx context.Context, assignmentID, studentID int64, status models.SubmissionStatus, quality models.Quality, notes string) error {
	const query = `INSERT OR REPLACE INTO assignment_submissions (assignment_id, student_id, status, quality, submitted_at, notes)
		VALUES (?, ?, ?, ?, datetime('now'), ?)`
	if _, err := r.db.ExecContext(ctx, query, assignmentID, studentID, int(status), int(quality), notes); err != nil {
		return fmt.Errorf("upsert submission: %w", err)
	}
	return nil
}

// Get fetches the tracking record for one student on one assignment.
func (r *SubmissionRepository) Get(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM assignment_submissions WHERE assignment_id = ? AND student_id = ?`
	var row submissionRow
	if err := r.db.GetContext(ctx, &row, query, assignmentID, studentID); err != nil {
		return nil, err
	}
	sub := row.toModel()
	return &sub, nil
}

// ListByAssignment returns every tracking record for an assignment.
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM assignment_submissions WHERE assignment_id = ?`
	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, query, assignmentID); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	subs := make([]models.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.toModel())
	}
	return subs, nil
}
