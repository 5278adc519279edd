package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classtrack/internal/models"
)

// AttendanceRepository manages daily attendance marks.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

type attendanceRow struct {
	ID        int64          `db:"id"`
	StudentID int64          `db:"student_id"`
	Date      int64          `db:"date"`
	Status    int            `db:"status"`
	Notes     sql.NullString `db:"notes"`
}

func (r attendanceRow) toModel() models.Attendance {
	return models.Attendance{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      time.Unix(r.Date, 0).UTC(),
		Status:    models.AttendanceStatus(r.Status),
		Notes:     r.Notes.String,
	}
}

const attendanceColumns = `id, student_id, CAST(strftime('%s', date) AS INTEGER) AS date, status, notes`

// canonicalDay pins a timestamp to UTC midnight of its calendar day so the
// stored DATE value round-trips to the same day in every timezone.
func canonicalDay(t time.Time) int64 {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()
}

// Mark inserts or overwrites the single mark for the (student, day) pair.
func (r *AttendanceRepository) Mark(ctx context.Context, studentID int64, date time.Time, status models.AttendanceStatus, notes string) error {
	const query = `INSERT OR REPLACE INTO attendance (student_id, date, status, notes)
		VALUES (?, date(?, 'unixepoch'), ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, studentID, canonicalDay(date), int(status), notes); err != nil {
		return fmt.Errorf("mark attendance: %w", err)
	}
	return nil
}

// ListByDate returns every mark recorded for the given calendar day.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE date = date(?, 'unixepoch')`
	var rows []attendanceRow
	if err := r.db.SelectContext(ctx, &rows, query, canonicalDay(date)); err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return attendanceRowsToModels(rows), nil
}

// ListByStudent returns a student's marks, most recent day first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE student_id = ? ORDER BY date DESC`
	var rows []attendanceRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance by student: %w", err)
	}
	return attendanceRowsToModels(rows), nil
}

func attendanceRowsToModels(rows []attendanceRow) []models.Attendance {
	marks := make([]models.Attendance, 0, len(rows))
	for _, row := range rows {
		marks = append(marks, row.toModel())
	}
	return marks
}
