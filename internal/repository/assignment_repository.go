package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classtrack/internal/models"
)

// AssignmentRepository manages persistence for assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

type assignmentRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Subject     string         `db:"subject"`
	Description sql.NullString `db:"description"`
	DueDate     int64          `db:"due_date"`
	CreatedBy   int64          `db:"created_by"`
	ClassID     int64          `db:"class_id"`
	CreatedAt   int64          `db:"created_at"`
}

func (r assignmentRow) toModel() models.Assignment {
	return models.Assignment{
		ID:          r.ID,
		Title:       r.Title,
		Subject:     r.Subject,
		Description: r.Description.String,
		DueDate:     time.Unix(r.DueDate, 0).UTC(),
		CreatedBy:   r.CreatedBy,
		ClassID:     r.ClassID,
		CreatedAt:   time.Unix(r.CreatedAt, 0).UTC(),
	}
}

const assignmentColumns = `id, title, subject, description, CAST(strftime('%s', due_date) AS INTEGER) AS due_date, created_by, class_id, CAST(strftime('%s', created_at) AS INTEGER) AS created_at`

// Create inserts an assignment row and fills in the generated id. Due dates
// cross the boundary as Unix epochs and are stored engine-native.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	const query = `INSERT INTO assignments (title, subject, description, due_date, created_by, class_id)
		VALUES (?, ?, ?, datetime(?, 'unixepoch'), ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		assignment.Title, assignment.Subject, assignment.Description,
		assignment.DueDate.Unix(), assignment.CreatedBy, assignment.ClassID)
	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create assignment id: %w", err)
	}
	assignment.ID = id
	return nil
}

// Update modifies an assignment's content and due date.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	const query = `UPDATE assignments SET title = ?, subject = ?, description = ?, due_date = datetime(?, 'unixepoch') WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		assignment.Title, assignment.Subject, assignment.Description,
		assignment.DueDate.Unix(), assignment.ID)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an assignment; its submissions cascade.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM assignments WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// FindByID fetches an assignment by id.
func (r *AssignmentRepository) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = ?`
	var row assignmentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	assignment := row.toModel()
	return &assignment, nil
}

// ListAll returns every assignment, most recent due date first.
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments ORDER BY due_date DESC`
	var rows []assignmentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignmentRowsToModels(rows), nil
}

// ListByClass returns a class's assignments, most recent due date first.
func (r *AssignmentRepository) ListByClass(ctx context.Context, classID int64) ([]models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE class_id = ? ORDER BY due_date DESC`
	var rows []assignmentRow
	if err := r.db.SelectContext(ctx, &rows, query, classID); err != nil {
		return nil, fmt.Errorf("list assignments by class: %w", err)
	}
	return assignmentRowsToModels(rows), nil
}

func assignmentRowsToModels(rows []assignmentRow) []models.Assignment {
	assignments := make([]models.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, row.toModel())
	}
	return assignments
}
