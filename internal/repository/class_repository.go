package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classtrack/internal/models"
)

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

type classRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	TeacherID   int64          `db:"teacher_id"`
	CreatedAt   int64          `db:"created_at"`
}

func (r classRow) toModel() models.Class {
	return models.Class{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		TeacherID:   r.TeacherID,
		CreatedAt:   time.Unix(r.CreatedAt, 0).UTC(),
	}
}

const classColumns = `id, name, description, teacher_id, CAST(strftime('%s', created_at) AS INTEGER) AS created_at`

// Create inserts a class row and fills in the generated id.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	const query = `INSERT INTO classes (name, description, teacher_id) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, class.Name, class.Description, class.TeacherID)
	if err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create class id: %w", err)
	}
	class.ID = id
	return nil
}

// Update modifies a class's name and description. Ownership never changes.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	const query = `UPDATE classes SET name = ?, description = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, class.Name, class.Description, class.ID)
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a class; the schema cascades to students, assignments,
// submissions and attendance.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM classes WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}

// FindByID fetches a class by id.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = ?`
	var row classRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	class := row.toModel()
	return &class, nil
}

// ListByTeacher returns the teacher's classes, newest first.
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE teacher_id = ? ORDER BY created_at DESC`
	var rows []classRow
	if err := r.db.SelectContext(ctx, &rows, query, teacherID); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	classes := make([]models.Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, row.toModel())
	}
	return classes, nil
}

// CountByTeacher returns how many classes the teacher owns.
func (r *ClassRepository) CountByTeacher(ctx context.Context, teacherID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM classes WHERE teacher_id = ?`
	var count int
	if err := r.db.GetContext(ctx, &count, query, teacherID); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return count, nil
}

// FirstByTeacher returns the id of the teacher's earliest-created class.
func (r *ClassRepository) FirstByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	const query = `SELECT id FROM classes WHERE teacher_id = ? ORDER BY id LIMIT 1`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, teacherID); err != nil {
		return 0, err
	}
	return id, nil
}
