package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classtrack/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type studentRow struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	Email      string         `db:"email"`
	RollNumber string         `db:"roll_number"`
	Phone      sql.NullString `db:"phone"`
	ClassID    int64          `db:"class_id"`
	CreatedAt  int64          `db:"created_at"`
}

func (r studentRow) toModel() models.Student {
	return models.Student{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		RollNumber: r.RollNumber,
		Phone:      r.Phone.String,
		ClassID:    r.ClassID,
		CreatedAt:  time.Unix(r.CreatedAt, 0).UTC(),
	}
}

const studentColumns = `id, name, email, roll_number, phone, class_id, CAST(strftime('%s', created_at) AS INTEGER) AS created_at`

// Create inserts a student row and fills in the generated id. Duplicate
// email or roll number is rejected by the store's unique constraints.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (name, email, roll_number, phone, class_id) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, student.Name, student.Email, student.RollNumber, student.Phone, student.ClassID)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create student id: %w", err)
	}
	student.ID = id
	return nil
}

// Update modifies a student's identity fields. The class reference is not
// changed here; students move between classes only through deletion or the
// legacy migration.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET name = ?, email = ?, roll_number = ?, phone = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, student.Name, student.Email, student.RollNumber, student.Phone, student.ID)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a student; attendance and submissions cascade.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM students WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}

// FindByID fetches a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ?`
	var row studentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	student := row.toModel()
	return &student, nil
}

// ListAll returns every student ordered by name.
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY name`
	var rows []studentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return studentRowsToModels(rows), nil
}

// ListByClass returns the class roster ordered by name.
func (r *StudentRepository) ListByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE class_id = ? ORDER BY name`
	var rows []studentRow
	if err := r.db.SelectContext(ctx, &rows, query, classID); err != nil {
		return nil, fmt.Errorf("list students by class: %w", err)
	}
	return studentRowsToModels(rows), nil
}

// CountByClass returns the roster size for a class.
func (r *StudentRepository) CountByClass(ctx context.Context, classID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE class_id = ?`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// ExistsByEmail checks if another student already uses the email. Pass the
// student's own id as excludeID during updates so they keep their address.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM students WHERE email = ? AND id != ?`
	var count int
	if err := r.db.GetContext(ctx, &count, query, email, excludeID); err != nil {
		return false, fmt.Errorf("check student email: %w", err)
	}
	return count > 0, nil
}

// ExistsByRoll checks if another student already uses the roll number.
func (r *StudentRepository) ExistsByRoll(ctx context.Context, rollNumber string, excludeID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM students WHERE roll_number = ? AND id != ?`
	var count int
	if err := r.db.GetContext(ctx, &count, query, rollNumber, excludeID); err != nil {
		return false, fmt.Errorf("check student roll: %w", err)
	}
	return count > 0, nil
}

func studentRowsToModels(rows []studentRow) []models.Student {
	students := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toModel())
	}
	return students
}
