package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the six tables and their indexes. Safe to invoke on
// every startup; all statements are CREATE IF NOT EXISTS.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS classes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			teacher_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (teacher_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			roll_number TEXT UNIQUE NOT NULL,
			phone TEXT,
			class_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (class_id) REFERENCES classes(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS assignments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			subject TEXT NOT NULL,
			description TEXT,
			due_date DATETIME NOT NULL,
			created_by INTEGER NOT NULL,
			class_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (created_by) REFERENCES users(id),
			FOREIGN KEY (class_id) REFERENCES classes(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS assignment_submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			assignment_id INTEGER NOT NULL,
			student_id INTEGER NOT NULL,
			status INTEGER NOT NULL DEFAULT 0,
			quality INTEGER NOT NULL DEFAULT 0,
			submitted_at DATETIME,
			notes TEXT,
			FOREIGN KEY (assignment_id) REFERENCES assignments(id) ON DELETE CASCADE,
			FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE,
			UNIQUE(assignment_id, student_id)
		);`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id INTEGER NOT NULL,
			date DATE NOT NULL,
			status INTEGER NOT NULL DEFAULT 0,
			notes TEXT,
			FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE,
			UNIQUE(student_id, date)
		);`,
	}

	for _, stmt := range tables {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_students_class_id ON students(class_id);`,
		`CREATE INDEX IF NOT EXISTS idx_students_email ON students(email);`,
		`CREATE INDEX IF NOT EXISTS idx_students_roll ON students(roll_number);`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_class_id ON assignments(class_id);`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_student_id ON attendance(student_id);`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_assignment_id ON assignment_submissions(assignment_id);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_student_id ON assignment_submissions(student_id);`,
		`CREATE INDEX IF NOT EXISTS idx_classes_teacher_id ON classes(teacher_id);`,
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
