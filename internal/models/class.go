package models

import "time"

// Class is a teacher-owned grouping of students, assignments and attendance
// records. Deleting a class cascades to everything that references it.
type Class struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	TeacherID   int64     `db:"teacher_id" json:"teacher_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
