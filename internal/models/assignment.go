package models

import "time"

// Assignment is classwork with a due date, scoped to one class.
type Assignment struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Subject     string    `db:"subject" json:"subject"`
	Description string    `db:"description" json:"description"`
	DueDate     time.Time `db:"due_date" json:"due_date"`
	CreatedBy   int64     `db:"created_by" json:"created_by"`
	ClassID     int64     `db:"class_id" json:"class_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
