package models

import "time"

// Student belongs to exactly one class. Email and roll number are unique
// across all students, not just within a class.
type Student struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	RollNumber string    `db:"roll_number" json:"roll_number"`
	Phone      string    `db:"phone" json:"phone"`
	ClassID    int64     `db:"class_id" json:"class_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
