package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/noah-isme/classtrack/internal/models"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(context.Background(), db))
	t.Cleanup(func() { db.Close() })
	return db
}

func seedTeacher(t *testing.T, db *sqlx.DB) int64 {
	t.Helper()
	user := &models.User{Email: "teacher@school.edu", PasswordHash: "hash", Name: "Teacher"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user.ID
}

func seedClass(t *testing.T, db *sqlx.DB, teacherID int64, name string) int64 {
	t.Helper()
	class := &models.Class{Name: name, Description: "desc", TeacherID: teacherID}
	require.NoError(t, NewClassRepository(db).Create(context.Background(), class))
	return class.ID
}

func seedStudent(t *testing.T, db *sqlx.DB, classID int64, name, email, roll string) int64 {
	t.Helper()
	student := &models.Student{Name: name, Email: email, RollNumber: roll, ClassID: classID}
	require.NoError(t, NewStudentRepository(db).Create(context.Background(), student))
	return student.ID
}

func seedAssignment(t *testing.T, db *sqlx.DB, classID, teacherID int64, title string, due time.Time) int64 {
	t.Helper()
	assignment := &models.Assignment{
		Title:     title,
		Subject:   "Math",
		DueDate:   due,
		CreatedBy: teacherID,
		ClassID:   classID,
	}
	require.NoError(t, NewAssignmentRepository(db).Create(context.Background(), assignment))
	return assignment.ID
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return ts
}
