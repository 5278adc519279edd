package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classtrack/internal/models"
)

func TestAttendanceRepositoryMarkOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	teacherID := seedTeacher(t, db)
	classID := seedClass(t, db, teacherID, "Grade 10A")
	studentID := seedStudent(t, db, classID, "Ada", "ada@school.edu", "R-001")

	day := time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Mark(ctx, studentID, day, models.AttendanceAbsent, ""))

	// second mark for the same calendar day replaces the first
	require.NoError(t, repo.Mark(ctx, studentID, day.Add(4*time.Hour), models.AttendancePresent, "arrived late morning"))

	marks, err := repo.ListByStudent(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, models.AttendancePresent, marks[0].Status)
	assert.Equal(t, "arrived late morning", marks[0].Notes)
	assert.True(t, marks[0].Date.Equal(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAttendanceRepositoryListByDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	teacherID := seedTeacher(t, db)
	classID := seedClass(t, db, teacherID, "Grade 10A")
	ada := seedStudent(t, db, classID, "Ada", "ada@school.edu", "R-001")
	bob := seedStudent(t, db, classID, "Bob", "bob@school.edu", "R-002")

	day := mustDate(t, "2024-05-01")
	require.NoError(t, repo.Mark(ctx, ada, day, models.AttendancePresent, ""))
	require.NoError(t, repo.Mark(ctx, bob, day, models.AttendanceLate, ""))
	require.NoError(t, repo.Mark(ctx, ada, mustDate(t, "2024-05-02"), models.AttendanceAbsent, ""))

	marks, err := repo.ListByDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, marks, 2)
}

func TestAttendanceRepositoryListByStudentOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	teacherID := seedTeacher(t, db)
	classID := seedClass(t, db, teacherID, "Grade 10A")
	studentID := seedStudent(t, db, classID, "Ada", "ada@school.edu", "R-001")

	require.NoError(t, repo.Mark(ctx, studentID, mustDate(t, "2024-05-01"), models.AttendancePresent, ""))
	require.NoError(t, repo.Mark(ctx, studentID, mustDate(t, "2024-05-03"), models.AttendanceAbsent, ""))
	require.NoError(t, repo.Mark(ctx, studentID, mustDate(t, "2024-05-02"), models.AttendanceLate, ""))

	marks, err := repo.ListByStudent(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, marks, 3)
	assert.Equal(t, 3, marks[0].Date.Day())
	assert.Equal(t, 2, marks[1].Date.Day())
	assert.Equal(t, 1, marks[2].Date.Day())
}
