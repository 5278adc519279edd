package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classtrack/internal/models"
)

func TestReportRepositoryClassAttendanceSummary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	teacherID := seedTeacher(t, db)
	classID := seedClass(t, db, teacherID, "Grade 10A")
	ada := seedStudent(t, db, classID, "Ada", "ada@school.edu", "R-001")
	seedStudent(t, db, classID, "Bob", "bob@school.edu", "R-002")

	attendance := NewAttendanceRepository(db)
	// ten marked days: six present, two absent, two late
	for i := 1; i <= 6; i++ {
		require.NoError(t, attendance.Mark(ctx, ada, mustDate(t, fmt.Sprintf("2024-05-%02d", i)), models.AttendancePresent, ""))
	}
	for i := 7; i <= 8; i++ {
		require.NoError(t, attendance.Mark(ctx, ada, mustDate(t, fmt.Sprintf("2024-05-%02d", i)), models.AttendanceAbsent, ""))
	}
	for i := 9; i <= 10; i++ {
		require.NoError(t, attendance.Mark(ctx, ada, mustDate(t, fmt.Sprintf("2024-05-%02d", i)), models.AttendanceLate, ""))
	}

	summaries, err := NewReportRepository(db).ClassAttendanceSummary(ctx, classID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// ordered by roll number; the aggregates are per student
	assert.Equal(t, "R-001", summaries[0].RollNumber)
	assert.Equal(t, 10, summaries[0].TotalDays)
	assert.Equal(t, 6, summaries[0].Present)
	assert.Equal(t, 2, summaries[0].Absent)
	assert.Equal(t, 2, summaries[0].Late)

	// an unmarked student still appears, with zero totals
	assert.Equal(t, "R-002", summaries[1].RollNumber)
	assert.Zero(t, summaries[1].TotalDays)
}

func TestReportRepositoryClassAssignmentCompletion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	teacherID := seedTeacher(t, db)
	classID := seedClass(t, db, teacherID, "Grade 10A")
	ada := seedStudent(t, db, classID, "Ada", "ada@school.edu", "R-001")
	bob := seedStudent(t, db, classID, "Bob", "bob@school.edu", "R-002")
	essay := seedAssignment(t, db, classID, teacherID, "Essay", mustDate(t, "2024-06-01"))
	quiz := seedAssignment(t, db, classID, teacherID, "Quiz", mustDate(t, "2024-06-08"))

	submissions := NewSubmissionRepository(db)
	require.NoError(t, submissions.Upsert(ctx, essay, ada, models.SubmissionTimely, models.QualityHigh, ""))
	require.NoError(t, submissions.Upsert(ctx, essay, bob, models.SubmissionLate, models.QualityPoor, ""))
	// a "not submitted" record does not count toward completion
	require.NoError(t, submissions.Upsert(ctx, quiz, ada, models.SubmissionNone, models.QualityPoor, ""))

	completions, err := NewReportRepository(db).ClassAssignmentCompletion(ctx, classID)
	require.NoError(t, err)
	require.Len(t, completions, 2)

	// ordered by title
	assert.Equal(t, "Essay", completions[0].Title)
	assert.Equal(t, 2, completions[0].Completed)
	assert.Equal(t, "Quiz", completions[1].Title)
	assert.Zero(t, completions[1].Completed)
}

func TestReportRepositoryStudentTotals(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	teacherID := seedTeacher(t, db)
	classID := seedClass(t, db, teacherID, "Grade 10A")
	ada := seedStudent(t, db, classID, "Ada", "ada@school.edu", "R-001")
	bob := seedStudent(t, db, classID, "Bob", "bob@school.edu", "R-002")
	essay := seedAssignment(t, db, classID, teacherID, "Essay", mustDate(t, "2024-06-01"))
	seedAssignment(t, db, classID, teacherID, "Quiz", mustDate(t, "2024-06-08"))

	attendance := NewAttendanceRepository(db)
	require.NoError(t, attendance.Mark(ctx, ada, mustDate(t, "2024-05-01"), models.AttendancePresent, ""))
	require.NoError(t, attendance.Mark(ctx, ada, mustDate(t, "2024-05-02"), models.AttendanceLate, ""))
	require.NoError(t, attendance.Mark(ctx, ada, mustDate(t, "2024-05-03"), models.AttendanceAbsent, ""))

	submissions := NewSubmissionRepository(db)
	require.NoError(t, submissions.Upsert(ctx, essay, ada, models.SubmissionTimely, models.QualityHigh, ""))
	// another student's submission must not leak into Ada's totals
	require.NoError(t, submissions.Upsert(ctx, essay, bob, models.SubmissionTimely, models.QualityHigh, ""))

	reports := NewReportRepository(db)

	total, present, absent, late, err := reports.StudentAttendanceTotals(ctx, ada)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, present)
	assert.Equal(t, 1, absent)
	assert.Equal(t, 1, late)

	assigned, completed, err := reports.StudentAssignmentTotals(ctx, ada, classID)
	require.NoError(t, err)
	assert.Equal(t, 2, assigned)
	assert.Equal(t, 1, completed)

	// no data at all yields zero totals, not an error
	total, present, absent, late, err = reports.StudentAttendanceTotals(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, total+present+absent+late)
}
