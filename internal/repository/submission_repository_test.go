package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classtrack/internal/models"
)

func TestSubmissionRepositoryUpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()
	teacherID := seedTeacher(t, db)
	classID := seedClass(t, db, teacherID, "Grade 10A")
	studentID := seedStudent(t, db, classID, "Ada", "ada@school.edu", "R-001")
	assignmentID := seedAssignment(t, db, classID, teacherID, "Essay", mustDate(t, "2024-06-01"))

	require.NoError(t, repo.Upsert(ctx, assignmentID, studentID, models.SubmissionTimely, models.QualityHigh, "good work"))
	first, err := repo.Get(ctx, assignmentID, studentID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionTimely, first.Status)
	assert.Equal(t, models.QualityHigh, first.Quality)
	assert.Equal(t, "good work", first.Notes)
	assert.False(t, first.SubmittedAt.IsZero())

	// re-marking the same pair replaces the record instead of adding one
	require.NoError(t, repo.Upsert(ctx, assignmentID, studentID, models.SubmissionLate, models.QualityPoor, "resubmitted"))
	second, err := repo.Get(ctx, assignmentID, studentID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionLate, second.Status)
	assert.Equal(t, "resubmitted", second.Notes)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM assignment_submissions"))
	assert.Equal(t, 1, count)
}

func TestSubmissionRepositoryGetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db)

	_, err := repo.Get(context.Background(), 1, 1)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSubmissionRepositoryListByAssignment(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()
	teacherID := seedTeacher(t, db)
	classID := seedClass(t, db, teacherID, "Grade 10A")
	ada := seedStudent(t, db, classID, "Ada", "ada@school.edu", "R-001")
	bob := seedStudent(t, db, classID, "Bob", "bob@school.edu", "R-002")
	assignmentID := seedAssignment(t, db, classID, teacherID, "Essay", mustDate(t, "2024-06-01"))

	require.NoError(t, repo.Upsert(ctx, assignmentID, ada, models.SubmissionTimely, models.QualityAboveAverage, ""))
	require.NoError(t, repo.Upsert(ctx, assignmentID, bob, models.SubmissionLate, models.QualityBelowAverage, ""))

	subs, err := repo.ListByAssignment(ctx, assignmentID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}
