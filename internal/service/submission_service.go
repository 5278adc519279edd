package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/classtrack/internal/models"
	appErrors "github.com/noah-isme/classtrack/pkg/errors"
)

type submissionRepository interface {
	Upsert(ctx context.Context, assignmentID, studentID int64, status models.SubmissionStatus, quality models.Quality, notes string) error
	Get(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error)
}

// SubmissionService records assignment tracking marks.
type SubmissionService struct {
	repo   submissionRepository
	logger *zap.Logger
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(repo submissionRepository, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{repo: repo, logger: logger}
}

// Mark records (or overwrites) the tracking state for one student on one
// assignment. Repeated marks for the same pair replace the previous record
// and refresh its marked-at timestamp.
func (s *SubmissionService) Mark(ctx context.Context, assignmentID, studentID int64, status models.SubmissionStatus, quality models.Quality, notes string) error {
	if assignmentID <= 0 || studentID <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "invalid assignment or student id")
	}
	if err := s.repo.Upsert(ctx, assignmentID, studentID, status, quality, notes); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to record submission")
	}
	return nil
}

// Get returns the tracking record for one (assignment, student) pair, or
// NotFound when nothing has been marked yet.
func (s *SubmissionService) Get(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	if assignmentID <= 0 || studentID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid assignment or student id")
	}
	sub, err := s.repo.Get(ctx, assignmentID, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to load submission")
	}
	return sub, nil
}

// ListByAssignment returns every tracking record for an assignment.
func (s *SubmissionService) ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	if assignmentID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid assignment id")
	}
	subs, err := s.repo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to list submissions")
	}
	return subs, nil
}
