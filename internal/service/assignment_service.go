package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classtrack/internal/models"
	appErrors "github.com/noah-isme/classtrack/pkg/errors"
)

type assignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Assignment, error)
	ListAll(ctx context.Context) ([]models.Assignment, error)
	ListByClass(ctx context.Context, classID int64) ([]models.Assignment, error)
}

// CreateAssignmentRequest holds the payload for creating assignments.
type CreateAssignmentRequest struct {
	Title       string `validate:"required"`
	Subject     string `validate:"required"`
	Description string
	DueDate     time.Time `validate:"required"`
	CreatedBy   int64     `validate:"gt=0"`
	ClassID     int64     `validate:"gt=0"`
}

// UpdateAssignmentRequest holds the payload for updating assignments.
type UpdateAssignmentRequest struct {
	Title       string `validate:"required"`
	Subject     string `validate:"required"`
	Description string
	DueDate     time.Time `validate:"required"`
}

// AssignmentService handles assignment use-cases.
type AssignmentService struct {
	repo      assignmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(repo assignmentRepository, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new assignment for a class.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid assignment payload")
	}
	assignment := &models.Assignment{
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedBy:   req.CreatedBy,
		ClassID:     req.ClassID,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to create assignment")
	}
	return assignment, nil
}

// Update modifies an assignment's content and due date.
func (s *AssignmentService) Update(ctx context.Context, id int64, req UpdateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid assignment payload")
	}
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to load assignment")
	}
	assignment.Title = req.Title
	assignment.Subject = req.Subject
	assignment.Description = req.Description
	assignment.DueDate = req.DueDate
	if err := s.repo.Update(ctx, assignment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to update assignment")
	}
	return assignment, nil
}

// Delete removes an assignment; its submissions cascade.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "invalid assignment id")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to delete assignment")
	}
	s.logger.Info("assignment deleted", zap.Int64("assignment_id", id))
	return nil
}

// Get returns an assignment by id.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*models.Assignment, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid assignment id")
	}
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to load assignment")
	}
	return assignment, nil
}

// ListAll returns every assignment, most recent due date first.
func (s *AssignmentService) ListAll(ctx context.Context) ([]models.Assignment, error) {
	assignments, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to list assignments")
	}
	return assignments, nil
}

// ListByClass returns a class's assignments, most recent due date first.
func (s *AssignmentService) ListByClass(ctx context.Context, classID int64) ([]models.Assignment, error) {
	if classID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid class id")
	}
	assignments, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to list assignments")
	}
	return assignments, nil
}
