package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classtrack/internal/models"
	appErrors "github.com/noah-isme/classtrack/pkg/errors"
	"github.com/noah-isme/classtrack/pkg/validate"
)

type studentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ListAll(ctx context.Context) ([]models.Student, error)
	ListByClass(ctx context.Context, classID int64) ([]models.Student, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsByRoll(ctx context.Context, rollNumber string, excludeID int64) (bool, error)
}

// CreateStudentRequest holds the payload for enrolling students.
type CreateStudentRequest struct {
	Name       string `validate:"required"`
	Email      string `validate:"required"`
	RollNumber string `validate:"required"`
	Phone      string
	ClassID    int64 `validate:"gt=0"`
}

// UpdateStudentRequest holds the payload for updating students.
type UpdateStudentRequest struct {
	Name       string `validate:"required"`
	Email      string `validate:"required"`
	RollNumber string `validate:"required"`
	Phone      string
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// Create enrolls a student after checking the global email and roll-number
// uniqueness. The store's unique constraints back these checks up.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validateFields(req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid student payload")
	}
	if err := s.checkDuplicates(ctx, req.Email, req.RollNumber, 0); err != nil {
		return nil, err
	}
	student := &models.Student{
		Name:       req.Name,
		Email:      req.Email,
		RollNumber: req.RollNumber,
		Phone:      req.Phone,
		ClassID:    req.ClassID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to create student")
	}
	return student, nil
}

// Update modifies an existing student's identity fields.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validateFields(req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to load student")
	}
	if err := s.checkDuplicates(ctx, req.Email, req.RollNumber, id); err != nil {
		return nil, err
	}
	student.Name = req.Name
	student.Email = req.Email
	student.RollNumber = req.RollNumber
	student.Phone = req.Phone
	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to update student")
	}
	return student, nil
}

// Delete removes a student; attendance and submissions cascade.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "invalid student id")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid student id")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to load student")
	}
	return student, nil
}

// ListAll returns every student ordered by name.
func (s *StudentService) ListAll(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to list students")
	}
	return students, nil
}

// ListByClass returns the class roster ordered by name.
func (s *StudentService) ListByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	if classID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid class id")
	}
	students, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to list students")
	}
	return students, nil
}

func (s *StudentService) validateFields(email, phone string) error {
	if !validate.Email(email) {
		return appErrors.Clone(appErrors.ErrValidation, "invalid email address")
	}
	if phone != "" && !validate.Phone(phone) {
		return appErrors.Clone(appErrors.ErrValidation, "invalid phone number")
	}
	return nil
}

func (s *StudentService) checkDuplicates(ctx context.Context, email, rollNumber string, excludeID int64) error {
	emailTaken, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to check email")
	}
	if emailTaken {
		return appErrors.Clone(appErrors.ErrConflict, "email already used by another student")
	}
	rollTaken, err := s.repo.ExistsByRoll(ctx, rollNumber, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to check roll number")
	}
	if rollTaken {
		return appErrors.Clone(appErrors.ErrConflict, "roll number already used by another student")
	}
	return nil
}
