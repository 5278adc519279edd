package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/classtrack/internal/models"
	appErrors "github.com/noah-isme/classtrack/pkg/errors"
)

type legacyRepository interface {
	CountStudents(ctx context.Context) (int, error)
	CountAssignments(ctx context.Context) (int, error)
	CountOrphanStudents(ctx context.Context) (int, error)
	CountOrphanAssignments(ctx context.Context) (int, error)
	AssignOrphanStudents(ctx context.Context, classID int64) (int64, error)
	AssignOrphanAssignments(ctx context.Context, classID int64) (int64, error)
}

type migrationClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	CountByTeacher(ctx context.Context, teacherID int64) (int, error)
	FirstByTeacher(ctx context.Context, teacherID int64) (int64, error)
}

// MigrationService repairs databases created before classes existed, where
// students and assignments carried no class reference.
type MigrationService struct {
	legacy  legacyRepository
	classes migrationClassRepository
	logger  *zap.Logger
}

// NewMigrationService constructs the migration service.
func NewMigrationService(legacy legacyRepository, classes migrationClassRepository, logger *zap.Logger) *MigrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MigrationService{legacy: legacy, classes: classes, logger: logger}
}

// Run adopts orphaned students and assignments into one of the teacher's
// classes. With no pre-existing class a "Test Class" is created to receive
// them; otherwise the teacher's oldest class (lowest id) is used. Running
// against a clean database is a no-op.
func (s *MigrationService) Run(ctx context.Context, teacherID int64) error {
	students, err := s.legacy.CountStudents(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to inspect legacy data")
	}
	assignments, err := s.legacy.CountAssignments(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to inspect legacy data")
	}
	if students == 0 && assignments == 0 {
		return nil
	}

	orphanStudents, err := s.legacy.CountOrphanStudents(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to inspect legacy data")
	}
	orphanAssignments, err := s.legacy.CountOrphanAssignments(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to inspect legacy data")
	}
	if orphanStudents == 0 && orphanAssignments == 0 {
		return nil
	}

	s.logger.Info("migrating orphaned records",
		zap.Int("orphan_students", orphanStudents),
		zap.Int("orphan_assignments", orphanAssignments))

	classID, err := s.targetClass(ctx, teacherID)
	if err != nil {
		return err
	}

	adoptedStudents, err := s.legacy.AssignOrphanStudents(ctx, classID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to adopt orphaned students")
	}
	adoptedAssignments, err := s.legacy.AssignOrphanAssignments(ctx, classID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to adopt orphaned assignments")
	}

	s.logger.Info("migration complete",
		zap.Int64("class_id", classID),
		zap.Int64("students_adopted", adoptedStudents),
		zap.Int64("assignments_adopted", adoptedAssignments))
	return nil
}

func (s *MigrationService) targetClass(ctx context.Context, teacherID int64) (int64, error) {
	count, err := s.classes.CountByTeacher(ctx, teacherID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to count classes")
	}
	if count == 0 {
		class := &models.Class{
			Name:        "Test Class",
			Description: "Migrated data from previous version",
			TeacherID:   teacherID,
		}
		if err := s.classes.Create(ctx, class); err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to create migration class")
		}
		s.logger.Info("created class for migrated records", zap.Int64("class_id", class.ID))
		return class.ID, nil
	}
	id, err := s.classes.FirstByTeacher(ctx, teacherID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to pick migration class")
	}
	return id, nil
}
