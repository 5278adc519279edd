package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classtrack/internal/models"
	appErrors "github.com/noah-isme/classtrack/pkg/errors"
)

type mockClassRepo struct {
	classes map[int64]*models.Class
	nextID  int64
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[int64]*models.Class)}
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	m.nextID++
	class.ID = m.nextID
	copied := *class
	m.classes[class.ID] = &copied
	return nil
}

func (m *mockClassRepo) Update(ctx context.Context, class *models.Class) error {
	if _, ok := m.classes[class.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *class
	m.classes[class.ID] = &copied
	return nil
}

func (m *mockClassRepo) Delete(ctx context.Context, id int64) error {
	delete(m.classes, id)
	return nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	class, ok := m.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *class
	return &copied, nil
}

func (m *mockClassRepo) ListByTeacher(ctx context.Context, teacherID int64) ([]models.Class, error) {
	var out []models.Class
	for _, c := range m.classes {
		if c.TeacherID == teacherID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func TestClassServiceCreate(t *testing.T) {
	repo := newMockClassRepo()
	svc := NewClassService(repo, validator.New(), zap.NewNop())

	class, err := svc.Create(context.Background(), 1, CreateClassRequest{Name: "Grade 10A", Description: "Morning"})
	require.NoError(t, err)
	assert.NotZero(t, class.ID)
	assert.Equal(t, int64(1), class.TeacherID)

	_, err = svc.Create(context.Background(), 1, CreateClassRequest{Name: ""})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestClassServiceUpdateMissing(t *testing.T) {
	svc := NewClassService(newMockClassRepo(), validator.New(), zap.NewNop())

	_, err := svc.Update(context.Background(), 42, UpdateClassRequest{Name: "Ghost"})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestClassServiceDeleteValidatesID(t *testing.T) {
	svc := NewClassService(newMockClassRepo(), validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), 0)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
