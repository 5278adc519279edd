package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classtrack/internal/models"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "teacher@school.edu", PasswordHash: "token", Name: "Teacher"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.FindByEmail(ctx, "teacher@school.edu")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "token", found.PasswordHash)
	assert.False(t, found.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "teacher@school.edu", byID.Email)
}

func TestUserRepositoryFindMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@school.edu")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryExistsByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	exists, err := repo.ExistsByEmail(ctx, "teacher@school.edu")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, &models.User{Email: "teacher@school.edu", PasswordHash: "token", Name: "Teacher"}))

	exists, err = repo.ExistsByEmail(ctx, "teacher@school.edu")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "teacher@school.edu", PasswordHash: "token", Name: "Teacher"}))
	err := repo.Create(ctx, &models.User{Email: "teacher@school.edu", PasswordHash: "token", Name: "Imposter"})
	require.Error(t, err)
}

func TestUserRepositoryCreateExecError(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer raw.Close()
	db := sqlx.NewDb(raw, "sqlmock")
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("teacher@school.edu", "token", "Teacher").
		WillReturnError(errors.New("disk I/O error"))

	err = repo.Create(context.Background(), &models.User{Email: "teacher@school.edu", PasswordHash: "token", Name: "Teacher"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create user")
	assert.NoError(t, mock.ExpectationsWereMet())
}
