package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/classtrack/internal/models"
)

func TestSessionClassSelection(t *testing.T) {
	sess := New(&models.User{ID: 7, Email: "teacher@school.edu", Name: "Teacher"})

	assert.Equal(t, int64(7), sess.UserID)
	assert.False(t, sess.HasClass())
	assert.Zero(t, sess.CurrentClass())

	sess.SelectClass(3)
	assert.True(t, sess.HasClass())
	assert.Equal(t, int64(3), sess.CurrentClass())
}
