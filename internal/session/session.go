// Package session carries the logged-in teacher's context through the view
// layer. It replaces process-wide login state with an explicit value so
// multiple windows (or tests) can hold independent sessions.
package session

import "github.com/noah-isme/classtrack/internal/models"

// Session identifies the logged-in teacher and which class they are
// currently working in. A zero CurrentClassID means no class is selected.
type Session struct {
	UserID int64
	Email  string
	Name   string

	currentClassID int64
}

// New builds a session for a freshly authenticated user.
func New(user *models.User) *Session {
	return &Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}
}

// SelectClass records the class the teacher is working in.
func (s *Session) SelectClass(classID int64) {
	s.currentClassID = classID
}

// CurrentClass returns the selected class id, zero when none is selected.
func (s *Session) CurrentClass() int64 {
	return s.currentClassID
}

// HasClass reports whether a class is currently selected.
func (s *Session) HasClass() bool {
	return s.currentClassID > 0
}
