package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/repository"
)

// ErrInvalidCredentials reports a failed credential comparison, for both
// students and the admin.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RosterStore is the persistence surface for the student roster.
type RosterStore interface {
	Create(ctx context.Context, s *model.Student) error
	GetByStudentID(ctx context.Context, studentID string) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	TouchLastConnected(ctx context.Context, studentID string, t time.Time) error
	Delete(ctx context.Context, studentID string) error
}

// RosterService manages student accounts. Credentials are opaque shared
// secrets compared verbatim; hashing is an explicit non-goal.
type RosterService struct {
	students RosterStore
	log      zerolog.Logger
	now      func() time.Time
}

// NewRosterService creates a new RosterService.
func NewRosterService(students RosterStore, log zerolog.Logger) *RosterService {
	return &RosterService{
		students: students,
		log:      log.With().Str("component", "roster_service").Logger(),
		now:      time.Now,
	}
}

// Add creates a roster entry. A duplicate student_id yields
// repository.ErrDuplicateStudent; the existing entry is never overwritten.
func (s *RosterService) Add(ctx context.Context, studentID, name, password string) error {
	err := s.students.Create(ctx, &model.Student{
		StudentID:       studentID,
		Name:            name,
		Password:        password,
		LastConnectedAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("student_id", studentID).Msg("student added")
	return nil
}

// Delete removes a roster entry. Answer and screenshot history is retained.
func (s *RosterService) Delete(ctx context.Context, studentID string) error {
	return s.students.Delete(ctx, studentID)
}

// List returns the full roster.
func (s *RosterService) List(ctx context.Context) ([]model.Student, error) {
	return s.students.List(ctx)
}

// Authenticate compares the submitted secret against the stored one and
// records the connection time on success. Unknown student and wrong
// password are indistinguishable to the caller.
func (s *RosterService) Authenticate(ctx context.Context, studentID, password string) (*model.Student, error) {
	student, err := s.students.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(student.Password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.students.TouchLastConnected(ctx, studentID, now); err != nil {
		return nil, err
	}
	student.LastConnectedAt = now

	return student, nil
}
