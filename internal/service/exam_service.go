package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/examhall/examhall-backend/internal/model"
)

// DefaultDurationMinutes is used when a start request omits the duration.
const DefaultDurationMinutes = 60

// Exam lifecycle errors.
var (
	ErrNoQuestions    = errors.New("question bank is empty")
	ErrExamActive     = errors.New("exam is active")
	ErrExamInactive   = errors.New("exam is not active")
	ErrDeadlinePassed = errors.New("exam deadline has passed")
)

// ExamStatusStore is the persistence surface for the singleton status row.
type ExamStatusStore interface {
	Get(ctx context.Context) (*model.ExamStatus, error)
	Activate(ctx context.Context, startTime time.Time, durationMinutes int) error
	Deactivate(ctx context.Context) error
}

// QuestionCounter reports the question bank size.
type QuestionCounter interface {
	Count(ctx context.Context) (int, error)
}

// StudentCounter reports the roster size.
type StudentCounter interface {
	Count(ctx context.Context) (int, error)
}

// ExamService owns the exam lifecycle: the singleton status row, the rules
// for when content may be mutated or viewed, and lifecycle event fan-out.
type ExamService struct {
	status   ExamStatusStore
	question QuestionCounter
	student  StudentCounter
	events   EventPublisher
	log      zerolog.Logger
	// enforceDeadline turns the advisory duration into a request-time
	// cutoff for RequireActive callers. There is never a background timer.
	enforceDeadline bool
	now             func() time.Time
}

// NewExamService creates a new ExamService.
func NewExamService(
	status ExamStatusStore,
	question QuestionCounter,
	student StudentCounter,
	events EventPublisher,
	log zerolog.Logger,
	enforceDeadline bool,
) *ExamService {
	return &ExamService{
		status:          status,
		question:        question,
		student:         student,
		events:          events,
		log:             log.With().Str("component", "exam_service").Logger(),
		enforceDeadline: enforceDeadline,
		now:             time.Now,
	}
}

// Start activates the exam. It fails with ErrNoQuestions on an empty bank.
// Starting an already active exam resets the timer — restart is a supported
// admin action, not a fault.
func (s *ExamService) Start(ctx context.Context, durationMinutes int) (*model.ExamStatus, error) {
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}

	n, err := s.question.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNoQuestions
	}

	start := s.now().UTC()
	if err := s.status.Activate(ctx, start, durationMinutes); err != nil {
		return nil, err
	}

	st := &model.ExamStatus{IsActive: true, StartTime: &start, DurationMinutes: durationMinutes}
	s.publish(ctx, ExamEvent{Type: EventExamStarted, StartTime: &start, DurationMinutes: durationMinutes, At: start})

	s.log.Info().Time("start_time", start).Int("duration_minutes", durationMinutes).Msg("exam started")
	return st, nil
}

// Stop deactivates the exam and clears the start time. It always succeeds,
// even when the exam is already inactive.
func (s *ExamService) Stop(ctx context.Context) error {
	if err := s.status.Deactivate(ctx); err != nil {
		return err
	}

	now := s.now().UTC()
	s.publish(ctx, ExamEvent{Type: EventExamStopped, At: now})

	s.log.Info().Msg("exam stopped")
	return nil
}

// Status returns the status row plus question and roster counts.
func (s *ExamService) Status(ctx context.Context) (*model.StatusSnapshot, error) {
	st, err := s.status.Get(ctx)
	if err != nil {
		return nil, err
	}

	questionCount, err := s.question.Count(ctx)
	if err != nil {
		return nil, err
	}
	studentCount, err := s.student.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &model.StatusSnapshot{
		ExamStatus:    *st,
		QuestionCount: questionCount,
		StudentCount:  studentCount,
	}, nil
}

// RequireActive gates operations that are only legal during the exam-active
// window: question reads and answer writes.
func (s *ExamService) RequireActive(ctx context.Context) error {
	st, err := s.status.Get(ctx)
	if err != nil {
		return err
	}
	if !st.IsActive {
		return ErrExamInactive
	}
	if s.enforceDeadline && st.StartTime != nil {
		deadline := st.StartTime.Add(time.Duration(st.DurationMinutes) * time.Minute)
		if s.now().After(deadline) {
			return ErrDeadlinePassed
		}
	}
	return nil
}

// RequireInactive gates operations that must not run mid-exam, such as
// replacing the question bank.
func (s *ExamService) RequireInactive(ctx context.Context) error {
	st, err := s.status.Get(ctx)
	if err != nil {
		return err
	}
	if st.IsActive {
		return ErrExamActive
	}
	return nil
}

// publish fans out a lifecycle event. Event delivery is best effort: a
// failed publish never fails the state transition that triggered it.
func (s *ExamService) publish(ctx context.Context, ev ExamEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExamEvent(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("event", ev.Type).Msg("failed to publish exam event")
	}
}
