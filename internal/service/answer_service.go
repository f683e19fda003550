package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/examhall/examhall-backend/internal/model"
)

// ErrInvalidOption reports a selected answer outside A-E. Only returned
// when option validation is enabled in config.
var ErrInvalidOption = errors.New("selected answer is not a valid option")

// AnswerStore is the persistence surface for the answer ledger.
type AnswerStore interface {
	Upsert(ctx context.Context, a *model.Answer) error
	MapByStudent(ctx context.Context, studentID string) (map[int64]string, error)
	CountByStudent(ctx context.Context, studentID string) (int, error)
	ListGroupedByStudent(ctx context.Context) ([]model.Submission, error)
}

// AnswerService records answers with idempotent upsert semantics: at most
// one row per (student, question), last write wins.
type AnswerService struct {
	answers         AnswerStore
	gate            examGate
	log             zerolog.Logger
	validateOptions bool
	now             func() time.Time
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(answers AnswerStore, gate examGate, log zerolog.Logger, validateOptions bool) *AnswerService {
	return &AnswerService{
		answers:         answers,
		gate:            gate,
		log:             log.With().Str("component", "answer_service").Logger(),
		validateOptions: validateOptions,
		now:             time.Now,
	}
}

// Submit records or overwrites the answer for (studentID, questionID).
// Only legal during the exam-active window. The question id and option
// letter are accepted unvalidated unless the option flag is on.
func (s *AnswerService) Submit(ctx context.Context, studentID string, questionID int64, selected string) error {
	if err := s.gate.RequireActive(ctx); err != nil {
		return err
	}

	if s.validateOptions && !model.ValidOptionLabel(selected) {
		return ErrInvalidOption
	}

	return s.answers.Upsert(ctx, &model.Answer{
		StudentID:      studentID,
		QuestionID:     questionID,
		SelectedAnswer: selected,
		SubmittedAt:    s.now().UTC(),
	})
}

// AnswersFor returns the student's current answer snapshot keyed by
// question id. No activity precondition: review works after the exam stops.
func (s *AnswerService) AnswersFor(ctx context.Context, studentID string) (map[int64]string, error) {
	return s.answers.MapByStudent(ctx, studentID)
}

// Finish reports the number of answers recorded for the student. It is
// advisory only: nothing is locked and further submissions stay possible.
func (s *AnswerService) Finish(ctx context.Context, studentID string) (int, error) {
	total, err := s.answers.CountByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("student_id", studentID).Int("total_answered", total).Msg("exam submitted")
	return total, nil
}

// Submissions aggregates every student's answers for admin review.
func (s *AnswerService) Submissions(ctx context.Context) ([]model.Submission, error) {
	return s.answers.ListGroupedByStudent(ctx)
}
