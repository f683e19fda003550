package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/examhall/examhall-backend/internal/model"
)

// QuestionStore is the persistence surface for the question bank.
type QuestionStore interface {
	ReplaceAll(ctx context.Context, questions []model.Question) (int, error)
	List(ctx context.Context) ([]model.Question, error)
	GetByID(ctx context.Context, id int64) (*model.Question, error)
}

// examGate exposes the activity preconditions owned by the ExamService.
type examGate interface {
	RequireActive(ctx context.Context) error
	RequireInactive(ctx context.Context) error
}

// QuestionService manages the question bank. The bank is a single
// atomically replaced snapshot: uploads swap the whole set, never merge.
type QuestionService struct {
	questions QuestionStore
	gate      examGate
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore, gate examGate, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		gate:      gate,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

// ReplaceAll swaps the entire question bank. It fails with ErrExamActive
// while the exam is live; content never mutates mid-exam.
func (s *QuestionService) ReplaceAll(ctx context.Context, uploads []model.QuestionUpload) (int, error) {
	if err := s.gate.RequireInactive(ctx); err != nil {
		return 0, err
	}

	questions := make([]model.Question, len(uploads))
	for i, u := range uploads {
		questions[i] = model.Question{
			Text:          u.Text,
			Options:       u.Options,
			CorrectAnswer: u.Correct,
		}
	}

	count, err := s.questions.ReplaceAll(ctx, questions)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("count", count).Msg("question bank replaced")
	return count, nil
}

// ListForStudent returns the redacted bank. Students may only see questions
// during the exam-active window.
func (s *QuestionService) ListForStudent(ctx context.Context) ([]model.StudentQuestion, error) {
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.StudentQuestion, len(questions))
	for i, q := range questions {
		views[i] = q.StudentView()
	}
	return views, nil
}

// GetForStudent returns one redacted question, under the same activity gate.
func (s *QuestionService) GetForStudent(ctx context.Context, id int64) (*model.StudentQuestion, error) {
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}

	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := q.StudentView()
	return &view, nil
}

// ListForAdmin returns the full bank including correct answers. Admin
// review bypasses the activity gate.
func (s *QuestionService) ListForAdmin(ctx context.Context) ([]model.Question, error) {
	return s.questions.List(ctx)
}
