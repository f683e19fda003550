package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/repository"
)

type staticGate struct {
	activeErr   error
	inactiveErr error
}

func (g staticGate) RequireActive(ctx context.Context) error   { return g.activeErr }
func (g staticGate) RequireInactive(ctx context.Context) error { return g.inactiveErr }

func uploadFixture(n int) []model.QuestionUpload {
	uploads := make([]model.QuestionUpload, n)
	for i := range uploads {
		uploads[i] = model.QuestionUpload{
			Text:    "What is the capital of France?",
			Options: model.OptionSet{"Paris", "Lyon", "Nice", "Lille", "Metz"},
			Correct: "A",
		}
	}
	return uploads
}

func TestReplaceAllRejectedWhileActive(t *testing.T) {
	store := &fakeQuestionStore{}
	store.questions = []model.Question{{ID: 1, Text: "old"}}
	svc := NewQuestionService(store, staticGate{inactiveErr: ErrExamActive}, zerolog.Nop())

	_, err := svc.ReplaceAll(context.Background(), uploadFixture(2))
	if !errors.Is(err, ErrExamActive) {
		t.Fatalf("expected ErrExamActive, got %v", err)
	}
	if len(store.questions) != 1 || store.questions[0].Text != "old" {
		t.Fatalf("bank must be untouched on rejection: %+v", store.questions)
	}
}

func TestReplaceAllSwapsWholeBank(t *testing.T) {
	store := &fakeQuestionStore{}
	store.questions = []model.Question{{ID: 7, Text: "old"}, {ID: 8, Text: "older"}}
	svc := NewQuestionService(store, staticGate{}, zerolog.Nop())

	count, err := svc.ReplaceAll(context.Background(), uploadFixture(3))
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if count != 3 || len(store.questions) != 3 {
		t.Fatalf("expected 3 questions, got count=%d len=%d", count, len(store.questions))
	}
	for _, q := range store.questions {
		if q.Text == "old" || q.Text == "older" {
			t.Fatal("previous bank must not survive the swap")
		}
	}
}

func TestListForStudentRedactsCorrectAnswer(t *testing.T) {
	store := &fakeQuestionStore{}
	store.questions = []model.Question{{
		ID:            1,
		Text:          "pick one",
		Options:       model.OptionSet{"a", "b", "c", "d", "e"},
		CorrectAnswer: "C",
	}}
	svc := NewQuestionService(store, staticGate{}, zerolog.Nop())

	views, err := svc.ListForStudent(context.Background())
	if err != nil {
		t.Fatalf("ListForStudent: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].ID != 1 || views[0].Text != "pick one" || views[0].Options[2] != "c" {
		t.Fatalf("unexpected view %+v", views[0])
	}
}

func TestStudentReadsGatedByActivity(t *testing.T) {
	store := &fakeQuestionStore{}
	store.questions = []model.Question{{ID: 1}}
	svc := NewQuestionService(store, staticGate{activeErr: ErrExamInactive}, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.ListForStudent(ctx); !errors.Is(err, ErrExamInactive) {
		t.Fatalf("list: expected ErrExamInactive, got %v", err)
	}
	if _, err := svc.GetForStudent(ctx, 1); !errors.Is(err, ErrExamInactive) {
		t.Fatalf("get: expected ErrExamInactive, got %v", err)
	}
}

func TestGetForStudentUnknownID(t *testing.T) {
	store := &fakeQuestionStore{}
	store.questions = []model.Question{{ID: 1}}
	svc := NewQuestionService(store, staticGate{}, zerolog.Nop())

	if _, err := svc.GetForStudent(context.Background(), 99); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListForAdminBypassesGateAndKeepsAnswers(t *testing.T) {
	store := &fakeQuestionStore{}
	store.questions = []model.Question{{ID: 1, CorrectAnswer: "B"}}
	svc := NewQuestionService(store, staticGate{activeErr: ErrExamInactive}, zerolog.Nop())

	questions, err := svc.ListForAdmin(context.Background())
	if err != nil {
		t.Fatalf("ListForAdmin: %v", err)
	}
	if len(questions) != 1 || questions[0].CorrectAnswer != "B" {
		t.Fatalf("admin listing must keep the correct answer: %+v", questions)
	}
}
