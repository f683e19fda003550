package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/examhall/examhall-backend/internal/model"
)

func newExamFixture(t *testing.T, questionCount int, enforceDeadline bool) (*ExamService, *fakeStatusStore, *recordingPublisher) {
	t.Helper()

	status := &fakeStatusStore{status: model.ExamStatus{DurationMinutes: DefaultDurationMinutes}}
	questions := &fakeQuestionStore{}
	for i := 0; i < questionCount; i++ {
		questions.questions = append(questions.questions, model.Question{
			ID:            int64(i + 1),
			Text:          "q",
			Options:       model.OptionSet{"a", "b", "c", "d", "e"},
			CorrectAnswer: "A",
		})
	}
	events := &recordingPublisher{}

	svc := NewExamService(status, questions, newFakeStudentStore(), events, zerolog.Nop(), enforceDeadline)
	return svc, status, events
}

func TestStartFailsOnEmptyBank(t *testing.T) {
	svc, status, events := newExamFixture(t, 0, false)

	_, err := svc.Start(context.Background(), 0)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	if status.status.IsActive {
		t.Fatal("status should remain inactive after a failed start")
	}
	if len(events.events) != 0 {
		t.Fatalf("no event should be published, got %v", events.events)
	}
}

func TestStartActivatesAndDefaultsDuration(t *testing.T) {
	svc, status, events := newExamFixture(t, 3, false)

	st, err := svc.Start(context.Background(), 0)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !st.IsActive || st.StartTime == nil {
		t.Fatalf("unexpected status %+v", st)
	}
	if st.DurationMinutes != DefaultDurationMinutes {
		t.Fatalf("expected default duration, got %d", st.DurationMinutes)
	}
	if !status.status.IsActive {
		t.Fatal("store not activated")
	}
	if len(events.events) != 1 || events.events[0].Type != EventExamStarted {
		t.Fatalf("expected one started event, got %v", events.events)
	}
}

func TestRestartResetsTimer(t *testing.T) {
	svc, status, _ := newExamFixture(t, 1, false)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	if _, err := svc.Start(ctx, 30); err != nil {
		t.Fatalf("first start: %v", err)
	}
	first := *status.status.StartTime

	svc.now = func() time.Time { return base.Add(10 * time.Minute) }
	st, err := svc.Start(ctx, 45)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}

	if !st.StartTime.After(first) {
		t.Fatalf("restart should reset the start time: %v vs %v", st.StartTime, first)
	}
	if status.status.DurationMinutes != 45 {
		t.Fatalf("restart should overwrite the duration, got %d", status.status.DurationMinutes)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	svc, status, events := newExamFixture(t, 1, false)
	ctx := context.Background()

	if _, err := svc.Start(ctx, 10); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := svc.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if status.status.IsActive || status.status.StartTime != nil {
		t.Fatalf("stop should deactivate and clear start_time: %+v", status.status)
	}

	// Stopping an inactive exam is still a success.
	if err := svc.Stop(ctx); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	if got := len(events.events); got != 3 {
		t.Fatalf("expected started+stopped+stopped events, got %d", got)
	}
}

func TestRequireActiveGates(t *testing.T) {
	svc, _, _ := newExamFixture(t, 2, false)
	ctx := context.Background()

	if err := svc.RequireActive(ctx); !errors.Is(err, ErrExamInactive) {
		t.Fatalf("expected ErrExamInactive, got %v", err)
	}
	if err := svc.RequireInactive(ctx); err != nil {
		t.Fatalf("RequireInactive while idle: %v", err)
	}

	if _, err := svc.Start(ctx, 10); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := svc.RequireActive(ctx); err != nil {
		t.Fatalf("RequireActive while live: %v", err)
	}
	if err := svc.RequireInactive(ctx); !errors.Is(err, ErrExamActive) {
		t.Fatalf("expected ErrExamActive, got %v", err)
	}
}

func TestDeadlineOnlyEnforcedWhenConfigured(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// Flag off: the duration stays advisory.
	relaxed, _, _ := newExamFixture(t, 1, false)
	relaxed.now = func() time.Time { return base }
	if _, err := relaxed.Start(ctx, 30); err != nil {
		t.Fatalf("Start: %v", err)
	}
	relaxed.now = func() time.Time { return base.Add(2 * time.Hour) }
	if err := relaxed.RequireActive(ctx); err != nil {
		t.Fatalf("advisory duration must not gate: %v", err)
	}

	// Flag on: requests past the deadline are rejected.
	strict, _, _ := newExamFixture(t, 1, true)
	strict.now = func() time.Time { return base }
	if _, err := strict.Start(ctx, 30); err != nil {
		t.Fatalf("Start: %v", err)
	}
	strict.now = func() time.Time { return base.Add(31 * time.Minute) }
	if err := strict.RequireActive(ctx); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}

	// Inside the window the gate still passes.
	strict.now = func() time.Time { return base.Add(29 * time.Minute) }
	if err := strict.RequireActive(ctx); err != nil {
		t.Fatalf("inside window: %v", err)
	}
}

func TestStatusSnapshotIncludesCounts(t *testing.T) {
	status := &fakeStatusStore{}
	questions := &fakeQuestionStore{}
	questions.questions = []model.Question{{ID: 1}, {ID: 2}}
	students := newFakeStudentStore()
	_ = students.Create(context.Background(), &model.Student{StudentID: "s1"})

	svc := NewExamService(status, questions, students, nil, zerolog.Nop(), false)

	snap, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if snap.QuestionCount != 2 || snap.StudentCount != 1 {
		t.Fatalf("unexpected counts %+v", snap)
	}
	if snap.IsActive {
		t.Fatal("fresh status should be inactive")
	}
}
