package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/examhall/examhall-backend/internal/repository"
)

func TestAddRejectsDuplicateStudentID(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewRosterService(store, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Add(ctx, "s1", "Alice", "secret"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := svc.Add(ctx, "s1", "Imposter", "other")
	if !errors.Is(err, repository.ErrDuplicateStudent) {
		t.Fatalf("expected ErrDuplicateStudent, got %v", err)
	}

	// The original entry is never overwritten.
	student, err := store.GetByStudentID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByStudentID: %v", err)
	}
	if student.Name != "Alice" || student.Password != "secret" {
		t.Fatalf("original entry was overwritten: %+v", student)
	}
}

func TestAuthenticateSuccessTouchesLastConnected(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewRosterService(store, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Add(ctx, "s1", "Alice", "secret"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	loginAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return loginAt }

	student, err := svc.Authenticate(ctx, "s1", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if student.Name != "Alice" {
		t.Fatalf("unexpected student %+v", student)
	}
	if !student.LastConnectedAt.Equal(loginAt) {
		t.Fatalf("LastConnectedAt not updated: %v", student.LastConnectedAt)
	}

	stored, _ := store.GetByStudentID(ctx, "s1")
	if !stored.LastConnectedAt.Equal(loginAt) {
		t.Fatalf("store not touched: %v", stored.LastConnectedAt)
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewRosterService(store, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Add(ctx, "s1", "Alice", "secret"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, wrongPassword := svc.Authenticate(ctx, "s1", "nope")
	_, unknownStudent := svc.Authenticate(ctx, "ghost", "secret")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownStudent, ErrInvalidCredentials) {
		t.Fatalf("unknown student: expected ErrInvalidCredentials, got %v", unknownStudent)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewRosterService(store, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Add(ctx, "s1", "Alice", "secret"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Deleting an absent student still succeeds.
	if err := svc.Delete(ctx, "s1"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}

	students, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(students) != 0 {
		t.Fatalf("roster should be empty, got %+v", students)
	}
}
