package model

import "time"

// ExamStatus is the singleton exam lifecycle record.
// Invariant: StartTime is non-nil iff IsActive is true.
type ExamStatus struct {
	IsActive        bool       `json:"is_active"`
	StartTime       *time.Time `json:"start_time"`
	DurationMinutes int        `json:"duration_minutes"`
}

// StatusSnapshot is the read-only aggregate returned by status endpoints.
type StatusSnapshot struct {
	ExamStatus
	QuestionCount int `json:"total_questions"`
	StudentCount  int `json:"total_students"`
}

// StartExamRequest is the payload for starting the exam.
// A zero duration falls back to the 60 minute default.
type StartExamRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
}
