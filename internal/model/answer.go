package model

import "time"

// Answer is one (student, question) ledger row. At most one row exists per
// pair; resubmission overwrites in place.
type Answer struct {
	StudentID      string    `json:"student_id"`
	QuestionID     int64     `json:"question_id"`
	SelectedAnswer string    `json:"selected_answer"`
	SubmittedAt    time.Time `json:"timestamp"`
}

// SubmitAnswerRequest is the payload for recording an answer.
type SubmitAnswerRequest struct {
	StudentID      string `json:"student_id" binding:"required,min=1,max=64"`
	QuestionID     int64  `json:"question_id" binding:"required,min=1"`
	SelectedAnswer string `json:"selected_answer" binding:"required,max=32"`
}

// FinishExamRequest is the payload for the advisory exam submission marker.
type FinishExamRequest struct {
	StudentID string `json:"student_id" binding:"required,min=1,max=64"`
}

// Submission aggregates one student's answer rows for admin review.
type Submission struct {
	StudentID     string   `json:"student_id"`
	Answers       []Answer `json:"answers"`
	TotalAnswered int      `json:"total_answered"`
}
