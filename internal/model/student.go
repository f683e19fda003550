package model

import "time"

// Student is a roster entry. StudentID is the natural key used everywhere;
// the surrogate row id never leaves the store.
type Student struct {
	StudentID       string    `json:"student_id"`
	Name            string    `json:"name"`
	Password        string    `json:"-"`
	LastConnectedAt time.Time `json:"connected_at"`
}

// AddStudentRequest is the admin payload for adding a roster entry.
type AddStudentRequest struct {
	StudentID string `json:"student_id" binding:"required,min=1,max=64"`
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Password  string `json:"password" binding:"required,min=1,max=128"`
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	StudentID string `json:"student_id" binding:"required,min=1,max=64"`
	Password  string `json:"password" binding:"required,min=1,max=128"`
}
