package repository

import "errors"

// Sentinel errors shared across repositories.
var (
	// ErrNotFound reports that the addressed row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateStudent reports a roster uniqueness violation on student_id.
	ErrDuplicateStudent = errors.New("student with this ID already exists")
)
