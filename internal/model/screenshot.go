package model

import "time"

// Screenshot is append-only proctoring metadata referencing a blob held in
// the external blob store. No uniqueness constraint, no deletion path.
type Screenshot struct {
	StudentID  string    `json:"student_id"`
	Filename   string    `json:"filename"`
	CapturedAt time.Time `json:"timestamp"`
}

// UploadScreenshotRequest carries a base64-encoded PNG, optionally prefixed
// with a browser data URL header.
type UploadScreenshotRequest struct {
	StudentID string `json:"student_id" binding:"required,min=1,max=64"`
	ImageData string `json:"image_data" binding:"required"`
}
