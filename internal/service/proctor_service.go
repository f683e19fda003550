package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/storage"
)

// ErrBadImageData reports an undecodable screenshot payload.
var ErrBadImageData = errors.New("image data is not valid base64")

// ScreenshotStore is the persistence surface for screenshot metadata.
type ScreenshotStore interface {
	Create(ctx context.Context, s *model.Screenshot) error
	ListByStudent(ctx context.Context, studentID string) ([]model.Screenshot, error)
}

// ProctorService stores proctoring screenshots: the blob goes to the
// external blob store, the metadata row to the database. No dedup, no size
// or type validation, no retention policy.
type ProctorService struct {
	shots ScreenshotStore
	blobs storage.BlobStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewProctorService creates a new ProctorService.
func NewProctorService(shots ScreenshotStore, blobs storage.BlobStore, log zerolog.Logger) *ProctorService {
	return &ProctorService{
		shots: shots,
		blobs: blobs,
		log:   log.With().Str("component", "proctor_service").Logger(),
		now:   time.Now,
	}
}

// SaveScreenshot decodes a base64 PNG (data URL prefix tolerated), writes
// the blob under {student_id}_{timestamp µs}.png, then records metadata.
func (s *ProctorService) SaveScreenshot(ctx context.Context, studentID, imageData string) (string, error) {
	payload := imageData
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadImageData, err)
	}

	now := s.now()
	filename := fmt.Sprintf("%s_%s_%06d.png",
		studentID, now.Format("20060102_150405"), now.Nanosecond()/1000)

	if err := s.blobs.Put(ctx, filename, raw); err != nil {
		return "", err
	}

	if err := s.shots.Create(ctx, &model.Screenshot{
		StudentID:  studentID,
		Filename:   filename,
		CapturedAt: now.UTC(),
	}); err != nil {
		return "", err
	}

	s.log.Debug().Str("student_id", studentID).Str("filename", filename).Msg("screenshot stored")
	return filename, nil
}

// Screenshots returns a student's screenshot metadata, newest first.
func (s *ProctorService) Screenshots(ctx context.Context, studentID string) ([]model.Screenshot, error) {
	return s.shots.ListByStudent(ctx, studentID)
}
