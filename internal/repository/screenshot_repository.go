package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examhall/examhall-backend/internal/model"
)

// ScreenshotRepository handles append-only proctoring metadata.
type ScreenshotRepository struct {
	pool *pgxpool.Pool
}

// NewScreenshotRepository creates a new ScreenshotRepository.
func NewScreenshotRepository(pool *pgxpool.Pool) *ScreenshotRepository {
	return &ScreenshotRepository{pool: pool}
}

// Create records screenshot metadata.
func (r *ScreenshotRepository) Create(ctx context.Context, s *model.Screenshot) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO screenshots (student_id, filename, captured_at)
		 VALUES ($1, $2, $3)`,
		s.StudentID, s.Filename, s.CapturedAt,
	)
	return err
}

// ListByStudent returns a student's screenshots, newest first.
func (r *ScreenshotRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Screenshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id, filename, captured_at
		 FROM screenshots WHERE student_id = $1
		 ORDER BY captured_at DESC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shots []model.Screenshot
	for rows.Next() {
		var s model.Screenshot
		if err := rows.Scan(&s.StudentID, &s.Filename, &s.CapturedAt); err != nil {
			return nil, err
		}
		shots = append(shots, s)
	}
	return shots, rows.Err()
}
