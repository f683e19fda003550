package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examhall/examhall-backend/internal/model"
)

// ExamStatusRepository handles the singleton exam status row.
type ExamStatusRepository struct {
	pool *pgxpool.Pool
}

// NewExamStatusRepository creates a new ExamStatusRepository.
func NewExamStatusRepository(pool *pgxpool.Pool) *ExamStatusRepository {
	return &ExamStatusRepository{pool: pool}
}

// Get retrieves the current exam status.
func (r *ExamStatusRepository) Get(ctx context.Context) (*model.ExamStatus, error) {
	st := &model.ExamStatus{}
	err := r.pool.QueryRow(ctx,
		`SELECT is_active, start_time, duration_minutes FROM exam_status WHERE id = 1`,
	).Scan(&st.IsActive, &st.StartTime, &st.DurationMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

// Activate marks the exam active with the given start time and duration.
// Calling it while already active simply resets the timer (restart support).
func (r *ExamStatusRepository) Activate(ctx context.Context, startTime time.Time, durationMinutes int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exam_status
		 SET is_active = TRUE, start_time = $1, duration_minutes = $2
		 WHERE id = 1`,
		startTime, durationMinutes,
	)
	return err
}

// Deactivate marks the exam inactive and clears the start time.
func (r *ExamStatusRepository) Deactivate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exam_status SET is_active = FALSE, start_time = NULL WHERE id = 1`,
	)
	return err
}
