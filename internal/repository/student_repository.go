package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examhall/examhall-backend/internal/model"
)

// StudentRepository handles roster data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// Create inserts a new roster entry. A student_id collision is reported as
// ErrDuplicateStudent; the existing row is never overwritten.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO students (student_id, name, password, last_connected_at)
		 VALUES ($1, $2, $3, $4)`,
		s.StudentID, s.Name, s.Password, s.LastConnectedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateStudent
		}
		return err
	}
	return nil
}

// GetByStudentID retrieves a roster entry by its natural key.
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT student_id, name, password, last_connected_at
		 FROM students WHERE student_id = $1`, studentID,
	).Scan(&s.StudentID, &s.Name, &s.Password, &s.LastConnectedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// List retrieves the full roster ordered by student_id.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id, name, password, last_connected_at
		 FROM students ORDER BY student_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.StudentID, &s.Name, &s.Password, &s.LastConnectedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// TouchLastConnected records a successful login time.
func (r *StudentRepository) TouchLastConnected(ctx context.Context, studentID string, t time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET last_connected_at = $1 WHERE student_id = $2`, t, studentID,
	)
	return err
}

// Delete removes a roster entry. Deleting an absent student is a no-op;
// answers and screenshots are intentionally left behind.
func (r *StudentRepository) Delete(ctx context.Context, studentID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE student_id = $1`, studentID)
	return err
}

// Count returns the roster size.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&n)
	return n, err
}
