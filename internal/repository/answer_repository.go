package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examhall/examhall-backend/internal/model"
)

// AnswerRepository handles the answer ledger.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// Upsert records an answer, overwriting any previous row for the same
// (student_id, question_id) pair. Last write wins.
func (r *AnswerRepository) Upsert(ctx context.Context, a *model.Answer) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO answers (student_id, question_id, selected_answer, submitted_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, question_id)
		 DO UPDATE SET selected_answer = EXCLUDED.selected_answer, submitted_at = EXCLUDED.submitted_at`,
		a.StudentID, a.QuestionID, a.SelectedAnswer, a.SubmittedAt,
	)
	return err
}

// MapByStudent returns the student's current answers keyed by question_id.
func (r *AnswerRepository) MapByStudent(ctx context.Context, studentID string) (map[int64]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id, selected_answer FROM answers WHERE student_id = $1`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make(map[int64]string)
	for rows.Next() {
		var questionID int64
		var selected string
		if err := rows.Scan(&questionID, &selected); err != nil {
			return nil, err
		}
		answers[questionID] = selected
	}
	return answers, rows.Err()
}

// CountByStudent returns the number of answer rows for a student.
func (r *AnswerRepository) CountByStudent(ctx context.Context, studentID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM answers WHERE student_id = $1`, studentID,
	).Scan(&n)
	return n, err
}

// ListGroupedByStudent returns every answer row grouped per student,
// ordered by student then question, for admin submission review.
func (r *AnswerRepository) ListGroupedByStudent(ctx context.Context) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id, question_id, selected_answer, submitted_at
		 FROM answers ORDER BY student_id, question_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.StudentID, &a.QuestionID, &a.SelectedAnswer, &a.SubmittedAt); err != nil {
			return nil, err
		}
		if n := len(submissions); n == 0 || submissions[n-1].StudentID != a.StudentID {
			submissions = append(submissions, model.Submission{StudentID: a.StudentID})
		}
		last := &submissions[len(submissions)-1]
		last.Answers = append(last.Answers, a)
		last.TotalAnswered++
	}
	return submissions, rows.Err()
}
