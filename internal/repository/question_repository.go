package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examhall/examhall-backend/internal/model"
)

// QuestionRepository handles question bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ReplaceAll atomically swaps the entire question bank inside one
// transaction: the old set is truncated (identifiers restart at 1) and the
// new set inserted. No partial upload is ever visible to readers.
func (r *QuestionRepository) ReplaceAll(ctx context.Context, questions []model.Question) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE TABLE questions RESTART IDENTITY`); err != nil {
		return 0, fmt.Errorf("truncate questions: %w", err)
	}

	for i := range questions {
		opts, err := json.Marshal(questions[i].Options)
		if err != nil {
			return 0, fmt.Errorf("marshal options: %w", err)
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (question_text, options, correct_answer)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			questions[i].Text, opts, questions[i].CorrectAnswer,
		).Scan(&questions[i].ID)
		if err != nil {
			return 0, fmt.Errorf("insert question: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(questions), nil
}

// List retrieves the full question bank ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_text, options, correct_answer FROM questions ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, question_text, options, correct_answer FROM questions WHERE id = $1`, id,
	)
	q, err := scanQuestion(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

// Count returns the question bank size.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}

func scanQuestion(scan func(...any) error) (*model.Question, error) {
	q := &model.Question{}
	var opts []byte
	if err := scan(&q.ID, &q.Text, &opts, &q.CorrectAnswer); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(opts, &q.Options); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}
	return q, nil
}
