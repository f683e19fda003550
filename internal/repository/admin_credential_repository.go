package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminCredentialRepository handles the singleton admin credential row.
type AdminCredentialRepository struct {
	pool *pgxpool.Pool
}

// NewAdminCredentialRepository creates a new AdminCredentialRepository.
func NewAdminCredentialRepository(pool *pgxpool.Pool) *AdminCredentialRepository {
	return &AdminCredentialRepository{pool: pool}
}

// GetPassword retrieves the stored admin secret.
func (r *AdminCredentialRepository) GetPassword(ctx context.Context) (string, error) {
	var password string
	err := r.pool.QueryRow(ctx,
		`SELECT password FROM admin_credentials WHERE id = 1`,
	).Scan(&password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return password, nil
}

// UpdatePassword replaces the stored admin secret.
func (r *AdminCredentialRepository) UpdatePassword(ctx context.Context, newPassword string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admin_credentials SET password = $1 WHERE id = 1`, newPassword,
	)
	return err
}
