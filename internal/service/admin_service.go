package service

import (
	"context"
	"crypto/subtle"

	"github.com/rs/zerolog"
)

// AdminCredentialStore is the persistence surface for the singleton admin
// credential row.
type AdminCredentialStore interface {
	GetPassword(ctx context.Context) (string, error)
	UpdatePassword(ctx context.Context, newPassword string) error
}

// AdminService verifies and rotates the shared admin secret.
type AdminService struct {
	creds AdminCredentialStore
	log   zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(creds AdminCredentialStore, log zerolog.Logger) *AdminService {
	return &AdminService{
		creds: creds,
		log:   log.With().Str("component", "admin_service").Logger(),
	}
}

// VerifyPassword checks the submitted secret against the stored one.
func (s *AdminService) VerifyPassword(ctx context.Context, password string) error {
	stored, err := s.creds.GetPassword(ctx)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// ChangePassword rotates the admin secret after verifying the old one.
func (s *AdminService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := s.VerifyPassword(ctx, oldPassword); err != nil {
		return err
	}
	if err := s.creds.UpdatePassword(ctx, newPassword); err != nil {
		return err
	}
	s.log.Info().Msg("admin password changed")
	return nil
}
