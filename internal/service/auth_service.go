package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/examhall/examhall-backend/internal/config"
)

// Session errors.
var (
	ErrNoSession          = errors.New("no active session")
	ErrSessionInvalidated = errors.New("session invalidated")
)

// TokenType distinguishes student vs admin tokens.
type TokenType string

const (
	TokenTypeStudent TokenType = "student"
	TokenTypeAdmin   TokenType = "admin"
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"token_type"`
	StudentID string    `json:"student_id,omitempty"`
}

// SessionStore registers the active session JTI per student. A student has
// at most one active session; issuing a new token replaces it.
type SessionStore interface {
	Put(ctx context.Context, studentID, jti string, ttl time.Duration) error
	Get(ctx context.Context, studentID string) (string, error)
	Del(ctx context.Context, studentID string) error
}

// AuthService issues and validates session tokens. Every mutating call must
// prove a prior successful login; bare student IDs are never trusted.
type AuthService struct {
	cfg      *config.Config
	sessions SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, sessions SessionStore) *AuthService {
	return &AuthService{cfg: cfg, sessions: sessions}
}

// IssueStudentToken creates a student JWT and registers its JTI as the
// student's active session, replacing any previous one. The replaced
// session's token stops passing the session check immediately.
func (s *AuthService) IssueStudentToken(ctx context.Context, studentID string) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   studentID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType: TokenTypeStudent,
		StudentID: studentID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Put(ctx, studentID, jti, s.cfg.JWTExpiry); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

// IssueAdminToken creates an admin JWT. Admin sessions are stateless; the
// single shared secret has no per-device registry to maintain.
func (s *AuthService) IssueAdminToken() (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType: TokenTypeAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateStudentSession checks that the token's JTI matches the active
// session for the student.
func (s *AuthService) ValidateStudentSession(ctx context.Context, studentID, jti string) error {
	stored, err := s.sessions.Get(ctx, studentID)
	if err != nil {
		return err
	}
	if stored != jti {
		return ErrSessionInvalidated
	}
	return nil
}

// ResetStudentSession removes a student's active session.
func (s *AuthService) ResetStudentSession(ctx context.Context, studentID string) error {
	return s.sessions.Del(ctx, studentID)
}
