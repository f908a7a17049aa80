package services

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"inviteapi/internal/domain"
)

type authService struct {
	adminEmail    string
	adminPassword string
	issuer        domain.TokenIssuer
}

// NewAuthService creates an AuthService for the single configured admin
// credential pair. adminPassword may be a plaintext value or a bcrypt hash
// (recognized by its $2 prefix).
func NewAuthService(adminEmail, adminPassword string, issuer domain.TokenIssuer) domain.AuthService {
	return &authService{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		issuer:        issuer,
	}
}

// Login compares the given pair against the configured admin credential:
// email case-insensitively, password exactly. Any mismatch returns
// ErrInvalidCredentials without revealing which part failed.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.LoginSession, error) {
	emailOK := strings.EqualFold(strings.TrimSpace(email), s.adminEmail)
	if !emailOK || !s.passwordMatches(password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(s.adminEmail, domain.AdminRole)
	if err != nil {
		return nil, err
	}
	return &domain.LoginSession{
		Token:     token,
		Email:     s.adminEmail,
		Role:      domain.AdminRole,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) passwordMatches(password string) bool {
	if strings.HasPrefix(s.adminPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(s.adminPassword), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.adminPassword), []byte(password)) == 1
}
