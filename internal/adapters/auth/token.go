package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inviteapi/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenManager issues and verifies HS256 admin tokens. It implements both
// domain.TokenIssuer and domain.TokenVerifier.
type TokenManager struct {
	key      []byte
	issuer   string
	audience string
	expiry   time.Duration
}

func NewTokenManager(key, issuer, audience string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		expiry:   expiry,
	}
}

func (m *TokenManager) Issue(email, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.expiry)
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
		Role:  role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature, issuer, audience, and expiry with no clock skew.
// Any failure maps to domain.ErrInvalidCredentials.
func (m *TokenManager) Verify(tokenString string) (*domain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{},
		func(t *jwt.Token) (interface{}, error) { return m.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidCredentials
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Claims{Email: claims.Email, Role: claims.Role}, nil
}
