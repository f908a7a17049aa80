package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned for any login or token failure. The
// message never reveals which part of the credential was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminRole is the only role the system knows; there is a single operator.
const AdminRole = "Admin"

// Claims is the identity carried by a validated bearer token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginSession is the result of a successful login.
type LoginSession struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenIssuer issues signed bearer tokens for the admin identity.
type TokenIssuer interface {
	Issue(email, role string) (token string, expiresAt time.Time, err error)
}

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// AuthService validates the configured admin credential pair and issues tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginSession, error)
}
