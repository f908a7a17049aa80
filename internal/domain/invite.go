package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for invite operations.
var (
	ErrInviteNotFound = errors.New("invite not found")
	ErrInviteExpired  = errors.New("invite has expired")
	ErrMissingFields  = errors.New("name and phone are required")
	ErrInvalidPhone   = errors.New("invalid phone: use +504######## or +1##########")
	ErrInvalidStatus  = errors.New("invalid status: use 'confirmed' or 'rejected'")
)

// InviteStatus is the guest response state of an invite.
// Values are lowercase so they serialize as-is on the wire.
type InviteStatus string

const (
	StatusPending   InviteStatus = "pending"
	StatusConfirmed InviteStatus = "confirmed"
	StatusRejected  InviteStatus = "rejected"
)

// ParseInviteStatus maps a wire status string to an InviteStatus, ignoring
// case. Unknown or empty strings return ok=false.
func ParseInviteStatus(s string) (InviteStatus, bool) {
	switch status := InviteStatus(strings.ToLower(s)); status {
	case StatusPending, StatusConfirmed, StatusRejected:
		return status, true
	}
	return "", false
}

// Invite represents a single guest invitation.
// Token is the only credential for public access; ID is the admin key.
// swagger:model Invite
type Invite struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone"`
	Token     string       `json:"token"`
	Status    InviteStatus `json:"status"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// IsExpired reports whether the invite's expiration is set and has passed.
// A zero ExpiresAt means the invite never expires.
func (i *Invite) IsExpired(now time.Time) bool {
	if i.ExpiresAt.IsZero() {
		return false
	}
	return !i.ExpiresAt.After(now)
}

var phoneRegexp = regexp.MustCompile(`^\+(504\d{8}|1\d{10})$`)

// IsValidPhone reports whether phone matches one of the two accepted formats:
// +504 followed by exactly 8 digits, or +1 followed by exactly 10 digits.
func IsValidPhone(phone string) bool {
	return phoneRegexp.MatchString(phone)
}

// InviteRepository defines storage operations for invites.
// Implementations return ErrInviteNotFound when an id or token is unknown.
type InviteRepository interface {
	GetAll(ctx context.Context) ([]*Invite, error)
	GetByID(ctx context.Context, id string) (*Invite, error)
	// GetByToken matches the token case-insensitively.
	GetByToken(ctx context.Context, token string) (*Invite, error)
	Create(ctx context.Context, inv *Invite) error
	// Update persists name, phone, and status. Token and expiration are immutable here.
	Update(ctx context.Context, inv *Invite) error
	// Remove hard-deletes the invite and reports whether a row was removed.
	Remove(ctx context.Context, id string) (bool, error)
	// GlobalExpiration returns the maximum expires_at across all invites,
	// or the zero time when none is set.
	GlobalExpiration(ctx context.Context) (time.Time, error)
	// SetGlobalExpiration overwrites expires_at on every invite.
	SetGlobalExpiration(ctx context.Context, expiresAt time.Time) error
}

// InviteService defines the business logic for invite management and the
// public token-based guest flow.
type InviteService interface {
	List(ctx context.Context) ([]*Invite, error)
	Create(ctx context.Context, name, phone string) (*Invite, error)
	// Update applies a partial admin edit: empty name/phone leave the field
	// unchanged, and unrecognized status strings are ignored.
	Update(ctx context.Context, id, name, phone, status string) (*Invite, error)
	Remove(ctx context.Context, id string) error
	// GetByToken is the public lookup; expired invites return ErrInviteExpired.
	GetByToken(ctx context.Context, token string) (*Invite, error)
	// Respond records a guest response. Only confirmed and rejected are accepted.
	Respond(ctx context.Context, token, status string) (*Invite, error)
	GlobalExpiration(ctx context.Context) (time.Time, error)
	SetGlobalExpiration(ctx context.Context, expiresAt time.Time) error
}
