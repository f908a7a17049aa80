package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inviteapi/internal/domain"
)

const (
	// New invites expire a week out unless a global expiration is set.
	defaultInviteTTL = 7 * 24 * time.Hour
	tokenLength      = 10
)

type inviteService struct {
	repo           domain.InviteRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewInviteService creates an InviteService backed by the given repository.
func NewInviteService(repo domain.InviteRepository, timeout time.Duration) domain.InviteService {
	return &inviteService{
		repo:           repo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// newToken returns a short unguessable token for guest links.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}

func (s *inviteService) List(ctx context.Context) ([]*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.repo.GetAll(ctx)
}

func (s *inviteService) Create(ctx context.Context, name, phone string) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.IsValidPhone(phone) {
		return nil, domain.ErrInvalidPhone
	}

	expiresAt, err := s.repo.GlobalExpiration(ctx)
	if err != nil {
		return nil, fmt.Errorf("read global expiration: %w", err)
	}
	if expiresAt.IsZero() {
		expiresAt = s.now().UTC().Add(defaultInviteTTL)
	}

	inv := &domain.Invite{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Token:     newToken(),
		Status:    domain.StatusPending,
		ExpiresAt: expiresAt,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}
	return inv, nil
}

// Update applies a partial admin edit. Empty name/phone leave the field
// unchanged; a phone, when given, must be valid. Unknown status strings are
// ignored rather than rejected, matching the admin form's free-text field.
func (s *inviteService) Update(ctx context.Context, id, name, phone, status string) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	phone = strings.TrimSpace(phone)
	if phone != "" && !domain.IsValidPhone(phone) {
		return nil, domain.ErrInvalidPhone
	}

	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		inv.Name = name
	}
	if phone != "" {
		inv.Phone = phone
	}
	if parsed, ok := domain.ParseInviteStatus(status); ok {
		inv.Status = parsed
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *inviteService) Remove(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrInviteNotFound
	}
	return nil
}

// GetByToken is the public lookup. Expired invites are reported as such;
// admins can still reach the record by id.
func (s *inviteService) GetByToken(ctx context.Context, token string) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.IsExpired(s.now()) {
		return nil, domain.ErrInviteExpired
	}
	return inv, nil
}

// Respond records a guest response. Re-responding is allowed: a guest holding
// the token may change confirmed to rejected and back until expiration.
// Unknown-token and expired errors take precedence over a bad status.
func (s *inviteService) Respond(ctx context.Context, token, status string) (*domain.Invite, error) {
	inv, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	parsed, ok := domain.ParseInviteStatus(status)
	if !ok || parsed == domain.StatusPending {
		return nil, domain.ErrInvalidStatus
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv.Status = parsed
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *inviteService) GlobalExpiration(ctx context.Context) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.repo.GlobalExpiration(ctx)
}

func (s *inviteService) SetGlobalExpiration(ctx context.Context, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.repo.SetGlobalExpiration(ctx, expiresAt.UTC())
}
