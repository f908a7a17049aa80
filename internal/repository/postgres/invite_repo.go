package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"inviteapi/internal/domain"
)

type inviteRepository struct {
	DB *sql.DB
}

func NewInviteRepository(db *sql.DB) domain.InviteRepository {
	return &inviteRepository{DB: db}
}

// nullableTime maps the zero time (no expiration) to SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func scanInvite(row interface{ Scan(dest ...any) error }) (*domain.Invite, error) {
	inv := &domain.Invite{}
	var status string
	var expiresAt sql.NullTime
	if err := row.Scan(&inv.ID, &inv.Name, &inv.Phone, &inv.Token, &status, &expiresAt); err != nil {
		return nil, err
	}
	inv.Status = domain.InviteStatus(status)
	if expiresAt.Valid {
		inv.ExpiresAt = expiresAt.Time.UTC()
	}
	return inv, nil
}

func (r *inviteRepository) GetAll(ctx context.Context) ([]*domain.Invite, error) {
	query := `
		SELECT id, name, phone, token, status, expires_at
		FROM invites
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []*domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []*domain.Invite{}
	}
	return invs, nil
}

func (r *inviteRepository) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	query := `
		SELECT id, name, phone, token, status, expires_at
		FROM invites
		WHERE id = $1
	`
	inv, err := scanInvite(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInviteNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (*domain.Invite, error) {
	query := `
		SELECT id, name, phone, token, status, expires_at
		FROM invites
		WHERE LOWER(token) = LOWER($1)
	`
	inv, err := scanInvite(r.DB.QueryRowContext(ctx, query, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInviteNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *inviteRepository) Create(ctx context.Context, inv *domain.Invite) error {
	query := `
		INSERT INTO invites (id, name, phone, token, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		inv.ID, inv.Name, inv.Phone, inv.Token, string(inv.Status), nullableTime(inv.ExpiresAt))
	return err
}

func (r *inviteRepository) Update(ctx context.Context, inv *domain.Invite) error {
	query := `
		UPDATE invites
		SET name = $2, phone = $3, status = $4
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, inv.ID, inv.Name, inv.Phone, string(inv.Status))
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInviteNotFound
	}
	return nil
}

func (r *inviteRepository) Remove(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM invites WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *inviteRepository) GlobalExpiration(ctx context.Context) (time.Time, error) {
	query := `SELECT MAX(expires_at) FROM invites`
	var max sql.NullTime
	if err := r.DB.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return time.Time{}, err
	}
	if !max.Valid {
		return time.Time{}, nil
	}
	return max.Time.UTC(), nil
}

func (r *inviteRepository) SetGlobalExpiration(ctx context.Context, expiresAt time.Time) error {
	query := `UPDATE invites SET expires_at = $1`
	_, err := r.DB.ExecContext(ctx, query, expiresAt)
	return err
}
