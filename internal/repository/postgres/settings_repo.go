package postgres

import (
	"context"
	"database/sql"
	"errors"

	"inviteapi/internal/domain"
)

// The event settings live in a single row with a fixed id.
const settingsRowID = 1

type settingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) domain.SettingsRepository {
	return &settingsRepository{DB: db}
}

func (r *settingsRepository) GetEvent(ctx context.Context) (*domain.EventSettings, error) {
	query := `
		SELECT COALESCE(title, ''), COALESCE(subtitle, ''), COALESCE(description, ''),
		       COALESCE(location, ''), COALESCE(date_text, ''), COALESCE(image_url, '')
		FROM event_settings
		WHERE id = $1
	`
	s := &domain.EventSettings{}
	err := r.DB.QueryRowContext(ctx, query, settingsRowID).
		Scan(&s.Title, &s.Subtitle, &s.Description, &s.Location, &s.DateText, &s.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.EventSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) SaveEvent(ctx context.Context, settings *domain.EventSettings) error {
	query := `
		INSERT INTO event_settings (id, title, subtitle, description, location, date_text, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET title       = EXCLUDED.title,
		    subtitle    = EXCLUDED.subtitle,
		    description = EXCLUDED.description,
		    location    = EXCLUDED.location,
		    date_text   = EXCLUDED.date_text,
		    image_url   = EXCLUDED.image_url
	`
	_, err := r.DB.ExecContext(ctx, query, settingsRowID,
		settings.Title, settings.Subtitle, settings.Description,
		settings.Location, settings.DateText, settings.ImageURL)
	return err
}
