package domain

import "context"

// EventSettings is the single shared event description shown to every guest.
// All fields are optional; a never-saved row reads back as all-empty.
// swagger:model EventSettings
type EventSettings struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Location    string `json:"location"`
	DateText    string `json:"dateText"`
	ImageURL    string `json:"imageUrl"`
}

// SettingsRepository defines storage for the single event-settings row.
type SettingsRepository interface {
	// GetEvent returns the stored settings, or an all-empty value when the
	// row has never been written.
	GetEvent(ctx context.Context) (*EventSettings, error)
	// SaveEvent upserts the single row, overwriting all fields.
	SaveEvent(ctx context.Context, settings *EventSettings) error
}

// SettingsService defines the business logic for event settings.
type SettingsService interface {
	GetEvent(ctx context.Context) (*EventSettings, error)
	// UpdateEvent overwrites the text fields. A blank imageUrl keeps the
	// previously stored image; only the image-upload flow clears or sets it
	// unconditionally.
	UpdateEvent(ctx context.Context, settings *EventSettings) (*EventSettings, error)
	// SetEventImage stores the uploaded file and points imageUrl at its
	// public path. Returns the stored public URL.
	SetEventImage(ctx context.Context, fileName string, content []byte, baseURL string) (string, error)
}
