package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for uploads.
var (
	ErrEmptyUpload       = errors.New("missing or empty file")
	ErrUnsupportedUpload = errors.New("unsupported file type")
)

// Photo is a single gallery photo uploaded by a guest.
// swagger:model Photo
type Photo struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// PhotoRepository defines storage operations for gallery photos.
type PhotoRepository interface {
	Create(ctx context.Context, photo *Photo) error
	// List returns all photos, newest first.
	List(ctx context.Context) ([]*Photo, error)
}

// FileStore persists uploaded file contents under a public-serving root.
type FileStore interface {
	Save(name string, content []byte) error
}

// PhotoStream broadcasts gallery change notifications to live subscribers.
type PhotoStream interface {
	// Subscribe returns a channel of event names and a cancel function that
	// must be called when the subscriber goes away.
	Subscribe() (events <-chan string, cancel func())
	Publish(event string)
}

// PhotoService defines the shared-gallery business logic.
type PhotoService interface {
	List(ctx context.Context) ([]*Photo, error)
	// Upload stores one photo and notifies stream subscribers.
	Upload(ctx context.Context, fileName string, content []byte) (*Photo, error)
}
