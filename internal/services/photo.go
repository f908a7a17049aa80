package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"inviteapi/internal/domain"
)

// NewPhotoEvent is published on the photo stream after each stored upload.
const NewPhotoEvent = "new_photo"

// allowed extensions for uploaded files, lowercase with leading dot.
var allowedExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// imageExt returns the lowercased extension of name and whether it is an
// allowed image type. Stored names never carry a client-controlled path.
func imageExt(name string) (string, bool) {
	ext := strings.ToLower(name[strings.LastIndexByte(name, '.')+1:])
	if ext != "" && allowedExts["."+ext] {
		return "." + ext, true
	}
	return "", false
}

// safeExt returns the lowercased extension of name if it is an allowed image
// type, else ".jpg".
func safeExt(name string) string {
	if ext, ok := imageExt(name); ok {
		return ext
	}
	return ".jpg"
}

type photoService struct {
	repo           domain.PhotoRepository
	files          domain.FileStore
	stream         domain.PhotoStream
	contextTimeout time.Duration
	now            func() time.Time
}

// NewPhotoService creates a PhotoService over the given repository, file
// store, and live stream.
func NewPhotoService(repo domain.PhotoRepository, files domain.FileStore, stream domain.PhotoStream, timeout time.Duration) domain.PhotoService {
	return &photoService{
		repo:           repo,
		files:          files,
		stream:         stream,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *photoService) List(ctx context.Context) ([]*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.repo.List(ctx)
}

func (s *photoService) Upload(ctx context.Context, fileName string, content []byte) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(content) == 0 {
		return nil, domain.ErrEmptyUpload
	}
	// Guests upload directly; only known image types are accepted here. The
	// admin event-image flow is more lenient.
	ext, ok := imageExt(fileName)
	if !ok {
		return nil, domain.ErrUnsupportedUpload
	}

	photo := &domain.Photo{
		ID:         uuid.NewString(),
		FileName:   strings.ReplaceAll(uuid.NewString(), "-", "") + ext,
		UploadedAt: s.now().UTC(),
	}
	if err := s.files.Save(photo.FileName, content); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}
	if err := s.repo.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("record photo: %w", err)
	}
	s.stream.Publish(NewPhotoEvent)
	return photo, nil
}

// Broadcaster is an in-process fan-out of gallery events to SSE subscribers.
// It implements domain.PhotoStream.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan string]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan string]struct{})}
}

func (b *Broadcaster) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 8)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers event to every subscriber. Slow subscribers with a full
// buffer miss the event rather than block the publisher.
func (b *Broadcaster) Publish(event string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
