package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inviteapi/internal/domain"
)

type fakePhotoRepo struct {
	photos []*domain.Photo
	err    error
}

func (f *fakePhotoRepo) Create(ctx context.Context, photo *domain.Photo) error {
	if f.err != nil {
		return f.err
	}
	cp := *photo
	f.photos = append(f.photos, &cp)
	return nil
}

func (f *fakePhotoRepo) List(ctx context.Context) ([]*domain.Photo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.photos, nil
}

func TestPhotoService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores file, records row, notifies stream", func(t *testing.T) {
		repo := &fakePhotoRepo{}
		files := newFakeFileStore()
		stream := NewBroadcaster()
		events, cancel := stream.Subscribe()
		defer cancel()

		svc := NewPhotoService(repo, files, stream, 2*time.Second)
		photo, err := svc.Upload(ctx, "IMG_0001.JPG", []byte("jpeg-bytes"))
		require.NoError(t, err)

		assert.NotEmpty(t, photo.ID)
		assert.True(t, len(photo.FileName) > 4)
		assert.Contains(t, files.files, photo.FileName)
		require.Len(t, repo.photos, 1)

		select {
		case got := <-events:
			assert.Equal(t, NewPhotoEvent, got)
		default:
			t.Fatal("expected a stream notification")
		}
	})

	t.Run("empty upload rejected", func(t *testing.T) {
		svc := NewPhotoService(&fakePhotoRepo{}, newFakeFileStore(), NewBroadcaster(), 2*time.Second)
		_, err := svc.Upload(ctx, "a.jpg", nil)
		assert.ErrorIs(t, err, domain.ErrEmptyUpload)
	})

	t.Run("non-image types rejected without storing", func(t *testing.T) {
		repo := &fakePhotoRepo{}
		files := newFakeFileStore()
		svc := NewPhotoService(repo, files, NewBroadcaster(), 2*time.Second)

		for _, name := range []string{"script.php", "payload.exe", "noext", ""} {
			_, err := svc.Upload(ctx, name, []byte("data"))
			assert.ErrorIs(t, err, domain.ErrUnsupportedUpload, "file %q", name)
		}
		assert.Empty(t, repo.photos)
		assert.Empty(t, files.files)
	})
}

func TestImageExt(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"photo.jpg", ".jpg", true},
		{"PHOTO.JPEG", ".jpeg", true},
		{"a.PNG", ".png", true},
		{"animated.gif", ".gif", true},
		{"modern.webp", ".webp", true},
		{"script.php", "", false},
		{"noext", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := imageExt(tt.in)
		assert.Equal(t, tt.wantOK, ok, "file %q", tt.in)
		assert.Equal(t, tt.want, got, "file %q", tt.in)
	}
}

func TestSafeExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", ".jpg"},
		{"PHOTO.JPEG", ".jpeg"},
		{"a.PNG", ".png"},
		{"animated.gif", ".gif"},
		{"modern.webp", ".webp"},
		{"script.php", ".jpg"},
		{"noext", ".jpg"},
		{"", ".jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeExt(tt.in), "file %q", tt.in)
	}
}

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()

	first, cancelFirst := b.Subscribe()
	second, cancelSecond := b.Subscribe()
	defer cancelSecond()

	b.Publish(NewPhotoEvent)
	assert.Equal(t, NewPhotoEvent, <-first)
	assert.Equal(t, NewPhotoEvent, <-second)

	cancelFirst()
	cancelFirst() // cancel is idempotent

	b.Publish(NewPhotoEvent)
	assert.Equal(t, NewPhotoEvent, <-second)

	_, open := <-first
	assert.False(t, open, "cancelled subscriber channel is closed")
}
