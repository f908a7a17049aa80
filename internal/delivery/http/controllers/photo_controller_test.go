package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inviteapi/internal/domain"
)

// fakePhotoService implements domain.PhotoService for handler tests.
type fakePhotoService struct {
	listErr       error
	listResult    []*domain.Photo
	uploadErr     error
	uploadedNames []string
}

func (f *fakePhotoService) List(ctx context.Context) ([]*domain.Photo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult != nil {
		return f.listResult, nil
	}
	return []*domain.Photo{}, nil
}

func (f *fakePhotoService) Upload(ctx context.Context, fileName string, content []byte) (*domain.Photo, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	stored := "stored-" + fileName
	f.uploadedNames = append(f.uploadedNames, fileName)
	return &domain.Photo{ID: "ph-" + fileName, FileName: stored, UploadedAt: time.Now()}, nil
}

// fakePhotoStream is a single-subscriber domain.PhotoStream.
type fakePhotoStream struct {
	ch chan string
}

func newFakePhotoStream() *fakePhotoStream {
	return &fakePhotoStream{ch: make(chan string, 8)}
}

func (f *fakePhotoStream) Subscribe() (<-chan string, func()) {
	return f.ch, func() {}
}

func (f *fakePhotoStream) Publish(event string) {
	f.ch <- event
}

func TestPhotoController_List(t *testing.T) {
	t.Run("success builds public urls", func(t *testing.T) {
		fake := &fakePhotoService{
			listResult: []*domain.Photo{
				{ID: "ph-1", FileName: "aaa.jpg"},
				{ID: "ph-2", FileName: "bbb.png"},
			},
		}
		ctrl := NewPhotoController(testLogger, fake, newFakePhotoStream())
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api/photos", nil)
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var urls []string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&urls))
		assert.Equal(t, []string{
			"http://example.com/uploads/aaa.jpg",
			"http://example.com/uploads/bbb.png",
		}, urls)
	})

	t.Run("forwarded proto", func(t *testing.T) {
		fake := &fakePhotoService{listResult: []*domain.Photo{{ID: "ph-1", FileName: "aaa.jpg"}}}
		ctrl := NewPhotoController(testLogger, fake, newFakePhotoStream())
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api/photos", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var urls []string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&urls))
		assert.Equal(t, []string{"https://example.com/uploads/aaa.jpg"}, urls)
	})

	t.Run("service error", func(t *testing.T) {
		ctrl := NewPhotoController(testLogger, &fakePhotoService{listErr: errors.New("db down")}, newFakePhotoStream())
		req := httptest.NewRequest(http.MethodGet, "/api/photos", nil)
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "internal server error", decodeError(t, rr).Message)
	})
}

func TestPhotoController_Upload(t *testing.T) {
	t.Run("multiple files in one request", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for _, name := range []string{"a.jpg", "b.png"} {
			fw, err := mw.CreateFormFile("file", name)
			require.NoError(t, err)
			_, err = fw.Write([]byte("data-" + name))
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())

		fake := &fakePhotoService{}
		ctrl := NewPhotoController(testLogger, fake, newFakePhotoStream())
		req := httptest.NewRequest(http.MethodPost, "http://example.com/api/photos/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var urls []string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&urls))
		assert.Equal(t, []string{
			"http://example.com/uploads/stored-a.jpg",
			"http://example.com/uploads/stored-b.png",
		}, urls)
		assert.Equal(t, []string{"a.jpg", "b.png"}, fake.uploadedNames)
	})

	t.Run("no file parts", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("note", "hello"))
		require.NoError(t, mw.Close())

		ctrl := NewPhotoController(testLogger, &fakePhotoService{}, newFakePhotoStream())
		req := httptest.NewRequest(http.MethodPost, "/api/photos/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Message, "missing or empty file")
	})

	t.Run("not multipart", func(t *testing.T) {
		ctrl := NewPhotoController(testLogger, &fakePhotoService{}, newFakePhotoStream())
		req := httptest.NewRequest(http.MethodPost, "/api/photos/upload", bytes.NewBufferString("plain body"))
		req.Header.Set("Content-Type", "text/plain")
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Message, "invalid multipart form")
	})

	t.Run("unsupported type", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", "malware.exe", []byte("mz"))
		ctrl := NewPhotoController(testLogger, &fakePhotoService{uploadErr: domain.ErrUnsupportedUpload}, newFakePhotoStream())
		req := httptest.NewRequest(http.MethodPost, "/api/photos/upload", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Message, "unsupported file type")
	})
}

func TestPhotoController_StreamEvents(t *testing.T) {
	stream := newFakePhotoStream()
	ctrl := NewPhotoController(testLogger, &fakePhotoService{}, stream)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/photos/stream", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	// Buffered before the handler starts, so the event is drained first and
	// the cancel is only seen afterwards.
	stream.Publish("new_photo")

	done := make(chan struct{})
	go func() {
		ctrl.StreamEvents(rr, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not stop after client disconnect")
	}

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "data: new_photo\n\n")
}
