package controllers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"inviteapi/internal/delivery/http/helpers"
	"inviteapi/internal/domain"
)

// PhotoController serves the shared guest gallery: listing, uploads, and the
// live SSE stream. All routes are public; guests are trusted with the link.
type PhotoController struct {
	Logger  *slog.Logger
	Service domain.PhotoService
	Stream  domain.PhotoStream
}

func NewPhotoController(logger *slog.Logger, svc domain.PhotoService, stream domain.PhotoStream) *PhotoController {
	return &PhotoController{Logger: logger, Service: svc, Stream: stream}
}

func (c *PhotoController) photoURL(r *http.Request, p *domain.Photo) string {
	return requestBaseURL(r) + "/uploads/" + p.FileName
}

// List godoc
// @Summary List gallery photo URLs
// @Tags photos
// @Produce json
// @Success 200 {array} string
// @Router /api/photos [get]
func (c *PhotoController) List(w http.ResponseWriter, r *http.Request) {
	photos, err := c.Service.List(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	urls := make([]string, len(photos))
	for i, p := range photos {
		urls[i] = c.photoURL(r, p)
	}
	helpers.WriteJSON(w, http.StatusOK, urls)
}

// Upload godoc
// @Summary Upload gallery photos
// @Description Multipart form; every "file" part is stored as one photo.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Success 200 {array} string "public URLs of the stored photos"
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/photos/upload [post]
func (c *PhotoController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		helpers.WriteError(w, http.StatusBadRequest, domain.ErrEmptyUpload.Error())
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			helpers.WriteError(w, http.StatusBadRequest, "could not read upload")
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			helpers.WriteError(w, http.StatusBadRequest, "could not read upload")
			return
		}
		photo, err := c.Service.Upload(r.Context(), header.Filename, content)
		if err != nil {
			writeDomainError(c.Logger, w, r, err)
			return
		}
		urls = append(urls, c.photoURL(r, photo))
	}
	helpers.WriteJSON(w, http.StatusOK, urls)
}

// StreamEvents godoc
// @Summary Server-sent gallery events
// @Description Emits a "new_photo" event after each stored upload, so open galleries refresh live.
// @Tags photos
// @Produce text/event-stream
// @Router /api/photos/stream [get]
func (c *PhotoController) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		helpers.WriteError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := c.Stream.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}
