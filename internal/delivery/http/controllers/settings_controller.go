package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"inviteapi/internal/delivery/http/helpers"
	"inviteapi/internal/domain"
)

// maxUploadBytes caps a single multipart upload held in memory.
const maxUploadBytes = 32 << 20

// UpdateEventRequest is the request body for PUT /api/settings/event.
type UpdateEventRequest struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Location    string `json:"location"`
	DateText    string `json:"dateText"`
	ImageURL    string `json:"imageUrl"`
}

// ImageResponse is the body for POST /api/settings/event-image.
type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type SettingsController struct {
	Logger  *slog.Logger
	Service domain.SettingsService
}

func NewSettingsController(logger *slog.Logger, svc domain.SettingsService) *SettingsController {
	return &SettingsController{Logger: logger, Service: svc}
}

// GetEvent godoc
// @Summary Read the event description
// @Description Public. Returns all-empty fields when nothing has been saved yet.
// @Tags settings
// @Produce json
// @Success 200 {object} domain.EventSettings
// @Router /api/settings/event [get]
func (c *SettingsController) GetEvent(w http.ResponseWriter, r *http.Request) {
	settings, err := c.Service.GetEvent(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, settings)
}

// UpdateEvent godoc
// @Summary Update the event description
// @Description Overwrites the text fields. A blank imageUrl keeps the stored image.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateEventRequest true "Event text fields"
// @Success 200 {object} domain.EventSettings
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/settings/event [put]
func (c *SettingsController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	settings, err := c.Service.UpdateEvent(r.Context(), &domain.EventSettings{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Location:    req.Location,
		DateText:    req.DateText,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, settings)
}

// UploadEventImage godoc
// @Summary Upload the event cover image
// @Description Multipart form with a single "file" field. Stores the file and points imageUrl at its public path.
// @Tags settings
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} ImageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/settings/event-image [post]
func (c *SettingsController) UploadEventImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteError(w, http.StatusBadRequest, domain.ErrEmptyUpload.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	imageURL, err := c.Service.SetEventImage(r.Context(), header.Filename, content, requestBaseURL(r))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ImageResponse{ImageURL: imageURL})
}
