package controllers

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"time"

	"inviteapi/internal/delivery/http/helpers"
	"inviteapi/internal/domain"
)

// CreateInviteRequest is the request body for POST /api/invites.
// Name and phone are validated by the service.
type CreateInviteRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateInviteRequest is the request body for PUT /api/invites/{id}.
// All fields optional; empty fields leave the invite unchanged.
type UpdateInviteRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// ExpirationRequest is the request body for PUT /api/settings/invite-expiration.
type ExpirationRequest struct {
	ExpiresAt time.Time `json:"expiresAt"`
}

// Validate implements Validator.
func (e ExpirationRequest) Validate() []string {
	if e.ExpiresAt.IsZero() {
		return []string{"expiresAt is required"}
	}
	return nil
}

// ExpirationResponse is the body for the invite-expiration endpoints.
type ExpirationResponse struct {
	ExpiresAt time.Time `json:"expiresAt"`
}

type InviteController struct {
	Logger  *slog.Logger
	Service domain.InviteService
	// PublicURL is the frontend base for guest links in the CSV export.
	PublicURL string
}

func NewInviteController(logger *slog.Logger, svc domain.InviteService, publicURL string) *InviteController {
	return &InviteController{Logger: logger, Service: svc, PublicURL: publicURL}
}

// List godoc
// @Summary List all invites
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Invite
// @Failure 401 {object} helpers.ErrorResponse
// @Router /api/invites [get]
func (c *InviteController) List(w http.ResponseWriter, r *http.Request) {
	invs, err := c.Service.List(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, invs)
}

// Create godoc
// @Summary Create an invite
// @Description Creates a pending invite with a fresh guest token. The expiration adopts the current global expiration, else a week from now.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInviteRequest true "Guest name and phone"
// @Success 201 {object} domain.Invite
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Router /api/invites [post]
func (c *InviteController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.Create(r.Context(), req.Name, req.Phone)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, inv)
}

// Update godoc
// @Summary Update an invite
// @Description Partial update of name, phone, or status. Empty fields are left unchanged; unknown status strings are ignored.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Param body body UpdateInviteRequest true "Fields to change"
// @Success 200 {object} domain.Invite
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Router /api/invites/{id} [put]
func (c *InviteController) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateInviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.Update(r.Context(), r.PathValue("id"), req.Name, req.Phone, req.Status)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inv)
}

// Remove godoc
// @Summary Delete an invite
// @Tags invites
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Success 204
// @Failure 404 {object} helpers.ErrorResponse
// @Router /api/invites/{id} [delete]
func (c *InviteController) Remove(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GlobalExpiration godoc
// @Summary Read the shared invite expiration
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ExpirationResponse
// @Success 204 "no expiration set"
// @Router /api/settings/invite-expiration [get]
func (c *InviteController) GlobalExpiration(w http.ResponseWriter, r *http.Request) {
	expiresAt, err := c.Service.GlobalExpiration(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	if expiresAt.IsZero() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ExpirationResponse{ExpiresAt: expiresAt})
}

// SetGlobalExpiration godoc
// @Summary Set the shared invite expiration
// @Description Overwrites the expiration on every invite at once.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ExpirationRequest true "New cutoff (UTC)"
// @Success 200 {object} ExpirationResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/settings/invite-expiration [put]
func (c *InviteController) SetGlobalExpiration(w http.ResponseWriter, r *http.Request) {
	var req ExpirationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	utc := req.ExpiresAt.UTC()
	if err := c.Service.SetGlobalExpiration(r.Context(), utc); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ExpirationResponse{ExpiresAt: utc})
}

// ExportCSV godoc
// @Summary Export invites as CSV
// @Description One row per invite with the guest link, for the out-of-band WhatsApp reminder flow.
// @Tags invites
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV body"
// @Router /api/invites/export [get]
func (c *InviteController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	invs, err := c.Service.List(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="invites.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "name", "phone", "token", "status", "expiresAt", "inviteLink"})
	for _, inv := range invs {
		expires := ""
		if !inv.ExpiresAt.IsZero() {
			expires = inv.ExpiresAt.UTC().Format(time.RFC3339)
		}
		_ = cw.Write([]string{
			inv.ID,
			inv.Name,
			inv.Phone,
			inv.Token,
			string(inv.Status),
			expires,
			c.PublicURL + "/invite/" + inv.Token,
		})
	}
	cw.Flush()
}
