package controllers

import (
	"log/slog"
	"net/http"

	"inviteapi/internal/delivery/http/helpers"
	"inviteapi/internal/domain"
)

// RespondRequest is the request body for POST /api/public/invites/{token}/respond.
type RespondRequest struct {
	Status string `json:"status"`
}

// PublicInviteController serves the unauthenticated guest flow. The token in
// the URL is the only credential.
type PublicInviteController struct {
	Logger  *slog.Logger
	Service domain.InviteService
}

func NewPublicInviteController(logger *slog.Logger, svc domain.InviteService) *PublicInviteController {
	return &PublicInviteController{Logger: logger, Service: svc}
}

// GetByToken godoc
// @Summary Look up an invite by guest token
// @Tags public
// @Produce json
// @Param token path string true "Guest token"
// @Success 200 {object} domain.Invite
// @Failure 400 {object} helpers.ErrorResponse "invite has expired"
// @Failure 404 {object} helpers.ErrorResponse
// @Router /api/public/invites/{token} [get]
func (c *PublicInviteController) GetByToken(w http.ResponseWriter, r *http.Request) {
	inv, err := c.Service.GetByToken(r.Context(), r.PathValue("token"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inv)
}

// Respond godoc
// @Summary Record a guest response
// @Description Accepts status "confirmed" or "rejected". Responding again overwrites the previous answer.
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Guest token"
// @Param body body RespondRequest true "New status"
// @Success 200 {object} domain.Invite
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Router /api/public/invites/{token}/respond [post]
func (c *PublicInviteController) Respond(w http.ResponseWriter, r *http.Request) {
	var req RespondRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.Respond(r.Context(), r.PathValue("token"), req.Status)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inv)
}
