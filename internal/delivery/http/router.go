// Package http wires controllers into the route table.
package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"inviteapi/internal/delivery/http/controllers"
	"inviteapi/internal/delivery/http/middleware"
	"inviteapi/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Admin routes are wrapped with bearer-token auth; the public invite,
// settings read, and gallery routes are open.
func NewRouter(
	authController *controllers.AuthController,
	inviteController *controllers.InviteController,
	publicController *controllers.PublicInviteController,
	settingsController *controllers.SettingsController,
	photoController *controllers.PhotoController,
	verifier domain.TokenVerifier,
	uploadsDir string,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Liveness
	mux.HandleFunc("GET /api/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("invite api up"))
	})

	// Auth
	mux.HandleFunc("POST /api/auth/login", authController.Login)
	mux.HandleFunc("GET /api/auth/me", auth(authController.Me))

	// Invites (admin)
	mux.HandleFunc("GET /api/invites", auth(inviteController.List))
	mux.HandleFunc("POST /api/invites", auth(inviteController.Create))
	mux.HandleFunc("GET /api/invites/export", auth(inviteController.ExportCSV))
	mux.HandleFunc("PUT /api/invites/{id}", auth(inviteController.Update))
	mux.HandleFunc("DELETE /api/invites/{id}", auth(inviteController.Remove))

	// Invites (guest)
	mux.HandleFunc("GET /api/public/invites/{token}", publicController.GetByToken)
	mux.HandleFunc("POST /api/public/invites/{token}/respond", publicController.Respond)

	// Settings
	mux.HandleFunc("GET /api/settings/invite-expiration", auth(inviteController.GlobalExpiration))
	mux.HandleFunc("PUT /api/settings/invite-expiration", auth(inviteController.SetGlobalExpiration))
	mux.HandleFunc("GET /api/settings/event", settingsController.GetEvent)
	mux.HandleFunc("PUT /api/settings/event", auth(settingsController.UpdateEvent))
	mux.HandleFunc("POST /api/settings/event-image", auth(settingsController.UploadEventImage))

	// Gallery
	mux.HandleFunc("GET /api/photos", photoController.List)
	mux.HandleFunc("POST /api/photos/upload", photoController.Upload)
	mux.HandleFunc("GET /api/photos/stream", photoController.StreamEvents)

	// Static uploads
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
