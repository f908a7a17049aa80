// Command server runs the invitation API.
//
// @title Invite API
// @version 1.0
// @description Event invitation manager: admin-created guest invites with token links, shared photo gallery, and event settings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"inviteapi/config"
	tokenauth "inviteapi/internal/adapters/auth"
	"inviteapi/internal/adapters/storage"
	delivery "inviteapi/internal/delivery/http"
	"inviteapi/internal/delivery/http/controllers"
	"inviteapi/internal/delivery/http/middleware"
	"inviteapi/internal/repository/postgres"
	"inviteapi/internal/services"
)

const serviceTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("opening database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("pinging database", "err", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("running migrations", "err", err)
		os.Exit(1)
	}

	tokens := tokenauth.NewTokenManager(
		cfg.JWTKey,
		cfg.JWTIssuer,
		cfg.JWTAudience,
		time.Duration(cfg.JWTExpiryMinutes)*time.Minute,
	)
	files, err := storage.NewDiskStore(cfg.UploadsDir)
	if err != nil {
		logger.Error("preparing uploads directory", "err", err, "dir", cfg.UploadsDir)
		os.Exit(1)
	}
	stream := services.NewBroadcaster()

	inviteSvc := services.NewInviteService(postgres.NewInviteRepository(db), serviceTimeout)
	settingsSvc := services.NewSettingsService(postgres.NewSettingsRepository(db), files, serviceTimeout)
	photoSvc := services.NewPhotoService(postgres.NewPhotoRepository(db), files, stream, serviceTimeout)
	authSvc := services.NewAuthService(cfg.AdminEmail, cfg.AdminPassword, tokens)

	router := delivery.NewRouter(
		controllers.NewAuthController(logger, authSvc),
		controllers.NewInviteController(logger, inviteSvc, cfg.PublicURL),
		controllers.NewPublicInviteController(logger, inviteSvc),
		controllers.NewSettingsController(logger, settingsSvc),
		controllers.NewPhotoController(logger, photoSvc, stream),
		tokens,
		cfg.UploadsDir,
	)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.Logging(logger, router))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
		// No WriteTimeout: the gallery SSE stream stays open indefinitely.
	}

	logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
