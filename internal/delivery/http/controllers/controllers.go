// Package controllers holds the HTTP handlers. Each controller wraps one
// service; request DTOs live next to the handlers that decode them.
package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"inviteapi/internal/delivery/http/helpers"
	"inviteapi/internal/domain"
)

// writeDomainError maps domain sentinel errors to status codes per the API
// contract. Anything unrecognized is a storage/server failure: logged and
// reported as a generic 500 so internals don't leak.
func writeDomainError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInviteExpired),
		errors.Is(err, domain.ErrEmptyUpload),
		errors.Is(err, domain.ErrUnsupportedUpload):
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInviteNotFound):
		helpers.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		helpers.WriteError(w, http.StatusUnauthorized, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requestBaseURL rebuilds the externally visible base URL of the request,
// honoring X-Forwarded-Proto when running behind a proxy.
func requestBaseURL(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	return scheme + "://" + r.Host
}
