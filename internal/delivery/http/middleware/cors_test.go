package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"http://localhost:5173", "https://event.example.com/"}, next)

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantAllowed string
	}{
		{
			name:        "allowed origin",
			method:      http.MethodGet,
			origin:      "http://localhost:5173",
			wantStatus:  http.StatusOK,
			wantAllowed: "http://localhost:5173",
		},
		{
			name:        "trailing slash normalized in config",
			method:      http.MethodGet,
			origin:      "https://event.example.com",
			wantStatus:  http.StatusOK,
			wantAllowed: "https://event.example.com",
		},
		{
			name:       "unknown origin gets no cors headers",
			method:     http.MethodGet,
			origin:     "https://evil.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:        "preflight allowed origin",
			method:      http.MethodOptions,
			origin:      "http://localhost:5173",
			wantStatus:  http.StatusNoContent,
			wantAllowed: "http://localhost:5173",
		},
		{
			name:       "preflight unknown origin",
			method:     http.MethodOptions,
			origin:     "https://evil.example.com",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://test/api/invites", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowed, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllowed != "" {
				assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
			}
			if tt.method == http.MethodOptions && tt.wantAllowed != "" {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "DELETE")
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			}
		})
	}
}
