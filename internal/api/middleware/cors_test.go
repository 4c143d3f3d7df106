package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eventlane/server/internal/config"
)

func corsRequest(handler http.Handler, method, origin string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/events", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowAll(t *testing.T) {
	handler := CORS(config.CORSConfig{AllowAllOrigins: true}, zerolog.Nop())(okHandler())

	rec := corsRequest(handler, "GET", "https://app.example.com")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWhitelist(t *testing.T) {
	cfg := config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}
	handler := CORS(cfg, zerolog.Nop())(okHandler())

	allowed := corsRequest(handler, "GET", "https://APP.example.com")
	require.Equal(t, "https://APP.example.com", allowed.Header().Get("Access-Control-Allow-Origin"))

	rejected := corsRequest(handler, "GET", "https://evil.example.com")
	require.Empty(t, rejected.Header().Get("Access-Control-Allow-Origin"))
	// The request itself still goes through; the browser enforces CORS.
	require.Equal(t, http.StatusOK, rejected.Code)
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(config.CORSConfig{AllowAllOrigins: true}, zerolog.Nop())(okHandler())

	rec := corsRequest(handler, "OPTIONS", "https://app.example.com")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	require.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSSameOriginPassthrough(t *testing.T) {
	handler := CORS(config.CORSConfig{AllowAllOrigins: true}, zerolog.Nop())(okHandler())

	rec := corsRequest(handler, "GET", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
