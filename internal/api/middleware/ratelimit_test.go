package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eventlane/server/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(t *testing.T, handler http.Handler, path, ip string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = ip + ":12345"
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitEnforcesPublicTier(t *testing.T) {
	limit := RateLimit(config.RateLimitConfig{PublicPerMinute: 2})
	handler := limit(okHandler())

	require.Equal(t, http.StatusOK, doRequest(t, handler, "/events", "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, doRequest(t, handler, "/events", "10.0.0.1").Code)

	rec := doRequest(t, handler, "/events", "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimitIsPerClient(t *testing.T) {
	limit := RateLimit(config.RateLimitConfig{PublicPerMinute: 1})
	handler := limit(okHandler())

	require.Equal(t, http.StatusOK, doRequest(t, handler, "/events", "10.0.0.1").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(t, handler, "/events", "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, doRequest(t, handler, "/events", "10.0.0.2").Code)
}

func TestRateLimitZeroMeansUnlimited(t *testing.T) {
	limit := RateLimit(config.RateLimitConfig{PublicPerMinute: 0})
	handler := limit(okHandler())

	for range 10 {
		require.Equal(t, http.StatusOK, doRequest(t, handler, "/events", "10.0.0.1").Code)
	}
}

func TestRateLimitSkipsHealthEndpoints(t *testing.T) {
	limit := RateLimit(config.RateLimitConfig{PublicPerMinute: 1})
	handler := limit(okHandler())

	for range 5 {
		require.Equal(t, http.StatusOK, doRequest(t, handler, "/healthz", "10.0.0.1").Code)
		require.Equal(t, http.StatusOK, doRequest(t, handler, "/readyz", "10.0.0.1").Code)
	}
}

func TestRateLimitTierSeparation(t *testing.T) {
	cfg := config.RateLimitConfig{PublicPerMinute: 1, LoginPerMinute: 2}
	limit := RateLimit(cfg)
	loginTier := WithRateLimitTierHandler(TierLogin)

	public := limit(okHandler())
	login := loginTier(limit(okHandler()))

	// Exhaust the public budget; login keeps its own counter.
	require.Equal(t, http.StatusOK, doRequest(t, public, "/events", "10.0.0.1").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(t, public, "/events", "10.0.0.1").Code)

	require.Equal(t, http.StatusOK, doRequest(t, login, "/admin/auth/login", "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, doRequest(t, login, "/admin/auth/login", "10.0.0.1").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(t, login, "/admin/auth/login", "10.0.0.1").Code)
}

func TestClientIPPrefersForwardingHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/events", nil)
	req.RemoteAddr = "192.0.2.1:4242"
	require.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Real-IP", "203.0.113.9")
	require.Equal(t, "203.0.113.9", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	require.Equal(t, "198.51.100.7", ClientIP(req))
}
