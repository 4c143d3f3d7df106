package stats

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestHandler(repo Repository) *Handler {
	return NewHandler(NewService(repo, zerolog.Nop()), "test")
}

func TestHitEndpoint(t *testing.T) {
	var saved EndpointHit
	repo := &mockRepository{
		saveHitFn: func(ctx context.Context, hit EndpointHit) error {
			saved = hit
			return nil
		},
	}
	handler := newTestHandler(repo)

	body := `{"app":"eventlane-main","uri":"/events/1","ip":"10.0.0.1","timestamp":"2024-06-01 12:00:00"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/hit", strings.NewReader(body))

	handler.Hit(rec, req)

	require.Equal(t, 201, rec.Code)
	require.Equal(t, "eventlane-main", saved.App)
	require.Equal(t, "/events/1", saved.URI)
	require.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), saved.Timestamp)
}

func TestHitEndpointRejectsMissingFields(t *testing.T) {
	handler := newTestHandler(&mockRepository{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/hit", strings.NewReader(`{"ip":"10.0.0.1"}`))

	handler.Hit(rec, req)

	require.Equal(t, 400, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestHitEndpointRejectsBadJSON(t *testing.T) {
	handler := newTestHandler(&mockRepository{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/hit", strings.NewReader(`{not json`))

	handler.Hit(rec, req)

	require.Equal(t, 400, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	var gotQuery StatsQuery
	repo := &mockRepository{
		statsFn: func(ctx context.Context, query StatsQuery) ([]ViewStats, error) {
			gotQuery = query
			return []ViewStats{
				{App: "eventlane-main", URI: "/events/2", Hits: 20},
				{App: "eventlane-main", URI: "/events/1", Hits: 5},
			}, nil
		},
	}
	handler := newTestHandler(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET",
		"/stats?start=2024-06-01+00:00:00&end=2024-06-30+00:00:00&uris=/events/1,/events/2&unique=true", nil)

	handler.Stats(rec, req)

	require.Equal(t, 200, rec.Code)
	require.True(t, gotQuery.Unique)
	require.Equal(t, []string{"/events/1", "/events/2"}, gotQuery.URIs)
	require.Contains(t, rec.Body.String(), `"hits":20`)
}

func TestStatsEndpointRequiresWindow(t *testing.T) {
	handler := newTestHandler(&mockRepository{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats?start=2024-06-01+00:00:00", nil)

	handler.Stats(rec, req)

	require.Equal(t, 400, rec.Code)
}

func TestStatsEndpointInvertedRange(t *testing.T) {
	handler := newTestHandler(&mockRepository{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET",
		"/stats?start=2024-06-30+00:00:00&end=2024-06-01+00:00:00", nil)

	handler.Stats(rec, req)

	require.Equal(t, 400, rec.Code)
}
