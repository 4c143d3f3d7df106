package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientHit(t *testing.T) {
	var received HitDto
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/hit", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "eventlane-main", time.Second)
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	err := client.Hit(context.Background(), "/events/1", "10.0.0.1", at)

	require.NoError(t, err)
	require.Equal(t, "eventlane-main", received.App)
	require.Equal(t, "/events/1", received.URI)
	require.Equal(t, "10.0.0.1", received.IP)
	require.Equal(t, at, received.Timestamp.Time())
}

func TestClientHitUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "eventlane-main", time.Second)

	err := client.Hit(context.Background(), "/events/1", "10.0.0.1", time.Now())

	require.Error(t, err)
}

func TestClientStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stats", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("unique"))
		require.Equal(t, "/events/1,/events/2", r.URL.Query().Get("uris"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"app":"eventlane-main","uri":"/events/1","hits":5}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "eventlane-main", time.Second)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	items, err := client.Stats(context.Background(), start, end, []string{"/events/1", "/events/2"}, true)

	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(5), items[0].Hits)
}

func TestClientViewsByURI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"app":"eventlane-main","uri":"/events/1","hits":5},
			{"app":"eventlane-main","uri":"/events/2","hits":12}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "eventlane-main", time.Second)

	views, err := client.ViewsByURI(context.Background(), time.Now().Add(-time.Hour), time.Now(), nil, true)

	require.NoError(t, err)
	require.Equal(t, int64(5), views["/events/1"])
	require.Equal(t, int64(12), views["/events/2"])
}

func TestClientStatsServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "eventlane-main", time.Second)

	_, err := client.Stats(context.Background(), time.Now().Add(-time.Hour), time.Now(), nil, false)

	require.Error(t, err)
}
