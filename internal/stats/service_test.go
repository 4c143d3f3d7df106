package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	saveHitFn func(ctx context.Context, hit EndpointHit) error
	statsFn   func(ctx context.Context, query StatsQuery) ([]ViewStats, error)
}

func (m *mockRepository) SaveHit(ctx context.Context, hit EndpointHit) error {
	if m.saveHitFn != nil {
		return m.saveHitFn(ctx, hit)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) Stats(ctx context.Context, query StatsQuery) ([]ViewStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, query)
	}
	return nil, errors.New("not implemented")
}

func TestRecordPersistsHit(t *testing.T) {
	var saved EndpointHit
	repo := &mockRepository{
		saveHitFn: func(ctx context.Context, hit EndpointHit) error {
			saved = hit
			return nil
		},
	}
	service := NewService(repo, zerolog.Nop())

	hit := EndpointHit{
		App:       "eventlane-main",
		URI:       "/events/1",
		IP:        "10.0.0.1",
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, service.Record(context.Background(), hit))
	require.Equal(t, hit, saved)
}

func TestStatsRequiresWindow(t *testing.T) {
	service := NewService(&mockRepository{}, zerolog.Nop())

	_, err := service.Stats(context.Background(), StatsQuery{})
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = service.Stats(context.Background(), StatsQuery{
		Start: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestStatsDelegatesToRepository(t *testing.T) {
	var gotQuery StatsQuery
	repo := &mockRepository{
		statsFn: func(ctx context.Context, query StatsQuery) ([]ViewStats, error) {
			gotQuery = query
			return []ViewStats{{App: "eventlane-main", URI: "/events/1", Hits: 9}}, nil
		},
	}
	service := NewService(repo, zerolog.Nop())

	query := StatsQuery{
		Start:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		URIs:   []string{"/events/1"},
		Unique: true,
	}
	items, err := service.Stats(context.Background(), query)

	require.NoError(t, err)
	require.Equal(t, query, gotQuery)
	require.Len(t, items, 1)
	require.Equal(t, int64(9), items[0].Hits)
}
