// Package stats implements the endpoint-hit statistics microservice and the
// client the main service uses to talk to it.
package stats

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidRange is returned when the requested aggregation window is
	// missing or inverted.
	ErrInvalidRange = errors.New("invalid stats range")
)

// EndpointHit is a single recorded request against a tracked endpoint.
type EndpointHit struct {
	App       string
	URI       string
	IP        string
	Timestamp time.Time
}

// ViewStats is an aggregated hit count for one (app, uri) pair.
type ViewStats struct {
	App  string
	URI  string
	Hits int64
}

// StatsQuery describes an aggregation request.
type StatsQuery struct {
	Start  time.Time
	End    time.Time
	URIs   []string
	Unique bool
}

type Repository interface {
	SaveHit(ctx context.Context, hit EndpointHit) error
	Stats(ctx context.Context, query StatsQuery) ([]ViewStats, error)
}
