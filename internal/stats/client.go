package stats

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eventlane/server/internal/domain/datetime"
	"github.com/eventlane/server/internal/metrics"
)

// Client talks to the statistics microservice over HTTP. It is used by the
// main service to count public endpoint hits and to resolve view counts.
type Client struct {
	baseURL string
	app     string
	http    *http.Client
}

func NewClient(baseURL, app string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		app:     app,
		http:    &http.Client{Timeout: timeout},
	}
}

// Hit records one request against the tracked URI.
func (c *Client) Hit(ctx context.Context, uri, ip string, at time.Time) error {
	payload, err := json.Marshal(HitDto{
		App:       c.app,
		URI:       uri,
		IP:        ip,
		Timestamp: datetime.FromTime(at),
	})
	if err != nil {
		return fmt.Errorf("encode hit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build hit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.StatsClientErrors.WithLabelValues("hit").Inc()
		return fmt.Errorf("post hit: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusCreated {
		metrics.StatsClientErrors.WithLabelValues("hit").Inc()
		return fmt.Errorf("post hit: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Stats fetches aggregated counters for the window and URIs.
func (c *Client) Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error) {
	values := url.Values{}
	values.Set("start", datetime.FromTime(start).String())
	values.Set("end", datetime.FromTime(end).String())
	if len(uris) > 0 {
		values.Set("uris", strings.Join(uris, ","))
	}
	values.Set("unique", strconv.FormatBool(unique))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build stats request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.StatsClientErrors.WithLabelValues("stats").Inc()
		return nil, fmt.Errorf("get stats: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		metrics.StatsClientErrors.WithLabelValues("stats").Inc()
		return nil, fmt.Errorf("get stats: unexpected status %d", resp.StatusCode)
	}

	var payload []ViewStatsDto
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}

	items := make([]ViewStats, 0, len(payload))
	for _, dto := range payload {
		items = append(items, ViewStats{App: dto.App, URI: dto.URI, Hits: dto.Hits})
	}
	return items, nil
}

// ViewsByURI returns the aggregated hit counts keyed by URI. It satisfies the
// events domain's stats source.
func (c *Client) ViewsByURI(ctx context.Context, start, end time.Time, uris []string, unique bool) (map[string]int64, error) {
	items, err := c.Stats(ctx, start, end, uris, unique)
	if err != nil {
		return nil, err
	}
	views := make(map[string]int64, len(items))
	for _, item := range items {
		views[item.URI] = item.Hits
	}
	return views, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
