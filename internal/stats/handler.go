package stats

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/eventlane/server/internal/api/problem"
	"github.com/eventlane/server/internal/domain/datetime"
	"github.com/eventlane/server/internal/metrics"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HitDto is the wire representation of an endpoint hit.
type HitDto struct {
	App       string            `json:"app"`
	URI       string            `json:"uri"`
	IP        string            `json:"ip"`
	Timestamp datetime.DateTime `json:"timestamp"`
}

// ViewStatsDto is the wire representation of an aggregated counter.
type ViewStatsDto struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

// Handler serves the statistics microservice endpoints.
type Handler struct {
	Service *Service
	Env     string
}

func NewHandler(service *Service, env string) *Handler {
	return &Handler{Service: service, Env: env}
}

func (h *Handler) Hit(w http.ResponseWriter, r *http.Request) {
	var dto HitDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if strings.TrimSpace(dto.App) == "" || strings.TrimSpace(dto.URI) == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request",
			errors.New("app and uri are required"), h.Env)
		return
	}

	hit := EndpointHit{
		App:       dto.App,
		URI:       dto.URI,
		IP:        dto.IP,
		Timestamp: dto.Timestamp.Time(),
	}
	if err := h.Service.Record(r.Context(), hit); err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServer, "Server error", err, h.Env)
		return
	}

	metrics.StatsHitsRecorded.Inc()
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	query, err := parseStatsQuery(r.URL.Query().Get("start"), r.URL.Query().Get("end"),
		r.URL.Query()["uris"], r.URL.Query().Get("unique"))
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	items, err := h.Service.Stats(r.Context(), query)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServer, "Server error", err, h.Env)
		return
	}

	payload := make([]ViewStatsDto, 0, len(items))
	for _, item := range items {
		payload = append(payload, ViewStatsDto{App: item.App, URI: item.URI, Hits: item.Hits})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseStatsQuery(start, end string, uris []string, unique string) (StatsQuery, error) {
	query := StatsQuery{}

	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return query, errors.New("start and end are required")
	}

	parsedStart, err := datetime.Parse(start)
	if err != nil {
		return query, err
	}
	parsedEnd, err := datetime.Parse(end)
	if err != nil {
		return query, err
	}
	query.Start = parsedStart
	query.End = parsedEnd

	for _, raw := range uris {
		for _, part := range strings.Split(raw, ",") {
			if uri := strings.TrimSpace(part); uri != "" {
				query.URIs = append(query.URIs, uri)
			}
		}
	}

	if strings.TrimSpace(unique) != "" {
		parsed, err := strconv.ParseBool(unique)
		if err != nil {
			return query, errors.New("unique must be a boolean")
		}
		query.Unique = parsed
	}

	return query, nil
}
