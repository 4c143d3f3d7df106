package stats

import (
	"net/http"

	"github.com/eventlane/server/internal/api/middleware"
	"github.com/eventlane/server/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter builds the statistics microservice HTTP handler.
func NewRouter(service *Service, env string, logger zerolog.Logger) http.Handler {
	handler := NewHandler(service, env)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", healthz())
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.Handle("POST /hit", http.HandlerFunc(handler.Hit))
	mux.Handle("GET /stats", http.HandlerFunc(handler.Stats))

	var wrapped http.Handler = mux
	wrapped = metrics.HTTPMiddleware(wrapped)
	wrapped = middleware.RequestLogging(logger)(wrapped)
	wrapped = middleware.CorrelationID(logger)(wrapped)
	return wrapped
}

func healthz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
