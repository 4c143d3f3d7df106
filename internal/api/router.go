package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/eventlane/server/internal/api/handlers"
	"github.com/eventlane/server/internal/api/middleware"
	"github.com/eventlane/server/internal/audit"
	"github.com/eventlane/server/internal/auth"
	"github.com/eventlane/server/internal/config"
	"github.com/eventlane/server/internal/domain/categories"
	"github.com/eventlane/server/internal/domain/comments"
	"github.com/eventlane/server/internal/domain/events"
	"github.com/eventlane/server/internal/domain/requests"
	"github.com/eventlane/server/internal/domain/users"
	"github.com/eventlane/server/internal/metrics"
	"github.com/eventlane/server/internal/stats"
	"github.com/eventlane/server/internal/storage/postgres"
)

// Deps wires external resources into the router.
type Deps struct {
	Pool      *pgxpool.Pool
	Stats     *stats.Client
	Version   string
	GitCommit string
	BuildDate string
}

// NewRouter builds the main service HTTP handler: admin, private, and public
// route groups behind the shared middleware chain.
func NewRouter(cfg config.Config, deps Deps, logger zerolog.Logger) (http.Handler, error) {
	repo, err := postgres.NewRepository(deps.Pool)
	if err != nil {
		return nil, err
	}

	env := cfg.Environment

	usersService := users.NewService(repo.Users(), logger)
	categoriesService := categories.NewService(repo.Categories(), logger)
	eventsService := events.NewService(repo.Events(), repo.Users(), repo.Categories(), deps.Stats, logger)
	requestsService := requests.NewService(repo.Requests(), repo.Requests(), repo.Events(), repo.Users(), logger)
	commentsService := comments.NewService(repo.Comments(), repo.Events(), repo.Users(), logger)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.AppName)

	authHandler := handlers.NewAuthHandler(jwtManager, cfg.Auth, env)
	usersHandler := handlers.NewUsersHandler(usersService, env)
	categoriesHandler := handlers.NewCategoriesHandler(categoriesService, env)
	eventsHandler := handlers.NewEventsHandler(eventsService, env)
	requestsHandler := handlers.NewRequestsHandler(requestsService, env)
	commentsHandler := handlers.NewCommentsHandler(commentsService, env)
	health := handlers.NewHealthChecker(deps.Pool, deps.Version)

	adminAuth := middleware.AdminAuth(jwtManager, env)
	adminAudit := middleware.AdminAudit(audit.NewLogger(logger))
	limit := middleware.RateLimit(cfg.RateLimit)
	adminTier := middleware.WithRateLimitTierHandler(middleware.TierAdmin)
	loginTier := middleware.WithRateLimitTierHandler(middleware.TierLogin)

	// The tier wrapper must run before the limiter so the limiter sees it.
	admin := func(h http.HandlerFunc) http.Handler {
		return adminTier(limit(adminAuth(adminAudit(h))))
	}
	login := func(h http.HandlerFunc) http.Handler {
		return loginTier(limit(h))
	}
	public := func(h http.HandlerFunc) http.Handler {
		return limit(h)
	}

	mux := http.NewServeMux()

	// Operational endpoints.
	mux.Handle("GET /healthz", health.Health())
	mux.Handle("GET /readyz", health.Ready())
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.Handle("GET /version", VersionHandler(deps.Version, deps.GitCommit, deps.BuildDate))

	// Admin API.
	mux.Handle("POST /admin/auth/login", login(authHandler.Login))
	mux.Handle("POST /admin/users", admin(usersHandler.Create))
	mux.Handle("GET /admin/users", admin(usersHandler.List))
	mux.Handle("DELETE /admin/users/{userId}", admin(usersHandler.Delete))
	mux.Handle("POST /admin/categories", admin(categoriesHandler.Create))
	mux.Handle("PATCH /admin/categories/{catId}", admin(categoriesHandler.Update))
	mux.Handle("DELETE /admin/categories/{catId}", admin(categoriesHandler.Delete))
	mux.Handle("GET /admin/events", admin(eventsHandler.SearchAdmin))
	mux.Handle("PATCH /admin/events/{eventId}", admin(eventsHandler.UpdateAdmin))
	mux.Handle("DELETE /admin/comments/{commentId}", admin(commentsHandler.DeleteAdmin))

	// Private API.
	mux.Handle("GET /users/{userId}/events", public(eventsHandler.ListOwn))
	mux.Handle("POST /users/{userId}/events", public(eventsHandler.Create))
	mux.Handle("GET /users/{userId}/events/{eventId}", public(eventsHandler.GetOwn))
	mux.Handle("PATCH /users/{userId}/events/{eventId}", public(eventsHandler.UpdateOwn))
	mux.Handle("GET /users/{userId}/events/{eventId}/requests", public(requestsHandler.ListForEvent))
	mux.Handle("PATCH /users/{userId}/events/{eventId}/requests", public(requestsHandler.UpdateStatuses))
	mux.Handle("GET /users/{userId}/requests", public(requestsHandler.ListOwn))
	mux.Handle("POST /users/{userId}/requests", public(requestsHandler.Create))
	mux.Handle("PATCH /users/{userId}/requests/{requestId}/cancel", public(requestsHandler.Cancel))
	mux.Handle("POST /users/{userId}/comments", public(commentsHandler.Create))
	mux.Handle("PATCH /users/{userId}/comments/{commentId}", public(commentsHandler.Update))
	mux.Handle("DELETE /users/{userId}/comments/{commentId}", public(commentsHandler.Delete))

	// Public API.
	mux.Handle("GET /categories", public(categoriesHandler.List))
	mux.Handle("GET /categories/{catId}", public(categoriesHandler.Get))
	mux.Handle("GET /events", public(eventsHandler.SearchPublic))
	mux.Handle("GET /events/{id}", public(eventsHandler.GetPublic))
	mux.Handle("GET /events/{id}/comments", public(commentsHandler.ListPublic))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler, nil
}
