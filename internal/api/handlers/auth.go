package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/eventlane/server/internal/api/problem"
	"github.com/eventlane/server/internal/auth"
	"github.com/eventlane/server/internal/config"
)

type AuthHandler struct {
	Manager *auth.JWTManager
	Cfg     config.AuthConfig
	Env     string
}

func NewAuthHandler(manager *auth.JWTManager, cfg config.AuthConfig, env string) *AuthHandler {
	return &AuthHandler{Manager: manager, Cfg: cfg, Env: env}
}

// Login exchanges the configured operator credentials for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	if req.Username != h.Cfg.AdminUser {
		h.rejectLogin(w, r, req.Username)
		return
	}
	if err := auth.VerifyPassword(h.Cfg.AdminPassHash, req.Password); err != nil {
		h.rejectLogin(w, r, req.Username)
		return
	}

	token, err := h.Manager.Generate(req.Username, auth.RoleAdmin)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServer, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *AuthHandler) rejectLogin(w http.ResponseWriter, r *http.Request, username string) {
	zerolog.Ctx(r.Context()).Warn().Str("username", username).Msg("admin login rejected")
	problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Bad credentials", auth.ErrBadCredentials, h.Env)
}
