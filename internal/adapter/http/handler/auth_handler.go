package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/recyclo/cashbook/internal/adapter/http/dto"
	"github.com/recyclo/cashbook/internal/adapter/http/middleware"
	"github.com/recyclo/cashbook/internal/infrastructure/metrics"
	"github.com/recyclo/cashbook/internal/usecase"
)

// UserService defines the behavior needed by AuthHandler.
type UserService interface {
	Login(ctx context.Context, username, password string) (*usecase.LoginResult, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	userUC  UserService
	metrics *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler. Metrics may be nil.
func NewAuthHandler(userUC UserService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{userUC: userUC, metrics: m}
}

// Login authenticates a user and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.userUC.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if h.metrics != nil {
			h.metrics.AuthAttempts.WithLabelValues("failure").Inc()
		}

		status := mapDomainError(err)
		writeError(w, status, "login failed", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues("success").Inc()
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.UserFromDomain(result.User),
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
