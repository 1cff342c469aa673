package transport

import (
	"net/http"

	"retailgenie/internal/apperr"
	"retailgenie/internal/middleware"
	"retailgenie/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest carries the reset request email.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// AuthHandler handles HTTP requests for authentication operations
type AuthHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// RegisterRoutes declares the auth route table: registration, login, and
// forgot-password are public; profile and refresh are gated.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authGate func(http.Handler) http.Handler) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Get("/profile", h.Profile)
			r.Post("/refresh", h.Refresh)
		})
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	token, user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.logger.Debug("Registration failed", zap.Error(err))
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("User registered", zap.String("user_id", user.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("Login failed", zap.Error(err))
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", user.ID))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout is a stateless accept: tokens expire on their own.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.RespondNoContent(w)
}

// ForgotPassword accepts the request without revealing whether the
// account exists; delivery is an external collaborator.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "If the account exists, reset instructions have been sent",
	})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		middleware.RespondWithError(w, apperr.Unauthenticated("authentication required"))
		return
	}

	user, err := h.auth.GetUser(r.Context(), principal.UserID)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		middleware.RespondWithError(w, apperr.Unauthenticated("authentication required"))
		return
	}

	token, err := h.auth.Refresh(*principal)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
	})
}
