package transport

import (
	"net/http"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/middleware"
	"retailgenie/internal/repository"
	"retailgenie/internal/sample"
	"retailgenie/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdatePreferencesRequest carries the editable preference fields.
type UpdatePreferencesRequest struct {
	Theme         *string `json:"theme"`
	Currency      *string `json:"currency"`
	Notifications *bool   `json:"notifications"`
	Newsletter    *bool   `json:"newsletter"`
}

// ProfileHandler serves the signed-in user's profile and preferences
type ProfileHandler struct {
	auth        service.AuthService
	preferences repository.PreferenceRepository
	logger      *zap.Logger
}

func NewProfileHandler(auth service.AuthService, preferences repository.PreferenceRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{auth: auth, preferences: preferences, logger: logger}
}

func (h *ProfileHandler) RegisterRoutes(r chi.Router, authGate, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/profile", func(r chi.Router) {
		r.With(optionalAuth).Get("/preferences", h.GetPreferences)

		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Put("/preferences", h.UpdatePreferences)
		})
	})
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
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

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		middleware.RespondWithError(w, apperr.Unauthenticated("authentication required"))
		return
	}

	var patch repository.UserPatch
	if err := middleware.DecodeAndValidate(r, &patch); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), principal.UserID, patch)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("Profile updated", zap.String("user_id", principal.UserID))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

func (h *ProfileHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		prefs := sample.Preferences("guest")
		middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"preferences": prefs,
			"mode":        sample.ModeFallback,
		})
		return
	}

	prefs, err := h.preferences.Get(r.Context(), principal.UserID)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"preferences": prefs,
	})
}

func (h *ProfileHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		middleware.RespondWithError(w, apperr.Unauthenticated("authentication required"))
		return
	}

	var req UpdatePreferencesRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	prefs, err := h.preferences.Get(r.Context(), principal.UserID)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}
	applyPreferencePatch(prefs, req)

	if err := h.preferences.Save(r.Context(), prefs); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"preferences": prefs,
	})
}

func applyPreferencePatch(prefs *domain.Preferences, req UpdatePreferencesRequest) {
	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}
	if req.Currency != nil {
		prefs.Currency = *req.Currency
	}
	if req.Notifications != nil {
		prefs.Notifications = *req.Notifications
	}
	if req.Newsletter != nil {
		prefs.Newsletter = *req.Newsletter
	}
}
