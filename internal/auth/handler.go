package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vantage-dsp/vantage/internal/observability"
	"github.com/vantage-dsp/vantage/internal/platform/httpx"
	"github.com/vantage-dsp/vantage/internal/shared"
	"github.com/vantage-dsp/vantage/jobs"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	manager   *Manager
	csrf      *shared.CSRFManager
	auditJobs *jobs.Client
	metrics   *observability.Metrics
	validator *validator.Validate
}

// NewHandler constructs a Handler instance. auditJobs and metrics may be
// nil to disable login auditing and metrics respectively.
func NewHandler(logger *slog.Logger, manager *Manager, csrf *shared.CSRFManager, auditJobs *jobs.Client, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		manager:   manager,
		csrf:      csrf,
		auditJobs: auditJobs,
		metrics:   metrics,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/session", h.showSession)
}

type sessionView struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	User            *User  `json:"user"`
	RoleDisplayName string `json:"role_display_name,omitempty"`
	Error           string `json:"error,omitempty"`
	IsLoading       bool   `json:"is_loading"`
}

type loginResponse struct {
	User            *User  `json:"user"`
	RoleDisplayName string `json:"role_display_name"`
	AccessToken     string `json:"access_token,omitempty"`
	CSRFToken       string `json:"csrf_token,omitempty"`
}

// showLogin is the redirect target for unauthenticated requests.
func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": "submit credentials via POST /auth/login",
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())
	if store == nil {
		h.logger.Error("session missing during login")
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	var creds Credentials
	if err := httpx.DecodeJSON(r, &creds); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(creds); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "username and password are required")
		return
	}

	result, err := store.Login(r.Context(), creds)
	if err != nil {
		h.metrics.CountLogin("failure")
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusUnauthorized, "Invalid Credentials", store.Error())
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	h.metrics.CountLogin("success")

	csrfToken := ""
	if h.csrf != nil {
		token, err := h.csrf.EnsureToken(r.Context(), store.SessionID())
		if err != nil {
			h.logger.Warn("ensure csrf token", slog.Any("error", err))
		} else {
			csrfToken = token
		}
	}

	if _, err := h.auditJobs.EnqueueLoginAudit(r.Context(), jobs.LoginAuditPayload{
		UserID:    result.User.ID,
		Username:  result.User.Username,
		Role:      result.User.Role,
		At:        time.Now().UTC(),
		RemoteIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}); err != nil {
		h.logger.Warn("enqueue login audit", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		User:            result.User,
		RoleDisplayName: store.RoleDisplayName(),
		AccessToken:     result.AccessToken,
		CSRFToken:       csrfToken,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())
	if store != nil {
		store.Logout(r.Context())
	}
	if h.manager != nil {
		h.manager.ClearCookie(w)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) showSession(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())
	if store == nil {
		httpx.JSON(w, http.StatusOK, sessionView{})
		return
	}
	httpx.JSON(w, http.StatusOK, sessionView{
		IsAuthenticated: store.Authenticated(),
		User:            store.CurrentUser(),
		RoleDisplayName: store.RoleDisplayName(),
		Error:           store.Error(),
		IsLoading:       store.Loading(),
	})
}
