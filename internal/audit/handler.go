package audit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
	"github.com/vantage-dsp/vantage/internal/rbac"
)

// Handler serves the login audit trail.
type Handler struct {
	logger *slog.Logger
	trail  *Trail
	guard  rbac.Guard
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, trail *Trail, guard rbac.Guard) *Handler {
	return &Handler{logger: logger, trail: trail, guard: guard}
}

// MountRoutes registers audit routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermViewAuditLog))
		r.Get("/logins", h.listLogins)
	})
}

func (h *Handler) listLogins(w http.ResponseWriter, r *http.Request) {
	limit := int64(100)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	entries, err := h.trail.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("list login audit", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": entries})
}
