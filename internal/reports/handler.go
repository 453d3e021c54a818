package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
	"github.com/vantage-dsp/vantage/internal/rbac"
)

// Handler wires HTTP endpoints for reporting.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   rbac.Guard
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Guard) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers reporting routes. Viewing and exporting are
// separate capabilities.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Require(rbac.PermViewReports)).Get("/summary", h.summary)
	r.With(h.guard.Require(rbac.PermExportReports)).Get("/export", h.export)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("report summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("report export", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	filename := "delivery-summary-" + time.Now().UTC().Format("20060102") + ".json"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	httpx.JSON(w, http.StatusOK, summary)
}
