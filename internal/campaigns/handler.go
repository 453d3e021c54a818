package campaigns

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
	"github.com/vantage-dsp/vantage/internal/rbac"
)

// Handler wires HTTP endpoints for campaigns, ad groups and creatives.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   rbac.Guard
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Guard) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers campaign routes with their required permissions.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Require(rbac.PermViewCampaigns)).Get("/", h.listCampaigns)
	r.With(h.guard.Require(rbac.PermViewCampaigns)).Get("/{id}", h.getCampaign)
	r.With(h.guard.Require(rbac.PermCreateCampaign)).Post("/", h.createCampaign)
	r.With(h.guard.Require(rbac.PermEditCampaign)).Put("/{id}", h.updateCampaign)
	r.With(h.guard.Require(rbac.PermDeleteCampaign)).Delete("/{id}", h.deleteCampaign)

	r.With(h.guard.Require(rbac.PermViewAdGroups)).Get("/{id}/adgroups", h.listAdGroups)
	r.With(h.guard.Require(rbac.PermCreateAdGroup)).Post("/{id}/adgroups", h.createAdGroup)
	r.With(h.guard.Require(rbac.PermEditAdGroup)).Put("/adgroups/{id}", h.updateAdGroup)
	r.With(h.guard.Require(rbac.PermDeleteAdGroup)).Delete("/adgroups/{id}", h.deleteAdGroup)

	r.With(h.guard.Require(rbac.PermViewCreatives)).Get("/adgroups/{id}/creatives", h.listCreatives)
	r.With(h.guard.Require(rbac.PermCreateCreative)).Post("/adgroups/{id}/creatives", h.createCreative)
	r.With(h.guard.Require(rbac.PermEditCreative)).Put("/creatives/{id}", h.updateCreative)
	r.With(h.guard.Require(rbac.PermApproveCreative)).Post("/creatives/{id}/approve", h.approveCreative)
	r.With(h.guard.Require(rbac.PermDeleteCreative)).Delete("/creatives/{id}", h.deleteCreative)
}

func (h *Handler) listCampaigns(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListCampaigns(r.Context())
	if err != nil {
		h.logger.Error("list campaigns", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"campaigns": items})
}

func (h *Handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) createCampaign(w http.ResponseWriter, r *http.Request) {
	var req CampaignRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	item, err := h.service.CreateCampaign(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) updateCampaign(w http.ResponseWriter, r *http.Request) {
	var req CampaignRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	item, err := h.service.UpdateCampaign(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCampaign(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listAdGroups(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAdGroups(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"adgroups": items})
}

func (h *Handler) createAdGroup(w http.ResponseWriter, r *http.Request) {
	var req AdGroupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	item, err := h.service.CreateAdGroup(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) updateAdGroup(w http.ResponseWriter, r *http.Request) {
	var req AdGroupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	item, err := h.service.UpdateAdGroup(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) deleteAdGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAdGroup(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCreatives(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListCreatives(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"creatives": items})
}

func (h *Handler) createCreative(w http.ResponseWriter, r *http.Request) {
	var req CreativeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	item, err := h.service.CreateCreative(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) updateCreative(w http.ResponseWriter, r *http.Request) {
	var req CreativeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	item, err := h.service.UpdateCreative(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) approveCreative(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.ApproveCreative(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) deleteCreative(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCreative(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
