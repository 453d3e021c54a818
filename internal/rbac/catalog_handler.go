package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
)

// CatalogHandler serves the permission catalog and role tables so the
// admin UI can render role pickers and capability matrices.
type CatalogHandler struct {
	logger *slog.Logger
	guard  Guard
}

// NewCatalogHandler builds CatalogHandler instance.
func NewCatalogHandler(logger *slog.Logger, guard Guard) *CatalogHandler {
	return &CatalogHandler{logger: logger, guard: guard}
}

// MountRoutes registers catalog routes.
func (h *CatalogHandler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(PermManageUsers))
		r.Get("/", h.listCatalog)
	})
}

type roleView struct {
	Role        Role         `json:"role"`
	DisplayName string       `json:"display_name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
}

type catalogView struct {
	Permissions []Permission `json:"permissions"`
	Roles       []roleView   `json:"roles"`
}

func (h *CatalogHandler) listCatalog(w http.ResponseWriter, r *http.Request) {
	view := catalogView{Permissions: Catalog}
	for _, role := range Roles() {
		view.Roles = append(view.Roles, roleView{
			Role:        role,
			DisplayName: RoleDisplayName(role),
			Description: RoleDescription(role),
			Permissions: PermissionsForRole(role),
		})
	}
	httpx.JSON(w, http.StatusOK, view)
}
