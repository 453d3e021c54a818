package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vantage-dsp/vantage/internal/advertisers"
	"github.com/vantage-dsp/vantage/internal/audiences"
	"github.com/vantage-dsp/vantage/internal/audit"
	"github.com/vantage-dsp/vantage/internal/auth"
	"github.com/vantage-dsp/vantage/internal/campaigns"
	"github.com/vantage-dsp/vantage/internal/observability"
	"github.com/vantage-dsp/vantage/internal/rbac"
	"github.com/vantage-dsp/vantage/internal/reports"
	"github.com/vantage-dsp/vantage/internal/shared"
	"github.com/vantage-dsp/vantage/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger   *slog.Logger
	Config   *Config
	Sessions *auth.Manager
	CSRF     *shared.CSRFManager
	Guard    rbac.Guard

	AuthHandler       *auth.Handler
	AdvertiserHandler *advertisers.Handler
	CampaignHandler   *campaigns.Handler
	AudienceHandler   *audiences.Handler
	ReportHandler     *reports.Handler
	CatalogHandler    *rbac.CatalogHandler
	AuditHandler      *audit.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:   params.Logger,
		Config:   params.Config,
		Sessions: params.Sessions,
		CSRF:     params.CSRF,
		Metrics:  params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// The dashboard landing view: any authenticated user may see it, no
	// specific permission declared. The guard's empty requirement list
	// means "authenticated is enough", never "unreachable".
	r.Group(func(r chi.Router) {
		r.Use(params.Guard.Require())
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			store := auth.StoreFromContext(r.Context())
			w.Header().Set("Content-Type", "application/json")
			user := store.CurrentUser()
			if user == nil {
				_, _ = w.Write([]byte(`{"dashboard":"vantage"}`))
				return
			}
			_, _ = w.Write([]byte(`{"dashboard":"vantage","role":"` + string(user.Role) + `"}`))
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(LoginRateLimiter())
		params.AuthHandler.MountRoutes(r)
	})
	r.Route("/advertisers", params.AdvertiserHandler.MountRoutes)
	r.Route("/campaigns", params.CampaignHandler.MountRoutes)
	r.Route("/audiences", params.AudienceHandler.MountRoutes)
	r.Route("/reports", params.ReportHandler.MountRoutes)
	r.Route("/permissions", params.CatalogHandler.MountRoutes)
	r.Route("/audit", params.AuditHandler.MountRoutes)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
