package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/vantage-dsp/vantage/internal/advertisers"
	"github.com/vantage-dsp/vantage/internal/app"
	"github.com/vantage-dsp/vantage/internal/audiences"
	"github.com/vantage-dsp/vantage/internal/audit"
	"github.com/vantage-dsp/vantage/internal/auth"
	"github.com/vantage-dsp/vantage/internal/campaigns"
	"github.com/vantage-dsp/vantage/internal/observability"
	"github.com/vantage-dsp/vantage/internal/platform/cache"
	"github.com/vantage-dsp/vantage/internal/rbac"
	"github.com/vantage-dsp/vantage/internal/reports"
	"github.com/vantage-dsp/vantage/internal/shared"
	"github.com/vantage-dsp/vantage/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	directory, err := auth.NewStaticDirectory()
	if err != nil {
		logger.Error("seed identity directory", slog.Any("error", err))
		os.Exit(1)
	}

	issuer := auth.NewJWTIssuer(cfg.SessionSecret, cfg.TokenIssuer)
	vault := auth.NewVault(redisClient, cfg.SessionTTL)
	sessions := auth.NewManager(auth.ManagerConfig{
		Client:     redisClient,
		Directory:  directory,
		Issuer:     issuer,
		Tokens:     vault,
		Logger:     logger,
		CookieName: "vantage_session",
		TTL:        cfg.SessionTTL,
		Secure:     cfg.IsProduction(),
	})
	csrfManager := shared.NewCSRFManager(redisClient, cfg.CSRFSecret, cfg.SessionTTL)

	guard := rbac.Guard{
		Sessions: func(r *http.Request) rbac.Session {
			if store := auth.StoreFromContext(r.Context()); store != nil {
				return store
			}
			return nil
		},
		Logger:   logger,
		LoginURL: "/auth/login",
	}

	auditJobs, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Warn("jobs client", slog.Any("error", err))
	}
	defer func() {
		if err := auditJobs.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	authHandler := auth.NewHandler(logger, sessions, csrfManager, auditJobs, metrics)

	advertiserRepo := advertisers.NewMemoryRepository()
	advertiserService := advertisers.NewService(advertiserRepo)
	advertiserHandler := advertisers.NewHandler(logger, advertiserService, guard)

	campaignRepo := campaigns.NewMemoryRepository()
	campaignService := campaigns.NewService(campaignRepo)
	campaignHandler := campaigns.NewHandler(logger, campaignService, guard)

	audienceRepo := audiences.NewMemoryRepository()
	audienceService := audiences.NewService(audienceRepo)
	audienceHandler := audiences.NewHandler(logger, audienceService, guard)

	reportService := reports.NewService(advertiserService, campaignService)
	reportHandler := reports.NewHandler(logger, reportService, guard)

	catalogHandler := rbac.NewCatalogHandler(logger, guard)

	loginTrail := audit.NewTrail(redisClient, 0)
	auditHandler := audit.NewHandler(logger, loginTrail, guard)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Sessions:          sessions,
		CSRF:              csrfManager,
		Guard:             guard,
		AuthHandler:       authHandler,
		AdvertiserHandler: advertiserHandler,
		CampaignHandler:   campaignHandler,
		AudienceHandler:   audienceHandler,
		ReportHandler:     reportHandler,
		CatalogHandler:    catalogHandler,
		AuditHandler:      auditHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
