package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-hosting/apps/internal/stack"
	hostingapi "github.com/zenGate-Global/palmyra-hosting/generated/go/hosting"
	platformlogging "github.com/zenGate-Global/palmyra-hosting/platform/go/logging"
	platformmiddleware "github.com/zenGate-Global/palmyra-hosting/platform/go/middleware"
)

type config struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	BootstrapSchema bool          `env:"DB_BOOTSTRAP" envDefault:"false"`
	SweeperEnabled  bool          `env:"SWEEPER_ENABLED" envDefault:"true"`
	Stack           stack.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := platformlogging.NewLogger(platformlogging.Config{
		Component: "hosting-api",
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	stores, err := stack.Open(ctx, cfg.Stack, "hosting-api", cfg.BootstrapSchema)
	if err != nil {
		logger.Fatal("open stores", zap.Error(err))
	}
	defer stores.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hosting, err := stack.Build(stores, cfg.Stack, registry, logger)
	if err != nil {
		logger.Fatal("build hosting stack", zap.Error(err))
	}

	spec, err := hostingapi.GetSwagger()
	if err != nil {
		logger.Fatal("load generated swagger", zap.String("contract", hostingContract), zap.Error(err))
	}
	logSecuritySchemes(logger, hostingContract, spec)

	rootRouter := chi.NewRouter()
	rootRouter.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		platformmiddleware.DefaultCORS(),
	)
	rootRouter.Use(platformlogging.RequestLogger(logger))

	rootRouter.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rootRouter.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := stores.Pool.Ping(r.Context()); err != nil {
			platformlogging.FromRequest(r, logger).Warn("readiness ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	rootRouter.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// ---- Swagger UI + OpenAPI JSON (public) ----
	registerDocsRoutes(rootRouter, logger)

	apiRouter := chi.NewRouter()
	apiRouter.Use(chimw.Timeout(cfg.RequestTimeout))
	apiRouter.Use(platformmiddleware.RequestTrace)
	apiRouter.Group(func(r chi.Router) {
		r.Use(platformmiddleware.ContractValidator(spec))
		mountHostingAPI(r, newHostingAPI(hosting.ServerService, hosting.SiteService, hosting.Engine, logger), logger)
	})
	rootRouter.Mount("/api/v1", apiRouter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rootRouter,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		if !cfg.SweeperEnabled {
			logger.Info("provisioning sweeper disabled")
			return
		}
		if err := hosting.Sweeper.Run(ctx); err != nil {
			logger.Error("provisioning sweeper stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("starting api server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	select {
	case <-sweepDone:
	case <-shutdownCtx.Done():
		logger.Warn("sweeper did not stop before shutdown timeout")
	}
}
