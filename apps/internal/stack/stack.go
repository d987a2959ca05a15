// Package stack assembles the hosting services from environment configuration.
// It is shared by the API server and the operator CLI.
package stack

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	serversrepo "github.com/zenGate-Global/palmyra-hosting/domains/servers/be/repo"
	serversservice "github.com/zenGate-Global/palmyra-hosting/domains/servers/be/service"
	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/provisioning"
	sitesrepo "github.com/zenGate-Global/palmyra-hosting/domains/sites/be/repo"
	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/scheduler"
	sitesservice "github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/credentials"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/httpcheck"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/persistence"
)

// Lock backends accepted by Config.LockBackend.
const (
	LockAdvisory = "advisory"
	LockLocal    = "local"
)

// Config is parsed from the environment with caarlos0/env.
type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL"`
	DBMaxConns      int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBStatementTime time.Duration `env:"DB_STATEMENT_TIMEOUT" envDefault:"30s"`
	LockBackend     string        `env:"LOCK_BACKEND" envDefault:"advisory"` // advisory | local

	WebRoot  string `env:"WEB_ROOT" envDefault:"/var/www"`
	VhostDir string `env:"VHOST_DIR" envDefault:"/etc/nginx/sites-enabled"`

	CloudflareAPIToken string        `env:"CLOUDFLARE_API_TOKEN"`
	CloudflareZoneID   string        `env:"CLOUDFLARE_ZONE_ID"`
	CloudflareBaseURL  string        `env:"CLOUDFLARE_BASE_URL"`
	DNSTimeout         time.Duration `env:"DNS_TIMEOUT" envDefault:"10s"`
	DNSRetryAttempts   int           `env:"DNS_RETRY_ATTEMPTS" envDefault:"3"`

	StepTimeout      time.Duration `env:"SETUP_STEP_TIMEOUT" envDefault:"30s"`
	HTTPSTimeout     time.Duration `env:"HTTPS_CHECK_TIMEOUT" envDefault:"10s"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" envDefault:"15s"`
	SweepConcurrency int           `env:"SWEEP_CONCURRENCY" envDefault:"4"`
	RetryMaxAttempts int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"5"`
	RetryBaseDelay   time.Duration `env:"RETRY_BASE_DELAY" envDefault:"30s"`
	RetryMaxDelay    time.Duration `env:"RETRY_MAX_DELAY" envDefault:"30m"`
}

// Validate checks the settings needed by Open.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	switch c.LockBackend {
	case LockAdvisory, LockLocal:
	default:
		errs = append(errs, fmt.Errorf("LOCK_BACKEND must be %q or %q, got %q", LockAdvisory, LockLocal, c.LockBackend))
	}
	return errors.Join(errs...)
}

// SweepConfig maps the environment onto the sweeper settings.
func (c Config) SweepConfig() scheduler.Config {
	return scheduler.Config{
		Interval:    c.SweepInterval,
		Concurrency: c.SweepConcurrency,
		Retry: scheduler.RetryPolicy{
			MaxAttempts: c.RetryMaxAttempts,
			BaseDelay:   c.RetryBaseDelay,
			MaxDelay:    c.RetryMaxDelay,
		},
	}
}

// Stores holds the Postgres-backed repositories.
type Stores struct {
	Pool      *pgxpool.Pool
	Servers   serversservice.Repository
	Sites     sitesservice.Repository
	Templates sitesservice.TemplateRepository
	Locker    sitesservice.Locker
}

// Close releases the pool.
func (s *Stores) Close() {
	persistence.ClosePool(s.Pool)
}

// Open connects to Postgres and builds the repositories. When bootstrap is
// true the hosting schema is created first.
func Open(ctx context.Context, cfg Config, component string, bootstrap bool) (*Stores, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := persistence.NewPool(ctx, persistence.PoolConfig{
		ConnString:       cfg.DatabaseURL,
		ApplicationName:  component,
		MaxConns:         cfg.DBMaxConns,
		StatementTimeout: cfg.DBStatementTime,
	})
	if err != nil {
		return nil, fmt.Errorf("init postgres pool: %w", err)
	}

	stores, err := newStores(ctx, pool, cfg, bootstrap)
	if err != nil {
		persistence.ClosePool(pool)
		return nil, err
	}
	return stores, nil
}

func newStores(ctx context.Context, pool *pgxpool.Pool, cfg Config, bootstrap bool) (*Stores, error) {
	if bootstrap {
		if err := persistence.BootstrapSchema(ctx, pool); err != nil {
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}

	validator := persistence.NewBlobValidator()
	serverStore, err := persistence.NewServerStore(ctx, pool, validator)
	if err != nil {
		return nil, fmt.Errorf("init server store: %w", err)
	}
	siteStore, err := persistence.NewSiteStore(ctx, pool, validator)
	if err != nil {
		return nil, fmt.Errorf("init site store: %w", err)
	}
	templateStore, err := persistence.NewTemplateStore(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("init template store: %w", err)
	}

	var locker sitesservice.Locker
	switch cfg.LockBackend {
	case LockLocal:
		locker = sitesservice.NewLocalLocker()
	default:
		advisory, err := persistence.NewAdvisoryLocker(pool, "hosting.site")
		if err != nil {
			return nil, fmt.Errorf("init advisory locker: %w", err)
		}
		locker = sitesrepo.NewAdvisoryLocker(advisory)
	}

	return &Stores{
		Pool:      pool,
		Servers:   serversrepo.NewPostgresRepository(serverStore),
		Sites:     sitesrepo.NewPostgresRepository(siteStore),
		Templates: sitesrepo.NewPostgresTemplateRepository(templateStore),
		Locker:    locker,
	}, nil
}

// Services builds the registry and site lifecycle services. They need no DNS
// credentials, so operator tooling can use them without the engine.
func Services(stores *Stores, cfg Config, logger *zap.Logger) (*serversservice.Service, *sitesservice.Service) {
	if logger == nil {
		logger = zap.NewNop()
	}
	allocator := sitesrepo.NewServerAllocator(serversservice.NewAllocator(stores.Servers, logger.Named("allocator")))
	siteService := sitesservice.New(sitesservice.Deps{
		Sites:     stores.Sites,
		Templates: stores.Templates,
		Servers:   allocator,
		Checker:   provisioning.NewHTTPSCheck(httpcheck.New(httpcheck.WithTimeout(cfg.HTTPSTimeout))),
		Locker:    stores.Locker,
		Logger:    logger,
	}, sitesservice.Config{WebRoot: cfg.WebRoot})
	return serversservice.New(stores.Servers), siteService
}

// Stack is the fully wired provisioning system.
type Stack struct {
	*Stores
	ServerService *serversservice.Service
	SiteService   *sitesservice.Service
	Engine        *sitesservice.Engine
	Sweeper       *scheduler.Sweeper
	Metrics       *scheduler.Metrics
}

// Build wires services, provisioners, the engine and the sweeper on top of
// stores. reg may be nil to skip metric registration.
func Build(stores *Stores, cfg Config, reg prometheus.Registerer, logger *zap.Logger) (*Stack, error) {
	if stores == nil {
		return nil, errors.New("stores are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dns, err := provisioning.NewCloudflareDNS(provisioning.CloudflareConfig{
		APIToken:      cfg.CloudflareAPIToken,
		ZoneID:        cfg.CloudflareZoneID,
		BaseURL:       cfg.CloudflareBaseURL,
		Timeout:       cfg.DNSTimeout,
		RetryAttempts: cfg.DNSRetryAttempts,
	}, nil, logger.Named("cloudflare"))
	if err != nil {
		return nil, fmt.Errorf("init dns provider: %w", err)
	}

	siteSetup, err := provisioning.NewLocalSiteProvisioner(provisioning.LocalSiteOptions{VhostDir: cfg.VhostDir}, logger.Named("vhost"))
	if err != nil {
		return nil, fmt.Errorf("init site provisioner: %w", err)
	}

	serverService, siteService := Services(stores, cfg, logger)
	metrics := scheduler.NewMetrics(reg)

	engineCfg := sitesservice.DefaultEngineConfig()
	if cfg.StepTimeout > 0 {
		engineCfg.StepTimeout = cfg.StepTimeout
	}
	engine := sitesservice.NewEngine(sitesservice.EngineDeps{
		Sites:       stores.Sites,
		Templates:   stores.Templates,
		Servers:     sitesrepo.NewServerAllocator(serversservice.NewAllocator(stores.Servers, logger.Named("allocator"))),
		DNS:         dns,
		SiteSetup:   siteSetup,
		Apps:        provisioning.NewLocalAppInstaller(logger.Named("app")),
		Credentials: credentials.NewGenerator(),
		Locker:      stores.Locker,
		Observer:    metrics,
		Logger:      logger.Named("engine"),
	}, engineCfg)

	return &Stack{
		Stores:        stores,
		ServerService: serverService,
		SiteService:   siteService,
		Engine:        engine,
		Sweeper:       scheduler.New(engine, stores.Sites, cfg.SweepConfig(), metrics, logger.Named("sweeper")),
		Metrics:       metrics,
	}, nil
}
