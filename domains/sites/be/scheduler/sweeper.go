// Package scheduler drives sites through setup in the background.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

// Advancer runs one checkpoint for a site.
type Advancer interface {
	Advance(ctx context.Context, siteID uuid.UUID) (service.Site, error)
}

// SiteLister returns sites filtered by status.
type SiteLister interface {
	List(ctx context.Context, opts service.ListOptions) (service.ListResult, error)
}

// Config tunes the sweeper.
type Config struct {
	Interval    time.Duration
	Concurrency int
	// PageSize is the listing batch size.
	PageSize int
	Retry    RetryPolicy
}

// DefaultConfig returns the sweeper defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    15 * time.Second,
		Concurrency: 4,
		PageSize:    100,
		Retry:       DefaultRetryPolicy(),
	}
}

// Report summarises one sweep.
type Report struct {
	Visited   int
	Advanced  int
	Failed    int
	Busy      int
	Deferred  int
	Exhausted int
}

// Sweeper advances every site that still needs setup work by one checkpoint
// per sweep. Per-site exclusion is the engine's lock; a busy site is skipped.
type Sweeper struct {
	engine  Advancer
	sites   SiteLister
	cfg     Config
	metrics *Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// New constructs a Sweeper. metrics may be nil.
func New(engine Advancer, sites SiteLister, cfg Config, metrics *Metrics, logger *zap.Logger) *Sweeper {
	if engine == nil {
		panic("engine is required")
	}
	if sites == nil {
		panic("site lister is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.Retry == (RetryPolicy{}) {
		cfg.Retry = def.Retry
	}
	return &Sweeper{
		engine:  engine,
		sites:   sites,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger.With(zap.String("component", "sweeper")),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var setupStatuses = []service.SiteStatus{
	service.StatusSetupPending,
	service.StatusSetupInProgress,
	service.StatusSetupError,
}

// Sweep lists sites in setup and advances the due ones concurrently. Per-site
// failures are counted, not returned; only listing errors and cancellation
// fail the sweep.
func (s *Sweeper) Sweep(ctx context.Context) (Report, error) {
	started := time.Now()
	pending, err := s.listSetupSites(ctx)
	if err != nil {
		return Report{}, err
	}

	var (
		mu     sync.Mutex
		report = Report{Visited: len(pending)}
	)
	count := func(outcome string) {
		mu.Lock()
		defer mu.Unlock()
		switch outcome {
		case OutcomeAdvanced:
			report.Advanced++
		case OutcomeFailed:
			report.Failed++
		case OutcomeBusy:
			report.Busy++
		case OutcomeDeferred:
			report.Deferred++
		case OutcomeExhausted:
			report.Exhausted++
		}
		s.metrics.recordSite(outcome)
	}

	now := s.now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, site := range pending {
		if s.cfg.Retry.Exhausted(site) {
			count(OutcomeExhausted)
			continue
		}
		if !s.cfg.Retry.Due(site, now) {
			count(OutcomeDeferred)
			continue
		}
		id := site.ID
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			count(s.advance(gctx, id))
			return nil
		})
	}
	err = g.Wait()
	s.metrics.recordSweep(len(pending), time.Since(started))

	s.logger.Debug("sweep finished",
		zap.Int("visited", report.Visited),
		zap.Int("advanced", report.Advanced),
		zap.Int("failed", report.Failed),
		zap.Int("busy", report.Busy),
		zap.Int("deferred", report.Deferred),
		zap.Int("exhausted", report.Exhausted),
		zap.Duration("duration", time.Since(started)),
	)
	if err != nil {
		return report, err
	}
	return report, ctx.Err()
}

func (s *Sweeper) advance(ctx context.Context, id uuid.UUID) string {
	site, err := s.engine.Advance(ctx, id)
	switch {
	case err == nil:
		return OutcomeAdvanced
	case errors.Is(err, service.ErrSiteBusy):
		s.logger.Debug("site busy, skipping", zap.String("site_id", id.String()))
		return OutcomeBusy
	case errors.Is(err, service.ErrNotFound):
		// deleted between listing and advance
		return OutcomeDeferred
	}

	var cpErr *service.CheckpointError
	fields := []zap.Field{zap.String("site_id", id.String()), zap.Error(err)}
	if errors.As(err, &cpErr) {
		fields = append(fields,
			zap.String("checkpoint", cpErr.Checkpoint.String()),
			zap.String("kind", string(cpErr.Kind)),
			zap.Int("attempts", site.SetupAttempts),
			zap.Bool("retryable", cpErr.Retryable()),
		)
	}
	s.logger.Warn("site advance failed", fields...)
	return OutcomeFailed
}

func (s *Sweeper) listSetupSites(ctx context.Context) ([]service.Site, error) {
	var sites []service.Site
	for page := 1; ; page++ {
		res, err := s.sites.List(ctx, service.ListOptions{
			Page:     page,
			PageSize: s.cfg.PageSize,
			Statuses: setupStatuses,
		})
		if err != nil {
			return nil, err
		}
		sites = append(sites, res.Sites...)
		if page >= res.TotalPages || len(res.Sites) == 0 {
			return sites, nil
		}
	}
}

// Run sweeps on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started",
		zap.Duration("interval", s.cfg.Interval),
		zap.Int("concurrency", s.cfg.Concurrency),
		zap.Int("max_attempts", s.cfg.Retry.MaxAttempts),
	)
	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("sweep failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return nil
		case <-ticker.C:
		}
	}
}
