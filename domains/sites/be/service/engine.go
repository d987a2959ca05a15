package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-hosting/platform/go/credentials"
	platformlogging "github.com/zenGate-Global/palmyra-hosting/platform/go/logging"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/requesttrace"
)

// persistTimeout bounds the error-state write made after the caller's context
// was cancelled.
const persistTimeout = 5 * time.Second

// EngineDeps lists the collaborators of the provisioning engine.
type EngineDeps struct {
	Sites       Repository
	Templates   TemplateRepository
	Servers     ServerAllocator
	DNS         DNSProvider
	SiteSetup   SiteProvisioner
	Apps        AppInstaller
	Credentials CredentialGenerator
	// Locker defaults to a LocalLocker.
	Locker Locker
	// Observer is optional.
	Observer CheckpointObserver
	Logger   *zap.Logger
}

// EngineConfig tunes the engine.
type EngineConfig struct {
	Bundle credentials.BundlePolicy
	// StepTimeout bounds each checkpoint's external calls.
	StepTimeout time.Duration
}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Bundle:      credentials.DefaultBundlePolicy(),
		StepTimeout: 30 * time.Second,
	}
}

// Engine drives a site through its setup checkpoints. Each Advance processes
// exactly one checkpoint and persists the outcome before returning.
type Engine struct {
	deps EngineDeps
	cfg  EngineConfig
	now  func() time.Time
}

// NewEngine constructs an Engine with required dependencies.
func NewEngine(deps EngineDeps, cfg EngineConfig) *Engine {
	switch {
	case deps.Sites == nil:
		panic("sites repo is required")
	case deps.Templates == nil:
		panic("templates repo is required")
	case deps.Servers == nil:
		panic("server allocator is required")
	case deps.DNS == nil:
		panic("dns provider is required")
	case deps.SiteSetup == nil:
		panic("site provisioner is required")
	case deps.Apps == nil:
		panic("app installer is required")
	case deps.Credentials == nil:
		panic("credential generator is required")
	}
	if deps.Locker == nil {
		deps.Locker = NewLocalLocker()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = DefaultEngineConfig().StepTimeout
	}
	if cfg.Bundle == (credentials.BundlePolicy{}) {
		cfg.Bundle = credentials.DefaultBundlePolicy()
	}
	return &Engine{deps: deps, cfg: cfg, now: func() time.Time { return time.Now().UTC() }}
}

// Advance runs the next pending checkpoint of the site. Sites past Completed
// are returned unchanged. A failed checkpoint is persisted as SetupError and
// reported as *CheckpointError.
func (e *Engine) Advance(ctx context.Context, siteID uuid.UUID) (Site, error) {
	release, err := e.lock(ctx, siteID)
	if err != nil {
		return Site{}, err
	}
	defer release()

	site, err := e.deps.Sites.Get(ctx, siteID)
	if err != nil {
		return Site{}, err
	}
	if site.Progress == ProgressCompleted {
		return site, nil
	}
	if !site.Status.InSetup() {
		return site, fmt.Errorf("%w: site %s is %s at %s", ErrInvalidTransition, site.ID, site.Status, site.Progress)
	}

	logger := e.loggerFor(ctx, site)
	checkpoint := site.Progress
	started := time.Now()

	stepCtx, cancel := context.WithTimeout(ctx, e.cfg.StepTimeout)
	defer cancel()

	var next Site
	switch checkpoint {
	case ProgressInitialized:
		next, err = e.generateCredentials(site)
	case ProgressDNSPending:
		next, err = e.configureDNS(stepCtx, logger, site)
	case ProgressSitePending:
		next, err = e.setupSite(stepCtx, site)
	case ProgressAppPending:
		next, err = e.installApp(stepCtx, site)
	default:
		err = &CheckpointError{Checkpoint: checkpoint, Kind: KindInternal, Err: fmt.Errorf("unknown checkpoint %d", checkpoint)}
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			// Interrupted by the caller: nothing was committed, the checkpoint reruns later.
			logger.Warn("site checkpoint interrupted", zap.String("checkpoint", checkpoint.String()), zap.Error(err))
			return site, fmt.Errorf("checkpoint %s interrupted: %w", checkpoint, ctxErr)
		}
		failed, persistErr := e.fail(ctx, logger, site, err)
		e.observe(checkpoint, err, started)
		if persistErr != nil {
			return site, errors.Join(err, fmt.Errorf("persist setup error: %w", persistErr))
		}
		return failed, err
	}

	next.Progress = checkpoint.next()
	next.Status = StatusSetupInProgress
	if next.Progress == ProgressCompleted {
		next.Status = StatusActive
	}
	now := e.now()
	next.SetupAttempts = 0
	next.LastError = nil
	next.LastErrorKind = ""
	next.LastAttemptAt = &now
	next.UpdatedAt = now

	saved, err := e.deps.Sites.Update(ctx, next)
	if err != nil {
		if checkpoint == ProgressDNSPending && next.ServerID != nil {
			e.releaseServer(logger, *next.ServerID, site.ID)
		}
		cpErr := &CheckpointError{Checkpoint: checkpoint, Kind: KindInternal, Err: fmt.Errorf("persist progress: %w", err)}
		e.observe(checkpoint, cpErr, started)
		return site, cpErr
	}

	e.observe(checkpoint, nil, started)
	logger.Info("site checkpoint completed",
		zap.String("checkpoint", checkpoint.String()),
		zap.String("next_checkpoint", saved.Progress.String()),
		zap.String("status", saved.Status.String()),
	)
	return saved, nil
}

// Reset returns a SetupError site to the checkpoint that failed so it can be
// retried. Committed state (credentials, DNS record) is kept.
func (e *Engine) Reset(ctx context.Context, siteID uuid.UUID) (Site, error) {
	release, err := e.lock(ctx, siteID)
	if err != nil {
		return Site{}, err
	}
	defer release()

	site, err := e.deps.Sites.Get(ctx, siteID)
	if err != nil {
		return Site{}, err
	}
	if site.Status != StatusSetupError {
		return site, fmt.Errorf("%w: reset requires SetupError, site is %s", ErrInvalidTransition, site.Status)
	}

	site.Status = StatusSetupInProgress
	if site.Progress == ProgressInitialized {
		site.Status = StatusSetupPending
	}
	site.LastError = nil
	site.LastErrorKind = ""
	site.SetupAttempts = 0
	site.UpdatedAt = e.now()

	saved, err := e.deps.Sites.Update(ctx, site)
	if err != nil {
		return Site{}, err
	}

	audit := requesttrace.FromContextOrAnonymous(ctx)
	e.loggerFor(ctx, saved).Info("site setup reset",
		zap.String("checkpoint", saved.Progress.String()),
		zap.String("actor", audit.Actor()),
	)
	return saved, nil
}

func (e *Engine) generateCredentials(site Site) (Site, error) {
	// Credentials are written once. A site that already carries them (e.g. after
	// a lost progress write) keeps them.
	if site.Auth.Empty() || site.SiteOwnerUsername == "" {
		bundle, err := e.deps.Credentials.NewBundle(e.cfg.Bundle)
		if err != nil {
			return site, &CheckpointError{Checkpoint: ProgressInitialized, Kind: classify(err, KindInternal), Err: err}
		}
		site.SiteOwnerUsername = bundle.SiteOwner
		site.Auth = AuthData{
			DBName:        bundle.DBName,
			DBUsername:    bundle.DBUsername,
			DBPassword:    bundle.DBPassword,
			AdminUser:     bundle.AdminUser,
			AdminPassword: bundle.AdminPassword,
		}
	}
	return site, nil
}

// configureDNS reuses an existing exact-match record when present and
// otherwise creates one pointing at a freshly allocated server. A reused
// record pins allocation to the server owning its address.
func (e *Engine) configureDNS(ctx context.Context, logger *zap.Logger, site Site) (Site, error) {
	fail := func(err error) (Site, error) {
		return site, &CheckpointError{Checkpoint: ProgressDNSPending, Kind: classify(err, KindExternalAPI), Err: err}
	}

	tpl, err := e.deps.Templates.Get(ctx, site.TemplateID)
	if err != nil {
		return fail(fmt.Errorf("load template %s: %w", site.TemplateID, err))
	}
	req := ServerRequirements{CPU: tpl.MinCPU, RAMMB: tpl.MinRAMMB, DiskGB: tpl.MinDiskGB}

	record, err := e.deps.DNS.GetRecord(ctx, site.Domain)
	switch {
	case err == nil:
		logger.Info("reusing existing dns record",
			zap.String("dns_record_id", record.ID),
			zap.String("content", record.Content),
		)
		req.PublicIP = record.Content
		server, err := e.deps.Servers.AllocateServer(ctx, req)
		if err != nil {
			return fail(fmt.Errorf("allocate server for existing record %s: %w", record.Content, err))
		}
		return withDNS(site, record, server), nil
	case errors.Is(err, ErrRecordNotFound):
	default:
		return fail(fmt.Errorf("look up dns record: %w", err))
	}

	server, err := e.deps.Servers.AllocateServer(ctx, req)
	if err != nil {
		return fail(fmt.Errorf("allocate server: %w", err))
	}

	record, err = e.deps.DNS.CreateARecord(ctx, site.Domain, server.PublicIP)
	if err != nil {
		e.releaseServer(logger, server.ID, site.ID)
		return fail(fmt.Errorf("create dns record: %w", err))
	}

	logger.Info("dns record created",
		zap.String("dns_record_id", record.ID),
		zap.String("server_id", server.ID.String()),
		zap.String("content", record.Content),
	)
	return withDNS(site, record, server), nil
}

func withDNS(site Site, record DNSRecord, server AllocatedServer) Site {
	recordID := record.ID
	serverID := server.ID
	site.DNSRecordID = &recordID
	site.ServerID = &serverID
	return site
}

func (e *Engine) setupSite(ctx context.Context, site Site) (Site, error) {
	if site.ServerID == nil {
		return site, &CheckpointError{Checkpoint: ProgressSitePending, Kind: KindInternal, Err: errors.New("site has no server assigned")}
	}
	err := e.deps.SiteSetup.EnsureSite(ctx, SiteSetup{
		SiteID:            site.ID,
		ServerID:          *site.ServerID,
		Domain:            site.Domain,
		RootDirectory:     site.RootDirectory,
		SiteOwnerUsername: site.SiteOwnerUsername,
	})
	if err != nil {
		return site, &CheckpointError{Checkpoint: ProgressSitePending, Kind: classify(err, KindExternalAPI), Err: fmt.Errorf("ensure site: %w", err)}
	}
	return site, nil
}

func (e *Engine) installApp(ctx context.Context, site Site) (Site, error) {
	err := e.deps.Apps.EnsureApp(ctx, AppInstall{
		SiteID:        site.ID,
		Domain:        site.Domain,
		RootDirectory: site.RootDirectory,
		Auth:          site.Auth,
	})
	if err != nil {
		return site, &CheckpointError{Checkpoint: ProgressAppPending, Kind: classify(err, KindExternalAPI), Err: fmt.Errorf("ensure app: %w", err)}
	}
	return site, nil
}

// fail persists SetupError on the original site record; progress stays on the
// failed checkpoint.
func (e *Engine) fail(ctx context.Context, logger *zap.Logger, site Site, cause error) (Site, error) {
	var cpErr *CheckpointError
	if !errors.As(cause, &cpErr) {
		cpErr = &CheckpointError{Checkpoint: site.Progress, Kind: classify(cause, KindInternal), Err: cause}
	}

	now := e.now()
	msg := cpErr.Error()
	site.Status = StatusSetupError
	site.LastError = &msg
	site.LastErrorKind = cpErr.Kind
	site.SetupAttempts++
	site.LastAttemptAt = &now
	site.UpdatedAt = now

	logger.Error("site checkpoint failed",
		zap.String("checkpoint", cpErr.Checkpoint.String()),
		zap.String("kind", string(cpErr.Kind)),
		zap.Int("attempts", site.SetupAttempts),
		zap.Error(cpErr.Err),
	)

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	return e.deps.Sites.Update(persistCtx, site)
}

func (e *Engine) releaseServer(logger *zap.Logger, serverID, siteID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := e.deps.Servers.ReleaseServer(ctx, serverID, siteID); err != nil {
		logger.Error("release server reservation", zap.String("server_id", serverID.String()), zap.Error(err))
	}
}

func (e *Engine) lock(ctx context.Context, siteID uuid.UUID) (func(), error) {
	release, ok, err := e.deps.Locker.TryLock(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("lock site %s: %w", siteID, err)
	}
	if !ok {
		return nil, ErrSiteBusy
	}
	return release, nil
}

func (e *Engine) observe(checkpoint SetupProgress, err error, started time.Time) {
	if e.deps.Observer == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = string(classify(err, KindInternal))
		var cpErr *CheckpointError
		if errors.As(err, &cpErr) {
			result = string(cpErr.Kind)
		}
	}
	e.deps.Observer.ObserveCheckpoint(checkpoint, result, time.Since(started))
}

func (e *Engine) loggerFor(ctx context.Context, site Site) *zap.Logger {
	return platformlogging.FromContextOr(ctx, e.deps.Logger).With(
		zap.String("site_id", site.ID.String()),
		zap.String("domain", site.Domain),
	)
}
