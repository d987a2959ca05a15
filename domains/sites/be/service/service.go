package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	platformlogging "github.com/zenGate-Global/palmyra-hosting/platform/go/logging"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/requesttrace"
)

// DNSProviderCloudflare is the only provider wired today.
const DNSProviderCloudflare = "cloudflare"

// Config holds the sites service settings.
type Config struct {
	// WebRoot is the parent of every site's <domain>/public_html root.
	WebRoot string
}

// Deps lists the collaborators of Service. Checker and Locker are optional.
type Deps struct {
	Sites     Repository
	Templates TemplateRepository
	Servers   ServerAllocator
	Checker   HTTPSChecker
	Locker    Locker
	Logger    *zap.Logger
}

// Service exposes site lifecycle operations outside the setup engine.
type Service struct {
	deps Deps
	cfg  Config
	now  func() time.Time
}

// CreateInput is the request to provision a new site.
type CreateInput struct {
	UserID      uuid.UUID
	TemplateID  uuid.UUID
	Domain      string
	DNSProvider string
}

// TemplateInput registers a site template.
type TemplateInput struct {
	Name      string
	Slug      string
	MinCPU    int
	MinRAMMB  int
	MinDiskGB int
}

// New constructs a Service with required dependencies.
func New(deps Deps, cfg Config) *Service {
	if deps.Sites == nil {
		panic("sites repo is required")
	}
	if deps.Templates == nil {
		panic("templates repo is required")
	}
	if deps.Servers == nil {
		panic("server allocator is required")
	}
	if deps.Locker == nil {
		deps.Locker = NewLocalLocker()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if strings.TrimSpace(cfg.WebRoot) == "" {
		cfg.WebRoot = "/var/www"
	}
	return &Service{deps: deps, cfg: cfg, now: func() time.Time { return time.Now().UTC() }}
}

// Create validates the request and stores a site in SetupPending/Initialized.
// No side effects happen until the engine advances it.
func (s *Service) Create(ctx context.Context, input CreateInput) (Site, error) {
	fields := FieldErrors{}

	domain, ok := NormalizeDomain(input.Domain)
	if !ok {
		fields.add("domain", "domain must be a fully qualified domain name")
	}
	if input.UserID == uuid.Nil {
		fields.add("userId", "userId is required")
	}
	provider := strings.ToLower(strings.TrimSpace(input.DNSProvider))
	if provider == "" {
		provider = DNSProviderCloudflare
	}
	if provider != DNSProviderCloudflare {
		fields.add("dnsProvider", "dnsProvider must be cloudflare")
	}
	if input.TemplateID == uuid.Nil {
		fields.add("templateId", "templateId is required")
	} else if _, err := s.deps.Templates.Get(ctx, input.TemplateID); err != nil {
		if !errors.Is(err, ErrTemplateNotFound) {
			return Site{}, fmt.Errorf("load template: %w", err)
		}
		fields.add("templateId", "template does not exist")
	}

	if len(fields) > 0 {
		return Site{}, &ValidationError{Fields: fields}
	}

	if _, err := s.deps.Sites.GetByDomain(ctx, domain); err == nil {
		return Site{}, ErrConflictDomain
	} else if !errors.Is(err, ErrNotFound) {
		return Site{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Site{}, fmt.Errorf("generate site id: %w", err)
	}

	now := s.now()
	created, err := s.deps.Sites.Create(ctx, Site{
		ID:            id,
		UserID:        input.UserID,
		TemplateID:    input.TemplateID,
		Domain:        domain,
		DNSProvider:   provider,
		RootDirectory: filepath.Join(s.cfg.WebRoot, domain, "public_html"),
		Status:        StatusSetupPending,
		Progress:      ProgressInitialized,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return Site{}, err
	}

	s.logger(ctx).Info("site requested",
		zap.String("site_id", created.ID.String()),
		zap.String("domain", created.Domain),
		zap.String("template_id", created.TemplateID.String()),
	)
	return created, nil
}

// Get returns a site by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Site, error) {
	return s.deps.Sites.Get(ctx, id)
}

// List returns sites with optional status and owner filters.
func (s *Service) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	return s.deps.Sites.List(ctx, opts)
}

// Suspend moves a live site to Suspended.
func (s *Service) Suspend(ctx context.Context, id uuid.UUID) (Site, error) {
	return s.transition(ctx, id, StatusSuspended)
}

// Maintenance moves a live site to Maintenance.
func (s *Service) Maintenance(ctx context.Context, id uuid.UUID) (Site, error) {
	return s.transition(ctx, id, StatusMaintenance)
}

// Activate returns a live site to Active.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (Site, error) {
	return s.transition(ctx, id, StatusActive)
}

// Deactivate moves a live site to Inactive.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (Site, error) {
	return s.transition(ctx, id, StatusInactive)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, target SiteStatus) (Site, error) {
	release, err := s.lock(ctx, id)
	if err != nil {
		return Site{}, err
	}
	defer release()

	site, err := s.deps.Sites.Get(ctx, id)
	if err != nil {
		return Site{}, err
	}
	if site.Progress != ProgressCompleted || site.Status.InSetup() {
		return site, fmt.Errorf("%w: site %s has not completed setup", ErrInvalidTransition, site.ID)
	}
	if site.Status == target {
		return site, nil
	}

	from := site.Status
	site.Status = target
	site.UpdatedAt = s.now()
	saved, err := s.deps.Sites.Update(ctx, site)
	if err != nil {
		return Site{}, err
	}

	audit := requesttrace.FromContextOrAnonymous(ctx)
	s.logger(ctx).Info("site status changed",
		zap.String("site_id", saved.ID.String()),
		zap.String("from", from.String()),
		zap.String("to", saved.Status.String()),
		zap.String("actor", audit.Actor()),
	)
	return saved, nil
}

// Delete tombstones the site and returns its server slot. The DNS record is
// left in place.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	release, err := s.lock(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	site, err := s.deps.Sites.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deps.Sites.SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}

	logger := s.logger(ctx).With(zap.String("site_id", id.String()))
	if site.ServerID != nil {
		if err := s.deps.Servers.ReleaseServer(ctx, *site.ServerID, id); err != nil {
			return fmt.Errorf("release server for deleted site: %w", err)
		}
	}

	audit := requesttrace.FromContextOrAnonymous(ctx)
	logger.Info("site deleted", zap.String("actor", audit.Actor()), zap.Bool("released_slot", site.ServerID != nil))
	return nil
}

// CheckHTTPS checks https://<domain> for a live site.
func (s *Service) CheckHTTPS(ctx context.Context, id uuid.UUID) (HTTPSCheckResult, error) {
	if s.deps.Checker == nil {
		return HTTPSCheckResult{}, errors.New("https checker is not configured")
	}
	site, err := s.deps.Sites.Get(ctx, id)
	if err != nil {
		return HTTPSCheckResult{}, err
	}
	result := s.deps.Checker.Check(ctx, "https://"+site.Domain)
	s.logger(ctx).Info("https check",
		zap.String("site_id", site.ID.String()),
		zap.Bool("working", result.Working),
		zap.Int("status_code", result.StatusCode),
		zap.String("error", result.Error),
	)
	return result, nil
}

// CreateTemplate registers a template.
func (s *Service) CreateTemplate(ctx context.Context, input TemplateInput) (Template, error) {
	fields := FieldErrors{}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		fields.add("name", "name is required")
	}
	if strings.TrimSpace(input.Slug) == "" {
		fields.add("slug", "slug is required")
	}
	if input.MinCPU < 0 || input.MinRAMMB < 0 || input.MinDiskGB < 0 {
		fields.add("sizing", "minCpu, minRamMb and minDiskGb must not be negative")
	}
	if len(fields) > 0 {
		return Template{}, &ValidationError{Fields: fields}
	}

	return s.deps.Templates.Create(ctx, Template{
		ID:        uuid.New(),
		Name:      name,
		Slug:      strings.TrimSpace(input.Slug),
		MinCPU:    input.MinCPU,
		MinRAMMB:  input.MinRAMMB,
		MinDiskGB: input.MinDiskGB,
		CreatedAt: s.now(),
	})
}

// GetTemplate returns a template by id.
func (s *Service) GetTemplate(ctx context.Context, id uuid.UUID) (Template, error) {
	return s.deps.Templates.Get(ctx, id)
}

func (s *Service) lock(ctx context.Context, id uuid.UUID) (func(), error) {
	release, ok, err := s.deps.Locker.TryLock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lock site %s: %w", id, err)
	}
	if !ok {
		return nil, ErrSiteBusy
	}
	return release, nil
}

func (s *Service) logger(ctx context.Context) *zap.Logger {
	return platformlogging.FromContextOr(ctx, s.deps.Logger)
}
