package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/palmyra-hosting/platform/go/credentials"
)

// Repository abstracts site persistence. Update must fail with ErrNotFound for
// soft-deleted sites.
type Repository interface {
	Create(ctx context.Context, site Site) (Site, error)
	Get(ctx context.Context, id uuid.UUID) (Site, error)
	GetByDomain(ctx context.Context, domain string) (Site, error)
	Update(ctx context.Context, site Site) (Site, error)
	List(ctx context.Context, opts ListOptions) (ListResult, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

// TemplateRepository gives access to site templates.
type TemplateRepository interface {
	Create(ctx context.Context, tpl Template) (Template, error)
	Get(ctx context.Context, id uuid.UUID) (Template, error)
}

// DNSRecord is the subset of a provider record the engine relies on.
type DNSRecord struct {
	ID      string
	ZoneID  string
	Type    string
	Name    string
	Content string
	Proxied bool
}

// DNSProvider is the pluggable DNS capability. Callers must look up before
// creating; implementations do no deduplication.
type DNSProvider interface {
	ResolveZone(ctx context.Context, domain string) (string, error)
	GetRecord(ctx context.Context, domain string) (DNSRecord, error)
	CreateARecord(ctx context.Context, domain, ip string) (DNSRecord, error)
}

// ServerRequirements is the sizing floor for the allocated server. PublicIP
// pins allocation to one server.
type ServerRequirements struct {
	CPU      int
	RAMMB    int
	DiskGB   int
	PublicIP string
}

// AllocatedServer is the server a slot was reserved on.
type AllocatedServer struct {
	ID       uuid.UUID
	PublicIP string
}

// ServerAllocator reserves and releases hosting capacity.
type ServerAllocator interface {
	AllocateServer(ctx context.Context, req ServerRequirements) (AllocatedServer, error)
	ReleaseServer(ctx context.Context, serverID, siteID uuid.UUID) error
}

// SiteSetup carries what the site provisioner needs.
type SiteSetup struct {
	SiteID            uuid.UUID
	ServerID          uuid.UUID
	Domain            string
	RootDirectory     string
	SiteOwnerUsername string
}

// SiteProvisioner creates the filesystem root and virtual host. EnsureSite must
// be safe to call again after a partial or complete earlier run.
type SiteProvisioner interface {
	EnsureSite(ctx context.Context, setup SiteSetup) error
}

// AppInstall carries what the application installer needs.
type AppInstall struct {
	SiteID        uuid.UUID
	Domain        string
	RootDirectory string
	Auth          AuthData
}

// AppInstaller bootstraps the application. EnsureApp must detect an existing
// installation and return nil.
type AppInstaller interface {
	EnsureApp(ctx context.Context, install AppInstall) error
}

// CredentialGenerator produces the per-site credential bundle.
type CredentialGenerator interface {
	NewBundle(policy credentials.BundlePolicy) (credentials.Bundle, error)
}

// Locker serializes checkpoints for a single site. ok=false means another
// holder has the lock.
type Locker interface {
	TryLock(ctx context.Context, siteID uuid.UUID) (release func(), ok bool, err error)
}

// CheckpointObserver receives one call per processed checkpoint. result is
// ResultOK or the ErrorKind of the failure.
type CheckpointObserver interface {
	ObserveCheckpoint(checkpoint SetupProgress, result string, elapsed time.Duration)
}

// ResultOK labels a successful checkpoint.
const ResultOK = "ok"

// HTTPSCheckResult describes an HTTPS reachability check.
type HTTPSCheckResult struct {
	URL        string
	Working    bool
	StatusCode int
	Error      string
	CheckedAt  time.Time
}

// HTTPSChecker performs the outbound reachability check.
type HTTPSChecker interface {
	Check(ctx context.Context, url string) HTTPSCheckResult
}
