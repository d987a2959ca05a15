package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	serversrepo "github.com/zenGate-Global/palmyra-hosting/domains/servers/be/repo"
	serversservice "github.com/zenGate-Global/palmyra-hosting/domains/servers/be/service"
	sitesrepo "github.com/zenGate-Global/palmyra-hosting/domains/sites/be/repo"
	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/credentials"
)

type scenarioDNS struct {
	mu      sync.Mutex
	records map[string]service.DNSRecord
	fail    error
	creates int
}

func (d *scenarioDNS) ResolveZone(context.Context, string) (string, error) { return "zone", nil }

func (d *scenarioDNS) GetRecord(_ context.Context, domain string) (service.DNSRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if rec, ok := d.records[domain]; ok {
		return rec, nil
	}
	return service.DNSRecord{}, service.ErrRecordNotFound
}

func (d *scenarioDNS) CreateARecord(_ context.Context, domain, ip string) (service.DNSRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.creates++
	if d.fail != nil {
		return service.DNSRecord{}, d.fail
	}
	rec := service.DNSRecord{ID: uuid.NewString(), Type: "A", Name: domain, Content: ip, Proxied: true}
	d.records[domain] = rec
	return rec, nil
}

type noopSetup struct{}

func (noopSetup) EnsureSite(context.Context, service.SiteSetup) error { return nil }
func (noopSetup) EnsureApp(context.Context, service.AppInstall) error { return nil }

type scenario struct {
	svc        *service.Service
	engine     *service.Engine
	servers    *serversrepo.MemoryRepository
	dns        *scenarioDNS
	serverID   uuid.UUID
	templateID uuid.UUID
}

func newScenario(t *testing.T) *scenario {
	t.Helper()
	ctx := context.Background()

	servers := serversrepo.NewMemoryRepository()
	server, err := servers.Create(ctx, serversservice.Server{
		ID:               uuid.New(),
		Name:             "web-01",
		PublicIP:         "203.0.113.10",
		Status:           serversservice.StatusActive,
		MaxSites:         5,
		CurrentSiteCount: 2,
		CPU:              4,
		RAMMB:            8192,
		DiskGB:           160,
		CreatedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)

	templates := sitesrepo.NewMemoryTemplateRepository()
	tpl, err := templates.Create(ctx, service.Template{ID: uuid.New(), Name: "WordPress", Slug: "wordpress", MinCPU: 1, MinRAMMB: 1024, MinDiskGB: 10})
	require.NoError(t, err)

	sites := sitesrepo.NewMemoryRepository()
	allocator := sitesrepo.NewServerAllocator(serversservice.NewAllocator(servers, nil))
	locker := service.NewLocalLocker()
	dns := &scenarioDNS{records: map[string]service.DNSRecord{}}

	return &scenario{
		svc: service.New(service.Deps{
			Sites:     sites,
			Templates: templates,
			Servers:   allocator,
			Locker:    locker,
		}, service.Config{WebRoot: "/var/www"}),
		engine: service.NewEngine(service.EngineDeps{
			Sites:       sites,
			Templates:   templates,
			Servers:     allocator,
			DNS:         dns,
			SiteSetup:   noopSetup{},
			Apps:        noopSetup{},
			Credentials: credentials.NewGenerator(),
			Locker:      locker,
		}, service.DefaultEngineConfig()),
		servers:    servers,
		dns:        dns,
		serverID:   server.ID,
		templateID: tpl.ID,
	}
}

func (s *scenario) siteCount(t *testing.T) int {
	t.Helper()
	server, err := s.servers.Get(context.Background(), s.serverID)
	require.NoError(t, err)
	return server.CurrentSiteCount
}

func TestProvisionSiteEndToEnd(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	site, err := s.svc.Create(ctx, service.CreateInput{UserID: uuid.New(), TemplateID: s.templateID, Domain: "example-site42.com"})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		site, err = s.engine.Advance(ctx, site.ID)
		require.NoError(t, err)
	}

	require.Equal(t, service.StatusActive, site.Status)
	require.Equal(t, service.ProgressCompleted, site.Progress)
	require.NotNil(t, site.DNSRecordID)
	require.Equal(t, s.serverID, *site.ServerID)
	require.Equal(t, 3, s.siteCount(t))
	require.Equal(t, 1, s.dns.creates)
	require.NotEmpty(t, site.Auth.DBPassword)
	require.Len(t, site.Auth.DBPassword, credentials.DefaultBundlePolicy().DBPasswordLength)

	require.NoError(t, s.svc.Delete(ctx, site.ID))
	require.Equal(t, 2, s.siteCount(t))
}

func TestProvisionSiteDNSFailure(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	s.dns.fail = &service.DNSAPIError{Code: 9109, Message: "Invalid access token", HTTPStatus: 403}

	site, err := s.svc.Create(ctx, service.CreateInput{UserID: uuid.New(), TemplateID: s.templateID, Domain: "example-site42.com"})
	require.NoError(t, err)

	site, err = s.engine.Advance(ctx, site.ID)
	require.NoError(t, err)

	site, err = s.engine.Advance(ctx, site.ID)
	require.Error(t, err)

	stored, getErr := s.svc.Get(ctx, site.ID)
	require.NoError(t, getErr)
	require.Equal(t, service.StatusSetupError, stored.Status)
	require.Equal(t, service.ProgressDNSPending, stored.Progress)
	require.Equal(t, 2, s.siteCount(t))
	require.NotNil(t, stored.LastError)
	require.Contains(t, *stored.LastError, "Invalid access token")

	s.dns.fail = nil
	_, err = s.engine.Reset(ctx, site.ID)
	require.NoError(t, err)
	site, err = s.engine.Advance(ctx, site.ID)
	require.NoError(t, err)
	require.Equal(t, service.ProgressSitePending, site.Progress)
	require.Equal(t, 3, s.siteCount(t))
}
