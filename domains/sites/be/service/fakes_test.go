package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/palmyra-hosting/platform/go/credentials"
)

type memorySites struct {
	mu        sync.Mutex
	sites     map[uuid.UUID]Site
	updateErr error
	updates   int
}

func newMemorySites(sites ...Site) *memorySites {
	m := &memorySites{sites: map[uuid.UUID]Site{}}
	for _, s := range sites {
		m.sites[s.ID] = s
	}
	return m
}

func (m *memorySites) Create(_ context.Context, s Site) (Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sites[s.ID] = s
	return s, nil
}

func (m *memorySites) Get(_ context.Context, id uuid.UUID) (Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sites[id]
	if !ok {
		return Site{}, ErrNotFound
	}
	return s, nil
}

func (m *memorySites) GetByDomain(_ context.Context, domain string) (Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sites {
		if s.Domain == domain {
			return s, nil
		}
	}
	return Site{}, ErrNotFound
}

func (m *memorySites) Update(_ context.Context, s Site) (Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.updateErr != nil {
		err := m.updateErr
		m.updateErr = nil
		return Site{}, err
	}
	if _, ok := m.sites[s.ID]; !ok {
		return Site{}, ErrNotFound
	}
	m.sites[s.ID] = s
	return s, nil
}

func (m *memorySites) List(_ context.Context, opts ListOptions) (ListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Site
	for _, s := range m.sites {
		out = append(out, s)
	}
	return ListResult{Sites: out, TotalItems: len(out)}, nil
}

func (m *memorySites) SoftDelete(_ context.Context, id uuid.UUID, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sites[id]; !ok {
		return ErrNotFound
	}
	delete(m.sites, id)
	return nil
}

type memoryTemplates struct {
	templates map[uuid.UUID]Template
}

func newMemoryTemplates(tpls ...Template) *memoryTemplates {
	m := &memoryTemplates{templates: map[uuid.UUID]Template{}}
	for _, t := range tpls {
		m.templates[t.ID] = t
	}
	return m
}

func (m *memoryTemplates) Create(_ context.Context, t Template) (Template, error) {
	m.templates[t.ID] = t
	return t, nil
}

func (m *memoryTemplates) Get(_ context.Context, id uuid.UUID) (Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	return t, nil
}

type fakeDNS struct {
	mu        sync.Mutex
	records   map[string]DNSRecord
	getErr    error
	createErr error
	creates   int
}

func newFakeDNS() *fakeDNS {
	return &fakeDNS{records: map[string]DNSRecord{}}
}

func (f *fakeDNS) ResolveZone(context.Context, string) (string, error) { return "zone-1", nil }

func (f *fakeDNS) GetRecord(_ context.Context, domain string) (DNSRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return DNSRecord{}, f.getErr
	}
	rec, ok := f.records[domain]
	if !ok {
		return DNSRecord{}, ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeDNS) CreateARecord(_ context.Context, domain, ip string) (DNSRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return DNSRecord{}, f.createErr
	}
	rec := DNSRecord{ID: "rec-" + domain, ZoneID: "zone-1", Type: "A", Name: domain, Content: ip, Proxied: true}
	f.records[domain] = rec
	return rec, nil
}

type fakeAllocator struct {
	mu       sync.Mutex
	server   AllocatedServer
	allocErr error
	reserved int
	released int
	lastReq  ServerRequirements
}

func (f *fakeAllocator) AllocateServer(_ context.Context, req ServerRequirements) (AllocatedServer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = req
	if f.allocErr != nil {
		return AllocatedServer{}, f.allocErr
	}
	if req.PublicIP != "" && req.PublicIP != f.server.PublicIP {
		return AllocatedServer{}, ErrNoCapacity
	}
	f.reserved++
	return f.server, nil
}

func (f *fakeAllocator) ReleaseServer(context.Context, uuid.UUID, uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
	return nil
}

func (f *fakeAllocator) held() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reserved - f.released
}

type fakeSiteSetup struct {
	err   error
	calls []SiteSetup
}

func (f *fakeSiteSetup) EnsureSite(_ context.Context, s SiteSetup) error {
	f.calls = append(f.calls, s)
	return f.err
}

type fakeApps struct {
	err   error
	calls []AppInstall
}

func (f *fakeApps) EnsureApp(_ context.Context, a AppInstall) error {
	f.calls = append(f.calls, a)
	return f.err
}

type fixedCredentials struct {
	calls int
}

func (f *fixedCredentials) NewBundle(credentials.BundlePolicy) (credentials.Bundle, error) {
	f.calls++
	return credentials.Bundle{
		SiteOwner:     "quietotter",
		DBName:        "dbQuietOtter",
		DBUsername:    "uQuiet",
		DBPassword:    "Pa5s!word-longer",
		AdminUser:     "BraveFox",
		AdminPassword: "Adm1n+Secret",
	}, nil
}

type recordingObserver struct {
	mu      sync.Mutex
	results []string
}

func (r *recordingObserver) ObserveCheckpoint(cp SetupProgress, result string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, cp.String()+":"+result)
}

type busyLocker struct{}

func (busyLocker) TryLock(context.Context, uuid.UUID) (func(), bool, error) {
	return nil, false, nil
}
