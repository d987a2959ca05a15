package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

// MemoryRepository keeps sites in process; deleted sites are tombstoned with
// DeletedAt.
type MemoryRepository struct {
	mu    sync.RWMutex
	sites map[uuid.UUID]service.Site
}

// NewMemoryRepository returns an empty in-process site repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sites: make(map[uuid.UUID]service.Site)}
}

var _ service.Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) Create(_ context.Context, site service.Site) (service.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sites {
		if existing.DeletedAt == nil && existing.Domain == site.Domain {
			return service.Site{}, service.ErrConflictDomain
		}
	}
	r.sites[site.ID] = cloneSite(site)
	return cloneSite(site), nil
}

func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (service.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.liveLocked(id)
}

func (r *MemoryRepository) GetByDomain(_ context.Context, domain string) (service.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, site := range r.sites {
		if site.DeletedAt == nil && strings.EqualFold(site.Domain, domain) {
			return cloneSite(site), nil
		}
	}
	return service.Site{}, service.ErrNotFound
}

func (r *MemoryRepository) Update(_ context.Context, site service.Site) (service.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.liveLocked(site.ID); err != nil {
		return service.Site{}, err
	}
	r.sites[site.ID] = cloneSite(site)
	return cloneSite(site), nil
}

func (r *MemoryRepository) List(_ context.Context, opts service.ListOptions) (service.ListResult, error) {
	r.mu.RLock()
	var matched []service.Site
	for _, site := range r.sites {
		if site.DeletedAt != nil {
			continue
		}
		if len(opts.Statuses) > 0 && !containsStatus(opts.Statuses, site.Status) {
			continue
		}
		if opts.UserID != nil && site.UserID != *opts.UserID {
			continue
		}
		matched = append(matched, cloneSite(site))
	}
	r.mu.RUnlock()

	// UUIDv7 ids sort by creation time.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID.String() < matched[j].ID.String() })

	page, pageSize := normalizePage(opts.Page, opts.PageSize)
	start := min((page-1)*pageSize, len(matched))
	end := min(start+pageSize, len(matched))

	return service.ListResult{
		Sites:      matched[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(matched),
		TotalPages: totalPages(len(matched), pageSize),
	}, nil
}

func (r *MemoryRepository) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	site, err := r.liveLocked(id)
	if err != nil {
		return err
	}
	site.DeletedAt = &at
	site.UpdatedAt = at
	r.sites[id] = site
	return nil
}

func (r *MemoryRepository) liveLocked(id uuid.UUID) (service.Site, error) {
	site, ok := r.sites[id]
	if !ok || site.DeletedAt != nil {
		return service.Site{}, service.ErrNotFound
	}
	return cloneSite(site), nil
}

// cloneSite copies pointer fields so callers cannot mutate stored state.
func cloneSite(s service.Site) service.Site {
	if s.ServerID != nil {
		v := *s.ServerID
		s.ServerID = &v
	}
	if s.DNSRecordID != nil {
		v := *s.DNSRecordID
		s.DNSRecordID = &v
	}
	if s.LastError != nil {
		v := *s.LastError
		s.LastError = &v
	}
	if s.LastAttemptAt != nil {
		v := *s.LastAttemptAt
		s.LastAttemptAt = &v
	}
	if s.DeletedAt != nil {
		v := *s.DeletedAt
		s.DeletedAt = &v
	}
	return s
}

func containsStatus(list []service.SiteStatus, s service.SiteStatus) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}

// MemoryTemplateRepository keeps templates in process.
type MemoryTemplateRepository struct {
	mu        sync.RWMutex
	templates map[uuid.UUID]service.Template
}

// NewMemoryTemplateRepository returns an empty template repository.
func NewMemoryTemplateRepository() *MemoryTemplateRepository {
	return &MemoryTemplateRepository{templates: make(map[uuid.UUID]service.Template)}
}

var _ service.TemplateRepository = (*MemoryTemplateRepository)(nil)

func (r *MemoryTemplateRepository) Create(_ context.Context, tpl service.Template) (service.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.templates {
		if existing.Slug == tpl.Slug {
			return service.Template{}, service.ErrConflictTemplate
		}
	}
	r.templates[tpl.ID] = tpl
	return tpl, nil
}

func (r *MemoryTemplateRepository) Get(_ context.Context, id uuid.UUID) (service.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[id]
	if !ok {
		return service.Template{}, service.ErrTemplateNotFound
	}
	return tpl, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
