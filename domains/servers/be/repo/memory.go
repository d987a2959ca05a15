package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/palmyra-hosting/domains/servers/be/service"
)

// MemoryRepository keeps servers in process. Reserve and Release hold the
// write lock so the capacity check and increment are one step.
type MemoryRepository struct {
	mu      sync.RWMutex
	servers map[uuid.UUID]service.Server
	now     func() time.Time
}

// NewMemoryRepository returns an empty in-process repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		servers: make(map[uuid.UUID]service.Server),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var _ service.Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) Create(_ context.Context, s service.Server) (service.Server, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.servers[s.ID] = s
	return s, nil
}

func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (service.Server, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.servers[id]
	if !ok {
		return service.Server{}, service.ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepository) List(_ context.Context, opts service.ListOptions) (service.ListResult, error) {
	r.mu.RLock()
	all := make([]service.Server, 0, len(r.servers))
	for _, s := range r.servers {
		if opts.Status != nil && s.Status != *opts.Status {
			continue
		}
		all = append(all, s)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	page, pageSize := normalizePage(opts.Page, opts.PageSize)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	return service.ListResult{
		Servers:    all[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(all),
		TotalPages: totalPages(len(all), pageSize),
	}, nil
}

func (r *MemoryRepository) ListEligible(_ context.Context, req service.Requirements) ([]service.Server, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []service.Server
	for _, s := range r.servers {
		if service.Eligible(s, req) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *MemoryRepository) Reserve(_ context.Context, id uuid.UUID) (service.Server, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.servers[id]
	if !ok {
		return service.Server{}, service.ErrNotFound
	}
	if s.Status != service.StatusActive || s.CurrentSiteCount >= s.MaxSites {
		return service.Server{}, service.ErrServerFull
	}
	s.CurrentSiteCount++
	s.UpdatedAt = r.now()
	r.servers[id] = s
	return s, nil
}

func (r *MemoryRepository) Release(_ context.Context, id uuid.UUID) (service.Server, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.servers[id]
	if !ok {
		return service.Server{}, service.ErrNotFound
	}
	if s.CurrentSiteCount > 0 {
		s.CurrentSiteCount--
	}
	s.UpdatedAt = r.now()
	r.servers[id] = s
	return s, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status service.Status) (service.Server, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.servers[id]
	if !ok {
		return service.Server{}, service.ErrNotFound
	}
	s.Status = status
	s.UpdatedAt = r.now()
	r.servers[id] = s
	return s, nil
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
