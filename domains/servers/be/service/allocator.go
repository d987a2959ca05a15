package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Allocator picks a server for a new site and reserves a slot on it.
type Allocator struct {
	repo   Repository
	logger *zap.Logger
}

// NewAllocator constructs an Allocator.
func NewAllocator(repo Repository, logger *zap.Logger) *Allocator {
	if repo == nil {
		panic("servers repo is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{repo: repo, logger: logger}
}

// AllocateServer selects the smallest active server that satisfies req, preferring
// the least loaded among equals, and reserves one slot on it. Reservation is an
// atomic compare-and-increment in the repository; when a concurrent caller wins
// the last slot the next candidate is tried.
func (a *Allocator) AllocateServer(ctx context.Context, req Requirements) (Server, error) {
	candidates, err := a.repo.ListEligible(ctx, req)
	if err != nil {
		return Server{}, fmt.Errorf("list eligible servers: %w", err)
	}

	sortCandidates(candidates)

	for _, candidate := range candidates {
		reserved, err := a.repo.Reserve(ctx, candidate.ID)
		if err == nil {
			a.logger.Info("server slot reserved",
				zap.String("server_id", reserved.ID.String()),
				zap.Int("current_site_count", reserved.CurrentSiteCount),
				zap.Int("max_sites", reserved.MaxSites),
			)
			return reserved, nil
		}
		if errors.Is(err, ErrServerFull) || errors.Is(err, ErrNotFound) {
			a.logger.Debug("lost server slot race", zap.String("server_id", candidate.ID.String()))
			continue
		}
		return Server{}, fmt.Errorf("reserve server %s: %w", candidate.ID, err)
	}

	return Server{}, ErrNoCapacity
}

// ReleaseServer returns the slot held for siteID.
func (a *Allocator) ReleaseServer(ctx context.Context, serverID, siteID uuid.UUID) error {
	released, err := a.repo.Release(ctx, serverID)
	if err != nil {
		return fmt.Errorf("release server %s: %w", serverID, err)
	}
	a.logger.Info("server slot released",
		zap.String("server_id", serverID.String()),
		zap.String("site_id", siteID.String()),
		zap.Int("current_site_count", released.CurrentSiteCount),
	)
	return nil
}

// sortCandidates orders by sizing ascending, then by current load.
func sortCandidates(servers []Server) {
	sort.SliceStable(servers, func(i, j int) bool {
		a, b := servers[i], servers[j]
		if a.CPU != b.CPU {
			return a.CPU < b.CPU
		}
		if a.RAMMB != b.RAMMB {
			return a.RAMMB < b.RAMMB
		}
		if a.DiskGB != b.DiskGB {
			return a.DiskGB < b.DiskGB
		}
		return a.CurrentSiteCount < b.CurrentSiteCount
	})
}

// Eligible reports whether s can take a new site under req.
func Eligible(s Server, req Requirements) bool {
	if s.Status != StatusActive || s.CurrentSiteCount >= s.MaxSites {
		return false
	}
	if s.CPU < req.CPU || s.RAMMB < req.RAMMB || s.DiskGB < req.DiskGB {
		return false
	}
	if req.PublicIP != "" && s.PublicIP != req.PublicIP {
		return false
	}
	return true
}
