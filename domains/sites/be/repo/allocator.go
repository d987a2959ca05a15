package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"

	serversservice "github.com/zenGate-Global/palmyra-hosting/domains/servers/be/service"
	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

// serverAllocator adapts the servers domain allocator to the sites engine.
type serverAllocator struct {
	alloc *serversservice.Allocator
}

// NewServerAllocator exposes a servers Allocator as a sites ServerAllocator.
func NewServerAllocator(alloc *serversservice.Allocator) service.ServerAllocator {
	if alloc == nil {
		panic("server allocator is required")
	}
	return &serverAllocator{alloc: alloc}
}

func (a *serverAllocator) AllocateServer(ctx context.Context, req service.ServerRequirements) (service.AllocatedServer, error) {
	server, err := a.alloc.AllocateServer(ctx, serversservice.Requirements{
		CPU:      req.CPU,
		RAMMB:    req.RAMMB,
		DiskGB:   req.DiskGB,
		PublicIP: req.PublicIP,
	})
	if err != nil {
		if errors.Is(err, serversservice.ErrNoCapacity) {
			return service.AllocatedServer{}, service.ErrNoCapacity
		}
		return service.AllocatedServer{}, err
	}
	return service.AllocatedServer{ID: server.ID, PublicIP: server.PublicIP}, nil
}

func (a *serverAllocator) ReleaseServer(ctx context.Context, serverID, siteID uuid.UUID) error {
	return a.alloc.ReleaseServer(ctx, serverID, siteID)
}
