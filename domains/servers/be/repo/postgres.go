package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zenGate-Global/palmyra-hosting/domains/servers/be/service"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/persistence"
)

type postgresRepository struct {
	store *persistence.ServerStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(store *persistence.ServerStore) service.Repository {
	if store == nil {
		panic("server store is required")
	}
	return &postgresRepository{store: store}
}

func (r *postgresRepository) Create(ctx context.Context, s service.Server) (service.Server, error) {
	auth, err := json.Marshal(s.Authorization)
	if err != nil {
		return service.Server{}, fmt.Errorf("encode authorization: %w", err)
	}
	rec, err := r.store.Create(ctx, persistence.ServerRecord{
		ServerID:         s.ID,
		Name:             s.Name,
		Provider:         s.Provider,
		InstanceType:     s.InstanceType,
		InstanceID:       s.InstanceID,
		PublicIP:         s.PublicIP,
		PrivateIP:        s.PrivateIP,
		PanelURL:         s.PanelURL,
		Status:           int16(s.Status),
		MaxSites:         s.MaxSites,
		CurrentSiteCount: s.CurrentSiteCount,
		CPU:              s.CPU,
		RAMMB:            s.RAMMB,
		DiskGB:           s.DiskGB,
		Authorization:    auth,
		CreatedAt:        s.CreatedAt,
	})
	if err != nil {
		return service.Server{}, mapError(err)
	}
	return fromRecord(rec)
}

func (r *postgresRepository) Get(ctx context.Context, id uuid.UUID) (service.Server, error) {
	rec, err := r.store.Get(ctx, id)
	if err != nil {
		return service.Server{}, mapError(err)
	}
	return fromRecord(rec)
}

func (r *postgresRepository) List(ctx context.Context, opts service.ListOptions) (service.ListResult, error) {
	page, pageSize := normalizePage(opts.Page, opts.PageSize)
	var status *int16
	if opts.Status != nil {
		v := int16(*opts.Status)
		status = &v
	}

	records, total, err := r.store.List(ctx, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return service.ListResult{}, mapError(err)
	}

	servers := make([]service.Server, 0, len(records))
	for _, rec := range records {
		s, err := fromRecord(rec)
		if err != nil {
			return service.ListResult{}, err
		}
		servers = append(servers, s)
	}

	return service.ListResult{
		Servers:    servers,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *postgresRepository) ListEligible(ctx context.Context, req service.Requirements) ([]service.Server, error) {
	records, err := r.store.ListEligible(ctx, persistence.EligibilityFilter{
		MinCPU:    req.CPU,
		MinRAMMB:  req.RAMMB,
		MinDiskGB: req.DiskGB,
		PublicIP:  req.PublicIP,
	})
	if err != nil {
		return nil, mapError(err)
	}
	servers := make([]service.Server, 0, len(records))
	for _, rec := range records {
		s, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		servers = append(servers, s)
	}
	return servers, nil
}

func (r *postgresRepository) Reserve(ctx context.Context, id uuid.UUID) (service.Server, error) {
	rec, err := r.store.Reserve(ctx, id)
	if err != nil {
		return service.Server{}, mapError(err)
	}
	return fromRecord(rec)
}

func (r *postgresRepository) Release(ctx context.Context, id uuid.UUID) (service.Server, error) {
	rec, err := r.store.Release(ctx, id)
	if err != nil {
		return service.Server{}, mapError(err)
	}
	return fromRecord(rec)
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status service.Status) (service.Server, error) {
	rec, err := r.store.UpdateStatus(ctx, id, int16(status))
	if err != nil {
		return service.Server{}, mapError(err)
	}
	return fromRecord(rec)
}

func fromRecord(rec persistence.ServerRecord) (service.Server, error) {
	var auth service.Authorization
	if len(rec.Authorization) > 0 {
		if err := json.Unmarshal(rec.Authorization, &auth); err != nil {
			return service.Server{}, fmt.Errorf("decode authorization for server %s: %w", rec.ServerID, err)
		}
	}
	return service.Server{
		ID:               rec.ServerID,
		Name:             rec.Name,
		Provider:         rec.Provider,
		InstanceType:     rec.InstanceType,
		InstanceID:       rec.InstanceID,
		PublicIP:         rec.PublicIP,
		PrivateIP:        rec.PrivateIP,
		PanelURL:         rec.PanelURL,
		Status:           service.Status(rec.Status),
		MaxSites:         rec.MaxSites,
		CurrentSiteCount: rec.CurrentSiteCount,
		CPU:              rec.CPU,
		RAMMB:            rec.RAMMB,
		DiskGB:           rec.DiskGB,
		Authorization:    auth,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return service.ErrNotFound
	case errors.Is(err, persistence.ErrNoFreeSlot):
		return service.ErrServerFull
	default:
		return err
	}
}
