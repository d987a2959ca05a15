package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/persistence"
)

type postgresRepository struct {
	store *persistence.SiteStore
}

// NewPostgresRepository constructs a site repository backed by the shared persistence layer.
func NewPostgresRepository(store *persistence.SiteStore) service.Repository {
	if store == nil {
		panic("site store is required")
	}
	return &postgresRepository{store: store}
}

func (r *postgresRepository) Create(ctx context.Context, site service.Site) (service.Site, error) {
	rec, err := toRecord(site)
	if err != nil {
		return service.Site{}, err
	}
	created, err := r.store.Create(ctx, rec)
	if err != nil {
		return service.Site{}, mapError(err)
	}
	return fromRecord(created)
}

func (r *postgresRepository) Get(ctx context.Context, id uuid.UUID) (service.Site, error) {
	rec, err := r.store.Get(ctx, id)
	if err != nil {
		return service.Site{}, mapError(err)
	}
	return fromRecord(rec)
}

func (r *postgresRepository) GetByDomain(ctx context.Context, domain string) (service.Site, error) {
	rec, err := r.store.GetByDomain(ctx, domain)
	if err != nil {
		return service.Site{}, mapError(err)
	}
	return fromRecord(rec)
}

func (r *postgresRepository) Update(ctx context.Context, site service.Site) (service.Site, error) {
	rec, err := toRecord(site)
	if err != nil {
		return service.Site{}, err
	}
	updated, err := r.store.Update(ctx, rec)
	if err != nil {
		return service.Site{}, mapError(err)
	}
	return fromRecord(updated)
}

func (r *postgresRepository) List(ctx context.Context, opts service.ListOptions) (service.ListResult, error) {
	page, pageSize := normalizePage(opts.Page, opts.PageSize)
	filter := persistence.SiteFilter{UserID: opts.UserID}
	for _, s := range opts.Statuses {
		filter.Statuses = append(filter.Statuses, int16(s))
	}

	records, total, err := r.store.List(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return service.ListResult{}, mapError(err)
	}

	sites := make([]service.Site, 0, len(records))
	for _, rec := range records {
		site, err := fromRecord(rec)
		if err != nil {
			return service.ListResult{}, err
		}
		sites = append(sites, site)
	}

	return service.ListResult{
		Sites:      sites,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return mapError(r.store.SoftDelete(ctx, id, at))
}

func toRecord(site service.Site) (persistence.SiteRecord, error) {
	var auth []byte
	if !site.Auth.Empty() {
		encoded, err := json.Marshal(site.Auth)
		if err != nil {
			return persistence.SiteRecord{}, fmt.Errorf("encode auth data: %w", err)
		}
		auth = encoded
	}
	return persistence.SiteRecord{
		SiteID:            site.ID,
		UserID:            site.UserID,
		TemplateID:        site.TemplateID,
		ServerID:          site.ServerID,
		Status:            int16(site.Status),
		SetupProgress:     int16(site.Progress),
		Domain:            site.Domain,
		DNSProvider:       site.DNSProvider,
		DNSRecordID:       site.DNSRecordID,
		RootDirectory:     site.RootDirectory,
		SiteOwnerUsername: site.SiteOwnerUsername,
		AuthData:          auth,
		LastError:         site.LastError,
		LastErrorKind:     string(site.LastErrorKind),
		SetupAttempts:     site.SetupAttempts,
		LastAttemptAt:     site.LastAttemptAt,
		CreatedAt:         site.CreatedAt,
		UpdatedAt:         site.UpdatedAt,
		DeletedAt:         site.DeletedAt,
	}, nil
}

func fromRecord(rec persistence.SiteRecord) (service.Site, error) {
	var auth service.AuthData
	if len(rec.AuthData) > 0 {
		if err := json.Unmarshal(rec.AuthData, &auth); err != nil {
			return service.Site{}, fmt.Errorf("decode auth data for site %s: %w", rec.SiteID, err)
		}
	}
	return service.Site{
		ID:                rec.SiteID,
		UserID:            rec.UserID,
		TemplateID:        rec.TemplateID,
		ServerID:          rec.ServerID,
		Domain:            rec.Domain,
		DNSProvider:       rec.DNSProvider,
		DNSRecordID:       rec.DNSRecordID,
		RootDirectory:     rec.RootDirectory,
		SiteOwnerUsername: rec.SiteOwnerUsername,
		Status:            service.SiteStatus(rec.Status),
		Progress:          service.SetupProgress(rec.SetupProgress),
		Auth:              auth,
		LastError:         rec.LastError,
		LastErrorKind:     service.ErrorKind(rec.LastErrorKind),
		SetupAttempts:     rec.SetupAttempts,
		LastAttemptAt:     rec.LastAttemptAt,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
		DeletedAt:         rec.DeletedAt,
	}, nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return service.ErrNotFound
	case errors.Is(err, persistence.ErrConflict):
		return service.ErrConflictDomain
	default:
		return err
	}
}

type postgresTemplateRepository struct {
	store *persistence.TemplateStore
}

// NewPostgresTemplateRepository constructs a template repository backed by Postgres.
func NewPostgresTemplateRepository(store *persistence.TemplateStore) service.TemplateRepository {
	if store == nil {
		panic("template store is required")
	}
	return &postgresTemplateRepository{store: store}
}

func (r *postgresTemplateRepository) Create(ctx context.Context, tpl service.Template) (service.Template, error) {
	rec, err := r.store.Create(ctx, persistence.TemplateRecord{
		TemplateID: tpl.ID,
		Name:       tpl.Name,
		Slug:       tpl.Slug,
		MinCPU:     tpl.MinCPU,
		MinRAMMB:   tpl.MinRAMMB,
		MinDiskGB:  tpl.MinDiskGB,
		CreatedAt:  tpl.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, persistence.ErrConflict) {
			return service.Template{}, service.ErrConflictTemplate
		}
		var slugErr *persistence.SlugError
		if errors.As(err, &slugErr) {
			return service.Template{}, &service.ValidationError{Fields: service.FieldErrors{"slug": {slugErr.Error()}}}
		}
		return service.Template{}, err
	}
	return templateFromRecord(rec), nil
}

func (r *postgresTemplateRepository) Get(ctx context.Context, id uuid.UUID) (service.Template, error) {
	rec, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return service.Template{}, service.ErrTemplateNotFound
		}
		return service.Template{}, err
	}
	return templateFromRecord(rec), nil
}

func templateFromRecord(rec persistence.TemplateRecord) service.Template {
	return service.Template{
		ID:        rec.TemplateID,
		Name:      rec.Name,
		Slug:      rec.Slug,
		MinCPU:    rec.MinCPU,
		MinRAMMB:  rec.MinRAMMB,
		MinDiskGB: rec.MinDiskGB,
		CreatedAt: rec.CreatedAt,
	}
}
