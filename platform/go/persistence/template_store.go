package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TemplatesTable defines the fully-qualified table for site templates.
const TemplatesTable = "hosting.site_templates"

// TemplateRecord represents a site_templates row.
type TemplateRecord struct {
	TemplateID uuid.UUID `db:"template_id"`
	Name       string    `db:"name"`
	Slug       string    `db:"slug"`
	MinCPU     int       `db:"min_cpu"`
	MinRAMMB   int       `db:"min_ram_mb"`
	MinDiskGB  int       `db:"min_disk_gb"`
	CreatedAt  time.Time `db:"created_at"`
}

// TemplateStore provides access to the site_templates table.
type TemplateStore struct {
	pool *pgxpool.Pool
}

// NewTemplateStore creates a store; assumes BootstrapSchema already created the table.
func NewTemplateStore(ctx context.Context, pool *pgxpool.Pool) (*TemplateStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &TemplateStore{pool: pool}, nil
}

// Create inserts a template.
func (s *TemplateStore) Create(ctx context.Context, rec TemplateRecord) (TemplateRecord, error) {
	slug, err := NormalizeSlug(rec.Slug)
	if err != nil {
		return TemplateRecord{}, err
	}
	query := fmt.Sprintf(`
        INSERT INTO %s (template_id, name, slug, min_cpu, min_ram_mb, min_disk_gb, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING template_id, name, slug, min_cpu, min_ram_mb, min_disk_gb, created_at`, TemplatesTable)
	created, err := scanTemplateRecord(s.pool.QueryRow(ctx, query,
		rec.TemplateID, rec.Name, slug, rec.MinCPU, rec.MinRAMMB, rec.MinDiskGB, rec.CreatedAt))
	if isUniqueViolation(err) {
		return TemplateRecord{}, ErrConflict
	}
	return created, err
}

// Get fetches a live template by id.
func (s *TemplateStore) Get(ctx context.Context, id uuid.UUID) (TemplateRecord, error) {
	query := fmt.Sprintf(`SELECT template_id, name, slug, min_cpu, min_ram_mb, min_disk_gb, created_at
        FROM %s WHERE template_id = $1 AND deleted_at IS NULL`, TemplatesTable)
	return scanTemplateRecord(s.pool.QueryRow(ctx, query, id))
}

func scanTemplateRecord(row pgx.Row) (TemplateRecord, error) {
	var rec TemplateRecord
	if err := row.Scan(&rec.TemplateID, &rec.Name, &rec.Slug, &rec.MinCPU, &rec.MinRAMMB, &rec.MinDiskGB, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TemplateRecord{}, ErrNotFound
		}
		return TemplateRecord{}, err
	}
	return rec, nil
}
