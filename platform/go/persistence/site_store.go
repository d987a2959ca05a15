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

// SitesTable defines the fully-qualified table for user sites.
const SitesTable = "hosting.user_sites"

const siteColumns = `site_id, user_id, template_id, server_id, status, setup_progress, domain,
        dns_provider, dns_record_id, root_directory, site_owner_username, auth_data,
        last_error, last_error_kind, setup_attempts, last_attempt_at, created_at, updated_at, deleted_at`

// SiteRecord represents a user_sites row.
type SiteRecord struct {
	SiteID            uuid.UUID  `db:"site_id"`
	UserID            uuid.UUID  `db:"user_id"`
	TemplateID        uuid.UUID  `db:"template_id"`
	ServerID          *uuid.UUID `db:"server_id"`
	Status            int16      `db:"status"`
	SetupProgress     int16      `db:"setup_progress"`
	Domain            string     `db:"domain"`
	DNSProvider       string     `db:"dns_provider"`
	DNSRecordID       *string    `db:"dns_record_id"`
	RootDirectory     string     `db:"root_directory"`
	SiteOwnerUsername string     `db:"site_owner_username"`
	AuthData          []byte     `db:"auth_data"`
	LastError         *string    `db:"last_error"`
	LastErrorKind     string     `db:"last_error_kind"`
	SetupAttempts     int        `db:"setup_attempts"`
	LastAttemptAt     *time.Time `db:"last_attempt_at"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	DeletedAt         *time.Time `db:"deleted_at"`
}

// SiteFilter narrows List queries.
type SiteFilter struct {
	Statuses []int16
	UserID   *uuid.UUID
}

// SiteStore provides access to the user_sites table.
type SiteStore struct {
	pool      *pgxpool.Pool
	validator *BlobValidator
}

// NewSiteStore creates a store; assumes BootstrapSchema already created the table.
func NewSiteStore(ctx context.Context, pool *pgxpool.Pool, validator *BlobValidator) (*SiteStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	if validator == nil {
		validator = NewBlobValidator()
	}
	return &SiteStore{pool: pool, validator: validator}, nil
}

// Create inserts a new site row.
func (s *SiteStore) Create(ctx context.Context, rec SiteRecord) (SiteRecord, error) {
	if rec.SiteID == uuid.Nil {
		return SiteRecord{}, errors.New("site id is required")
	}
	authData, err := s.authPayload(rec.AuthData)
	if err != nil {
		return SiteRecord{}, err
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (
            site_id, user_id, template_id, server_id, status, setup_progress, domain,
            dns_provider, dns_record_id, root_directory, site_owner_username, auth_data,
            last_error, last_error_kind, setup_attempts, last_attempt_at, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$17)
        RETURNING %s
    `, SitesTable, siteColumns)

	row := s.pool.QueryRow(ctx, query,
		rec.SiteID, rec.UserID, rec.TemplateID, rec.ServerID, rec.Status, rec.SetupProgress, rec.Domain,
		rec.DNSProvider, rec.DNSRecordID, rec.RootDirectory, rec.SiteOwnerUsername, authData,
		rec.LastError, rec.LastErrorKind, rec.SetupAttempts, rec.LastAttemptAt, rec.CreatedAt,
	)
	created, err := scanSiteRecord(row)
	if err != nil {
		if isUniqueViolation(err) {
			return SiteRecord{}, ErrConflict
		}
		return SiteRecord{}, err
	}
	return created, nil
}

// Update overwrites the mutable columns of a live site.
func (s *SiteStore) Update(ctx context.Context, rec SiteRecord) (SiteRecord, error) {
	authData, err := s.authPayload(rec.AuthData)
	if err != nil {
		return SiteRecord{}, err
	}

	query := fmt.Sprintf(`
        UPDATE %s SET
            server_id = $2, status = $3, setup_progress = $4, dns_record_id = $5,
            root_directory = $6, site_owner_username = $7, auth_data = $8, last_error = $9,
            last_error_kind = $10, setup_attempts = $11, last_attempt_at = $12, updated_at = $13
        WHERE site_id = $1 AND deleted_at IS NULL
        RETURNING %s
    `, SitesTable, siteColumns)

	row := s.pool.QueryRow(ctx, query,
		rec.SiteID, rec.ServerID, rec.Status, rec.SetupProgress, rec.DNSRecordID,
		rec.RootDirectory, rec.SiteOwnerUsername, authData, rec.LastError,
		rec.LastErrorKind, rec.SetupAttempts, rec.LastAttemptAt, rec.UpdatedAt,
	)
	return scanSiteRecord(row)
}

// Get fetches a live site by id.
func (s *SiteStore) Get(ctx context.Context, id uuid.UUID) (SiteRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE site_id = $1 AND deleted_at IS NULL`, siteColumns, SitesTable)
	return scanSiteRecord(s.pool.QueryRow(ctx, query, id))
}

// GetByDomain fetches the live site for a domain.
func (s *SiteStore) GetByDomain(ctx context.Context, domain string) (SiteRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE domain = $1 AND deleted_at IS NULL`, siteColumns, SitesTable)
	return scanSiteRecord(s.pool.QueryRow(ctx, query, domain))
}

// List returns paginated live sites ordered by id (ids are time-sortable).
func (s *SiteStore) List(ctx context.Context, filter SiteFilter, limit, offset int) ([]SiteRecord, int, error) {
	where := "WHERE deleted_at IS NULL"
	args := []any{}
	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		where += fmt.Sprintf(" AND status = ANY($%d)", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}

	var total int
	if err := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s %s", SitesTable, where), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY site_id ASC LIMIT %d OFFSET %d`,
		siteColumns, SitesTable, where, limit, offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []SiteRecord
	for rows.Next() {
		rec, err := scanSiteRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// SoftDelete tombstones a site; the row is kept for auditing.
func (s *SiteStore) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET deleted_at = $2, updated_at = $2 WHERE site_id = $1 AND deleted_at IS NULL`, SitesTable),
		id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SiteStore) authPayload(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return []byte("{}"), nil
	}
	if err := s.validator.Validate(BlobSiteAuthData, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func scanSiteRecord(row pgx.Row) (SiteRecord, error) {
	var rec SiteRecord
	if err := row.Scan(
		&rec.SiteID, &rec.UserID, &rec.TemplateID, &rec.ServerID, &rec.Status, &rec.SetupProgress, &rec.Domain,
		&rec.DNSProvider, &rec.DNSRecordID, &rec.RootDirectory, &rec.SiteOwnerUsername, &rec.AuthData,
		&rec.LastError, &rec.LastErrorKind, &rec.SetupAttempts, &rec.LastAttemptAt, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.DeletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SiteRecord{}, ErrNotFound
		}
		return SiteRecord{}, err
	}
	return rec, nil
}
