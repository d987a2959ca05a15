package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ServersTable defines the fully-qualified table for hosting servers.
const ServersTable = "hosting.hosting_servers"

// Server status codes shared with the servers domain.
const (
	ServerStatusInactive    int16 = 0
	ServerStatusActive      int16 = 1
	ServerStatusMaintenance int16 = 2
)

const serverColumns = `server_id, name, provider, instance_type, instance_id, public_ip, private_ip,
        panel_url, status, max_sites, current_site_count, cpu, ram_mb, disk_gb,
        authorization_data, created_at, updated_at, deleted_at`

// ServerRecord represents a hosting_servers row.
type ServerRecord struct {
	ServerID         uuid.UUID  `db:"server_id"`
	Name             string     `db:"name"`
	Provider         string     `db:"provider"`
	InstanceType     string     `db:"instance_type"`
	InstanceID       string     `db:"instance_id"`
	PublicIP         string     `db:"public_ip"`
	PrivateIP        string     `db:"private_ip"`
	PanelURL         string     `db:"panel_url"`
	Status           int16      `db:"status"`
	MaxSites         int        `db:"max_sites"`
	CurrentSiteCount int        `db:"current_site_count"`
	CPU              int        `db:"cpu"`
	RAMMB            int        `db:"ram_mb"`
	DiskGB           int        `db:"disk_gb"`
	Authorization    []byte     `db:"authorization_data"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

// EligibilityFilter narrows servers that can accept a new site.
type EligibilityFilter struct {
	MinCPU    int
	MinRAMMB  int
	MinDiskGB int
	PublicIP  string
}

// ServerStore provides access to the hosting_servers table.
type ServerStore struct {
	pool      *pgxpool.Pool
	validator *BlobValidator
}

// NewServerStore creates a store; assumes BootstrapSchema already created the table.
func NewServerStore(ctx context.Context, pool *pgxpool.Pool, validator *BlobValidator) (*ServerStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	if validator == nil {
		validator = NewBlobValidator()
	}
	return &ServerStore{pool: pool, validator: validator}, nil
}

// Create inserts a new server.
func (s *ServerStore) Create(ctx context.Context, rec ServerRecord) (ServerRecord, error) {
	if rec.ServerID == uuid.Nil {
		return ServerRecord{}, errors.New("server id is required")
	}
	if err := s.validator.Validate(BlobServerAuthorization, rec.Authorization); err != nil {
		return ServerRecord{}, err
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (
            server_id, name, provider, instance_type, instance_id, public_ip, private_ip,
            panel_url, status, max_sites, current_site_count, cpu, ram_mb, disk_gb,
            authorization_data, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$16)
        RETURNING %s
    `, ServersTable, serverColumns)

	row := s.pool.QueryRow(ctx, query,
		rec.ServerID, rec.Name, rec.Provider, rec.InstanceType, rec.InstanceID, rec.PublicIP,
		rec.PrivateIP, rec.PanelURL, rec.Status, rec.MaxSites, rec.CurrentSiteCount, rec.CPU,
		rec.RAMMB, rec.DiskGB, rec.Authorization, rec.CreatedAt,
	)
	return scanServerRecord(row)
}

// Get fetches a live server by id.
func (s *ServerStore) Get(ctx context.Context, id uuid.UUID) (ServerRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE server_id = $1 AND deleted_at IS NULL`, serverColumns, ServersTable)
	return scanServerRecord(s.pool.QueryRow(ctx, query, id))
}

// List returns paginated servers with an optional status filter.
func (s *ServerStore) List(ctx context.Context, status *int16, limit, offset int) ([]ServerRecord, int, error) {
	where := "WHERE deleted_at IS NULL"
	args := []any{}
	if status != nil {
		where += " AND status = $1"
		args = append(args, *status)
	}

	var total int
	if err := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s %s", ServersTable, where), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY created_at ASC LIMIT %d OFFSET %d`,
		serverColumns, ServersTable, where, limit, offset)
	records, err := s.queryServers(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListEligible returns active servers with at least one free slot that satisfy the filter,
// ordered smallest first and then by current load.
func (s *ServerStore) ListEligible(ctx context.Context, filter EligibilityFilter) ([]ServerRecord, error) {
	conds := []string{
		"deleted_at IS NULL",
		"status = $1",
		"current_site_count < max_sites",
		"cpu >= $2",
		"ram_mb >= $3",
		"disk_gb >= $4",
	}
	args := []any{ServerStatusActive, filter.MinCPU, filter.MinRAMMB, filter.MinDiskGB}
	if filter.PublicIP != "" {
		conds = append(conds, "public_ip = $5")
		args = append(args, filter.PublicIP)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s
        ORDER BY cpu ASC, ram_mb ASC, disk_gb ASC, current_site_count ASC, server_id ASC`,
		serverColumns, ServersTable, strings.Join(conds, " AND "))
	return s.queryServers(ctx, query, args...)
}

// Reserve atomically takes one slot on the server. The conditional update is the
// capacity guard: concurrent callers racing for the last slot see exactly one success.
func (s *ServerStore) Reserve(ctx context.Context, id uuid.UUID) (ServerRecord, error) {
	query := fmt.Sprintf(`
        UPDATE %s
        SET current_site_count = current_site_count + 1, updated_at = now()
        WHERE server_id = $1 AND deleted_at IS NULL AND status = $2 AND current_site_count < max_sites
        RETURNING %s`, ServersTable, serverColumns)

	rec, err := scanServerRecord(s.pool.QueryRow(ctx, query, id, ServerStatusActive))
	if errors.Is(err, ErrNotFound) {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return ServerRecord{}, getErr
		}
		return ServerRecord{}, ErrNoFreeSlot
	}
	return rec, err
}

// Release returns one slot to the server; the count never drops below zero.
func (s *ServerStore) Release(ctx context.Context, id uuid.UUID) (ServerRecord, error) {
	query := fmt.Sprintf(`
        UPDATE %s
        SET current_site_count = GREATEST(current_site_count - 1, 0), updated_at = now()
        WHERE server_id = $1 AND deleted_at IS NULL
        RETURNING %s`, ServersTable, serverColumns)
	return scanServerRecord(s.pool.QueryRow(ctx, query, id))
}

// UpdateStatus changes the operational status of a server.
func (s *ServerStore) UpdateStatus(ctx context.Context, id uuid.UUID, status int16) (ServerRecord, error) {
	query := fmt.Sprintf(`
        UPDATE %s SET status = $2, updated_at = now()
        WHERE server_id = $1 AND deleted_at IS NULL
        RETURNING %s`, ServersTable, serverColumns)
	return scanServerRecord(s.pool.QueryRow(ctx, query, id, status))
}

func (s *ServerStore) queryServers(ctx context.Context, query string, args ...any) ([]ServerRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ServerRecord
	for rows.Next() {
		rec, err := scanServerRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func scanServerRecord(row pgx.Row) (ServerRecord, error) {
	var rec ServerRecord
	if err := row.Scan(
		&rec.ServerID, &rec.Name, &rec.Provider, &rec.InstanceType, &rec.InstanceID, &rec.PublicIP,
		&rec.PrivateIP, &rec.PanelURL, &rec.Status, &rec.MaxSites, &rec.CurrentSiteCount, &rec.CPU,
		&rec.RAMMB, &rec.DiskGB, &rec.Authorization, &rec.CreatedAt, &rec.UpdatedAt, &rec.DeletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServerRecord{}, ErrNotFound
		}
		return ServerRecord{}, err
	}
	return rec, nil
}
