package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Errors returned by the servers domain.
var (
	ErrNotFound = errors.New("server not found")
	// ErrNoCapacity means no active server can take another site.
	ErrNoCapacity = errors.New("no hosting server with free capacity")
	// ErrServerFull is returned by Repository.Reserve when a slot was lost to a concurrent reservation.
	ErrServerFull = errors.New("server has no free slot")
)

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

// ValidationError is returned when the input payload is invalid.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	return "validation error"
}

// Status is the operational state of a hosting server.
type Status int16

const (
	StatusInactive    Status = 0
	StatusActive      Status = 1
	StatusMaintenance Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "Inactive"
	case StatusActive:
		return "Active"
	case StatusMaintenance:
		return "Maintenance"
	default:
		return "Unknown"
	}
}

// ParseStatus converts a label (case-insensitive) into a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inactive":
		return StatusInactive, nil
	case "active":
		return StatusActive, nil
	case "maintenance":
		return StatusMaintenance, nil
	default:
		return 0, fmt.Errorf("unknown server status %q", s)
	}
}

// Authorization describes how operators administer the server.
type Authorization struct {
	AuthType   string `json:"auth_type"`
	AuthSource string `json:"auth_source"`
}

var authTypes = map[string]bool{"ssh_key": true, "password": true, "api_token": true}

// Server is a compute resource that hosts many sites.
type Server struct {
	ID               uuid.UUID
	Name             string
	Provider         string
	InstanceType     string
	InstanceID       string
	PublicIP         string
	PrivateIP        string
	PanelURL         string
	Status           Status
	MaxSites         int
	CurrentSiteCount int
	CPU              int
	RAMMB            int
	DiskGB           int
	Authorization    Authorization
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FreeSlots reports how many more sites the server can take.
func (s Server) FreeSlots() int {
	if s.CurrentSiteCount >= s.MaxSites {
		return 0
	}
	return s.MaxSites - s.CurrentSiteCount
}

// Requirements is the sizing floor a server must satisfy for a new site.
// PublicIP, when set, pins allocation to the server owning that address.
type Requirements struct {
	CPU      int
	RAMMB    int
	DiskGB   int
	PublicIP string
}

// ListOptions captures filters and pagination.
type ListOptions struct {
	Page     int
	PageSize int
	Status   *Status
}

// ListResult wraps paginated servers.
type ListResult struct {
	Servers    []Server
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// RegisterInput is the operator request to add a server to the pool.
type RegisterInput struct {
	Name          string
	Provider      string
	InstanceType  string
	InstanceID    string
	PublicIP      string
	PrivateIP     string
	PanelURL      string
	Status        Status
	MaxSites      int
	CPU           int
	RAMMB         int
	DiskGB        int
	Authorization Authorization
}

// Repository abstracts persistence. Reserve and Release must be atomic with
// respect to each other for the same server.
type Repository interface {
	Create(ctx context.Context, s Server) (Server, error)
	Get(ctx context.Context, id uuid.UUID) (Server, error)
	List(ctx context.Context, opts ListOptions) (ListResult, error)
	ListEligible(ctx context.Context, req Requirements) ([]Server, error)
	Reserve(ctx context.Context, id uuid.UUID) (Server, error)
	Release(ctx context.Context, id uuid.UUID) (Server, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Server, error)
}

// Service provides hosting server registry operations.
type Service struct {
	repo Repository
}

// New constructs a Service with required dependencies.
func New(repo Repository) *Service {
	if repo == nil {
		panic("servers repo is required")
	}
	return &Service{repo: repo}
}

// Register validates and stores a new server.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Server, error) {
	fields := FieldErrors{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fields.add("name", "name is required")
	}
	provider := strings.TrimSpace(input.Provider)
	if provider == "" {
		fields.add("provider", "provider is required")
	}
	if ip := net.ParseIP(strings.TrimSpace(input.PublicIP)); ip == nil || ip.To4() == nil {
		fields.add("publicIp", "publicIp must be an IPv4 address")
	}
	if input.PrivateIP != "" && net.ParseIP(strings.TrimSpace(input.PrivateIP)) == nil {
		fields.add("privateIp", "privateIp must be an IP address")
	}
	if input.MaxSites < 1 {
		fields.add("maxSites", "maxSites must be at least 1")
	}
	if input.CPU < 0 || input.RAMMB < 0 || input.DiskGB < 0 {
		fields.add("sizing", "cpu, ramMb and diskGb must not be negative")
	}
	if !authTypes[input.Authorization.AuthType] {
		fields.add("authorization.authType", "authType must be one of ssh_key, password, api_token")
	}
	if strings.TrimSpace(input.Authorization.AuthSource) == "" {
		fields.add("authorization.authSource", "authSource is required")
	}
	if input.Status.String() == "Unknown" {
		fields.add("status", "unknown status")
	}

	if len(fields) > 0 {
		return Server{}, &ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, Server{
		ID:            uuid.New(),
		Name:          name,
		Provider:      provider,
		InstanceType:  strings.TrimSpace(input.InstanceType),
		InstanceID:    strings.TrimSpace(input.InstanceID),
		PublicIP:      strings.TrimSpace(input.PublicIP),
		PrivateIP:     strings.TrimSpace(input.PrivateIP),
		PanelURL:      strings.TrimSpace(input.PanelURL),
		Status:        input.Status,
		MaxSites:      input.MaxSites,
		CPU:           input.CPU,
		RAMMB:         input.RAMMB,
		DiskGB:        input.DiskGB,
		Authorization: input.Authorization,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

// Get returns a server by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Server, error) {
	return s.repo.Get(ctx, id)
}

// List servers with optional status filter.
func (s *Service) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	return s.repo.List(ctx, opts)
}

// SetStatus moves a server in or out of the allocation pool. Sites already on
// the server are unaffected.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (Server, error) {
	if status.String() == "Unknown" {
		return Server{}, &ValidationError{Fields: FieldErrors{"status": {"unknown status"}}}
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
