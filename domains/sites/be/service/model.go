package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SiteStatus is the coarse lifecycle state of a site.
type SiteStatus int16

const (
	StatusInactive        SiteStatus = 0
	StatusActive          SiteStatus = 1
	StatusMaintenance     SiteStatus = 2
	StatusSuspended       SiteStatus = 3
	StatusSetupPending    SiteStatus = 10
	StatusSetupInProgress SiteStatus = 11
	StatusSetupError      SiteStatus = 12
)

var statusNames = map[SiteStatus]string{
	StatusInactive:        "Inactive",
	StatusActive:          "Active",
	StatusMaintenance:     "Maintenance",
	StatusSuspended:       "Suspended",
	StatusSetupPending:    "SetupPending",
	StatusSetupInProgress: "SetupInProgress",
	StatusSetupError:      "SetupError",
}

func (s SiteStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SiteStatus(%d)", int16(s))
}

// ParseStatus converts a status name (case-insensitive) into a SiteStatus.
func ParseStatus(name string) (SiteStatus, error) {
	for status, label := range statusNames {
		if strings.EqualFold(label, strings.TrimSpace(name)) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown site status %q", name)
}

// InSetup reports whether the engine still owns the site.
func (s SiteStatus) InSetup() bool {
	return s == StatusSetupPending || s == StatusSetupInProgress || s == StatusSetupError
}

// SetupProgress is the persisted checkpoint cursor. Values are ordered.
type SetupProgress int16

const (
	ProgressInitialized SetupProgress = 1
	ProgressDNSPending  SetupProgress = 2
	ProgressSitePending SetupProgress = 3
	ProgressAppPending  SetupProgress = 4
	ProgressCompleted   SetupProgress = 100
)

func (p SetupProgress) String() string {
	switch p {
	case ProgressInitialized:
		return "Initialized"
	case ProgressDNSPending:
		return "DnsPending"
	case ProgressSitePending:
		return "SitePending"
	case ProgressAppPending:
		return "AppPending"
	case ProgressCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("SetupProgress(%d)", int16(p))
	}
}

// next returns the checkpoint that follows p.
func (p SetupProgress) next() SetupProgress {
	switch p {
	case ProgressInitialized:
		return ProgressDNSPending
	case ProgressDNSPending:
		return ProgressSitePending
	case ProgressSitePending:
		return ProgressAppPending
	default:
		return ProgressCompleted
	}
}

// AuthData is the credential bundle persisted as the site's auth blob.
type AuthData struct {
	DBName        string `json:"db_name,omitempty"`
	DBUsername    string `json:"db_username,omitempty"`
	DBPassword    string `json:"db_password,omitempty"`
	AdminUser     string `json:"admin_user,omitempty"`
	AdminPassword string `json:"admin_password,omitempty"`
}

// Empty reports whether no credentials were generated yet.
func (a AuthData) Empty() bool {
	return a == AuthData{}
}

// Site is a user's hosted website. LastErrorKind classifies LastError and is
// empty while no failure is recorded. DeletedAt is set on soft-deleted sites.
type Site struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	TemplateID        uuid.UUID
	ServerID          *uuid.UUID
	Domain            string
	DNSProvider       string
	DNSRecordID       *string
	RootDirectory     string
	SiteOwnerUsername string
	Status            SiteStatus
	Progress          SetupProgress
	Auth              AuthData
	LastError         *string
	LastErrorKind     ErrorKind
	SetupAttempts     int
	LastAttemptAt     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// Template is the blueprint a site is created from. Its sizing floor becomes
// the allocation requirement for the site.
type Template struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	MinCPU    int
	MinRAMMB  int
	MinDiskGB int
	CreatedAt time.Time
}

// ListOptions captures filters and pagination.
type ListOptions struct {
	Page     int
	PageSize int
	Statuses []SiteStatus
	UserID   *uuid.UUID
}

// ListResult wraps paginated sites.
type ListResult struct {
	Sites      []Site
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}
