package provisioning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

// InstallMarker is written into the document root once the app is installed.
const InstallMarker = ".palmyra-installed"

// LocalAppInstaller seeds the document root with a placeholder application
// and records the install with a marker file.
type LocalAppInstaller struct {
	logger *zap.Logger
	now    func() time.Time
}

var _ service.AppInstaller = (*LocalAppInstaller)(nil)

// NewLocalAppInstaller returns an installer writing to the site's root directory.
func NewLocalAppInstaller(logger *zap.Logger) *LocalAppInstaller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalAppInstaller{logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

type installRecord struct {
	SiteID      string    `json:"site_id"`
	Domain      string    `json:"domain"`
	DBName      string    `json:"db_name"`
	AdminUser   string    `json:"admin_user"`
	InstalledAt time.Time `json:"installed_at"`
}

// EnsureApp installs once; an existing marker means the work is done.
// Secrets are never written to disk.
func (i *LocalAppInstaller) EnsureApp(ctx context.Context, install service.AppInstall) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if install.Auth.Empty() {
		return &service.ValidationError{Fields: service.FieldErrors{"auth": {"credential bundle is required"}}}
	}

	marker := filepath.Join(install.RootDirectory, InstallMarker)
	if _, err := os.Stat(marker); err == nil {
		i.logger.Debug("app already installed", zap.String("site_id", install.SiteID.String()))
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat install marker: %w", err)
	}

	if _, err := os.Stat(install.RootDirectory); err != nil {
		return fmt.Errorf("document root missing: %w", err)
	}

	index := filepath.Join(install.RootDirectory, "index.html")
	if _, err := os.Stat(index); errors.Is(err, fs.ErrNotExist) {
		page := fmt.Sprintf("<!doctype html><title>%s</title><p>%s is being set up.</p>\n", install.Domain, install.Domain)
		if err := writeFileAtomic(index, []byte(page), 0o644); err != nil {
			return fmt.Errorf("write index: %w", err)
		}
	}

	rec, err := json.Marshal(installRecord{
		SiteID:      install.SiteID.String(),
		Domain:      install.Domain,
		DBName:      install.Auth.DBName,
		AdminUser:   install.Auth.AdminUser,
		InstalledAt: i.now(),
	})
	if err != nil {
		return fmt.Errorf("encode install marker: %w", err)
	}
	if err := writeFileAtomic(marker, rec, 0o600); err != nil {
		return fmt.Errorf("write install marker: %w", err)
	}

	i.logger.Info("app installed", zap.String("site_id", install.SiteID.String()), zap.String("domain", install.Domain))
	return nil
}
