package provisioning

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

//go:embed templates/vhost.conf.tmpl
var defaultVhostTemplate string

// LocalSiteOptions controls filesystem locations used by LocalSiteProvisioner.
type LocalSiteOptions struct {
	// VhostDir receives one <domain>.conf per site.
	VhostDir string
	// Template overrides the embedded nginx vhost template.
	Template string
}

// LocalSiteProvisioner creates the document root and the nginx vhost on the
// local filesystem. Re-running it leaves an existing site untouched.
type LocalSiteProvisioner struct {
	vhostDir string
	tmpl     *template.Template
	logger   *zap.Logger
}

var _ service.SiteProvisioner = (*LocalSiteProvisioner)(nil)

// NewLocalSiteProvisioner parses the vhost template and returns a provisioner.
func NewLocalSiteProvisioner(opts LocalSiteOptions, logger *zap.Logger) (*LocalSiteProvisioner, error) {
	if opts.VhostDir == "" {
		return nil, errors.New("vhost dir is required")
	}
	text := opts.Template
	if text == "" {
		text = defaultVhostTemplate
	}
	tmpl, err := template.New("vhost").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse vhost template: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalSiteProvisioner{vhostDir: opts.VhostDir, tmpl: tmpl, logger: logger}, nil
}

type vhostModel struct {
	Domain     string
	RootDir    string
	SystemUser string
	LogDir     string
}

// EnsureSite creates RootDirectory (and its logs sibling) and writes the vhost
// when its content changed.
func (p *LocalSiteProvisioner) EnsureSite(ctx context.Context, setup service.SiteSetup) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if setup.RootDirectory == "" || !filepath.IsAbs(setup.RootDirectory) {
		return &service.ValidationError{Fields: service.FieldErrors{"rootDirectory": {"root directory must be an absolute path"}}}
	}
	if setup.SiteOwnerUsername == "" {
		return &service.ValidationError{Fields: service.FieldErrors{"siteOwnerUsername": {"site owner is required"}}}
	}

	logDir := filepath.Join(filepath.Dir(setup.RootDirectory), "logs")
	for _, dir := range []string{setup.RootDirectory, logDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, vhostModel{
		Domain:     setup.Domain,
		RootDir:    setup.RootDirectory,
		SystemUser: setup.SiteOwnerUsername,
		LogDir:     logDir,
	}); err != nil {
		return fmt.Errorf("render vhost: %w", err)
	}

	if err := os.MkdirAll(p.vhostDir, 0o750); err != nil {
		return fmt.Errorf("create vhost dir: %w", err)
	}
	path := filepath.Join(p.vhostDir, setup.Domain+".conf")
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, buf.Bytes()) {
		p.logger.Debug("vhost already up to date", zap.String("path", path))
		return nil
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o640); err != nil {
		return fmt.Errorf("write vhost: %w", err)
	}

	p.logger.Info("site filesystem ready",
		zap.String("site_id", setup.SiteID.String()),
		zap.String("root_directory", setup.RootDirectory),
		zap.String("vhost", path),
	)
	return nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
