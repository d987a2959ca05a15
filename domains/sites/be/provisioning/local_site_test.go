package provisioning

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

func TestEnsureSiteCreatesRootAndVhost(t *testing.T) {
	base := t.TempDir()
	vhosts := filepath.Join(base, "vhosts")
	p, err := NewLocalSiteProvisioner(LocalSiteOptions{VhostDir: vhosts}, nil)
	require.NoError(t, err)

	setup := service.SiteSetup{
		SiteID:            uuid.New(),
		ServerID:          uuid.New(),
		Domain:            "example.com",
		RootDirectory:     filepath.Join(base, "www", "example.com", "public_html"),
		SiteOwnerUsername: "brave_otter",
	}
	require.NoError(t, p.EnsureSite(context.Background(), setup))

	info, err := os.Stat(setup.RootDirectory)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	conf, err := os.ReadFile(filepath.Join(vhosts, "example.com.conf"))
	require.NoError(t, err)
	assert.Contains(t, string(conf), "server_name example.com www.example.com;")
	assert.Contains(t, string(conf), "root "+setup.RootDirectory+";")
	assert.Contains(t, string(conf), "brave_otter.sock")

	// a second run is a no-op
	require.NoError(t, p.EnsureSite(context.Background(), setup))
	again, err := os.ReadFile(filepath.Join(vhosts, "example.com.conf"))
	require.NoError(t, err)
	assert.Equal(t, conf, again)
}

func TestEnsureSiteCustomTemplate(t *testing.T) {
	base := t.TempDir()
	p, err := NewLocalSiteProvisioner(LocalSiteOptions{
		VhostDir: base,
		Template: "{{ .Domain }} -> {{ .RootDir }}",
	}, nil)
	require.NoError(t, err)

	root := filepath.Join(base, "site", "public_html")
	require.NoError(t, p.EnsureSite(context.Background(), service.SiteSetup{
		Domain: "example.org", RootDirectory: root, SiteOwnerUsername: "owner",
	}))
	conf, err := os.ReadFile(filepath.Join(base, "example.org.conf"))
	require.NoError(t, err)
	assert.Equal(t, "example.org -> "+root, string(conf))
}

func TestEnsureSiteRejectsRelativeRoot(t *testing.T) {
	p, err := NewLocalSiteProvisioner(LocalSiteOptions{VhostDir: t.TempDir()}, nil)
	require.NoError(t, err)

	err = p.EnsureSite(context.Background(), service.SiteSetup{
		Domain: "example.com", RootDirectory: "relative/dir", SiteOwnerUsername: "owner",
	})
	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "rootDirectory")
}

func TestNewLocalSiteProvisionerValidates(t *testing.T) {
	_, err := NewLocalSiteProvisioner(LocalSiteOptions{}, nil)
	require.Error(t, err)

	_, err = NewLocalSiteProvisioner(LocalSiteOptions{VhostDir: t.TempDir(), Template: "{{ .Domain "}, nil)
	require.Error(t, err)
}
