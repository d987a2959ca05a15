package provisioning

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

func testInstall(root string) service.AppInstall {
	return service.AppInstall{
		SiteID:        uuid.New(),
		Domain:        "example.com",
		RootDirectory: root,
		Auth: service.AuthData{
			DBName: "wp_brave_otter", DBUsername: "u_brave_otter", DBPassword: "db-secret",
			AdminUser: "admin_brave", AdminPassword: "admin-secret",
		},
	}
}

func TestEnsureAppWritesMarkerOnce(t *testing.T) {
	root := t.TempDir()
	installer := NewLocalAppInstaller(nil)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	installer.now = func() time.Time { return fixed }

	install := testInstall(root)
	require.NoError(t, installer.EnsureApp(context.Background(), install))

	raw, err := os.ReadFile(filepath.Join(root, InstallMarker))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")

	var rec installRecord
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, install.SiteID.String(), rec.SiteID)
	assert.Equal(t, "wp_brave_otter", rec.DBName)
	assert.True(t, rec.InstalledAt.Equal(fixed))

	_, err = os.Stat(filepath.Join(root, "index.html"))
	require.NoError(t, err)

	installer.now = func() time.Time { return fixed.Add(time.Hour) }
	require.NoError(t, installer.EnsureApp(context.Background(), install))
	again, err := os.ReadFile(filepath.Join(root, InstallMarker))
	require.NoError(t, err)
	assert.Equal(t, raw, again)
}

func TestEnsureAppKeepsExistingIndex(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("custom"), 0o644))

	require.NoError(t, NewLocalAppInstaller(nil).EnsureApp(context.Background(), testInstall(root)))
	content, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "custom", string(content))
}

func TestEnsureAppRequiresCredentials(t *testing.T) {
	install := testInstall(t.TempDir())
	install.Auth = service.AuthData{}

	err := NewLocalAppInstaller(nil).EnsureApp(context.Background(), install)
	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestEnsureAppMissingRoot(t *testing.T) {
	err := NewLocalAppInstaller(nil).EnsureApp(context.Background(), testInstall(filepath.Join(t.TempDir(), "missing")))
	require.Error(t, err)
}
