package root

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"bootstrap", "schema"},
		{"server", "register"},
		{"server", "list"},
		{"server", "status"},
		{"template", "create"},
		{"site", "create"},
		{"site", "advance"},
		{"site", "reset"},
		{"site", "check-https"},
		{"site", "sweep"},
	} {
		cmd, _, err := Root().Find(path)
		require.NoError(t, err, path)
		require.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestSiteAdvanceRejectsBadID(t *testing.T) {
	var out bytes.Buffer
	Root().SetOut(&out)
	Root().SetErr(&out)
	Root().SetArgs([]string{"site", "advance", "not-a-uuid"})
	t.Cleanup(func() { Root().SetArgs(nil) })

	err := Root().Execute()
	require.ErrorContains(t, err, "invalid site id")
}
