package requesttrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntoContextAndFromContext(t *testing.T) {
	audit := AuditInfo{ActorKind: ActorKindOperator, Operator: ptr("ops-1"), RequestID: "req-abc"}

	ctx := IntoContext(context.Background(), audit)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, audit, got)
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	require.False(t, ok)

	require.Equal(t, ActorKindAnonymous, FromContextOrAnonymous(context.Background()).ActorKind)
}

func TestFromOperator(t *testing.T) {
	audit, err := FromOperator("  alice ", "req-xyz")
	require.NoError(t, err)
	require.Equal(t, ActorKindOperator, audit.ActorKind)
	require.Equal(t, "alice", *audit.Operator)
	require.Equal(t, "req-xyz", audit.RequestID)
	require.Equal(t, "operator:alice", audit.Actor())
}

func TestFromOperatorRequiresName(t *testing.T) {
	_, err := FromOperator(" ", "req")
	require.Error(t, err)
}

func TestSystem(t *testing.T) {
	audit := System("sweep-1")
	require.Equal(t, ActorKindSystem, audit.ActorKind)
	require.Nil(t, audit.Operator)
	require.Equal(t, "system", audit.Actor())
}

func ptr(s string) *string { return &s }
