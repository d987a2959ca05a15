package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zenGate-Global/palmyra-hosting/domains/servers/be/service"
	hostingapi "github.com/zenGate-Global/palmyra-hosting/generated/go/hosting"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/problems"
)

type mockService struct {
	registerFn  func(ctx context.Context, input service.RegisterInput) (service.Server, error)
	getFn       func(ctx context.Context, id uuid.UUID) (service.Server, error)
	listFn      func(ctx context.Context, opts service.ListOptions) (service.ListResult, error)
	setStatusFn func(ctx context.Context, id uuid.UUID, status service.Status) (service.Server, error)
}

func (m *mockService) Register(ctx context.Context, input service.RegisterInput) (service.Server, error) {
	if m.registerFn == nil {
		panic("registerFn not configured")
	}
	return m.registerFn(ctx, input)
}

func (m *mockService) Get(ctx context.Context, id uuid.UUID) (service.Server, error) {
	if m.getFn == nil {
		panic("getFn not configured")
	}
	return m.getFn(ctx, id)
}

func (m *mockService) List(ctx context.Context, opts service.ListOptions) (service.ListResult, error) {
	if m.listFn == nil {
		panic("listFn not configured")
	}
	return m.listFn(ctx, opts)
}

func (m *mockService) SetStatus(ctx context.Context, id uuid.UUID, status service.Status) (service.Server, error) {
	if m.setStatusFn == nil {
		panic("setStatusFn not configured")
	}
	return m.setStatusFn(ctx, id, status)
}

func strp(v string) *string { return &v }

func intp(v int) *int { return &v }

func TestServersRegisterDefaultsToActive(t *testing.T) {
	t.Parallel()

	serverID := uuid.New()
	svc := &mockService{}
	svc.registerFn = func(ctx context.Context, input service.RegisterInput) (service.Server, error) {
		require.Equal(t, service.StatusActive, input.Status)
		require.Equal(t, "ssh_key", input.Authorization.AuthType)
		require.Equal(t, 4, input.CPU)
		require.Empty(t, input.PrivateIP)
		return service.Server{
			ID:            serverID,
			Name:          input.Name,
			Provider:      input.Provider,
			PublicIP:      input.PublicIP,
			Status:        input.Status,
			MaxSites:      input.MaxSites,
			CPU:           input.CPU,
			Authorization: input.Authorization,
		}, nil
	}

	h := New(svc, zaptest.NewLogger(t))

	body := &hostingapi.RegisterServerJSONRequestBody{
		Name:     "web-1",
		Provider: "hetzner",
		PublicIp: "203.0.113.10",
		MaxSites: 50,
		Cpu:      intp(4),
		RamMb:    intp(8192),
		DiskGb:   intp(160),
		Authorization: hostingapi.Authorization{
			AuthType:   hostingapi.AuthorizationAuthTypeSshKey,
			AuthSource: "ops/web-1",
		},
	}
	resp, err := h.RegisterServer(context.Background(), hostingapi.RegisterServerRequestObject{Body: body})
	require.NoError(t, err)

	created, ok := resp.(hostingapi.RegisterServer201JSONResponse)
	require.True(t, ok)
	require.Equal(t, "/api/v1/servers/"+serverID.String(), created.Headers.Location)
	require.Equal(t, "Active", created.Body.Status)
	require.Equal(t, 50, created.Body.MaxSites)
	require.Nil(t, created.Body.PrivateIp)
	require.NotNil(t, created.Body.Authorization)
	require.Equal(t, "ops/web-1", created.Body.Authorization.AuthSource)
}

func TestServersRegisterMissingBody(t *testing.T) {
	t.Parallel()

	h := New(&mockService{}, zaptest.NewLogger(t))

	resp, err := h.RegisterServer(context.Background(), hostingapi.RegisterServerRequestObject{})
	require.NoError(t, err)

	problem, ok := resp.(hostingapi.RegisterServerdefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, problem.StatusCode)
}

func TestServersRegisterValidation(t *testing.T) {
	t.Parallel()

	svc := &mockService{}
	svc.registerFn = func(ctx context.Context, input service.RegisterInput) (service.Server, error) {
		return service.Server{}, &service.ValidationError{Fields: service.FieldErrors{"publicIp": {"publicIp must be an IPv4 address"}}}
	}

	h := New(svc, zaptest.NewLogger(t))

	resp, err := h.RegisterServer(context.Background(), hostingapi.RegisterServerRequestObject{
		Body: &hostingapi.RegisterServerJSONRequestBody{Name: "web-1", PublicIp: "nope"},
	})
	require.NoError(t, err)

	problem, ok := resp.(hostingapi.RegisterServerdefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, problem.StatusCode)
	require.Equal(t, problems.TypeValidation, *problem.Body.Type)
	require.NotNil(t, problem.Body.Errors)
	require.Contains(t, *problem.Body.Errors, "publicIp")
}

func TestServersRegisterRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	h := New(&mockService{}, zaptest.NewLogger(t))

	resp, err := h.RegisterServer(context.Background(), hostingapi.RegisterServerRequestObject{
		Body: &hostingapi.RegisterServerJSONRequestBody{Name: "web-1", Status: strp("Retired")},
	})
	require.NoError(t, err)

	problem, ok := resp.(hostingapi.RegisterServerdefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, problem.StatusCode)
	require.Contains(t, *problem.Body.Errors, "status")
}

func TestServersListFilters(t *testing.T) {
	t.Parallel()

	svc := &mockService{}
	svc.listFn = func(ctx context.Context, opts service.ListOptions) (service.ListResult, error) {
		require.NotNil(t, opts.Status)
		require.Equal(t, service.StatusMaintenance, *opts.Status)
		require.Equal(t, 1, opts.Page)
		require.Equal(t, 10, opts.PageSize)
		return service.ListResult{
			Servers:    []service.Server{{ID: uuid.New(), Name: "web-2", Status: service.StatusMaintenance}},
			Page:       1,
			PageSize:   10,
			TotalItems: 1,
			TotalPages: 1,
		}, nil
	}

	h := New(svc, zaptest.NewLogger(t))

	resp, err := h.ListServers(context.Background(), hostingapi.ListServersRequestObject{
		Params: hostingapi.ListServersParams{Status: strp("maintenance"), PageSize: intp(10)},
	})
	require.NoError(t, err)

	list, ok := resp.(hostingapi.ListServers200JSONResponse)
	require.True(t, ok)
	require.Len(t, list.Items, 1)
	require.Equal(t, "Maintenance", list.Items[0].Status)
}

func TestServersListRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	h := New(&mockService{}, zaptest.NewLogger(t))

	resp, err := h.ListServers(context.Background(), hostingapi.ListServersRequestObject{
		Params: hostingapi.ListServersParams{Status: strp("Retired")},
	})
	require.NoError(t, err)

	problem, ok := resp.(hostingapi.ListServersdefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, problem.StatusCode)
}

func TestServersGetNotFound(t *testing.T) {
	t.Parallel()

	svc := &mockService{}
	svc.getFn = func(ctx context.Context, id uuid.UUID) (service.Server, error) {
		return service.Server{}, service.ErrNotFound
	}

	h := New(svc, zaptest.NewLogger(t))

	resp, err := h.GetServer(context.Background(), hostingapi.GetServerRequestObject{ServerId: uuid.New()})
	require.NoError(t, err)

	problem, ok := resp.(hostingapi.GetServerdefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, problem.StatusCode)
	require.Equal(t, problems.TypeNotFound, *problem.Body.Type)
}

func TestServersGetHidesUnexpectedErrors(t *testing.T) {
	t.Parallel()

	svc := &mockService{}
	svc.getFn = func(ctx context.Context, id uuid.UUID) (service.Server, error) {
		return service.Server{}, errors.New("connection reset")
	}

	h := New(svc, zaptest.NewLogger(t))

	resp, err := h.GetServer(context.Background(), hostingapi.GetServerRequestObject{ServerId: uuid.New()})
	require.NoError(t, err)

	problem, ok := resp.(hostingapi.GetServerdefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusInternalServerError, problem.StatusCode)
	require.NotContains(t, *problem.Body.Detail, "connection reset")
}

func TestServersSetStatus(t *testing.T) {
	t.Parallel()

	serverID := uuid.New()
	svc := &mockService{}
	svc.setStatusFn = func(ctx context.Context, id uuid.UUID, status service.Status) (service.Server, error) {
		require.Equal(t, serverID, id)
		require.Equal(t, service.StatusInactive, status)
		return service.Server{ID: id, Status: status}, nil
	}

	h := New(svc, zaptest.NewLogger(t))

	resp, err := h.SetServerStatus(context.Background(), hostingapi.SetServerStatusRequestObject{
		ServerId: serverID,
		Body:     &hostingapi.SetServerStatusJSONRequestBody{Status: hostingapi.ServerStatusRequestStatusInactive},
	})
	require.NoError(t, err)

	updated, ok := resp.(hostingapi.SetServerStatus200JSONResponse)
	require.True(t, ok)
	require.Equal(t, "Inactive", updated.Status)
}
