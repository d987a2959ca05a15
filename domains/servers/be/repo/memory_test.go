package repo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/palmyra-hosting/domains/servers/be/service"
)

func seedServer(t *testing.T, r *MemoryRepository, maxSites, count int) service.Server {
	t.Helper()
	s, err := r.Create(context.Background(), service.Server{
		ID:               uuid.New(),
		Name:             "web",
		Status:           service.StatusActive,
		MaxSites:         maxSites,
		CurrentSiteCount: count,
		CPU:              2,
		RAMMB:            4096,
		DiskGB:           80,
		CreatedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)
	return s
}

func TestConcurrentAllocationOfLastSlot(t *testing.T) {
	t.Parallel()

	repository := NewMemoryRepository()
	server := seedServer(t, repository, 5, 4)
	alloc := service.NewAllocator(repository, nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		noCap   int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := alloc.AllocateServer(context.Background(), service.Requirements{})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, service.ErrNoCapacity):
				noCap++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, success)
	require.Equal(t, 1, noCap)

	got, err := repository.Get(context.Background(), server.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.CurrentSiteCount)
}

func TestReleaseNeverGoesNegative(t *testing.T) {
	t.Parallel()

	repository := NewMemoryRepository()
	server := seedServer(t, repository, 3, 0)

	got, err := repository.Release(context.Background(), server.ID)
	require.NoError(t, err)
	require.Zero(t, got.CurrentSiteCount)
}

func TestReserveRejectsInactiveServer(t *testing.T) {
	t.Parallel()

	repository := NewMemoryRepository()
	server := seedServer(t, repository, 3, 0)
	_, err := repository.UpdateStatus(context.Background(), server.ID, service.StatusMaintenance)
	require.NoError(t, err)

	_, err = repository.Reserve(context.Background(), server.ID)
	require.ErrorIs(t, err, service.ErrServerFull)

	_, err = repository.Reserve(context.Background(), uuid.New())
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestListPaginatesAndFilters(t *testing.T) {
	t.Parallel()

	repository := NewMemoryRepository()
	for i := 0; i < 3; i++ {
		seedServer(t, repository, 2, 0)
	}
	inactive := seedServer(t, repository, 2, 0)
	_, err := repository.UpdateStatus(context.Background(), inactive.ID, service.StatusInactive)
	require.NoError(t, err)

	active := service.StatusActive
	result, err := repository.List(context.Background(), service.ListOptions{Page: 1, PageSize: 2, Status: &active})
	require.NoError(t, err)
	require.Len(t, result.Servers, 2)
	require.Equal(t, 3, result.TotalItems)
	require.Equal(t, 2, result.TotalPages)

	result, err = repository.List(context.Background(), service.ListOptions{Page: 5, PageSize: 2})
	require.NoError(t, err)
	require.Empty(t, result.Servers)
	require.Equal(t, 4, result.TotalItems)
}
