package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sitesrepo "github.com/zenGate-Global/palmyra-hosting/domains/sites/be/repo"
	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

type fakeAdvancer struct {
	mu       sync.Mutex
	calls    []uuid.UUID
	errs     map[uuid.UUID]error
	inFlight int32
	peak     int32
	delay    time.Duration
}

func (f *fakeAdvancer) Advance(ctx context.Context, id uuid.UUID) (service.Site, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&f.peak)
		if cur <= peak || atomic.CompareAndSwapInt32(&f.peak, peak, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if err, ok := f.errs[id]; ok {
		return service.Site{ID: id}, err
	}
	return service.Site{ID: id}, nil
}

func seedSite(t *testing.T, repo *sitesrepo.MemoryRepository, status service.SiteStatus, mutate func(*service.Site)) service.Site {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	site := service.Site{
		ID:       id,
		UserID:   uuid.New(),
		Domain:   id.String()[:8] + ".example.com",
		Status:   status,
		Progress: service.ProgressInitialized,
	}
	if mutate != nil {
		mutate(&site)
	}
	created, err := repo.Create(context.Background(), site)
	require.NoError(t, err)
	return created
}

func TestSweepAdvancesDueSites(t *testing.T) {
	repo := sitesrepo.NewMemoryRepository()
	now := time.Now().UTC()
	recent := now.Add(-time.Second)

	pending := seedSite(t, repo, service.StatusSetupPending, nil)
	inProgress := seedSite(t, repo, service.StatusSetupInProgress, nil)
	retryable := seedSite(t, repo, service.StatusSetupError, func(s *service.Site) {
		old := now.Add(-time.Hour)
		s.SetupAttempts = 1
		s.LastAttemptAt = &old
	})
	cooling := seedSite(t, repo, service.StatusSetupError, func(s *service.Site) {
		s.SetupAttempts = 1
		s.LastAttemptAt = &recent
	})
	exhausted := seedSite(t, repo, service.StatusSetupError, func(s *service.Site) {
		s.SetupAttempts = 5
		s.LastAttemptAt = &recent
	})
	live := seedSite(t, repo, service.StatusActive, func(s *service.Site) { s.Progress = service.ProgressCompleted })

	adv := &fakeAdvancer{}
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	sweeper := New(adv, repo, Config{
		Concurrency: 2,
		Retry:       RetryPolicy{MaxAttempts: 5, BaseDelay: time.Minute, MaxDelay: time.Hour},
	}, metrics, nil)

	report, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, report.Visited)
	assert.Equal(t, 3, report.Advanced)
	assert.Equal(t, 1, report.Deferred)
	assert.Equal(t, 1, report.Exhausted)
	assert.ElementsMatch(t, []uuid.UUID{pending.ID, inProgress.ID, retryable.ID}, adv.calls)
	assert.NotContains(t, adv.calls, cooling.ID)
	assert.NotContains(t, adv.calls, exhausted.ID)
	assert.NotContains(t, adv.calls, live.ID)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.sweepSites.WithLabelValues(OutcomeAdvanced)))
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.sweepBacklog))
}

func TestSweepCountsBusyAndFailed(t *testing.T) {
	repo := sitesrepo.NewMemoryRepository()
	busy := seedSite(t, repo, service.StatusSetupPending, nil)
	failing := seedSite(t, repo, service.StatusSetupInProgress, nil)

	cpErr := &service.CheckpointError{
		Checkpoint: service.ProgressDNSPending,
		Kind:       service.KindExternalAPI,
		Err:        errors.New("boom"),
	}
	adv := &fakeAdvancer{errs: map[uuid.UUID]error{
		busy.ID:    service.ErrSiteBusy,
		failing.ID: cpErr,
	}}
	report, err := New(adv, repo, Config{}, nil, nil).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Busy)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Advanced)
}

func TestSweepRespectsConcurrencyLimit(t *testing.T) {
	repo := sitesrepo.NewMemoryRepository()
	for range 8 {
		seedSite(t, repo, service.StatusSetupPending, nil)
	}
	adv := &fakeAdvancer{delay: 20 * time.Millisecond}

	report, err := New(adv, repo, Config{Concurrency: 3, PageSize: 3}, nil, nil).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, report.Advanced)
	assert.LessOrEqual(t, atomic.LoadInt32(&adv.peak), int32(3))
	assert.Greater(t, atomic.LoadInt32(&adv.peak), int32(1))
}

func TestSweepStopsOnCancel(t *testing.T) {
	repo := sitesrepo.NewMemoryRepository()
	seedSite(t, repo, service.StatusSetupPending, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(&fakeAdvancer{}, repo, Config{}, nil, nil).Sweep(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunReturnsOnCancel(t *testing.T) {
	repo := sitesrepo.NewMemoryRepository()
	seedSite(t, repo, service.StatusSetupPending, nil)
	adv := &fakeAdvancer{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(adv, repo, Config{Interval: 5 * time.Millisecond}, nil, nil).Run(ctx) }()

	require.Eventually(t, func() bool {
		adv.mu.Lock()
		defer adv.mu.Unlock()
		return len(adv.calls) >= 2
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestMetricsObserveCheckpoint(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveCheckpoint(service.ProgressDNSPending, service.ResultOK, 10*time.Millisecond)
	m.ObserveCheckpoint(service.ProgressDNSPending, string(service.KindCapacity), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkpointTotal.WithLabelValues("DnsPending", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkpointTotal.WithLabelValues("DnsPending", "capacity")))
}
