package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

func newSite(t *testing.T, domain string, status service.SiteStatus) service.Site {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return service.Site{ID: id, UserID: uuid.New(), Domain: domain, Status: status, Progress: service.ProgressInitialized}
}

func TestMemoryRepositoryIsolatesCallers(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	site := newSite(t, "example.com", service.StatusSetupPending)
	msg := "boom"
	site.LastError = &msg
	_, err := repo.Create(ctx, site)
	require.NoError(t, err)

	msg = "changed"
	got, err := repo.Get(ctx, site.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastError)
	assert.Equal(t, "boom", *got.LastError)

	*got.LastError = "mutated"
	again, err := repo.Get(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, "boom", *again.LastError)
}

func TestMemoryRepositoryDomainUniqueAmongLiveSites(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := newSite(t, "example.com", service.StatusSetupPending)
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newSite(t, "example.com", service.StatusSetupPending))
	require.ErrorIs(t, err, service.ErrConflictDomain)

	require.NoError(t, repo.SoftDelete(ctx, first.ID, time.Now()))
	_, err = repo.Get(ctx, first.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	_, err = repo.Update(ctx, first)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.ErrorIs(t, repo.SoftDelete(ctx, first.ID, time.Now()), service.ErrNotFound)

	second := newSite(t, "example.com", service.StatusSetupPending)
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)
	byDomain, err := repo.GetByDomain(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, second.ID, byDomain.ID)
}

func TestMemoryRepositoryListFiltersAndPaginates(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	owner := uuid.New()
	var setupIDs []uuid.UUID
	for i, domain := range []string{"a.example.com", "b.example.com", "c.example.com"} {
		s := newSite(t, domain, service.StatusSetupInProgress)
		if i == 0 {
			s.UserID = owner
		}
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
		setupIDs = append(setupIDs, s.ID)
	}
	_, err := repo.Create(ctx, newSite(t, "live.example.com", service.StatusActive))
	require.NoError(t, err)

	page1, err := repo.List(ctx, service.ListOptions{Page: 1, PageSize: 2, Statuses: []service.SiteStatus{service.StatusSetupInProgress}})
	require.NoError(t, err)
	assert.Equal(t, 3, page1.TotalItems)
	assert.Equal(t, 2, page1.TotalPages)
	require.Len(t, page1.Sites, 2)
	assert.Equal(t, setupIDs[0], page1.Sites[0].ID)

	page2, err := repo.List(ctx, service.ListOptions{Page: 2, PageSize: 2, Statuses: []service.SiteStatus{service.StatusSetupInProgress}})
	require.NoError(t, err)
	require.Len(t, page2.Sites, 1)
	assert.Equal(t, setupIDs[2], page2.Sites[0].ID)

	mine, err := repo.List(ctx, service.ListOptions{UserID: &owner})
	require.NoError(t, err)
	require.Len(t, mine.Sites, 1)
	assert.Equal(t, setupIDs[0], mine.Sites[0].ID)

	all, err := repo.List(ctx, service.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.TotalItems)
	assert.Equal(t, 20, all.PageSize)
}

func TestMemoryTemplateRepository(t *testing.T) {
	repo := NewMemoryTemplateRepository()
	ctx := context.Background()

	tpl := service.Template{ID: uuid.New(), Name: "WordPress", Slug: "wordpress"}
	_, err := repo.Create(ctx, tpl)
	require.NoError(t, err)

	_, err = repo.Create(ctx, service.Template{ID: uuid.New(), Name: "Other", Slug: "wordpress"})
	require.ErrorIs(t, err, service.ErrConflictTemplate)

	got, err := repo.Get(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "WordPress", got.Name)

	_, err = repo.Get(ctx, uuid.New())
	require.ErrorIs(t, err, service.ErrTemplateNotFound)
}

func TestMemoryRepositorySoftDeleteKeepsTombstone(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	site := newSite(t, "example.org", service.StatusActive)
	_, err := repo.Create(ctx, site)
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SoftDelete(ctx, site.ID, at))

	repo.mu.RLock()
	stored, ok := repo.sites[site.ID]
	repo.mu.RUnlock()
	require.True(t, ok)
	require.NotNil(t, stored.DeletedAt)
	assert.Equal(t, at, *stored.DeletedAt)
	assert.Equal(t, at, stored.UpdatedAt)

	listed, err := repo.List(ctx, service.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, listed.Sites)
	assert.Zero(t, listed.TotalItems)
}
