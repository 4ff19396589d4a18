package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_sync/internal/app"
	"catalog_sync/internal/domain"
)

var clock = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func stamp(ago time.Duration) string { return clock.Add(-ago).Format(domain.TimestampLayout) }

func entry(asin string, ago time.Duration) domain.CacheEntry {
	return domain.CacheEntry{ASIN: asin, Price: "¥1,000", Image: "https://img/" + asin + ".jpg", FetchedAt: stamp(ago), StatusCode: 200}
}

func newService(f domain.Fetcher, s domain.EntryStore) *app.EnrichmentService {
	svc := app.NewEnrichmentService(f, s, 72*time.Hour, 0)
	svc.SetClock(func() time.Time { return clock })
	return svc
}

func TestUpdate_FreshCacheDoesNotFetch(t *testing.T) {
	store := &fakeStore{m: domain.CacheMap{"A": entry("A", time.Hour), "B": entry("B", 71*time.Hour)}}
	f := &fakeFetcher{}

	got, stats, err := newService(f, store).Update(context.Background(), []string{"A", "B"}, nil)
	require.NoError(t, err)
	assert.Empty(t, f.calls)
	assert.Zero(t, store.saves)
	assert.Equal(t, store.m, got)
	assert.Equal(t, domain.FetchStats{Checked: 2, Hits: 2}, stats)
}

func TestUpdate_RefetchesMissingStaleAndIncomplete(t *testing.T) {
	incomplete := entry("C", time.Hour)
	incomplete.Image = ""
	store := &fakeStore{m: domain.CacheMap{
		"A": entry("A", time.Hour),
		"B": entry("B", 73*time.Hour),
		"C": incomplete,
	}}
	fresh := func(asin string) domain.CacheEntry {
		e := entry(asin, 0)
		e.Price = "¥2,000"
		return e
	}
	f := &fakeFetcher{entries: map[string]domain.CacheEntry{"B": fresh("B"), "C": fresh("C"), "D": fresh("D")}}

	got, stats, err := newService(f, store).Update(context.Background(), []string{"A", "B", "C", "D"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D"}, f.calls)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, "¥1,000", got["A"].Price)
	for _, id := range []string{"B", "C", "D"} {
		assert.Equal(t, "¥2,000", got[id].Price, id)
	}
	assert.Equal(t, domain.FetchStats{Checked: 4, Hits: 1, Fetched: 3}, stats)
}

func TestUpdate_ForceRefreshBypassesFreshEntry(t *testing.T) {
	store := &fakeStore{m: domain.CacheMap{"A": entry("A", time.Hour), "B": entry("B", time.Hour)}}
	f := &fakeFetcher{entries: map[string]domain.CacheEntry{"A": entry("A", 0)}}

	_, _, err := newService(f, store).Update(context.Background(), []string{"A", "B"}, []string{" A ", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, f.calls)
	assert.Equal(t, 1, store.saves)
}

func TestUpdate_FailedFetchKeepsPreviousEntry(t *testing.T) {
	old := entry("A", 100*time.Hour)
	store := &fakeStore{m: domain.CacheMap{"A": old}}
	f := &fakeFetcher{}

	got, stats, err := newService(f, store).Update(context.Background(), []string{"A", "Z"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Z"}, f.calls)
	assert.Equal(t, old, got["A"])
	assert.NotContains(t, got, "Z")
	assert.Zero(t, store.saves, "nothing changed, nothing written")
	assert.Equal(t, 2, stats.Failed)
}

func TestUpdate_BlankIDsIgnored(t *testing.T) {
	f := &fakeFetcher{}
	_, stats, err := newService(f, &fakeStore{}).Update(context.Background(), []string{"", "   "}, nil)
	require.NoError(t, err)
	assert.Empty(t, f.calls)
	assert.Zero(t, stats.Checked)
}

func TestUpdate_LoadError(t *testing.T) {
	boom := errors.New("disk gone")
	_, _, err := newService(&fakeFetcher{}, &fakeStore{err: boom}).Update(context.Background(), []string{"A"}, nil)
	require.ErrorIs(t, err, boom)
}

func TestUpdate_CancelledDuringDelay(t *testing.T) {
	f := &fakeFetcher{entries: map[string]domain.CacheEntry{"A": entry("A", 0), "B": entry("B", 0)}}
	store := &fakeStore{}
	svc := app.NewEnrichmentService(f, store, 72*time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, stats, err := svc.Update(ctx, []string{"A", "B"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"A"}, f.calls)
	assert.Equal(t, 1, stats.Fetched)

	// the entry fetched before the interruption is not lost
	assert.Equal(t, 1, store.saves)
	require.Contains(t, store.m, "A")
	assert.Equal(t, "A", store.m["A"].ASIN)
}

func TestUpdate_CancelledWithoutFetchesSavesNothing(t *testing.T) {
	f := &fakeFetcher{}
	store := &fakeStore{}
	svc := app.NewEnrichmentService(f, store, 72*time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, stats, err := svc.Update(ctx, []string{"A"}, nil)
	require.NoError(t, err, "a failed fetch never reaches the delay")
	assert.Equal(t, 1, stats.Failed)
	assert.Zero(t, store.saves)
}

func TestIsStale(t *testing.T) {
	svc := newService(&fakeFetcher{}, &fakeStore{})
	tests := []struct {
		name      string
		fetchedAt string
		want      bool
	}{
		{"missing", "", true},
		{"garbage", "yesterday", true},
		{"fresh", stamp(time.Hour), false},
		{"at the limit", stamp(72 * time.Hour), false},
		{"past the limit", stamp(72*time.Hour + time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.IsStale(domain.CacheEntry{FetchedAt: tt.fetchedAt}))
		})
	}
}
