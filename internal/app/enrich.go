package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"catalog_sync/internal/adapters/observability"
	"catalog_sync/internal/domain"
)

type EnrichmentService struct {
	fetcher domain.Fetcher
	store   domain.EntryStore
	maxAge  time.Duration
	delay   time.Duration
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) bool
}

func NewEnrichmentService(f domain.Fetcher, s domain.EntryStore, maxAge, delay time.Duration) *EnrichmentService {
	return &EnrichmentService{
		fetcher: f,
		store:   s,
		maxAge:  maxAge,
		delay:   delay,
		now:     func() time.Time { return time.Now().UTC() },
		sleep:   sleepCtx,
	}
}

// Update refreshes every id that is forced, missing, incomplete or stale and
// returns the merged cache. The store is rewritten only when something changed.
// A failed fetch leaves the previous entry, if any, untouched.
func (s *EnrichmentService) Update(ctx context.Context, ids []string, force []string) (domain.CacheMap, domain.FetchStats, error) {
	var stats domain.FetchStats
	cache, err := s.store.Load(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("load cache: %w", err)
	}
	if cache == nil {
		cache = domain.CacheMap{}
	}

	forced := make(map[string]struct{}, len(force))
	for _, id := range force {
		if id = strings.TrimSpace(id); id != "" {
			forced[id] = struct{}{}
		}
	}

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		stats.Checked++
		if _, isForced := forced[id]; !isForced {
			if entry, ok := cache[id]; ok && entry.Complete() && !s.IsStale(entry) {
				stats.Hits++
				observability.ObserveCache("enrichment", "hit")
				log.Debug().Str("asin", id).Msg("cache hit")
				continue
			}
		}
		observability.ObserveCache("enrichment", "miss")

		fetched, err := s.fetcher.Fetch(ctx, id)
		if err != nil {
			stats.Failed++
			observability.ObserveCache("enrichment", "fail")
			log.Warn().Str("asin", id).Err(err).Msg("fetch failed, keeping previous entry")
			continue
		}
		cache[id] = fetched
		stats.Fetched++
		observability.ObserveCache("enrichment", "set")

		// courtesy pause towards the marketplace
		if !s.sleep(ctx, s.delay) {
			return nil, stats, s.saveInterrupted(ctx, cache, stats)
		}
	}

	if stats.Fetched == 0 {
		log.Info().Int("count", stats.Checked).Int("failed", stats.Failed).Msg("cache up to date")
		return cache, stats, nil
	}
	if err := s.store.Save(ctx, cache); err != nil {
		return nil, stats, fmt.Errorf("save cache: %w", err)
	}
	log.Info().Int("count", stats.Checked).Int("fetched", stats.Fetched).Int("failed", stats.Failed).Msg("cache saved")
	return cache, stats, nil
}

// saveInterrupted keeps what was fetched before ctx was cancelled and returns
// the cancellation cause.
func (s *EnrichmentService) saveInterrupted(ctx context.Context, cache domain.CacheMap, stats domain.FetchStats) error {
	cause := ctx.Err()
	if stats.Fetched == 0 {
		return cause
	}
	if err := s.store.Save(context.WithoutCancel(ctx), cache); err != nil {
		return fmt.Errorf("save cache after %v: %w", cause, err)
	}
	log.Warn().Int("fetched", stats.Fetched).Err(cause).Msg("run interrupted, fetched entries saved")
	return cause
}

// IsStale reports whether an entry must be fetched again: no timestamp, an
// unparsable one, or older than the freshness window.
func (s *EnrichmentService) IsStale(e domain.CacheEntry) bool {
	if e.FetchedAt == "" {
		return true
	}
	at, err := time.Parse(domain.TimestampLayout, e.FetchedAt)
	if err != nil {
		return true
	}
	return s.now().Sub(at) > s.maxAge
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
