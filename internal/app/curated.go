package app

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"catalog_sync/internal/domain"
)

// PrepareCurated resolves every curated section against the cache. Entries
// are taken in explicit order; entries without a usable order (zero) go last
// and are numbered after whatever precedes them. Sections that end up empty are omitted.
func PrepareCurated(sections map[string][]domain.CuratedEntry, cache domain.CacheMap) map[string][]domain.CuratedItem {
	prepared := make(map[string][]domain.CuratedItem, len(sections))
	for key, entries := range sections {
		ordered := make([]domain.CuratedEntry, len(entries))
		copy(ordered, entries)
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i].Order, ordered[j].Order
			if a <= 0 || b <= 0 {
				return a > 0 && b <= 0
			}
			return a < b
		})

		var items []domain.CuratedItem
		for _, e := range ordered {
			asin := strings.TrimSpace(e.ASIN)
			if asin == "" {
				continue
			}
			order := e.Order
			if order <= 0 {
				order = len(items) + 1
			}
			p, ok := BuildProduct(asin, e.Name, cache, nil, e.ImageFallback)
			if !ok {
				log.Debug().Str("section", key).Str("asin", asin).Msg("curated entry dropped")
				continue
			}
			display := e.Name
			if display == "" {
				display = p.Name
			}
			items = append(items, domain.CuratedItem{Order: order, DisplayName: display, Product: p})
		}
		if len(items) > 0 {
			prepared[key] = items
		}
	}
	return prepared
}
