package app

import (
	"sort"

	"catalog_sync/internal/domain"
)

// GroupAndSort clusters products by image key and ranks them: members by
// price descending then ASIN, groups by their top price descending then the
// first member's ASIN. flat is the concatenation of groups in that order.
func GroupAndSort(products []domain.Product) (flat []domain.Product, groups []domain.Group) {
	byKey := make(map[string]domain.Group)
	var keys []string
	for _, p := range products {
		k := p.ImageKey()
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], p)
	}

	groups = make([]domain.Group, 0, len(keys))
	for _, k := range keys {
		g := byKey[k]
		sort.SliceStable(g, func(i, j int) bool {
			if g[i].PriceValue != g[j].PriceValue {
				return g[i].PriceValue > g[j].PriceValue
			}
			return g[i].ASIN < g[j].ASIN
		})
		groups = append(groups, g)
	}

	// members are sorted, so g[0] carries the group's maximum price
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i][0], groups[j][0]
		if a.PriceValue != b.PriceValue {
			return a.PriceValue > b.PriceValue
		}
		return a.ASIN < b.ASIN
	})

	flat = make([]domain.Product, 0, len(products))
	for _, g := range groups {
		flat = append(flat, g...)
	}
	return flat, groups
}
