package app

import (
	"math"
	"strings"

	"catalog_sync/internal/domain"
)

const productURLTemplate = "https://www.amazon.co.jp/dp/"

// BuildProduct merges the cache entry for asin with the fallbacks. It returns
// false when either a price or an image cannot be resolved; such records are
// dropped from every output.
func BuildProduct(asin, name string, cache domain.CacheMap, fallbackPrice *float64, fallbackImage string) (domain.Product, bool) {
	entry := cache[asin]

	price, ok := domain.SanitizePrice(entry.Price)
	if !ok && usableFallback(fallbackPrice) {
		price, ok = domain.FormatYen(int(*fallbackPrice)), true
	}
	if !ok {
		return domain.Product{}, false
	}

	image := entry.Image
	if image == "" {
		image = strings.TrimSpace(fallbackImage)
	}
	if image == "" {
		return domain.Product{}, false
	}

	url := entry.URL
	if url == "" {
		url = productURLTemplate + asin
	}

	display := strings.TrimSpace(name)
	if display == "" {
		display = entry.Title
	}
	if display == "" {
		display = asin
	}

	return domain.Product{
		ASIN:       asin,
		Name:       display,
		Price:      price,
		PriceValue: domain.PriceValue(price),
		Image:      image,
		URL:        url,
	}, true
}

// usableFallback accepts positive spreadsheet prices that fit an int.
func usableFallback(p *float64) bool {
	if p == nil || math.IsNaN(*p) {
		return false
	}
	return *p > 0 && *p < math.MaxInt64
}
