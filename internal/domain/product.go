package domain

import "strings"

// ProductRecord is one spreadsheet row after column mapping.
type ProductRecord struct {
	ASIN        string   `json:"asin"`
	Name        string   `json:"name"`
	PriceExcel  *float64 `json:"price_excel"`
	CategoryRaw string   `json:"category_raw"`
	Stock       *string  `json:"stock"`
}

// CacheEntry is the enrichment fetched from the marketplace for one ASIN.
type CacheEntry struct {
	ASIN       string `json:"asin"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Price      string `json:"price"`
	Image      string `json:"image"`
	FetchedAt  string `json:"fetched_at"`
	StatusCode int    `json:"status_code"`
}

// Complete reports whether the entry carries both a price and an image.
func (e CacheEntry) Complete() bool {
	return e.Price != "" && e.Image != ""
}

// CacheMap is the whole enrichment cache keyed by ASIN.
type CacheMap map[string]CacheEntry

type Product struct {
	ASIN       string `json:"asin"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	PriceValue int    `json:"price_value"`
	Image      string `json:"image"`
	URL        string `json:"url"`
}

// ImageKey truncates the image locator at its first variant marker so that
// colour variants of the same design share one key.
func (p Product) ImageKey() string {
	if i := strings.Index(p.Image, "._"); i >= 0 {
		return p.Image[:i]
	}
	return p.Image
}

type CardStyle string

const (
	CardItem        CardStyle = "item"
	CardProduct     CardStyle = "product"
	CardPlaceholder CardStyle = "memorial"
	CardRanking     CardStyle = "ranking"
	CardGridItem    CardStyle = "grid-item"
)

// CategoryMeta maps a spreadsheet category label to its page and card style.
type CategoryMeta struct {
	Key  string
	Page string
	Card CardStyle
}

// Group holds products sharing an image key, already in rank order.
type Group []Product

// CuratedEntry is one hand-picked entry of a specified section.
type CuratedEntry struct {
	ASIN          string
	Order         int
	Name          string
	ImageFallback string
}

// CuratedItem is a curated entry resolved against the cache.
type CuratedItem struct {
	Order       int
	DisplayName string
	Product     Product
}

// PriceStatus is one line of the price/availability report.
type PriceStatus struct {
	ASIN     string `json:"asin"`
	Price    string `json:"price"`
	HasPrice bool   `json:"has_price"`
	HasImage bool   `json:"has_image"`
}

// Side output names.
const (
	OutputRecords     = "records"
	OutputCompiled    = "compiled"
	OutputGrouped     = "grouped"
	OutputPriceList   = "price_list"
	OutputPriceStatus = "price_status"
)
