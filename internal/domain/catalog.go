package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Spreadsheet header -> record field.
var columnAliases = map[string]string{
	"出品者SKU": "sku",
	"ASIN 1": "asin",
	"商品名":    "name",
	"価格":     "price_excel",
	"カテゴリ":   "category",
	"在庫数":    "stock",
}

// Spreadsheet category label -> page metadata. Two labels may share a key.
var categoryAliases = map[string]CategoryMeta{
	"レディースピアス":  {Key: "ladies_earrings", Page: "ladies-earrings-page", Card: CardItem},
	"ネックレス":     {Key: "ladies_necklaces", Page: "ladies-necklaces-page", Card: CardItem},
	"セットアイテム":   {Key: "set_items", Page: "set-items-page", Card: CardItem},
	"ペアネックレス":   {Key: "pair_necklaces", Page: "pair-necklaces-page", Card: CardItem},
	"メンズピアス":    {Key: "mens_earrings", Page: "mens-earrings-page", Card: CardItem},
	"メンズネックレス":  {Key: "mens_necklaces", Page: "mens-necklaces-page", Card: CardItem},
	"財布":        {Key: "mens_wallets", Page: "mens-wallets-page", Card: CardItem},
	"ネクタイピン":    {Key: "mens_tiepins", Page: "mens-tiepins-page", Card: CardItem},
	"遺骨ネックレス":   {Key: "memorial_items", Page: "memorial-page", Card: CardPlaceholder},
	"遺骨根クレス":    {Key: "memorial_items", Page: "memorial-page", Card: CardPlaceholder},
	"alivaluxe": {Key: "aliva_luxe", Page: "aliva-luxe-page", Card: CardProduct},
}

// Tables keyed by encoded label, built once from the aliases above.
var (
	columnLookup   = encodeKeys(columnAliases)
	categoryLookup = encodeKeys(categoryAliases)
	categoryOrder  = orderedCategories()
)

// encodeLabel folds a header or category label into an ASCII-escaped key so
// that width variants and stray whitespace from the export still match.
func encodeLabel(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	q := strconv.QuoteToASCII(s)
	return q[1 : len(q)-1]
}

func encodeKeys[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[encodeLabel(k)] = v
	}
	return out
}

// orderedCategories lists each distinct category key once, sorted by key.
func orderedCategories() []CategoryMeta {
	seen := make(map[string]CategoryMeta)
	for _, m := range categoryAliases {
		seen[m.Key] = m
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]CategoryMeta, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

// ColumnField returns the record field for a spreadsheet header, or the
// header itself when it is not in the table.
func ColumnField(header string) string {
	if f, ok := columnLookup[encodeLabel(header)]; ok {
		return f
	}
	return header
}

// NormaliseCategory returns the metadata for a raw category label.
func NormaliseCategory(label string) (CategoryMeta, bool) {
	if strings.TrimSpace(label) == "" {
		return CategoryMeta{}, false
	}
	m, ok := categoryLookup[encodeLabel(label)]
	return m, ok
}

// Categories returns every distinct category, in stable key order.
func Categories() []CategoryMeta {
	out := make([]CategoryMeta, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// TimestampLayout is the fetched_at format stored in the cache.
const TimestampLayout = "2006-01-02T15:04:05"

const yen = "¥"

var leadingNumber = regexp.MustCompile(`\d[\d,]*`)

// SanitizePrice normalises a scraped price label to "¥N,NNN".
func SanitizePrice(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	v := strings.ReplaceAll(raw, "￥", yen)
	m := leadingNumber.FindString(v)
	if m == "" {
		return "", false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return "", false
	}
	return FormatYen(n), true
}

// FormatYen renders n with thousands separators and a yen sign.
func FormatYen(n int) string {
	digits := strconv.Itoa(n)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return yen + b.String()
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// PriceValue extracts the integer amount from a formatted price.
func PriceValue(price string) int {
	n, err := strconv.Atoi(nonDigits.ReplaceAllString(price, ""))
	if err != nil {
		return 0
	}
	return n
}
