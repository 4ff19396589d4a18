package app

import (
	"math"
	"strconv"
	"strings"
)

var noStockMarkers = map[string]struct{}{
	"na": {}, "nan": {}, "not answer": {}, "notanswered": {}, "not-answered": {},
	"ノットアンサー": {}, "なし": {},
}

// ParseStock turns a raw stock cell into a quantity. A missing cell counts as
// available (1); blank, marker, unparsable and non-finite text count as zero.
func ParseStock(raw *string) float64 {
	if raw == nil {
		return 1
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return 0
	}
	if _, ok := noStockMarkers[strings.ToLower(s)]; ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

