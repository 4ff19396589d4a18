package jsonfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"catalog_sync/internal/domain"
)

type curatedRow struct {
	ASIN          any    `json:"asin"`
	Order         any    `json:"order"`
	Name          string `json:"name"`
	ImageFallback string `json:"image_fallback"`
}

// LoadCurated reads the hand-picked sections file. A missing or malformed
// file yields no sections. Rows without an ASIN are skipped; an order that is
// neither a whole number nor a numeric string becomes zero.
func LoadCurated(path string) map[string][]domain.CuratedEntry {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]domain.CuratedEntry{}
	}
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("curated sections unreadable, ignoring")
		return map[string][]domain.CuratedEntry{}
	}

	var raw map[string][]curatedRow
	if err := json.Unmarshal(b, &raw); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("curated sections malformed, ignoring")
		return map[string][]domain.CuratedEntry{}
	}

	out := make(map[string][]domain.CuratedEntry, len(raw))
	for section, rows := range raw {
		entries := make([]domain.CuratedEntry, 0, len(rows))
		for _, r := range rows {
			asin := scalarString(r.ASIN)
			if asin == "" {
				continue
			}
			entries = append(entries, domain.CuratedEntry{
				ASIN:          asin,
				Order:         orderOf(r.Order),
				Name:          strings.TrimSpace(r.Name),
				ImageFallback: strings.TrimSpace(r.ImageFallback),
			})
		}
		out[section] = entries
	}
	return out
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func orderOf(v any) int {
	switch t := v.(type) {
	case float64:
		if t == math.Trunc(t) && t > 0 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
