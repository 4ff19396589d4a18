// Package spreadsheet reads the product export (xlsx or csv) into records.
package spreadsheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"catalog_sync/internal/domain"
)

var ErrNoHeader = errors.New("spreadsheet: no header row")

// Load reads the first sheet of an xlsx workbook, or a csv file when the
// extension says so, and maps every data row to a record.
func Load(path string) ([]domain.ProductRecord, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err = readCSV(path)
	} else {
		rows, err = readXLSX(path)
	}
	if err != nil {
		return nil, err
	}
	recs, err := Records(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().Str("path", path).Int("records", len(recs)).Msg("spreadsheet loaded")
	return recs, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, rec)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// Records maps a header row plus data rows to product records. Headers are
// translated through the column table; unknown columns are ignored. Blank
// rows are skipped. An empty stock cell is kept as nil (not reported) while a
// whitespace-only one is kept as text.
func Records(rows [][]string) ([]domain.ProductRecord, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		field := domain.ColumnField(h)
		if _, dup := col[field]; !dup {
			col[field] = i
		}
	}
	cell := func(row []string, field string) (string, bool) {
		i, ok := col[field]
		if !ok || i >= len(row) || row[i] == "" {
			return "", false
		}
		return row[i], true
	}

	out := make([]domain.ProductRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		var rec domain.ProductRecord
		if v, ok := cell(row, "asin"); ok {
			rec.ASIN = strings.TrimSpace(v)
		}
		if v, ok := cell(row, "name"); ok {
			rec.Name = strings.TrimSpace(v)
		}
		if v, ok := cell(row, "category"); ok {
			rec.CategoryRaw = strings.TrimSpace(v)
		}
		if v, ok := cell(row, "price_excel"); ok {
			rec.PriceExcel = parsePrice(v)
		}
		if v, ok := cell(row, "stock"); ok {
			s := v
			rec.Stock = &s
		}
		out = append(out, rec)
	}
	return out, nil
}

// parsePrice reads a price cell. Text, NaN and infinities are not prices.
func parsePrice(v string) *float64 {
	s := strings.NewReplacer(",", "", "¥", "", "￥", "").Replace(strings.TrimSpace(v))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Source is the RecordSource backed by one spreadsheet file.
type Source struct {
	path string
}

func NewSource(path string) *Source { return &Source{path: path} }

func (s *Source) Records(_ context.Context) ([]domain.ProductRecord, error) {
	return Load(s.path)
}
