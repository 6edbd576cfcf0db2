// Package loader reads the engine's reference data: the product catalog,
// material and test price tables, and RFP documents.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
)

// LoadProducts reads the product catalog CSV. Expected header:
// sku,name,voltage,conductor,insulation_thickness_mm,std. Catalog rows are
// identity data, so a row with an unparseable thickness is an error rather
// than a silent zero.
func LoadProducts(path string) ([]model.CatalogProduct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open catalog %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "loader: read catalog header")
	}
	colIdx := mapColumns(header)

	var products []model.CatalogProduct
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "loader: read catalog row")
		}

		sku := getCol(record, colIdx, "sku")
		if sku == "" {
			continue
		}

		rawThickness := getCol(record, colIdx, "insulation_thickness_mm")
		thickness, err := strconv.ParseFloat(rawThickness, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "loader: sku %s: bad insulation_thickness_mm %q", sku, rawThickness)
		}

		products = append(products, model.CatalogProduct{
			SKU:                   sku,
			Name:                  getCol(record, colIdx, "name"),
			Voltage:               getCol(record, colIdx, "voltage"),
			Conductor:             getCol(record, colIdx, "conductor"),
			InsulationThicknessMM: thickness,
			Std:                   getCol(record, colIdx, "std"),
		})
	}

	zap.L().Info("loader: catalog loaded",
		zap.String("path", path),
		zap.Int("products", len(products)),
	)
	return products, nil
}

// LoadPriceTable reads a price CSV into a code→unit price map. The code
// column is the first non-empty of code, sku, test_code, name, so the same
// loader serves both the material and the test price tables. An
// unparseable unit_price coerces to 0.0 rather than failing; a missing
// file yields an empty table with a warning, so a run degrades to
// zero-priced, warned line items instead of aborting.
func LoadPriceTable(path string) (map[string]float64, error) {
	prices := make(map[string]float64)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Warn("loader: price table not found", zap.String("path", path))
			return prices, nil
		}
		return nil, eris.Wrapf(err, "loader: open price table %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read price table header %s", path)
	}
	colIdx := mapColumns(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "loader: read price table row %s", path)
		}

		code := firstNonEmpty(
			getCol(record, colIdx, "code"),
			getCol(record, colIdx, "sku"),
			getCol(record, colIdx, "test_code"),
			getCol(record, colIdx, "name"),
		)
		if code == "" {
			continue
		}

		price, err := strconv.ParseFloat(getCol(record, colIdx, "unit_price"), 64)
		if err != nil {
			price = 0.0
		}
		prices[code] = price
	}

	zap.L().Info("loader: price table loaded",
		zap.String("path", path),
		zap.Int("entries", len(prices)),
	)
	return prices, nil
}

// LoadRFPs reads every *.json file in dir, in lexical filename order. The
// order is preserved through the whole pipeline: it determines quote and
// warning sequencing in the batch output.
func LoadRFPs(dir string) ([]model.RFP, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: read rfp dir %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var rfps []model.RFP
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "loader: read rfp %s", path)
		}

		var rfp model.RFP
		if err := json.Unmarshal(data, &rfp); err != nil {
			return nil, eris.Wrapf(err, "loader: decode rfp %s", path)
		}
		if _, err := time.Parse("2006-01-02", rfp.DueDate); err != nil {
			return nil, eris.Wrapf(err, "loader: rfp %s: bad due_date %q", rfp.ID, rfp.DueDate)
		}

		rfps = append(rfps, rfp)
	}

	zap.L().Info("loader: rfps loaded",
		zap.String("dir", dir),
		zap.Int("rfps", len(rfps)),
	)
	return rfps, nil
}

// mapColumns builds a column name → index map from a CSV header row.
func mapColumns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return idx
}

// getCol returns the trimmed value of a named column, or "" if absent.
func getCol(record []string, colIdx map[string]int, name string) string {
	i, ok := colIdx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
