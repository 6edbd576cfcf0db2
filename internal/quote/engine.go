// Package quote composes the matcher and pricer into per-RFP quotes and
// batch results.
package quote

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/config"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/matcher"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/pricer"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/testnorm"
)

// Engine prices RFPs against a fixed catalog and price tables. All
// reference data is loaded once and never mutated during a run.
type Engine struct {
	catalog        []model.CatalogProduct
	materialPrices map[string]float64
	testPrices     map[string]float64
	matcherCfg     config.MatcherConfig
	pricer         *pricer.Pricer
	currency       string
}

// NewEngine creates an Engine over the given reference data.
func NewEngine(
	catalog []model.CatalogProduct,
	materialPrices map[string]float64,
	testPrices map[string]float64,
	matcherCfg config.MatcherConfig,
	p *pricer.Pricer,
	currency string,
) *Engine {
	return &Engine{
		catalog:        catalog,
		materialPrices: materialPrices,
		testPrices:     testPrices,
		matcherCfg:     matcherCfg,
		pricer:         p,
		currency:       currency,
	}
}

// BuildQuote matches and prices every scope item of one RFP. A scope item
// that cannot be matched (missing specs, empty catalog) aborts the quote:
// correctness requires every item to be priced or explicitly reported.
// Missing price data never aborts; it degrades to zero-priced, warned
// line items.
func (e *Engine) BuildQuote(rfp model.RFP) (*model.Quote, error) {
	requiredTests := testnorm.Normalize(rfp.Tests)

	q := &model.Quote{
		RFPID:    rfp.ID,
		Title:    rfp.Title,
		Currency: e.currency,
		Items:    []model.PriceLineItem{},
		Warnings: []model.Warning{},
	}

	grandTotal := 0.0
	for _, item := range rfp.Scope {
		result, err := matcher.Match(item, e.catalog, e.matcherCfg)
		if err != nil {
			return nil, eris.Wrapf(err, "quote: rfp %s", rfp.ID)
		}

		line, warnings := e.pricer.Price(
			item, result.TopSKU, result.SpecMatch,
			requiredTests, e.materialPrices, e.testPrices,
		)
		q.Items = append(q.Items, line)
		q.Warnings = append(q.Warnings, warnings...)

		// Sum of already-rounded per-item final costs; the grand total is
		// rounded once more below, not re-derived from raw amounts.
		grandTotal += line.FinalCost
	}
	q.GrandTotal = math.Round(grandTotal*100) / 100

	zap.L().Info("quote: built",
		zap.String("rfp_id", rfp.ID),
		zap.Int("items", len(q.Items)),
		zap.Int("warnings", len(q.Warnings)),
		zap.Float64("grand_total", q.GrandTotal),
	)

	return q, nil
}

// BuildBatch quotes each RFP in input order. A failed RFP is reported in
// the returned error slice and skipped; the batch always completes and the
// combined warning sequence preserves per-RFP emission order.
func (e *Engine) BuildBatch(rfps []model.RFP) (*model.BatchResult, []error) {
	batch := &model.BatchResult{
		RFPs:     []model.Quote{},
		Warnings: []model.Warning{},
	}

	var failures []error
	for _, rfp := range rfps {
		q, err := e.BuildQuote(rfp)
		if err != nil {
			zap.L().Warn("quote: rfp failed",
				zap.String("rfp_id", rfp.ID),
				zap.Error(err),
			)
			failures = append(failures, err)
			continue
		}
		batch.RFPs = append(batch.RFPs, *q)
		batch.Warnings = append(batch.Warnings, q.Warnings...)
	}

	zap.L().Info("quote: batch complete",
		zap.Int("rfps", len(batch.RFPs)),
		zap.Int("failed", len(failures)),
		zap.Int("warnings", len(batch.Warnings)),
	)

	return batch, failures
}
