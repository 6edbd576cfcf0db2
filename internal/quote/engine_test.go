package quote

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/matcher"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/pricer"
)

func testCatalog() []model.CatalogProduct {
	return []model.CatalogProduct{
		{SKU: "A", Name: "A cable", Voltage: "11kV", Conductor: "Cu", InsulationThicknessMM: 2.0},
		{SKU: "B", Name: "B cable", Voltage: "11kV", Conductor: "Al", InsulationThicknessMM: 2.0},
	}
}

func testEngine(materialPrices, testPrices map[string]float64) *Engine {
	return NewEngine(
		testCatalog(), materialPrices, testPrices,
		matcher.DefaultConfig(),
		pricer.New(pricer.DefaultRates()),
		"INR",
	)
}

func testRFP() model.RFP {
	return model.RFP{
		ID:      "RFP-001",
		Title:   "City cable tender",
		DueDate: "2026-03-15",
		Tests:   []model.RawTest{{Name: "Insulation Resistance Test"}},
		Scope: []model.RequestedItem{{
			ItemID:      "ITM-1",
			Description: "11kV feeder cable",
			Specs: model.ItemSpecs{
				Voltage:               "11kV",
				Conductor:             "Cu",
				InsulationThicknessMM: 2.0,
			},
		}},
	}
}

func TestBuildQuoteEndToEnd(t *testing.T) {
	t.Parallel()

	engine := testEngine(
		map[string]float64{"A": 1000, "B": 900},
		map[string]float64{"IR_TEST": 200},
	)

	q, err := engine.BuildQuote(testRFP())
	require.NoError(t, err)

	assert.Equal(t, "RFP-001", q.RFPID)
	assert.Equal(t, "INR", q.Currency)
	require.Len(t, q.Items, 1)

	item := q.Items[0]
	assert.Equal(t, "A", item.SKU)
	assert.Equal(t, 100, item.SpecMatch)
	assert.InDelta(t, 1200.0, item.BaseTotalCost, 0.001)
	assert.InDelta(t, 144.0, item.MarginAmount, 0.001)
	assert.InDelta(t, 241.92, item.GSTAmount, 0.001)
	assert.InDelta(t, 2085.92, item.FinalCost, 0.001)
	assert.InDelta(t, 2085.92, q.GrandTotal, 0.001)

	// Only the default-quantity warning.
	require.Len(t, q.Warnings, 1)
	assert.Equal(t, model.WarnQuantityMissing, q.Warnings[0].Kind)
}

func TestBuildQuoteGrandTotalSumsRoundedFinals(t *testing.T) {
	t.Parallel()

	rfp := testRFP()
	rfp.Scope = append(rfp.Scope, model.RequestedItem{
		ItemID: "ITM-2",
		Specs: model.ItemSpecs{
			Voltage:               "11kV",
			Conductor:             "Al",
			InsulationThicknessMM: 2.0,
		},
	})

	engine := testEngine(
		map[string]float64{"A": 1000.333, "B": 900.333},
		map[string]float64{"IR_TEST": 200},
	)

	q, err := engine.BuildQuote(rfp)
	require.NoError(t, err)
	require.Len(t, q.Items, 2)

	want := q.Items[0].FinalCost + q.Items[1].FinalCost
	assert.InDelta(t, want, q.GrandTotal, 0.005)
}

func TestBuildQuoteMissingSpecAborts(t *testing.T) {
	t.Parallel()

	rfp := testRFP()
	rfp.Scope[0].Specs.Voltage = ""

	engine := testEngine(map[string]float64{"A": 1000}, nil)

	_, err := engine.BuildQuote(rfp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RFP-001")
}

func TestBuildQuoteEmptyScope(t *testing.T) {
	t.Parallel()

	rfp := testRFP()
	rfp.Scope = nil

	engine := testEngine(map[string]float64{"A": 1000}, nil)

	q, err := engine.BuildQuote(rfp)
	require.NoError(t, err)
	assert.Empty(t, q.Items)
	assert.Empty(t, q.Warnings)
	assert.InDelta(t, 0.0, q.GrandTotal, 0.001)
}

func TestBuildBatchOrderingAndFlattening(t *testing.T) {
	t.Parallel()

	rfp1 := testRFP()
	rfp2 := testRFP()
	rfp2.ID = "RFP-002"
	rfp2.Tests = []model.RawTest{{Name: "Unknown Test"}}

	engine := testEngine(
		map[string]float64{"A": 1000, "B": 900},
		map[string]float64{"IR_TEST": 200},
	)

	batch, failures := engine.BuildBatch([]model.RFP{rfp1, rfp2})
	assert.Empty(t, failures)
	require.Len(t, batch.RFPs, 2)
	assert.Equal(t, "RFP-001", batch.RFPs[0].RFPID)
	assert.Equal(t, "RFP-002", batch.RFPs[1].RFPID)

	// Flattened warnings preserve per-RFP order: RFP-001's quantity
	// warning, then RFP-002's quantity warning, then its unknown-test
	// warning.
	require.Len(t, batch.Warnings, 3)
	assert.Equal(t, model.WarnQuantityMissing, batch.Warnings[0].Kind)
	assert.Equal(t, model.WarnQuantityMissing, batch.Warnings[1].Kind)
	assert.Equal(t, model.WarnTestNotFound, batch.Warnings[2].Kind)
	assert.Equal(t, "Unknown Test", batch.Warnings[2].TestCode)
}

func TestBuildBatchSkipsFailedRFP(t *testing.T) {
	t.Parallel()

	good := testRFP()
	bad := testRFP()
	bad.ID = "RFP-BAD"
	bad.Scope[0].Specs.Conductor = ""

	engine := testEngine(map[string]float64{"A": 1000}, map[string]float64{"IR_TEST": 200})

	batch, failures := engine.BuildBatch([]model.RFP{bad, good})
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Error(), "RFP-BAD")

	// The batch still completes with the well-formed RFP.
	require.Len(t, batch.RFPs, 1)
	assert.Equal(t, "RFP-001", batch.RFPs[0].RFPID)
}

func TestWriteQuoteAndBatch(t *testing.T) {
	t.Parallel()

	engine := testEngine(
		map[string]float64{"A": 1000, "B": 900},
		map[string]float64{"IR_TEST": 200},
	)
	batch, failures := engine.BuildBatch([]model.RFP{testRFP()})
	require.Empty(t, failures)

	dir := t.TempDir()

	path, err := WriteQuote(dir, &batch.RFPs[0])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pricing_output_RFP-001.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var q model.Quote
	require.NoError(t, json.Unmarshal(data, &q))
	assert.InDelta(t, 2085.92, q.GrandTotal, 0.001)

	combined, err := WriteBatch(dir, batch)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pricing_output_combined.json"), combined)

	data, err = os.ReadFile(combined)
	require.NoError(t, err)
	var result model.BatchResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.RFPs, 1)
	assert.Len(t, result.Warnings, 1)
}
