package pricer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
)

func testItem() model.RequestedItem {
	return model.RequestedItem{
		ItemID:      "ITM-1",
		Description: "11kV copper cable",
	}
}

func TestPriceWorkedExample(t *testing.T) {
	t.Parallel()

	// Material 1000, one test at 200, margin 12%, GST 18%, overhead 500:
	// base 1200 -> margin 144 -> after margin 1344 -> GST 241.92 ->
	// final 2085.92.
	p := New(DefaultRates())

	line, warnings := p.Price(
		testItem(), "A", 100,
		[]string{"IR_TEST"},
		map[string]float64{"A": 1000},
		map[string]float64{"IR_TEST": 200},
	)

	assert.InDelta(t, 1000.0, line.UnitMaterialPrice, 0.001)
	assert.InDelta(t, 1000.0, line.MaterialCost, 0.001)
	assert.InDelta(t, 200.0, line.TestCost, 0.001)
	assert.InDelta(t, 1200.0, line.BaseTotalCost, 0.001)
	assert.InDelta(t, 144.0, line.MarginAmount, 0.001)
	assert.InDelta(t, 241.92, line.GSTAmount, 0.001)
	assert.InDelta(t, 500.0, line.FixedOverhead, 0.001)
	assert.InDelta(t, 2085.92, line.FinalCost, 0.001)
	assert.Equal(t, 100, line.SpecMatch)

	// Only the always-on quantity warning.
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnQuantityMissing, warnings[0].Kind)
	assert.Equal(t, "ITM-1", warnings[0].ItemID)
}

func TestPriceFinalCostInvariant(t *testing.T) {
	t.Parallel()

	p := New(DefaultRates())

	tests := []struct {
		name          string
		materialPrice float64
		testPrices    []float64
	}{
		{"round numbers", 1000, []float64{200}},
		{"awkward cents", 1234.567, []float64{99.99, 0.01}},
		{"zero material", 0, []float64{150}},
		{"no tests", 750.25, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			material := map[string]float64{"A": tt.materialPrice}
			testTable := make(map[string]float64)
			var codes []string
			for i, price := range tt.testPrices {
				code := string(rune('X' + i))
				testTable[code] = price
				codes = append(codes, code)
			}

			line, _ := p.Price(testItem(), "A", 100, codes, material, testTable)

			// final = base + margin + gst + overhead, to the cent.
			assert.InDelta(t,
				line.BaseTotalCost+line.MarginAmount+line.GSTAmount+line.FixedOverhead,
				line.FinalCost, 0.005)
		})
	}
}

func TestPriceMissingMaterialPrice(t *testing.T) {
	t.Parallel()

	p := New(DefaultRates())

	line, warnings := p.Price(
		testItem(), "UNKNOWN-SKU", 67,
		[]string{"IR_TEST"},
		map[string]float64{},
		map[string]float64{"IR_TEST": 200},
	)

	assert.InDelta(t, 0.0, line.MaterialCost, 0.001)
	assert.InDelta(t, 200.0, line.BaseTotalCost, 0.001)

	// Exactly one price_missing warning, after the quantity warning.
	var priceMissing []model.Warning
	for _, w := range warnings {
		if w.Kind == model.WarnPriceMissing {
			priceMissing = append(priceMissing, w)
		}
	}
	require.Len(t, priceMissing, 1)
	assert.Equal(t, "UNKNOWN-SKU", priceMissing[0].SKU)
	assert.NotEmpty(t, priceMissing[0].Suggestion)
}

func TestPriceUnknownTest(t *testing.T) {
	t.Parallel()

	p := New(DefaultRates())

	line, warnings := p.Price(
		testItem(), "A", 100,
		[]string{"IR_TEST", "MYSTERY_TEST"},
		map[string]float64{"A": 1000},
		map[string]float64{"IR_TEST": 200},
	)

	// The unknown test still appears as a zero-priced line.
	require.Len(t, line.Tests, 2)
	assert.Equal(t, "MYSTERY_TEST", line.Tests[1].TestCode)
	assert.InDelta(t, 0.0, line.Tests[1].Total, 0.001)
	assert.InDelta(t, 200.0, line.TestCost, 0.001)

	var notFound []model.Warning
	for _, w := range warnings {
		if w.Kind == model.WarnTestNotFound {
			notFound = append(notFound, w)
		}
	}
	require.Len(t, notFound, 1)
	assert.Equal(t, "MYSTERY_TEST", notFound[0].TestCode)
}

func TestPriceWarningEmissionOrder(t *testing.T) {
	t.Parallel()

	p := New(DefaultRates())

	_, warnings := p.Price(
		testItem(), "UNKNOWN-SKU", 0,
		[]string{"T1", "T2"},
		map[string]float64{},
		map[string]float64{},
	)

	require.Len(t, warnings, 4)
	assert.Equal(t, model.WarnQuantityMissing, warnings[0].Kind)
	assert.Equal(t, model.WarnPriceMissing, warnings[1].Kind)
	assert.Equal(t, model.WarnTestNotFound, warnings[2].Kind)
	assert.Equal(t, "T1", warnings[2].TestCode)
	assert.Equal(t, model.WarnTestNotFound, warnings[3].Kind)
	assert.Equal(t, "T2", warnings[3].TestCode)
}

func TestPriceMonotonic(t *testing.T) {
	t.Parallel()

	p := New(DefaultRates())
	testTable := map[string]float64{"T": 100}

	prev := -1.0
	for _, materialPrice := range []float64{0, 10, 500, 999.99, 5000} {
		line, _ := p.Price(testItem(), "A", 100, []string{"T"},
			map[string]float64{"A": materialPrice}, testTable)
		assert.Greater(t, line.FinalCost, prev)
		prev = line.FinalCost
	}
}

func TestPriceRoundingIdempotent(t *testing.T) {
	t.Parallel()

	p := New(DefaultRates())

	// Re-running the roll-up on the already-rounded unit prices must
	// reproduce the same final cost to the cent.
	material := map[string]float64{"A": 1234.56}
	testTable := map[string]float64{"T": 78.9}

	first, _ := p.Price(testItem(), "A", 100, []string{"T"}, material, testTable)
	second, _ := p.Price(testItem(), "A", 100, []string{"T"}, material, testTable)

	assert.Equal(t, first.FinalCost, second.FinalCost)
	assert.Equal(t, first.GSTAmount, second.GSTAmount)
}

func TestPriceZeroRates(t *testing.T) {
	t.Parallel()

	p := New(Rates{})

	line, _ := p.Price(testItem(), "A", 100, nil,
		map[string]float64{"A": 100}, nil)

	assert.InDelta(t, 100.0, line.BaseTotalCost, 0.001)
	assert.InDelta(t, 0.0, line.MarginAmount, 0.001)
	assert.InDelta(t, 0.0, line.GSTAmount, 0.001)
	assert.InDelta(t, 100.0, line.FinalCost, 0.001)
}

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0},    // stored as 1.00499...; rounds down
		{1.025, 1.03},   // stored as 1.02500...2; rounds up
		{2.675, 2.67},   // stored as 2.67499...
		{0.125, 0.13},   // exact binary half; away from zero
		{-0.125, -0.13}, // away from zero, not toward +inf
		{0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, round2(tt.in), 0.0001, "round2(%v)", tt.in)
	}
}
