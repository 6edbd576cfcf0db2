// Package pricer turns a matched item and its required tests into a fully
// itemized, margin-and-tax-adjusted line cost.
package pricer

import (
	"fmt"
	"math"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
)

// Rates holds the pricing tunables applied to every line item.
type Rates struct {
	MarginPct     float64 `yaml:"margin_pct" mapstructure:"margin_pct"`
	GSTPct        float64 `yaml:"gst_pct" mapstructure:"gst_pct"`
	FixedOverhead float64 `yaml:"fixed_overhead" mapstructure:"fixed_overhead"`
}

// DefaultRates returns the reference deployment's rates: 12% margin, 18%
// GST, and a flat 500 per-item overhead added after tax.
func DefaultRates() Rates {
	return Rates{
		MarginPct:     12,
		GSTPct:        18,
		FixedOverhead: 500,
	}
}

// Pricer computes line-item costs from price tables and fixed rates.
type Pricer struct {
	rates Rates
}

// New creates a Pricer with the given rates.
func New(rates Rates) *Pricer {
	return &Pricer{rates: rates}
}

// Price computes the fully itemized cost for one matched item. Missing
// price data never fails: unit prices degrade to zero and the gap is
// reported through the returned warnings, in emission order.
//
// Every intermediate amount is rounded to 2 decimals as it is computed.
// The rounding order is part of the contract; deferring it to the end
// changes totals at the cent level.
func (p *Pricer) Price(
	item model.RequestedItem,
	topSKU string,
	specMatch int,
	requiredTests []string,
	materialPrices map[string]float64,
	testPrices map[string]float64,
) (model.PriceLineItem, []model.Warning) {
	var warnings []model.Warning

	// No current input carries a quantity, so the default of 1 is always
	// applied and always flagged.
	quantity := 1.0
	warnings = append(warnings, model.Warning{
		Kind:       model.WarnQuantityMissing,
		ItemID:     item.ItemID,
		SKU:        topSKU,
		Detail:     fmt.Sprintf("Quantity not provided for item %s; defaulting to 1.", item.ItemID),
		Suggestion: "Add a 'quantity' field to the RFP scope entry.",
	})

	unitMaterialPrice := materialPrices[topSKU]
	if unitMaterialPrice == 0 {
		warnings = append(warnings, model.Warning{
			Kind:       model.WarnPriceMissing,
			ItemID:     item.ItemID,
			SKU:        topSKU,
			Detail:     fmt.Sprintf("No unit price for SKU %s; material cost defaults to 0.", topSKU),
			Suggestion: "Add the SKU to the material price table.",
		})
	}
	materialCost := round2(unitMaterialPrice * quantity)

	tests := make([]model.TestLineItem, 0, len(requiredTests))
	testCost := 0.0
	for _, code := range requiredTests {
		unitTestPrice := testPrices[code]
		if unitTestPrice == 0 {
			warnings = append(warnings, model.Warning{
				Kind:     model.WarnTestNotFound,
				ItemID:   item.ItemID,
				TestCode: code,
				Detail:   fmt.Sprintf("Test %s missing from the test price table.", code),
			})
		}
		// Tests are charged once per item regardless of item quantity.
		subtotal := round2(unitTestPrice * 1)
		testCost += subtotal

		tests = append(tests, model.TestLineItem{
			TestCode:  code,
			UnitPrice: unitTestPrice,
			Quantity:  1,
			Total:     subtotal,
		})
	}

	baseCost := round2(materialCost + testCost)
	marginAmount := round2(baseCost * (p.rates.MarginPct / 100))
	costAfterMargin := round2(baseCost + marginAmount)
	gstAmount := round2(costAfterMargin * (p.rates.GSTPct / 100))
	finalCost := round2(costAfterMargin + gstAmount + p.rates.FixedOverhead)

	return model.PriceLineItem{
		ItemID:            item.ItemID,
		SKU:               topSKU,
		Description:       item.Description,
		Quantity:          quantity,
		UnitMaterialPrice: unitMaterialPrice,
		MaterialCost:      materialCost,
		Tests:             tests,
		TestCost:          testCost,
		BaseTotalCost:     baseCost,
		MarginPercent:     p.rates.MarginPct,
		MarginAmount:      marginAmount,
		GSTPercent:        p.rates.GSTPct,
		GSTAmount:         gstAmount,
		FixedOverhead:     p.rates.FixedOverhead,
		FinalCost:         finalCost,
		SpecMatch:         specMatch,
	}, warnings
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
