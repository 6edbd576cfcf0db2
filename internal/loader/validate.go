package loader

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
)

// ValidateReferenceData checks that the loaded catalog and material price
// table are complete enough for a quoting run: a non-empty catalog and a
// price for every SKU. The pipeline would still complete without this
// (missing prices degrade to warnings), so validation is a separate
// preflight, not part of quoting.
func ValidateReferenceData(products []model.CatalogProduct, materialPrices map[string]float64) error {
	if len(products) == 0 {
		return eris.New("loader: catalog has no products")
	}

	var missing []string
	for _, p := range products {
		if _, ok := materialPrices[p.SKU]; !ok {
			missing = append(missing, p.SKU)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("loader: missing prices for %d SKUs: %s",
			len(missing), strings.Join(missing, ", "))
	}

	return nil
}
