package model

// CatalogProduct is one row of the product catalog. Catalog data is loaded
// once per run and treated as read-only reference data.
type CatalogProduct struct {
	SKU                   string  `json:"sku"`
	Name                  string  `json:"name"`
	Voltage               string  `json:"voltage"`
	Conductor             string  `json:"conductor"`
	InsulationThicknessMM float64 `json:"insulation_thickness_mm"`
	Std                   string  `json:"std,omitempty"`
}

// Specs returns the product's matchable attributes in ItemSpecs form.
func (p CatalogProduct) Specs() ItemSpecs {
	return ItemSpecs{
		Voltage:               p.Voltage,
		Conductor:             p.Conductor,
		InsulationThicknessMM: p.InsulationThicknessMM,
	}
}
