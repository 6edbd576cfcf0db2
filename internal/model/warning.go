package model

// WarningKind enumerates the non-fatal conditions the pricer can flag.
type WarningKind string

const (
	// WarnQuantityMissing is emitted when an item carries no quantity and
	// the default of 1 is used.
	WarnQuantityMissing WarningKind = "quantity_missing"
	// WarnPriceMissing is emitted when a matched SKU has no entry in the
	// material price table and its unit price degrades to zero.
	WarnPriceMissing WarningKind = "price_missing"
	// WarnTestNotFound is emitted when a required test code has no entry
	// in the test price table.
	WarnTestNotFound WarningKind = "test_not_found"
)

// Warning flags degraded input confidence on a priced item. Warnings are a
// side channel: they never block pricing and never abort a run.
type Warning struct {
	Kind       WarningKind `json:"type"`
	ItemID     string      `json:"item_id"`
	SKU        string      `json:"sku,omitempty"`
	TestCode   string      `json:"test_code,omitempty"`
	Detail     string      `json:"detail"`
	Suggestion string      `json:"suggestion,omitempty"`
}
