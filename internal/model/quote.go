package model

// TestLineItem is one required compliance test priced for an item. Test
// quantity is always exactly 1; tests do not scale with item quantity.
type TestLineItem struct {
	TestCode  string  `json:"test_code"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// PriceLineItem is one requested item fully priced: material plus required
// tests, with margin, tax, and fixed overhead applied. Every monetary field
// is rounded to 2 decimals at the step that produced it, so
// final_cost = base_total_cost + margin_amount + gst_amount + fixed_overhead
// holds to the cent.
type PriceLineItem struct {
	ItemID            string         `json:"item_id"`
	SKU               string         `json:"sku"`
	Description       string         `json:"description"`
	Quantity          float64        `json:"quantity"`
	UnitMaterialPrice float64        `json:"unit_material_price"`
	MaterialCost      float64        `json:"material_cost"`
	Tests             []TestLineItem `json:"tests"`
	TestCost          float64        `json:"test_cost"`
	BaseTotalCost     float64        `json:"base_total_cost"`
	MarginPercent     float64        `json:"margin_percent"`
	MarginAmount      float64        `json:"margin_amount"`
	GSTPercent        float64        `json:"gst_percent"`
	GSTAmount         float64        `json:"gst_amount"`
	FixedOverhead     float64        `json:"fixed_overhead"`
	FinalCost         float64        `json:"final_cost"`
	SpecMatch         int            `json:"spec_match"`
}

// Quote is the priced output for one RFP.
type Quote struct {
	RFPID      string          `json:"rfp_id"`
	Title      string          `json:"title"`
	Currency   string          `json:"currency"`
	Items      []PriceLineItem `json:"items"`
	GrandTotal float64         `json:"grand_total"`
	Warnings   []Warning       `json:"warnings"`
}

// BatchResult aggregates a batch run: one quote per well-formed RFP in
// input order, plus all warnings flattened in the same order.
type BatchResult struct {
	RFPs     []Quote   `json:"rfps"`
	Warnings []Warning `json:"warnings"`
}
