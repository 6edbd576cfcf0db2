package model

// ProductSpecs mirrors the matched product's attributes in the match
// output, including the applicable standard.
type ProductSpecs struct {
	Voltage               string  `json:"voltage"`
	Conductor             string  `json:"conductor"`
	InsulationThicknessMM float64 `json:"insulation_thickness_mm"`
	Std                   string  `json:"std,omitempty"`
}

// MatchCandidate is one catalog product scored against a requested item.
// Attribute scores are all-or-nothing (0 or 1 each).
type MatchCandidate struct {
	SKU          string         `json:"sku"`
	Name         string         `json:"name"`
	ProductSpecs ProductSpecs   `json:"product_specs"`
	Scores       map[string]int `json:"scores"`
	SpecMatch    int            `json:"spec_match"`
}

// Comparison pairs the requested specs with the ranked candidates.
type Comparison struct {
	RFPSpecs   ItemSpecs        `json:"rfp_specs"`
	Candidates []MatchCandidate `json:"candidates"`
}

// MatchResult is the matching outcome for one requested item: the best
// SKU and match percentage, plus the top candidates for transparency.
// Candidates are ordered by (spec_match desc, insulation distance asc,
// SKU asc), a total order that is stable across runs.
type MatchResult struct {
	ItemID      string     `json:"item_id"`
	Description string     `json:"description"`
	TopSKU      string     `json:"top_sku"`
	SpecMatch   int        `json:"spec_match"`
	Comparison  Comparison `json:"comparison"`
}
