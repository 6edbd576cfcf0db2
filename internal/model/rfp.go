// Package model defines the data shapes shared across the matching and
// pricing pipeline: RFP documents, catalog products, match results, and
// priced quotes. Field names on the output types are a compatibility
// surface for downstream consumers and must not change.
package model

import "encoding/json"

// RFP is a procurement request: a scope of items to source and the
// compliance tests the buyer requires.
type RFP struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	DueDate string          `json:"due_date"` // YYYY-MM-DD
	Tests   []RawTest       `json:"tests"`
	Scope   []RequestedItem `json:"scope"`
}

// RequestedItem is one scope entry of an RFP.
type RequestedItem struct {
	ItemID      string    `json:"item_id"`
	Description string    `json:"description"`
	Specs       ItemSpecs `json:"specs"`
}

// ItemSpecs holds the required technical attributes of a requested item.
// Voltage and Conductor are compared by exact string equality; insulation
// thickness is matched within a configurable tolerance.
type ItemSpecs struct {
	Voltage               string  `json:"voltage"`
	Conductor             string  `json:"conductor"`
	InsulationThicknessMM float64 `json:"insulation_thickness_mm"`
}

// RawTest is a test identifier as supplied by an RFP document: either a
// bare string or an object carrying a test_code or name field.
type RawTest struct {
	TestCode string `json:"test_code,omitempty"`
	Name     string `json:"name,omitempty"`
}

// UnmarshalJSON accepts both the string and the object form.
func (t *RawTest) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Name)
	}
	type alias RawTest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = RawTest(a)
	return nil
}

// MarshalJSON writes the string form back for entries that arrived as bare
// names, and the object form otherwise.
func (t RawTest) MarshalJSON() ([]byte, error) {
	if t.TestCode == "" {
		return json.Marshal(t.Name)
	}
	type alias RawTest
	return json.Marshal(alias(t))
}

// Identifier returns the test_code when present, otherwise the name.
func (t RawTest) Identifier() string {
	if t.TestCode != "" {
		return t.TestCode
	}
	return t.Name
}
