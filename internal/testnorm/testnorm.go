// Package testnorm canonicalizes RFP-supplied test names into test codes.
package testnorm

import "github.com/nidhireddyjanga/rfp-ai-system/internal/model"

// nameToCode maps the test names seen in RFP documents to canonical codes.
// The table is intentionally data, not branches: new tests are added here.
var nameToCode = map[string]string{
	"Insulation Resistance Test": "IR_TEST",
	"High Voltage Test":          "HV_TEST",
	"Conductor Resistance Test":  "CR_TEST",
	"Flame Retardant Test":       "FR_TEST",
}

// Normalize resolves each raw test entry to its canonical code. Unknown
// identifiers pass through unchanged: they become their own code and will
// surface downstream as a test_not_found warning rather than an error.
func Normalize(raw []model.RawTest) []string {
	codes := make([]string, 0, len(raw))
	for _, t := range raw {
		id := t.Identifier()
		if id == "" {
			continue
		}
		if code, ok := nameToCode[id]; ok {
			codes = append(codes, code)
			continue
		}
		codes = append(codes, id)
	}
	return codes
}
