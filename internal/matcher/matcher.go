package matcher

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/config"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
)

// Sentinel errors. Callers classify failures with eris.Is; the wrapped
// message names the offending item and field.
var (
	// ErrMissingSpec indicates a requested item lacks a required
	// specification field. The item cannot be matched.
	ErrMissingSpec = eris.New("matcher: missing required specification")
	// ErrNoCandidates indicates an empty catalog.
	ErrNoCandidates = eris.New("matcher: no catalog products to match against")
)

// attributeRule scores one product attribute against the requested specs.
// All rules are all-or-nothing: a product either satisfies the attribute
// (1) or it does not (0). New attributes are added here, not in Match.
type attributeRule struct {
	name  string
	score func(specs model.ItemSpecs, p model.CatalogProduct) int
}

func attributeRules(toleranceRatio float64) []attributeRule {
	return []attributeRule{
		{
			name: "voltage",
			score: func(specs model.ItemSpecs, p model.CatalogProduct) int {
				if p.Voltage == specs.Voltage {
					return 1
				}
				return 0
			},
		},
		{
			name: "conductor",
			score: func(specs model.ItemSpecs, p model.CatalogProduct) int {
				if p.Conductor == specs.Conductor {
					return 1
				}
				return 0
			},
		},
		{
			name: "insulation_thickness_mm",
			score: func(specs model.ItemSpecs, p model.CatalogProduct) int {
				// Tolerance is a fraction of the requested thickness, not
				// the product's. The boundary is inclusive.
				tolerance := specs.InsulationThicknessMM * toleranceRatio
				if math.Abs(p.InsulationThicknessMM-specs.InsulationThicknessMM) <= tolerance {
					return 1
				}
				return 0
			},
		},
	}
}

// Match scores every catalog product against the item's required specs and
// returns the ranked result. It is a pure function of its inputs: either a
// full MatchResult is returned or an error before any candidate is scored.
func Match(item model.RequestedItem, catalog []model.CatalogProduct, cfg config.MatcherConfig) (*model.MatchResult, error) {
	if err := validateSpecs(item); err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, eris.Wrapf(ErrNoCandidates, "matcher: item %s", item.ItemID)
	}

	rules := attributeRules(cfg.ToleranceRatio)
	candidates := make([]model.MatchCandidate, 0, len(catalog))

	for _, p := range catalog {
		scores := make(map[string]int, len(rules)+1)
		total := 0
		for _, r := range rules {
			s := r.score(item.Specs, p)
			scores[r.name] = s
			total += s
		}
		scores["total"] = total

		candidates = append(candidates, model.MatchCandidate{
			SKU:  p.SKU,
			Name: p.Name,
			ProductSpecs: model.ProductSpecs{
				Voltage:               p.Voltage,
				Conductor:             p.Conductor,
				InsulationThicknessMM: p.InsulationThicknessMM,
				Std:                   p.Std,
			},
			Scores:    scores,
			SpecMatch: matchPercent(total, len(rules)),
		})
	}

	// Rank: spec match desc, insulation distance asc, SKU asc. The SKU
	// tie-break makes the order total, so ties resolve identically across
	// runs.
	requested := item.Specs.InsulationThicknessMM
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.SpecMatch != b.SpecMatch {
			return a.SpecMatch > b.SpecMatch
		}
		da := math.Abs(a.ProductSpecs.InsulationThicknessMM - requested)
		db := math.Abs(b.ProductSpecs.InsulationThicknessMM - requested)
		if da != db {
			return da < db
		}
		return a.SKU < b.SKU
	})

	if len(candidates) > cfg.TopCandidates {
		candidates = candidates[:cfg.TopCandidates]
	}
	top := candidates[0]

	return &model.MatchResult{
		ItemID:      item.ItemID,
		Description: item.Description,
		TopSKU:      top.SKU,
		SpecMatch:   top.SpecMatch,
		Comparison: model.Comparison{
			RFPSpecs:   item.Specs,
			Candidates: candidates,
		},
	}, nil
}

// matchPercent converts an aggregate attribute score to a percentage,
// rounding half away from zero. With 3 equally weighted attributes the
// result is always one of 0, 33, 67, 100.
func matchPercent(total, ruleCount int) int {
	return int(math.Round(float64(total) / float64(ruleCount) * 100))
}

func validateSpecs(item model.RequestedItem) error {
	switch {
	case item.Specs.Voltage == "":
		return eris.Wrapf(ErrMissingSpec, "matcher: item %s: voltage", item.ItemID)
	case item.Specs.Conductor == "":
		return eris.Wrapf(ErrMissingSpec, "matcher: item %s: conductor", item.ItemID)
	case item.Specs.InsulationThicknessMM <= 0:
		return eris.Wrapf(ErrMissingSpec, "matcher: item %s: insulation_thickness_mm", item.ItemID)
	}
	return nil
}
