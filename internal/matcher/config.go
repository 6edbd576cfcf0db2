// Package matcher ranks catalog products against a requested item's
// required specifications.
package matcher

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/config"
)

// DefaultConfig returns a config.MatcherConfig with the reference
// deployment's tunables.
func DefaultConfig() config.MatcherConfig {
	return config.MatcherConfig{
		// Insulation thickness matches within ±20% of the requested value.
		ToleranceRatio: 0.20,
		// Candidates surfaced per item; index 0 is the best match.
		TopCandidates: 3,
	}
}

// ValidateConfig checks that a MatcherConfig is internally consistent.
func ValidateConfig(c config.MatcherConfig) error {
	var errs []string

	if c.ToleranceRatio < 0 || c.ToleranceRatio >= 1 {
		errs = append(errs, fmt.Sprintf("tolerance_ratio must be in [0, 1), got %g", c.ToleranceRatio))
	}
	if c.TopCandidates < 1 {
		errs = append(errs, fmt.Sprintf("top_candidates must be >= 1, got %d", c.TopCandidates))
	}

	if len(errs) > 0 {
		return eris.Errorf("matcher: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
