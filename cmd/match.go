package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/loader"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/matcher"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match RFP scope items against the catalog",
	Long: `Match scope items of a single RFP file against the product catalog and
print the ranked candidates with per-attribute scores. No pricing.

Examples:
  # Match every item in an RFP
  match --rfp data/rfps/rfp1.json

  # Match one item
  match --rfp data/rfps/rfp1.json --item ITM-2`,
	RunE: runMatch,
}

func init() {
	f := matchCmd.Flags()
	f.String("rfp", "", "path to the RFP JSON file (required)")
	f.String("item", "", "match only this item id")
	f.Float64("tolerance", 0, "insulation thickness tolerance ratio (overrides config)")
	f.Int("top", 0, "candidates to keep per item (overrides config)")
	_ = matchCmd.MarkFlagRequired("rfp")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	applyMatcherFlags(cmd)
	if err := matcher.ValidateConfig(cfg.Matcher); err != nil {
		return err
	}

	catalog, err := loader.LoadProducts(cfg.Data.CatalogCSV)
	if err != nil {
		return eris.Wrap(err, "match: load catalog")
	}

	rfpPath, _ := cmd.Flags().GetString("rfp")
	data, err := os.ReadFile(rfpPath)
	if err != nil {
		return eris.Wrapf(err, "match: read rfp %s", rfpPath)
	}
	var rfp model.RFP
	if err := json.Unmarshal(data, &rfp); err != nil {
		return eris.Wrapf(err, "match: decode rfp %s", rfpPath)
	}

	itemID, _ := cmd.Flags().GetString("item")
	matched := 0
	for _, item := range rfp.Scope {
		if itemID != "" && item.ItemID != itemID {
			continue
		}
		matched++

		result, err := matcher.Match(item, catalog, cfg.Matcher)
		if err != nil {
			return err
		}
		printMatchResult(result)
	}

	if matched == 0 {
		if itemID != "" {
			return eris.Errorf("match: item %s not found in rfp %s", itemID, rfp.ID)
		}
		fmt.Printf("RFP %s has no scope items.\n", rfp.ID)
	}
	return nil
}

func printMatchResult(result *model.MatchResult) {
	fmt.Printf("\nItem:     %s  %s\n", result.ItemID, result.Description)
	fmt.Printf("Required: voltage=%s conductor=%s insulation=%gmm\n",
		result.Comparison.RFPSpecs.Voltage,
		result.Comparison.RFPSpecs.Conductor,
		result.Comparison.RFPSpecs.InsulationThicknessMM)
	fmt.Printf("Best:     %s (%d%% match)\n\n", result.TopSKU, result.SpecMatch)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tNAME\tVOLTAGE\tCONDUCTOR\tINSULATION\tMATCH")
	for _, c := range result.Comparison.Candidates {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d%%\n",
			c.SKU, c.Name,
			c.Scores["voltage"], c.Scores["conductor"], c.Scores["insulation_thickness_mm"],
			c.SpecMatch)
	}
	_ = w.Flush()
}
