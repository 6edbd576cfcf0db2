package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/loader"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/matcher"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/pricer"
	"github.com/nidhireddyjanga/rfp-ai-system/internal/quote"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price all RFPs against the catalog",
	Long: `Run the full matching and pricing pipeline.

Loads the product catalog, the material and test price tables, and every
RFP JSON in the configured directory. For each RFP it matches every scope
item to its best catalog SKU, prices material and required compliance
tests, applies margin, GST, and fixed overhead, and writes one
pricing_output_<rfp_id>.json per RFP plus pricing_output_combined.json.

RFPs are processed strictly in filename order; quote and warning ordering
in the combined output follows that order.

Examples:
  # Price everything with configured rates
  quote

  # Override the margin and overhead for this run
  quote --margin 15 --overhead 750

  # Export the line items for spreadsheet review
  quote --format csv --output lines.csv`,
	RunE: runQuote,
}

func init() {
	f := quoteCmd.Flags()
	f.String("out-dir", "", "directory for quote JSON files (overrides config)")
	f.Float64("margin", 0, "margin percent (overrides config)")
	f.Float64("gst", 0, "GST percent (overrides config)")
	f.Float64("overhead", 0, "fixed per-item overhead (overrides config)")
	f.Float64("tolerance", 0, "insulation thickness tolerance ratio (overrides config)")
	f.Int("top", 0, "candidates to keep per item (overrides config)")
	f.String("output", "", "line-item export file path (default: no export)")
	f.String("format", "table", "export format: table or csv")

	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	applyPricingFlags(cmd)
	applyMatcherFlags(cmd)
	if err := matcher.ValidateConfig(cfg.Matcher); err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "quote"))

	catalog, materialPrices, testPrices, err := loadReferenceData()
	if err != nil {
		return err
	}

	rfps, err := loader.LoadRFPs(cfg.Data.RFPDir)
	if err != nil {
		return eris.Wrap(err, "quote: load rfps")
	}
	if len(rfps) == 0 {
		fmt.Printf("No RFPs found in %s.\n", cfg.Data.RFPDir)
		return nil
	}

	log.Info("starting batch pricing",
		zap.Int("rfps", len(rfps)),
		zap.Float64("margin_pct", cfg.Pricing.MarginPct),
		zap.Float64("gst_pct", cfg.Pricing.GSTPct),
		zap.Float64("fixed_overhead", cfg.Pricing.FixedOverhead),
	)

	engine := quote.NewEngine(
		catalog, materialPrices, testPrices,
		cfg.Matcher,
		pricer.New(pricer.Rates{
			MarginPct:     cfg.Pricing.MarginPct,
			GSTPct:        cfg.Pricing.GSTPct,
			FixedOverhead: cfg.Pricing.FixedOverhead,
		}),
		cfg.Pricing.Currency,
	)

	batch, failures := engine.BuildBatch(rfps)

	outDir := cfg.Output.Dir
	if v, _ := cmd.Flags().GetString("out-dir"); v != "" {
		outDir = v
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return eris.Wrapf(err, "quote: create output dir %s", outDir)
	}

	for i := range batch.RFPs {
		if _, err := quote.WriteQuote(outDir, &batch.RFPs[i]); err != nil {
			return err
		}
	}
	if _, err := quote.WriteBatch(outDir, batch); err != nil {
		return err
	}

	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		format, _ := cmd.Flags().GetString("format")
		if err := exportLineItems(batch, format, outputPath); err != nil {
			return err
		}
	}

	printBatchSummary(batch)

	if len(failures) > 0 {
		for _, ferr := range failures {
			fmt.Fprintf(os.Stderr, "FAILED: %v\n", ferr)
		}
		return eris.Errorf("quote: %d of %d RFPs failed", len(failures), len(rfps))
	}
	return nil
}

// applyPricingFlags overlays explicitly set pricing flags onto the config.
func applyPricingFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("margin") {
		cfg.Pricing.MarginPct, _ = cmd.Flags().GetFloat64("margin")
	}
	if cmd.Flags().Changed("gst") {
		cfg.Pricing.GSTPct, _ = cmd.Flags().GetFloat64("gst")
	}
	if cmd.Flags().Changed("overhead") {
		cfg.Pricing.FixedOverhead, _ = cmd.Flags().GetFloat64("overhead")
	}
}

// applyMatcherFlags overlays explicitly set matcher flags onto the config.
func applyMatcherFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("tolerance") {
		cfg.Matcher.ToleranceRatio, _ = cmd.Flags().GetFloat64("tolerance")
	}
	if cmd.Flags().Changed("top") {
		cfg.Matcher.TopCandidates, _ = cmd.Flags().GetInt("top")
	}
}

// loadReferenceData loads the catalog and both price tables.
func loadReferenceData() ([]model.CatalogProduct, map[string]float64, map[string]float64, error) {
	catalog, err := loader.LoadProducts(cfg.Data.CatalogCSV)
	if err != nil {
		return nil, nil, nil, eris.Wrap(err, "quote: load catalog")
	}
	materialPrices, err := loader.LoadPriceTable(cfg.Data.MaterialPricesCSV)
	if err != nil {
		return nil, nil, nil, eris.Wrap(err, "quote: load material prices")
	}
	testPrices, err := loader.LoadPriceTable(cfg.Data.TestPricesCSV)
	if err != nil {
		return nil, nil, nil, eris.Wrap(err, "quote: load test prices")
	}
	return catalog, materialPrices, testPrices, nil
}

func printBatchSummary(batch *model.BatchResult) {
	fmt.Printf("\n--- Summary ---\n")
	for _, q := range batch.RFPs {
		fmt.Printf("%-12s %-40s items: %-3d total: %.2f %s\n",
			q.RFPID, q.Title, len(q.Items), q.GrandTotal, q.Currency)
	}
	fmt.Printf("RFPs quoted:  %d\n", len(batch.RFPs))
	fmt.Printf("Warnings:     %d\n", len(batch.Warnings))
}

func exportLineItems(batch *model.BatchResult, format, outputPath string) error {
	w, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrapf(err, "quote: create export file %s", outputPath)
	}
	defer w.Close() //nolint:errcheck

	switch format {
	case "csv":
		return writeLineItemCSV(w, batch)
	case "table":
		return writeLineItemTable(w, batch)
	default:
		return eris.Errorf("quote: unsupported format %q", format)
	}
}

func writeLineItemCSV(w *os.File, batch *model.BatchResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"rfp_id", "item_id", "sku", "spec_match", "quantity",
		"material_cost", "test_cost", "base_total_cost",
		"margin_amount", "gst_amount", "fixed_overhead", "final_cost",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "quote: write CSV header")
	}

	for _, q := range batch.RFPs {
		for _, item := range q.Items {
			row := []string{
				q.RFPID,
				item.ItemID,
				item.SKU,
				fmt.Sprintf("%d", item.SpecMatch),
				fmt.Sprintf("%g", item.Quantity),
				fmt.Sprintf("%.2f", item.MaterialCost),
				fmt.Sprintf("%.2f", item.TestCost),
				fmt.Sprintf("%.2f", item.BaseTotalCost),
				fmt.Sprintf("%.2f", item.MarginAmount),
				fmt.Sprintf("%.2f", item.GSTAmount),
				fmt.Sprintf("%.2f", item.FixedOverhead),
				fmt.Sprintf("%.2f", item.FinalCost),
			}
			if err := cw.Write(row); err != nil {
				return eris.Wrap(err, "quote: write CSV row")
			}
		}
	}
	return nil
}

func writeLineItemTable(w *os.File, batch *model.BatchResult) error {
	header := fmt.Sprintf("%-12s %-10s %-12s %6s %12s %12s %12s\n",
		"RFP", "Item", "SKU", "Match", "Base", "Tax", "Final")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "quote: write table header")
	}

	for _, q := range batch.RFPs {
		for _, item := range q.Items {
			_, err := fmt.Fprintf(w, "%-12s %-10s %-12s %5d%% %12.2f %12.2f %12.2f\n",
				q.RFPID, item.ItemID, item.SKU, item.SpecMatch,
				item.BaseTotalCost, item.GSTAmount, item.FinalCost)
			if err != nil {
				return eris.Wrap(err, "quote: write table row")
			}
		}
	}
	return nil
}
