package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/loader"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configured reference data",
	Long: `Preflight check of the reference data a quoting run depends on:
the catalog must parse and be non-empty, every SKU must have a material
price, the test price table must parse, and every RFP JSON must decode
with a valid due date. Exits non-zero on the first failure.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	catalog, err := loader.LoadProducts(cfg.Data.CatalogCSV)
	if err != nil {
		return eris.Wrap(err, "validate: load catalog")
	}
	fmt.Printf("Catalog OK: %d products\n", len(catalog))

	materialPrices, err := loader.LoadPriceTable(cfg.Data.MaterialPricesCSV)
	if err != nil {
		return eris.Wrap(err, "validate: load material prices")
	}
	if err := loader.ValidateReferenceData(catalog, materialPrices); err != nil {
		return err
	}
	fmt.Printf("Material pricing OK: %d entries\n", len(materialPrices))

	testPrices, err := loader.LoadPriceTable(cfg.Data.TestPricesCSV)
	if err != nil {
		return eris.Wrap(err, "validate: load test prices")
	}
	fmt.Printf("Test pricing OK: %d entries\n", len(testPrices))

	rfps, err := loader.LoadRFPs(cfg.Data.RFPDir)
	if err != nil {
		return eris.Wrap(err, "validate: load rfps")
	}
	fmt.Printf("RFPs OK: %d documents\n", len(rfps))

	fmt.Println("All data validations passed.")
	return nil
}
