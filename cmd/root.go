package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "rfp-quoter",
	Short: "RFP matching and pricing engine",
	Long:  "Matches procurement RFP scope items against a product catalog by technical specification and computes fully itemized price quotes (materials, compliance testing, margin, GST, overhead).",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
