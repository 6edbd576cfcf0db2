// Package config loads application configuration from file and environment
// and owns the global logger setup.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Matcher MatcherConfig `yaml:"matcher" mapstructure:"matcher"`
	Pricing PricingConfig `yaml:"pricing" mapstructure:"pricing"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the reference data consumed by a run.
type DataConfig struct {
	CatalogCSV        string `yaml:"catalog_csv" mapstructure:"catalog_csv"`
	MaterialPricesCSV string `yaml:"material_prices_csv" mapstructure:"material_prices_csv"`
	TestPricesCSV     string `yaml:"test_prices_csv" mapstructure:"test_prices_csv"`
	RFPDir            string `yaml:"rfp_dir" mapstructure:"rfp_dir"`
}

// MatcherConfig holds the specification-matching tunables.
type MatcherConfig struct {
	ToleranceRatio float64 `yaml:"tolerance_ratio" mapstructure:"tolerance_ratio"`
	TopCandidates  int     `yaml:"top_candidates" mapstructure:"top_candidates"`
}

// PricingConfig holds the cost roll-up tunables.
type PricingConfig struct {
	MarginPct     float64 `yaml:"margin_pct" mapstructure:"margin_pct"`
	GSTPct        float64 `yaml:"gst_pct" mapstructure:"gst_pct"`
	FixedOverhead float64 `yaml:"fixed_overhead" mapstructure:"fixed_overhead"`
	Currency      string  `yaml:"currency" mapstructure:"currency"`
}

// OutputConfig configures where quote files are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RFPQUOTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.catalog_csv", "data/products.csv")
	v.SetDefault("data.material_prices_csv", "data/product_pricing.csv")
	v.SetDefault("data.test_prices_csv", "data/test_pricing.csv")
	v.SetDefault("data.rfp_dir", "data/rfps")
	v.SetDefault("matcher.tolerance_ratio", 0.20)
	v.SetDefault("matcher.top_candidates", 3)
	v.SetDefault("pricing.margin_pct", 12.0)
	v.SetDefault("pricing.gst_pct", 18.0)
	v.SetDefault("pricing.fixed_overhead", 500.0)
	v.SetDefault("pricing.currency", "INR")
	v.SetDefault("output.dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the pricing and output sections for values that would
// make a run meaningless. Matcher tunables are validated by the matcher
// package.
func (c *Config) Validate() error {
	var errs []string

	if c.Pricing.MarginPct < 0 {
		errs = append(errs, fmt.Sprintf("pricing.margin_pct must be >= 0, got %g", c.Pricing.MarginPct))
	}
	if c.Pricing.GSTPct < 0 {
		errs = append(errs, fmt.Sprintf("pricing.gst_pct must be >= 0, got %g", c.Pricing.GSTPct))
	}
	if c.Pricing.FixedOverhead < 0 {
		errs = append(errs, fmt.Sprintf("pricing.fixed_overhead must be >= 0, got %g", c.Pricing.FixedOverhead))
	}
	if c.Pricing.Currency == "" {
		errs = append(errs, "pricing.currency must not be empty")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
