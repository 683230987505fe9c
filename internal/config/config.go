// Package config loads application configuration from config.yaml and
// SARJTAKIP_* environment variables, and wires the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset" mapstructure:"dataset"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`
	Extract  ExtractConfig  `yaml:"extract" mapstructure:"extract"`
	Fallback FallbackConfig `yaml:"fallback" mapstructure:"fallback"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Upload   UploadConfig   `yaml:"upload" mapstructure:"upload"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DatasetConfig points at the run's input files.
type DatasetConfig struct {
	URLsPath  string `yaml:"urls_path" mapstructure:"urls_path"`
	LogosPath string `yaml:"logos_path" mapstructure:"logos_path"`
}

// FetchConfig tunes the static HTTP tier.
type FetchConfig struct {
	TimeoutSecs  int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	IntervalMsec int `yaml:"interval_msec" mapstructure:"interval_msec"`
}

// Timeout returns the static fetch timeout as a duration.
func (c FetchConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSecs) * time.Second }

// Interval returns the minimum spacing between static requests.
func (c FetchConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMsec) * time.Millisecond
}

// RenderConfig tunes the headless browser tier.
type RenderConfig struct {
	Enabled      bool     `yaml:"enabled" mapstructure:"enabled"`
	TimeoutSecs  int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	ScrollPasses int      `yaml:"scroll_passes" mapstructure:"scroll_passes"`
	ForceDomains []string `yaml:"force_domains" mapstructure:"force_domains"`
}

// Timeout returns the per-page render timeout as a duration.
func (c RenderConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSecs) * time.Second }

// ExtractConfig bounds what counts as a plausible per-kWh price.
type ExtractConfig struct {
	MinPrice float64 `yaml:"min_price" mapstructure:"min_price"`
	MaxPrice float64 `yaml:"max_price" mapstructure:"max_price"`
}

// FallbackConfig seeds and bounds the fallback price table.
type FallbackConfig struct {
	MinPrice float64                `yaml:"min_price" mapstructure:"min_price"`
	MaxPrice float64                `yaml:"max_price" mapstructure:"max_price"`
	Manual   map[string]ManualEntry `yaml:"manual" mapstructure:"manual"`
}

// ManualEntry holds hand-curated prices for one domain.
type ManualEntry struct {
	AC []float64 `yaml:"ac" mapstructure:"ac"`
	DC []float64 `yaml:"dc" mapstructure:"dc"`
}

// BatchConfig controls run-wide behavior.
type BatchConfig struct {
	Workers  int    `yaml:"workers" mapstructure:"workers"`
	Country  string `yaml:"country" mapstructure:"country"`
	Currency string `yaml:"currency" mapstructure:"currency"`
}

// OutputConfig points at the run's output files.
type OutputConfig struct {
	DatasetPath string `yaml:"dataset_path" mapstructure:"dataset_path"`
	ResultsPath string `yaml:"results_path" mapstructure:"results_path"`
}

// UploadConfig holds the remote store endpoint and credentials.
type UploadConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads config.yaml (optional) plus SARJTAKIP_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SARJTAKIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.urls_path", "data/urls.txt")
	v.SetDefault("dataset.logos_path", "data/logos.json")
	v.SetDefault("fetch.timeout_secs", 20)
	v.SetDefault("fetch.interval_msec", 500)
	v.SetDefault("render.enabled", true)
	v.SetDefault("render.timeout_secs", 45)
	v.SetDefault("render.scroll_passes", 3)
	v.SetDefault("render.force_domains", []string{})
	v.SetDefault("extract.min_price", 0.5)
	v.SetDefault("extract.max_price", 50.0)
	v.SetDefault("fallback.min_price", 4.0)
	v.SetDefault("fallback.max_price", 35.0)
	v.SetDefault("batch.workers", 3)
	v.SetDefault("batch.country", "TR")
	v.SetDefault("batch.currency", "TRY")
	v.SetDefault("output.dataset_path", "data/charging_prices.json")
	v.SetDefault("output.results_path", "data/page_results.json")
	// Empty defaults register the keys so environment-only values bind.
	v.SetDefault("upload.base_url", "")
	v.SetDefault("upload.api_key", "")
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

// InitLogger builds the global zap logger from LogConfig.
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
