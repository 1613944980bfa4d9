// Package config provides configuration management for the analysis tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Indicators IndicatorConfig `mapstructure:"indicators"`
	Fetch      FetchConfig     `mapstructure:"fetch"`
	UI         UIConfig        `mapstructure:"ui"`
}

// IndicatorConfig holds the lookback periods and parameters for every
// indicator engine. Zero values are replaced by defaults at load time.
type IndicatorConfig struct {
	SMAShort        int     `mapstructure:"sma_short"`
	SMALong         int     `mapstructure:"sma_long"`
	SMAVeryLong     int     `mapstructure:"sma_very_long"`
	RSIPeriod       int     `mapstructure:"rsi_period"`
	MACDFast        int     `mapstructure:"macd_fast"`
	MACDSlow        int     `mapstructure:"macd_slow"`
	MACDSignal      int     `mapstructure:"macd_signal"`
	BollingerPeriod int     `mapstructure:"bollinger_period"`
	BollingerK      float64 `mapstructure:"bollinger_k"`
}

// FetchConfig holds quote-provider configuration.
type FetchConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Interval    string `mapstructure:"interval"`
	Range       string `mapstructure:"range"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	MaxRetries  int    `mapstructure:"max_retries"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// DefaultIndicators returns the default indicator parameters.
func DefaultIndicators() IndicatorConfig {
	return IndicatorConfig{
		SMAShort:        20,
		SMALong:         50,
		SMAVeryLong:     200,
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerPeriod: 20,
		BollingerK:      2,
	}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/stocklens"
	}
	return filepath.Join(home, ".config", "stocklens")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)
	v.SetEnvPrefix("STOCKLENS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// Missing config is fine; write a template for next time.
		if werr := writeTemplate(configDir); werr != nil {
			return nil, fmt.Errorf("writing config template: %w", werr)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	ind := DefaultIndicators()
	v.SetDefault("indicators.sma_short", ind.SMAShort)
	v.SetDefault("indicators.sma_long", ind.SMALong)
	v.SetDefault("indicators.sma_very_long", ind.SMAVeryLong)
	v.SetDefault("indicators.rsi_period", ind.RSIPeriod)
	v.SetDefault("indicators.macd_fast", ind.MACDFast)
	v.SetDefault("indicators.macd_slow", ind.MACDSlow)
	v.SetDefault("indicators.macd_signal", ind.MACDSignal)
	v.SetDefault("indicators.bollinger_period", ind.BollingerPeriod)
	v.SetDefault("indicators.bollinger_k", ind.BollingerK)

	v.SetDefault("fetch.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("fetch.interval", "5m")
	v.SetDefault("fetch.range", "1mo")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)

	v.SetDefault("ui.color_enabled", true)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Indicators.Validate(); err != nil {
		return err
	}
	if c.Fetch.TimeoutSecs <= 0 {
		return fmt.Errorf("fetch timeout_secs must be positive, got %d", c.Fetch.TimeoutSecs)
	}
	return nil
}

// Validate checks every indicator period and parameter.
func (ind IndicatorConfig) Validate() error {
	periods := map[string]int{
		"sma_short":        ind.SMAShort,
		"sma_long":         ind.SMALong,
		"sma_very_long":    ind.SMAVeryLong,
		"rsi_period":       ind.RSIPeriod,
		"macd_fast":        ind.MACDFast,
		"macd_slow":        ind.MACDSlow,
		"macd_signal":      ind.MACDSignal,
		"bollinger_period": ind.BollingerPeriod,
	}
	for name, p := range periods {
		if p <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, p)
		}
	}
	if ind.MACDFast >= ind.MACDSlow {
		return fmt.Errorf("macd_fast (%d) must be less than macd_slow (%d)", ind.MACDFast, ind.MACDSlow)
	}
	if ind.BollingerK <= 0 {
		return fmt.Errorf("bollinger_k must be positive, got %g", ind.BollingerK)
	}
	return nil
}
