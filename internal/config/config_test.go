package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultIndicators(), cfg.Indicators)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Fetch.BaseURL)
	assert.Equal(t, "5m", cfg.Fetch.Interval)
	assert.Equal(t, "1mo", cfg.Fetch.Range)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.True(t, cfg.UI.ColorEnabled)
}

func TestLoad_WritesTemplateOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[indicators]")
}

func TestLoad_OverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[indicators]
rsi_period = 21
bollinger_k = 2.5

[fetch]
interval = "15m"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 21, cfg.Indicators.RSIPeriod)
	assert.Equal(t, 2.5, cfg.Indicators.BollingerK)
	assert.Equal(t, "15m", cfg.Fetch.Interval)
	// Untouched keys keep their defaults.
	assert.Equal(t, 20, cfg.Indicators.SMAShort)
	assert.Equal(t, "1mo", cfg.Fetch.Range)
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
[indicators]
rsi_period = -1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Indicators: DefaultIndicators(),
			Fetch:      FetchConfig{TimeoutSecs: 30},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Indicators.MACDFast = 26
	cfg.Indicators.MACDSlow = 12
	assert.Error(t, cfg.Validate(), "fast period must be below slow")

	cfg = base()
	cfg.Indicators.BollingerK = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Indicators.SMAShort = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Fetch.TimeoutSecs = 0
	assert.Error(t, cfg.Validate())
}
