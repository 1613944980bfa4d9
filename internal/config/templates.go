package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# stocklens configuration

[indicators]
# Simple moving average lookbacks
sma_short = 20
sma_long = 50
sma_very_long = 200
# RSI lookback
rsi_period = 14
# MACD fast/slow EMA and signal-line EMA lookbacks
macd_fast = 12
macd_slow = 26
macd_signal = 9
# Bollinger band lookback and band width in standard deviations
bollinger_period = 20
bollinger_k = 2.0

[fetch]
# Quote provider base URL
base_url = "https://query1.finance.yahoo.com"
# Bar interval, e.g. 1m, 5m, 15m, 1d
interval = "5m"
# History range, e.g. 1d, 5d, 1mo, 1y
range = "1mo"
# HTTP timeout in seconds
timeout_secs = 30
# Retry attempts for transient fetch failures
max_retries = 3

[ui]
# Enable colored output
color_enabled = true
`

// writeTemplate writes a commented default config.toml so the user has
// something to edit on first run.
func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
