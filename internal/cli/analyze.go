package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stocklens/internal/analysis"
	"stocklens/internal/analysis/engine"
	"stocklens/internal/config"
	"stocklens/internal/logging"
	"stocklens/pkg/utils"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Full technical analysis for a symbol",
		Long: `Fetch OHLCV history for a symbol and derive:
- Moving averages (SMA 20/50/200)
- RSI, MACD (line, signal, histogram), Bollinger Bands
- Support/resistance levels
- A weighted BUY/SELL/HOLD signal with confidence
- A market-sentiment score`,
		Example: `  stocklens analyze AAPL
  stocklens analyze MSFT --interval 15m --range 5d
  stocklens analyze TSLA --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			interval, _ := cmd.Flags().GetString("interval")
			rng, _ := cmd.Flags().GetString("range")
			if interval == "" {
				interval = app.Config.Fetch.Interval
			}
			if rng == "" {
				rng = app.Config.Fetch.Range
			}

			ind, err := indicatorOverrides(cmd, app.Config.Indicators)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			logger := logging.WithSymbol(app.Logger, symbol)

			candles, err := app.Quotes.FetchCandles(ctx, symbol, interval, rng)
			if err != nil {
				output.Error("Failed to fetch data: %v", err)
				return err
			}

			report, err := engine.Evaluate(symbol, candles, ind)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			logging.LogEvaluation(logger, symbol, len(candles),
				string(report.Signal.Signal), report.Signal.Confidence,
				string(report.Sentiment.Label))

			if output.IsJSON() {
				return output.JSON(report)
			}
			renderReport(output, report)
			return nil
		},
	}

	cmd.Flags().String("interval", "", "bar interval (e.g. 1m, 5m, 15m, 1d)")
	cmd.Flags().String("range", "", "history range (e.g. 1d, 5d, 1mo, 1y)")
	cmd.Flags().Int("sma-short", 0, "short SMA period (default from config)")
	cmd.Flags().Int("sma-long", 0, "long SMA period (default from config)")
	cmd.Flags().Int("rsi-period", 0, "RSI period (default from config)")
	cmd.Flags().Int("bollinger-period", 0, "Bollinger period (default from config)")
	return cmd
}

// indicatorOverrides applies per-invocation period flags on top of the
// configured defaults and re-validates the result.
func indicatorOverrides(cmd *cobra.Command, ind config.IndicatorConfig) (config.IndicatorConfig, error) {
	if v, _ := cmd.Flags().GetInt("sma-short"); v > 0 {
		ind.SMAShort = v
	}
	if v, _ := cmd.Flags().GetInt("sma-long"); v > 0 {
		ind.SMALong = v
	}
	if v, _ := cmd.Flags().GetInt("rsi-period"); v > 0 {
		ind.RSIPeriod = v
	}
	if v, _ := cmd.Flags().GetInt("bollinger-period"); v > 0 {
		ind.BollingerPeriod = v
	}
	if err := ind.Validate(); err != nil {
		return ind, err
	}
	return ind, nil
}

func renderReport(output *Output, r *analysis.Report) {
	output.Bold("%s  %s", r.Symbol, utils.FormatPrice(r.Price))
	output.Printf("  Change:     %s (%s)\n", utils.FormatPrice(r.Change), utils.FormatPercent(r.ChangePercent))
	output.Printf("  Day:        %s - %s\n", utils.FormatPrice(r.DayLow), utils.FormatPrice(r.DayHigh))
	output.Printf("  52-week:    %s - %s\n", utils.FormatPrice(r.YearLow), utils.FormatPrice(r.YearHigh))
	output.Printf("  Volume:     %s\n", utils.FormatVolume(r.Volume))
	output.Println()

	output.Bold("Indicators")
	output.Printf("  MA 20/50/200:   %s / %s / %s\n",
		formatScalar(r.Snapshot.MA20), formatScalar(r.Snapshot.MA50), formatScalar(r.Snapshot.MA200))
	output.Printf("  RSI:            %s\n", formatScalar(r.Snapshot.RSI))
	output.Printf("  MACD / Signal:  %s / %s\n",
		formatScalar(r.Snapshot.MACD), formatScalar(r.Snapshot.MACDSignal))
	output.Printf("  Bollinger:      %s / %s / %s\n",
		formatScalar(r.Snapshot.BollLower), formatScalar(r.Snapshot.BollMiddle), formatScalar(r.Snapshot.BollUpper))
	output.Println()

	output.Bold("Levels")
	for _, l := range r.Supports {
		output.Printf("  Support:    %s\n", utils.FormatPrice(l.Price))
	}
	for _, l := range r.Resistances {
		output.Printf("  Resistance: %s\n", utils.FormatPrice(l.Price))
	}
	output.Println()

	output.Bold("Signal: %s (confidence %.0f)", r.Signal.Signal, r.Signal.Confidence)
	for _, v := range r.Signal.Votes {
		output.Printf("  %-16s %-8s %s\n", v.Indicator, v.Verdict, v.Reason)
	}
	output.Println()

	output.Bold("Sentiment: %s (%.1f)", r.Sentiment.Label, r.Sentiment.Score)
}

func formatScalar(v *float64) string {
	if v == nil {
		return "-"
	}
	return utils.FormatPrice(*v)
}
