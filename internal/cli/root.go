package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stocklens/internal/config"
	"stocklens/internal/logging"
	"stocklens/internal/quote"
	"stocklens/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Quotes    *quote.Client
	Directory store.SymbolDirectory
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Quotes: quote.NewClient(cfg.Fetch, logger),
	}

	dbPath := filepath.Join(config.DefaultConfigDir(), "symbols.db")
	directory, err := store.NewSQLiteDirectory(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open symbol directory, lookup commands unavailable")
	} else {
		app.Directory = directory
	}

	rootCmd := &cobra.Command{
		Use:   "stocklens",
		Short: "stocklens - technical analysis for equity symbols",
		Long: `stocklens fetches intraday OHLCV history for an equity symbol and derives
technical indicators (moving averages, RSI, MACD, Bollinger Bands,
support/resistance levels), a weighted BUY/SELL/HOLD signal with a
confidence score, and a market-sentiment score.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/stocklens)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newSymbolsCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("stocklens v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			ind := app.Config.Indicators
			output.Bold("Indicator Configuration")
			output.Printf("  SMA periods:      %d / %d / %d\n", ind.SMAShort, ind.SMALong, ind.SMAVeryLong)
			output.Printf("  RSI period:       %d\n", ind.RSIPeriod)
			output.Printf("  MACD periods:     %d / %d / %d\n", ind.MACDFast, ind.MACDSlow, ind.MACDSignal)
			output.Printf("  Bollinger:        %d x %.1f sd\n", ind.BollingerPeriod, ind.BollingerK)
			output.Println()
			output.Bold("Fetch Configuration")
			output.Printf("  Base URL:         %s\n", app.Config.Fetch.BaseURL)
			output.Printf("  Interval / Range: %s / %s\n", app.Config.Fetch.Interval, app.Config.Fetch.Range)
			output.Printf("  Timeout:          %ds\n", app.Config.Fetch.TimeoutSecs)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}
