package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stocklens/internal/models"
)

func newSymbolsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Manage the local symbol directory",
	}

	cmd.AddCommand(newSymbolsSearchCmd(app))
	cmd.AddCommand(newSymbolsShowCmd(app))
	cmd.AddCommand(newSymbolsAddCmd(app))
	cmd.AddCommand(newSymbolsImportCmd(app))
	return cmd
}

func newSymbolsSearchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Search symbols by ticker or name",
		Example: "  stocklens symbols search apple",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Directory == nil {
				return fmt.Errorf("symbol directory unavailable")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			limit, _ := cmd.Flags().GetInt("limit")
			results, err := app.Directory.Search(ctx, args[0], limit)
			if err != nil {
				output.Error("Search failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(results)
			}
			if len(results) == 0 {
				output.Warning("No symbols matching %q", args[0])
				return nil
			}
			for _, ins := range results {
				output.Printf("  %-10s %-40s %s\n", ins.Symbol, ins.Name, ins.Exchange)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum results to return")
	return cmd
}

func newSymbolsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show <symbol>",
		Short:   "Show details for a symbol",
		Example: "  stocklens symbols show AAPL",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Directory == nil {
				return fmt.Errorf("symbol directory unavailable")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			ins, err := app.Directory.Get(ctx, strings.ToUpper(args[0]))
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(ins)
			}
			output.Bold("%s", ins.Symbol)
			output.Printf("  Name:     %s\n", ins.Name)
			output.Printf("  Exchange: %s\n", ins.Exchange)
			output.Printf("  Sector:   %s\n", ins.Sector)
			return nil
		},
	}
}

func newSymbolsAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <symbol>",
		Short:   "Add or update a symbol in the directory",
		Example: `  stocklens symbols add AAPL --name "Apple Inc." --exchange NASDAQ --sector Technology`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Directory == nil {
				return fmt.Errorf("symbol directory unavailable")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			name, _ := cmd.Flags().GetString("name")
			exchange, _ := cmd.Flags().GetString("exchange")
			sector, _ := cmd.Flags().GetString("sector")

			ins := models.Instrument{
				Symbol:   strings.ToUpper(args[0]),
				Name:     name,
				Exchange: exchange,
				Sector:   sector,
			}
			if err := app.Directory.Upsert(ctx, []models.Instrument{ins}); err != nil {
				output.Error("Failed to save symbol: %v", err)
				return err
			}
			output.Success("Saved %s", ins.Symbol)
			return nil
		},
	}
	cmd.Flags().String("name", "", "company name")
	cmd.Flags().String("exchange", "", "listing exchange")
	cmd.Flags().String("sector", "", "sector classification")
	return cmd
}

func newSymbolsImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "import <file.csv>",
		Short:   "Seed the directory from a CSV file (symbol,name,exchange,sector)",
		Example: "  stocklens symbols import nasdaq.csv",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Directory == nil {
				return fmt.Errorf("symbol directory unavailable")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			instruments, err := readInstrumentsCSV(args[0])
			if err != nil {
				output.Error("Failed to read %s: %v", args[0], err)
				return err
			}
			if err := app.Directory.Upsert(ctx, instruments); err != nil {
				output.Error("Failed to import symbols: %v", err)
				return err
			}
			output.Success("Imported %d symbols", len(instruments))
			return nil
		},
	}
}

func readInstrumentsCSV(path string) ([]models.Instrument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var out []models.Instrument
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}
		// A header row is recognized by its first cell.
		if strings.EqualFold(record[0], "symbol") {
			continue
		}
		ins := models.Instrument{
			Symbol: strings.ToUpper(strings.TrimSpace(record[0])),
			Name:   strings.TrimSpace(record[1]),
		}
		if len(record) > 2 {
			ins.Exchange = strings.TrimSpace(record[2])
		}
		if len(record) > 3 {
			ins.Sector = strings.TrimSpace(record[3])
		}
		if ins.Symbol != "" {
			out = append(out, ins)
		}
	}
	return out, nil
}
