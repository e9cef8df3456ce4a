package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trading-journal/internal/logging"
	"trading-journal/internal/models"
	"trading-journal/internal/store"
)

// addDataCommands adds CSV import/export commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Import and export journal data",
		Long:  "Move trade records in and out of the journal as CSV.",
	}

	dataCmd.AddCommand(newDataExportCmd(app))
	dataCmd.AddCommand(newDataImportCmd(app))

	rootCmd.AddCommand(dataCmd)
}

func newDataExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades to a CSV file",
		Example: `  journal data export --output trades.csv
  journal data export --output - > trades.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			out := NewOutput(cmd)

			trades, err := app.Store.ListTrades(cmd.Context(), store.TradeFilter{})
			if err != nil {
				return err
			}

			if output == "-" {
				return store.ExportTradesCSV(cmd.OutOrStdout(), trades)
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer file.Close()

			if err := store.ExportTradesCSV(file, trades); err != nil {
				return err
			}

			if out.IsJSON() {
				return out.JSON(map[string]interface{}{"exported": len(trades), "path": output})
			}
			out.Success("✓ Exported %d trade(s) to %s", len(trades), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "trades.csv", "output file path ('-' for stdout)")
	return cmd
}

func newDataImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import trades from a CSV file",
		Long: `Import trades from a CSV file. Charges are recomputed for every row;
rows without a parseable date are skipped and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			out := NewOutput(cmd)

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()

			records, skipped, err := store.ImportTradesCSV(file,
				app.Config.Journal.DefaultTrend, app.Config.Journal.DefaultRuleFollowed)
			if err != nil {
				return err
			}

			imported := 0
			if !dryRun {
				for i := range records {
					records[i].ID = models.NewID()
					if err := app.Store.InsertTrade(cmd.Context(), &records[i]); err != nil {
						return fmt.Errorf("failed to import row %d: %w", i+1, err)
					}
					imported++
				}
			} else {
				imported = len(records)
			}
			logging.LogImport(app.Logger, args[0], imported, skipped)

			if out.IsJSON() {
				return out.JSON(map[string]interface{}{
					"imported": imported,
					"skipped":  skipped,
					"dry_run":  dryRun,
				})
			}
			if dryRun {
				out.Info("Dry run: %d trade(s) would be imported, %d row(s) skipped", imported, skipped)
			} else {
				out.Success("✓ Imported %d trade(s), skipped %d row(s)", imported, skipped)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate without saving")
	return cmd
}
