package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/models"
	"trading-journal/internal/store"
)

// addPsychologyCommands adds psychology journal commands.
func addPsychologyCommands(rootCmd *cobra.Command, app *App) {
	psychCmd := &cobra.Command{
		Use:   "psych",
		Short: "Manage the psychology journal",
		Long:  "Record and review daily psychology journal entries.",
	}

	psychCmd.AddCommand(newPsychAddCmd(app))
	psychCmd.AddCommand(newPsychListCmd(app))

	rootCmd.AddCommand(psychCmd)
}

func newPsychAddCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "add <entry>",
		Short: "Record a psychology journal entry",
		Example: `  journal psych add "Felt calm, followed the plan all morning"
  journal psych add --date 2026-08-20 "Revenge traded after the first loss"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			output := NewOutput(cmd)

			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("entry text is empty")
			}

			entryDate := time.Now()
			if date != "" {
				parsed, err := ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				entryDate = parsed
			}

			entry := models.PsychologyEntry{
				ID:    models.NewID(),
				Date:  entryDate,
				Entry: text,
			}
			if err := app.Store.SavePsychologyEntry(cmd.Context(), &entry); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}
			output.Success("✓ Entry recorded for %s", FormatDate(entry.Date))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date (YYYY-MM-DD, default: today)")
	return cmd
}

func newPsychListCmd(app *App) *cobra.Command {
	var (
		from  string
		to    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List psychology journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			output := NewOutput(cmd)

			filter := store.PsychologyFilter{Limit: limit}
			if from != "" {
				parsed, err := ParseDate(from)
				if err != nil {
					return fmt.Errorf("invalid --from date: %w", err)
				}
				filter.StartDate = parsed
			}
			if to != "" {
				parsed, err := ParseDate(to)
				if err != nil {
					return fmt.Errorf("invalid --to date: %w", err)
				}
				filter.EndDate = parsed
			}

			entries, err := app.Store.ListPsychologyEntries(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(entries)
			}
			if len(entries) == 0 {
				output.Info("No psychology entries found.")
				return nil
			}

			for _, e := range entries {
				output.Bold(FormatDate(e.Date))
				output.Printf("  %s\n", e.Entry)
				output.Println()
			}
			output.Dim("%d entr(ies)", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries (0 = all)")

	return cmd
}
