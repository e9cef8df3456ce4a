package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trading-journal/internal/insights"
	"trading-journal/internal/store"
)

// addScoreCommands adds the performance scoring command.
func addScoreCommands(rootCmd *cobra.Command, app *App) {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score the journal and surface insights, recommendations and alerts",
		Long: `Compute the overall performance score from win rate, profit factor,
consistency and psychology-log activity, classify risk, and surface
rule-based insights, recommendations and behavioral alerts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			output := NewOutput(cmd)

			trades, err := loadFilteredTrades(cmd, app, &flags)
			if err != nil {
				return err
			}
			entries, err := app.Store.ListPsychologyEntries(cmd.Context(), store.PsychologyFilter{})
			if err != nil {
				return err
			}

			result := insights.Score(trades, entries, app.Config.Journal.MinPatternTrades)
			if output.IsJSON() {
				return output.JSON(result)
			}
			renderScore(output, result)
			return nil
		},
	}

	flags.register(cmd)
	rootCmd.AddCommand(cmd)
}

func renderScore(output *Output, r insights.Result) {
	output.Bold("Performance Score: %d/100", r.OverallScore)
	output.Printf("  Win Rate:        %s\n", output.FormatWinRate(r.WinRate))
	output.Printf("  Profit Factor:   %.2f\n", r.ProfitFactor)
	output.Printf("  Consistency:     %.0f\n", r.Consistency)
	output.Printf("  Psychology:      %.0f\n", r.PsychologyScore)
	output.Printf("  Emotional Trades: %d\n", r.EmotionalTrades)
	output.Printf("  Risk Level:      %s\n", output.RiskTag(string(r.RiskLevel)))
	output.Println()

	if len(r.Insights) > 0 {
		output.Bold("Insights")
		for _, ins := range r.Insights {
			tag := ins.Title
			switch ins.Level {
			case "success":
				tag = output.Green(ins.Title)
			case "warning":
				tag = output.Yellow(ins.Title)
			case "danger":
				tag = output.Red(ins.Title)
			}
			output.Printf("  %s — %s\n", tag, ins.Message)
		}
		output.Println()
	}

	if len(r.Recommendations) > 0 {
		output.Bold("Recommendations")
		for _, rec := range r.Recommendations {
			output.Printf("  [%s] %s\n", rec.Priority, rec.Action)
			output.Dim("        %s", rec.Reason)
		}
		output.Println()
	}

	if len(r.Alerts) > 0 {
		output.Bold("Alerts")
		for _, a := range r.Alerts {
			output.Warning("  ⚠ %s: %s", a.Kind, a.Message)
		}
		output.Println()
	}

	if r.Patterns.BestDay != nil || r.Patterns.BestHour != nil {
		output.Bold("Time Patterns")
		if r.Patterns.BestDay != nil {
			output.Printf("  Best Day:   %s (%s)\n", r.Patterns.BestDay.Key, output.FormatWinRate(r.Patterns.BestDay.WinRate))
		}
		if r.Patterns.WorstDay != nil {
			output.Printf("  Worst Day:  %s (%s)\n", r.Patterns.WorstDay.Key, output.FormatWinRate(r.Patterns.WorstDay.WinRate))
		}
		if r.Patterns.BestHour != nil {
			output.Printf("  Best Hour:  %s (%s)\n", r.Patterns.BestHour.Key, output.FormatWinRate(r.Patterns.BestHour.WinRate))
		}
		if r.Patterns.WorstHour != nil {
			output.Printf("  Worst Hour: %s (%s)\n", r.Patterns.WorstHour.Key, output.FormatWinRate(r.Patterns.WorstHour.WinRate))
		}
	}
}
