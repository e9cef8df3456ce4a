package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trading-journal/internal/analytics"
	"trading-journal/internal/models"
	"trading-journal/internal/store"
)

// addReportCommands adds aggregation and pattern report commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newEquityCmd(app))
	rootCmd.AddCommand(newPatternsCmd(app))
	rootCmd.AddCommand(newStatsCmd(app))
}

// filterFlags are the shared record-selection flags for report commands.
type filterFlags struct {
	from    string
	to      string
	text    string
	outcome string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.text, "text", "", "text search over symbol, setup, emotion and remarks")
	cmd.Flags().StringVar(&f.outcome, "outcome", "", "filter by outcome (wins/losses)")
}

// build converts flag values into an analytics filter.
func (f *filterFlags) build() (analytics.Filter, error) {
	filter := analytics.Filter{
		Text:    f.text,
		Outcome: analytics.Outcome(f.outcome),
	}
	if f.from != "" {
		parsed, err := ParseDate(f.from)
		if err != nil {
			return filter, fmt.Errorf("invalid --from date: %w", err)
		}
		filter.From = parsed
	}
	if f.to != "" {
		parsed, err := ParseDate(f.to)
		if err != nil {
			return filter, fmt.Errorf("invalid --to date: %w", err)
		}
		filter.To = parsed
	}
	switch filter.Outcome {
	case "", analytics.OutcomeWins, analytics.OutcomeLosses:
	default:
		return filter, fmt.Errorf("invalid --outcome %q (expected wins or losses)", f.outcome)
	}
	return filter, nil
}

// loadFilteredTrades reads all trades from the store and applies the
// in-memory filter.
func loadFilteredTrades(cmd *cobra.Command, app *App, flags *filterFlags) ([]models.TradeRecord, error) {
	if app.Store == nil {
		return nil, fmt.Errorf("data store unavailable")
	}
	filter, err := flags.build()
	if err != nil {
		return nil, err
	}
	trades, err := app.Store.ListTrades(cmd.Context(), store.TradeFilter{})
	if err != nil {
		return nil, err
	}
	return analytics.Apply(trades, filter), nil
}

func newReportCmd(app *App) *cobra.Command {
	var flags filterFlags
	var dimension string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate performance by month, setup, emotion or direction",
		Long: `Group trades along a dimension and report per-group trade count, win
rate and net P&L. Groups appear in first-trade order.`,
		Example: `  journal report --dimension month
  journal report --dimension setup --from 2026-01-01
  journal report --dimension emotion --outcome losses`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			var dim analytics.Dimension
			switch dimension {
			case "month":
				dim = analytics.ByMonth
			case "setup":
				dim = analytics.BySetup
			case "emotion":
				dim = analytics.ByEmotion
			case "direction":
				dim = analytics.ByDirectionTrend
			default:
				return fmt.Errorf("invalid --dimension %q (expected month, setup, emotion or direction)", dimension)
			}

			trades, err := loadFilteredTrades(cmd, app, &flags)
			if err != nil {
				return err
			}

			rows := analytics.Rollup(trades, dim)
			if output.IsJSON() {
				return output.JSON(rows)
			}
			if len(rows) == 0 {
				output.Info("No trades match the filter.")
				return nil
			}

			table := NewTable(output, "GROUP", "TRADES", "WINS", "LOSSES", "WIN RATE", "TOTAL NET", "AVG NET")
			for _, r := range rows {
				table.AddRow(
					r.Key,
					fmt.Sprintf("%d", r.Trades),
					fmt.Sprintf("%d", r.Wins),
					fmt.Sprintf("%d", r.Losses),
					output.FormatWinRate(r.WinRate),
					output.FormatPnL(r.TotalNet),
					output.FormatPnL(r.AvgNet),
				)
			}
			table.Render()
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dimension, "dimension", "month", "grouping dimension (month/setup/emotion/direction)")
	return cmd
}

func newEquityCmd(app *App) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the cumulative net P&L curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := loadFilteredTrades(cmd, app, &flags)
			if err != nil {
				return err
			}

			points := analytics.EquityCurve(trades)
			if output.IsJSON() {
				return output.JSON(points)
			}
			if len(points) == 0 {
				output.Info("No trades match the filter.")
				return nil
			}

			table := NewTable(output, "DATE", "NET", "CUMULATIVE")
			for _, p := range points {
				table.AddRow(
					FormatDate(p.Date),
					output.FormatPnL(p.Net),
					output.FormatPnL(p.CumulativeNet),
				)
			}
			table.Render()
			final := points[len(points)-1].CumulativeNet
			output.Println()
			output.Printf("Final equity: %s over %d trades\n", output.FormatPnL(final), len(points))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newPatternsCmd(app *App) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Show day-of-week, hour and hold-duration patterns",
		Long: `Break trades down by weekday, entry hour and hold duration. Weekday
and hour groups below the configured minimum trade count are dropped as
noise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := loadFilteredTrades(cmd, app, &flags)
			if err != nil {
				return err
			}

			minTrades := app.Config.Journal.MinPatternTrades
			days := analytics.DayOfWeekPattern(trades, minTrades)
			hours := analytics.HourPattern(trades, minTrades)
			durations := analytics.DurationBuckets(trades)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"day_of_week": days,
					"hourly":      hours,
					"duration":    durations,
				})
			}

			renderPatternTable(output, "By Day of Week", days)
			renderPatternTable(output, "By Entry Hour", hours)
			renderPatternTable(output, "By Hold Duration", durations)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func renderPatternTable(output *Output, title string, groups []analytics.PatternGroup) {
	output.Bold(title)
	if len(groups) == 0 {
		output.Dim("  no groups above the noise floor")
		output.Println()
		return
	}
	table := NewTable(output, "GROUP", "TRADES", "WINS", "WIN RATE", "AVG NET")
	for _, g := range groups {
		table.AddRow(
			g.Key,
			fmt.Sprintf("%d", g.Trades),
			fmt.Sprintf("%d", g.Wins),
			output.FormatWinRate(g.WinRate),
			output.FormatPnL(g.AvgNet),
		)
	}
	table.Render()
	output.Println()
}

func newStatsCmd(app *App) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show summary statistics for the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := loadFilteredTrades(cmd, app, &flags)
			if err != nil {
				return err
			}

			stats := analytics.Stats(trades)
			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Journal Statistics")
			output.Printf("  Trades:       %d (%d wins, %d losses)\n", stats.Trades, stats.Wins, stats.Losses)
			output.Printf("  Win Rate:     %s\n", output.FormatWinRate(stats.WinRate))
			output.Printf("  Total Net:    %s\n", output.FormatPnL(stats.TotalNet))
			if !stats.BestDay.IsZero() {
				output.Printf("  Best Day:     %s (%s)\n", FormatDate(stats.BestDay), output.FormatPnL(stats.BestDayNet))
			}
			if !stats.WorstDay.IsZero() {
				output.Printf("  Worst Day:    %s (%s)\n", FormatDate(stats.WorstDay), output.FormatPnL(stats.WorstDayNet))
			}
			output.Printf("  Best Streak:  %d green day(s)\n", stats.BestStreak)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
