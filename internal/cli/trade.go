package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/charges"
	"trading-journal/internal/logging"
	"trading-journal/internal/models"
	"trading-journal/internal/store"
)

// addTradeCommands adds trade record commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	tradeCmd := &cobra.Command{
		Use:   "trade",
		Short: "Manage trade records",
		Long:  "Add, list, edit, copy and delete trade records.",
	}

	tradeCmd.AddCommand(newTradeAddCmd(app))
	tradeCmd.AddCommand(newTradeListCmd(app))
	tradeCmd.AddCommand(newTradeShowCmd(app))
	tradeCmd.AddCommand(newTradeEditCmd(app))
	tradeCmd.AddCommand(newTradeCopyCmd(app))
	tradeCmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(tradeCmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	var (
		date         string
		symbol       string
		direction    string
		quantity     float64
		buyPrice     float64
		sellPrice    float64
		entryTime    string
		exitTime     string
		trend        string
		ruleFollowed string
		emotion      string
		riskReward   string
		setup        string
		remarks      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new trade",
		Long: `Record a new trade. Charges are computed from quantity and prices
using the flat-brokerage intraday equity schedule.`,
		Example: `  journal trade add --symbol RELIANCE --direction Long --qty 10 --buy 2500 --sell 2505
  journal trade add --symbol TCS --direction Short --qty 5 --buy 3900 --sell 3920 --setup "ORB" --emotion calm`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			output := NewOutput(cmd)

			tradeDate := time.Now()
			if date != "" {
				parsed, err := ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
				}
				tradeDate = parsed
			}

			trade := models.TradeRecord{
				ID:           models.NewID(),
				Date:         tradeDate,
				Symbol:       strings.ToUpper(strings.TrimSpace(symbol)),
				Direction:    models.ParseDirection(direction),
				Quantity:     quantity,
				BuyPrice:     buyPrice,
				SellPrice:    sellPrice,
				EntryTime:    entryTime,
				ExitTime:     exitTime,
				Trend:        trend,
				RuleFollowed: ruleFollowed,
				Emotion:      emotion,
				RiskReward:   riskReward,
				Setup:        setup,
				Remarks:      remarks,
			}
			trade.NormalizeWithDefaults(app.Config.Journal.DefaultTrend, app.Config.Journal.DefaultRuleFollowed)
			charges.Attach(&trade)

			if err := app.Store.InsertTrade(cmd.Context(), &trade); err != nil {
				return err
			}
			logging.LogTradeSaved(app.Logger, trade.ID, trade.Symbol, trade.Net())

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade recorded: %s", trade.ID)
			renderTradeDetail(output, &trade)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "trade date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "trading symbol (required)")
	cmd.Flags().StringVar(&direction, "direction", "Long", "trade direction (Long/Short)")
	cmd.Flags().Float64Var(&quantity, "qty", 0, "quantity (required)")
	cmd.Flags().Float64Var(&buyPrice, "buy", 0, "buy price (required)")
	cmd.Flags().Float64Var(&sellPrice, "sell", 0, "sell price (required)")
	cmd.Flags().StringVar(&entryTime, "entry", "", "entry time (HH:MM)")
	cmd.Flags().StringVar(&exitTime, "exit", "", "exit time (HH:MM)")
	cmd.Flags().StringVar(&trend, "trend", "", "market trend (default from config)")
	cmd.Flags().StringVar(&ruleFollowed, "rule", "", "rule followed (Yes/No)")
	cmd.Flags().StringVar(&emotion, "emotion", "", "emotional state during the trade")
	cmd.Flags().StringVar(&riskReward, "rr", "", "planned risk/reward (e.g. 1:2)")
	cmd.Flags().StringVar(&setup, "setup", "", "trade setup name")
	cmd.Flags().StringVar(&remarks, "remarks", "", "free-form remarks")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("qty")
	cmd.MarkFlagRequired("buy")
	cmd.MarkFlagRequired("sell")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	var (
		from      string
		to        string
		symbol    string
		setup     string
		direction string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trade records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			output := NewOutput(cmd)

			filter := store.TradeFilter{
				Symbol:    strings.ToUpper(strings.TrimSpace(symbol)),
				Setup:     setup,
				Direction: direction,
				Limit:     limit,
			}
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

			trades, err := app.Store.ListTrades(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades found.")
				return nil
			}

			table := NewTable(output, "ID", "DATE", "SYMBOL", "DIR", "QTY", "BUY", "SELL", "NET", "SETUP")
			for i := range trades {
				t := &trades[i]
				table.AddRow(
					TruncateString(t.ID, 22),
					FormatDate(t.Date),
					t.Symbol,
					string(t.Direction),
					fmt.Sprintf("%g", t.Quantity),
					fmt.Sprintf("%.2f", t.BuyPrice),
					fmt.Sprintf("%.2f", t.SellPrice),
					output.FormatPnL(t.Net()),
					TruncateString(t.Setup, 18),
				)
			}
			table.Render()
			output.Dim("%d trade(s)", len(trades))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "filter by symbol")
	cmd.Flags().StringVar(&setup, "setup", "", "filter by setup")
	cmd.Flags().StringVar(&direction, "direction", "", "filter by direction (Long/Short)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 = all)")

	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a trade with its full charge breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			output := NewOutput(cmd)

			trade, err := app.Store.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}
			renderTradeDetail(output, trade)
			return nil
		},
	}
}

func newTradeEditCmd(app *App) *cobra.Command {
	var (
		quantity   float64
		buyPrice   float64
		sellPrice  float64
		emotion    string
		setup      string
		remarks    string
		ruleStatus string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing trade",
		Long:  "Edit an existing trade. Charges are recomputed when quantity or prices change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			output := NewOutput(cmd)

			trade, err := app.Store.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			recompute := false
			if cmd.Flags().Changed("qty") {
				trade.Quantity = quantity
				recompute = true
			}
			if cmd.Flags().Changed("buy") {
				trade.BuyPrice = buyPrice
				recompute = true
			}
			if cmd.Flags().Changed("sell") {
				trade.SellPrice = sellPrice
				recompute = true
			}
			if cmd.Flags().Changed("emotion") {
				trade.Emotion = emotion
			}
			if cmd.Flags().Changed("setup") {
				trade.Setup = setup
			}
			if cmd.Flags().Changed("remarks") {
				trade.Remarks = remarks
			}
			if cmd.Flags().Changed("rule") {
				trade.RuleFollowed = ruleStatus
			}
			if recompute {
				charges.Attach(trade)
			}

			if err := app.Store.UpdateTrade(cmd.Context(), trade); err != nil {
				return err
			}
			logging.LogTradeSaved(app.Logger, trade.ID, trade.Symbol, trade.Net())

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade updated: %s", trade.ID)
			renderTradeDetail(output, trade)
			return nil
		},
	}

	cmd.Flags().Float64Var(&quantity, "qty", 0, "new quantity")
	cmd.Flags().Float64Var(&buyPrice, "buy", 0, "new buy price")
	cmd.Flags().Float64Var(&sellPrice, "sell", 0, "new sell price")
	cmd.Flags().StringVar(&emotion, "emotion", "", "new emotional state")
	cmd.Flags().StringVar(&setup, "setup", "", "new setup name")
	cmd.Flags().StringVar(&remarks, "remarks", "", "new remarks")
	cmd.Flags().StringVar(&ruleStatus, "rule", "", "rule followed (Yes/No)")

	return cmd
}

func newTradeCopyCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a trade as a new record",
		Long:  "Copy an existing trade into a new record with a fresh id, defaulting to today's date.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			output := NewOutput(cmd)

			source, err := app.Store.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			dup := *source
			dup.ID = models.NewID()
			dup.Date = time.Now()
			dup.Screenshots = nil
			if date != "" {
				parsed, err := ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				dup.Date = parsed
			}
			charges.Attach(&dup)

			if err := app.Store.InsertTrade(cmd.Context(), &dup); err != nil {
				return err
			}
			logging.LogTradeSaved(app.Logger, dup.ID, dup.Symbol, dup.Net())

			if output.IsJSON() {
				return output.JSON(dup)
			}
			output.Success("✓ Trade copied: %s → %s", source.ID, dup.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date for the copy (YYYY-MM-DD, default: today)")
	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trade record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}
			output := NewOutput(cmd)

			if !force {
				output.Warning("Re-run with --force to delete trade %s", args[0])
				return nil
			}

			if err := app.Store.DeleteTrade(cmd.Context(), args[0]); err != nil {
				return err
			}
			logging.LogTradeDeleted(app.Logger, args[0])

			if output.IsJSON() {
				return output.JSON(map[string]string{"deleted": args[0]})
			}
			output.Success("✓ Trade deleted: %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete without confirmation")
	return cmd
}

// renderTradeDetail prints a full trade with its charge breakdown.
func renderTradeDetail(output *Output, t *models.TradeRecord) {
	output.Println()
	output.Bold("%s  %s  %s", t.Symbol, string(t.Direction), FormatDate(t.Date))
	output.Printf("  Quantity:   %g\n", t.Quantity)
	output.Printf("  Buy Price:  %s\n", FormatIndianCurrency(t.BuyPrice))
	output.Printf("  Sell Price: %s\n", FormatIndianCurrency(t.SellPrice))
	if t.EntryTime != "" || t.ExitTime != "" {
		output.Printf("  Session:    %s → %s\n", t.EntryTime, t.ExitTime)
	}
	if t.Setup != "" {
		output.Printf("  Setup:      %s\n", t.Setup)
	}
	if t.Emotion != "" {
		output.Printf("  Emotion:    %s\n", t.Emotion)
	}
	output.Printf("  Trend:      %s   Rule Followed: %s\n", t.Trend, t.RuleFollowed)
	if t.Remarks != "" {
		output.Printf("  Remarks:    %s\n", t.Remarks)
	}

	if t.Charges != nil {
		output.Println()
		renderChargeBreakdown(output, t.Charges)
	}
}

// renderChargeBreakdown prints a charge breakdown table.
func renderChargeBreakdown(output *Output, c *models.ChargeBreakdown) {
	output.Bold("Charge Breakdown")
	output.Printf("  Turnover:        %s\n", FormatIndianCurrency(c.Turnover))
	output.Printf("  Brokerage:       %s\n", FormatIndianCurrency(c.Brokerage))
	output.Printf("  STT:             %s\n", FormatIndianCurrency(c.STT))
	output.Printf("  Exchange:        %s\n", FormatIndianCurrency(c.ExchangeCharges))
	output.Printf("  Stamp Duty:      %s\n", FormatIndianCurrency(c.StampDuty))
	output.Printf("  SEBI Fees:       %s\n", FormatIndianCurrency(c.SEBIFees))
	output.Printf("  GST:             %s\n", FormatIndianCurrency(c.GST))
	output.Printf("  Total Charges:   %s\n", FormatIndianCurrency(c.TotalCharges))
	output.Printf("  Gross P&L:       %s\n", output.FormatPnL(c.Gross))
	output.Printf("  Net P&L:         %s\n", output.FormatPnL(c.Net))
}
