package cli

import (
	"github.com/spf13/cobra"

	"trading-journal/internal/charges"
	"trading-journal/internal/models"
)

// addChargeCommands adds the standalone charge calculator command.
func addChargeCommands(rootCmd *cobra.Command, app *App) {
	var (
		direction string
		quantity  string
		buyPrice  string
		sellPrice string
	)

	cmd := &cobra.Command{
		Use:   "charges",
		Short: "Preview the charge breakdown for a hypothetical trade",
		Long: `Compute the full intraday equity charge breakdown for a trade without
recording it. Unparseable numeric inputs are treated as 0, so partial
inputs still produce a preview.`,
		Example: `  journal charges --qty 10 --buy 100 --sell 105
  journal charges --direction Short --qty 50 --buy 250.5 --sell 248`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			breakdown := charges.Compute(
				models.ParseDirection(direction),
				charges.Coerce(quantity),
				charges.Coerce(buyPrice),
				charges.Coerce(sellPrice),
			)

			if output.IsJSON() {
				return output.JSON(breakdown)
			}
			renderChargeBreakdown(output, &breakdown)
			return nil
		},
	}

	cmd.Flags().StringVar(&direction, "direction", "Long", "trade direction (Long/Short)")
	cmd.Flags().StringVar(&quantity, "qty", "0", "quantity")
	cmd.Flags().StringVar(&buyPrice, "buy", "0", "buy price")
	cmd.Flags().StringVar(&sellPrice, "sell", "0", "sell price")

	rootCmd.AddCommand(cmd)
}
