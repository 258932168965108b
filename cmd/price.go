package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price [new value]",
	Short: "Show or set the shared lunch price",
	Long: `Without an argument, shows the current lunch price. With one, writes
the new price and shows the refreshed all-time totals (a price change
resets the view to the unbounded range).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrice,
}

func runPrice(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	eng, _, err := newEngine(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if len(args) == 0 {
		price, err := eng.Price(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to fetch settings:", err)
			os.Exit(1)
		}
		fmt.Printf("Lunch price: %.2f\n", price)
		return nil
	}

	if err := eng.SetPrice(ctx, args[0]); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to update price:", err)
		os.Exit(1)
	}

	fmt.Printf("Lunch price set to %.2f\n", eng.Snapshot().LunchPrice)
	printView(eng.Snapshot())
	return nil
}
