package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Itecs-company/Obed-micro/internal/engine"
)

var (
	listFrom string
	listTo   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List attendance records",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "Range start (YYYY-MM-DD); empty = unbounded")
	listCmd.Flags().StringVar(&listTo, "to", "", "Range end (YYYY-MM-DD); empty = unbounded")
}

func runList(cmd *cobra.Command, args []string) error {
	start, end, err := parseRangeFlags(listFrom, listTo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	eng, _, err := newEngine(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := eng.SetRange(ctx, start, end); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to fetch records:", err)
		os.Exit(1)
	}

	printView(eng.Snapshot())
	return nil
}

// printView renders the ledger view as a table with the server-computed
// totals underneath.
func printView(v engine.View) {
	if len(v.Records) == 0 {
		fmt.Println("No records found.")
	} else {
		fmt.Printf("%-6s %-12s %-30s %-12s %s\n", "ID", "DATE", "NAME", "STATUS", "NOTE")
		for _, r := range v.Records {
			status := "absent"
			if r.Status {
				status = "lunch"
			}
			fmt.Printf("%-6d %-12s %-30s %-12s %s\n", r.ID, r.Date, r.FullName, status, r.Note)
		}
	}
	fmt.Println()
	fmt.Printf("Participants: %d   Total cost: %.2f   Lunch price: %.2f\n",
		v.Totals.Participants, v.Totals.Cost, v.LunchPrice)
}
