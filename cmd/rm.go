package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid record id %q\n", args[0])
		os.Exit(1)
	}

	ctx := context.Background()
	eng, _, err := newEngine(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := eng.Delete(ctx, id); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to delete record:", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted record %d.\n", id)
	printView(eng.Snapshot())
	return nil
}
