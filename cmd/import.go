package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Bulk-import records from a spreadsheet",
	Long: `Uploads a spreadsheet to the ledger service as a single transaction.
The service decides row by row what to accept; rows it cannot parse are
skipped server-side without failing the import.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer file.Close()

	ctx := context.Background()
	eng, _, err := newEngine(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := eng.Import(ctx, filepath.Base(path), file); err != nil {
		fmt.Fprintln(os.Stderr, "Import failed:", err)
		os.Exit(1)
	}

	fmt.Println("Import finished.")
	printView(eng.Snapshot())
	return nil
}
