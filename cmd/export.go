package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Itecs-company/Obed-micro/internal/api"
	"github.com/Itecs-company/Obed-micro/internal/model"
)

var (
	exportFormat  string
	exportNoPrice bool
	exportFrom    string
	exportTo      string
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download an attendance report",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "excel", "Artifact format: excel, pdf")
	exportCmd.Flags().BoolVar(&exportNoPrice, "no-price", false, "Omit price-derived columns")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Range start (YYYY-MM-DD); empty = all time")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Range end (YYYY-MM-DD); empty = all time")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output directory (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := api.ParseExportFormat(exportFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	start, end, err := parseRangeFlags(exportFrom, exportTo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	eng, cfg, err := newEngine(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	destDir := exportOut
	if destDir == "" {
		destDir = cfg.ExportDir
	}
	if destDir == "" {
		destDir = "."
	}

	rng := model.DateRange{Start: start, End: end}
	path, err := eng.Export(ctx, format, !exportNoPrice, rng, destDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Export failed:", err)
		os.Exit(1)
	}

	fmt.Printf("Saved %s\n", path)
	return nil
}
