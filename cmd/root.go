package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Itecs-company/Obed-micro/internal/api"
	"github.com/Itecs-company/Obed-micro/internal/config"
	"github.com/Itecs-company/Obed-micro/internal/engine"
	"github.com/Itecs-company/Obed-micro/internal/logging"
	"github.com/Itecs-company/Obed-micro/internal/model"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "obed",
	Short: "Command-line client for the employee lunch ledger",
	Long: `obed is a command-line client for the employee lunch ledger service.
It tracks who participates in lunch on which date, the shared lunch price,
and the resulting headcount and cost for any date range.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetupWithLevel(slog.LevelDebug)
		} else {
			logging.Setup()
		}
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(priceCmd)
}

// newEngine loads the config and saved session and builds a ready engine.
func newEngine(ctx context.Context) (*engine.Engine, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	tok, err := api.CurrentToken()
	if err != nil {
		return nil, cfg, err
	}
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	client := api.NewClient(ctx, cfg.Server.URL, tok, timeout)
	return engine.New(client, slog.Default()), cfg, nil
}

// parseRangeFlags converts optional --from/--to values into range bounds.
// An empty flag leaves its side unbounded.
func parseRangeFlags(from, to string) (*model.Date, *model.Date, error) {
	var start, end *model.Date
	if from != "" {
		d, err := model.ParseDate(from)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --from value: %w", err)
		}
		start = &d
	}
	if to != "" {
		d, err := model.ParseDate(to)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --to value: %w", err)
		}
		end = &d
	}
	return start, end, nil
}
