package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Itecs-company/Obed-micro/internal/engine"
	"github.com/Itecs-company/Obed-micro/internal/model"
)

var (
	editName   string
	editStatus string
	editDate   string
	editNote   string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of an existing record",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "New full name")
	editCmd.Flags().StringVar(&editStatus, "status", "", "Participation: true/1 = lunch, anything else = absent")
	editCmd.Flags().StringVar(&editDate, "date", "", "New date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editNote, "note", "", "New note")
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	// The engine reconciles against the last-known server state, so load
	// the all-time view and locate the record first.
	if err := eng.Refresh(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to fetch records:", err)
		os.Exit(1)
	}
	original, ok := findRecord(eng.Snapshot(), id)
	if !ok {
		fmt.Fprintf(os.Stderr, "record %d not found\n", id)
		os.Exit(1)
	}

	edited := original
	if cmd.Flags().Changed("name") {
		edited.FullName = editName
	}
	if cmd.Flags().Changed("status") {
		edited.Status = engine.NormalizeStatus(editStatus)
	}
	if cmd.Flags().Changed("date") {
		d, err := model.ParseDate(editDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --date value: %v\n", err)
			os.Exit(1)
		}
		edited.Date = d
	}
	if cmd.Flags().Changed("note") {
		edited.Note = editNote
	}

	if err := eng.Update(ctx, original, edited); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to update record:", err)
		os.Exit(1)
	}

	fmt.Printf("Record %d up to date.\n", id)
	printView(eng.Snapshot())
	return nil
}

func findRecord(v engine.View, id int64) (model.Record, bool) {
	for _, r := range v.Records {
		if r.ID == id {
			return r, true
		}
	}
	return model.Record{}, false
}
