package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Itecs-company/Obed-micro/internal/model"
)

var (
	addDate   string
	addAbsent bool
	addNote   string
)

var addCmd = &cobra.Command{
	Use:   "add <full name>",
	Short: "Add a new attendance record",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Record date (YYYY-MM-DD); defaults to today")
	addCmd.Flags().BoolVar(&addAbsent, "absent", false, "Mark as not participating in lunch")
	addCmd.Flags().StringVar(&addNote, "note", "", "Free-text note")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	eng, _, err := newEngine(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	draft := eng.Draft()
	draft.FullName = strings.Join(args, " ")
	draft.Status = !addAbsent
	draft.Note = addNote
	if addDate != "" {
		d, err := model.ParseDate(addDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --date value: %v\n", err)
			os.Exit(1)
		}
		draft.Date = d
	}
	eng.SetDraft(draft)

	if err := eng.SubmitDraft(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to add record:", err)
		os.Exit(1)
	}

	fmt.Printf("Added %q for %s\n", draft.FullName, draft.Date)
	printView(eng.Snapshot())
	return nil
}
