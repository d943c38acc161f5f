package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/blackwell-systems/screenbudget/internal/budget"
	"github.com/blackwell-systems/screenbudget/internal/output"
	"github.com/spf13/cobra"
)

var (
	historyDelete int64
	historyUndo   bool
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, delete, or restore completed days",
	Long: `List the history of completed days, newest first. Deleting a record
also rolls its effect out of the star/crown reward; the deletion can be
undone within ten seconds of the delete, while the same process is running.

Examples:
  screenbudget history
  screenbudget history --limit 7
  screenbudget history --delete 1756406400000
  screenbudget history --delete 1756406400000 --undo   # immediate undo`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int64Var(&historyDelete, "delete", 0, "Delete the record with this id")
	historyCmd.Flags().BoolVar(&historyUndo, "undo", false, "Restore the last deleted record")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show at most N records")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	tracker, _, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if historyDelete != 0 {
		rec, err := tracker.DeleteRecord(historyDelete)
		if errors.Is(err, budget.ErrNotFound) {
			return fmt.Errorf("no record with id %d", historyDelete)
		}
		if err != nil {
			return fmt.Errorf("deleting record: %w", err)
		}
		fmt.Printf("Deleted %s (%d min, %s)\n", rec.Date, rec.TotalMinutes, rec.Label)

		if historyUndo {
			if _, err := tracker.Undo(); err != nil {
				return fmt.Errorf("undoing delete: %w", err)
			}
			fmt.Println("Restored.")
		}
		return nil
	}

	if historyUndo {
		rec, err := tracker.Undo()
		if errors.Is(err, budget.ErrNotFound) {
			return fmt.Errorf("nothing to undo (the window is %s)", budget.DefaultUndoWindow)
		}
		if err != nil {
			return fmt.Errorf("undoing delete: %w", err)
		}
		fmt.Printf("Restored %s (%d min, %s)\n", rec.Date, rec.TotalMinutes, rec.Label)
		return nil
	}

	records := tracker.Records()
	if historyLimit > 0 && len(records) > historyLimit {
		records = records[:historyLimit]
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No completed days yet. Use 'screenbudget complete' to close a day.")
		return nil
	}

	fmt.Println(output.Section("History"))
	fmt.Println()
	tbl := output.NewTable("ID", "Date", "Minutes", "Level")
	for _, r := range records {
		tbl.AddRow(
			fmt.Sprintf("%d", r.ID),
			r.Date,
			fmt.Sprintf("%d", r.TotalMinutes),
			fmt.Sprintf("%s %s", r.Emoji, r.Label),
		)
	}
	tbl.Print()
	return nil
}
