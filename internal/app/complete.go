package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blackwell-systems/screenbudget/internal/output"
	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Close today into history",
	Long: `Freeze today's total into an immutable history record with its level
verdict, reset the counters, and update the star/crown reward. The same
transition runs automatically at midnight when 'screenbudget watch' is active.`,
	RunE: runComplete,
}

func init() {
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	tracker, _, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := tracker.CompleteDay()
	if err != nil {
		return fmt.Errorf("completing day: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	settings := tracker.Settings()
	reward, err := tracker.Reward()
	if err != nil {
		return fmt.Errorf("deriving reward: %w", err)
	}

	fmt.Printf("Completed %s: %s %s, %d min (record %d)\n", rec.Date, rec.Emoji, rec.Label, rec.TotalMinutes, rec.ID)
	fmt.Println(output.StarLine(reward.Stars, settings.WeeklyStarTarget, reward.Crowns))
	return nil
}
