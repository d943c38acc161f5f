package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blackwell-systems/screenbudget/internal/budget"
	"github.com/blackwell-systems/screenbudget/internal/output"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's counters and verdict",
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

// todayView is the JSON shape for 'today --json'.
type todayView struct {
	Counters budget.Day     `json:"counters"`
	Total    int            `json:"total"`
	Limit    int            `json:"limit"`
	Verdict  budget.Verdict `json:"verdict"`
}

func runToday(cmd *cobra.Command, args []string) error {
	tracker, _, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	settings := tracker.Settings()
	day := tracker.Counters()
	verdict, err := tracker.Verdict()
	if err != nil {
		return fmt.Errorf("classifying today: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(todayView{
			Counters: day,
			Total:    day.Total(),
			Limit:    settings.DailyLimitMinutes,
			Verdict:  verdict,
		})
	}

	fmt.Println(output.Section("Today"))
	fmt.Println()
	tbl := output.NewTable("Slot", "Minutes")
	tbl.AddRow("morning", fmt.Sprintf("%d", day.Morning))
	tbl.AddRow("midday", fmt.Sprintf("%d", day.Midday))
	tbl.AddRow("evening", fmt.Sprintf("%d", day.Evening))
	tbl.Print()
	fmt.Println()
	fmt.Println(output.MinuteBar(day.Total(), settings.DailyLimitMinutes, 24, verdict.Rank))
	fmt.Println(output.Badge(verdict.Emoji, verdict.Label, verdict.Rank))
	return nil
}
