package app

import (
	"fmt"
	"strconv"

	"github.com/blackwell-systems/screenbudget/internal/budget"
	"github.com/blackwell-systems/screenbudget/internal/output"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <slot> <steps>",
	Short: "Adjust a day counter by signed steps",
	Long: `Adjust one of today's counters (morning, midday, evening) by a signed
number of counter steps. The step size comes from settings (default 5
minutes). Counters floor at zero; over-subtracting is not an error.

Examples:
  screenbudget add morning 3     # +3 steps of screen time this morning
  screenbudget add evening -1    # take one step back off the evening counter`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	slot, err := budget.ParseSlot(args[0])
	if err != nil {
		return err
	}
	steps, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid step count %q: %w", args[1], err)
	}

	tracker, _, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	total, err := tracker.Adjust(slot, steps)
	if err != nil {
		return fmt.Errorf("adjusting %s: %w", slot, err)
	}

	settings := tracker.Settings()
	verdict, err := tracker.Verdict()
	if err != nil {
		return fmt.Errorf("classifying today: %w", err)
	}

	fmt.Printf("%s → %d min total\n", slot, total)
	fmt.Println(output.MinuteBar(total, settings.DailyLimitMinutes, 24, verdict.Rank))
	return nil
}
