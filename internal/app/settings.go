package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blackwell-systems/screenbudget/internal/budget"
	"github.com/blackwell-systems/screenbudget/internal/output"
	"github.com/spf13/cobra"
)

var (
	settingsName       string
	settingsLimit      int
	settingsStep       int
	settingsStarTarget int
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the budget settings",
	Long: `Show the current budget settings, or change them with flags. Invalid
values (a zero limit, a negative star target) are refused and nothing is
persisted. Level thresholds defined as ratios follow the limit automatically;
past days keep the verdict they were frozen with.

Examples:
  screenbudget settings
  screenbudget settings --limit 90
  screenbudget settings --name Maya --star-target 5`,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&settingsName, "name", "", "Display name")
	settingsCmd.Flags().IntVar(&settingsLimit, "limit", 0, "Daily limit in minutes")
	settingsCmd.Flags().IntVar(&settingsStep, "step", 0, "Counter step in minutes")
	settingsCmd.Flags().IntVar(&settingsStarTarget, "star-target", 0, "Legendary days per crown")
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	tracker, _, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	edited := cmd.Flags().Changed("name") || cmd.Flags().Changed("limit") ||
		cmd.Flags().Changed("step") || cmd.Flags().Changed("star-target")

	settings := tracker.Settings()
	if edited {
		settings, err = tracker.UpdateSettings(func(s *budget.Settings) {
			if cmd.Flags().Changed("name") {
				s.DisplayName = settingsName
			}
			if cmd.Flags().Changed("limit") {
				s.DailyLimitMinutes = settingsLimit
			}
			if cmd.Flags().Changed("step") {
				s.CounterStepMinutes = settingsStep
			}
			if cmd.Flags().Changed("star-target") {
				s.WeeklyStarTarget = settingsStarTarget
			}
		})
		if err != nil {
			return fmt.Errorf("updating settings: %w", err)
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(settings)
	}

	fmt.Println(output.Section("Settings"))
	fmt.Println()
	tbl := output.NewTable("Setting", "Value")
	tbl.AddRow("name", settings.DisplayName)
	tbl.AddRow("daily limit", fmt.Sprintf("%d min", settings.DailyLimitMinutes))
	tbl.AddRow("counter step", fmt.Sprintf("%d min", settings.CounterStepMinutes))
	tbl.AddRow("star target", fmt.Sprintf("%d", settings.WeeklyStarTarget))
	tbl.Print()

	fmt.Println(output.Section("Level Scheme"))
	fmt.Println()
	levels := output.NewTable("Level", "Threshold")
	for i, rule := range settings.Levels {
		threshold := "above"
		if i < len(settings.Levels)-1 {
			threshold = fmt.Sprintf("≤ %d min", rule.Resolve(settings.DailyLimitMinutes))
		}
		levels.AddRow(fmt.Sprintf("%s %s", rule.Emoji, rule.Label), threshold)
	}
	levels.Print()
	return nil
}
