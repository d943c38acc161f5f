package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/screenbudget/internal/budget"
	"github.com/blackwell-systems/screenbudget/internal/output"
	"github.com/spf13/cobra"
)

var (
	statsWeek   bool
	statsMonth  string
	statsLevels bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Weekly and monthly analytics over history",
	Long: `Aggregate the history of completed days. The weekly chart covers the
trailing 7 calendar days (days without a record show as zero). Monthly sums
partition the month into Monday-through-Sunday weeks.

Examples:
  screenbudget stats                  # weekly chart (default)
  screenbudget stats --month 2026-08  # per-week sums for August 2026
  screenbudget stats --levels         # level distribution counts`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsWeek, "week", false, "Show the trailing 7-day chart")
	statsCmd.Flags().StringVar(&statsMonth, "month", "", "Show per-week sums for a month (YYYY-MM)")
	statsCmd.Flags().BoolVar(&statsLevels, "levels", false, "Show the level distribution")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	tracker, _, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	records := tracker.Records()
	settings := tracker.Settings()

	mode, err := pickStatsMode(statsWeek, statsMonth, statsLevels)
	if err != nil {
		return err
	}
	switch mode {
	case "month":
		return statsMonthly(records, statsMonth)
	case "levels":
		return statsDistribution(records, settings)
	default:
		return statsWeekly(records, settings)
	}
}

// pickStatsMode resolves the mutually exclusive view flags. No flag means
// the weekly chart.
func pickStatsMode(week bool, month string, levels bool) (string, error) {
	selected := 0
	mode := "week"
	if week {
		selected++
	}
	if month != "" {
		selected++
		mode = "month"
	}
	if levels {
		selected++
		mode = "levels"
	}
	if selected > 1 {
		return "", fmt.Errorf("choose one of --week, --month, or --levels")
	}
	return mode, nil
}

func statsWeekly(records []budget.Record, settings budget.Settings) error {
	series := budget.WeeklySeries(records, budget.SystemClock{}.Now())

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(series)
	}

	values := make([]int, len(series))
	for i, p := range series {
		values[i] = p.TotalMinutes
	}
	scale := budget.MaxOrFloor(values, settings.DailyLimitMinutes)

	fmt.Println(output.Section("Last 7 Days"))
	fmt.Println()
	for _, p := range series {
		marker := " "
		if p.IsToday {
			marker = output.StyleBold.Render("*")
		}
		fmt.Printf(" %s %s %s %4d min\n", p.Date, marker, output.ScaledBar(p.TotalMinutes, scale, 20), p.TotalMinutes)
	}
	return nil
}

func statsMonthly(records []budget.Record, month string) error {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return fmt.Errorf("invalid month %q (want YYYY-MM): %w", month, err)
	}

	weeks := budget.MonthlyWeeks(records, parsed.Year(), parsed.Month())

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(weeks)
	}

	fmt.Println(output.Section(parsed.Format("January 2006")))
	fmt.Println()
	tbl := output.NewTable("Week", "Minutes")
	for _, w := range weeks {
		tbl.AddRow(fmt.Sprintf("%s – %s", w.Start, w.End), fmt.Sprintf("%d", w.TotalMinutes))
	}
	tbl.Print()
	return nil
}

func statsDistribution(records []budget.Record, settings budget.Settings) error {
	dist := budget.LevelDistribution(records, settings.Levels)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dist)
	}

	fmt.Println(output.Section("Level Distribution"))
	fmt.Println()
	tbl := output.NewTable("Level", "Days")
	// Walk the configured scheme so tiers print best-first.
	for _, rule := range settings.Levels {
		tbl.AddRow(fmt.Sprintf("%s %s", rule.Emoji, rule.Label), fmt.Sprintf("%d", dist[rule.Key]))
	}
	tbl.Print()
	return nil
}
