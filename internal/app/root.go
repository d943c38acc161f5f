// Package app contains the Cobra command tree for screenbudget.
package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/screenbudget/internal/budget"
	"github.com/blackwell-systems/screenbudget/internal/config"
	"github.com/blackwell-systems/screenbudget/internal/output"
	"github.com/blackwell-systems/screenbudget/internal/store"
	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "screenbudget",
	Short: "Daily screen-time budget tracker with stars and crowns",
	Long: `screenbudget tracks a child's daily screen time against a configured
budget. Minutes are logged into morning, midday, and evening counters;
completing a day freezes it into history with a level verdict, and legendary
days earn stars that wrap into crowns.

Run 'screenbudget' with no arguments for today's dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/screenbudget/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}

// openTracker loads config, opens the store, and builds the tracker.
// The returned cleanup closes the store.
func openTracker() (*budget.Tracker, *config.Config, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	} else {
		output.AutoColor()
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}

	tracker, err := budget.NewTracker(db, budget.SystemClock{})
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("loading state: %w", err)
	}

	return tracker, cfg, func() { _ = db.Close() }, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
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
	reward, err := tracker.Reward()
	if err != nil {
		return fmt.Errorf("deriving reward: %w", err)
	}

	fmt.Println(output.Section(settings.DisplayName))
	fmt.Println()
	fmt.Println(" " + output.Badge(verdict.Emoji, verdict.Label, verdict.Rank))
	fmt.Println(" " + output.MinuteBar(day.Total(), settings.DailyLimitMinutes, 24, verdict.Rank))
	fmt.Println(" " + output.StarLine(reward.Stars, settings.WeeklyStarTarget, reward.Crowns))

	recent := tracker.Records()
	if len(recent) > 3 {
		recent = recent[:3]
	}
	if len(recent) > 0 {
		fmt.Println(output.Section("Recent Days"))
		fmt.Println()
		tbl := output.NewTable("Date", "Minutes", "Level")
		for _, r := range recent {
			tbl.AddRow(r.Date, fmt.Sprintf("%d", r.TotalMinutes), fmt.Sprintf("%s %s", r.Emoji, r.Label))
		}
		tbl.Print()
	}

	return nil
}
