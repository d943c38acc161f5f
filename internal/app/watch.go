package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackwell-systems/screenbudget/internal/budget"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var watchInterval string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the day-boundary monitor in the foreground",
	Long: `Watch the calendar date and close out each day automatically. When the
date rolls over and today's counters hold any minutes, the day that ended is
completed through the same path as 'screenbudget complete' and a line is
printed. Stop with ctrl-c.

Examples:
  screenbudget watch
  screenbudget watch --interval 30s`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Check interval as duration string (default from config, 1m)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	tracker, cfg, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	intervalStr := watchInterval
	if intervalStr == "" {
		intervalStr = cfg.MonitorInterval
	}
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", intervalStr, err)
	}
	if interval < time.Second {
		return fmt.Errorf("interval must be at least 1s, got %s", interval)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitor := budget.NewMonitor(tracker, budget.SystemClock{}, interval, func(rec budget.Record) {
		fmt.Printf("Day rolled over: completed %s with %d min (%s %s)\n", rec.Date, rec.TotalMinutes, rec.Emoji, rec.Label)
	})

	fmt.Printf("screenbudget watching for day boundaries... (checking every %s)\n", interval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return monitor.Run(gctx)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nstopped")
		return nil
	}
	return err
}
