package budget

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/screenbudget/internal/store"
)

// Monitor watches for calendar-date rollover. When the date changes and the
// accumulator holds minutes, it closes out the day that ended through the
// same completion path a user action uses, then advances the last-seen
// marker. One check per interval; checks and user mutations serialize on
// the tracker's lock.
type Monitor struct {
	tracker  *Tracker
	clock    Clock
	interval time.Duration
	notifyFn func(Record) // called for each auto-completed day
}

// NewMonitor creates a boundary monitor over the given tracker.
func NewMonitor(tracker *Tracker, clock Clock, interval time.Duration, notifyFn func(Record)) *Monitor {
	return &Monitor{
		tracker:  tracker,
		clock:    clock,
		interval: interval,
		notifyFn: notifyFn,
	}
}

// Run performs an immediate check, then one per interval. Blocks until ctx
// is cancelled. A failed check is retried on the next tick rather than
// stopping the loop.
func (m *Monitor) Run(ctx context.Context) error {
	m.checkAndNotify()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.checkAndNotify()
		}
	}
}

func (m *Monitor) checkAndNotify() {
	rec, err := m.Check()
	if err == nil && rec != nil && m.notifyFn != nil {
		m.notifyFn(*rec)
	}
}

// Check performs a single boundary check. It returns the auto-completed
// record when a rollover closed a non-empty day, or nil when nothing
// happened. On first run (no marker yet) it only writes the marker.
func (m *Monitor) Check() (*Record, error) {
	today := m.clock.Today()

	lastSeen := ""
	if raw, ok, err := m.tracker.store.Get(store.KeyLastSeenDate); err != nil {
		return nil, fmt.Errorf("reading boundary marker: %w", err)
	} else if ok {
		// A malformed marker reads as empty and is rewritten below.
		_ = json.Unmarshal(raw, &lastSeen)
	}

	if lastSeen == today {
		return nil, nil
	}

	var completed *Record
	if lastSeen != "" {
		rec, err := m.tracker.completeDayIfNonZero(lastSeen)
		if err != nil {
			return nil, fmt.Errorf("completing rolled-over day: %w", err)
		}
		completed = rec
	}

	marker, err := json.Marshal(today)
	if err != nil {
		return nil, fmt.Errorf("encoding boundary marker: %w", err)
	}
	if err := m.tracker.store.Set(store.KeyLastSeenDate, marker); err != nil {
		return nil, fmt.Errorf("writing boundary marker: %w", err)
	}
	return completed, nil
}
