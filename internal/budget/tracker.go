package budget

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/blackwell-systems/screenbudget/internal/store"
)

// DefaultUndoWindow is how long a deleted record stays recoverable.
const DefaultUndoWindow = 10 * time.Second

// Tracker owns the live budget state: settings, the active day, and the
// history ledger. Every mutation happens under one mutex and is written
// through to the store before it returns, so a mid-day restart loses
// nothing. The boundary monitor and user commands share the same mutators.
type Tracker struct {
	mu    sync.Mutex
	store store.Store
	clock Clock

	settings Settings
	day      Day
	history  *History

	pending    *Record // last deleted record, awaiting undo
	undoTimer  *time.Timer
	undoWindow time.Duration
	lastID     int64
}

// NewTracker loads all persisted state from the store. Missing or malformed
// documents fall back to defaults or empty collections; only store I/O
// failures are fatal.
func NewTracker(st store.Store, clock Clock) (*Tracker, error) {
	t := &Tracker{
		store:      st,
		clock:      clock,
		undoWindow: DefaultUndoWindow,
	}
	if err := t.reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// reload re-reads the persisted documents. Other processes share the store
// (a long-running watch next to one-shot commands), so in-memory copies
// held across calls go stale; every mutation starts from a reload so it
// never writes back state another process has already replaced. Callers
// other than the constructor hold the mutex.
func (t *Tracker) reload() error {
	settings := DefaultSettings()
	if raw, ok, err := t.store.Get(store.KeySettings); err != nil {
		return fmt.Errorf("loading settings: %w", err)
	} else if ok {
		var loaded Settings
		if json.Unmarshal(raw, &loaded) == nil {
			loaded.Normalize()
			settings = loaded
		}
	}
	t.settings = settings

	day := Day{}
	if raw, ok, err := t.store.Get(store.KeyToday); err != nil {
		return fmt.Errorf("loading today: %w", err)
	} else if ok {
		var loaded Day
		if json.Unmarshal(raw, &loaded) == nil {
			loaded.Morning = floorZero(loaded.Morning)
			loaded.Midday = floorZero(loaded.Midday)
			loaded.Evening = floorZero(loaded.Evening)
			day = loaded
		}
	}
	t.day = day

	var records []Record
	if raw, ok, err := t.store.Get(store.KeyHistory); err != nil {
		return fmt.Errorf("loading history: %w", err)
	} else if ok {
		// Malformed history decodes to nil, which is just an empty ledger.
		_ = json.Unmarshal(raw, &records)
	}
	t.history = NewHistory(records)
	// Issued ids only ever grow, even when a reload shrinks the history.
	if t.history.Len() > 0 && t.history.records[0].ID > t.lastID {
		t.lastID = t.history.records[0].ID
	}

	return nil
}

// Settings returns a copy of the current settings.
func (t *Tracker) Settings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings.Clone()
}

// Counters returns a snapshot of the active day.
func (t *Tracker) Counters() Day {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.day
}

// Records returns a newest-first copy of the history.
func (t *Tracker) Records() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.Records()
}

// Verdict classifies the active day's running total.
func (t *Tracker) Verdict() (Verdict, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Classify(t.day.Total(), t.settings)
}

// Reward derives the current star/crown state from history.
func (t *Tracker) Reward() (Reward, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return DeriveReward(t.history.Records(), t.settings.WeeklyStarTarget)
}

// Adjust moves one counter by the given number of steps and persists the
// day. Returns the new day total.
func (t *Tracker) Adjust(slot Slot, deltaSteps int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.reload(); err != nil {
		return 0, err
	}
	total, err := t.day.Adjust(slot, deltaSteps, t.settings.CounterStepMinutes)
	if err != nil {
		return 0, err
	}
	if err := t.saveDay(); err != nil {
		return 0, err
	}
	return total, nil
}

// CompleteDay closes the active day into an immutable history record dated
// today, resets the counters, and persists everything.
func (t *Tracker) CompleteDay() (Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.reload(); err != nil {
		return Record{}, err
	}
	return t.completeDay(t.clock.Today())
}

// completeDayIfNonZero is the boundary monitor's entry point: it closes the
// day only when there is something to record, dated with the day that just
// ended. Checking and completing under one lock prevents a racing manual
// completion from producing a duplicate zero-minute record.
func (t *Tracker) completeDayIfNonZero(date string) (*Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.reload(); err != nil {
		return nil, err
	}
	if t.day.Total() == 0 {
		return nil, nil
	}
	rec, err := t.completeDay(date)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// completeDay must be called with the mutex held.
func (t *Tracker) completeDay(date string) (Record, error) {
	v, err := Classify(t.day.Total(), t.settings)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:           t.nextID(),
		Date:         date,
		TotalMinutes: t.day.Total(),
		Level:        v.Key,
		Label:        v.Label,
		Emoji:        v.Emoji,
	}
	t.history.Prepend(rec)
	t.day.Reset()

	if err := t.saveDay(); err != nil {
		return Record{}, err
	}
	if err := t.saveHistory(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// DeleteRecord removes a record by id and arms the undo window. A second
// delete before the window expires discards the earlier undo opportunity.
func (t *Tracker) DeleteRecord(id int64) (Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.reload(); err != nil {
		return Record{}, err
	}
	rec, err := t.history.Delete(id)
	if err != nil {
		return Record{}, err
	}
	if err := t.saveHistory(); err != nil {
		return Record{}, err
	}

	if t.undoTimer != nil {
		t.undoTimer.Stop()
	}
	pending := rec
	t.pending = &pending
	t.undoTimer = time.AfterFunc(t.undoWindow, func() { t.expireUndo(pending.ID) })

	return rec, nil
}

// Undo reinserts the last deleted record if its window has not expired.
func (t *Tracker) Undo() (Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return Record{}, fmt.Errorf("nothing to undo: %w", ErrNotFound)
	}
	if err := t.reload(); err != nil {
		return Record{}, err
	}
	rec := *t.pending
	t.pending = nil
	if t.undoTimer != nil {
		t.undoTimer.Stop()
		t.undoTimer = nil
	}

	t.history.Insert(rec)
	if err := t.saveHistory(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (t *Tracker) expireUndo(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil && t.pending.ID == id {
		t.pending = nil
		t.undoTimer = nil
	}
}

// UpdateSettings applies an edit to a copy of the settings, validates the
// result, and persists it. Invalid settings are refused before they are
// stored, never coerced after the fact.
func (t *Tracker) UpdateSettings(apply func(*Settings)) (Settings, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.reload(); err != nil {
		return Settings{}, err
	}
	next := t.settings.Clone()
	apply(&next)
	if err := next.Validate(); err != nil {
		return Settings{}, err
	}
	t.settings = next
	if err := t.saveSettings(); err != nil {
		return Settings{}, err
	}
	return next.Clone(), nil
}

// nextID issues a creation-time id, bumped past the last issued id when the
// clock would repeat one (two completions in the same millisecond).
func (t *Tracker) nextID() int64 {
	id := t.clock.Now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	return id
}

func (t *Tracker) saveDay() error {
	raw, err := json.Marshal(t.day)
	if err != nil {
		return fmt.Errorf("encoding today: %w", err)
	}
	if err := t.store.Set(store.KeyToday, raw); err != nil {
		return fmt.Errorf("saving today: %w", err)
	}
	return nil
}

func (t *Tracker) saveSettings() error {
	raw, err := json.Marshal(t.settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := t.store.Set(store.KeySettings, raw); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// saveHistory writes the ledger and refreshes the derived reward snapshot.
// The snapshot is a projection for external readers of the store; the
// ledger stays the only source of truth.
func (t *Tracker) saveHistory() error {
	raw, err := json.Marshal(t.history.Records())
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := t.store.Set(store.KeyHistory, raw); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	if reward, err := DeriveReward(t.history.records, t.settings.WeeklyStarTarget); err == nil {
		if snap, err := json.Marshal(reward); err == nil {
			if err := t.store.Set(store.KeyReward, snap); err != nil {
				return fmt.Errorf("saving reward snapshot: %w", err)
			}
		}
	}
	return nil
}
