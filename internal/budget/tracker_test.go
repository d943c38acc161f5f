package budget

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/blackwell-systems/screenbudget/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a controllable Clock for tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock(date string) *fakeClock {
	now, err := time.Parse(DateFormat, date)
	if err != nil {
		panic(err)
	}
	return &fakeClock{now: now.Add(12 * time.Hour)}
}

func (f *fakeClock) Now() time.Time        { return f.now }
func (f *fakeClock) Today() string         { return f.now.Format(DateFormat) }
func (f *fakeClock) Weekday() time.Weekday { return f.now.Weekday() }

func (f *fakeClock) advanceDays(n int) { f.now = f.now.AddDate(0, 0, n) }

func newTestTracker(t *testing.T) (*Tracker, *store.Memory, *fakeClock) {
	t.Helper()
	st := store.NewMemory()
	clock := newFakeClock("2026-08-29")
	tracker, err := NewTracker(st, clock)
	require.NoError(t, err)
	return tracker, st, clock
}

func TestTracker_StartsWithDefaults(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	settings := tracker.Settings()
	assert.Equal(t, 120, settings.DailyLimitMinutes)
	assert.Equal(t, 5, settings.CounterStepMinutes)
	assert.Equal(t, 7, settings.WeeklyStarTarget)
	assert.Equal(t, Day{}, tracker.Counters())
	assert.Empty(t, tracker.Records())
}

func TestTracker_AdjustWritesThrough(t *testing.T) {
	tracker, st, clock := newTestTracker(t)

	total, err := tracker.Adjust(SlotMorning, 3) // 3 steps of 5 min
	require.NoError(t, err)
	assert.Equal(t, 15, total)

	// A fresh tracker over the same store sees the partial day.
	reloaded, err := NewTracker(st, clock)
	require.NoError(t, err)
	assert.Equal(t, Day{Morning: 15}, reloaded.Counters())
}

func TestTracker_MutationsStartFromLatestStoredState(t *testing.T) {
	st := store.NewMemory()
	clock := newFakeClock("2026-08-29")
	a, err := NewTracker(st, clock)
	require.NoError(t, err)
	b, err := NewTracker(st, clock)
	require.NoError(t, err)

	// Two live trackers over one store, as when a watch process runs
	// alongside one-shot commands. Writes from either must be visible
	// to the other's next mutation.
	_, err = a.Adjust(SlotMorning, 3) // 15 min
	require.NoError(t, err)
	total, err := b.Adjust(SlotEvening, 2) // 10 min on top of a's 15
	require.NoError(t, err)
	assert.Equal(t, 25, total)

	rec, err := a.CompleteDay()
	require.NoError(t, err)
	assert.Equal(t, 25, rec.TotalMinutes)

	// a's completion emptied the day; b must not resurrect it.
	_, err = b.CompleteDay()
	require.NoError(t, err)
	records := b.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].TotalMinutes)
	assert.Equal(t, 25, records[1].TotalMinutes)
}

func TestTracker_IDsStayMonotonicAcrossSharedStore(t *testing.T) {
	st := store.NewMemory()
	clock := newFakeClock("2026-08-29")
	a, err := NewTracker(st, clock)
	require.NoError(t, err)
	b, err := NewTracker(st, clock)
	require.NoError(t, err)

	// The clock never advances, so every id after the first is a bump
	// past the newest stored id, whichever tracker issued it.
	r1, err := a.CompleteDay()
	require.NoError(t, err)
	r2, err := b.CompleteDay()
	require.NoError(t, err)
	r3, err := a.CompleteDay()
	require.NoError(t, err)

	assert.Greater(t, r2.ID, r1.ID)
	assert.Greater(t, r3.ID, r2.ID)
}

func TestTracker_CompleteDay(t *testing.T) {
	tracker, st, clock := newTestTracker(t)

	_, err := tracker.Adjust(SlotMorning, 6) // 30 min
	require.NoError(t, err)
	_, err = tracker.Adjust(SlotEvening, 3) // 15 min
	require.NoError(t, err)

	rec, err := tracker.CompleteDay()
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", rec.Date)
	assert.Equal(t, 45, rec.TotalMinutes)
	assert.Equal(t, LevelLegendary, rec.Level)
	assert.Equal(t, "🤩", rec.Emoji)

	assert.Equal(t, Day{}, tracker.Counters(), "counters reset on completion")

	reloaded, err := NewTracker(st, clock)
	require.NoError(t, err)
	require.Len(t, reloaded.Records(), 1)
	assert.Equal(t, rec, reloaded.Records()[0])
}

func TestTracker_CompleteDeleteInverse(t *testing.T) {
	tracker, _, clock := newTestTracker(t)

	// Three legendary days.
	for i := 0; i < 3; i++ {
		_, err := tracker.Adjust(SlotMorning, 6)
		require.NoError(t, err)
		_, err = tracker.CompleteDay()
		require.NoError(t, err)
		clock.advanceDays(1)
	}

	before, err := tracker.Reward()
	require.NoError(t, err)
	assert.Equal(t, Reward{Stars: 3, Crowns: 0}, before)

	_, err = tracker.Adjust(SlotMidday, 4)
	require.NoError(t, err)
	rec, err := tracker.CompleteDay()
	require.NoError(t, err)

	_, err = tracker.DeleteRecord(rec.ID)
	require.NoError(t, err)

	after, err := tracker.Reward()
	require.NoError(t, err)
	assert.Equal(t, before, after, "delete must invert complete exactly")
}

func TestTracker_SeventhLegendaryWrapsAndUnwraps(t *testing.T) {
	tracker, _, clock := newTestTracker(t)

	var last Record
	for i := 0; i < 7; i++ {
		_, err := tracker.Adjust(SlotMorning, 6)
		require.NoError(t, err)
		r, err := tracker.CompleteDay()
		require.NoError(t, err)
		last = r
		clock.advanceDays(1)
	}

	reward, err := tracker.Reward()
	require.NoError(t, err)
	assert.Equal(t, Reward{Stars: 0, Crowns: 1}, reward)

	_, err = tracker.DeleteRecord(last.ID)
	require.NoError(t, err)

	reward, err = tracker.Reward()
	require.NoError(t, err)
	assert.Equal(t, Reward{Stars: 6, Crowns: 0}, reward)
}

func TestTracker_UndoRoundTrip(t *testing.T) {
	tracker, _, clock := newTestTracker(t)

	for i := 0; i < 3; i++ {
		_, err := tracker.Adjust(SlotMorning, 6)
		require.NoError(t, err)
		_, err = tracker.CompleteDay()
		require.NoError(t, err)
		clock.advanceDays(1)
	}

	original := tracker.Records()
	rewardBefore, err := tracker.Reward()
	require.NoError(t, err)

	deleted, err := tracker.DeleteRecord(original[1].ID)
	require.NoError(t, err)
	assert.Equal(t, original[1], deleted)

	restored, err := tracker.Undo()
	require.NoError(t, err)
	assert.Equal(t, deleted, restored)

	assert.Equal(t, original, tracker.Records(), "undo restores order exactly")
	rewardAfter, err := tracker.Reward()
	require.NoError(t, err)
	assert.Equal(t, rewardBefore, rewardAfter)
}

func TestTracker_UndoWithNothingPending(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	_, err := tracker.Undo()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTracker_SecondDeleteDiscardsFirstUndo(t *testing.T) {
	tracker, _, clock := newTestTracker(t)

	for i := 0; i < 2; i++ {
		_, err := tracker.Adjust(SlotMorning, 6)
		require.NoError(t, err)
		_, err = tracker.CompleteDay()
		require.NoError(t, err)
		clock.advanceDays(1)
	}
	records := tracker.Records()

	_, err := tracker.DeleteRecord(records[0].ID)
	require.NoError(t, err)
	_, err = tracker.DeleteRecord(records[1].ID)
	require.NoError(t, err)

	// Only the second delete is recoverable.
	restored, err := tracker.Undo()
	require.NoError(t, err)
	assert.Equal(t, records[1].ID, restored.ID)

	_, err = tracker.Undo()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTracker_UndoWindowExpires(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	tracker.undoWindow = 10 * time.Millisecond

	_, err := tracker.Adjust(SlotMorning, 6)
	require.NoError(t, err)
	rec, err := tracker.CompleteDay()
	require.NoError(t, err)

	_, err = tracker.DeleteRecord(rec.ID)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = tracker.Undo()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTracker_DeleteNotFound(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	_, err := tracker.DeleteRecord(12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTracker_IDsUniqueWithinSameMillisecond(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	// The clock never advances, so ids must be bumped artificially.
	r1, err := tracker.CompleteDay()
	require.NoError(t, err)
	r2, err := tracker.CompleteDay()
	require.NoError(t, err)

	assert.Greater(t, r2.ID, r1.ID)
}

func TestTracker_UpdateSettingsRefusesInvalid(t *testing.T) {
	tracker, st, _ := newTestTracker(t)

	_, err := tracker.UpdateSettings(func(s *Settings) { s.DailyLimitMinutes = 0 })
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	assert.Equal(t, 120, tracker.Settings().DailyLimitMinutes, "rejected edit must not apply")
	_, ok, err := st.Get(store.KeySettings)
	require.NoError(t, err)
	assert.False(t, ok, "rejected edit must not persist")
}

func TestTracker_UpdateSettingsPersists(t *testing.T) {
	tracker, st, clock := newTestTracker(t)

	updated, err := tracker.UpdateSettings(func(s *Settings) {
		s.DisplayName = "Maya"
		s.DailyLimitMinutes = 90
	})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.DailyLimitMinutes)

	reloaded, err := NewTracker(st, clock)
	require.NoError(t, err)
	assert.Equal(t, "Maya", reloaded.Settings().DisplayName)
	assert.Equal(t, 90, reloaded.Settings().DailyLimitMinutes)
}

func TestTracker_RewardSnapshotWrittenOnMutation(t *testing.T) {
	tracker, st, _ := newTestTracker(t)

	_, err := tracker.Adjust(SlotMorning, 6)
	require.NoError(t, err)
	_, err = tracker.CompleteDay()
	require.NoError(t, err)

	raw, ok, err := st.Get(store.KeyReward)
	require.NoError(t, err)
	require.True(t, ok)

	var snap Reward
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, Reward{Stars: 1, Crowns: 0}, snap)
}

func TestTracker_CorruptDocumentsFallBackToDefaults(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.Set(store.KeySettings, json.RawMessage(`{not json`)))
	require.NoError(t, st.Set(store.KeyToday, json.RawMessage(`"nope"`)))
	require.NoError(t, st.Set(store.KeyHistory, json.RawMessage(`{"oops":1}`)))

	tracker, err := NewTracker(st, newFakeClock("2026-08-29"))
	require.NoError(t, err)

	assert.Equal(t, 120, tracker.Settings().DailyLimitMinutes)
	assert.Equal(t, Day{}, tracker.Counters())
	assert.Empty(t, tracker.Records())
}

func TestTracker_NegativeCountersInStoreAreFloored(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.Set(store.KeyToday, json.RawMessage(`{"morning":-10,"midday":20,"evening":0}`)))

	tracker, err := NewTracker(st, newFakeClock("2026-08-29"))
	require.NoError(t, err)
	assert.Equal(t, Day{Morning: 0, Midday: 20}, tracker.Counters())
}
