package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id int64, date string, total int, level LevelKey) Record {
	return Record{ID: id, Date: date, TotalMinutes: total, Level: level}
}

func TestNewHistory_RestoresNewestFirstOrder(t *testing.T) {
	h := NewHistory([]Record{
		rec(1, "2026-08-01", 60, LevelGood),
		rec(3, "2026-08-03", 90, LevelBorderline),
		rec(2, "2026-08-02", 30, LevelLegendary),
	})

	records := h.Records()
	require.Len(t, records, 3)
	assert.Equal(t, int64(3), records[0].ID)
	assert.Equal(t, int64(2), records[1].ID)
	assert.Equal(t, int64(1), records[2].ID)
}

func TestHistory_DeleteReturnsRecord(t *testing.T) {
	h := NewHistory([]Record{
		rec(1, "2026-08-01", 60, LevelGood),
		rec(2, "2026-08-02", 30, LevelLegendary),
	})

	removed, err := h.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed.ID)
	assert.Equal(t, 60, removed.TotalMinutes)
	assert.Equal(t, 1, h.Len())
}

func TestHistory_DeleteNotFound(t *testing.T) {
	h := NewHistory(nil)
	_, err := h.Delete(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHistory_InsertRestoresOriginalPosition(t *testing.T) {
	h := NewHistory([]Record{
		rec(1, "2026-08-01", 60, LevelGood),
		rec(2, "2026-08-02", 30, LevelLegendary),
		rec(3, "2026-08-03", 90, LevelBorderline),
	})

	removed, err := h.Delete(2)
	require.NoError(t, err)

	// A completion lands between delete and undo.
	h.Prepend(rec(4, "2026-08-04", 20, LevelLegendary))

	h.Insert(removed)

	var ids []int64
	for _, r := range h.Records() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{4, 3, 2, 1}, ids)
}

func TestHistory_InsertAtHeadAndTail(t *testing.T) {
	h := NewHistory([]Record{rec(5, "2026-08-05", 10, LevelLegendary)})

	h.Insert(rec(9, "2026-08-09", 10, LevelLegendary))
	h.Insert(rec(1, "2026-08-01", 10, LevelLegendary))

	var ids []int64
	for _, r := range h.Records() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{9, 5, 1}, ids)
}

func TestHistory_Take(t *testing.T) {
	h := NewHistory([]Record{
		rec(1, "2026-08-01", 60, LevelGood),
		rec(2, "2026-08-02", 30, LevelLegendary),
		rec(3, "2026-08-03", 90, LevelBorderline),
	})

	top := h.Take(2)
	require.Len(t, top, 2)
	assert.Equal(t, int64(3), top[0].ID)
	assert.Equal(t, int64(2), top[1].ID)

	assert.Len(t, h.Take(10), 3)
	assert.Empty(t, h.Take(0))
}

func TestHistory_OnOrAfter(t *testing.T) {
	h := NewHistory([]Record{
		rec(1, "2026-08-01", 60, LevelGood),
		rec(2, "2026-08-15", 30, LevelLegendary),
		rec(3, "2026-08-20", 90, LevelBorderline),
	})

	got := h.OnOrAfter("2026-08-15")
	require.Len(t, got, 2)
	assert.Equal(t, "2026-08-20", got[0].Date)
	assert.Equal(t, "2026-08-15", got[1].Date)

	assert.Empty(t, h.OnOrAfter("2026-09-01"))
}

func TestHistory_OnOrBefore(t *testing.T) {
	h := NewHistory([]Record{
		rec(1, "2026-08-01", 60, LevelGood),
		rec(2, "2026-08-15", 30, LevelLegendary),
		rec(3, "2026-08-20", 90, LevelBorderline),
	})

	got := h.OnOrBefore("2026-08-15")
	require.Len(t, got, 2)
	assert.Equal(t, "2026-08-15", got[0].Date)
	assert.Equal(t, "2026-08-01", got[1].Date)

	assert.Empty(t, h.OnOrBefore("2026-07-31"))
}

func TestHistory_RecordsReturnsCopy(t *testing.T) {
	h := NewHistory([]Record{rec(1, "2026-08-01", 60, LevelGood)})

	records := h.Records()
	records[0].TotalMinutes = 999

	assert.Equal(t, 60, h.Records()[0].TotalMinutes)
}
