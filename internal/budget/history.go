package budget

import (
	"fmt"
	"sort"
)

// Record is one completed day. The level and emoji are frozen at completion
// time; later settings changes never reclassify history.
type Record struct {
	ID           int64    `json:"id"`
	Date         string   `json:"date"`
	TotalMinutes int      `json:"total_minutes"`
	Level        LevelKey `json:"level"`
	Label        string   `json:"label"`
	Emoji        string   `json:"emoji"`
}

// History is the newest-first ledger of completed days. It owns record
// identity and ordering; nothing else mutates it.
type History struct {
	records []Record
}

// NewHistory builds a ledger from stored records, restoring the
// newest-first invariant regardless of stored order.
func NewHistory(records []Record) *History {
	h := &History{records: append([]Record(nil), records...)}
	sort.Slice(h.records, func(i, j int) bool {
		return h.records[i].ID > h.records[j].ID
	})
	return h
}

// Len returns the number of completed days.
func (h *History) Len() int {
	return len(h.records)
}

// Records returns a newest-first copy of the ledger.
func (h *History) Records() []Record {
	return append([]Record(nil), h.records...)
}

// Take returns up to n of the most recent records.
func (h *History) Take(n int) []Record {
	if n > len(h.records) {
		n = len(h.records)
	}
	if n < 0 {
		n = 0
	}
	return append([]Record(nil), h.records[:n]...)
}

// OnOrAfter returns the records whose date is on or after the given
// calendar date, newest-first.
func (h *History) OnOrAfter(date string) []Record {
	var out []Record
	for _, r := range h.records {
		if r.Date >= date {
			out = append(out, r)
		}
	}
	return out
}

// OnOrBefore returns the records whose date is on or before the given
// calendar date, newest-first.
func (h *History) OnOrBefore(date string) []Record {
	var out []Record
	for _, r := range h.records {
		if r.Date <= date {
			out = append(out, r)
		}
	}
	return out
}

// Prepend adds a freshly completed record at the head. The caller is
// responsible for id freshness; ids issued by the tracker are monotonic.
func (h *History) Prepend(rec Record) {
	h.records = append([]Record{rec}, h.records...)
}

// Delete removes the record with the given id and returns it, so the caller
// can route it to an undo buffer. Returns ErrNotFound for unknown ids.
func (h *History) Delete(id int64) (Record, error) {
	for i, r := range h.records {
		if r.ID == id {
			h.records = append(h.records[:i], h.records[i+1:]...)
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("record %d: %w", id, ErrNotFound)
}

// Insert reinserts a previously deleted record at its original position in
// the id ordering, so an undo after unrelated completions keeps the
// newest-first invariant intact.
func (h *History) Insert(rec Record) {
	i := sort.Search(len(h.records), func(i int) bool {
		return h.records[i].ID < rec.ID
	})
	h.records = append(h.records, Record{})
	copy(h.records[i+1:], h.records[i:])
	h.records[i] = rec
}
