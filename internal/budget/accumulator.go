package budget

import "fmt"

// Slot names one of the three partial counters of the active day.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotMidday  Slot = "midday"
	SlotEvening Slot = "evening"
)

// ParseSlot converts user input into a Slot.
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotMorning, SlotMidday, SlotEvening:
		return Slot(s), nil
	}
	return "", fmt.Errorf("unknown slot %q (want morning, midday, or evening)", s)
}

// Day holds the three in-progress counters for the active day. The total is
// always derived, never stored.
type Day struct {
	Morning int `json:"morning"`
	Midday  int `json:"midday"`
	Evening int `json:"evening"`
}

// Adjust moves one slot by deltaSteps counter steps, flooring the slot at
// zero. There is no upper clamp. Returns the new day total.
func (d *Day) Adjust(slot Slot, deltaSteps, stepMinutes int) (int, error) {
	delta := deltaSteps * stepMinutes
	switch slot {
	case SlotMorning:
		d.Morning = floorZero(d.Morning + delta)
	case SlotMidday:
		d.Midday = floorZero(d.Midday + delta)
	case SlotEvening:
		d.Evening = floorZero(d.Evening + delta)
	default:
		return 0, fmt.Errorf("unknown slot %q", slot)
	}
	return d.Total(), nil
}

// Total returns the sum of the three counters.
func (d Day) Total() int {
	return d.Morning + d.Midday + d.Evening
}

// Reset zeroes all three counters. Called exactly once per day completion.
func (d *Day) Reset() {
	d.Morning, d.Midday, d.Evening = 0, 0, 0
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
