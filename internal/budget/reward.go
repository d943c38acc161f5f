package budget

import "fmt"

// Reward is the gamified outcome derived from history: stars accumulate per
// legendary day and wrap into a crown at the weekly star target.
type Reward struct {
	Stars  int `json:"stars"`
	Crowns int `json:"crowns"`
}

// DeriveReward recomputes the reward purely from the set of legendary days
// in the given records. Because nothing is accumulated incrementally,
// completion, deletion, and undo can never desynchronize the counters: any
// mutation followed by its inverse yields the original reward.
//
// Records are scanned oldest-first. The modulus derivation itself is
// order-independent, but any future streak rule must see days in
// chronological order, so the scan direction is fixed here.
func DeriveReward(records []Record, weeklyStarTarget int) (Reward, error) {
	if weeklyStarTarget <= 0 {
		return Reward{}, fmt.Errorf("weekly star target %d: %w", weeklyStarTarget, ErrInvalidConfiguration)
	}

	legendary := 0
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Level == LevelLegendary {
			legendary++
		}
	}

	return Reward{
		Stars:  legendary % weeklyStarTarget,
		Crowns: legendary / weeklyStarTarget,
	}, nil
}
