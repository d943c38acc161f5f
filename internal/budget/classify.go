package budget

import "fmt"

// Verdict is the classification of a day's total against the level scheme.
// Rank is the tier ordinal (0 = best); it orders verdicts without comparing
// keys.
type Verdict struct {
	Key   LevelKey `json:"key"`
	Label string   `json:"label"`
	Emoji string   `json:"emoji"`
	Rank  int      `json:"rank"`
}

// Classify maps a total-minutes value into a level verdict. Thresholds are
// inclusive: a total exactly on a tier's resolved threshold belongs to that
// tier. A total that clears every threshold lands in the final catch-all
// tier. Pure; callable for today's running total or any historical one.
func Classify(totalMinutes int, s Settings) (Verdict, error) {
	if s.DailyLimitMinutes <= 0 {
		return Verdict{}, fmt.Errorf("classify: daily limit %d: %w", s.DailyLimitMinutes, ErrInvalidConfiguration)
	}
	if len(s.Levels) == 0 {
		return Verdict{}, fmt.Errorf("classify: empty level scheme: %w", ErrInvalidConfiguration)
	}

	for i, r := range s.Levels[:len(s.Levels)-1] {
		if totalMinutes <= r.Resolve(s.DailyLimitMinutes) {
			return verdict(r, i), nil
		}
	}
	return verdict(s.Levels[len(s.Levels)-1], len(s.Levels)-1), nil
}

func verdict(r LevelRule, rank int) Verdict {
	return Verdict{Key: r.Key, Label: r.Label, Emoji: r.Emoji, Rank: rank}
}
