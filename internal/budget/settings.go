package budget

import (
	"fmt"
	"math"
)

// LevelKey identifies one tier of the level scheme, best to worst.
type LevelKey string

const (
	LevelLegendary  LevelKey = "legendary"
	LevelGood       LevelKey = "good"
	LevelBorderline LevelKey = "borderline"
	LevelExceeded   LevelKey = "exceeded"
)

// LevelRule is one tier of the level scheme. A rule's threshold is either
// absolute (Minutes) or relative to the daily limit (Ratio); when Ratio is
// set it wins. The final rule in a scheme is the unbounded catch-all and
// needs no threshold.
type LevelRule struct {
	Key     LevelKey `json:"key"`
	Minutes int      `json:"minutes,omitempty"`
	Ratio   float64  `json:"ratio,omitempty"`
	Label   string   `json:"label"`
	Emoji   string   `json:"emoji"`
}

// Resolve returns the rule's threshold in absolute minutes for the given
// daily limit. Ratio thresholds are rounded to the nearest minute.
func (r LevelRule) Resolve(dailyLimitMinutes int) int {
	if r.Ratio > 0 {
		return int(math.Round(r.Ratio * float64(dailyLimitMinutes)))
	}
	return r.Minutes
}

// Settings holds the configured budget: the child's name, the daily limit,
// the counter step, the weekly star target, and the level scheme. Persisted
// as a singleton document; never deleted.
type Settings struct {
	DisplayName        string      `json:"display_name"`
	DailyLimitMinutes  int         `json:"daily_limit_minutes"`
	CounterStepMinutes int         `json:"counter_step_minutes"`
	WeeklyStarTarget   int         `json:"weekly_star_target"`
	Levels             []LevelRule `json:"levels"`
}

// DefaultSettings returns the first-run settings: a two-hour limit,
// five-minute steps, seven stars to a crown, and the standard four-tier
// scheme at 65%, 85%, and 100% of the limit.
func DefaultSettings() Settings {
	return Settings{
		DisplayName:        "Kiddo",
		DailyLimitMinutes:  120,
		CounterStepMinutes: 5,
		WeeklyStarTarget:   7,
		Levels: []LevelRule{
			{Key: LevelLegendary, Ratio: 0.65, Label: "Legendary", Emoji: "🤩"},
			{Key: LevelGood, Ratio: 0.85, Label: "Good", Emoji: "🙂"},
			{Key: LevelBorderline, Ratio: 1.0, Label: "Borderline", Emoji: "😐"},
			{Key: LevelExceeded, Label: "Exceeded", Emoji: "😵"},
		},
	}
}

// Clone returns a deep copy so callers can mutate freely.
func (s Settings) Clone() Settings {
	out := s
	out.Levels = make([]LevelRule, len(s.Levels))
	copy(out.Levels, s.Levels)
	return out
}

// Normalize coerces out-of-range values back to the defaults. Loading a
// partially corrupt settings document must never produce a state the
// classifier cannot handle.
func (s *Settings) Normalize() {
	def := DefaultSettings()
	if s.DailyLimitMinutes <= 0 {
		s.DailyLimitMinutes = def.DailyLimitMinutes
	}
	if s.CounterStepMinutes <= 0 {
		s.CounterStepMinutes = def.CounterStepMinutes
	}
	if s.WeeklyStarTarget <= 0 {
		s.WeeklyStarTarget = def.WeeklyStarTarget
	}
	if s.DisplayName == "" {
		s.DisplayName = def.DisplayName
	}
	if len(s.Levels) == 0 {
		s.Levels = def.Levels
	}
}

// Validate reports whether the settings may be persisted. Unlike Normalize
// it rejects rather than coerces, so an explicit settings edit cannot
// silently change the user's input.
func (s Settings) Validate() error {
	if s.DailyLimitMinutes <= 0 {
		return fmt.Errorf("daily limit must be positive, got %d: %w", s.DailyLimitMinutes, ErrInvalidConfiguration)
	}
	if s.CounterStepMinutes <= 0 {
		return fmt.Errorf("counter step must be positive, got %d: %w", s.CounterStepMinutes, ErrInvalidConfiguration)
	}
	if s.WeeklyStarTarget <= 0 {
		return fmt.Errorf("weekly star target must be positive, got %d: %w", s.WeeklyStarTarget, ErrInvalidConfiguration)
	}
	if len(s.Levels) == 0 {
		return fmt.Errorf("level scheme is empty: %w", ErrInvalidConfiguration)
	}
	// All rules before the catch-all must resolve to strictly ascending
	// thresholds, or some totals would be unreachable.
	prev := -1
	for _, r := range s.Levels[:len(s.Levels)-1] {
		resolved := r.Resolve(s.DailyLimitMinutes)
		if resolved <= prev {
			return fmt.Errorf("level %q threshold %d is not above the previous tier: %w", r.Key, resolved, ErrInvalidConfiguration)
		}
		prev = resolved
	}
	return nil
}
