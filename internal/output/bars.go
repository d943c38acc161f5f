package output

import (
	"fmt"
	"strings"
)

// MinuteBar renders a progress bar of total minutes against the daily
// limit, colored by the verdict's tier ordinal.
// Example: "████████░░░░░░░░░░░░ 45/120 min"
func MinuteBar(totalMinutes, limitMinutes, width, rank int) string {
	if width <= 0 {
		width = 20
	}
	if limitMinutes < 1 {
		limitMinutes = 1
	}

	filled := totalMinutes * width / limitMinutes
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	label := fmt.Sprintf("%d/%d min", totalMinutes, limitMinutes)

	return fmt.Sprintf("%s %s", LevelStyle(rank).Render(bar), StyleMuted.Render(label))
}

// ScaledBar renders a bar for one value of a series against a shared scale.
// Used for the weekly chart, where all seven days share one maximum.
func ScaledBar(value, scale, width int) string {
	if width <= 0 {
		width = 20
	}
	if scale < 1 {
		scale = 1
	}
	filled := value * width / scale
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Badge renders a level verdict as emoji plus styled label.
func Badge(emoji, label string, rank int) string {
	return fmt.Sprintf("%s %s", emoji, LevelStyle(rank).Bold(true).Render(label))
}

// StarLine renders the reward summary.
// Example: "⭐ 3/7 · 👑 2"
func StarLine(stars, target, crowns int) string {
	return fmt.Sprintf("⭐ %d/%d %s 👑 %d", stars, target, StyleMuted.Render("·"), crowns)
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
