// Package output provides styled terminal rendering helpers for screenbudget.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorLegendary marks the best tier.
	ColorLegendary = lipgloss.Color("#ab47bc")

	// ColorGood marks days comfortably under the limit.
	ColorGood = lipgloss.Color("#66bb6a")

	// ColorBorderline marks days at the edge of the limit.
	ColorBorderline = lipgloss.Color("#ffca28")

	// ColorExceeded marks days over the limit.
	ColorExceeded = lipgloss.Color("#ef5350")

	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)

	levelStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(ColorLegendary),
		lipgloss.NewStyle().Foreground(ColorGood),
		lipgloss.NewStyle().Foreground(ColorBorderline),
		lipgloss.NewStyle().Foreground(ColorExceeded),
	}
)

// LevelStyle returns the style for a tier ordinal (0 = best). Ranks past
// the palette reuse the worst style.
func LevelStyle(rank int) lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	if rank < 0 {
		rank = 0
	}
	if rank >= len(levelStyles) {
		rank = len(levelStyles) - 1
	}
	return levelStyles[rank]
}

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleMuted = plain
		StyleBold = plain
	}
}

// AutoColor disables color when stdout is not a terminal, so piped output
// stays clean without an explicit --no-color.
func AutoColor() {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		SetNoColor(true)
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}
