// Package budget implements the daily screen-time budget core: settings,
// level classification, the in-progress day, the history of completed days,
// the star/crown reward, and analytics over history. All persistence goes
// through the store package; all time goes through the Clock interface.
package budget

import "errors"

var (
	// ErrNotFound is returned when a history record does not exist, or when
	// an undo is attempted with nothing recoverable.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfiguration is returned when settings cannot support
	// classification or reward derivation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
