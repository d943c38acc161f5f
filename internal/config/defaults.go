// Package config provides configuration loading and defaults for screenbudget.
package config

// DefaultConfigDir is the default location for screenbudget configuration.
const DefaultConfigDir = "~/.config/screenbudget"

// DefaultDataDir is the default location for the screenbudget database.
const DefaultDataDir = "~/.local/share/screenbudget"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "screenbudget.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultMonitorInterval is how often the day-boundary monitor checks
// whether the calendar date has rolled over.
const DefaultMonitorInterval = "1m"

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
