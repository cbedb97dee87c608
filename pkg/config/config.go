package config

import "time"

// Config holds defaults that apply when the matching flag is not given.
type Config interface {
	Interval() time.Duration
	Verbose() bool
	LogLevel() string
	// BatteryID returns the default battery id and whether one is set.
	BatteryID() (int, bool)
	NoColor() bool

	// Load reads the configuration from the source.
	Load() error
}
