// Package config handles loading and parsing the pricewatch configuration.
package config

import "github.com/BurntSushi/toml"

// Config holds all configuration for the pricewatch demo.
// Struct tags explicitly map TOML keys to struct fields.
type Config struct {
	Symbols    []string `toml:"symbols"`     // Symbols to simulate feeds for
	TickMillis int      `toml:"tick_millis"` // Interval between published prices
	StartPrice uint64   `toml:"start_price"` // Price each feed starts from
	MaxStep    uint64   `toml:"max_step"`    // Largest per-tick price movement
	RunSeconds int      `toml:"run_seconds"` // How long to run; 0 means until interrupted
}

// New returns a new Config with default values.
func New() *Config {
	return &Config{
		Symbols:    []string{"BTC", "ETH"},
		TickMillis: 500,
		StartPrice: 1000,
		MaxStep:    25,
		RunSeconds: 0,
	}
}

// Load reads a configuration file from the given path and populates the Config struct.
func (c *Config) Load(path string) error {
	_, err := toml.DecodeFile(path, c)
	return err
}
