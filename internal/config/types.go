package config

import "time"

// Config represents the main configuration structure
type Config struct {
	Redaction RedactionConfig `yaml:"redaction" mapstructure:"redaction"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Watch     WatchConfig     `yaml:"watch" mapstructure:"watch"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	License   LicenseConfig   `yaml:"license" mapstructure:"license"`
}

// RedactionConfig controls detection and placeholder behavior
type RedactionConfig struct {
	StablePlaceholders bool          `yaml:"stable_placeholders" mapstructure:"stable_placeholders"`
	Detectors          []string      `yaml:"detectors" mapstructure:"detectors"`
	Entropy            EntropyConfig `yaml:"entropy" mapstructure:"entropy"`
}

// EntropyConfig tunes the high-entropy token heuristic
type EntropyConfig struct {
	MinLength int      `yaml:"min_length" mapstructure:"min_length"`
	Threshold float64  `yaml:"threshold" mapstructure:"threshold"`
	Allowlist []string `yaml:"allowlist" mapstructure:"allowlist"`
}

// ReportConfig selects the summary output format
type ReportConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // text, json or yaml
}

// WatchConfig controls the experimental clipboard polling mode
type WatchConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"file" mapstructure:"file"`
}

// LicenseConfig overrides where the license file is looked up
type LicenseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultAllowlist lists common dictionary strings that are long enough and
// mixed enough to trip the entropy heuristic but carry no secret. Matching is
// case-insensitive and exact; users extend the list in config.
var DefaultAllowlist = []string{
	"abcdefghijklmnopqrstuvwxyz",
	"abcdefghijklmnopqrstuvwxyz0123456789",
	"thequickbrownfoxjumpsoverthelazydog",
	"pneumonoultramicroscopicsilicovolcanoconiosis",
	"supercalifragilisticexpialidocious",
}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	return &Config{
		Redaction: RedactionConfig{
			StablePlaceholders: false,
			Detectors:          []string{"all"},
			Entropy: EntropyConfig{
				MinLength: 32,
				Threshold: 3.5,
				Allowlist: DefaultAllowlist,
			},
		},
		Report: ReportConfig{
			Format: "text",
		},
		Watch: WatchConfig{
			Interval: 750 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
