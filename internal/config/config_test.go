package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	if err := validateConfig(GetDefaults()); err != nil {
		t.Fatalf("Defaults do not validate: %v", err)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
redaction:
  stable_placeholders: true
  detectors: ["email", "token"]
  entropy:
    min_length: 24
report:
  format: json
watch:
  interval: 250ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Redaction.StablePlaceholders {
		t.Error("stable_placeholders not applied")
	}
	if len(cfg.Redaction.Detectors) != 2 {
		t.Errorf("Unexpected detectors: %v", cfg.Redaction.Detectors)
	}
	if cfg.Redaction.Entropy.MinLength != 24 {
		t.Errorf("min_length not applied: %d", cfg.Redaction.Entropy.MinLength)
	}
	if cfg.Report.Format != "json" {
		t.Errorf("format not applied: %s", cfg.Report.Format)
	}
	if cfg.Watch.Interval != 250*time.Millisecond {
		t.Errorf("interval not applied: %s", cfg.Watch.Interval)
	}

	// Untouched keys keep their defaults.
	if cfg.Redaction.Entropy.Threshold != 3.5 {
		t.Errorf("threshold default lost: %f", cfg.Redaction.Entropy.Threshold)
	}
	if len(cfg.Redaction.Entropy.Allowlist) == 0 {
		t.Error("allowlist default lost")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level default lost: %s", cfg.Logging.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected error for missing explicit config file")
	}
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"BadReportFormat", func(c *Config) { c.Report.Format = "xml" }, true},
		{"BadLogLevel", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"BadLogFormat", func(c *Config) { c.Logging.Format = "pretty" }, true},
		{"IntervalTooShort", func(c *Config) { c.Watch.Interval = 10 * time.Millisecond }, true},
		{"MinLengthTooSmall", func(c *Config) { c.Redaction.Entropy.MinLength = 4 }, true},
		{"ThresholdOutOfRange", func(c *Config) { c.Redaction.Entropy.Threshold = 9 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := GetDefaults()
			tc.mutate(cfg)
			err := validateConfig(cfg)
			if tc.wantErr && err == nil {
				t.Error("Expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}
