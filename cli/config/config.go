package config

import (
	"fmt"
	"time"
)

// Config represents a packetcount.yaml configuration file.
// All values are optional and act as defaults for the CLI flags.
// CLI flags always override config values.
type Config struct {
	// Strict is a pointer so an explicit "strict: false" is distinguishable
	// from an omitted key.
	Strict *bool `yaml:"strict"`
	// Policy names the length policy, strict or lenient. It must agree with
	// Strict when both are set.
	Policy    string        `yaml:"policy"`
	ChunkSize int           `yaml:"chunk_size"`
	Format    string        `yaml:"format"`
	LogLevel  string        `yaml:"log_level"`
	Adapter   AdapterConfig `yaml:"adapter"`
}

// AdapterConfig holds adapter defaults from the config file.
type AdapterConfig struct {
	Type     string            `yaml:"type"`
	URL      string            `yaml:"url"`
	Channel  string            `yaml:"channel,omitempty"`
	Encoding string            `yaml:"encoding,omitempty"`
	Headers  map[string]string `yaml:"headers,omitempty"`
	Timeout  Duration          `yaml:"timeout,omitempty"`
	Retries  *int              `yaml:"retries,omitempty"`
}

// Validate checks values that YAML decoding cannot.
func (c *Config) Validate() error {
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must be > 0, got %d", c.ChunkSize)
	}
	if c.Adapter.Retries != nil && *c.Adapter.Retries < 0 {
		return fmt.Errorf("adapter.retries must be >= 0, got %d", *c.Adapter.Retries)
	}
	return nil
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
