package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/pithecene-io/packetcount/adapter"
	"github.com/pithecene-io/packetcount/adapter/redis"
	"github.com/pithecene-io/packetcount/adapter/webhook"
	"github.com/pithecene-io/packetcount/cli/config"
	"github.com/pithecene-io/packetcount/log"
	"github.com/pithecene-io/packetcount/policy"
)

// decodeSettings holds resolved decode configuration.
// Precedence: explicit flag, then config file, then flag default.
type decodeSettings struct {
	strict    bool
	strictSet bool
	chunkSize int
	logLevel  zapcore.Level
	format    string
	adapter   *adapterConfig
}

// adapterConfig holds parsed adapter configuration.
type adapterConfig struct {
	adapterType string
	url         string
	channel     string
	encoding    string
	headers     map[string]string
	timeout     time.Duration
	retries     int
}

// resolveSettings loads the config file and merges it under the CLI flags.
func resolveSettings(c *cli.Context) (*decodeSettings, error) {
	cfg, err := config.LoadOptional(c.String("config"))
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	s := &decodeSettings{
		chunkSize: c.Int("chunk-size"),
		format:    c.String("format"),
	}
	if err := s.resolvePolicy(c, cfg); err != nil {
		return nil, err
	}
	if !c.IsSet("chunk-size") && cfg.ChunkSize > 0 {
		s.chunkSize = cfg.ChunkSize
	}
	if s.chunkSize <= 0 {
		return nil, fmt.Errorf("--chunk-size must be > 0, got %d", s.chunkSize)
	}
	if !c.IsSet("format") && cfg.Format != "" {
		s.format = cfg.Format
	}

	levelName := c.String("log-level")
	if !c.IsSet("log-level") && cfg.LogLevel != "" {
		levelName = cfg.LogLevel
	}
	if s.logLevel, err = log.ParseLevel(levelName); err != nil {
		return nil, err
	}

	adapterType := c.String("adapter")
	if adapterType == "" {
		adapterType = cfg.Adapter.Type
	}
	if adapterType != "" {
		if s.adapter, err = parseAdapterConfigWithPrecedence(c, cfg, adapterType); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// resolvePolicy settles strict mode from --strict, --policy and the config
// file's strict and policy keys. The two spellings must agree at each level.
func (s *decodeSettings) resolvePolicy(c *cli.Context, cfg *config.Config) error {
	flagStrict, err := strictFromPolicy(c.String("policy"), c.IsSet("policy"), "--policy")
	if err != nil {
		return err
	}
	if c.IsSet("strict") {
		if flagStrict != nil && *flagStrict != c.Bool("strict") {
			return fmt.Errorf("--strict=%t conflicts with --policy %s", c.Bool("strict"), c.String("policy"))
		}
		s.strict, s.strictSet = c.Bool("strict"), true
		return nil
	}
	if flagStrict != nil {
		s.strict, s.strictSet = *flagStrict, true
		return nil
	}

	fileStrict, err := strictFromPolicy(cfg.Policy, cfg.Policy != "", "policy")
	if err != nil {
		return err
	}
	switch {
	case cfg.Strict != nil && fileStrict != nil && *cfg.Strict != *fileStrict:
		return fmt.Errorf("config: strict: %t conflicts with policy: %s", *cfg.Strict, cfg.Policy)
	case cfg.Strict != nil:
		s.strict, s.strictSet = *cfg.Strict, true
	case fileStrict != nil:
		s.strict, s.strictSet = *fileStrict, true
	}
	return nil
}

// strictFromPolicy maps a policy name to strict mode. It returns nil when the
// name was not given.
func strictFromPolicy(name string, given bool, source string) (*bool, error) {
	if !given {
		return nil, nil
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%s must be %s or %s", source, policy.NameStrict, policy.NameLenient)
	}
	pol, err := policy.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	strict := pol.Name() == policy.NameStrict
	return &strict, nil
}

// parseAdapterConfigWithPrecedence resolves adapter settings for adapterType.
// CLI flags override config values; cfg may be nil.
func parseAdapterConfigWithPrecedence(c *cli.Context, cfg *config.Config, adapterType string) (*adapterConfig, error) {
	var fromFile config.AdapterConfig
	if cfg != nil {
		fromFile = cfg.Adapter
	}

	ac := &adapterConfig{
		adapterType: adapterType,
		url:         pick(c, "adapter-url", fromFile.URL),
		channel:     pick(c, "adapter-channel", fromFile.Channel),
		encoding:    pick(c, "adapter-encoding", fromFile.Encoding),
		timeout:     c.Duration("adapter-timeout"),
		retries:     c.Int("adapter-retries"),
		headers:     map[string]string{},
	}
	if !c.IsSet("adapter-timeout") && fromFile.Timeout.Duration > 0 {
		ac.timeout = fromFile.Timeout.Duration
	}
	if !c.IsSet("adapter-retries") && fromFile.Retries != nil {
		ac.retries = *fromFile.Retries
	}

	for k, v := range fromFile.Headers {
		ac.headers[k] = v
	}
	for _, h := range c.StringSlice("adapter-header") {
		k, v, ok := strings.Cut(h, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --adapter-header %q: expected key=value", h)
		}
		ac.headers[k] = v
	}

	switch adapterType {
	case "webhook", "redis":
		if ac.url == "" {
			return nil, fmt.Errorf("--adapter-url is required when --adapter=%s", adapterType)
		}
	default:
		return nil, fmt.Errorf("unknown adapter type %q (must be webhook or redis)", adapterType)
	}
	if ac.retries < 0 {
		return nil, fmt.Errorf("--adapter-retries must be >= 0, got %d", ac.retries)
	}

	return ac, nil
}

// pick returns the flag value when set on the command line, else fallback.
func pick(c *cli.Context, name, fallback string) string {
	if c.IsSet(name) || fallback == "" {
		return c.String(name)
	}
	return fallback
}

// buildAdapter creates the adapter described by ac. Returns nil for a nil config.
func buildAdapter(ac *adapterConfig) (adapter.Adapter, error) {
	if ac == nil {
		return nil, nil
	}
	switch ac.adapterType {
	case "webhook":
		a, err := webhook.New(webhook.Config{
			URL:     ac.url,
			Headers: ac.headers,
			Timeout: ac.timeout,
			Retries: ac.retries,
		})
		if err != nil {
			return nil, err
		}
		return a, nil
	case "redis":
		a, err := redis.New(redis.Config{
			URL:      ac.url,
			Channel:  ac.channel,
			Encoding: ac.encoding,
			Timeout:  ac.timeout,
			Retries:  ac.retries,
		})
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown adapter type %q", ac.adapterType)
	}
}
