// Package config loads relay's layered configuration: embedded
// defaults, then an optional user config file (TOML or YAML) from the
// XDG config dir, then RELAY_* environment variables, each layer
// overriding the previous one.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/relay/pkg/errors"
	"github.com/arthur-debert/relay/pkg/events"
	"github.com/arthur-debert/relay/pkg/paths"
)

// Delivery policy names accepted in [delivery] policy
const (
	PolicyContinue = "continue"
	PolicyFailFast = "failfast"
)

// Config is the unmarshalled configuration
type Config struct {
	Log      LogConfig      `koanf:"log" toml:"log"`
	Delivery DeliveryConfig `koanf:"delivery" toml:"delivery"`
	Bench    BenchConfig    `koanf:"bench" toml:"bench"`
	Demo     DemoConfig     `koanf:"demo" toml:"demo"`
}

// LogConfig controls the CLI logger
type LogConfig struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// DeliveryConfig selects the failure policy for registries the CLI creates
type DeliveryConfig struct {
	Policy string `koanf:"policy" toml:"policy"`
}

// BenchConfig holds the defaults for the bench command
type BenchConfig struct {
	Goroutines    int `koanf:"goroutines" toml:"goroutines"`
	Registrations int `koanf:"registrations" toml:"registrations"`
}

// DemoConfig holds the defaults for the demo command
type DemoConfig struct {
	Topics []string `koanf:"topics" toml:"topics"`
}

// Options translates the delivery policy into registry options.
func (d DeliveryConfig) Options() []events.Option {
	if d.Policy == PolicyFailFast {
		return []events.Option{events.WithFailFast()}
	}
	return nil
}

// Load builds the configuration from all layers. A missing user config
// file is not an error; a malformed one is.
func Load() (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file, first existing candidate wins
	for _, path := range paths.ConfigFileCandidates() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
		break
	}

	// 3. Environment overrides: RELAY_DELIVERY_POLICY -> delivery.policy
	err := k.Load(env.Provider("RELAY_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "RELAY_")), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Delivery.Policy {
	case PolicyContinue, PolicyFailFast:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"delivery.policy must be '%s' or '%s', got '%s'",
			PolicyContinue, PolicyFailFast, c.Delivery.Policy)
	}

	if c.Bench.Goroutines < 1 {
		return errors.New(errors.ErrConfigValid, "bench.goroutines must be at least 1")
	}
	if c.Bench.Registrations < 1 {
		return errors.New(errors.ErrConfigValid, "bench.registrations must be at least 1")
	}
	return nil
}

func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
