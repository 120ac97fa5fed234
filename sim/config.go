package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the scheduler's construction-time parameters.
// Model is an opaque tag carried through for display; the scheduler
// never interprets it.
type Config struct {
	Cores  int    `yaml:"cores"`   // number of CPU cores (>= 1)
	Model  string `yaml:"model"`   // threading model label, e.g. "many-to-many"
	TickMS int    `yaml:"tick_ms"` // autonomous loop interval in milliseconds
}

// DefaultConfig returns the configuration used when no file or flags
// override it.
func DefaultConfig() Config {
	return Config{
		Cores:  2,
		Model:  "many-to-many",
		TickMS: 200,
	}
}

// LoadConfig reads YAML and overrides defaults; an empty path or a
// missing file yields defaults only.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	// sanity clamps for the non-fatal fields
	if cfg.TickMS <= 0 {
		cfg.TickMS = DefaultConfig().TickMS
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}

	return cfg, nil
}

// Validate rejects configurations the scheduler cannot run with.
// Core count is checked here, at construction time, never mid-run.
func (c Config) Validate() error {
	if c.Cores < 1 {
		return fmt.Errorf("cores must be >= 1, got %d: %w", c.Cores, ErrInvalidConfig)
	}
	return nil
}
