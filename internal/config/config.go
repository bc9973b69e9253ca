// Package config loads the demo CLI's scenario configuration: which
// scenario to drive to a fixpoint, and its knobs. It follows the
// read-YAML-or-fall-back-to-defaults shape used throughout the retrieval
// pack for small, flat control data.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario names the demo fixpoint computation to run when fixpointdemo is
// invoked without a subcommand.
type Scenario string

const (
	ScenarioSymmetricClosure Scenario = "symmetric-closure"
	ScenarioCollatz          Scenario = "collatz"
	ScenarioAntijoin         Scenario = "antijoin"
	ScenarioPeople           Scenario = "people"
)

// Config is the demo CLI's top-level configuration.
type Config struct {
	Scenario Scenario `yaml:"scenario"`

	// Upper bound (exclusive) used to seed symmetric-closure, collatz, and
	// antijoin; ignored by the people scenario.
	Bound int `yaml:"bound"`

	// PopulationSize is the number of synthetic people to generate; used
	// only by the people scenario.
	PopulationSize int `yaml:"population_size"`

	// RandomSeed seeds the people scenario's population generator, for
	// reproducible demo runs.
	RandomSeed int64 `yaml:"random_seed"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Scenario:       ScenarioSymmetricClosure,
		Bound:          10,
		PopulationSize: 10000,
		RandomSeed:     1,
	}
}

// Load reads a YAML config file at path, applying its contents on top of
// Default. A missing file is not an error: the defaults are returned as-is,
// matching the pack's convention that demo/tooling config is optional.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects scenario/knob combinations the demo driver can't run.
func (c *Config) Validate() error {
	switch c.Scenario {
	case ScenarioSymmetricClosure, ScenarioCollatz, ScenarioAntijoin:
		if c.Bound <= 0 {
			return fmt.Errorf("config: scenario %q requires a positive bound, got %d", c.Scenario, c.Bound)
		}
	case ScenarioPeople:
		if c.PopulationSize <= 0 {
			return fmt.Errorf("config: people scenario requires a positive population_size, got %d", c.PopulationSize)
		}
	default:
		return fmt.Errorf("config: unknown scenario %q", c.Scenario)
	}
	return nil
}
