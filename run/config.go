package run

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the parameters for one batch of independent runs.
type Config struct {
	// Problem is the registered benchmark problem name (e.g. "4_1").
	Problem string `yaml:"problem"`
	// Runs is the number of independent runs to execute.
	Runs int `yaml:"runs"`
	// Steps is the number of time steps per run.
	Steps int `yaml:"steps"`
	// PopSize is the civilization size m.
	PopSize int `yaml:"pop_size"`
	// BaseSeed seeds run i with BaseSeed+i in deterministic mode.
	BaseSeed int64 `yaml:"base_seed"`
	// RandomSeed switches to entropy-based per-run seeds.
	RandomSeed bool `yaml:"random_seed"`
	// Parallel is the maximum number of concurrently executing runs.
	// Values below 2 mean fully serial execution.
	Parallel int `yaml:"parallel"`
	// CSV, if set, is the path of the per-step agent trace file.
	CSV string `yaml:"csv"`
	// DB, if set, is the path of the sqlite trace database.
	DB string `yaml:"db"`
}

// DefaultConfig mirrors the problem 4.1 setup: 10 deterministic runs of
// 200 steps with 100 individuals.
func DefaultConfig() Config {
	return Config{
		Problem:  "4_1",
		Runs:     10,
		Steps:    200,
		PopSize:  100,
		BaseSeed: 10,
	}
}

// LoadConfig reads a YAML config from path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("run: reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("run: parsing config %v: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first configuration problem, if any.
func (cfg Config) Validate() error {
	switch {
	case cfg.Runs < 1:
		return fmt.Errorf("run: runs must be at least 1, got %v", cfg.Runs)
	case cfg.Steps < 1:
		return fmt.Errorf("run: steps must be at least 1, got %v", cfg.Steps)
	case cfg.PopSize < 2:
		return fmt.Errorf("run: pop_size must be at least 2, got %v", cfg.PopSize)
	}
	return nil
}
