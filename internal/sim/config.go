package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one run: the seed for the activation rolls, how many
// ticks Run performs, and the chemical quantities the organism starts with.
type Config struct {
	Seed      int64           `yaml:"seed"`
	Ticks     int             `yaml:"ticks"`
	Chemicals map[int]float64 `yaml:"chemicals"`
}

func DefaultConfig() Config {
	return Config{Seed: 1, Ticks: 100}
}

func (c Config) Validate() error {
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	for id, q := range c.Chemicals {
		if id < 0 {
			return fmt.Errorf("chemical id must not be negative, got %d", id)
		}
		if q < 0 {
			return fmt.Errorf("chemical %d starts below zero: %v", id, q)
		}
	}
	return nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse sim config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("sim config %s: %w", path, err)
	}
	return cfg, nil
}
