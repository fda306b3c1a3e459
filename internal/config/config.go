// Package config loads optional per-run GA hyperparameter overrides from
// a YAML file sitting alongside the input file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/airfreight/cargopack/internal/cargo"
)

// Overrides mirrors the GA hyperparameters a run may override. A nil
// field means "use the default."
type Overrides struct {
	NIter          *int     `yaml:"n_iter"`
	PopulationSize *int     `yaml:"population_size"`
	ElitismSize    *int     `yaml:"elitism_size"`
	CrossoverProb  *float64 `yaml:"crossover_prob"`
	MutationProb   *float64 `yaml:"mutation_prob"`
	EconomyWindow  *int     `yaml:"economy_window"`
}

// PathFor returns the config path associated with an input file: the
// same path with a ".cargopack.yaml" suffix appended.
func PathFor(inputPath string) string {
	return inputPath + ".cargopack.yaml"
}

// Load reads overrides from path. A missing file is not an error: it
// returns a zero-value Overrides (every field nil) so Apply leaves the
// caller's defaults untouched.
func Load(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return o, nil
}

// Apply overlays the non-nil overrides onto a base manager config and
// returns the result; base is never mutated.
func (o Overrides) Apply(base cargo.Config) cargo.Config {
	cfg := base
	if o.NIter != nil {
		cfg.GA.NIter = *o.NIter
	}
	if o.PopulationSize != nil {
		cfg.GA.PopulationSize = *o.PopulationSize
	}
	if o.ElitismSize != nil {
		cfg.GA.ElitismSize = *o.ElitismSize
	}
	if o.CrossoverProb != nil {
		cfg.GA.CrossoverProb = *o.CrossoverProb
	}
	if o.MutationProb != nil {
		cfg.GA.MutationProb = *o.MutationProb
	}
	if o.EconomyWindow != nil {
		cfg.EconomyWindow = *o.EconomyWindow
	}
	return cfg
}
