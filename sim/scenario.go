package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named set of simulation parameters loadable from a YAML file,
// with an optional server-count sweep range.
//
//	name: weekday-clinic
//	arrival_rate: 10
//	service_rate: 4
//	servers: 3
//	hours: 50
//	seed: 42
//	sweep:
//	  min_servers: 2
//	  max_servers: 6
type Scenario struct {
	Name                 string `yaml:"name"`
	SimulationParameters `yaml:",inline"`
	Sweep                *SweepRange `yaml:"sweep,omitempty"`
}

// MaxSweepPoints caps how many server counts one sweep may simulate.
const MaxSweepPoints = 256

// SweepRange bounds a what-if sweep over server counts (inclusive).
type SweepRange struct {
	MinServers int `yaml:"min_servers"`
	MaxServers int `yaml:"max_servers"`
	Workers    int `yaml:"workers,omitempty"`
}

// Validate checks the sweep bounds.
func (r SweepRange) Validate() error {
	if r.MinServers <= 0 {
		return &InvalidParameterError{Field: "min_servers", Value: float64(r.MinServers)}
	}
	if r.MaxServers < r.MinServers {
		return fmt.Errorf("max_servers (%d) must be >= min_servers (%d): %w", r.MaxServers, r.MinServers, ErrInvalidParameter)
	}
	if points := r.MaxServers - r.MinServers + 1; points > MaxSweepPoints {
		return fmt.Errorf("sweep of %d server counts exceeds the limit of %d: %w", points, MaxSweepPoints, ErrInvalidParameter)
	}
	if r.Workers < 0 {
		return &InvalidParameterError{Field: "workers", Value: float64(r.Workers)}
	}
	return nil
}

// LoadScenario reads and parses a YAML scenario file.
// Unknown fields are rejected so typos cannot silently fall back to zero values.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks the parameters and, when present, the sweep range.
func (sc *Scenario) Validate() error {
	if err := sc.SimulationParameters.Validate(); err != nil {
		return err
	}
	if sc.Sweep != nil {
		return sc.Sweep.Validate()
	}
	return nil
}
