package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is matched (via errors.Is) by every InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid simulation parameter")

// InvalidParameterError reports a simulation parameter that is not a positive finite number.
// It is returned before any event is scheduled, so a failed call leaves no partial state.
type InvalidParameterError struct {
	Field string
	Value float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: must be a positive finite number", e.Field, e.Value)
}

// Is makes errors.Is(err, ErrInvalidParameter) true for any InvalidParameterError.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// SimulationParameters groups the inputs of a single run. Rates are per hour,
// Duration is in hours. Seed == nil means non-reproducible randomness.
type SimulationParameters struct {
	ArrivalRate float64 `json:"arrival_rate" yaml:"arrival_rate"` // patients per hour
	ServiceRate float64 `json:"service_rate" yaml:"service_rate"` // patients per hour per server
	Servers     int     `json:"servers" yaml:"servers"`           // staff on duty
	Duration    float64 `json:"hours" yaml:"hours"`               // simulated hours
	Seed        *int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// NewSimulationParameters creates parameters with a fixed seed.
func NewSimulationParameters(arrivalRate, serviceRate float64, servers int, duration float64, seed int64) SimulationParameters {
	return SimulationParameters{
		ArrivalRate: arrivalRate,
		ServiceRate: serviceRate,
		Servers:     servers,
		Duration:    duration,
		Seed:        &seed,
	}
}

// Validate returns an *InvalidParameterError for the first non-positive field.
func (p SimulationParameters) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"arrival_rate", p.ArrivalRate},
		{"service_rate", p.ServiceRate},
		{"servers", float64(p.Servers)},
		{"hours", p.Duration},
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 1) {
			return &InvalidParameterError{Field: c.field, Value: c.value}
		}
	}
	return nil
}

// WithServers returns a copy of p with a different server count.
func (p SimulationParameters) WithServers(servers int) SimulationParameters {
	p.Servers = servers
	return p
}
