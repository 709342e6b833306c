package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow/mediflow-sim/sim/internal/testutil"
)

func TestLoadScenario_ParsesInlineParametersAndSweep(t *testing.T) {
	path := testutil.WriteFile(t, "clinic.yaml", `
name: weekday-clinic
arrival_rate: 10
service_rate: 4
servers: 3
hours: 50
seed: 42
sweep:
  min_servers: 2
  max_servers: 6
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "weekday-clinic", sc.Name)
	assert.Equal(t, 10.0, sc.ArrivalRate)
	assert.Equal(t, 4.0, sc.ServiceRate)
	assert.Equal(t, 3, sc.Servers)
	assert.Equal(t, 50.0, sc.Duration)
	require.NotNil(t, sc.Seed)
	assert.Equal(t, int64(42), *sc.Seed)
	require.NotNil(t, sc.Sweep)
	assert.Equal(t, 2, sc.Sweep.MinServers)
	assert.Equal(t, 6, sc.Sweep.MaxServers)
}

func TestLoadScenario_SeedOmitted_IsNil(t *testing.T) {
	path := testutil.WriteFile(t, "noseed.yaml", "arrival_rate: 1\nservice_rate: 2\nservers: 1\nhours: 8\n")

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Nil(t, sc.Seed)
	assert.Nil(t, sc.Sweep)
}

func TestLoadScenario_UnknownField_Rejected(t *testing.T) {
	// GIVEN a typo in a field name
	path := testutil.WriteFile(t, "typo.yaml", "arrival_rate: 10\nservice_rat: 4\nservers: 3\nhours: 50\n")

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_rat")
}

func TestLoadScenario_InvalidParameters_Rejected(t *testing.T) {
	path := testutil.WriteFile(t, "zero.yaml", "arrival_rate: 10\nservice_rate: 4\nservers: 0\nhours: 50\n")

	_, err := LoadScenario(path)
	assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	assert.Error(t, err)
}

func TestSweepRange_Validate(t *testing.T) {
	assert.NoError(t, SweepRange{MinServers: 1, MaxServers: 1}.Validate())
	assert.ErrorIs(t, SweepRange{MinServers: 0, MaxServers: 3}.Validate(), ErrInvalidParameter)
	assert.ErrorIs(t, SweepRange{MinServers: 4, MaxServers: 3}.Validate(), ErrInvalidParameter)
	assert.ErrorIs(t, SweepRange{MinServers: 1, MaxServers: 3, Workers: -1}.Validate(), ErrInvalidParameter)
	assert.NoError(t, SweepRange{MinServers: 1, MaxServers: MaxSweepPoints}.Validate())
	assert.ErrorIs(t, SweepRange{MinServers: 1, MaxServers: MaxSweepPoints + 1}.Validate(), ErrInvalidParameter)
	assert.ErrorIs(t, SweepRange{MinServers: 1, MaxServers: math.MaxInt32}.Validate(), ErrInvalidParameter)
}
