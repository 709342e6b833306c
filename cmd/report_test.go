package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow/mediflow-sim/sim"
	"github.com/mediflow/mediflow-sim/sim/sweep"
	"github.com/mediflow/mediflow-sim/sim/trace"
	"github.com/mediflow/mediflow-sim/store"
)

func TestRenderRunReport_ShowsMetricsAndSystemCheck(t *testing.T) {
	// GIVEN an overloaded run
	res, err := sim.RunSimulation(sim.NewSimulationParameters(20, 5, 2, 10, 42))
	require.NoError(t, err)

	var buf bytes.Buffer
	renderRunReport(&buf, res)

	out := buf.String()
	assert.Contains(t, out, "Patients served")
	assert.Contains(t, out, "Staff utilization")
	assert.Contains(t, out, "System check:")
	assert.Contains(t, out, res.Metrics.SystemStatus)
	assert.Contains(t, out, "1. "+res.Metrics.Recommendations[0])
}

func TestRenderSweepReport_ListsEveryStaffCount(t *testing.T) {
	report, err := sweep.Run(context.Background(), sim.NewSimulationParameters(10, 4, 1, 20, 42),
		sim.SweepRange{MinServers: 2, MaxServers: 5})
	require.NoError(t, err)

	var buf bytes.Buffer
	renderSweepReport(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "STAFF")
	assert.Contains(t, out, "Recommended staff:")
	for _, p := range report.Points {
		assert.Contains(t, out, p.Metrics.BottleneckLevel.String())
	}
}

func TestRenderSweepReport_NoRecommendation(t *testing.T) {
	report := &sweep.Report{
		Base:   sim.NewSimulationParameters(50, 2, 1, 10, 1),
		Points: []sweep.Point{{Servers: 1, Metrics: sim.RunMetrics{BottleneckLevel: sim.LevelCritical}}},
	}
	var buf bytes.Buffer
	renderSweepReport(&buf, report)
	assert.Contains(t, buf.String(), "No staff count in range")
}

func TestRenderTraceSummary(t *testing.T) {
	var buf bytes.Buffer
	renderTraceSummary(&buf, &trace.TraceSummary{Arrivals: 3, FIFOViolations: 0})
	assert.Contains(t, buf.String(), "FIFO violations")
	assert.Contains(t, buf.String(), "Arrivals")
}

func TestShowResult_RoundTrip(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "results"))
	require.NoError(t, err)
	id, err := st.Save(store.KindSimulation, map[string]int{"servers": 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, showResult(&buf, st, id))
	assert.JSONEq(t, `{"servers": 3}`, buf.String())
}

func TestShowResult_Missing(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "results"))
	require.NoError(t, err)

	err = showResult(&bytes.Buffer{}, st, "simulation_20260101_000000_deadbeef")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRenderResultsList(t *testing.T) {
	var buf bytes.Buffer
	renderResultsList(&buf, nil)
	assert.Contains(t, buf.String(), "No results found.")

	st, err := store.New(filepath.Join(t.TempDir(), "results"))
	require.NoError(t, err)
	id, err := st.Save(store.KindSweep, map[string]int{"recommended_servers": 4})
	require.NoError(t, err)
	entries, err := st.List()
	require.NoError(t, err)

	buf.Reset()
	renderResultsList(&buf, entries)
	assert.Contains(t, buf.String(), id)
	assert.Contains(t, buf.String(), "sweep")
}
