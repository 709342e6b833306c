package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mediflow/mediflow-sim/sim"
	"github.com/mediflow/mediflow-sim/sim/sweep"
	"github.com/mediflow/mediflow-sim/sim/trace"
	"github.com/mediflow/mediflow-sim/store"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	levelColors = map[sim.BottleneckLevel]lipgloss.Color{
		sim.LevelHealthy:  lipgloss.Color("10"),
		sim.LevelModerate: lipgloss.Color("11"),
		sim.LevelHigh:     lipgloss.Color("208"),
		sim.LevelCritical: lipgloss.Color("9"),
	}
)

func levelStyle(l sim.BottleneckLevel) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(levelColors[l])
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// renderRunReport prints the metrics table and system check of one run.
func renderRunReport(w io.Writer, res *sim.RunResult) {
	p, m := res.Parameters, res.Metrics
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf(
		"Simulation: λ=%g/hr  μ=%g/hr  c=%d  T=%ghrs  seed=%d", p.ArrivalRate, p.ServiceRate, p.Servers, p.Duration, res.Seed)))

	t := newTable("METRIC", "VALUE").Rows(
		[]string{"Patients served", strconv.Itoa(m.PatientsServed)},
		[]string{"Patients in progress at end", strconv.Itoa(m.PatientsInProgress)},
		[]string{"Avg wait", formatHours(m.AvgWaitTime)},
		[]string{"P90 wait", formatHours(m.P90WaitTime)},
		[]string{"Max wait", formatHours(m.MaxWaitTime)},
		[]string{"Avg queue length", fmt.Sprintf("%.2f", m.AvgQueueLength)},
		[]string{"Peak queue length", strconv.Itoa(m.PeakQueueLength)},
		[]string{"Staff utilization", fmt.Sprintf("%.1f%%", m.Utilization*100)},
		[]string{"Observed service rate", fmt.Sprintf("%.2f /hr per staff", m.ObservedServiceRate)},
		[]string{"Traffic intensity (ρ)", fmt.Sprintf("%.3f", m.TrafficIntensity)},
		[]string{"Wait CV", fmt.Sprintf("%.2f", m.CoefficientOfVariationWait)},
	)
	fmt.Fprintln(w, t.Render())

	fmt.Fprintf(w, "\nSystem check: %s\n", levelStyle(m.BottleneckLevel).Render(m.SystemStatus))
	for i, rec := range m.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
	}
}

// renderSweepReport prints one row per staff count and the recommendation.
func renderSweepReport(w io.Writer, report *sweep.Report) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf(
		"Staffing sweep: λ=%g/hr  μ=%g/hr  T=%ghrs  seed=%d",
		report.Base.ArrivalRate, report.Base.ServiceRate, report.Base.Duration, report.Seed)))

	t := newTable("STAFF", "UTILIZATION", "ρ", "AVG WAIT", "MAX WAIT", "SERVED", "LEVEL")
	for _, pt := range report.Points {
		m := pt.Metrics
		t.Row(
			strconv.Itoa(pt.Servers),
			fmt.Sprintf("%.1f%%", m.Utilization*100),
			fmt.Sprintf("%.3f", m.TrafficIntensity),
			formatHours(m.AvgWaitTime),
			formatHours(m.MaxWaitTime),
			strconv.Itoa(m.PatientsServed),
			m.BottleneckLevel.String(),
		)
	}
	fmt.Fprintln(w, t.Render())

	if report.Recommended == 0 {
		fmt.Fprintln(w, levelStyle(sim.LevelCritical).Render("\nNo staff count in range keeps the facility out of the bottleneck tiers"))
		return
	}
	fmt.Fprintf(w, "\nRecommended staff: %s\n", levelStyle(sim.LevelHealthy).Render(strconv.Itoa(report.Recommended)))
}

// renderTraceSummary prints the transition counts of a traced run.
func renderTraceSummary(w io.Writer, s *trace.TraceSummary) {
	t := newTable("TRACE", "COUNT").Rows(
		[]string{"Transitions", strconv.Itoa(s.TotalTransitions)},
		[]string{"Arrivals", strconv.Itoa(s.Arrivals)},
		[]string{"Service starts", strconv.Itoa(s.ServiceStarts)},
		[]string{"Departures", strconv.Itoa(s.Departures)},
		[]string{"Max in service", strconv.Itoa(s.MaxInService)},
		[]string{"Max queue length", strconv.Itoa(s.MaxQueueLen)},
		[]string{"FIFO violations", strconv.Itoa(s.FIFOViolations)},
	)
	fmt.Fprintln(w, t.Render())
}

// renderResultsList prints stored results newest first.
func renderResultsList(w io.Writer, entries []store.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	t := newTable("ID", "TYPE", "SIZE", "MODIFIED")
	for _, e := range entries {
		t.Row(e.ID, e.Kind, fmt.Sprintf("%d B", e.Size), e.Modified.Format(time.DateTime))
	}
	fmt.Fprintln(w, t.Render())
}

// formatHours renders an hour value in minutes.
func formatHours(h float64) string {
	return fmt.Sprintf("%.1f min", h*60)
}
