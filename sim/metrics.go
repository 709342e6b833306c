// Tracks per-run observations (wait and service samples) and derives the
// end-of-run RunMetrics from them.

package sim

// Observations holds the raw samples of a run in the order they were taken.
// Both slices are append-only during the run.
type Observations struct {
	WaitTimes    []float64 // hours each patient waited before service
	ServiceTimes []float64 // sampled service duration of each patient that started service
}

// Metrics aggregates statistics about a single run. It is owned by one Simulator.
type Metrics struct {
	Observations

	PatientsArrived int // patients created by the arrival generator and started
	PatientsServed  int // patients that departed before the horizon
}

// NewMetrics creates an empty aggregator.
func NewMetrics() *Metrics {
	return &Metrics{
		Observations: Observations{
			WaitTimes:    make([]float64, 0),
			ServiceTimes: make([]float64, 0),
		},
	}
}

// RecordWait appends a wait sample (hours).
func (m *Metrics) RecordWait(wait float64) {
	m.WaitTimes = append(m.WaitTimes, wait)
}

// RecordService appends a service duration sample (hours).
func (m *Metrics) RecordService(duration float64) {
	m.ServiceTimes = append(m.ServiceTimes, duration)
}

// RunMetrics is the derived, end-of-run summary of a simulation.
// AvgQueueLength is ArrivalRate × AvgWaitTime by construction (Little's Law).
type RunMetrics struct {
	PatientsServed             int             `json:"patients_served"`
	PatientsArrived            int             `json:"patients_arrived"`
	PatientsInProgress         int             `json:"patients_in_progress"`
	AvgWaitTime                float64         `json:"avg_wait_time"`
	MaxWaitTime                float64         `json:"max_wait_time"`
	P90WaitTime                float64         `json:"p90_wait_time"`
	AvgQueueLength             float64         `json:"avg_queue_length"`
	PeakQueueLength            int             `json:"peak_queue_length"`
	StaffBusyTime              float64         `json:"staff_busy_time"`
	StaffAvailableTime         float64         `json:"staff_available_time"`
	Utilization                float64         `json:"utilization"`
	ObservedServiceRate        float64         `json:"observed_service_rate"`
	TrafficIntensity           float64         `json:"traffic_intensity"`
	CoefficientOfVariationWait float64         `json:"coefficient_of_variation_wait"`
	BottleneckLevel            BottleneckLevel `json:"bottleneck_level"`
	SystemStatus               string          `json:"system_status"`
	Recommendations            []string        `json:"recommendations"`
}

// Summarize derives RunMetrics from the observations and runs the analyzer.
func (m *Metrics) Summarize(params SimulationParameters) RunMetrics {
	a := Analyze(AnalysisInput{
		ArrivalRate:  params.ArrivalRate,
		ServiceRate:  params.ServiceRate,
		Servers:      params.Servers,
		Duration:     params.Duration,
		WaitTimes:    m.WaitTimes,
		ServiceTimes: m.ServiceTimes,
	})
	return RunMetrics{
		PatientsServed:             m.PatientsServed,
		PatientsArrived:            m.PatientsArrived,
		PatientsInProgress:         m.PatientsArrived - m.PatientsServed,
		AvgWaitTime:                a.AvgWaitTime,
		MaxWaitTime:                a.MaxWaitTime,
		P90WaitTime:                CalculatePercentile(m.WaitTimes, 90),
		AvgQueueLength:             a.AvgQueueLength,
		StaffBusyTime:              a.StaffBusyTime,
		StaffAvailableTime:         a.StaffAvailableTime,
		Utilization:                a.Utilization,
		ObservedServiceRate:        a.ObservedServiceRate,
		TrafficIntensity:           a.TrafficIntensity,
		CoefficientOfVariationWait: a.CoefficientOfVariationWait,
		BottleneckLevel:            a.Level,
		SystemStatus:               a.SystemStatus,
		Recommendations:            a.Recommendations,
	}
}
