package sim

import (
	"fmt"
	"math"
)

// BottleneckLevel classifies how close a facility is to its capacity.
type BottleneckLevel int

const (
	LevelHealthy BottleneckLevel = iota
	LevelModerate
	LevelHigh
	LevelCritical
)

var bottleneckLevelNames = map[BottleneckLevel]string{
	LevelHealthy:  "healthy",
	LevelModerate: "moderate",
	LevelHigh:     "high",
	LevelCritical: "critical",
}

func (l BottleneckLevel) String() string {
	if name, ok := bottleneckLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("BottleneckLevel(%d)", int(l))
}

// MarshalText encodes the level by name so JSON results stay readable.
func (l BottleneckLevel) MarshalText() ([]byte, error) {
	if _, ok := bottleneckLevelNames[l]; !ok {
		return nil, fmt.Errorf("unknown bottleneck level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *BottleneckLevel) UnmarshalText(text []byte) error {
	for level, name := range bottleneckLevelNames {
		if name == string(text) {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("unknown bottleneck level %q", string(text))
}

// Thresholds used by the stability analysis.
const (
	HighUtilizationThreshold     = 0.90
	ModerateUtilizationThreshold = 0.75
	UnderUtilizationThreshold    = 0.50
	TargetUtilizationHigh        = 0.85 // target when adding staff
	TargetUtilizationReduce      = 0.65 // target when suggesting fewer staff
	ElevatedWaitHours            = 0.25
	HighWaitCV                   = 1.5
	WaitSpreadFactor             = 3.0
	LargeQueueLength             = 5.0
)

// AnalysisInput is everything the analyzer needs from a finished run.
// ServiceRate is the configured rate; it is used only when no service
// samples exist, since the analysis works from the observed rate.
type AnalysisInput struct {
	ArrivalRate  float64
	ServiceRate  float64
	Servers      int
	Duration     float64
	WaitTimes    []float64
	ServiceTimes []float64
}

// Analysis is the outcome of Analyze: derived queueing metrics, a severity
// level, a status line and ordered staffing recommendations.
type Analysis struct {
	AvgWaitTime                float64
	MaxWaitTime                float64
	AvgQueueLength             float64
	StaffBusyTime              float64
	StaffAvailableTime         float64
	Utilization                float64
	ObservedServiceRate        float64 // per server, 1 / mean(service times)
	TrafficIntensity           float64
	CoefficientOfVariationWait float64

	Level           BottleneckLevel
	SystemStatus    string
	Recommendations []string
}

// bottleneckRule is one guarded tier of the classification. Rules are
// evaluated in order and the first match wins.
type bottleneckRule struct {
	level   BottleneckLevel
	status  string
	matches func(a *Analysis) bool
	advise  func(a *Analysis, in AnalysisInput) []string
}

var bottleneckRules = []bottleneckRule{
	{
		level:   LevelCritical,
		status:  "Unstable: demand exceeds staff capacity, more staff required",
		matches: func(a *Analysis) bool { return a.TrafficIntensity >= 1.0 },
		advise: func(a *Analysis, in AnalysisInput) []string {
			required := int(math.Floor(in.ArrivalRate/a.ObservedServiceRate)) + 1
			return []string{
				fmt.Sprintf("Add %d staff: at least %d servers are needed for stability at the observed service rate of %.2f patients/hr per server",
					required-in.Servers, required, a.ObservedServiceRate),
			}
		},
	},
	{
		level:   LevelHigh,
		status:  "High utilization: likely bottleneck",
		matches: func(a *Analysis) bool { return a.Utilization > HighUtilizationThreshold },
		advise: func(a *Analysis, in AnalysisInput) []string {
			target := max(in.Servers+1, int(math.Ceil(float64(in.Servers)*a.Utilization/TargetUtilizationHigh)))
			recs := []string{
				fmt.Sprintf("Add %d staff to bring utilization from %.0f%% to about %.0f%%",
					target-in.Servers, a.Utilization*100, TargetUtilizationHigh*100),
			}
			if a.CoefficientOfVariationWait > HighWaitCV {
				recs = append(recs, fmt.Sprintf("Wait times are highly inconsistent (CV %.2f); investigate process consistency and arrival surges",
					a.CoefficientOfVariationWait))
			}
			return recs
		},
	},
	{
		level:   LevelModerate,
		status:  "Moderate utilization: adequate capacity with a thin safety margin",
		matches: func(a *Analysis) bool { return a.Utilization > ModerateUtilizationThreshold },
		advise: func(a *Analysis, in AnalysisInput) []string {
			recs := []string{"Capacity is adequate but the margin is thin; monitor demand during peak periods"}
			if a.AvgWaitTime > ElevatedWaitHours {
				recs = append(recs, fmt.Sprintf("Average wait of %.1f minutes is elevated", a.AvgWaitTime*60))
			}
			return recs
		},
	},
	{
		level:   LevelHealthy,
		status:  "Healthy: system operating within limits",
		matches: func(a *Analysis) bool { return true },
		advise: func(a *Analysis, in AnalysisInput) []string {
			if a.Utilization < UnderUtilizationThreshold {
				suggested := max(1, int(math.Floor(float64(in.Servers)*a.Utilization/TargetUtilizationReduce)))
				if suggested < in.Servers {
					return []string{fmt.Sprintf("Staff are under-utilized (%.0f%%); consider reducing from %d to %d servers",
						a.Utilization*100, in.Servers, suggested)}
				}
			}
			return []string{"Staffing level is appropriate for current demand"}
		},
	},
}

// Analyze derives the queueing metrics of a run and classifies it.
// It is a pure function of its input.
func Analyze(in AnalysisInput) Analysis {
	a := Analysis{
		AvgWaitTime:                CalculateMean(in.WaitTimes),
		MaxWaitTime:                CalculateMax(in.WaitTimes),
		CoefficientOfVariationWait: CalculateCV(in.WaitTimes),
		StaffBusyTime:              CalculateSum(in.ServiceTimes),
		StaffAvailableTime:         float64(in.Servers) * in.Duration,
		ObservedServiceRate:        in.ServiceRate,
	}
	a.AvgQueueLength = in.ArrivalRate * a.AvgWaitTime
	if a.StaffAvailableTime > 0 {
		a.Utilization = a.StaffBusyTime / a.StaffAvailableTime
	}
	if meanService := CalculateMean(in.ServiceTimes); meanService > 0 {
		a.ObservedServiceRate = 1.0 / meanService
	}
	if a.ObservedServiceRate > 0 && in.Servers > 0 {
		a.TrafficIntensity = in.ArrivalRate / (a.ObservedServiceRate * float64(in.Servers))
	}

	for _, rule := range bottleneckRules {
		if !rule.matches(&a) {
			continue
		}
		a.Level = rule.level
		a.SystemStatus = rule.status
		a.Recommendations = rule.advise(&a, in)
		break
	}

	if a.AvgWaitTime > 0 && a.MaxWaitTime > WaitSpreadFactor*a.AvgWaitTime {
		a.Recommendations = append(a.Recommendations, fmt.Sprintf(
			"High wait-time variance: the longest wait (%.2f hrs) is more than %.0fx the average (%.2f hrs)",
			a.MaxWaitTime, WaitSpreadFactor, a.AvgWaitTime))
	}
	if a.AvgQueueLength > LargeQueueLength {
		a.Recommendations = append(a.Recommendations, fmt.Sprintf(
			"Large queue: %.1f patients waiting on average; consider triage or extra staff at peak times",
			a.AvgQueueLength))
	}
	return a
}
