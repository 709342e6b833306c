package sim

import (
	"math"
	"testing"

	"github.com/mediflow/mediflow-sim/sim/internal/testutil"
)

func TestCalculateMean(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{2.5}, 2.5},
		{"several", []float64{1, 2, 3, 4}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateMean(tt.data); got != tt.want {
				t.Errorf("CalculateMean(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestCalculateMax_EmptyIsZero(t *testing.T) {
	if got := CalculateMax(nil); got != 0 {
		t.Errorf("CalculateMax(nil) = %v, want 0", got)
	}
	if got := CalculateMax([]float64{0.2, 1.7, 0.4}); got != 1.7 {
		t.Errorf("CalculateMax = %v, want 1.7", got)
	}
}

func TestCalculateSum(t *testing.T) {
	if got := CalculateSum([]float64{0.25, 0.5, 0.25}); got != 1.0 {
		t.Errorf("CalculateSum = %v, want 1", got)
	}
	if got := CalculateSum(nil); got != 0 {
		t.Errorf("CalculateSum(nil) = %v, want 0", got)
	}
}

func TestCalculateCV(t *testing.T) {
	// GIVEN samples 2, 4, 4, 4, 5, 5, 7, 9: mean 5, sample std sqrt(32/7)
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	want := math.Sqrt(32.0/7.0) / 5.0
	testutil.AssertFloat64Equal(t, "cv", want, CalculateCV(data), 1e-12)
}

func TestCalculateCV_DegenerateInputs_Zero(t *testing.T) {
	for name, data := range map[string][]float64{
		"empty":     nil,
		"single":    {3},
		"zero mean": {0, 0, 0},
	} {
		t.Run(name, func(t *testing.T) {
			if got := CalculateCV(data); got != 0 {
				t.Errorf("CalculateCV(%v) = %v, want 0", data, got)
			}
		})
	}
}

func TestCalculatePercentile(t *testing.T) {
	// GIVEN unsorted data; the input must not be reordered
	data := []float64{5, 1, 4, 2, 3}
	if got := CalculatePercentile(data, 100); got != 5 {
		t.Errorf("p100 = %v, want 5", got)
	}
	if got := CalculatePercentile(data, 0); got != 1 {
		t.Errorf("p0 = %v, want 1", got)
	}
	if data[0] != 5 {
		t.Error("CalculatePercentile must not sort its input in place")
	}
	p90 := CalculatePercentile(data, 90)
	if p90 < 4 || p90 > 5 {
		t.Errorf("p90 = %v, want within [4, 5]", p90)
	}
	if got := CalculatePercentile(nil, 90); got != 0 {
		t.Errorf("empty p90 = %v, want 0", got)
	}
}
