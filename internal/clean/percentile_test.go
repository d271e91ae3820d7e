package clean

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	t.Parallel()

	values := []float64{40, 10, 30, 20} // sorted: 10 20 30 40

	tests := []struct {
		q    float64
		want float64
	}{
		{0, 10},
		{1, 40},
		{0.5, 25},
		{0.25, 17.5},
		{-0.5, 10}, // clamped
		{1.5, 40},  // clamped
	}

	for _, tt := range tests {
		if got := Percentile(values, tt.q); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(%v, %v) = %v, want %v", values, tt.q, got, tt.want)
		}
	}
}

func TestPercentileEdge(t *testing.T) {
	t.Parallel()

	if got := Percentile(nil, 0.5); !math.IsNaN(got) {
		t.Errorf("Percentile(nil) = %v, want NaN", got)
	}
	if got := Percentile([]float64{7}, 0.99); got != 7 {
		t.Errorf("single-element percentile = %v, want 7", got)
	}

	// Input must not be reordered.
	in := []float64{3, 1, 2}
	Percentile(in, 0.5)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input mutated: %v", in)
	}
}
