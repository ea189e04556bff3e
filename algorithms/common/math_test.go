package common

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{4.2}, 4.2},
		{"ramp", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.data); !almostEqual(got, tt.want) {
				t.Errorf("Mean(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{3, 3, 3}); !almostEqual(got, 3) {
		t.Errorf("RMS of constant 3 = %v, want 3", got)
	}
	if got := RMS([]float64{1, -1, 1, -1}); !almostEqual(got, 1) {
		t.Errorf("RMS of alternating unit = %v, want 1", got)
	}
	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil) = %v, want 0", got)
	}
}

func TestStandardDeviation(t *testing.T) {
	// Sample std of {2, 4, 4, 4, 5, 5, 7, 9} is sqrt(32/7).
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	want := math.Sqrt(32.0 / 7.0)
	if got := StandardDeviation(data); !almostEqual(got, want) {
		t.Errorf("StandardDeviation = %v, want %v", got, want)
	}
	if got := StandardDeviation([]float64{1}); got != 0 {
		t.Errorf("StandardDeviation of single value = %v, want 0", got)
	}
}

func TestMinMaxNormalizeRange(t *testing.T) {
	data := []float64{3, 7, 5, 11, 3}
	got := MinMaxNormalize(data)

	if len(got) != len(data) {
		t.Fatalf("length changed: got %d, want %d", len(got), len(data))
	}

	min, max := got[0], got[0]
	for _, v := range got {
		if v < 0 || v > 1 {
			t.Errorf("normalized value %v outside [0,1]", v)
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	if !almostEqual(min, 0) || !almostEqual(max, 1) {
		t.Errorf("normalized range [%v, %v], want exactly [0, 1]", min, max)
	}
}

func TestMinMaxNormalizeConstant(t *testing.T) {
	got := MinMaxNormalize([]float64{2.5, 2.5, 2.5, 2.5})
	for i, v := range got {
		if v != 0 {
			t.Errorf("constant input should normalize to zeros, got %v at %d", v, i)
		}
	}

	// Within epsilon of constant counts as degenerate too.
	got = MinMaxNormalize([]float64{1.0, 1.0 + 1e-12})
	for i, v := range got {
		if v != 0 {
			t.Errorf("near-constant input should normalize to zeros, got %v at %d", v, i)
		}
	}
}

func TestCenteredMovingAverageOddWindow(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	got := CenteredMovingAverage(data, 3)
	want := []float64{1, 2, 3, 4, 3} // edge sums divided by full window

	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCenteredMovingAverageEvenWindow(t *testing.T) {
	// For an even window the span is [i-w/2, i+w/2-1]; with all-ones
	// input the output is overlap/window at each position.
	data := make([]float64, 12)
	for i := range data {
		data[i] = 1.0
	}

	got := CenteredMovingAverage(data, 10)

	tests := []struct {
		index int
		want  float64
	}{
		{0, 0.5},  // span clipped to [0, 4]
		{5, 1.0},  // full overlap [0, 9]
		{6, 1.0},  // full overlap [1, 10]
		{11, 0.6}, // span clipped to [6, 11]
	}

	for _, tt := range tests {
		if !almostEqual(got[tt.index], tt.want) {
			t.Errorf("index %d: got %v, want %v", tt.index, got[tt.index], tt.want)
		}
	}
}

func TestCenteredMovingAveragePreservesLength(t *testing.T) {
	for _, n := range []int{1, 2, 9, 10, 11, 100} {
		data := make([]float64, n)
		got := CenteredMovingAverage(data, 10)
		if len(got) != n {
			t.Errorf("length %d: got %d, want same", n, len(got))
		}
	}
}

func TestCenteredMovingAverageDegenerate(t *testing.T) {
	if got := CenteredMovingAverage(nil, 10); len(got) != 0 {
		t.Errorf("nil input should stay empty, got %v", got)
	}
	data := []float64{1, 2, 3}
	got := CenteredMovingAverage(data, 0)
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("zero window should pass input through, got %v", got)
		}
	}
}
