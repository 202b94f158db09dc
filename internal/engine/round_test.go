package engine

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{87.699999, 87.7},
		{1.016, 1.02},
		{2.5, 2.5},
		{-3.014, -3.01},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestSnapDown verifies weights snap down to the equipment increment and that
// a zero increment is a no-op.
func TestSnapDown(t *testing.T) {
	tests := []struct{ weight, increment, want float64 }{
		{103.7, 2.5, 102.5},
		{102.5, 2.5, 102.5},
		{99.9, 5, 95},
		{103.7, 0, 103.7},
		{103.7, -1, 103.7},
	}
	for _, tt := range tests {
		if got := SnapDown(tt.weight, tt.increment); got != tt.want {
			t.Errorf("SnapDown(%v, %v) = %v, want %v", tt.weight, tt.increment, got, tt.want)
		}
	}
}
