package engine

import "testing"

// TestBodyweightRoundTrip verifies folding bodyweight in and back out
// recovers the external load.
func TestBodyweightRoundTrip(t *testing.T) {
	tests := []struct{ external, bodyweight, factor float64 }{
		{20, 80, 1},
		{0, 75, 0.65},
		{10, 90.4, 0.5},
	}
	for _, tt := range tests {
		total := AddBodyweight(tt.external, tt.bodyweight, tt.factor)
		back := RemoveBodyweight(total, tt.bodyweight, tt.factor)
		if back != Round2(tt.external) {
			t.Errorf("round trip external=%v bw=%v factor=%v gave %v", tt.external, tt.bodyweight, tt.factor, back)
		}
	}

	if got := AddBodyweight(20, 80, 0.65); got != 72 {
		t.Errorf("AddBodyweight(20, 80, 0.65) = %v, want 72", got)
	}
}
