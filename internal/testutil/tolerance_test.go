package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.1, 3})
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-12 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestRequireHelpersAccept(t *testing.T) {
	RequireNearlyEqual(t, "value", 1.00001, 1, 1e-4)
	RequirePeakAtMost(t, []float64{0.5, -0.9, 0.9}, 0.9, 0)
	RequireFinite(t, []float64{0, 1, -1})
}
