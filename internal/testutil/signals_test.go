package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// Quarter period at 1 kHz / 48 kHz is sample 12.
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.25, 256)
	b := DeterministicNoise(42, 0.25, 256)
	c := DeterministicNoise(43, 0.25, 256)

	same := true

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}

		if a[i] < -0.25 || a[i] >= 0.25 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}

		if a[i] != c[i] {
			same = false
		}
	}

	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		want []float64
	}{
		{name: "inside", pos: 2, want: []float64{0, 0, 1, 0}},
		{name: "outside", pos: 10, want: []float64{0, 0, 0, 0}},
		{name: "negative", pos: -1, want: []float64{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RequireSliceNearlyEqual(t, Impulse(4, tt.pos), tt.want, 0)
		})
	}
}

func TestConcatAndScaled(t *testing.T) {
	got := Concat(DC(0.5, 2), nil, Scaled([]float64{1, -2}, 0.5))
	RequireSliceNearlyEqual(t, got, []float64{0.5, 0.5, 0.5, -1}, 0)
}
