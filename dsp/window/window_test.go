package window

import (
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeKaiser} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64, WithAlpha(6))
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) || v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d] out of range: %v", i, v)
				}
			}
		})
	}
}

func TestPeriodicHann(t *testing.T) {
	const n = 2048

	w := Generate(TypeHann, n, WithPeriodic())
	for i, v := range w {
		want := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/n)
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("w[%d]=%v, want %v", i, v, want)
		}
	}

	if w[0] != 0 {
		t.Fatalf("periodic Hann must start at 0, got %v", w[0])
	}

	if math.Abs(w[n/2]-1) > 1e-12 {
		t.Fatalf("periodic Hann peak = %v, want 1", w[n/2])
	}
}

func TestSymmetricHannEndpoints(t *testing.T) {
	w := Generate(TypeHann, 9)
	if math.Abs(w[0]) > 1e-12 || math.Abs(w[8]) > 1e-12 {
		t.Fatalf("symmetric Hann endpoints: %v %v", w[0], w[8])
	}

	for i := range 4 {
		if math.Abs(w[i]-w[8-i]) > 1e-12 {
			t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[8-i])
		}
	}
}

func TestKaiserZeroBetaIsRectangular(t *testing.T) {
	w, err := Kaiser(16, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range w {
		if v != 1 {
			t.Fatalf("w[%d]=%v, want 1", i, v)
		}
	}
}

func TestValidation(t *testing.T) {
	if _, err := Hann(0); err == nil {
		t.Fatal("expected error for zero length")
	}

	if _, err := Kaiser(8, -1); err == nil {
		t.Fatal("expected error for negative beta")
	}

	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}

	if err := ApplyCoefficients(make([]float64, 3), make([]float64, 3), make([]float64, 2)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestCoherentGainHann(t *testing.T) {
	w := Generate(TypeHann, 1024, WithPeriodic())

	cg, err := CoherentGain(w)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(cg-0.5) > 1e-12 {
		t.Fatalf("coherent gain = %v, want 0.5", cg)
	}
}
