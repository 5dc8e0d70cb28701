package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestPolesOfKnownDenominator(t *testing.T) {
	// (1 - 0.5 z^-1)(1 - 0.25 z^-1) = 1 - 0.75 z^-1 + 0.125 z^-2
	c := Coefficients{B0: 1, A1: -0.75, A2: 0.125}
	p := c.Poles()

	got := []float64{real(p[0]), real(p[1])}
	if !(almostEqual(got[0], 0.5, eps) && almostEqual(got[1], 0.25, eps)) {
		t.Fatalf("poles = %v, want [0.5 0.25]", p)
	}

	if !c.IsStable() {
		t.Fatal("expected stable section")
	}
}

func TestComplexPolesRadius(t *testing.T) {
	r := 0.9
	theta := math.Pi / 4
	c := Coefficients{B0: 1, A1: -2 * r * math.Cos(theta), A2: r * r}

	if !almostEqual(c.MaxPoleRadius(), r, 1e-12) {
		t.Fatalf("MaxPoleRadius() = %v, want %v", c.MaxPoleRadius(), r)
	}

	p := c.Poles()
	if !almostEqual(cmplx.Abs(p[0]), r, 1e-12) || !almostEqual(cmplx.Abs(p[1]), r, 1e-12) {
		t.Fatalf("pole magnitudes = %v, %v, want %v", cmplx.Abs(p[0]), cmplx.Abs(p[1]), r)
	}
}

func TestUnstableSection(t *testing.T) {
	c := Coefficients{B0: 1, A1: -2.1, A2: 1.1}
	if c.IsStable() {
		t.Fatalf("expected unstable section, radius %v", c.MaxPoleRadius())
	}

	chain := NewChain(Coefficients{B0: 1, A1: -0.5}, c)
	if chain.IsStable() {
		t.Fatal("expected unstable chain")
	}

	if !NewChain(Coefficients{B0: 1, A1: -0.5}, Identity()).IsStable() {
		t.Fatal("expected stable chain")
	}

	if !NewChain().IsStable() {
		t.Fatal("empty chain must be stable")
	}
}

func TestZeros(t *testing.T) {
	c := Coefficients{B0: 1, B1: -2, B2: 1}
	z := c.Zeros()

	for i := range z {
		if !almostEqual(real(z[i]), 1, 1e-12) || !almostEqual(imag(z[i]), 0, 1e-12) {
			t.Fatalf("zero %d = %v, want 1", i, z[i])
		}
	}
}
