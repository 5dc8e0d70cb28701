package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestDBPowerConversions(t *testing.T) {
	// 3 dB power ~ 2x linear power
	p := DBPowerToLinear(3)
	if !NearlyEqual(p, 2.0, 0.01) {
		t.Fatalf("DBPowerToLinear(3) = %v, want ~2.0", p)
	}

	// Round-trip
	db := LinearPowerToDB(p)
	if !NearlyEqual(db, 3.0, 1e-10) {
		t.Fatalf("LinearPowerToDB(DBPowerToLinear(3)) = %v, want 3", db)
	}

	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want bool
	}{
		{name: "zero", in: 0, want: true},
		{name: "nan", in: math.NaN(), want: false},
		{name: "posinf", in: math.Inf(1), want: false},
		{name: "neginf", in: math.Inf(-1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.in); got != tt.want {
				t.Fatalf("IsFinite(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAllFinite(t *testing.T) {
	ok, idx := AllFinite([]float64{0, 1, -1})
	if !ok || idx != -1 {
		t.Fatalf("AllFinite() = (%v, %d), want (true, -1)", ok, idx)
	}

	ok, idx = AllFinite([]float64{0, math.NaN(), math.Inf(1)})
	if ok || idx != 1 {
		t.Fatalf("AllFinite() = (%v, %d), want (false, 1)", ok, idx)
	}
}

func TestSmoothingCoeff(t *testing.T) {
	got := SmoothingCoeff(0.01, 22050)
	want := math.Exp(-1 / 220.5)
	if !NearlyEqual(got, want, 1e-15) {
		t.Fatalf("SmoothingCoeff() = %v, want %v", got, want)
	}

	if SmoothingCoeff(0, 22050) != 0 {
		t.Fatal("expected zero coefficient for zero time")
	}
}
