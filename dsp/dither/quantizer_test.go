package dither

import (
	"math"
	"testing"
)

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		sr   float64
		opts []Option
	}{
		{"zero sr", 0, nil},
		{"NaN sr", math.NaN(), nil},
		{"bit depth too small", 44100, []Option{WithBitDepth(4)}},
		{"bit depth too large", 44100, []Option{WithBitDepth(33)}},
		{"bad dither type", 44100, []Option{WithDitherType(DitherType(99))}},
		{"negative amplitude", 44100, []Option{WithDitherAmplitude(-1)}},
		{"shelf above nyquist", 22050, []Option{WithIIRShelf(20000)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.sr, tt.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestQuantizerWithoutDitherRounds(t *testing.T) {
	tests := []struct {
		bits int
		in   float64
		want int
	}{
		{16, 0, 0},
		{16, 1, 32767},
		{16, -1, -32767},
		{16, 0.5, 16384},
		{16, 2, 32767},
		{16, -2, -32768},
		{24, 1, 8388607},
		{24, -0.25, -2097152},
		{32, 1, 2147483647},
	}

	for _, tt := range tests {
		q, err := NewQuantizer(44100, WithBitDepth(tt.bits), WithDitherType(DitherNone))
		if err != nil {
			t.Fatalf("NewQuantizer: %v", err)
		}

		if got := q.ProcessInteger(tt.in); got != tt.want {
			t.Fatalf("%d-bit %v: got %d, want %d", tt.bits, tt.in, got, tt.want)
		}
	}
}

func TestQuantizerDitherBoundedAndSeeded(t *testing.T) {
	a, _ := NewQuantizer(44100, WithSeed(7))
	b, _ := NewQuantizer(44100, WithSeed(7))

	for i := range 4096 {
		x := 0.3 * math.Sin(float64(i)*0.01)
		exact := 32767 * x

		ga, gb := a.ProcessInteger(x), b.ProcessInteger(x)
		if ga != gb {
			t.Fatalf("sample %d: seeded quantizers differ: %d vs %d", i, ga, gb)
		}

		// TPDF of 1 LSB plus rounding stays within 1.5 LSB.
		if math.Abs(float64(ga)-exact) > 1.5 {
			t.Fatalf("sample %d: %d too far from %v", i, ga, exact)
		}
	}
}

func TestQuantizerDitherDecorrelatesSilenceEdge(t *testing.T) {
	q, _ := NewQuantizer(44100, WithSeed(1))

	// A constant 0.25 LSB input rounds to zero without dither; with TPDF
	// the long-run mean tracks the input.
	x := 0.25 / 32767

	sum := 0
	for range 20000 {
		sum += q.ProcessInteger(x)
	}

	if mean := float64(sum) / 20000; math.Abs(mean-0.25) > 0.05 {
		t.Fatalf("mean = %v, want about 0.25", mean)
	}
}

func TestIIRShelfShaperStaysBounded(t *testing.T) {
	q, err := NewQuantizer(44100, WithIIRShelf(2000), WithSeed(3))
	if err != nil {
		t.Fatalf("NewQuantizer: %v", err)
	}

	for i := range 8192 {
		x := 0.5 * math.Sin(float64(i)*0.05)
		if got := q.ProcessInteger(x); math.Abs(float64(got)-32767*x) > 8 {
			t.Fatalf("sample %d: shaped error too large: %d vs %v", i, got, 32767*x)
		}
	}

	q.Reset()
}

func TestParseDitherType(t *testing.T) {
	for _, dt := range []DitherType{DitherNone, DitherRectangular, DitherTriangular} {
		got, err := ParseDitherType(dt.String())
		if err != nil || got != dt {
			t.Fatalf("ParseDitherType(%q) = %v, %v", dt.String(), got, err)
		}
	}

	if _, err := ParseDitherType("gaussian"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
