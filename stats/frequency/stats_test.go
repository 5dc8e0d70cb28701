package frequency

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// makeSingleBinSpectrum creates a spectrum of given length with a single
// non-zero bin at the specified index.
func makeSingleBinSpectrum(n, bin int, amplitude float64) []float64 {
	mag := make([]float64, n)
	if bin >= 0 && bin < n {
		mag[bin] = amplitude
	}

	return mag
}

func TestCentroidSingleBin(t *testing.T) {
	// 1025 bins -> 2048-point FFT; bin 100 at 22050 Hz.
	mag := makeSingleBinSpectrum(1025, 100, 3)
	want := 100 * 22050.0 / 2048

	if got := Centroid(mag, 22050); !almostEqual(got, want, tolerance) {
		t.Fatalf("Centroid = %v, want %v", got, want)
	}
}

func TestCentroidZeroSpectrum(t *testing.T) {
	if got := Centroid(make([]float64, 1025), 22050); got != 0 {
		t.Fatalf("Centroid(zero) = %v, want 0", got)
	}

	if got := Centroid([]float64{1}, 22050); got != 0 {
		t.Fatalf("Centroid(single bin) = %v, want 0", got)
	}
}

func TestCentroidSymmetricPair(t *testing.T) {
	mag := make([]float64, 5)
	mag[1], mag[3] = 1, 1

	if got := Centroid(mag, 8000); !almostEqual(got, 2000, tolerance) {
		t.Fatalf("Centroid = %v, want 2000", got)
	}
}

func TestRolloff(t *testing.T) {
	mag := []float64{0, 1, 2, 1, 0}

	if got := Rolloff(mag, 8000, 0.85); !almostEqual(got, 3000, tolerance) {
		t.Fatalf("Rolloff = %v, want 3000", got)
	}

	if got := Rolloff(make([]float64, 5), 8000, 0.85); got != 0 {
		t.Fatalf("Rolloff(zero) = %v, want 0", got)
	}
}

func TestFlatness(t *testing.T) {
	if got := Flatness([]float64{0, 2, 2, 2}); !almostEqual(got, 1, tolerance) {
		t.Fatalf("Flatness(flat) = %v, want 1", got)
	}

	if got := Flatness([]float64{1, 1, 0, 1}); got != 0 {
		t.Fatalf("Flatness with zero bin = %v, want 0", got)
	}
}

func TestDescribeMatchesHelpers(t *testing.T) {
	mag := []float64{0.1, 0.5, 2, 0.7, 0.2, 0.05}
	s := Describe(mag, 44100)

	if !almostEqual(s.Centroid, Centroid(mag, 44100), tolerance) {
		t.Fatalf("Describe centroid %v != Centroid %v", s.Centroid, Centroid(mag, 44100))
	}

	if !almostEqual(s.Rolloff, Rolloff(mag, 44100, DefaultRolloffPercent), tolerance) {
		t.Fatal("Describe rolloff mismatch")
	}

	if s.Spread <= 0 {
		t.Fatalf("Spread = %v, want > 0", s.Spread)
	}
}
