package buffer

import (
	"math"
	"time"

	"github.com/cwbudde/algo-vecmath"
)

// Buffer is a mono block of floating-point samples at a fixed sample rate.
// Nominal sample range is ±1.0.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// New returns a zero-filled Buffer of the given length.
func New(length, sampleRate int) Buffer {
	if length < 0 {
		length = 0
	}

	return Buffer{Samples: make([]float64, length), SampleRate: sampleRate}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float64, sampleRate int) Buffer {
	return Buffer{Samples: s, SampleRate: sampleRate}
}

// Len returns the number of samples.
func (b Buffer) Len() int {
	return len(b.Samples)
}

// Duration returns the playback length of the buffer.
// Returns 0 for a non-positive sample rate.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// Clone returns a deep copy of the buffer.
func (b Buffer) Clone() Buffer {
	s := make([]float64, len(b.Samples))
	copy(s, b.Samples)

	return Buffer{Samples: s, SampleRate: b.SampleRate}
}

// WithSamples returns a Buffer carrying s at the receiver's sample rate.
func (b Buffer) WithSamples(s []float64) Buffer {
	return Buffer{Samples: s, SampleRate: b.SampleRate}
}

// Peak returns max(|x|). Returns 0 for an empty buffer.
func (b Buffer) Peak() float64 {
	return Peak(b.Samples)
}

// RMS returns the root-mean-square level. Returns 0 for an empty buffer.
func (b Buffer) RMS() float64 {
	return math.Sqrt(MeanSquare(b.Samples))
}

// Peak returns max(|x|) of s. Non-finite samples propagate.
func Peak(s []float64) float64 {
	peak := 0.0
	for _, v := range s {
		a := math.Abs(v)
		if a > peak || math.IsNaN(a) {
			peak = a
		}
	}

	return peak
}

// MeanSquare returns mean(x²) of s. Returns 0 for an empty slice.
func MeanSquare(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}

	return vecmath.DotProduct(s, s) / float64(len(s))
}

// Reverse reverses s in place.
func Reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Scale multiplies every sample of s by g in place.
func Scale(s []float64, g float64) {
	vecmath.ScaleBlockInPlace(s, g)
}
