package dither

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/filter/biquad"
	"github.com/cwbudde/algo-master/dsp/filter/design"
)

// NoiseShaper applies spectral shaping to quantization error via feedback
// filtering. Per sample:
//  1. shaped := shaper.Shape(scaledInput)
//  2. quantized := round(shaped + dither)
//  3. shaper.RecordError(float64(quantized) - shaped)
type NoiseShaper interface {
	Shape(input float64) float64
	RecordError(quantizationError float64)
	Reset()
}

type noShaping struct{}

func (noShaping) Shape(input float64) float64 { return input }
func (noShaping) RecordError(float64)         {}
func (noShaping) Reset()                      {}

const iirShelfGainDB = -5.0

// IIRShelfShaper feeds the quantization error back through a low-shelf
// biquad, moving noise energy above the shelf frequency.
type IIRShelfShaper struct {
	filter    *biquad.Section
	lastError float64
}

// NewIIRShelfShaper creates a shaper with a -5 dB low shelf at freq.
func NewIIRShelfShaper(freq, sampleRate float64) (*IIRShelfShaper, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dither: IIR shelf sample rate must be > 0 and finite: %f", sampleRate)
	}

	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return nil, fmt.Errorf("dither: IIR shelf frequency must be in (0, %f): %f", sampleRate/2, freq)
	}

	return &IIRShelfShaper{
		filter: biquad.NewSection(design.LowShelf(freq, iirShelfGainDB, 1, sampleRate)),
	}, nil
}

// Shape subtracts the filtered previous error from input.
func (s *IIRShelfShaper) Shape(input float64) float64 {
	return input - s.filter.ProcessSample(s.lastError)
}

// RecordError stores the quantization error for the next Shape call.
func (s *IIRShelfShaper) RecordError(quantizationError float64) {
	s.lastError = quantizationError
}

// Reset clears the filter state and stored error.
func (s *IIRShelfShaper) Reset() {
	s.filter.Reset()
	s.lastError = 0
}
