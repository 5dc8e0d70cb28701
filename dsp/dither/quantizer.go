package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] to signed integers of a fixed bit depth.
// Full scale maps to ±(2^(bits-1)-1); results are clamped to the integer
// range. A Quantizer holds noise and shaper state and is not safe for
// concurrent use.
type Quantizer struct {
	sampleRate      float64
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	shaper          NoiseShaper
	rng             *rand.Rand

	scale   float64
	limitLo int
	limitHi int
}

// NewQuantizer creates a Quantizer. The default is 16-bit TPDF dither of
// 1 LSB without noise shaping, seeded with 0.
func NewQuantizer(sampleRate float64, opts ...Option) (*Quantizer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dither: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	var shaper NoiseShaper = noShaping{}

	switch {
	case cfg.shaper != nil:
		shaper = cfg.shaper
	case cfg.iirShelfFreq > 0:
		s, err := NewIIRShelfShaper(cfg.iirShelfFreq, sampleRate)
		if err != nil {
			return nil, err
		}

		shaper = s
	}

	full := math.Exp2(float64(cfg.bitDepth - 1))

	return &Quantizer{
		sampleRate:      sampleRate,
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		shaper:          shaper,
		rng:             rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15)),
		scale:           full - 1,
		limitLo:         -int(full),
		limitHi:         int(full) - 1,
	}, nil
}

// ProcessInteger quantizes one sample.
func (q *Quantizer) ProcessInteger(input float64) int {
	shaped := q.shaper.Shape(q.scale * input)

	result := int(math.Round(shaped + q.noise()))
	result = max(q.limitLo, min(q.limitHi, result))

	q.shaper.RecordError(float64(result) - shaped)

	return result
}

// ProcessBlock quantizes src into dst, which must be at least as long.
func (q *Quantizer) ProcessBlock(dst []int, src []float64) {
	for i, v := range src {
		dst[i] = q.ProcessInteger(v)
	}
}

// ProcessSample quantizes input and maps the integer back to [-1, 1].
func (q *Quantizer) ProcessSample(input float64) float64 {
	return float64(q.ProcessInteger(input)) / q.scale
}

// Reset clears the noise shaper history.
func (q *Quantizer) Reset() {
	q.shaper.Reset()
}

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.ditherAmplitude * (q.rng.Float64() - 0.5)
	case DitherTriangular:
		return q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// SampleRate returns the configured sample rate.
func (q *Quantizer) SampleRate() float64 { return q.sampleRate }
