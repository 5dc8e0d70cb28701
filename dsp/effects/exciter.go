package effects

import (
	"fmt"
	"math"
)

const (
	defaultExciterDrive      = 0.1
	defaultExciterSaturation = 3.0
	defaultExciterMix        = 0.3

	minExciterDrive      = 0.0
	maxExciterDrive      = 1.0
	minExciterSaturation = 0.1
	maxExciterSaturation = 20.0
	minExciterMix        = 0.0
	maxExciterMix        = 1.0
)

// ExciterOption mutates construction-time parameters.
type ExciterOption func(*exciterConfig) error

type exciterConfig struct {
	drive      float64
	saturation float64
	mix        float64
}

func defaultExciterConfig() exciterConfig {
	return exciterConfig{
		drive:      defaultExciterDrive,
		saturation: defaultExciterSaturation,
		mix:        defaultExciterMix,
	}
}

// WithExciterDrive sets the harmonic amount in [0, 1].
func WithExciterDrive(v float64) ExciterOption {
	return func(cfg *exciterConfig) error {
		if v < minExciterDrive || v > maxExciterDrive || !isFinite(v) {
			return fmt.Errorf("exciter drive must be in [%g, %g]: %f", minExciterDrive, maxExciterDrive, v)
		}

		cfg.drive = v

		return nil
	}
}

// WithExciterSaturation sets the tanh input scaling in [0.1, 20].
func WithExciterSaturation(v float64) ExciterOption {
	return func(cfg *exciterConfig) error {
		if v < minExciterSaturation || v > maxExciterSaturation || !isFinite(v) {
			return fmt.Errorf("exciter saturation must be in [%g, %g]: %f",
				minExciterSaturation, maxExciterSaturation, v)
		}

		cfg.saturation = v

		return nil
	}
}

// WithExciterMix sets the wet proportion in [0, 1].
func WithExciterMix(v float64) ExciterOption {
	return func(cfg *exciterConfig) error {
		if v < minExciterMix || v > maxExciterMix || !isFinite(v) {
			return fmt.Errorf("exciter mix must be in [%g, %g]: %f", minExciterMix, maxExciterMix, v)
		}

		cfg.mix = v

		return nil
	}
}

// Exciter adds level-dependent harmonics:
//
//	h = x * (1 + drive*tanh(saturation*x))
//	y = x + mix*(h - x)
//
// It is stateless and safe for concurrent use.
type Exciter struct {
	drive      float64
	saturation float64
	mix        float64
}

// NewExciter creates an exciter with defaults drive 0.1, saturation 3 and
// mix 0.3.
func NewExciter(opts ...ExciterOption) (*Exciter, error) {
	cfg := defaultExciterConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Exciter{
		drive:      cfg.drive,
		saturation: cfg.saturation,
		mix:        cfg.mix,
	}, nil
}

// ProcessSample excites one sample.
func (e *Exciter) ProcessSample(x float64) float64 {
	h := x * (1 + e.drive*math.Tanh(x*e.saturation))
	return x + e.mix*(h-x)
}

// Process returns an excited copy of samples.
func (e *Exciter) Process(samples []float64) []float64 {
	out := make([]float64, len(samples))
	for i, x := range samples {
		out[i] = e.ProcessSample(x)
	}

	return out
}

// ProcessInPlace excites buf in place.
func (e *Exciter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = e.ProcessSample(buf[i])
	}
}

// Drive returns the harmonic amount.
func (e *Exciter) Drive() float64 { return e.drive }

// Saturation returns the tanh input scaling.
func (e *Exciter) Saturation() float64 { return e.saturation }

// Mix returns the wet proportion.
func (e *Exciter) Mix() float64 { return e.mix }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
