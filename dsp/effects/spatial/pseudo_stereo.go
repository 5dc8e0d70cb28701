package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

const (
	defaultPseudoStereoDelayS = 0.001

	maxPseudoStereoDelayS = 0.05
)

var (
	// DefaultLeftColoration is the left-channel low tilt, b=[1,0,0]
	// a=[1,-0.5,0.1].
	DefaultLeftColoration = biquad.FromTransfer([3]float64{1, 0, 0}, [3]float64{1, -0.5, 0.1})

	// DefaultRightColoration is the right-channel high tilt, b=[0.8,-0.8,0]
	// a=[1,-0.7,0.2].
	DefaultRightColoration = biquad.FromTransfer([3]float64{0.8, -0.8, 0}, [3]float64{1, -0.7, 0.2})
)

// PseudoStereoOption mutates pseudo-stereo construction parameters.
type PseudoStereoOption func(*pseudoStereoConfig) error

type pseudoStereoConfig struct {
	delayS float64
	left   biquad.Coefficients
	right  biquad.Coefficients
}

func defaultPseudoStereoConfig() pseudoStereoConfig {
	return pseudoStereoConfig{
		delayS: defaultPseudoStereoDelayS,
		left:   DefaultLeftColoration,
		right:  DefaultRightColoration,
	}
}

// WithDelay sets the left-channel delay in seconds, in [0, 0.05].
func WithDelay(seconds float64) PseudoStereoOption {
	return func(cfg *pseudoStereoConfig) error {
		if seconds < 0 || seconds > maxPseudoStereoDelayS || math.IsNaN(seconds) {
			return fmt.Errorf("pseudo stereo delay must be in [0, %g]: %f", maxPseudoStereoDelayS, seconds)
		}

		cfg.delayS = seconds

		return nil
	}
}

// WithColoration replaces the per-channel coloration filters. Both sections
// must be stable.
func WithColoration(left, right biquad.Coefficients) PseudoStereoOption {
	return func(cfg *pseudoStereoConfig) error {
		if !left.IsStable() || !right.IsStable() {
			return fmt.Errorf("pseudo stereo coloration filters must be stable")
		}

		cfg.left = left
		cfg.right = right

		return nil
	}
}

// PseudoStereo is the mono "stereo enhancer" of the mastering chain. The
// left channel is the input delayed by int(delay*sr) samples, whose first
// samples repeat the head of the input instead of silence. Each channel is
// filtered zero-phase by its coloration section, and [PseudoStereo.Process]
// returns their mean. The net effect is a subtle comb coloration.
type PseudoStereo struct {
	sampleRate  float64
	delay       int
	left, right biquad.Coefficients
}

// NewPseudoStereo creates a pseudo-stereo stage for sampleRate.
func NewPseudoStereo(sampleRate float64, opts ...PseudoStereoOption) (*PseudoStereo, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("pseudo stereo sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultPseudoStereoConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &PseudoStereo{
		sampleRate: sampleRate,
		delay:      int(cfg.delayS * sampleRate),
		left:       cfg.left,
		right:      cfg.right,
	}, nil
}

// DelaySamples returns the left-channel delay in samples.
func (p *PseudoStereo) DelaySamples() int { return p.delay }

// ProcessStereo returns the two synthesized channels.
func (p *PseudoStereo) ProcessStereo(samples []float64) (left, right []float64) {
	n := len(samples)
	left = make([]float64, n)

	d := min(p.delay, n)
	copy(left[:d], samples[:d])
	copy(left[d:], samples[:n-d])

	biquad.FiltFiltInPlace(p.left, left)

	return left, biquad.FiltFilt(p.right, samples)
}

// Process returns the mean of both synthesized channels.
func (p *PseudoStereo) Process(samples []float64) []float64 {
	left, right := p.ProcessStereo(samples)
	for i := range left {
		left[i] = 0.5 * (left[i] + right[i])
	}

	return left
}
