package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
)

// EnvelopeFollower tracks the absolute level of a signal with a one-pole
// smoother. The attack coefficient applies while the input rises above the
// current envelope, the release coefficient otherwise. The first sample
// seeds the envelope directly.
type EnvelopeFollower struct {
	attackCoeff  float64
	releaseCoeff float64

	level  float64
	primed bool
}

// NewEnvelopeFollower creates a follower with attack and release times in
// seconds.
func NewEnvelopeFollower(attackS, releaseS, sampleRate float64) (*EnvelopeFollower, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("envelope follower %w", err)
	}

	if attackS <= 0 || releaseS <= 0 || !core.IsFinite(attackS) || !core.IsFinite(releaseS) {
		return nil, fmt.Errorf("envelope follower times must be positive: attack=%g release=%g", attackS, releaseS)
	}

	return &EnvelopeFollower{
		attackCoeff:  core.SmoothingCoeff(attackS, sampleRate),
		releaseCoeff: core.SmoothingCoeff(releaseS, sampleRate),
	}, nil
}

// ProcessSample advances the follower by one input sample and returns the
// new envelope.
func (e *EnvelopeFollower) ProcessSample(x float64) float64 {
	a := math.Abs(x)
	if !e.primed {
		e.level = a
		e.primed = true

		return a
	}

	coeff := e.releaseCoeff
	if a > e.level {
		coeff = e.attackCoeff
	}

	e.level = coeff*e.level + (1-coeff)*a

	return e.level
}

// Process writes the envelope of src into dst. dst may alias src.
func (e *EnvelopeFollower) Process(dst, src []float64) {
	for i, x := range src {
		dst[i] = e.ProcessSample(x)
	}
}

// Level returns the current envelope.
func (e *EnvelopeFollower) Level() float64 { return e.level }

// Reset clears the envelope so the next sample seeds it again.
func (e *EnvelopeFollower) Reset() {
	e.level = 0
	e.primed = false
}
