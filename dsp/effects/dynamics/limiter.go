package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/core"
)

// LookaheadLimiter is an offline brickwall limiter. For sample i it takes
// the peak of |x| over the window [i, i+L), L = max(1, int(lookahead*sr)),
// and derives a target gain of threshold/peak when the peak exceeds the
// threshold. Gain drops to the target instantly and recovers towards it with
// a one-pole release, so the gain never exceeds the target and the output
// never exceeds the threshold.
type LookaheadLimiter struct {
	params     LimiterParams
	sampleRate float64

	threshold    float64
	window       int
	releaseCoeff float64

	minGain float64
}

// NewLookaheadLimiter creates a limiter for sampleRate with validated params.
func NewLookaheadLimiter(sampleRate float64, p LimiterParams) (*LookaheadLimiter, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("lookahead limiter %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &LookaheadLimiter{
		params:       p,
		sampleRate:   sampleRate,
		threshold:    core.DBToLinear(p.ThresholdDB),
		window:       max(1, int(p.LookaheadS*sampleRate)),
		releaseCoeff: core.SmoothingCoeff(p.ReleaseS, sampleRate),
		minGain:      1,
	}, nil
}

// Params returns the parameters the limiter was built with.
func (l *LookaheadLimiter) Params() LimiterParams { return l.params }

// Threshold returns the linear ceiling.
func (l *LookaheadLimiter) Threshold() float64 { return l.threshold }

// WindowSamples returns the lookahead window length L in samples.
func (l *LookaheadLimiter) WindowSamples() int { return l.window }

// MinGain returns the smallest gain applied by the last Process call.
func (l *LookaheadLimiter) MinGain() float64 { return l.minGain }

// Process returns a limited copy of samples. The running window maximum is
// tracked with a monotonic deque of indices, so the cost is O(n).
func (l *LookaheadLimiter) Process(samples []float64) []float64 {
	n := len(samples)
	out := make([]float64, n)
	l.minGain = 1

	if n == 0 {
		return out
	}

	// deque holds indices with strictly decreasing |x|; its head is the
	// window maximum.
	deque := make([]int, 0, l.window+1)
	head := 0
	next := 0
	g := 1.0

	for i := range n {
		end := min(i+l.window, n)
		for ; next < end; next++ {
			a := math.Abs(samples[next])
			for len(deque) > head && math.Abs(samples[deque[len(deque)-1]]) <= a {
				deque = deque[:len(deque)-1]
			}

			deque = append(deque, next)
		}

		for deque[head] < i {
			head++
		}

		// Compact the consumed prefix so the slice does not grow with n.
		if head > l.window {
			deque = append(deque[:0], deque[head:]...)
			head = 0
		}

		peak := math.Abs(samples[deque[head]])

		target := 1.0
		if peak > l.threshold {
			target = l.threshold / peak
		}

		if target < g {
			g = target
		} else {
			g = l.releaseCoeff*g + (1-l.releaseCoeff)*target
		}

		if g < l.minGain {
			l.minGain = g
		}

		out[i] = samples[i] * g
	}

	return out
}
