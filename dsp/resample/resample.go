package resample

import "errors"

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality selects the anti-aliasing filter length and window.
type Quality int

const (
	// QualityFast uses short filters.
	QualityFast Quality = iota
	// QualityBalanced is the default.
	QualityBalanced
	// QualityBest uses long filters with high stopband attenuation.
	QualityBest
)

type config struct {
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

func qualityConfig(q Quality) config {
	switch q {
	case QualityFast:
		return config{tapsPerPhase: 16, cutoffScale: 0.88, kaiserBeta: 5.0}
	case QualityBest:
		return config{tapsPerPhase: 64, cutoffScale: 0.96, kaiserBeta: 9.0}
	default:
		return config{tapsPerPhase: 32, cutoffScale: 0.92, kaiserBeta: 7.5}
	}
}

// Option configures the resampler.
type Option func(*config)

// WithQuality selects a predefined quality mode. It resets any earlier
// WithTapsPerPhase.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		*cfg = qualityConfig(q)
	}
}

// WithTapsPerPhase overrides the taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// Resampler performs rational sample-rate conversion with a polyphase FIR.
// It keeps state between Process calls.
type Resampler struct {
	up, down int

	phases     [][]float64
	maxPhaseLn int
	delay      float64

	phase      int
	inputIndex int
	totalIn    int
	history    []float64
}

// NewRational creates a resampler for the ratio up/down, reduced to lowest
// terms.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := qualityConfig(QualityBalanced)
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	nTaps, phases, err := designPolyphaseFIR(up, down, cfg)
	if err != nil {
		return nil, err
	}

	maxPhaseLn := 0
	for _, p := range phases {
		maxPhaseLn = max(maxPhaseLn, len(p))
	}

	return &Resampler{
		up:         up,
		down:       down,
		phases:     phases,
		maxPhaseLn: maxPhaseLn,
		delay:      float64(nTaps-1) / (2 * float64(down)),
		history:    make([]float64, 0, max(0, maxPhaseLn-1)),
	}, nil
}

// Process converts the next block of a stream. Output samples are delayed
// by [Resampler.GroupDelay].
func (r *Resampler) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	out := make([]float64, 0, len(input)*r.up/r.down+1)

	work := make([]float64, len(r.history)+len(input))
	copy(work, r.history)
	copy(work[len(r.history):], input)

	baseIndex := r.totalIn - len(r.history)
	lastAvail := r.totalIn + len(input) - 1

	for r.inputIndex <= lastAvail {
		var y float64

		for k, c := range r.phases[r.phase] {
			idx := r.inputIndex - k
			if idx < baseIndex {
				break
			}

			y += c * work[idx-baseIndex]
		}

		out = append(out, y)

		r.phase += r.down
		r.inputIndex += r.phase / r.up
		r.phase %= r.up
	}

	r.totalIn += len(input)

	keep := min(max(0, r.maxPhaseLn-1), len(work))
	r.history = append(r.history[:0], work[len(work)-keep:]...)

	return out
}

// Ratio returns the reduced up/down factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// GroupDelay returns the latency of the anti-aliasing filter in output
// samples.
func (r *Resampler) GroupDelay() float64 {
	return r.delay
}
