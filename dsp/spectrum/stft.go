package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-master/dsp/window"
	"github.com/cwbudde/algo-master/stats/frequency"
)

const (
	// DefaultFrameSize is the analysis FFT length.
	DefaultFrameSize = 2048
	// DefaultHopSize is the distance between successive frame starts.
	DefaultHopSize = 512
)

// ErrEmptyInput is returned when there are no samples to analyze.
var ErrEmptyInput = errors.New("spectrum: empty input")

// Option configures an [Analyzer].
type Option func(*config)

type config struct {
	frameSize int
	hopSize   int
	window    window.Type
}

func defaultConfig() config {
	return config{
		frameSize: DefaultFrameSize,
		hopSize:   DefaultHopSize,
		window:    window.TypeHann,
	}
}

// WithFrameSize sets the FFT frame length. It must be a power of two >= 16.
func WithFrameSize(n int) Option {
	return func(c *config) {
		c.frameSize = n
	}
}

// WithHopSize sets the hop between frames in samples.
func WithHopSize(n int) Option {
	return func(c *config) {
		c.hopSize = n
	}
}

// WithWindow selects the analysis window. The window is always generated in
// its periodic form.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

func (c config) validate() error {
	if c.frameSize < 16 || c.frameSize&(c.frameSize-1) != 0 {
		return fmt.Errorf("spectrum frame size must be a power of two >= 16: %d", c.frameSize)
	}

	if c.hopSize <= 0 || c.hopSize > c.frameSize {
		return fmt.Errorf("spectrum hop size must be in [1, %d]: %d", c.frameSize, c.hopSize)
	}

	return nil
}

// Analyzer computes magnitude spectra of centred frames. Frame t covers
// input samples [t*hop - frame/2, t*hop + frame/2); samples outside the
// buffer are zero. A buffer of n samples yields 1 + n/hop frames.
//
// An Analyzer reuses its scratch buffers and is not safe for concurrent use.
type Analyzer struct {
	frameSize int
	hopSize   int
	win       []float64
	plan      *algofft.Plan[complex128]

	frame []float64
	in    []complex128
	out   []complex128
	mag   []float64
}

// NewAnalyzer creates an analyzer with the given options.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.frameSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	return &Analyzer{
		frameSize: cfg.frameSize,
		hopSize:   cfg.hopSize,
		win:       window.Generate(cfg.window, cfg.frameSize, window.WithPeriodic()),
		plan:      plan,
		frame:     make([]float64, cfg.frameSize),
		in:        make([]complex128, cfg.frameSize),
		out:       make([]complex128, cfg.frameSize),
		mag:       make([]float64, cfg.frameSize/2+1),
	}, nil
}

// FrameSize returns the FFT length.
func (a *Analyzer) FrameSize() int { return a.frameSize }

// HopSize returns the hop between frames.
func (a *Analyzer) HopSize() int { return a.hopSize }

// NumFrames returns the number of frames produced for n samples.
func (a *Analyzer) NumFrames(n int) int {
	if n <= 0 {
		return 0
	}

	return 1 + n/a.hopSize
}

// Each calls fn for every frame with its one-sided magnitude spectrum
// (frame/2 + 1 bins). The slice is reused between calls.
func (a *Analyzer) Each(samples []float64, fn func(frame int, magnitude []float64)) error {
	if len(samples) == 0 {
		return ErrEmptyInput
	}

	half := a.frameSize / 2
	frames := a.NumFrames(len(samples))

	for t := range frames {
		start := t*a.hopSize - half

		for i := range a.frame {
			j := start + i
			if j >= 0 && j < len(samples) {
				a.frame[i] = samples[j]
			} else {
				a.frame[i] = 0
			}
		}

		if err := window.ApplyCoefficients(a.frame, a.frame, a.win); err != nil {
			return err
		}

		for i, v := range a.frame {
			a.in[i] = complex(v, 0)
		}

		if err := a.plan.Forward(a.out, a.in); err != nil {
			return fmt.Errorf("spectrum: fft frame %d: %w", t, err)
		}

		MagnitudeInto(a.mag, a.out[:half+1])
		fn(t, a.mag)
	}

	return nil
}

// Centroids returns the spectral centroid of every frame in Hz.
func (a *Analyzer) Centroids(samples []float64, sampleRate float64) ([]float64, error) {
	out := make([]float64, 0, a.NumFrames(len(samples)))

	err := a.Each(samples, func(_ int, mag []float64) {
		out = append(out, frequency.Centroid(mag, sampleRate))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// MeanCentroid returns the arithmetic mean of the per-frame spectral
// centroids of samples. Silent frames contribute a centroid of 0.
func MeanCentroid(samples []float64, sampleRate float64, opts ...Option) (float64, error) {
	a, err := NewAnalyzer(opts...)
	if err != nil {
		return 0, err
	}

	cs, err := a.Centroids(samples, sampleRate)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, c := range cs {
		sum += c
	}

	return sum / float64(len(cs)), nil
}

// MeanShape averages every spectral shape descriptor over all frames.
func MeanShape(samples []float64, sampleRate float64, opts ...Option) (frequency.Shape, error) {
	a, err := NewAnalyzer(opts...)
	if err != nil {
		return frequency.Shape{}, err
	}

	var (
		acc frequency.Shape
		n   int
	)

	err = a.Each(samples, func(_ int, mag []float64) {
		s := frequency.Describe(mag, sampleRate)
		acc.Centroid += s.Centroid
		acc.Spread += s.Spread
		acc.Flatness += s.Flatness
		acc.Rolloff += s.Rolloff
		n++
	})
	if err != nil {
		return frequency.Shape{}, err
	}

	inv := 1 / float64(n)

	return frequency.Shape{
		Centroid: acc.Centroid * inv,
		Spread:   acc.Spread * inv,
		Flatness: acc.Flatness * inv,
		Rolloff:  acc.Rolloff * inv,
	}, nil
}
