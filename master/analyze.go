package master

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-master/dsp/buffer"
	"github.com/cwbudde/algo-master/dsp/spectrum"
	"github.com/cwbudde/algo-master/measure/loudness"
	timestats "github.com/cwbudde/algo-master/stats/time"
)

// Analysis summarizes the level, spectrum and loudness of a buffer.
type Analysis struct {
	SampleRate int
	Samples    int
	Duration   time.Duration

	Level timestats.Stats

	Centroid float64 // Hz, mean over STFT frames
	Spread   float64 // Hz
	Flatness float64
	Rolloff  float64 // Hz

	LoudnessLUFS   float64 // ungated K-weighted mean square
	IntegratedLUFS float64 // BS.1770 gated; -Inf when every block is gated
}

// Analyze measures b with the default STFT settings.
func Analyze(b buffer.Buffer, opts ...loudness.MeterOption) (Analysis, error) {
	return analyze(b, nil, opts)
}

// Analyze measures b with the engine's STFT and K-weighting settings.
func (e *Engine) Analyze(b buffer.Buffer) (Analysis, error) {
	return analyze(b, e.spectrumOpts, []loudness.MeterOption{loudness.WithKWeighting(e.cfg.KWeighting)})
}

func analyze(b buffer.Buffer, specOpts []spectrum.Option, meterOpts []loudness.MeterOption) (Analysis, error) {
	if b.SampleRate <= 0 {
		return Analysis{}, fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidInput, b.SampleRate)
	}

	if b.Len() == 0 {
		return Analysis{}, fmt.Errorf("%w: empty buffer", ErrInvalidInput)
	}

	sr := float64(b.SampleRate)

	shape, err := spectrum.MeanShape(b.Samples, sr, specOpts...)
	if err != nil {
		return Analysis{}, fmt.Errorf("master: analyze: %w", err)
	}

	return Analysis{
		SampleRate:     b.SampleRate,
		Samples:        b.Len(),
		Duration:       b.Duration(),
		Level:          timestats.Calculate(b.Samples),
		Centroid:       shape.Centroid,
		Spread:         shape.Spread,
		Flatness:       shape.Flatness,
		Rolloff:        shape.Rolloff,
		LoudnessLUFS:   loudness.Measure(b.Samples, sr, meterOpts...),
		IntegratedLUFS: loudness.Integrated(b.Samples, sr, meterOpts...),
	}, nil
}
