package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/core"
)

// CompressorMetrics holds metering information gathered while processing.
type CompressorMetrics struct {
	InputPeak     float64 // maximum |input| since last reset
	OutputPeak    float64 // maximum |output| since last reset
	GainReduction float64 // minimum gain (maximum reduction) since last reset
}

// GainReductionDB returns the maximum gain reduction as a non-negative dB
// value.
func (m CompressorMetrics) GainReductionDB() float64 {
	if m.GainReduction <= 0 {
		return 0
	}

	return -core.LinearToDB(m.GainReduction)
}

// Compressor is a feed-forward downward compressor. The level detector is an
// [EnvelopeFollower] on the input; the gain curve works on linear amplitudes:
//
//	env <= 0       gain 1
//	env <  T/K     gain 1
//	env >  T       gain (T + (env-T)/ratio) / env
//	otherwise      gain (env + (1/ratio-1)(env-T)^2 / (2T(K-1))) / env
//
// with T the linear threshold and K the linear knee width. A 0 dB knee is a
// hard knee. The gain is applied to the input sample, then makeup gain.
type Compressor struct {
	params     CompressorParams
	sampleRate float64

	threshold float64
	knee      float64
	invRatio  float64
	makeup    float64

	env     *EnvelopeFollower
	metrics CompressorMetrics
}

// NewCompressor creates a compressor for sampleRate with validated params.
func NewCompressor(sampleRate float64, p CompressorParams) (*Compressor, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("compressor %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	env, err := NewEnvelopeFollower(p.AttackS, p.ReleaseS, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("compressor: %w", err)
	}

	c := &Compressor{
		params:     p,
		sampleRate: sampleRate,
		threshold:  core.DBToLinear(p.ThresholdDB),
		knee:       core.DBToLinear(p.KneeDB),
		invRatio:   1 / p.Ratio,
		makeup:     core.DBToLinear(p.MakeupGainDB),
		env:        env,
	}
	c.ResetMetrics()

	return c, nil
}

// Params returns the parameters the compressor was built with.
func (c *Compressor) Params() CompressorParams { return c.params }

// SampleRate returns the sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// GainAt evaluates the static gain curve for an envelope value. The result
// is always in [0, 1]; makeup gain is not included.
func (c *Compressor) GainAt(env float64) float64 {
	if env <= 0 || !core.IsFinite(env) {
		return 1
	}

	t := c.threshold

	var g float64

	switch {
	case env > t:
		g = (t + (env-t)*c.invRatio) / env
	case c.knee <= 1 || env < t/c.knee:
		g = 1
	default:
		d := env - t
		soft := env + (c.invRatio-1)*d*d/(2*t*(c.knee-1))
		g = soft / env
	}

	return core.Clamp(g, 0, 1)
}

// ProcessSample compresses one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	g := c.GainAt(c.env.ProcessSample(x))
	y := x * g * c.makeup

	c.meter(x, y, g)

	return y
}

// Process returns a compressed copy of samples.
func (c *Compressor) Process(samples []float64) []float64 {
	out := make([]float64, len(samples))
	for i, x := range samples {
		out[i] = c.ProcessSample(x)
	}

	return out
}

// ProcessInPlace compresses buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// Metrics returns the metering state.
func (c *Compressor) Metrics() CompressorMetrics { return c.metrics }

// ResetMetrics clears the metering state.
func (c *Compressor) ResetMetrics() {
	c.metrics = CompressorMetrics{GainReduction: 1}
}

// Reset clears the detector and the metering state.
func (c *Compressor) Reset() {
	c.env.Reset()
	c.ResetMetrics()
}

func (c *Compressor) meter(x, y, g float64) {
	if a := abs(x); a > c.metrics.InputPeak {
		c.metrics.InputPeak = a
	}

	if a := abs(y); a > c.metrics.OutputPeak {
		c.metrics.OutputPeak = a
	}

	if g < c.metrics.GainReduction {
		c.metrics.GainReduction = g
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
