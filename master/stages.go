package master

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/buffer"
	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/effects"
	"github.com/cwbudde/algo-master/dsp/effects/dynamics"
	"github.com/cwbudde/algo-master/dsp/effects/spatial"
	"github.com/cwbudde/algo-master/dsp/spectrum"
	"github.com/cwbudde/algo-master/measure/loudness"
)

// Stage names in pipeline order.
const (
	StageValidate = "validate"
	StageEQ       = "eq"
	StageCompress = "compress"
	StageStereo   = "stereo"
	StageExcite   = "excite"
	StageLimit    = "limit"
	StageLoudness = "loudness"
)

const (
	silenceThreshold = 1e-10
	rescalePeak      = 0.95
)

// Stage is one step of the mastering chain. Apply must not retain or
// modify its input.
type Stage struct {
	Name  string
	Apply func(buffer.Buffer) (buffer.Buffer, error)
}

// run carries the per-call configuration clone and collects the report.
type run struct {
	cfg          Config
	spectrumOpts []spectrum.Option
	report       *Report
}

func (r *run) stages() []Stage {
	return []Stage{
		{Name: StageValidate, Apply: r.validate},
		{Name: StageEQ, Apply: r.equalize},
		{Name: StageCompress, Apply: r.compress},
		{Name: StageStereo, Apply: r.stereo},
		{Name: StageExcite, Apply: r.excite},
		{Name: StageLimit, Apply: r.limit},
		{Name: StageLoudness, Apply: r.normalize},
	}
}

func (r *run) validate(in buffer.Buffer) (buffer.Buffer, error) {
	out := in.Clone()

	for i, v := range out.Samples {
		if !core.IsFinite(v) {
			out.Samples[i] = 0
			r.report.SanitizedSamples++
		}
	}

	peak := out.Peak()
	r.report.InputPeak = peak

	if peak < silenceThreshold {
		return buffer.Buffer{}, fmt.Errorf("%w: buffer is silent (peak %g)", ErrInvalidInput, peak)
	}

	if peak > 1 {
		buffer.Scale(out.Samples, rescalePeak/peak)
		r.report.Rescaled = true
	}

	return out, nil
}

func (r *run) equalize(in buffer.Buffer) (buffer.Buffer, error) {
	sr := float64(in.SampleRate)

	centroid, err := spectrum.MeanCentroid(in.Samples, sr, r.spectrumOpts...)
	if err != nil {
		return buffer.Buffer{}, err
	}

	bands := Retune(r.cfg.Bands, centroid)
	r.report.Centroid = centroid
	r.report.Bands = bands

	eq := BandChain(bands, sr)
	if !eq.IsStable() {
		return buffer.Buffer{}, fmt.Errorf("%w: equalizer has a pole on or outside the unit circle", ErrNumeric)
	}

	return in.WithSamples(eq.FiltFilt(in.Samples)), nil
}

func (r *run) compress(in buffer.Buffer) (buffer.Buffer, error) {
	c, err := dynamics.NewCompressor(float64(in.SampleRate), r.cfg.Compressor)
	if err != nil {
		return buffer.Buffer{}, err
	}

	out := c.Process(in.Samples)
	r.report.Compressor = c.Metrics()

	return in.WithSamples(out), nil
}

func (r *run) stereo(in buffer.Buffer) (buffer.Buffer, error) {
	p, err := spatial.NewPseudoStereo(float64(in.SampleRate))
	if err != nil {
		return buffer.Buffer{}, err
	}

	return in.WithSamples(p.Process(in.Samples)), nil
}

func (r *run) excite(in buffer.Buffer) (buffer.Buffer, error) {
	e, err := effects.NewExciter()
	if err != nil {
		return buffer.Buffer{}, err
	}

	return in.WithSamples(e.Process(in.Samples)), nil
}

func (r *run) limit(in buffer.Buffer) (buffer.Buffer, error) {
	l, err := dynamics.NewLookaheadLimiter(float64(in.SampleRate), r.cfg.Limiter)
	if err != nil {
		return buffer.Buffer{}, err
	}

	out := l.Process(in.Samples)
	r.report.LimiterMinGain = l.MinGain()

	return in.WithSamples(out), nil
}

func (r *run) normalize(in buffer.Buffer) (buffer.Buffer, error) {
	n, err := loudness.NewNormalizer(r.cfg.TargetLUFS, loudness.WithKWeighting(r.cfg.KWeighting))
	if err != nil {
		return buffer.Buffer{}, err
	}

	out, res := n.Process(in.Samples, float64(in.SampleRate))
	r.report.Loudness = res

	peak := buffer.Peak(out)
	r.report.OutputPeak = peak
	r.report.PeakExceedsTarget = peak > core.DBToLinear(r.cfg.TargetPeakDB)

	return in.WithSamples(out), nil
}

// checkStage verifies the invariants every stage output must satisfy.
func checkStage(name string, in, out buffer.Buffer) error {
	if out.Len() != in.Len() || out.SampleRate != in.SampleRate {
		return fmt.Errorf("%w: stage %s changed the buffer shape (%d@%d -> %d@%d)",
			ErrNumeric, name, in.Len(), in.SampleRate, out.Len(), out.SampleRate)
	}

	if ok, i := core.AllFinite(out.Samples); !ok {
		return fmt.Errorf("%w: stage %s produced %v at sample %d", ErrNumeric, name, out.Samples[i], i)
	}

	return nil
}

func peakDB(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}

	return core.LinearToDB(x)
}
