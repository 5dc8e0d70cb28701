package loudness

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-master/dsp/core"
)

const (
	// lufsOffset is the BS.1770 calibration offset.
	lufsOffset = -0.691
	// powerFloor keeps log10 finite for silent input.
	powerFloor = 1e-12
)

// ErrInvalidTarget is returned for non-finite loudness targets.
var ErrInvalidTarget = errors.New("loudness: invalid target")

// Measure returns the loudness of samples in LUFS:
// -0.691 + 10·log10(mean(k²) + 1e-12), where k is the K-weighted signal.
// An empty buffer measures as silence.
func Measure(samples []float64, sampleRate float64, opts ...MeterOption) float64 {
	cfg := ApplyMeterOptions(opts...)

	return fromMeanSquare(meanSquare(KWeight(samples, sampleRate, cfg.KWeighting)))
}

func fromMeanSquare(ms float64) float64 {
	return lufsOffset + 10*math.Log10(ms+powerFloor)
}

func meanSquare(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return vecmath.DotProduct(x, x) / float64(len(x))
}

// exactGain returns the linear gain that moves a K-weighted mean square ms
// onto targetLUFS once the power floor is added back. Targets at or below
// the floor itself are unreachable and yield 0.
func exactGain(ms, targetLUFS float64) float64 {
	want := math.Pow(10, (targetLUFS-lufsOffset)/10) - powerFloor
	if want <= 0 {
		return 0
	}

	if ms <= 0 {
		return 1
	}

	return math.Sqrt(want / ms)
}

// Result describes one normalization.
type Result struct {
	MeasuredLUFS float64
	TargetLUFS   float64
	GainDB       float64
}

// Normalizer scales buffers to a target loudness with a single gain.
// It holds no per-call state and is safe for concurrent use.
type Normalizer struct {
	target float64
	cfg    MeterConfig
}

// NewNormalizer creates a normalizer for targetLUFS.
func NewNormalizer(targetLUFS float64, opts ...MeterOption) (*Normalizer, error) {
	if !core.IsFinite(targetLUFS) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidTarget, targetLUFS)
	}

	return &Normalizer{target: targetLUFS, cfg: ApplyMeterOptions(opts...)}, nil
}

// Target returns the target loudness in LUFS.
func (n *Normalizer) Target() float64 { return n.target }

// KWeighting returns the configured K-weighting mode.
func (n *Normalizer) KWeighting() KWeightingMode { return n.cfg.KWeighting }

// Process returns samples scaled by a single gain and the measurement behind
// it. The gain is solved against the unfloored mean square, so re-measuring
// the output yields the target for any non-silent input, however quiet. A
// buffer whose K-weighted energy is exactly zero is returned unscaled. The
// input is not modified.
func (n *Normalizer) Process(samples []float64, sampleRate float64) ([]float64, Result) {
	ms := meanSquare(KWeight(samples, sampleRate, n.cfg.KWeighting))
	gain := exactGain(ms, n.target)

	out := make([]float64, len(samples))
	vecmath.ScaleBlock(out, samples, gain)

	return out, Result{
		MeasuredLUFS: fromMeanSquare(ms),
		TargetLUFS:   n.target,
		GainDB:       core.LinearToDB(gain),
	}
}
