package resample

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-master/dsp/window"
)

// designPolyphaseFIR designs a Kaiser-windowed sinc lowpass at the tighter of
// the two Nyquist limits and splits it into up branches. It returns the
// prototype length and the branches.
func designPolyphaseFIR(up, down int, cfg config) (int, [][]float64, error) {
	if cfg.tapsPerPhase <= 0 {
		return 0, nil, errors.New("resample: taps per phase must be > 0")
	}

	nTaps := cfg.tapsPerPhase * up
	fc := 0.5 / float64(max(up, down)) * cfg.cutoffScale

	taps := window.Generate(window.TypeKaiser, nTaps, window.WithAlpha(cfg.kaiserBeta))

	center := 0.5 * float64(nTaps-1)
	sum := 0.0

	for n := range taps {
		taps[n] *= 2 * fc * sinc(2*fc*(float64(n)-center))
		sum += taps[n]
	}

	if sum == 0 {
		return 0, nil, errors.New("resample: designed zero-sum filter")
	}

	// Unity DC gain per output phase.
	scale := float64(up) / sum

	phases := make([][]float64, up)
	for i, v := range taps {
		phases[i%up] = append(phases[i%up], v*scale)
	}

	return nTaps, phases, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}
