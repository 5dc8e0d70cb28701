package loudness

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-master/dsp/filter/biquad"
	"github.com/cwbudde/algo-master/dsp/filter/design"
)

// KWeightingMode selects the K-weighting filter coefficients.
type KWeightingMode int

const (
	// KWeightingReference uses the fixed BS.1770 coefficients regardless of
	// the buffer's sample rate.
	KWeightingReference KWeightingMode = iota
	// KWeightingAdaptive designs the shelf and high-pass at the buffer's
	// sample rate.
	KWeightingAdaptive
)

const (
	kWeightingShelfFreq = 1500.0
	kWeightingShelfGain = 4.0
	kWeightingHpfFreq   = 38.0
)

var (
	referencePreEmphasis = biquad.FromTransfer(
		[3]float64{1.53512485958697, -2.69169618940638, 1.19839281085285},
		[3]float64{1, -1.69065929318241, 0.73248077421585},
	)
	referenceHighpass = biquad.FromTransfer(
		[3]float64{1, -2, 1},
		[3]float64{1, -1.99004745483398, 0.99007225036621},
	)
)

func (m KWeightingMode) valid() bool {
	return m == KWeightingReference || m == KWeightingAdaptive
}

// String returns the mode name used in configuration files.
func (m KWeightingMode) String() string {
	switch m {
	case KWeightingReference:
		return "reference"
	case KWeightingAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("KWeightingMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m KWeightingMode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("loudness: unknown k-weighting mode %d", int(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *KWeightingMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "reference", "":
		*m = KWeightingReference
	case "adaptive":
		*m = KWeightingAdaptive
	default:
		return fmt.Errorf("loudness: unknown k-weighting mode %q", string(text))
	}

	return nil
}

// KWeightingFilters returns the pre-emphasis shelf and the high-pass used
// for the given mode and sample rate. In adaptive mode a stage whose corner
// does not fit below Nyquist is replaced by the identity.
func KWeightingFilters(mode KWeightingMode, sampleRate float64) (shelf, highpass biquad.Coefficients) {
	if mode != KWeightingAdaptive {
		return referencePreEmphasis, referenceHighpass
	}

	shelf = design.HighShelf(kWeightingShelfFreq, kWeightingShelfGain, 1, sampleRate)
	if shelf == (biquad.Coefficients{}) {
		shelf = biquad.Identity()
	}

	highpass = design.Highpass(kWeightingHpfFreq, 1/math.Sqrt2, sampleRate)
	if highpass == (biquad.Coefficients{}) {
		highpass = biquad.Identity()
	}

	return shelf, highpass
}

// KWeight returns the K-weighted copy of samples. Each section is applied
// zero-phase.
func KWeight(samples []float64, sampleRate float64, mode KWeightingMode) []float64 {
	return biquad.NewChain(KWeightingFilters(mode, sampleRate)).FiltFilt(samples)
}
