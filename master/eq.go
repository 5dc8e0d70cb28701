package master

import (
	"github.com/cwbudde/algo-master/dsp/filter/biquad"
	"github.com/cwbudde/algo-master/dsp/filter/design"
)

// Spectral retune thresholds and boosts.
const (
	darkCentroidHz   = 1000.0
	brightCentroidHz = 4000.0

	darkHighMidBoostDB   = 1.5
	darkHighShelfBoostDB = 2.0
	brightLowMidBoostDB  = 1.0
)

// Retune returns a copy of bands with the centroid heuristic applied:
// a centroid below 1 kHz lifts high_mid by 1.5 dB and high_shelf by 2 dB,
// a centroid above 4 kHz lifts low_mid by 1 dB. bands is not modified.
func Retune(bands []Band, centroidHz float64) []Band {
	out := append([]Band(nil), bands...)

	boost := func(name string, db float64) {
		for i := range out {
			if out[i].Name == name {
				out[i].GainDB += db
			}
		}
	}

	switch {
	case centroidHz < darkCentroidHz:
		boost(BandHighMid, darkHighMidBoostDB)
		boost(BandHighShelf, darkHighShelfBoostDB)
	case centroidHz > brightCentroidHz:
		boost(BandLowMid, brightLowMidBoostDB)
	}

	return out
}

// RetuneTargetsMissing returns the retune band names absent from bands,
// in the order [Retune] uses them.
func RetuneTargetsMissing(bands []Band) []string {
	var missing []string

	for _, name := range []string{BandHighMid, BandHighShelf, BandLowMid} {
		found := false

		for _, b := range bands {
			if b.Name == name {
				found = true
				break
			}
		}

		if !found {
			missing = append(missing, name)
		}
	}

	return missing
}

// BandCoefficients designs the biquad of every band at sampleRate. Bands
// whose gain is too small to matter report ok=false and are skipped by
// [ApplyBands].
func BandCoefficients(bands []Band, sampleRate float64) (coeffs []biquad.Coefficients, ok []bool) {
	coeffs = make([]biquad.Coefficients, len(bands))
	ok = make([]bool, len(bands))

	for i, b := range bands {
		coeffs[i], ok[i] = design.Design(b.Kind, b.FrequencyHz, b.GainDB, b.Q, sampleRate)
	}

	return coeffs, ok
}

// BandChain cascades the designed bands that are active at sampleRate.
func BandChain(bands []Band, sampleRate float64) *biquad.Chain {
	coeffs, ok := BandCoefficients(bands, sampleRate)

	active := coeffs[:0]
	for i, c := range coeffs {
		if ok[i] {
			active = append(active, c)
		}
	}

	return biquad.NewChain(active...)
}

// ApplyBands filters samples through every band in order, each zero-phase.
// The input is not modified.
func ApplyBands(samples []float64, sampleRate float64, bands []Band) []float64 {
	return BandChain(bands, sampleRate).FiltFilt(samples)
}
