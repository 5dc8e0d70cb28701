package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

const (
	// ShelfSlope is the fixed shelf slope S used by mastering shelves.
	ShelfSlope = 0.7

	// MinGainDB is the smallest |gain| for which [Design] emits a filter.
	MinGainDB = 0.1
)

// Kind selects the response of a mastering EQ band.
type Kind int

const (
	KindLowShelf Kind = iota
	KindPeaking
	KindHighShelf
)

func (k Kind) String() string {
	switch k {
	case KindLowShelf:
		return "low_shelf"
	case KindPeaking:
		return "peaking"
	case KindHighShelf:
		return "high_shelf"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps the textual form produced by [Kind.String] back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "low_shelf", "lowshelf":
		return KindLowShelf, nil
	case "peaking", "peak":
		return KindPeaking, nil
	case "high_shelf", "highshelf":
		return KindHighShelf, nil
	default:
		return 0, fmt.Errorf("design: unknown filter kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < KindLowShelf || k > KindHighShelf {
		return nil, fmt.Errorf("design: unknown filter kind %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = v

	return nil
}

// Design returns the coefficients for one EQ band. Shelves use [ShelfSlope]
// and ignore q. ok is false when |gainDB| < [MinGainDB]; the band is then an
// identity and callers skip it.
//
// The caller guarantees 0 < freq < sampleRate/2.
func Design(kind Kind, freq, gainDB, q, sampleRate float64) (biquad.Coefficients, bool) {
	if math.Abs(gainDB) < MinGainDB {
		return biquad.Identity(), false
	}

	switch kind {
	case KindLowShelf:
		return LowShelf(freq, gainDB, ShelfSlope, sampleRate), true
	case KindHighShelf:
		return HighShelf(freq, gainDB, ShelfSlope, sampleRate), true
	case KindPeaking:
		return Peak(freq, gainDB, q, sampleRate), true
	default:
		return biquad.Identity(), false
	}
}

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2

	return normalizeBiquad(b0, b1, b0, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 + cw) / 2

	return normalizeBiquad(b0, -(1 + cw), b0, 1+alpha, -2*cw, 1-alpha)
}

// Peak designs an RBJ peaking-EQ biquad with gain in dB.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// LowShelf designs a low-shelf biquad with gain in dB and shelf slope S.
// S = 1 is the steepest slope without overshoot.
func LowShelf(freq, gainDB, slope, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	a := math.Pow(10, gainDB/40)
	cw := math.Cos(w0)
	beta := 2 * math.Sqrt(a) * shelfAlpha(w0, a, slope)

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// HighShelf designs a high-shelf biquad with gain in dB and shelf slope S.
func HighShelf(freq, gainDB, slope, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	a := math.Pow(10, gainDB/40)
	cw := math.Cos(w0)
	beta := 2 * math.Sqrt(a) * shelfAlpha(w0, a, slope)

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// shelfAlpha is the cookbook bandwidth term for slope S. Slopes outside
// (0, 1] are clamped to 1.
func shelfAlpha(w0, a, slope float64) float64 {
	if slope <= 0 || slope > 1 || math.IsNaN(slope) {
		slope = 1
	}

	return math.Sin(w0) / 2 * math.Sqrt((a+1/a)*(1/slope-1)+2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
