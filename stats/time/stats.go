// Package time computes level statistics of a sampled signal.
package time

import "math"

// Stats holds time-domain level statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	ZeroCrossings  int
	// ZeroCrossingRate is crossings per sample pair.
	ZeroCrossingRate float64
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all level statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		sum, c        float64
		sumSq         float64
		peak          float64
		zeroCrossings int
	)

	for i, x := range signal {
		// Kahan summation keeps the DC estimate stable on long buffers.
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	s := Stats{
		Length:         n,
		DC:             sum / nf,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor_dB: math.Inf(-1),
		ZeroCrossings:  zeroCrossings,
	}

	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactor_dB = ampTodB(s.CrestFactor)
	}

	if n > 1 {
		s.ZeroCrossingRate = float64(zeroCrossings) / float64(n-1)
	}

	return s
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// CrestFactor returns the crest factor (peak / RMS) of the signal.
// Returns 0 if RMS is zero.
func CrestFactor(signal []float64) float64 {
	s := Calculate(signal)
	return s.CrestFactor
}
