// Package frequency computes spectral shape descriptors from a one-sided
// magnitude spectrum.
//
// The magnitude slice represents bins from 0 (DC) to Nyquist, length
// FFTSize/2 + 1. The frequency of bin i is
//
//	f_i = i * sampleRate / (2 * (len(magnitude) - 1))
package frequency

import "math"

// DefaultRolloffPercent is the energy fraction used by [Describe].
const DefaultRolloffPercent = 0.85

// Shape holds spectral shape descriptors.
type Shape struct {
	Centroid float64 // Hz
	Spread   float64 // Hz
	Flatness float64 // 0..1
	Rolloff  float64 // Hz, DefaultRolloffPercent of the energy lies below
}

// binFreq returns the frequency in Hz of a given bin index.
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Describe computes all shape descriptors of one magnitude spectrum.
func Describe(magnitude []float64, sampleRate float64) Shape {
	if len(magnitude) < 2 {
		return Shape{}
	}

	var sum, energy float64
	for _, v := range magnitude {
		sum += v
		energy += v * v
	}

	c := centroid(magnitude, sampleRate, sum)

	return Shape{
		Centroid: c,
		Spread:   spread(magnitude, sampleRate, c, sum),
		Flatness: flatness(magnitude),
		Rolloff:  rolloff(magnitude, sampleRate, DefaultRolloffPercent, energy),
	}
}

// Centroid returns the spectral centroid in Hz. An all-zero spectrum has a
// centroid of 0.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	sum := 0.0
	for _, v := range magnitude {
		sum += v
	}

	return centroid(magnitude, sampleRate, sum)
}

func centroid(magnitude []float64, sampleRate float64, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}

	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += binFreq(i, sampleRate, n) * v
	}

	return weightedSum / sumMag
}

// spread is the magnitude-weighted standard deviation around the centroid.
func spread(magnitude []float64, sampleRate float64, cent float64, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}

	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := binFreq(i, sampleRate, n) - cent
		weightedSqSum += diff * diff * v
	}

	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
// The DC bin is excluded. If any considered bin is zero, 0 is returned.
func Flatness(magnitude []float64) float64 {
	return flatness(magnitude)
}

func flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	nBins := n - 1
	sumLin := 0.0
	sumLog := 0.0

	for i := 1; i < n; i++ {
		v := magnitude[i]
		if v <= 0 {
			return 0
		}

		sumLin += v
		sumLog += math.Log(v)
	}

	meanLin := sumLin / float64(nBins)

	return math.Exp(sumLog/float64(nBins)) / meanLin
}

// Rolloff returns the frequency below which the given fraction (0..1) of
// spectral energy lies.
func Rolloff(magnitude []float64, sampleRate float64, percent float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	energy := 0.0
	for _, v := range magnitude {
		energy += v * v
	}

	return rolloff(magnitude, sampleRate, percent, energy)
}

func rolloff(magnitude []float64, sampleRate float64, percent float64, totalEnergy float64) float64 {
	n := len(magnitude)
	if n < 2 || totalEnergy == 0 {
		return 0
	}

	threshold := percent * totalEnergy
	cumEnergy := 0.0

	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}

	return binFreq(n-1, sampleRate, n)
}
