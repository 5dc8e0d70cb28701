// Package spectrum provides short-time spectral analysis.
//
// [Analyzer] frames a resident buffer into centred, windowed frames, runs
// them through an FFT plan and hands each one-sided magnitude spectrum to a
// callback. [MeanCentroid] and [MeanShape] build on it to summarize the
// tonal balance of a whole buffer.
package spectrum
