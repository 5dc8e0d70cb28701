// Package resample provides rational sample-rate conversion using polyphase FIR
// filtering with a Kaiser-windowed sinc prototype.
//
// Quality modes, by taps per phase and Kaiser beta:
//
//	QualityFast      16  5.0
//	QualityBalanced  32  7.5  (default)
//	QualityBest      64  9.0
//
// [Resampler] converts streams block by block and keeps filter latency.
// [Convert] converts a whole buffer with the latency removed; the audio
// loader uses it to bring files to the mastering sample rate.
package resample
