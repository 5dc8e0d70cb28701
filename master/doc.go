// Package master implements an offline mono mastering chain.
//
// An [Engine] runs a fixed sequence of stages over one resident buffer:
//
//  1. validate: non-finite samples become 0, silence is rejected with
//     [ErrInvalidInput] and inputs peaking above full scale are scaled to
//     a 0.95 peak.
//  2. eq: the mean spectral centroid retunes five EQ bands, which are then
//     applied zero-phase.
//  3. compress: feed-forward soft-knee compression with makeup gain.
//  4. stereo: a pseudo-stereo pair is synthesized and folded back to mono.
//  5. excite: gentle tanh harmonic enhancement.
//  6. limit: lookahead peak limiting.
//  7. loudness: a single gain brings the measured loudness to the target.
//
// Every stage returns a new buffer of the same length. The engine checks
// each result for non-finite samples and reports violations with
// [ErrNumeric].
package master
