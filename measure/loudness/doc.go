// Package loudness measures and normalizes the perceived loudness of mono
// buffers.
//
// Loudness is the mean square of the K-weighted signal expressed in LUFS:
//
//	L = -0.691 + 10·log10(mean(k²) + 1e-12)
//
// K-weighting is a high-frequency pre-emphasis shelf followed by a
// low-frequency (RLB) high-pass. Both sections run zero-phase. The
// [Normalizer] applies a single scalar gain so that the measured loudness
// of its output equals the target. [Integrated] adds BS.1770 block gating
// for reports; the normalizer does not use it.
package loudness
