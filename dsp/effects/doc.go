// Package effects provides sample-wise coloration effects of the mastering
// chain.
//
// Subpackages:
//   - github.com/cwbudde/algo-master/dsp/effects/dynamics
//   - github.com/cwbudde/algo-master/dsp/effects/spatial
//
// Effects remaining in this package:
//   - Exciter: tanh-driven harmonic exciter blended with the dry signal.
package effects
