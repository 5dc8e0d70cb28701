// Package spatial provides offline mono-compatible spatial coloration.
//
// Included processors:
//   - PseudoStereo: synthesizes a delayed, low-tilted left channel and an
//     undelayed, high-tilted right channel from mono input and folds them
//     back to mono.
package spatial
