// Package design provides biquad coefficient designers.
//
// The designers follow the RBJ audio-EQ cookbook and produce coefficients
// consumable by dsp/filter/biquad. [Design] dispatches a mastering EQ band
// by [Kind] and reports whether the band contributes any gain at all.
package design
