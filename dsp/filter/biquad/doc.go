// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections can be cascaded
// via [Chain], and [FiltFilt] runs a section forward and then backward over a
// whole buffer for zero-phase offline filtering.
//
// This package provides the processing runtime only. Coefficient design
// (shelves, peaking EQ, high-pass) lives in dsp/filter/design.
package biquad
