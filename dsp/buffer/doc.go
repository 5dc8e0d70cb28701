// Package buffer provides the mono audio buffer exchanged between DSP stages:
// a sample slice paired with its sample rate.
//
// Stages treat a Buffer as borrowed input. They return a new Buffer of the
// same length and never keep a reference to the input samples.
package buffer
