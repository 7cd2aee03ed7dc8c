// Package fir provides a direct-form FIR filter runtime and windowed-sinc
// low-pass design.
//
// A [Filter] applies a set of pre-computed coefficients to an input stream
// using a circular-buffer delay line. [DesignLowPass] produces the
// coefficients used by the QAM demodulator, and the raised-cosine taps from
// dsp/pulse run through the same runtime for pulse shaping.
package fir
