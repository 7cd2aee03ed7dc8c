// Package spectrum provides magnitude, power and phase of complex spectrum
// bins, plus a normalized single-sided magnitude spectrum for real signals.
//
// Bin conversions are vectorized through algo-vecmath. [OneSided] runs an
// algo-fft plan and is what the exercise commands use to display the
// spectra of speech and modulated signals.
package spectrum
