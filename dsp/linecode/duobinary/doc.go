// Package duobinary implements precoded duobinary signalling over a
// two-tap channel.
//
// A bit sequence d is precoded as p[k] = (d[k] - p[k-1]) mod 2 with p[-1] = 0,
// mapped to amplitudes a = 2p - 1, and passed through the channel
// b[k] = a[k] + a[k-1]. Because of the precoder the receiver decides each bit
// from a single channel sample without tracking state: |b| = 2 means 0 and
// b = 0 means 1.
//
// Noisy transmission adds Gaussian noise to the amplitudes before the
// channel, and the receiver thresholds the centred value b/2 at ±0.5.
package duobinary
