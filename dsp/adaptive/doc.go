// Package adaptive provides LMS and RLS transversal filters and a runner
// that slides a fixed-length window over a reference signal to predict a
// target signal sample by sample.
//
// Both filters predict with the current weights before adapting them, so
// the error returned by Update is the a-priori error.
//
// The RLS inverse-correlation estimate P can lose symmetry or positive
// definiteness after many updates in float64. RLS re-symmetrizes P after
// each step and re-initializes it to delta*I when the gain denominator or
// a diagonal element stops being finite and positive. Resets reports how
// often that happened.
package adaptive
