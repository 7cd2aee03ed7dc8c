package core

// PadTo returns a copy of data with exactly n samples. Shorter input is
// zero-padded at the end, longer input is truncated.
func PadTo(data []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}

// Head returns at most n leading elements of s without copying.
func Head[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
