package pam_test

import (
	"fmt"

	"github.com/cwbudde/algo-comm/dsp/pam"
)

func ExampleTheoretical() {
	for _, db := range []float64{0, 4, 8} {
		fmt.Printf("%g dB: %.3e\n", db, pam.Theoretical(db))
	}
	// Output:
	// 0 dB: 7.865e-02
	// 4 dB: 1.250e-02
	// 8 dB: 1.909e-04
}
