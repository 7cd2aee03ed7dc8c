package quant_test

import (
	"fmt"

	"github.com/cwbudde/algo-comm/dsp/quant"
)

func ExampleQuantizer_Index() {
	q := quant.Default()
	for _, x := range []float64{-0.3, 0, 0.4} {
		idx, clipped := q.IndexChecked(x)
		fmt.Println(idx, quant.Codeword(idx), clipped)
	}
	// Output:
	// 1 1 false
	// 65 1000001 false
	// 128 10000000 true
}
