package dither_test

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/dither"
)

func ExampleQuantizer_ProcessBlock() {
	q, err := dither.NewQuantizer(44100, dither.WithDitherType(dither.DitherNone))
	if err != nil {
		panic(err)
	}

	out := make([]int, 4)
	q.ProcessBlock(out, []float64{0, 0.25, -0.5, 1})

	fmt.Println(out)
	// Output:
	// [0 8192 -16384 32767]
}
