package loudness_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-master/measure/loudness"
)

func ExampleNormalizer() {
	const sr = 22050.0

	x := make([]float64, int(sr))
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/sr)
	}

	n, err := loudness.NewNormalizer(-14)
	if err != nil {
		panic(err)
	}

	out, res := n.Process(x, sr)

	fmt.Printf("attenuated: %v\n", res.GainDB < 0)
	fmt.Printf("after: %.2f LUFS\n", loudness.Measure(out, sr))

	// Output:
	// attenuated: true
	// after: -14.00 LUFS
}
