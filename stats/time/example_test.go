package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-master/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{0.5, -1, 0.5, -0.5})
	fmt.Printf("peak=%.1f rms=%.3f crossings=%d\n", s.Peak, s.RMS, s.ZeroCrossings)
	// Output:
	// peak=1.0 rms=0.661 crossings=3
}
