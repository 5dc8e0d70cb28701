package loudness

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-master/internal/testutil"
)

func BenchmarkNormalizerProcess(b *testing.B) {
	for _, mode := range []KWeightingMode{KWeightingReference, KWeightingAdaptive} {
		b.Run(mode.String(), func(b *testing.B) {
			n, err := NewNormalizer(-14, WithKWeighting(mode))
			if err != nil {
				b.Fatalf("NewNormalizer: %v", err)
			}

			in := testutil.DeterministicNoise(2, 0.3, 22050)

			b.SetBytes(int64(len(in) * 8))
			b.ResetTimer()

			for range b.N {
				_, _ = n.Process(in, 22050)
			}
		})
	}
}

func BenchmarkIntegrated(b *testing.B) {
	for _, seconds := range []int{1, 10} {
		b.Run(fmt.Sprintf("%ds", seconds), func(b *testing.B) {
			in := testutil.DeterministicNoise(4, 0.3, seconds*22050)

			b.SetBytes(int64(len(in) * 8))
			b.ResetTimer()

			for range b.N {
				_ = Integrated(in, 22050)
			}
		})
	}
}
