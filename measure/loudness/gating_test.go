package loudness

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-master/internal/testutil"
)

func TestIntegratedSteadySignal(t *testing.T) {
	x := testutil.DeterministicSine(1000, 48000, 0.5, 48000*3)

	testutil.RequireNearlyEqual(t, "integrated", Integrated(x, 48000), Measure(x, 48000), 0.05)
}

func TestIntegratedGatesQuietPassages(t *testing.T) {
	const sr = 48000.0

	loud := testutil.DeterministicSine(1000, sr, 0.5, int(2*sr))
	quiet := testutil.DeterministicSine(1000, sr, 1e-4, int(2*sr))
	x := testutil.Concat(loud, quiet)

	integrated := Integrated(x, sr)
	ungated := Measure(x, sr)

	if integrated < ungated+2 {
		t.Fatalf("integrated %.3f should exceed ungated %.3f by the gated half", integrated, ungated)
	}

	testutil.RequireNearlyEqual(t, "integrated", integrated, Measure(loud, sr), 0.5)
}

func TestIntegratedShortBufferIsOneBlock(t *testing.T) {
	x := testutil.DeterministicNoise(11, 0.3, 2000)

	testutil.RequireNearlyEqual(t, "integrated", Integrated(x, 22050), Measure(x, 22050), 1e-6)
}

func TestIntegratedSilence(t *testing.T) {
	if got := Integrated(make([]float64, 48000), 48000); !math.IsInf(got, -1) {
		t.Fatalf("silence = %v, want -Inf", got)
	}

	if got := Integrated(nil, 48000); !math.IsInf(got, -1) {
		t.Fatalf("empty = %v, want -Inf", got)
	}
}

func TestBlockPowersCount(t *testing.T) {
	// 400 ms blocks, 100 ms hop over one second at 1 kHz.
	blocks := blockPowers(make([]float64, 1000), 1000)
	if len(blocks) != 7 {
		t.Fatalf("blocks = %d, want 7", len(blocks))
	}
}
