package loudness

import "math"

const (
	blockDuration = 0.4
	blockOverlap  = 0.75

	absThreshold = -70.0
	relThreshold = -10.0
)

// Integrated returns the BS.1770 gated loudness of samples in LUFS.
//
// The K-weighted signal is cut into 400 ms blocks with 75 % overlap. Blocks
// quieter than -70 LUFS are dropped, then blocks more than 10 LU below the
// mean of the survivors. Buffers shorter than one block form a single
// block. Returns -Inf when every block is gated.
func Integrated(samples []float64, sampleRate float64, opts ...MeterOption) float64 {
	if len(samples) == 0 || sampleRate <= 0 {
		return math.Inf(-1)
	}

	cfg := ApplyMeterOptions(opts...)
	k := KWeight(samples, sampleRate, cfg.KWeighting)

	return gate(blockPowers(k, sampleRate))
}

func blockPowers(k []float64, sampleRate float64) []float64 {
	size := int(math.Round(blockDuration * sampleRate))
	if size < 1 || size > len(k) {
		return []float64{meanSquare(k)}
	}

	step := max(1, int(math.Round(float64(size)*(1-blockOverlap))))

	blocks := make([]float64, 0, 1+(len(k)-size)/step)
	for start := 0; start+size <= len(k); start += step {
		blocks = append(blocks, meanSquare(k[start:start+size]))
	}

	return blocks
}

func gate(blocks []float64) float64 {
	var (
		absSum   float64
		absCount int
	)

	for _, b := range blocks {
		if toLUFS(b) > absThreshold {
			absSum += b
			absCount++
		}
	}

	if absCount == 0 {
		return math.Inf(-1)
	}

	gammaRel := toLUFS(absSum/float64(absCount)) + relThreshold

	var (
		relSum   float64
		relCount int
	)

	for _, b := range blocks {
		l := toLUFS(b)
		if l > absThreshold && l > gammaRel {
			relSum += b
			relCount++
		}
	}

	if relCount == 0 {
		return math.Inf(-1)
	}

	return toLUFS(relSum / float64(relCount))
}

func toLUFS(ms float64) float64 {
	if ms <= 0 {
		return math.Inf(-1)
	}

	return lufsOffset + 10*math.Log10(ms)
}
