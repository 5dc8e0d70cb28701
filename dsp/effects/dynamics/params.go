package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-master/dsp/core"
)

const (
	// Parameter validation ranges.
	minCompressorRatio   = 1.0
	maxCompressorRatio   = 100.0
	minCompressorKneeDB  = 0.0
	maxCompressorKneeDB  = 24.0
	minCompressorTimeS   = 1e-5
	maxCompressorTimeS   = 10.0
	minLimiterThreshold  = -24.0
	maxLimiterThreshold  = 0.0
	minLimiterReleaseS   = 1e-5
	maxLimiterReleaseS   = 5.0
	maxLimiterLookaheadS = 0.2
)

// CompressorParams configures a [Compressor]. Times are in seconds.
type CompressorParams struct {
	ThresholdDB  float64 `toml:"threshold_db"`
	Ratio        float64 `toml:"ratio"`
	AttackS      float64 `toml:"attack_s"`
	ReleaseS     float64 `toml:"release_s"`
	KneeDB       float64 `toml:"knee_db"`
	MakeupGainDB float64 `toml:"makeup_gain_db"`
}

// DefaultCompressorParams returns the mastering defaults: -18 dB threshold,
// 2.5:1, 10 ms attack, 100 ms release, 3 dB knee and 2 dB makeup.
func DefaultCompressorParams() CompressorParams {
	return CompressorParams{
		ThresholdDB:  -18,
		Ratio:        2.5,
		AttackS:      0.01,
		ReleaseS:     0.1,
		KneeDB:       3,
		MakeupGainDB: 2,
	}
}

// Validate checks every field against its supported range.
func (p CompressorParams) Validate() error {
	if !core.IsFinite(p.ThresholdDB) || p.ThresholdDB > 0 {
		return fmt.Errorf("compressor threshold must be finite and <= 0 dB: %f", p.ThresholdDB)
	}

	if p.Ratio < minCompressorRatio || p.Ratio > maxCompressorRatio || !core.IsFinite(p.Ratio) {
		return fmt.Errorf("compressor ratio must be in [%f, %f]: %f",
			minCompressorRatio, maxCompressorRatio, p.Ratio)
	}

	if p.KneeDB < minCompressorKneeDB || p.KneeDB > maxCompressorKneeDB || !core.IsFinite(p.KneeDB) {
		return fmt.Errorf("compressor knee must be in [%f, %f]: %f",
			minCompressorKneeDB, maxCompressorKneeDB, p.KneeDB)
	}

	if p.AttackS < minCompressorTimeS || p.AttackS > maxCompressorTimeS || !core.IsFinite(p.AttackS) {
		return fmt.Errorf("compressor attack must be in [%g, %g] s: %g",
			minCompressorTimeS, maxCompressorTimeS, p.AttackS)
	}

	if p.ReleaseS < minCompressorTimeS || p.ReleaseS > maxCompressorTimeS || !core.IsFinite(p.ReleaseS) {
		return fmt.Errorf("compressor release must be in [%g, %g] s: %g",
			minCompressorTimeS, maxCompressorTimeS, p.ReleaseS)
	}

	if !core.IsFinite(p.MakeupGainDB) {
		return fmt.Errorf("compressor makeup gain must be finite: %f", p.MakeupGainDB)
	}

	return nil
}

// LimiterParams configures a [LookaheadLimiter]. Times are in seconds.
type LimiterParams struct {
	ThresholdDB float64 `toml:"threshold_db"`
	ReleaseS    float64 `toml:"release_s"`
	LookaheadS  float64 `toml:"lookahead_s"`
}

// DefaultLimiterParams returns the mastering defaults: -0.5 dBFS ceiling,
// 5 ms release and 2 ms lookahead.
func DefaultLimiterParams() LimiterParams {
	return LimiterParams{
		ThresholdDB: -0.5,
		ReleaseS:    0.005,
		LookaheadS:  0.002,
	}
}

// Validate checks every field against its supported range.
func (p LimiterParams) Validate() error {
	if p.ThresholdDB < minLimiterThreshold || p.ThresholdDB > maxLimiterThreshold || !core.IsFinite(p.ThresholdDB) {
		return fmt.Errorf("limiter threshold must be in [%f, %f]: %f",
			minLimiterThreshold, maxLimiterThreshold, p.ThresholdDB)
	}

	if p.ReleaseS < minLimiterReleaseS || p.ReleaseS > maxLimiterReleaseS || !core.IsFinite(p.ReleaseS) {
		return fmt.Errorf("limiter release must be in [%g, %g] s: %g",
			minLimiterReleaseS, maxLimiterReleaseS, p.ReleaseS)
	}

	if p.LookaheadS < 0 || p.LookaheadS > maxLimiterLookaheadS || !core.IsFinite(p.LookaheadS) {
		return fmt.Errorf("limiter lookahead must be in [0, %g] s: %g",
			maxLimiterLookaheadS, p.LookaheadS)
	}

	return nil
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("sample rate must be positive and finite: %f", sampleRate)
	}

	return nil
}
