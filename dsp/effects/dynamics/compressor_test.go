package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/internal/testutil"
)

func TestCompressorParamsValidate(t *testing.T) {
	base := DefaultCompressorParams()
	if err := base.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*CompressorParams)
	}{
		{"ratio below one", func(p *CompressorParams) { p.Ratio = 0.5 }},
		{"negative knee", func(p *CompressorParams) { p.KneeDB = -1 }},
		{"zero attack", func(p *CompressorParams) { p.AttackS = 0 }},
		{"zero release", func(p *CompressorParams) { p.ReleaseS = 0 }},
		{"nan threshold", func(p *CompressorParams) { p.ThresholdDB = math.NaN() }},
		{"positive threshold", func(p *CompressorParams) { p.ThresholdDB = 3 }},
		{"inf makeup", func(p *CompressorParams) { p.MakeupGainDB = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)

			if err := p.Validate(); err == nil {
				t.Fatal("expected validation error")
			}

			if _, err := NewCompressor(22050, p); err == nil {
				t.Fatal("expected constructor error")
			}
		})
	}

	if _, err := NewCompressor(0, base); err == nil {
		t.Fatal("expected sample rate error")
	}
}

func TestCompressorGainCurve(t *testing.T) {
	c, err := NewCompressor(22050, DefaultCompressorParams())
	if err != nil {
		t.Fatal(err)
	}

	T := core.DBToLinear(-18)
	K := core.DBToLinear(3)

	tests := []struct {
		name string
		env  float64
		want float64
	}{
		{"zero envelope", 0, 1},
		{"negative envelope", -0.1, 1},
		{"below knee", 0.5 * T / K, 1},
		{"above threshold", 0.5, (T + (0.5-T)/2.5) / 0.5},
		{"full scale", 1, (T + (1-T)/2.5) / 1},
	}

	for _, tt := range tests {
		if got := c.GainAt(tt.env); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("%s: GainAt(%v) = %v, want %v", tt.name, tt.env, got, tt.want)
		}
	}

	// Inside the knee the gain is reduced but stays in (0, 1].
	env := T / math.Sqrt(K)
	d := env - T
	want := (env + (1/2.5-1)*d*d/(2*T*(K-1))) / env

	got := c.GainAt(env)
	if math.Abs(got-want) > 1e-12 || got <= 0 || got > 1 {
		t.Fatalf("knee gain = %v, want %v", got, want)
	}
}

func TestCompressorGainClampedAndMonotoneAboveThreshold(t *testing.T) {
	p := DefaultCompressorParams()
	p.Ratio = 100
	p.KneeDB = 24

	c, err := NewCompressor(22050, p)
	if err != nil {
		t.Fatal(err)
	}

	for env := 1e-6; env < 4; env *= 1.07 {
		g := c.GainAt(env)
		if g < 0 || g > 1 || math.IsNaN(g) {
			t.Fatalf("GainAt(%v) = %v outside [0,1]", env, g)
		}
	}
}

func TestCompressorTransparencyBelowKnee(t *testing.T) {
	p := DefaultCompressorParams()
	c, err := NewCompressor(22050, p)
	if err != nil {
		t.Fatal(err)
	}

	// Peak well under T/K, so the envelope never reaches the knee.
	limit := core.DBToLinear(p.ThresholdDB-p.KneeDB) * 0.9
	in := testutil.DeterministicSine(440, 22050, limit, 4096)
	out := c.Process(in)
	makeup := core.DBToLinear(p.MakeupGainDB)

	for i := range in {
		if out[i] != in[i]*1*makeup {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i]*makeup)
		}
	}
}

func TestCompressorHardKneeTransparencyBelowThreshold(t *testing.T) {
	p := DefaultCompressorParams()
	p.KneeDB = 0

	c, err := NewCompressor(22050, p)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicSine(440, 22050, 0.999*core.DBToLinear(p.ThresholdDB), 2048)
	out := c.Process(in)
	makeup := core.DBToLinear(p.MakeupGainDB)

	for i := range in {
		if out[i] != in[i]*makeup {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i]*makeup)
		}
	}

	if c.Metrics().GainReductionDB() != 0 {
		t.Fatalf("expected no gain reduction, got %v dB", c.Metrics().GainReductionDB())
	}
}

func TestCompressorReducesLoudSignal(t *testing.T) {
	c, err := NewCompressor(22050, DefaultCompressorParams())
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicSine(220, 22050, 0.9, 22050)
	out := c.Process(in)
	testutil.RequireFinite(t, out)

	m := c.Metrics()
	if m.GainReduction >= 1 || m.GainReductionDB() <= 0 {
		t.Fatalf("expected gain reduction, got %+v", m)
	}

	if m.InputPeak < 0.89 || m.OutputPeak <= 0 {
		t.Fatalf("unexpected peaks: %+v", m)
	}

	c.Reset()

	if c.Metrics().GainReduction != 1 || c.Metrics().InputPeak != 0 {
		t.Fatal("Reset did not clear metrics")
	}
}
