package master

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/effects/dynamics"
	"github.com/cwbudde/algo-master/dsp/filter/design"
	"github.com/cwbudde/algo-master/measure/loudness"
)

// Names of the default EQ bands. The spectral retune addresses bands by
// these names.
const (
	BandLowShelf  = "low_shelf"
	BandLowMid    = "low_mid"
	BandMid       = "mid"
	BandHighMid   = "high_mid"
	BandHighShelf = "high_shelf"
)

const (
	// DefaultTargetLUFS is the default loudness target.
	DefaultTargetLUFS = -14.0
	// DefaultTargetPeakDB is the default peak target in dBFS.
	DefaultTargetPeakDB = -1.0
	// DefaultSampleRate is the working rate audio is loaded at.
	DefaultSampleRate = 22050

	maxBandGainDB = 24.0
	maxBandQ      = 20.0
)

// Band is one EQ filter of the mastering chain. Shelves ignore Q and use
// [design.ShelfSlope].
type Band struct {
	Name        string      `toml:"name"`
	Kind        design.Kind `toml:"kind"`
	FrequencyHz float64     `toml:"frequency_hz"`
	GainDB      float64     `toml:"gain_db"`
	Q           float64     `toml:"q"`
}

// Config is the complete mastering configuration. Engines treat it as an
// immutable template.
type Config struct {
	TargetLUFS   float64                   `toml:"target_lufs"`
	TargetPeakDB float64                   `toml:"target_peak_db"`
	KWeighting   loudness.KWeightingMode   `toml:"k_weighting"`
	Bands        []Band                    `toml:"bands"`
	Compressor   dynamics.CompressorParams `toml:"compressor"`
	Limiter      dynamics.LimiterParams    `toml:"limiter"`
}

// DefaultBands returns the five flat mastering bands.
func DefaultBands() []Band {
	return []Band{
		{Name: BandLowShelf, Kind: design.KindLowShelf, FrequencyHz: 100, Q: 0.7},
		{Name: BandLowMid, Kind: design.KindPeaking, FrequencyHz: 250, Q: 0.8},
		{Name: BandMid, Kind: design.KindPeaking, FrequencyHz: 1000, Q: 1.0},
		{Name: BandHighMid, Kind: design.KindPeaking, FrequencyHz: 4000, Q: 0.8},
		{Name: BandHighShelf, Kind: design.KindHighShelf, FrequencyHz: 8000, Q: 0.7},
	}
}

// DefaultConfig returns the default mastering configuration.
func DefaultConfig() Config {
	return Config{
		TargetLUFS:   DefaultTargetLUFS,
		TargetPeakDB: DefaultTargetPeakDB,
		KWeighting:   loudness.KWeightingReference,
		Bands:        DefaultBands(),
		Compressor:   dynamics.DefaultCompressorParams(),
		Limiter:      dynamics.DefaultLimiterParams(),
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Bands = append([]Band(nil), c.Bands...)

	return out
}

// Validate checks every parameter that does not depend on the sample rate.
func (c Config) Validate() error {
	if !core.IsFinite(c.TargetLUFS) {
		return fmt.Errorf("%w: target loudness must be finite: %f", ErrInvalidConfig, c.TargetLUFS)
	}

	if !core.IsFinite(c.TargetPeakDB) || c.TargetPeakDB >= 0 {
		return fmt.Errorf("%w: target peak must be below 0 dBFS: %f", ErrInvalidConfig, c.TargetPeakDB)
	}

	if _, err := c.KWeighting.MarshalText(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := c.Compressor.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := c.Limiter.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	seen := make(map[string]bool, len(c.Bands))

	for i, b := range c.Bands {
		if err := b.validate(); err != nil {
			return fmt.Errorf("%w: band %d: %w", ErrInvalidConfig, i, err)
		}

		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate band name %q", ErrInvalidConfig, b.Name)
		}

		seen[b.Name] = true
	}

	return nil
}

// ValidateFor runs [Config.Validate] and additionally requires every band
// frequency to lie below the Nyquist frequency of sampleRate.
func (c Config) ValidateFor(sampleRate int) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidInput, sampleRate)
	}

	nyquist := float64(sampleRate) / 2
	for _, b := range c.Bands {
		if b.FrequencyHz >= nyquist {
			return fmt.Errorf("%w: band %q frequency %.1f Hz must be below Nyquist %.1f Hz",
				ErrInvalidConfig, b.Name, b.FrequencyHz, nyquist)
		}
	}

	return nil
}

func (b Band) validate() error {
	if b.Name == "" {
		return errors.New("band name must not be empty")
	}

	switch b.Kind {
	case design.KindLowShelf, design.KindPeaking, design.KindHighShelf:
	default:
		return fmt.Errorf("band %q: unknown kind %d", b.Name, int(b.Kind))
	}

	if !core.IsFinite(b.FrequencyHz) || b.FrequencyHz <= 0 {
		return fmt.Errorf("band %q: frequency must be > 0: %f", b.Name, b.FrequencyHz)
	}

	if !core.IsFinite(b.GainDB) || math.Abs(b.GainDB) > maxBandGainDB {
		return fmt.Errorf("band %q: gain must be in [%f, %f]: %f", b.Name, -maxBandGainDB, maxBandGainDB, b.GainDB)
	}

	if b.Kind == design.KindPeaking && (!core.IsFinite(b.Q) || b.Q <= 0 || b.Q > maxBandQ) {
		return fmt.Errorf("band %q: q must be in (0, %f]: %f", b.Name, maxBandQ, b.Q)
	}

	return nil
}

// LoadConfig reads a TOML configuration file. Keys absent from the file
// keep their default values; a [[bands]] table replaces the default bands.
// Unknown keys are rejected.
//
// The spectral retune only touches bands named high_mid, high_shelf and
// low_mid. A custom band table without those names is valid but is never
// retuned; see [RetuneTargetsMissing].
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Bands = nil

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("master: load config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	if !md.IsDefined("bands") {
		cfg.Bands = DefaultBands()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
