package loudness

// MeterConfig defines how loudness is measured.
type MeterConfig struct {
	KWeighting KWeightingMode
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns the reference K-weighting configuration.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		KWeighting: KWeightingReference,
	}
}

// WithKWeighting selects the K-weighting filter set.
func WithKWeighting(mode KWeightingMode) MeterOption {
	return func(cfg *MeterConfig) {
		if mode.valid() {
			cfg.KWeighting = mode
		}
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
