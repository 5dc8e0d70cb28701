package master

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-master/dsp/buffer"
	"github.com/cwbudde/algo-master/dsp/core"
	"github.com/cwbudde/algo-master/dsp/effects/dynamics"
	"github.com/cwbudde/algo-master/dsp/spectrum"
	"github.com/cwbudde/algo-master/measure/loudness"
)

// Report describes one mastering run.
type Report struct {
	SampleRate       int
	Samples          int
	InputPeak        float64 // after sanitizing, before rescaling
	SanitizedSamples int     // non-finite samples replaced by 0
	Rescaled         bool    // input peak exceeded 1 and was scaled to 0.95

	Centroid float64 // mean spectral centroid in Hz
	Bands    []Band  // band gains after the spectral retune

	Compressor     dynamics.CompressorMetrics
	LimiterMinGain float64

	Loudness          loudness.Result
	OutputPeak        float64
	PeakExceedsTarget bool // loudness normalization pushed the peak above TargetPeakDB
}

// Option configures an [Engine].
type Option func(*engineConfig) error

type engineConfig struct {
	cfg          Config
	logger       logrus.FieldLogger
	spectrumOpts []spectrum.Option
}

// WithConfig replaces the whole configuration template.
func WithConfig(cfg Config) Option {
	return func(ec *engineConfig) error {
		ec.cfg = cfg.Clone()
		return nil
	}
}

// WithTargetLUFS sets the loudness target.
func WithTargetLUFS(lufs float64) Option {
	return func(ec *engineConfig) error {
		if !core.IsFinite(lufs) {
			return fmt.Errorf("%w: target loudness must be finite: %f", ErrInvalidConfig, lufs)
		}

		ec.cfg.TargetLUFS = lufs

		return nil
	}
}

// WithTargetPeak sets the peak target in dBFS. It must be below 0.
func WithTargetPeak(db float64) Option {
	return func(ec *engineConfig) error {
		if !core.IsFinite(db) || db >= 0 {
			return fmt.Errorf("%w: target peak must be below 0 dBFS: %f", ErrInvalidConfig, db)
		}

		ec.cfg.TargetPeakDB = db

		return nil
	}
}

// WithKWeighting selects the K-weighting used for loudness normalization.
func WithKWeighting(mode loudness.KWeightingMode) Option {
	return func(ec *engineConfig) error {
		ec.cfg.KWeighting = mode
		return nil
	}
}

// WithLogger sets the logger for per-stage diagnostics. The default logger
// discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(ec *engineConfig) error {
		if l != nil {
			ec.logger = l
		}

		return nil
	}
}

// WithSpectrum sets the STFT options of the centroid analysis.
func WithSpectrum(opts ...spectrum.Option) Option {
	return func(ec *engineConfig) error {
		ec.spectrumOpts = append([]spectrum.Option(nil), opts...)
		return nil
	}
}

// Engine runs the mastering chain
//
//	validate → eq → compress → stereo → excite → limit → loudness
//
// on mono buffers. Its configuration is a template cloned for every call,
// so one Engine may be used from several goroutines.
type Engine struct {
	cfg          Config
	logger       logrus.FieldLogger
	spectrumOpts []spectrum.Option
}

// New creates an Engine from DefaultConfig and the given options.
func New(opts ...Option) (*Engine, error) {
	ec := engineConfig{cfg: DefaultConfig()}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&ec); err != nil {
			return nil, err
		}
	}

	if err := ec.cfg.Validate(); err != nil {
		return nil, err
	}

	if _, err := spectrum.NewAnalyzer(ec.spectrumOpts...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if ec.logger == nil {
		ec.logger = discardLogger()
	}

	if missing := RetuneTargetsMissing(ec.cfg.Bands); len(missing) > 0 {
		ec.logger.WithField("missing_bands", missing).Warn("Spectral retune disabled for bands absent from the configuration")
	}

	return &Engine{
		cfg:          ec.cfg,
		logger:       ec.logger,
		spectrumOpts: ec.spectrumOpts,
	}, nil
}

// Config returns a copy of the configuration template.
func (e *Engine) Config() Config {
	return e.cfg.Clone()
}

// StageNames returns the pipeline stage names in execution order.
func StageNames() []string {
	return []string{StageValidate, StageEQ, StageCompress, StageStereo, StageExcite, StageLimit, StageLoudness}
}

// Master runs the chain and returns a new buffer of the same length and
// sample rate. The input buffer is not modified.
func (e *Engine) Master(in buffer.Buffer) (buffer.Buffer, error) {
	out, _, err := e.MasterWithReport(in)
	return out, err
}

// MasterWithReport is [Engine.Master] plus a description of what every
// stage measured and applied.
func (e *Engine) MasterWithReport(in buffer.Buffer) (buffer.Buffer, Report, error) {
	if in.SampleRate <= 0 {
		return buffer.Buffer{}, Report{}, fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidInput, in.SampleRate)
	}

	if in.Len() == 0 {
		return buffer.Buffer{}, Report{}, fmt.Errorf("%w: empty buffer", ErrInvalidInput)
	}

	cfg := e.cfg.Clone()
	if err := cfg.ValidateFor(in.SampleRate); err != nil {
		return buffer.Buffer{}, Report{}, err
	}

	rep := Report{SampleRate: in.SampleRate, Samples: in.Len()}
	r := &run{cfg: cfg, spectrumOpts: e.spectrumOpts, report: &rep}
	log := e.logger.WithFields(logrus.Fields{"samples": in.Len(), "sample_rate": in.SampleRate})

	cur := in

	for _, st := range r.stages() {
		out, err := st.Apply(cur)
		if err != nil {
			log.WithFields(logrus.Fields{"stage": st.Name, "error": err}).Error("Stage failed")
			return buffer.Buffer{}, Report{}, fmt.Errorf("master: stage %s: %w", st.Name, err)
		}

		if err := checkStage(st.Name, cur, out); err != nil {
			log.WithFields(logrus.Fields{"stage": st.Name, "error": err}).Error("Stage output rejected")
			return buffer.Buffer{}, Report{}, err
		}

		e.logStage(log, st.Name, out, &rep)

		cur = out
	}

	if rep.PeakExceedsTarget {
		log.WithFields(logrus.Fields{
			"peak_db":        peakDB(rep.OutputPeak),
			"target_peak_db": cfg.TargetPeakDB,
		}).Warn("Loudness normalization raised the peak above the target")
	}

	return cur, rep, nil
}

func (e *Engine) logStage(log logrus.FieldLogger, name string, out buffer.Buffer, rep *Report) {
	fields := logrus.Fields{
		"stage":   name,
		"peak_db": peakDB(out.Peak()),
	}

	switch name {
	case StageValidate:
		fields["input_peak"] = rep.InputPeak
		fields["rescaled"] = rep.Rescaled
		fields["sanitized"] = rep.SanitizedSamples
	case StageEQ:
		fields["centroid_hz"] = rep.Centroid
	case StageCompress:
		fields["gain_reduction_db"] = rep.Compressor.GainReductionDB()
	case StageLimit:
		fields["min_gain"] = rep.LimiterMinGain
	case StageLoudness:
		fields["measured_lufs"] = rep.Loudness.MeasuredLUFS
		fields["target_lufs"] = rep.Loudness.TargetLUFS
		fields["gain_db"] = rep.Loudness.GainDB
	}

	log.WithFields(fields).Debug("Stage complete")
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
