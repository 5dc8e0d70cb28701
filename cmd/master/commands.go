package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-master/dsp/dither"
	"github.com/cwbudde/algo-master/internal/cli"
	"github.com/cwbudde/algo-master/internal/wavio"
	"github.com/cwbudde/algo-master/master"
	"github.com/cwbudde/algo-master/measure/loudness"
)

// EngineFlags configure the mastering engine.
type EngineFlags struct {
	Config     string   `short:"c" type:"path" help:"Path to TOML config file (optional)"`
	Target     *float64 `help:"Target loudness in LUFS (overrides config)"`
	Peak       *float64 `help:"Target peak in dBFS (overrides config)"`
	KWeighting string   `name:"k-weighting" help:"K-weighting filters, reference or adaptive (overrides config)"`
	Rate       int      `default:"22050" help:"Working sample rate in Hz (0 keeps the file rate)"`
}

func (f EngineFlags) engine(log logrus.FieldLogger) (*master.Engine, error) {
	cfg := master.DefaultConfig()

	if f.Config != "" {
		loaded, err := master.LoadConfig(f.Config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	opts := []master.Option{master.WithConfig(cfg), master.WithLogger(log)}
	if f.Target != nil {
		opts = append(opts, master.WithTargetLUFS(*f.Target))
	}

	if f.Peak != nil {
		opts = append(opts, master.WithTargetPeak(*f.Peak))
	}

	if f.KWeighting != "" {
		var mode loudness.KWeightingMode
		if err := mode.UnmarshalText([]byte(f.KWeighting)); err != nil {
			return nil, err
		}

		opts = append(opts, master.WithKWeighting(mode))
	}

	return master.New(opts...)
}

// ExportFlags configure the written files.
type ExportFlags struct {
	Output   string `short:"o" default:"mastered" type:"path" help:"Output directory"`
	BitDepth int    `name:"bit-depth" default:"24" enum:"16,24,32" help:"Output bit depth (16, 24, 32)"`
	Dither   string `help:"Dither type: none, rpdf or tpdf (default tpdf at 16 bit)"`
}

func (f ExportFlags) options() ([]wavio.ExportOption, error) {
	if f.Dither == "" {
		return nil, nil
	}

	dt, err := dither.ParseDitherType(f.Dither)
	if err != nil {
		return nil, err
	}

	return []wavio.ExportOption{wavio.WithDither(dt)}, nil
}

// job masters one file into dir.
type job struct {
	engine   *master.Engine
	rate     int
	outDir   string
	bitDepth int
	export   []wavio.ExportOption
	log      logrus.FieldLogger
	out      io.Writer
	mu       *sync.Mutex
}

func (j job) process(input string) error {
	log := j.log.WithField("file", input)

	buf, err := wavio.Load(input, wavio.WithSampleRate(j.rate))
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	mastered, rep, err := j.engine.MasterWithReport(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	path, err := wavio.Export(outputPath(j.outDir, input), mastered, j.bitDepth, j.export...)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	log.WithField("output", path).Info("Mastered")

	j.mu.Lock()
	cli.PrintMastered(j.out, input, path, rep)
	j.mu.Unlock()

	return nil
}

// runJobs processes inputs with at most jobs files in flight. Failures are
// collected; one bad file does not stop the others.
func runJobs(inputs []string, jobs int, process func(string) error) error {
	if jobs < 1 {
		jobs = 1
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		sem  = make(chan struct{}, jobs)
	)

	for _, in := range inputs {
		wg.Add(1)
		sem <- struct{}{}

		go func(in string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := process(in); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(in)
	}

	wg.Wait()

	return errors.Join(errs...)
}

// outputPath maps an input file to its mastered counterpart in dir.
func outputPath(dir, input string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, name+"_mastered.wav")
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

func (e EngineFlags) newJob(g *Globals, x ExportFlags) (job, error) {
	engine, err := e.engine(g.Log)
	if err != nil {
		return job{}, err
	}

	exportOpts, err := x.options()
	if err != nil {
		return job{}, err
	}

	if err := os.MkdirAll(x.Output, 0o755); err != nil {
		return job{}, err
	}

	return job{
		engine:   engine,
		rate:     e.Rate,
		outDir:   x.Output,
		bitDepth: x.BitDepth,
		export:   exportOpts,
		log:      g.Log,
		out:      os.Stdout,
		mu:       &sync.Mutex{},
	}, nil
}

// RunCmd masters a batch of files.
type RunCmd struct {
	EngineFlags `embed:""`
	ExportFlags `embed:""`

	Jobs  int      `short:"j" default:"4" help:"Files processed concurrently"`
	Files []string `arg:"" name:"files" help:"WAV files to master" type:"existingfile"`
}

// Run implements the command.
func (c *RunCmd) Run(g *Globals) error {
	j, err := c.EngineFlags.newJob(g, c.ExportFlags)
	if err != nil {
		return err
	}

	return runJobs(c.Files, c.Jobs, j.process)
}

// AnalyzeCmd prints measurements without processing.
type AnalyzeCmd struct {
	Rate       int      `default:"0" help:"Sample rate to analyze at (0 keeps the file rate)"`
	KWeighting string   `name:"k-weighting" default:"reference" enum:"reference,adaptive" help:"K-weighting filters (reference, adaptive)"`
	Files      []string `arg:"" name:"files" help:"WAV files to analyze" type:"existingfile"`
}

// Run implements the command.
func (c *AnalyzeCmd) Run(g *Globals) error {
	var mode loudness.KWeightingMode
	if err := mode.UnmarshalText([]byte(c.KWeighting)); err != nil {
		return err
	}

	var errs []error

	for _, f := range c.Files {
		buf, err := wavio.Load(f, wavio.WithSampleRate(c.Rate))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}

		a, err := master.Analyze(buf, loudness.WithKWeighting(mode))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}

		cli.PrintAnalysis(os.Stdout, f, a)
	}

	return errors.Join(errs...)
}

// settler tracks files that are still being written. A file is ready once
// no event has touched it for quiet.
type settler struct {
	quiet   time.Duration
	pending map[string]time.Time
}

func newSettler(quiet time.Duration) *settler {
	return &settler{quiet: quiet, pending: make(map[string]time.Time)}
}

func (s *settler) touch(name string, now time.Time) {
	s.pending[name] = now
}

// ready removes and returns the settled files in name order.
func (s *settler) ready(now time.Time) []string {
	var out []string

	for name, last := range s.pending {
		if now.Sub(last) >= s.quiet {
			out = append(out, name)
			delete(s.pending, name)
		}
	}

	sort.Strings(out)

	return out
}

// WatchCmd masters files created in a directory until interrupted.
type WatchCmd struct {
	EngineFlags `embed:""`
	ExportFlags `embed:""`

	Settle time.Duration `default:"1s" help:"Quiet time after the last write before a file is mastered"`
	Dir    string        `arg:"" name:"dir" help:"Directory to watch" type:"existingdir"`
}

// Run implements the command.
func (c *WatchCmd) Run(g *Globals) error {
	j, err := c.EngineFlags.newJob(g, c.ExportFlags)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(c.Dir); err != nil {
		return err
	}

	g.Log.WithField("dir", c.Dir).Info("Watching for WAV files")

	outDir, _ := filepath.Abs(c.Output)
	pending := newSettler(c.Settle)

	tick := time.NewTicker(max(c.Settle/4, 50*time.Millisecond))
	defer tick.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) || !isWAV(event.Name) {
				continue
			}

			if abs, _ := filepath.Abs(filepath.Dir(event.Name)); abs == outDir {
				continue
			}

			pending.touch(event.Name, time.Now())

		case now := <-tick.C:
			for _, name := range pending.ready(now) {
				if err := j.process(name); err != nil {
					g.Log.WithError(err).WithField("file", name).Error("Mastering failed")
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			g.Log.WithError(err).Warn("Watcher error")
		}
	}
}
