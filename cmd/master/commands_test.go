package main

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/cwbudde/algo-master/dsp/buffer"
	"github.com/cwbudde/algo-master/internal/testutil"
	"github.com/cwbudde/algo-master/internal/wavio"
	"github.com/cwbudde/algo-master/master"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		dir, input, want string
	}{
		{"out", "song.wav", filepath.Join("out", "song_mastered.wav")},
		{"out", filepath.Join("a", "b", "take.WAV"), filepath.Join("out", "take_mastered.wav")},
		{"", "noext", "noext_mastered.wav"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.dir, tt.input); got != tt.want {
			t.Fatalf("outputPath(%q, %q) = %q, want %q", tt.dir, tt.input, got, tt.want)
		}
	}
}

func TestIsWAV(t *testing.T) {
	for name, want := range map[string]bool{"a.wav": true, "b.WAV": true, "c.mp3": false, "wav": false} {
		if got := isWAV(name); got != want {
			t.Fatalf("isWAV(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestRunJobsBoundsConcurrency(t *testing.T) {
	var (
		inFlight, peak atomic.Int32
		mu             sync.Mutex
		seen           = map[string]bool{}
	)

	inputs := []string{"a", "b", "c", "d", "e", "f", "g"}

	err := runJobs(inputs, 2, func(in string) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		mu.Lock()
		seen[in] = true
		mu.Unlock()

		inFlight.Add(-1)

		return nil
	})
	if err != nil {
		t.Fatalf("runJobs: %v", err)
	}

	if peak.Load() > 2 {
		t.Fatalf("peak concurrency %d > 2", peak.Load())
	}

	if len(seen) != len(inputs) {
		t.Fatalf("processed %d of %d inputs", len(seen), len(inputs))
	}
}

func TestRunJobsCollectsErrors(t *testing.T) {
	errBad := errors.New("bad")

	err := runJobs([]string{"ok", "bad", "ok2"}, 0, func(in string) error {
		if in == "bad" {
			return errBad
		}

		return nil
	})
	if !errors.Is(err, errBad) {
		t.Fatalf("err = %v, want %v", err, errBad)
	}
}

func TestJobProcess(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tone.wav")

	tone := testutil.DeterministicSine(440, 22050, 0.5, 22050)
	if _, err := wavio.Export(in, buffer.FromSlice(tone, 22050), 16); err != nil {
		t.Fatalf("Export: %v", err)
	}

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	engine, err := master.New(master.WithLogger(logger))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out testWriter

	j := job{
		engine:   engine,
		rate:     wavio.DefaultSampleRate,
		outDir:   filepath.Join(dir, "out"),
		bitDepth: 24,
		log:      logger,
		out:      &out,
		mu:       &sync.Mutex{},
	}

	if err := j.process(in); err == nil {
		t.Fatal("expected error for a missing output directory")
	}

	j.outDir = dir
	if err := j.process(in); err != nil {
		t.Fatalf("process: %v", err)
	}

	got, err := wavio.Load(outputPath(dir, in))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Len() != len(tone) {
		t.Fatalf("len = %d, want %d", got.Len(), len(tone))
	}

	if hook.LastEntry() == nil || hook.LastEntry().Message != "Mastered" {
		t.Fatalf("last log entry = %+v", hook.LastEntry())
	}

	if out.n == 0 {
		t.Fatal("no report printed")
	}
}

type testWriter struct{ n int }

func (w *testWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

func TestSettlerWaitsForQuietFiles(t *testing.T) {
	s := newSettler(time.Second)
	t0 := time.Unix(0, 0)

	s.touch("a.wav", t0)
	s.touch("b.wav", t0.Add(500*time.Millisecond))
	s.touch("a.wav", t0.Add(800*time.Millisecond))

	steps := []struct {
		at   time.Duration
		want []string
	}{
		{1300 * time.Millisecond, nil},
		{1500 * time.Millisecond, []string{"b.wav"}},
		{1700 * time.Millisecond, nil},
		{1800 * time.Millisecond, []string{"a.wav"}},
		{5 * time.Second, nil},
	}

	for _, st := range steps {
		got := s.ready(t0.Add(st.at))
		if len(got) != len(st.want) {
			t.Fatalf("at %v: ready = %v, want %v", st.at, got, st.want)
		}

		for i := range got {
			if got[i] != st.want[i] {
				t.Fatalf("at %v: ready = %v, want %v", st.at, got, st.want)
			}
		}
	}
}
