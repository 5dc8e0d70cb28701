// Package wavio loads PCM WAV files into mono buffers at the mastering
// sample rate and writes mastered buffers back as PCM WAV.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-master/dsp/buffer"
	"github.com/cwbudde/algo-master/dsp/dither"
	"github.com/cwbudde/algo-master/dsp/resample"
)

// DefaultSampleRate is the rate Load converts to unless configured otherwise.
const DefaultSampleRate = 22050

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

var (
	// ErrUnsupportedFormat reports a WAV file this package cannot decode.
	ErrUnsupportedFormat = errors.New("wavio: unsupported format")
	// ErrUnsupportedBitDepth reports an export bit depth other than 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("wavio: unsupported bit depth")
)

// LoadOption configures [Load] and [Decode].
type LoadOption func(*loadConfig)

type loadConfig struct {
	sampleRate int
	quality    resample.Quality
}

// WithSampleRate sets the output rate. 0 keeps the file's native rate.
func WithSampleRate(rate int) LoadOption {
	return func(c *loadConfig) {
		if rate >= 0 {
			c.sampleRate = rate
		}
	}
}

// WithResampleQuality selects the resampler quality used for rate conversion.
func WithResampleQuality(q resample.Quality) LoadOption {
	return func(c *loadConfig) {
		c.quality = q
	}
}

// Load decodes the WAV file at path, averages its channels to mono and
// converts it to the configured sample rate.
func Load(path string, opts ...LoadOption) (buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return buffer.Buffer{}, fmt.Errorf("wavio: open %s: %w", path, err)
	}
	defer f.Close()

	b, err := Decode(f, opts...)
	if err != nil {
		return buffer.Buffer{}, fmt.Errorf("wavio: %s: %w", path, err)
	}

	return b, nil
}

// Decode is [Load] for an already opened stream.
func Decode(r io.ReadSeeker, opts ...LoadOption) (buffer.Buffer, error) {
	cfg := loadConfig{sampleRate: DefaultSampleRate, quality: resample.QualityBalanced}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return buffer.Buffer{}, fmt.Errorf("%w: not a WAV file", ErrUnsupportedFormat)
	}

	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		return buffer.Buffer{}, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}

	switch d.BitDepth {
	case 16, 24, 32:
	default:
		return buffer.Buffer{}, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, d.BitDepth)
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return buffer.Buffer{}, fmt.Errorf("wavio: decode: %w", err)
	}

	channels := pcm.Format.NumChannels
	rate := pcm.Format.SampleRate

	if channels <= 0 || rate <= 0 {
		return buffer.Buffer{}, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedFormat, channels, rate)
	}

	mono := downmix(pcm.Data, channels, int(d.BitDepth))

	if cfg.sampleRate == 0 || cfg.sampleRate == rate {
		return buffer.FromSlice(mono, rate), nil
	}

	conv, err := resample.Convert(mono, rate, cfg.sampleRate, resample.WithQuality(cfg.quality))
	if err != nil {
		return buffer.Buffer{}, fmt.Errorf("wavio: resample %d -> %d Hz: %w", rate, cfg.sampleRate, err)
	}

	return buffer.FromSlice(conv, cfg.sampleRate), nil
}

// downmix averages interleaved integer frames and scales them to ±1.
func downmix(data []int, channels, bitDepth int) []float64 {
	frames := len(data) / channels
	scale := 1 / (float64(int64(1)<<(bitDepth-1)) * float64(channels))

	out := make([]float64, frames)
	for i := range out {
		sum := 0
		for c := range channels {
			sum += data[i*channels+c]
		}

		out[i] = float64(sum) * scale
	}

	return out
}

// ExportOption configures [Export] and [Encode].
type ExportOption func(*exportConfig)

type exportConfig struct {
	dither    dither.DitherType
	ditherSet bool
	seed      uint64
}

// WithDither selects the dither applied before quantization. The default
// is TPDF at 16 bit and none at higher depths.
func WithDither(dt dither.DitherType) ExportOption {
	return func(c *exportConfig) {
		c.dither = dt
		c.ditherSet = true
	}
}

// WithDitherSeed seeds the dither noise.
func WithDitherSeed(seed uint64) ExportOption {
	return func(c *exportConfig) {
		c.seed = seed
	}
}

// Export writes b as a mono PCM WAV file with the given bit depth (16, 24
// or 32) and returns path. Samples beyond full scale are clipped.
func Export(path string, b buffer.Buffer, bitDepth int, opts ...ExportOption) (string, error) {
	if err := checkBitDepth(bitDepth); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("wavio: create %s: %w", path, err)
	}

	if err := Encode(f, b, bitDepth, opts...); err != nil {
		f.Close()
		os.Remove(path)

		return "", fmt.Errorf("wavio: %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("wavio: close %s: %w", path, err)
	}

	return path, nil
}

// Encode is [Export] for an already opened stream.
func Encode(w io.WriteSeeker, b buffer.Buffer, bitDepth int, opts ...ExportOption) error {
	if err := checkBitDepth(bitDepth); err != nil {
		return err
	}

	if b.SampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", b.SampleRate)
	}

	cfg := exportConfig{dither: dither.DitherNone}
	if bitDepth == 16 {
		cfg.dither = dither.DitherTriangular
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	q, err := dither.NewQuantizer(float64(b.SampleRate),
		dither.WithBitDepth(bitDepth),
		dither.WithDitherType(cfg.dither),
		dither.WithSeed(cfg.seed),
	)
	if err != nil {
		return err
	}

	data := make([]int, b.Len())
	q.ProcessBlock(data, b.Samples)

	enc := wav.NewEncoder(w, b.SampleRate, bitDepth, 1, wavFormatPCM)

	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: b.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}

	return nil
}

func checkBitDepth(bits int) error {
	switch bits {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
}
