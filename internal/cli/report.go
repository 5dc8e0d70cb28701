package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-master/master"
)

// PrintAnalysis prints the measurements of one file.
func PrintAnalysis(w io.Writer, name string, a master.Analysis) {
	fmt.Fprintln(w, TitleStyle.Render(name))
	printRow(w, "Duration:", "%.2f s @ %d Hz", a.Duration.Seconds(), a.SampleRate)
	printRow(w, "Peak:", "%s dBFS", formatDB(a.Level.Peak_dB))
	printRow(w, "RMS:", "%s dBFS", formatDB(a.Level.RMS_dB))
	printRow(w, "Crest:", "%s dB", formatDB(a.Level.CrestFactor_dB))
	printRow(w, "Loudness:", "%s LUFS", formatDB(a.LoudnessLUFS))
	printRow(w, "Integrated:", "%s LUFS", formatDB(a.IntegratedLUFS))
	printRow(w, "Centroid:", "%.0f Hz", a.Centroid)
	printRow(w, "Rolloff:", "%.0f Hz", a.Rolloff)
	printRow(w, "Flatness:", "%.3f", a.Flatness)
}

// PrintMastered prints the outcome of mastering one file.
func PrintMastered(w io.Writer, input, output string, r master.Report) {
	fmt.Fprintln(w, TitleStyle.Render(input))
	printRow(w, "Output:", "%s", output)
	printRow(w, "Centroid:", "%.0f Hz", r.Centroid)

	for _, b := range r.Bands {
		if b.GainDB != 0 {
			printRow(w, "EQ "+b.Name+":", "%+.1f dB", b.GainDB)
		}
	}

	printRow(w, "Compression:", "%.1f dB max reduction", r.Compressor.GainReductionDB())
	printRow(w, "Loudness:", "%s -> %s LUFS (%+.2f dB)",
		formatDB(r.Loudness.MeasuredLUFS), formatDB(r.Loudness.TargetLUFS), r.Loudness.GainDB)
	printRow(w, "Peak:", "%s dBFS", formatDB(20*math.Log10(r.OutputPeak)))

	if r.Rescaled {
		fmt.Fprintf(w, "  %s\n", WarnStyle.Render("input clipped above full scale and was rescaled"))
	}

	if r.PeakExceedsTarget {
		fmt.Fprintf(w, "  %s\n", WarnStyle.Render("output peak exceeds the target peak"))
	}
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%.2f", v)
}
