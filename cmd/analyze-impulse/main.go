// Command analyze-impulse renders a unit impulse through the effect and
// prints level statistics and the octave-band energy of the response.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	evenpog "github.com/tphakala/go-evenpog"
	"github.com/tphakala/go-evenpog/internal/analysis"
)

const (
	defaultSampleRate = 44100.0
	defaultLength     = 16384 // Samples rendered after the impulse
	firstSamples      = 16    // Samples printed verbatim
	lowestBandHz      = 31.25 // Lower edge of the first octave band
	octave            = 2.0
)

func main() {
	sampleRate := flag.Float64("sample-rate", defaultSampleRate, "Sample rate in Hz")
	length := flag.Int("length", defaultLength, "Response length in samples")
	presetPath := flag.String("preset", "", "Load parameters from a YAML preset")
	slur := flag.Float64("slurrate", float64(evenpog.DefaultParams().SlurMultiplier), "Slur multiplier")
	flag.Parse()

	p := evenpog.DefaultParams()
	if *presetPath != "" {
		f, err := os.Open(*presetPath)
		if err != nil {
			log.Fatalf("Failed to open preset: %v", err)
		}
		_, err = evenpog.LoadPreset(f, &p)
		_ = f.Close()
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
	}
	// Only an explicit -slurrate overrides the preset.
	flag.Visit(func(f *flag.Flag) {
		if f.Name != evenpog.IDSlurMultiplier {
			return
		}
		if err := evenpog.SetParam(&p, evenpog.IDSlurMultiplier, *slur); err != nil {
			log.Fatal(err)
		}
	})

	impulse := make([]float32, max(*length, 1))
	impulse[0] = 1

	out, err := evenpog.ProcessMono(impulse, *sampleRate, &p)
	if err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	x := analysis.ToFloat64(out)
	stats := analysis.Measure(x)

	fmt.Println("=== Impulse Response ===")
	fmt.Printf("Length: %d samples at %g Hz\n", len(x), *sampleRate)
	fmt.Printf("Peak: %.6f at sample %d\n", stats.Peak, stats.PeakIndex)
	fmt.Printf("RMS: %.6f, Energy: %.4f, DC offset: %+.6f\n", stats.RMS, stats.Energy, stats.DCOffset)

	fmt.Println("\nFirst samples:")
	for i := range min(firstSamples, len(x)) {
		fmt.Printf("  [%2d] %+.6f\n", i, x[i])
	}

	sp, err := analysis.NewSpectrum(x, *sampleRate)
	if err != nil {
		log.Fatalf("Spectrum failed: %v", err)
	}

	fmt.Printf("\nDominant frequency: %.1f Hz\n", sp.Frequency(sp.Dominant()))
	fmt.Println("\nOctave band energy:")

	total := sp.BandEnergy(1, len(sp.Magnitudes)-1)
	nyquist := *sampleRate / 2
	for lo := lowestBandHz; lo < nyquist; lo *= octave {
		hi := min(lo*octave, nyquist)
		e := sp.BandEnergy(sp.Bin(lo), sp.Bin(hi)-1)
		share := 0.0
		if total > 0 {
			share = e / total * 100
		}
		fmt.Printf("  %7.0f - %7.0f Hz: %6.2f%%\n", lo, hi, share)
	}
}
