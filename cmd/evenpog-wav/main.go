// Command evenpog-wav renders WAV audio files through the EvenPog effect.
//
// Usage:
//
//	evenpog-wav input.wav output.wav
//	evenpog-wav -slurrate 2 -gain 4 input.wav output.wav
//	evenpog-wav -preset honk.yaml -drymix 0 input.wav output.wav
//	evenpog-wav -slurrate 3 -save-preset smear.yaml input.wav out.wav
//
// Every parameter is available as a flag named by its preset ID. Flags given
// on the command line override values loaded with -preset.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	evenpog "github.com/tphakala/go-evenpog"
)

const (
	// Buffer size for processing (frames per chunk)
	bufferSize = 65536

	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%

	// CLI defaults
	minRequiredArgs = 2
	percentScale    = 100
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("evenpog-wav", flag.ContinueOnError)
	presetPath := fs.String("preset", "", "Load parameters from a YAML preset")
	savePreset := fs.String("save-preset", "", "Write the effective parameters to a YAML preset")
	tail := fs.Float64("tail", 0, "Seconds of silence appended so the delay line rings out")
	parallel := fs.Bool("parallel", true, "Enable parallel channel processing (faster for stereo/multichannel)")
	verbose := fs.Bool("v", false, "Verbose output")
	cpuprofile := fs.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	overrides := registerParamFlags(fs)

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: evenpog-wav [options] input.wav output.wav\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  evenpog-wav guitar.wav out.wav                      # Factory settings\n")
		fmt.Fprintf(out, "  evenpog-wav -slurrate 2 -bufferlength 2048 in.wav out.wav\n")
		fmt.Fprintf(out, "  evenpog-wav -preset honk.yaml -gain 6 in.wav out.wav\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Validate arguments before setting up profiling
	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return errors.New("insufficient arguments")
	}

	params := evenpog.DefaultParams()
	if *presetPath != "" {
		name, err := loadPresetFile(*presetPath, &params)
		if err != nil {
			return err
		}
		if *verbose {
			log.Printf("Preset: %s %s", *presetPath, name)
		}
	}
	if err := overrides.apply(&params); err != nil {
		return err
	}

	if *savePreset != "" {
		if err := savePresetFile(*savePreset, &params); err != nil {
			return err
		}
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := fs.Arg(0)
	outputPath := fs.Arg(1)

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		for _, info := range evenpog.ParamInfos() {
			v, _ := evenpog.GetParam(&params, info.ID)
			log.Printf("  %-18s %g", info.ID, v)
		}
		if *parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	start := time.Now()
	stats, err := renderWAV(inputPath, outputPath, &params, renderOptions{
		tailSeconds: *tail,
		parallel:    *parallel,
		verbose:     *verbose,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	fmt.Printf("Rendered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit\n", stats.sampleRate, stats.channels, stats.bitDepth)
	fmt.Printf("  %d frames in, %d frames out, %d samples clipped\n",
		stats.inputFrames, stats.outputFrames, stats.clipped)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.outputFrames)/float64(stats.sampleRate)/elapsed.Seconds())

	return nil
}

type renderOptions struct {
	tailSeconds float64
	parallel    bool
	verbose     bool
}

type renderStats struct {
	sampleRate   int
	channels     int
	bitDepth     int
	inputFrames  int64
	outputFrames int64
	clipped      int64
}

func renderWAV(inputPath, outputPath string, params evenpog.ParamSource, opts renderOptions) (stats *renderStats, err error) {
	// 1. Open and validate input
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	// 2. Create the effect, one processor per channel
	effect, err := evenpog.New(&evenpog.Config{
		SampleRate:     float64(input.rate),
		Channels:       input.channels,
		EnableParallel: opts.parallel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create effect: %w", err)
	}

	// 3. Create output writer
	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (important for WAV header updates)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	// 4. Initialize processing buffers and tracking
	buffers := newRenderBuffers(input.channels, input.bitDepth, input.format)
	stats = &renderStats{
		sampleRate: input.rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
	}
	progress := newProgressTracker(input.totalFrames, opts.verbose)

	// 5. Main processing loop
	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}

		frames := n / input.channels
		stats.inputFrames += int64(frames)

		deinterleaveInto(buffers.intBuffer.Data[:n], buffers.channelBufs, input.channels, frames, buffers.invMaxVal)
		if err := buffers.renderAndWrite(effect, params, output, frames, stats); err != nil {
			return nil, err
		}

		progress.reportIfNeeded(stats.inputFrames)
	}

	// 6. Let the delay line ring out
	tailFrames := int64(opts.tailSeconds * float64(input.rate))
	for tailFrames > 0 {
		frames := int(min(tailFrames, bufferSize))
		for ch := range buffers.channelBufs {
			clear(buffers.channelBufs[ch][:frames])
		}
		if err := buffers.renderAndWrite(effect, params, output, frames, stats); err != nil {
			return nil, err
		}
		tailFrames -= int64(frames)
	}

	return stats, nil
}

// renderAndWrite runs frames samples of every channel buffer through the
// effect and appends them to the output.
func (b *renderBuffers) renderAndWrite(effect *evenpog.Effect, params evenpog.ParamSource, output *wavOutputWriter, frames int, stats *renderStats) error {
	for ch := range b.channelBufs {
		b.chunk[ch] = b.channelBufs[ch][:frames]
	}
	if err := effect.Process(b.chunk, params); err != nil {
		return fmt.Errorf("effect processing failed: %w", err)
	}

	outputLen, clipped := interleaveInto(b.chunk, b.outputIntBuf, b.maxVal)
	stats.outputFrames += int64(frames)
	stats.clipped += int64(clipped)

	if err := output.WriteSamples(b.outputIntBuf[:outputLen]); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

func loadPresetFile(path string, params *evenpog.Params) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open preset: %w", err)
	}
	defer func() { _ = f.Close() }()

	name, err := evenpog.LoadPreset(f, params)
	if err != nil {
		return "", fmt.Errorf("preset %s: %w", path, err)
	}
	return name, nil
}

func savePresetFile(path string, params *evenpog.Params) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	name := trimExt(filepath.Base(path))
	return evenpog.SavePreset(f, name, params)
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
