package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	evenpog "github.com/tphakala/go-evenpog"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d in %s", bitDepth, path)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	// Get total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: int64(duration.Seconds() * float64(format.SampleRate)),
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps output file and fast writer.
type wavOutputWriter struct {
	file   *os.File
	writer *fastWAVWriter
}

// createWAVOutput creates output file and writer.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	fastWriter, err := newFastWAVWriter(outputFile, sampleRate, bitDepth, channels)
	if err != nil {
		_ = outputFile.Close()
		return nil, fmt.Errorf("failed to create WAV writer: %w", err)
	}

	return &wavOutputWriter{
		file:   outputFile,
		writer: fastWriter,
	}, nil
}

// WriteSamples writes samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	return w.writer.WriteSamples(samples)
}

// Close closes the output writer and file.
func (w *wavOutputWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// renderBuffers holds all preallocated buffers for rendering.
type renderBuffers struct {
	intBuffer    *audio.IntBuffer
	channelBufs  [][]float32
	chunk        [][]float32 // channelBufs resliced to the current chunk
	outputIntBuf []int
	invMaxVal    float64
	maxVal       float64
}

// newRenderBuffers creates and preallocates all processing buffers.
func newRenderBuffers(channels, bitDepth int, format *audio.Format) *renderBuffers {
	channelBufs := make([][]float32, channels)
	for ch := range channels {
		channelBufs[ch] = make([]float32, bufferSize)
	}

	maxVal := getMaxValue(bitDepth)
	return &renderBuffers{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, bufferSize*channels),
			Format: format,
		},
		channelBufs:  channelBufs,
		chunk:        make([][]float32, channels),
		outputIntBuf: make([]int, bufferSize*channels),
		invMaxVal:    1.0 / maxVal,
		maxVal:       maxVal,
	}
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into preallocated per-channel buffers.
func deinterleaveInto(data []int, channelBufs [][]float32, numChannels, frames int, invMaxVal float64) {
	// Fast path for mono
	if numChannels == monoChannels {
		buf := channelBufs[0]
		for i := range frames {
			buf[i] = float32(float64(data[i]) * invMaxVal)
		}
		return
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		buf0, buf1 := channelBufs[0], channelBufs[1]
		for i := range frames {
			idx := i * stereoChannels
			buf0[i] = float32(float64(data[idx]) * invMaxVal)
			buf1[i] = float32(float64(data[idx+1]) * invMaxVal)
		}
		return
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = float32(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// interleaveInto converts per-channel float slices into a preallocated int
// buffer, clamping to full scale. It returns the number of elements written
// and the number of samples that had to be clamped. The effect's gain goes
// up to 24, so clipping is reported rather than hidden.
func interleaveInto(channels [][]float32, dst []int, maxVal float64) (written, clipped int) {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0, 0
	}

	numChannels := len(channels)
	frames := len(channels[0])
	if len(dst) < frames*numChannels {
		return 0, 0
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			sample := float64(channels[ch][i])
			if sample > 1.0 {
				sample = 1.0
				clipped++
			} else if sample < -1.0 {
				sample = -1.0
				clipped++
			}
			dst[base+ch] = int(sample * maxVal)
		}
	}

	return frames * numChannels, clipped
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		verbose:     verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// paramOverrides collects parameter flags so they can be applied after a
// preset has been loaded.
type paramOverrides struct {
	values map[string]float64
}

// paramFlag is a flag.Value for one effect parameter.
type paramFlag struct {
	info      evenpog.ParamInfo
	overrides *paramOverrides
}

func (f *paramFlag) String() string {
	if f.overrides == nil {
		return ""
	}
	if v, ok := f.overrides.values[f.info.ID]; ok {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(f.info.Default, 'g', -1, 64)
}

func (f *paramFlag) Set(s string) error {
	var v float64
	if f.info.Kind == evenpog.KindBool {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		if b {
			v = 1
		}
	} else {
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		v = parsed
	}
	f.overrides.values[f.info.ID] = v
	return nil
}

// IsBoolFlag lets -bypass be given without a value.
func (f *paramFlag) IsBoolFlag() bool {
	return f.info.Kind == evenpog.KindBool
}

// registerParamFlags adds one flag per effect parameter, named by its ID.
func registerParamFlags(fs *flag.FlagSet) *paramOverrides {
	o := &paramOverrides{values: make(map[string]float64)}
	for _, info := range evenpog.ParamInfos() {
		usage := fmt.Sprintf("%s, %s in [%g, %g]", info.Name, info.Kind, info.Min, info.Max)
		fs.Var(&paramFlag{info: info, overrides: o}, info.ID, usage)
	}
	return o
}

// apply writes the collected values into p in a stable order.
func (o *paramOverrides) apply(p *evenpog.Params) error {
	ids := make([]string, 0, len(o.values))
	for id := range o.values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := evenpog.SetParam(p, id, o.values[id]); err != nil {
			return fmt.Errorf("flag -%s: %w", id, err)
		}
	}
	return nil
}
