package main

import (
	"bufio"
	"encoding/binary"
	"os"
)

// WAV format constants
const (
	wavHeaderSize      = 44 // Total WAV header size in bytes
	wavRiffHeaderSize  = 36 // RIFF header size (file size - 8 = riffHeaderSize + dataSize)
	wavPCMSubchunkSize = 16 // fmt subchunk size for PCM format
	wavFileSizeOffset  = 4  // Byte offset for file size field in header
	wavDataSizeOffset  = 40 // Byte offset for data size field in header
	wavFormatPCM       = 1

	bitsPerByte         = 8
	bitShift8           = 8
	bitShift16          = 16
	wavWriterBufferSize = 256 * 1024 // 256KB write buffer
)

// fastWAVWriter writes PCM data directly without per-sample allocations.
// go-audio/wav's encoder allocates per sample, which dominates the render
// time of long files.
type fastWAVWriter struct {
	w              *bufio.Writer
	f              *os.File
	sampleRate     int
	bitDepth       int
	channels       int
	bytesPerSample int
	dataSize       uint32
	byteBuf        []byte
}

func newFastWAVWriter(f *os.File, sampleRate, bitDepth, channels int) (*fastWAVWriter, error) {
	bytesPerSample := bitDepth / bitsPerByte
	w := &fastWAVWriter{
		w:              bufio.NewWriterSize(f, wavWriterBufferSize),
		f:              f,
		sampleRate:     sampleRate,
		bitDepth:       bitDepth,
		channels:       channels,
		bytesPerSample: bytesPerSample,
		byteBuf:        make([]byte, bufferSize*channels*bytesPerSample),
	}

	// Sizes are patched in Close
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *fastWAVWriter) writeHeader() error {
	blockAlign := w.channels * w.bytesPerSample
	byteRate := w.sampleRate * blockAlign

	header := make([]byte, wavHeaderSize)
	le := binary.LittleEndian

	copy(header[0:4], "RIFF")
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	le.PutUint32(header[16:20], wavPCMSubchunkSize)
	le.PutUint16(header[20:22], wavFormatPCM)
	le.PutUint16(header[22:24], uint16(w.channels))
	le.PutUint32(header[24:28], uint32(w.sampleRate))
	le.PutUint32(header[28:32], uint32(byteRate))
	le.PutUint16(header[32:34], uint16(blockAlign))
	le.PutUint16(header[34:36], uint16(w.bitDepth))

	copy(header[36:40], "data")

	_, err := w.w.Write(header)
	return err
}

// WriteSamples encodes interleaved samples at the writer's bit depth.
func (w *fastWAVWriter) WriteSamples(samples []int) error {
	needed := len(samples) * w.bytesPerSample
	if len(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}
	buf := w.byteBuf[:needed]

	switch w.bitDepth {
	case bitsPerSample24:
		for i, s := range samples {
			o := i * 3
			buf[o] = byte(s)
			buf[o+1] = byte(s >> bitShift8)
			buf[o+2] = byte(s >> bitShift16)
		}
	case bitsPerSample32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(s)))
		}
	default:
		for i, s := range samples {
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s)))
		}
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// Close flushes the buffer and patches the RIFF and data sizes.
func (w *fastWAVWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}

	size := make([]byte, 4)
	patches := []struct {
		offset int64
		value  uint32
	}{
		{wavFileSizeOffset, wavRiffHeaderSize + w.dataSize},
		{wavDataSizeOffset, w.dataSize},
	}
	for _, p := range patches {
		binary.LittleEndian.PutUint32(size, p.value)
		if _, err := w.f.WriteAt(size, p.offset); err != nil {
			return err
		}
	}
	return nil
}
