package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/go-aafoa"
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

// openWAVInput opens a WAV file and checks that it carries four capsule channels.
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
	if err := aafoa.ValidateLayout(format.NumChannels, aafoa.NumOutputChannels); err != nil {
		_ = inputFile.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	// The RIFF size counts header bytes too, so frames come from the data
	// chunk size.
	if err := decoder.FwdToPCM(); err != nil || decoder.PCMChunk == nil {
		_ = inputFile.Close()
		return nil, fmt.Errorf("no PCM data in %s", path)
	}

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: pcmFrames(decoder.PCMLen(), format.NumChannels, bitDepth),
		format:      format,
	}, nil
}

// pcmFrames converts a data chunk size in bytes to whole frames.
func pcmFrames(pcmBytes int64, channels, bitDepth int) int64 {
	frameBytes := int64(channels * ((bitDepth + bitsPerByte - 1) / bitsPerByte))
	if frameBytes <= 0 {
		return 0
	}
	return pcmBytes / frameBytes
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// readFrames fills buf with up to len(buf.Data)/channels frames and
// returns the number of whole frames read. Zero means end of data.
func (w *wavInputInfo) readFrames(buf *audio.IntBuffer) (int, error) {
	buf.Data = buf.Data[:cap(buf.Data)]
	n, err := w.decoder.PCMBuffer(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to read audio data: %w", err)
	}
	return n / w.channels, nil
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates a PCM WAV file for four B-format channels.
func createWAVOutput(path string, sampleRate, bitDepth int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, aafoa.NumOutputChannels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: aafoa.NumOutputChannels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved samples.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	if len(samples) == 0 {
		return nil
	}
	w.buf.Data = samples
	if err := w.encoder.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
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

// deinterleaveInto converts interleaved int samples into per-channel buffers.
func deinterleaveInto[F aafoa.Float](data []int, channelBufs [][]F, frames int, invMaxVal float64) {
	numChannels := len(channelBufs)
	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = F(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// interleaveInto converts per-channel samples, starting at frame skip, into
// dst and returns the number of ints written. Samples are clipped to [-1, 1].
func interleaveInto[F aafoa.Float](channels [][]F, skip, frames int, dst []int, maxVal float64) int {
	numChannels := len(channels)
	written := 0
	for i := skip; i < frames; i++ {
		for ch := range numChannels {
			sample := min(max(float64(channels[ch][i]), -1), 1)
			dst[written] = int(sample * maxVal)
			written++
		}
	}
	return written
}

// encodeBuffers holds all preallocated buffers for one encoding run.
type encodeBuffers[F aafoa.Float] struct {
	intBuffer *audio.IntBuffer
	in        [][]F
	out       [][]F
	inBlock   [][]F
	outBlock  [][]F
	outInts   []int
	invMaxVal float64
	maxVal    float64
}

func newEncodeBuffers[F aafoa.Float](blockSize, inputBits, outputBits int, format *audio.Format) *encodeBuffers[F] {
	b := &encodeBuffers[F]{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, blockSize*aafoa.NumInputChannels),
			Format: format,
		},
		in:        make([][]F, aafoa.NumInputChannels),
		out:       make([][]F, aafoa.NumOutputChannels),
		inBlock:   make([][]F, aafoa.NumInputChannels),
		outBlock:  make([][]F, aafoa.NumOutputChannels),
		outInts:   make([]int, blockSize*aafoa.NumOutputChannels),
		invMaxVal: 1.0 / getMaxValue(inputBits),
		maxVal:    getMaxValue(outputBits),
	}
	for ch := range b.in {
		b.in[ch] = make([]F, blockSize)
		b.out[ch] = make([]F, blockSize)
	}
	return b
}

// block returns channel views of the first frames samples.
func (b *encodeBuffers[F]) block(frames int) (in, out [][]F) {
	for ch := range b.in {
		b.inBlock[ch] = b.in[ch][:frames]
		b.outBlock[ch] = b.out[ch][:frames]
	}
	return b.inBlock, b.outBlock
}

// silence clears the first frames input samples for latency flushing.
func (b *encodeBuffers[F]) silence(frames int) {
	for ch := range b.in {
		clear(b.in[ch][:frames])
	}
}

// progressTracker logs progress in verbose mode and forwards it to an
// optional display.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
	send         func(done, total int64)
}

func newProgressTracker(totalFrames int64, verbose bool, send func(done, total int64)) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		verbose:     verbose,
		send:        send,
	}
}

// report records currentFrames, logging every progressInterval percent.
func (p *progressTracker) report(currentFrames int64) {
	if p.send != nil {
		p.send(currentFrames, p.totalFrames)
	}
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// latencyLogger logs every latency report from the processor.
type latencyLogger struct{}

func (latencyLogger) SetLatencySamples(samples int) {
	log.Printf("Declared latency: %d samples", samples)
}
