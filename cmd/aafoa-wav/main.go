// Command aafoa-wav encodes four-channel A-format WAV recordings from a
// tetrahedral microphone into first-order B-format.
//
// Usage:
//
//	aafoa-wav input.wav output.wav
//	aafoa-wav --diff-eq --coinc-eq --order fuma input.wav output.wav
//	aafoa-wav --fast --bits 16 input.wav output.wav   # float32 precision
//	aafoa-wav --config settings.json input.wav out.wav
//
// The input channels must be ordered Front, Back, Left, Right. The output is
// W, Y, Z, X (ACN) or W, X, Y, Z (FuMa) with SN3D weighting.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/tphakala/go-aafoa"
	"github.com/tphakala/go-aafoa/internal/cli"
)

const (
	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// progressSteps bounds the number of progress messages sent to the display.
	progressSteps = 200

	wavFormatPCM = 1
	bitsPerByte  = 8
)

var version = "dev"

// CLI defines the command-line interface.
type CLI struct {
	Input  string `arg:"" type:"existingfile" help:"Four-channel A-format WAV (Front, Back, Left, Right)"`
	Output string `arg:"" type:"path" help:"B-format WAV to write"`

	CombinedW bool    `name:"combined-w" help:"Derive W from all four capsules instead of Front and Back only"`
	DiffEq    bool    `name:"diff-eq" help:"Apply differential Z equalization (low shelf plus FIR)"`
	CoincEq   bool    `name:"coinc-eq" help:"Apply omni and eight diffuse-field equalization"`
	Order     string  `enum:"acn,fuma" default:"acn" help:"Output channel order (${enum})"`
	OutGain   float64 `name:"out-gain" default:"0" help:"Output gain in dB (stored, not applied)"`
	ZGain     float64 `name:"z-gain" default:"0" help:"Z gain in dB (stored, not applied)"`
	Rotation  float64 `default:"0" help:"Horizontal rotation in degrees (stored, not applied)"`

	BlockSize  int  `name:"block-size" default:"512" help:"Frames per processing block"`
	Compensate bool `negatable:"" default:"true" help:"Remove the filter latency so output aligns with input"`
	Bits       int  `enum:"0,16,24,32" default:"0" help:"Output bit depth, 0 keeps the input depth"`
	Fast       bool `help:"Use float32 precision"`

	Progress   string           `enum:"auto,always,never" default:"auto" help:"Progress display (${enum})"`
	Verbose    bool             `short:"v" help:"Verbose output"`
	CPUProfile string           `name:"cpuprofile" type:"path" help:"Write CPU profile to file (for PGO)"`
	Config     kong.ConfigFlag  `help:"Load flag values from a JSON file"`
	Version    kong.VersionFlag `help:"Print version and exit"`
}

// settings converts the flags to encoder settings.
func (c *CLI) settings() (aafoa.Settings, error) {
	order, err := aafoa.ParseOrder(c.Order)
	if err != nil {
		return aafoa.Settings{}, err
	}
	return aafoa.Settings{
		CombinedW:         c.CombinedW,
		DiffEqualization:  c.DiffEq,
		CoincEqualization: c.CoincEq,
		Order:             order,
		OutGainDB:         c.OutGain,
		ZGainDB:           c.ZGain,
		HorRotationDeg:    c.Rotation,
		CompensateLatency: c.Compensate,
	}, nil
}

// outputBits picks the output bit depth for an input depth.
func (c *CLI) outputBits(inputBits int) int {
	if c.Bits != 0 {
		return c.Bits
	}
	switch inputBits {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return inputBits
	default:
		return bitsPerSample16
	}
}

// stats summarizes one encoding run.
type stats struct {
	inputFrames  int64
	outputFrames int64
	latency      int
	elapsed      time.Duration
}

func main() {
	var c CLI
	kong.Parse(&c,
		kong.Name("aafoa-wav"),
		kong.Description("Encode tetrahedral A-format WAV recordings to first-order B-format."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON),
		kong.Vars{"version": version},
	)

	if err := run(&c); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func run(c *CLI) (err error) {
	if c.BlockSize <= 0 || c.BlockSize > aafoa.MaxBlockSize {
		return fmt.Errorf("block size must be in [1, %d], got %d", aafoa.MaxBlockSize, c.BlockSize)
	}
	settings, err := c.settings()
	if err != nil {
		return err
	}

	if c.CPUProfile != "" {
		f, err := os.Create(c.CPUProfile)
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

	if c.Verbose {
		log.Printf("Input: %s", c.Input)
		log.Printf("Output: %s", c.Output)
		log.Printf("Order: %s", settings.Order.Label())
		if c.Fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
	}

	input, err := openWAVInput(c.Input, c.Verbose)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := input.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close input file: %w", closeErr)
		}
	}()

	bits := c.outputBits(input.bitDepth)
	output, err := createWAVOutput(c.Output, input.rate, bits)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := output.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	job := &encodeJob{
		settings:   settings,
		blockSize:  c.BlockSize,
		outputBits: bits,
		verbose:    c.Verbose,
	}

	var st stats
	if showProgress(c.Progress) {
		st, err = runWithProgress(filepath.Base(c.Input), c.Fast, job, input, output)
	} else {
		st, err = dispatch(context.Background(), c.Fast, job, input, output, nil)
	}
	if err != nil {
		return err
	}

	cli.PrintSummary(os.Stdout, aafoa.Name, []cli.Field{
		{Key: "Input", Value: fmt.Sprintf("%s (%d Hz, %d-bit)", c.Input, input.rate, input.bitDepth)},
		{Key: "Output", Value: fmt.Sprintf("%s (%s, %d-bit)", c.Output, settings.Order.Label(), bits)},
		{Key: "Frames", Value: fmt.Sprintf("%d in, %d out", st.inputFrames, st.outputFrames)},
		{Key: "Latency", Value: latencyLabel(st.latency, settings.CompensateLatency)},
		{Key: "Time", Value: st.elapsed.Round(time.Millisecond).String()},
	})
	return nil
}

func latencyLabel(samples int, compensated bool) string {
	if compensated {
		return fmt.Sprintf("%d samples (compensated)", samples)
	}
	return fmt.Sprintf("%d samples", samples)
}

// showProgress decides whether to run the interactive progress display.
func showProgress(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// runWithProgress encodes on a worker goroutine while bubbletea renders
// progress. Cancelling the display stops the worker at the next block.
func runWithProgress(label string, fast bool, job *encodeJob, input *wavInputInfo, output *wavOutputWriter) (stats, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := cli.NewProgressModel(label, input.totalFrames)
	p := tea.NewProgram(model)

	step := max(input.totalFrames/progressSteps, 1)
	var lastSent int64
	send := func(done, total int64) {
		if done-lastSent < step && done < total {
			return
		}
		lastSent = done
		p.Send(cli.ProgressMsg{Done: done, Total: total})
	}

	type result struct {
		st  stats
		err error
	}
	results := make(chan result, 1)
	go func() {
		st, err := dispatch(ctx, fast, job, input, output, send)
		results <- result{st, err}
		p.Send(cli.DoneMsg{Err: err})
	}()

	final, runErr := p.Run()
	if m, ok := final.(cli.ProgressModel); ok && m.Cancelled {
		cancel()
	}
	res := <-results
	if runErr != nil && res.err == nil {
		return res.st, fmt.Errorf("progress display: %w", runErr)
	}
	return res.st, res.err
}

// dispatch runs the job at the requested precision.
func dispatch(ctx context.Context, fast bool, job *encodeJob, input *wavInputInfo, output *wavOutputWriter, send func(done, total int64)) (stats, error) {
	if fast {
		return encode[float32](ctx, job, input, output, send)
	}
	return encode[float64](ctx, job, input, output, send)
}

// encodeJob carries the per-run options shared by both precisions.
type encodeJob struct {
	settings   aafoa.Settings
	blockSize  int
	outputBits int
	verbose    bool
}

// encode streams input through a processor block by block. With latency
// compensation the first latency output frames are dropped and the same
// number of silent frames is pushed through at the end.
func encode[F aafoa.Float](ctx context.Context, job *encodeJob, input *wavInputInfo, output *wavOutputWriter, send func(done, total int64)) (stats, error) {
	start := time.Now()

	cfg := &aafoa.Config{Initial: job.settings.Parameters()}
	if job.verbose {
		cfg.LatencyReporter = latencyLogger{}
	}
	proc, err := aafoa.New[F](cfg)
	if err != nil {
		return stats{}, err
	}
	if err := proc.Prepare(float64(input.rate), job.blockSize); err != nil {
		return stats{}, fmt.Errorf("failed to prepare processor: %w", err)
	}
	defer func() { _ = proc.Release() }()

	latency := proc.LatencySamples()
	skip := 0
	if job.settings.CompensateLatency {
		skip = latency
	}

	bufs := newEncodeBuffers[F](job.blockSize, input.bitDepth, job.outputBits, input.format)
	tracker := newProgressTracker(input.totalFrames, job.verbose, send)
	st := stats{latency: latency}

	// step processes the first frames of bufs.in and writes what survives
	// the head skip.
	step := func(frames int) error {
		in, out := bufs.block(frames)
		if err := proc.ProcessBlock(in, out); err != nil {
			return fmt.Errorf("encoding failed: %w", err)
		}
		drop := min(skip, frames)
		skip -= drop
		n := interleaveInto(out, drop, frames, bufs.outInts, bufs.maxVal)
		if err := output.WriteSamples(bufs.outInts[:n]); err != nil {
			return err
		}
		st.outputFrames += int64(frames - drop)
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		frames, err := input.readFrames(bufs.intBuffer)
		if err != nil {
			return st, err
		}
		if frames == 0 {
			break
		}
		deinterleaveInto(bufs.intBuffer.Data, bufs.in, frames, bufs.invMaxVal)
		if err := step(frames); err != nil {
			return st, err
		}
		st.inputFrames += int64(frames)
		tracker.report(st.inputFrames)
	}

	if job.settings.CompensateLatency {
		for remaining := latency; remaining > 0; {
			frames := min(remaining, job.blockSize)
			bufs.silence(frames)
			if err := step(frames); err != nil {
				return st, err
			}
			remaining -= frames
		}
	}

	st.elapsed = time.Since(start)
	if job.verbose {
		log.Printf("Encoded %d frames in %v", st.inputFrames, st.elapsed)
	}
	if st.inputFrames == 0 {
		return st, errors.New("input contains no audio data")
	}
	return st, nil
}
