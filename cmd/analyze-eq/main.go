// Command analyze-eq prints the magnitude response of the equalization
// filters designed for a sample rate next to their target curves.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/tphakala/go-aafoa/internal/cli"
	"github.com/tphakala/go-aafoa/internal/engine"
	"github.com/tphakala/go-aafoa/internal/filter"
)

// CLI defines the command-line interface.
type CLI struct {
	Rates []float64 `name:"rate" default:"44100,48000,96000" help:"Sample rates in Hz"`
	Freqs []float64 `default:"50,100,500,1000,2500,4000,6000,8000,10000,12000,14000,16000,20000" help:"Frequencies to evaluate in Hz"`
}

// row is the response of every equalizer at one frequency, in dB.
type row struct {
	hz                  float64
	shelf, zFIR, zTotal float64
	zTarget             float64
	eight, eightTarget  float64
	omni, omniTarget    float64
}

func main() {
	var c CLI
	kong.Parse(&c,
		kong.Name("analyze-eq"),
		kong.Description("Print equalization filter responses for one sample rate."),
		kong.UsageOnError(),
	)
	if err := run(os.Stdout, c.Rates, c.Freqs); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func run(w io.Writer, rates, freqs []float64) error {
	sets, err := designAll(rates)
	if err != nil {
		return err
	}
	for i, set := range sets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		report(w, set, freqs)
	}
	return nil
}

// designAll designs one coefficient set per rate in parallel, keeping the
// order of rates.
func designAll(rates []float64) ([]*filter.Set, error) {
	sets := make([]*filter.Set, len(rates))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, sr := range rates {
		g.Go(func() error {
			set, err := filter.DesignSet(sr)
			if err != nil {
				return fmt.Errorf("%.0f Hz: %w", sr, err)
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

func report(w io.Writer, set *filter.Set, freqs []float64) {
	cli.PrintSummary(w, "=== Equalization Filters ===", []cli.Field{
		{Key: "Sample rate", Value: fmt.Sprintf("%.0f Hz", set.SampleRate)},
		{Key: "FIR length", Value: fmt.Sprintf("%d taps", set.Len())},
		{Key: "Group delay", Value: fmt.Sprintf("%d samples (%.3f ms)", set.Centre, filter.GroupDelaySeconds*1e3)},
	})

	fmt.Fprintf(w, "\n%8s %8s %8s %8s %8s | %8s %8s | %8s %8s\n",
		"Hz", "shelf", "zFIR", "zTotal", "target", "eight", "target", "omni", "target")
	for _, r := range analyze(set, freqs) {
		fmt.Fprintf(w, "%8.0f %8.2f %8.2f %8.2f %8.2f | %8.2f %8.2f | %8.2f %8.2f\n",
			r.hz, r.shelf, r.zFIR, r.zTotal, r.zTarget, r.eight, r.eightTarget, r.omni, r.omniTarget)
	}
}

// analyze evaluates the set at each frequency below Nyquist.
func analyze(set *filter.Set, freqs []float64) []row {
	zTable, eightTable, omniTable := filter.Tables()
	shelf := engine.NewLowShelf[float64](set.SampleRate)
	nyquist := set.SampleRate / 2

	rows := make([]row, 0, len(freqs))
	for _, hz := range freqs {
		if hz <= 0 || hz >= nyquist {
			continue
		}
		norm := hz / set.SampleRate
		zMag, _ := filter.ResponseAt(set.ZDiff, norm)
		eightMag, _ := filter.ResponseAt(set.CoincEight, norm)
		omniMag, _ := filter.ResponseAt(set.CoincOmni, norm)
		shelfMag := shelf.Response(hz, set.SampleRate)

		rows = append(rows, row{
			hz:          hz,
			shelf:       filter.MagnitudeDB(shelfMag),
			zFIR:        filter.MagnitudeDB(zMag),
			zTotal:      filter.MagnitudeDB(shelfMag * zMag),
			zTarget:     filter.LevelDB(zTable, hz),
			eight:       filter.MagnitudeDB(eightMag),
			eightTarget: filter.LevelDB(eightTable, hz),
			omni:        filter.MagnitudeDB(omniMag),
			omniTarget:  filter.LevelDB(omniTable, hz),
		})
	}
	return rows
}
