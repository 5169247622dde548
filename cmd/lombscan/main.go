// Command lombscan prints the Lomb-Scargle spectrum of an irregularly
// sampled signal.
//
// The signal is read from a two-column "time,value" CSV file, or
// synthesized on an irregular grid when no file is given.
//
// Usage:
//
//	lombscan [flags] [file.csv]
//
// Examples:
//
//	lombscan -n 500 -dt 0.1 -sines 1.5,3.2
//	lombscan -structure automix -segment 200 -overlap 0.5
//	lombscan -method nfft -v measurements.csv
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/grid"
	"github.com/cwbudde/algo-irregular/dsp/lombscargle"
	"github.com/cwbudde/algo-irregular/dsp/periodogram"
	"github.com/cwbudde/algo-irregular/dsp/regression"
	"github.com/cwbudde/algo-irregular/dsp/series"
	"github.com/cwbudde/algo-irregular/dsp/window"
	frequencystats "github.com/cwbudde/algo-irregular/stats/frequency"
	timestats "github.com/cwbudde/algo-irregular/stats/time"
)

type options struct {
	input     string
	n         int
	dt        float64
	structure string
	seed      int64
	sines     []float64
	noise     float64
	spp       float64
	fmax      float64
	norm      string
	taper     string
	segment   int
	overlap   float64
	peaks     int
	method    string
	verbose   bool
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if err := run(os.Args[1:], os.Stdout, log); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		log.WithError(err).Error("lombscan failed")
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("lombscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.n, "n", 500, "number of synthesized samples")
	fs.Float64Var(&opts.dt, "dt", 0.1, "nominal sample spacing in seconds")
	fs.StringVar(&opts.structure, "structure", "slight", "irregular grid recipe (slight, outlier, change+spacing, automix)")
	fs.Int64Var(&opts.seed, "seed", 1, "random seed for grid and noise")
	sines := fs.String("sines", "1.5", "comma separated sine frequencies in Hz")
	fs.Float64Var(&opts.noise, "noise", 0.2, "gaussian noise standard deviation")
	fs.Float64Var(&opts.spp, "spp", grid.DefaultSamplesPerPeak, "frequency grid samples per peak")
	fs.Float64Var(&opts.fmax, "fmax", 0, "maximum frequency in Hz (0 = twice the average Nyquist)")
	fs.StringVar(&opts.norm, "norm", "psd", "normalization (standard, model, log, psd)")
	fs.StringVar(&opts.taper, "taper", "tukey", "taper window (rectangular, hann, hamming, blackman, tukey, cosine, welch)")
	fs.IntVar(&opts.segment, "segment", 0, "samples per segment; > 0 averages segments (Lomb-Welch)")
	fs.Float64Var(&opts.overlap, "overlap", 1, "segment step as a fraction of -segment")
	fs.IntVar(&opts.peaks, "peaks", 5, "number of peaks to print")
	fs.StringVar(&opts.method, "method", "", "also round-trip the series through a conversion (regression, nfft)")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lombscan [flags] [file.csv]\n\n")
		fmt.Fprintf(stderr, "Prints the Lomb-Scargle spectrum of an irregularly sampled signal.\n")
		fmt.Fprintf(stderr, "Without a file, a noisy sum of sines is synthesized.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() > 1 {
		return opts, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}

	opts.input = fs.Arg(0)

	for _, s := range strings.Split(*sines, ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid sine frequency %q: %w", s, err)
		}

		opts.sines = append(opts.sines, f)
	}

	return opts, nil
}

func run(args []string, stdout io.Writer, log *logrus.Logger) error {
	opts, err := parseFlags(args, log.Out)
	if err != nil {
		return err
	}

	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	norm, err := lombscargle.ParseNormalization(opts.norm)
	if err != nil {
		return err
	}

	taper, err := window.Parse(opts.taper)
	if err != nil {
		return err
	}

	ts, err := load(opts)
	if err != nil {
		return err
	}

	gs := timestats.FromGrid(ts.Times())
	log.WithFields(logrus.Fields{
		"samples":  gs.Length,
		"duration": gs.Duration,
		"ordered":  gs.Ordered,
		"jitter":   gs.Jitter,
	}).Debug("loaded series")

	var freqOpts []grid.FrequencyOption
	freqOpts = append(freqOpts, grid.WithSamplesPerPeak(opts.spp))
	if opts.fmax > 0 {
		freqOpts = append(freqOpts, grid.WithMaximumFrequency(opts.fmax))
	}

	freqs, err := grid.FrequenciesFromTimes(ts.Times(), freqOpts...)
	if err != nil {
		return err
	}

	est, err := periodogram.New(freqs,
		periodogram.WithNormalization(norm),
		periodogram.WithTaper(taper),
	)
	if err != nil {
		return err
	}

	var spectrum *series.FrequencySeries
	if opts.segment > 0 {
		segments, err := periodogram.Segments(ts.Len(), opts.segment, opts.overlap)
		if err != nil {
			return err
		}

		log.WithField("segments", segments).Debug("averaging segments")

		spectrum, err = est.LombWelch(ts, opts.segment, opts.overlap)
		if err != nil {
			return err
		}
	} else {
		spectrum, err = est.LombScargle(ts)
		if err != nil {
			return err
		}
	}

	fstats, err := frequencystats.FromSeries(spectrum)
	if err != nil {
		return err
	}

	power, err := spectrum.Data().Float64s()
	if err != nil {
		return err
	}

	peaks, err := frequencystats.Peaks(power, freqs.Values(), opts.peaks)
	if err != nil {
		return err
	}

	if err := printReport(stdout, gs, freqs, fstats, peaks); err != nil {
		return err
	}

	if opts.method == "" {
		return nil
	}

	method, err := series.ParseMethod(opts.method)
	if err != nil {
		return err
	}

	rms, err := roundTrip(ts, method, log)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "\nRound trip (%s): rms error %.6g\n", method, rms)

	return err
}

// load reads opts.input, or synthesizes a series when it is empty.
func load(opts options) (*series.TimeSeries, error) {
	if opts.input == "" {
		return synthesize(opts)
	}

	f, err := os.Open(opts.input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readSeries(f)
}

func synthesize(opts options) (*series.TimeSeries, error) {
	structure, err := grid.ParseStructure(opts.structure)
	if err != nil {
		return nil, err
	}

	times, err := grid.NewIrregularTimes(opts.n, opts.dt, grid.WithStructure(structure), grid.WithSeed(opts.seed))
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.seed + 1))

	data := make([]float64, opts.n)
	for i := range data {
		data[i] = opts.noise * rng.NormFloat64()

		t := times.At(i)
		for _, f := range opts.sines {
			data[i] += math.Sin(2 * math.Pi * f * t)
		}
	}

	return series.NewRealTimeSeries(data, times)
}

// readSeries parses "time,value" records. Lines starting with '#' are
// skipped, as is a header whose first field is not numeric.
func readSeries(r io.Reader) (*series.TimeSeries, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var times, values []float64

	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		t, errT := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		v, errV := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)

		if errT != nil || errV != nil {
			if line == 1 && errT != nil {
				continue
			}

			return nil, fmt.Errorf("record %d: invalid sample %q", line, rec)
		}

		times = append(times, t)
		values = append(values, v)
	}

	tg, err := grid.NewTimes(times, grid.UnknownSpacing)
	if err != nil {
		return nil, err
	}

	return series.NewRealTimeSeries(values, tg)
}

func roundTrip(ts *series.TimeSeries, method series.Method, log *logrus.Logger) (float64, error) {
	conv := series.ConvertOptions{
		Method: method,
		Times:  ts.Times(),
		Logger: log,
	}

	if method == series.MethodRegression {
		freqs, err := grid.FrequenciesFromTimes(ts.Times(),
			grid.WithSamplesPerPeak(1),
			grid.WithMinimumFrequency(1/ts.Duration()),
			grid.WithNyquistFactor(1),
		)
		if err != nil {
			return 0, err
		}

		conv.Regressor = regression.NewRegressor()
		conv.Frequencies = freqs
	}

	fs, err := ts.ToFrequencySeries(conv)
	if err != nil {
		return 0, err
	}

	back, err := fs.ToTimeSeries(conv)
	if err != nil {
		return 0, err
	}

	want, err := ts.Data().Float64s()
	if err != nil {
		return 0, err
	}

	got, err := back.Data().Float64s()
	if err != nil {
		return 0, err
	}

	return floats.Distance(want, got, 2) / math.Sqrt(float64(len(want))), nil
}

func printReport(w io.Writer, gs timestats.Stats, freqs *grid.Frequencies, fs frequencystats.Stats, peaks []frequencystats.Peak) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Samples\tDuration [s]\tMean dt [s]\tJitter\tMax gap [s]\tBins\n")
	fmt.Fprintf(tw, "-------\t------------\t-----------\t------\t-----------\t----\n")
	fmt.Fprintf(tw, "%d\t%.4f\t%.6f\t%.4f\t%.4f\t%d\n",
		gs.Length, gs.Duration, gs.MeanSpacing, gs.Jitter, gs.MaxSpacing, freqs.Len())
	fmt.Fprintf(tw, "\nCentroid [Hz]\tSpread [Hz]\tFlatness\tRolloff [Hz]\tBW [Hz]\n")
	fmt.Fprintf(tw, "-------------\t-----------\t--------\t------------\t-------\n")
	fmt.Fprintf(tw, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
		fs.Centroid, fs.Spread, fs.Flatness, fs.Rolloff, fs.Bandwidth)
	fmt.Fprintf(tw, "\nPeak\tFrequency [Hz]\tPower\tPower [dB]\n")
	fmt.Fprintf(tw, "----\t--------------\t-----\t----------\n")

	for i, p := range peaks {
		fmt.Fprintf(tw, "%d\t%.4f\t%.6g\t%.2f\n", i+1, p.Freq, p.Power, core.LinearPowerToDB(p.Power))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
