package periodogram

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-irregular/dsp/array"
	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/grid"
	"github.com/cwbudde/algo-irregular/dsp/lombscargle"
	"github.com/cwbudde/algo-irregular/dsp/series"
	"github.com/cwbudde/algo-irregular/dsp/window"
)

// Kernel computes periodogram power at strictly positive frequencies. It
// is satisfied by *lombscargle.Kernel.
type Kernel interface {
	Power(freqs, times, data []float64, norm lombscargle.Normalization) ([]float64, error)
}

// Option configures an Estimator.
type Option func(*config)

type config struct {
	kernel     Kernel
	norm       lombscargle.Normalization
	taper      window.Type
	taperAlpha float64
}

func defaultConfig() config {
	return config{
		kernel:     lombscargle.New(),
		norm:       lombscargle.NormalizationPSD,
		taper:      window.TypeTukey,
		taperAlpha: window.DefaultTukeyAlpha,
	}
}

// WithKernel replaces the Lomb-Scargle kernel.
func WithKernel(k Kernel) Option {
	return func(c *config) {
		if k != nil {
			c.kernel = k
		}
	}
}

// WithNormalization selects the kernel normalization.
func WithNormalization(n lombscargle.Normalization) Option {
	return func(c *config) {
		c.norm = n
	}
}

// WithTaper selects the window applied before the kernel. The default is
// a Tukey window.
func WithTaper(t window.Type) Option {
	return func(c *config) {
		c.taper = t
	}
}

// WithTaperAlpha sets the Tukey taper shape in [0, 1].
func WithTaperAlpha(alpha float64) Option {
	return func(c *config) {
		c.taperAlpha = alpha
	}
}

// Estimator computes power spectra on one frequency grid. It holds no
// per-call state and is safe for concurrent use when its kernel is.
type Estimator struct {
	freqs *grid.Frequencies
	cfg   config
}

// New returns an estimator for freqs.
func New(freqs *grid.Frequencies, opts ...Option) (*Estimator, error) {
	if freqs == nil {
		return nil, fmt.Errorf("%w: estimator requires a frequency grid", core.ErrPreconditionMissing)
	}

	if freqs.Len() == 1 && freqs.HasZero() {
		return nil, fmt.Errorf("%w: frequency grid holds only the zero bin", core.ErrInvalidArgument)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.taperAlpha < 0 || cfg.taperAlpha > 1 {
		return nil, fmt.Errorf("%w: tukey alpha must be in [0,1]: %f", core.ErrInvalidArgument, cfg.taperAlpha)
	}

	if _, err := window.Parse(cfg.taper.String()); err != nil {
		return nil, err
	}

	return &Estimator{freqs: freqs, cfg: cfg}, nil
}

// Frequencies returns the estimator's grid.
func (e *Estimator) Frequencies() *grid.Frequencies { return e.freqs }

// Normalization returns the kernel normalization in use.
func (e *Estimator) Normalization() lombscargle.Normalization { return e.cfg.norm }

// LombScargle returns the tapered periodogram of ts on the estimator's
// grid, anchored at the earliest timestamp.
func (e *Estimator) LombScargle(ts *series.TimeSeries) (*series.FrequencySeries, error) {
	times, data, err := unpack(ts)
	if err != nil {
		return nil, err
	}

	power, err := e.Periodogram(times, data)
	if err != nil {
		return nil, err
	}

	return e.wrap(power, ts.Epoch())
}

// PSD is LombScargle.
func (e *Estimator) PSD(ts *series.TimeSeries) (*series.FrequencySeries, error) {
	return e.LombScargle(ts)
}

// Periodogram returns the tapered, taper-power normalized power of data
// sampled at times, one value per grid frequency.
func (e *Estimator) Periodogram(times, data []float64) ([]float64, error) {
	if len(data) == 0 || len(times) != len(data) {
		return nil, fmt.Errorf("%w: times/data must be non-empty and of equal length: %d, %d", core.ErrInvalidArgument, len(times), len(data))
	}

	taper := window.Generate(e.cfg.taper, len(data), window.WithAlpha(e.cfg.taperAlpha))

	w, err := window.MeanSquare(taper)
	if err != nil {
		return nil, fmt.Errorf("taper: %w", err)
	}

	tapered, err := window.ApplyCoefficients(data, taper)
	if err != nil {
		return nil, fmt.Errorf("taper: %w", err)
	}

	power, err := e.power(times, tapered)
	if err != nil {
		return nil, err
	}

	vecmath.ScaleBlock(power, power, 1/w)

	return power, nil
}

// power evaluates the kernel on every non-zero grid frequency and fills the
// zero bin, if any, from the shorter side.
func (e *Estimator) power(times, data []float64) ([]float64, error) {
	values := e.freqs.Values()
	out := make([]float64, len(values))

	z, ok := e.freqs.ZeroIndex()
	if !ok {
		for i, f := range values {
			if f < 0 {
				values[i] = -f
			}
		}

		return e.kernel(values, times, data)
	}

	negative, positive, _ := e.freqs.SplitByZero()

	var negPower, posPower []float64

	if len(negative) > 0 {
		mags := make([]float64, len(negative))
		for i, f := range negative {
			mags[len(negative)-1-i] = -f
		}

		p, err := e.kernel(mags, times, data)
		if err != nil {
			return nil, err
		}

		negPower = p
		for i, v := range p {
			out[z-1-i] = v
		}
	}

	if len(positive) > 0 {
		p, err := e.kernel(positive, times, data)
		if err != nil {
			return nil, err
		}

		posPower = p
		copy(out[z+1:], p)
	}

	side := negPower
	if len(negPower) == 0 || (len(posPower) > 0 && len(posPower) < len(negPower)) {
		side = posPower
	}

	out[z], _, _, _ = core.MinMax(side)

	return out, nil
}

func (e *Estimator) kernel(freqs, times, data []float64) ([]float64, error) {
	return e.cfg.kernel.Power(freqs, times, data, e.cfg.norm)
}

func (e *Estimator) wrap(power []float64, epoch float64) (*series.FrequencySeries, error) {
	data, err := array.NewReal(power)
	if err != nil {
		return nil, err
	}

	return series.NewFrequencySeries(data, e.freqs, epoch)
}

func unpack(ts *series.TimeSeries) (times, data []float64, err error) {
	if ts == nil {
		return nil, nil, fmt.Errorf("%w: time series is required", core.ErrInvalidArgument)
	}

	data, err = ts.Data().Float64s()
	if err != nil {
		return nil, nil, err
	}

	return ts.Times().Values(), data, nil
}
