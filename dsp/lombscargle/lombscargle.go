package lombscargle

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

// Normalization selects how raw Lomb-Scargle power is scaled.
type Normalization int

const (
	// NormalizationStandard divides by the weighted data variance; result in [0, 1].
	NormalizationStandard Normalization = iota
	// NormalizationModel divides by the residual variance of the best-fit model.
	NormalizationModel
	// NormalizationLog returns -log(1 - standard).
	NormalizationLog
	// NormalizationPSD scales to the unnormalized periodogram (0.5 * N * power).
	NormalizationPSD
)

var normalizationNames = map[Normalization]string{
	NormalizationStandard: "standard",
	NormalizationModel:    "model",
	NormalizationLog:      "log",
	NormalizationPSD:      "psd",
}

func (n Normalization) String() string {
	if s, ok := normalizationNames[n]; ok {
		return s
	}

	return fmt.Sprintf("normalization(%d)", int(n))
}

// ParseNormalization resolves a normalization name.
func ParseNormalization(name string) (Normalization, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for n, s := range normalizationNames {
		if s == name {
			return n, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown normalization %q", core.ErrInvalidArgument, name)
}

// Method selects how the trigonometric sums are evaluated.
type Method int

const (
	// MethodAuto uses MethodFast for large, evenly spaced frequency grids.
	MethodAuto Method = iota
	// MethodDirect evaluates every sum explicitly in O(N*M).
	MethodDirect
	// MethodFast extirpolates onto a regular grid and uses an inverse FFT.
	MethodFast
)

// autoFastThreshold is the N*M product above which MethodAuto switches to
// the FFT path.
const autoFastThreshold = 1 << 14

const degenerate = 1e-14

// Option configures a Kernel.
type Option func(*config)

type config struct {
	method       Method
	fitMean      bool
	centerData   bool
	oversampling int
	mfft         int
}

func defaultConfig() config {
	return config{
		method:       MethodAuto,
		fitMean:      true,
		centerData:   true,
		oversampling: 5,
		mfft:         4,
	}
}

// WithMethod selects the evaluation method.
func WithMethod(m Method) Option {
	return func(c *config) {
		c.method = m
	}
}

// WithFitMean toggles the floating-mean model term.
func WithFitMean(fit bool) Option {
	return func(c *config) {
		c.fitMean = fit
	}
}

// WithCenterData toggles subtracting the weighted mean before fitting.
func WithCenterData(center bool) Option {
	return func(c *config) {
		c.centerData = center
	}
}

// WithOversampling sets the FFT grid oversampling of the fast method.
func WithOversampling(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.oversampling = n
		}
	}
}

// WithExtirpolationOrder sets the number of grid points each sample is
// spread over by the fast method.
func WithExtirpolationOrder(m int) Option {
	return func(c *config) {
		if m > 1 {
			c.mfft = m
		}
	}
}

// Kernel computes generalized (floating-mean) Lomb-Scargle power.
type Kernel struct {
	cfg config
}

// New returns a Kernel with the given options applied.
func New(opts ...Option) *Kernel {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Kernel{cfg: cfg}
}

// Power evaluates the periodogram of data sampled at times for each
// frequency in freqs. Frequencies must be strictly positive; callers handle
// the zero-frequency bin themselves.
func Power(freqs, times, data []float64, norm Normalization, opts ...Option) ([]float64, error) {
	return New(opts...).Power(freqs, times, data, norm)
}

// Power evaluates the periodogram; see the package-level Power.
func (k *Kernel) Power(freqs, times, data []float64, norm Normalization) ([]float64, error) {
	if len(times) == 0 || len(freqs) == 0 {
		return nil, fmt.Errorf("%w: lomb-scargle requires non-empty times and frequencies", core.ErrInvalidArgument)
	}

	if len(times) != len(data) {
		return nil, fmt.Errorf("%w: times/data length mismatch: %d != %d", core.ErrInvalidArgument, len(times), len(data))
	}

	for i, f := range freqs {
		if !(f > 0) {
			return nil, fmt.Errorf("%w: frequency must be > 0 at index %d: %f", core.ErrInvalidArgument, i, f)
		}
	}

	if _, ok := normalizationNames[norm]; !ok {
		return nil, fmt.Errorf("%w: unknown normalization %d", core.ErrInvalidArgument, int(norm))
	}

	n := float64(len(data))
	w := 1 / n

	y := append([]float64(nil), data...)
	if k.cfg.centerData || k.cfg.fitMean {
		mean := 0.0
		for _, v := range y {
			mean += w * v
		}

		for i := range y {
			y[i] -= mean
		}
	}

	yy := 0.0
	for _, v := range y {
		yy += w * v * v
	}

	sums := k.sums(freqs, times, y, w)
	power := make([]float64, len(freqs))

	for i := range freqs {
		p := sums.power(i, k.cfg.fitMean)

		switch norm {
		case NormalizationStandard:
			power[i] = p / yy
		case NormalizationModel:
			power[i] = p / (yy - p)
		case NormalizationLog:
			power[i] = -math.Log(1 - p/yy)
		case NormalizationPSD:
			power[i] = p * 0.5 * n
		}
	}

	return power, nil
}

func (k *Kernel) sums(freqs, times, y []float64, w float64) trigSums {
	useFast := false

	switch k.cfg.method {
	case MethodFast:
		useFast = true
	case MethodAuto:
		useFast = len(freqs)*len(times) >= autoFastThreshold
	}

	if useFast {
		if f0, df, ok := evenlySpaced(freqs); ok && len(freqs) > k.cfg.mfft {
			if s, err := k.fastSums(f0, df, len(freqs), times, y, w); err == nil {
				return s
			}
		}
	}

	return directSums(freqs, times, y, w)
}

// evenlySpaced reports whether freqs is f0 + df*k up to rounding.
func evenlySpaced(freqs []float64) (f0, df float64, ok bool) {
	if len(freqs) < 2 {
		return 0, 0, false
	}

	f0 = freqs[0]
	df = freqs[1] - freqs[0]
	if df <= 0 {
		return 0, 0, false
	}

	tol := 1e-9 * math.Max(math.Abs(freqs[len(freqs)-1]), df)
	for i, f := range freqs {
		if math.Abs(f-(f0+df*float64(i))) > tol {
			return 0, 0, false
		}
	}

	return f0, df, true
}

// trigSums holds the per-frequency weighted sums the periodogram is built
// from: h = w*y at omega (sh, ch), w at 2*omega (s2, c2) and w at omega (s, c).
type trigSums struct {
	sh, ch []float64
	s2, c2 []float64
	s, c   []float64
}

func (t trigSums) power(i int, fitMean bool) float64 {
	var num, den float64
	if fitMean {
		num = t.s2[i] - 2*t.s[i]*t.c[i]
		den = t.c2[i] - (t.c[i]*t.c[i] - t.s[i]*t.s[i])
	} else {
		num = t.s2[i]
		den = t.c2[i]
	}

	// 2*omega*tau in (-pi/2, pi/2], matching the arctan branch.
	var theta float64
	switch {
	case den != 0:
		theta = math.Atan(num / den)
	case num > 0:
		theta = math.Pi / 2
	case num < 0:
		theta = -math.Pi / 2
	}

	c2w, s2w := math.Cos(theta), math.Sin(theta)
	cw, sw := math.Cos(theta/2), math.Sin(theta/2)

	yc := t.ch[i]*cw + t.sh[i]*sw
	ys := t.sh[i]*cw - t.ch[i]*sw
	cc := 0.5 * (1 + t.c2[i]*c2w + t.s2[i]*s2w)
	ss := 0.5 * (1 - t.c2[i]*c2w - t.s2[i]*s2w)

	if fitMean {
		a := t.c[i]*cw + t.s[i]*sw
		b := t.s[i]*cw - t.c[i]*sw
		cc -= a * a
		ss -= b * b
	}

	// A degenerate quadrature (e.g. every sample on a node of the sine)
	// carries no power; skip it rather than dividing 0 by 0.
	p := 0.0
	if cc > degenerate {
		p += yc * yc / cc
	}

	if ss > degenerate {
		p += ys * ys / ss
	}

	return p
}
