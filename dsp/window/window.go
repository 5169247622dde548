package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeTukey
	TypeCosine
	TypeWelch
)

// DefaultTukeyAlpha is the taper ratio used by the periodogram estimators.
const DefaultTukeyAlpha = 1.0 / 8

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

var names = map[Type]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeTukey:       "tukey",
	TypeCosine:      "cosine",
	TypeWelch:       "welch",
}

// String returns the lower-case window name.
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}

	return fmt.Sprintf("window(%d)", int(t))
}

// Parse resolves a window name (case-insensitive) to its Type.
func Parse(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range names {
		if n == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown window %q", core.ErrInvalidArgument, name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{
		alpha: 1,
	}
}

// WithAlpha configures the taper ratio for Tukey windows.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
// A single-sample window is always [1].
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	if length == 1 {
		return []float64{1}
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalWindow(t, x, cfg)
	}

	return out
}

// Tukey returns Tukey (tapered cosine) window coefficients.
func Tukey(size int, alpha float64, opts ...Option) ([]float64, error) {
	if size <= 0 || alpha < 0 || alpha > 1 {
		return nil, validateTukey(size, alpha)
	}

	return Generate(TypeTukey, size, append(opts, WithAlpha(alpha))...), nil
}

// MeanSquare returns mean(w^2), the power normalization of a taper.
func MeanSquare(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sumSquares := 0.0
	for _, c := range coeffs {
		sumSquares += c * c
	}

	if sumSquares == 0 {
		return 0, errZeroPower
	}

	return sumSquares / float64(len(coeffs)), nil
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	if x < 0 {
		x = 0
	}

	if x > 1 {
		x = 1
	}

	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeTukey:
		return tukeyAt(x, cfg.alpha)
	case TypeCosine:
		return math.Sin(math.Pi * x)
	case TypeWelch:
		d := x - 0.5
		return 1 - 4*d*d
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}
