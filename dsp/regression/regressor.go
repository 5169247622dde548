package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/grid"
)

// DefaultAlpha is the ridge penalty. It keeps rank-deficient bases, such as
// the all-zero sine column at f = 0, solvable.
const DefaultAlpha = 1e-8

// Option configures a Regressor.
type Option func(*config)

type config struct {
	alpha float64
}

func defaultConfig() config {
	return config{alpha: DefaultAlpha}
}

// WithAlpha sets the ridge penalty. Negative values are ignored.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		if alpha >= 0 {
			c.alpha = alpha
		}
	}
}

// Regressor fits data against a cached dictionary. It is not safe for
// concurrent use while SetDictionary runs.
type Regressor struct {
	cfg  config
	dict *Dictionary
	qr   *mat.QR
}

// NewRegressor returns a regressor without a dictionary.
func NewRegressor(opts ...Option) *Regressor {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Regressor{cfg: cfg}
}

// Alpha returns the ridge penalty.
func (r *Regressor) Alpha() float64 { return r.cfg.alpha }

// SetDictionary builds and factorizes a dictionary for times and freqs.
func (r *Regressor) SetDictionary(times *grid.Times, freqs *grid.Frequencies) error {
	d, err := NewDictionary(times, freqs)
	if err != nil {
		return err
	}

	r.dict = d
	r.qr = r.factorize(d)

	return nil
}

// Valid reports whether a dictionary is set.
func (r *Regressor) Valid() bool { return r.dict != nil }

// Dictionary returns the cached dictionary or nil.
func (r *Regressor) Dictionary() *Dictionary { return r.dict }

// Frequencies returns the frequency grid of the cached dictionary or nil.
func (r *Regressor) Frequencies() *grid.Frequencies {
	if r.dict == nil {
		return nil
	}

	return r.dict.freqs
}

// Times returns the time grid of the cached dictionary or nil.
func (r *Regressor) Times() *grid.Times {
	if r.dict == nil {
		return nil
	}

	return r.dict.times
}

// Forward fits data against the cached dictionary.
func (r *Regressor) Forward(data []float64) ([]complex128, error) {
	if r.dict == nil {
		return nil, fmt.Errorf("%w: regressor has no valid dictionary", core.ErrPreconditionMissing)
	}

	return r.solve(r.dict, r.qr, data)
}

// ForwardWith fits data against d without touching the cached dictionary.
func (r *Regressor) ForwardWith(d *Dictionary, data []float64) ([]complex128, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: dictionary is required", core.ErrPreconditionMissing)
	}

	return r.solve(d, r.factorize(d), data)
}

// ForwardOn builds a dictionary for times and freqs and fits data against
// it. The cached dictionary is left unchanged.
func (r *Regressor) ForwardOn(times *grid.Times, freqs *grid.Frequencies, data []float64) ([]complex128, error) {
	d, err := NewDictionary(times, freqs)
	if err != nil {
		return nil, err
	}

	return r.ForwardWith(d, data)
}

// Inverse evaluates Re(sum_k c_k exp(2 pi i f_k t)) on the cached
// dictionary's time grid.
func (r *Regressor) Inverse(coeffs []complex128) ([]float64, error) {
	if r.dict == nil {
		return nil, fmt.Errorf("%w: regressor has no valid dictionary", core.ErrPreconditionMissing)
	}

	m, cols := r.dict.Dims()
	n := cols / 2

	if len(coeffs) != n {
		return nil, fmt.Errorf("%w: dictionary has %d frequencies, got %d coefficients", core.ErrInvalidArgument, n, len(coeffs))
	}

	beta := mat.NewVecDense(cols, nil)
	for k, c := range coeffs {
		beta.SetVec(k, real(c))
		beta.SetVec(n+k, -imag(c))
	}

	out := mat.NewVecDense(m, nil)
	out.MulVec(r.dict.matrix, beta)

	return out.RawVector().Data, nil
}

// factorize returns the QR decomposition of [A; sqrt(alpha) I].
func (r *Regressor) factorize(d *Dictionary) *mat.QR {
	m, n := d.Dims()

	aug := mat.NewDense(m+n, n, nil)
	aug.Slice(0, m, 0, n).(*mat.Dense).Copy(d.matrix)

	ridge := math.Sqrt(r.cfg.alpha)
	for i := 0; i < n; i++ {
		aug.Set(m+i, i, ridge)
	}

	var qr mat.QR
	qr.Factorize(aug)

	return &qr
}

func (r *Regressor) solve(d *Dictionary, qr *mat.QR, data []float64) ([]complex128, error) {
	m, cols := d.Dims()
	if len(data) != m {
		return nil, fmt.Errorf("%w: dictionary has %d rows, data has %d samples", core.ErrInvalidArgument, m, len(data))
	}

	rhs := mat.NewVecDense(m+cols, nil)
	for i, v := range data {
		rhs.SetVec(i, v)
	}

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, rhs); err != nil {
		return nil, fmt.Errorf("regression: least squares solve failed: %w", err)
	}

	n := cols / 2
	out := make([]complex128, n)
	for k := range out {
		out[k] = complex(beta.AtVec(k), -beta.AtVec(n+k))
	}

	return out, nil
}
