package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/grid"
)

// Dictionary is the basis matrix of a time grid against a frequency grid.
// Row j holds cos(2 pi f_k t_j) for every k followed by sin(2 pi f_k t_j).
type Dictionary struct {
	times  *grid.Times
	freqs  *grid.Frequencies
	matrix *mat.Dense
}

// NewDictionary builds the M x 2N basis for M timestamps and N frequencies.
func NewDictionary(times *grid.Times, freqs *grid.Frequencies) (*Dictionary, error) {
	if times == nil || freqs == nil {
		return nil, fmt.Errorf("%w: dictionary needs both a time and a frequency grid", core.ErrPreconditionMissing)
	}

	m, n := times.Len(), freqs.Len()
	a := mat.NewDense(m, 2*n, nil)

	for j := 0; j < m; j++ {
		t := times.At(j)
		for k := 0; k < n; k++ {
			s, c := math.Sincos(2 * math.Pi * freqs.At(k) * t)
			a.Set(j, k, c)
			a.Set(j, n+k, s)
		}
	}

	return &Dictionary{times: times, freqs: freqs, matrix: a}, nil
}

// Times returns the time grid the dictionary was built on.
func (d *Dictionary) Times() *grid.Times { return d.times }

// Frequencies returns the frequency grid the dictionary was built on.
func (d *Dictionary) Frequencies() *grid.Frequencies { return d.freqs }

// Matrix returns a read-only view of the basis.
func (d *Dictionary) Matrix() mat.Matrix { return d.matrix }

// Dims returns the number of rows (timestamps) and columns (2 * frequencies).
func (d *Dictionary) Dims() (rows, cols int) { return d.matrix.Dims() }

// Project returns A^T y, the correlation of y with every basis column.
func (d *Dictionary) Project(y []float64) ([]float64, error) {
	m, n := d.matrix.Dims()
	if len(y) != m {
		return nil, fmt.Errorf("%w: dictionary has %d rows, data has %d samples", core.ErrInvalidArgument, m, len(y))
	}

	out := mat.NewVecDense(n, nil)
	out.MulVec(d.matrix.T(), mat.NewVecDense(m, append([]float64(nil), y...)))

	return out.RawVector().Data, nil
}
