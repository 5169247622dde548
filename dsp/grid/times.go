package grid

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

// UnknownSpacing marks a time grid built from an existing array whose
// nominal spacing is not known.
const UnknownSpacing = -1.0

// Times is an immutable grid of sample timestamps with a nominal spacing.
//
// Timestamps are positions and are not required to be sorted; Ordered
// reports whether they are ascending.
type Times struct {
	values  []float64
	dt      float64
	ordered bool
}

// NewTimes copies values into a time grid. dt is either a positive nominal
// spacing or UnknownSpacing.
func NewTimes(values []float64, dt float64) (*Times, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: time grid must contain at least one sample", core.ErrInvalidArgument)
	}

	if dt <= 0 && dt != UnknownSpacing {
		return nil, fmt.Errorf("%w: dt must be > 0: %f", core.ErrInvalidArgument, dt)
	}

	return newTimes(append([]float64(nil), values...), dt), nil
}

// NewRegularTimes returns offset + i*dt for i in [0, n).
func NewRegularTimes(n int, dt, offset float64) (*Times, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be > 0: %d", core.ErrInvalidArgument, n)
	}

	if dt <= 0 {
		return nil, fmt.Errorf("%w: need a valid delta of times: %f", core.ErrInvalidArgument, dt)
	}

	return newTimes(regular(n, dt, offset), dt), nil
}

// NewIrregularTimes runs the irregular generator and wraps its output.
func NewIrregularTimes(n int, dt float64, opts ...IrregularOption) (*Times, error) {
	g, err := NewIrregular(n, dt, opts...)
	if err != nil {
		return nil, err
	}

	return newTimes(g.Compute(), dt), nil
}

func newTimes(values []float64, dt float64) *Times {
	return &Times{
		values:  values,
		dt:      dt,
		ordered: sort.Float64sAreSorted(values),
	}
}

// Len returns the number of timestamps.
func (t *Times) Len() int { return len(t.values) }

// At returns timestamp i.
func (t *Times) At(i int) float64 { return t.values[i] }

// Values returns a copy of the timestamps.
func (t *Times) Values() []float64 { return append([]float64(nil), t.values...) }

// Dt returns the nominal spacing, or UnknownSpacing.
func (t *Times) Dt() float64 { return t.dt }

// Ordered reports whether the timestamps are ascending.
func (t *Times) Ordered() bool { return t.ordered }

// Min returns the earliest timestamp.
func (t *Times) Min() float64 { return floats.Min(t.values) }

// Max returns the latest timestamp.
func (t *Times) Max() float64 { return floats.Max(t.values) }

// Duration returns max(t) - min(t).
func (t *Times) Duration() float64 { return t.Max() - t.Min() }

// AverageRate returns N / Duration. A single-sample grid yields +Inf.
func (t *Times) AverageRate() float64 {
	d := t.Duration()
	if d == 0 {
		return math.Inf(1)
	}

	return float64(len(t.values)) / d
}

// Shifted returns a new grid with every timestamp reduced by shift.
func (t *Times) Shifted(shift float64) *Times {
	out := make([]float64, len(t.values))
	for i, v := range t.values {
		out[i] = v - shift
	}

	return newTimes(out, t.dt)
}

// Slice returns an independent grid of timestamps [i, j).
func (t *Times) Slice(i, j int) (*Times, error) {
	if i < 0 || j > len(t.values) || i >= j {
		return nil, fmt.Errorf("%w: slice [%d:%d] out of range for length %d", core.ErrInvalidArgument, i, j, len(t.values))
	}

	return newTimes(append([]float64(nil), t.values[i:j]...), t.dt), nil
}

// Nearest returns the index of the timestamp closest to v. Ties resolve to
// the lowest index.
func (t *Times) Nearest(v float64) int {
	best := 0
	bestDist := math.Inf(1)

	for i, x := range t.values {
		if d := math.Abs(x - v); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// Append returns a new grid with v added at the end.
func (t *Times) Append(v float64) *Times {
	out := make([]float64, len(t.values), len(t.values)+1)
	copy(out, t.values)

	return newTimes(append(out, v), t.dt)
}

// Equal reports whether both grids hold identical timestamps.
func (t *Times) Equal(o *Times) bool {
	if t == nil || o == nil {
		return t == o
	}

	return len(t.values) == len(o.values) && floats.Equal(t.values, o.values)
}
