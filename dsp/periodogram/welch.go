package periodogram

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-irregular/dsp/core"
	"github.com/cwbudde/algo-irregular/dsp/series"
)

// Segments returns the number of segments LombWelch averages for a series
// of length n split into windows of perSegment samples.
func Segments(n, perSegment int, overlap float64) (int, error) {
	starts, err := segmentStarts(n, perSegment, overlap)
	if err != nil {
		return 0, err
	}

	return len(starts), nil
}

// segmentStarts returns the first index of every segment: windows
// stepping int(perSegment*overlap) while a full window fits before the
// tail, then one window anchored at the tail.
func segmentStarts(n, perSegment int, overlap float64) ([]int, error) {
	if perSegment < 2 || perSegment > n {
		return nil, fmt.Errorf("%w: samples per segment must be in [2, %d]: %d", core.ErrInvalidArgument, n, perSegment)
	}

	step := int(float64(perSegment) * overlap)
	if step <= 0 {
		return nil, fmt.Errorf("%w: segment step must be > 0: overlap %f", core.ErrInvalidArgument, overlap)
	}

	var starts []int
	for i := 0; i < n-perSegment; i += step {
		starts = append(starts, i)
	}

	return append(starts, n-perSegment), nil
}

// LombWelch averages the tapered periodograms of segments of ts. Each
// segment is normalized by its own taper power. overlap is the step
// between segment starts as a fraction of perSegment, so 1 means
// adjacent segments and 0.5 half-overlapping ones.
func (e *Estimator) LombWelch(ts *series.TimeSeries, perSegment int, overlap float64) (*series.FrequencySeries, error) {
	times, data, err := unpack(ts)
	if err != nil {
		return nil, err
	}

	starts, err := segmentStarts(len(data), perSegment, overlap)
	if err != nil {
		return nil, err
	}

	sum := make([]float64, e.freqs.Len())

	for _, s := range starts {
		p, err := e.Periodogram(times[s:s+perSegment], data[s:s+perSegment])
		if err != nil {
			return nil, err
		}

		vecmath.AddBlockInPlace(sum, p)
	}

	vecmath.ScaleBlock(sum, sum, 1/float64(len(starts)))

	return e.wrap(sum, ts.Epoch())
}
