package regression_test

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-irregular/dsp/grid"
	"github.com/cwbudde/algo-irregular/dsp/regression"
)

func ExampleRegressor_Forward() {
	times, _ := grid.NewTimes([]float64{0, 0.3, 0.9, 1.4, 2.2, 2.5, 3.1, 3.9}, grid.UnknownSpacing)
	freqs, _ := grid.NewFrequencies([]float64{0.25, 0.5})

	data := make([]float64, times.Len())
	for i := range data {
		data[i] = 3 * math.Cos(2*math.Pi*0.5*times.At(i))
	}

	r := regression.NewRegressor()
	if err := r.SetDictionary(times, freqs); err != nil {
		panic(err)
	}

	coeffs, err := r.Forward(data)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.2f %.2f\n", cmplx.Abs(coeffs[0]), cmplx.Abs(coeffs[1]))
	// Output: 0.00 3.00
}
