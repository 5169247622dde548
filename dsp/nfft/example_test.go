package nfft_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-irregular/dsp/nfft"
)

func ExampleSolver_Solve() {
	positions := []float64{0, 1.1, 1.9, 3.05}
	freqs := nfft.ShiftedFFTFreq(4, 1)

	plan, err := nfft.NewPlan(positions, freqs)
	if err != nil {
		panic(err)
	}

	values, _ := plan.Trafo([]complex128{0, 0, 1, 0})

	solver, err := nfft.NewSolver(plan, nfft.WithTolerance(1e-10))
	if err != nil {
		panic(err)
	}

	coeffs, err := solver.Solve(values)
	if err != nil {
		panic(err)
	}

	for _, c := range coeffs {
		fmt.Printf("%.3f ", cmplx.Abs(c))
	}
	fmt.Println()
	// Output: 0.000 0.000 1.000 0.000
}
