package array_test

import (
	"fmt"

	"github.com/cwbudde/algo-irregular/dsp/array"
)

func ExampleArray_Mul() {
	a, _ := array.NewReal([]float64{1, 2, 3})
	w, _ := array.NewReal([]float64{0.5, 1, 0.5})

	out, _ := a.Mul(w)
	values, _ := out.Float64s()
	fmt.Println(values)

	// Output:
	// [0.5 2 1.5]
}
