package window

import (
	"fmt"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

var (
	errEmptyCoeffs      = fmt.Errorf("%w: window coefficients must not be empty", core.ErrInvalidArgument)
	errZeroPower        = fmt.Errorf("%w: window power is zero", core.ErrInvalidArgument)
	errMismatchedLength = fmt.Errorf("%w: samples and coefficients must have same length", core.ErrInvalidArgument)
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: window size must be > 0: %d", core.ErrInvalidArgument, size)
	}
	return nil
}

func validateTukey(size int, alpha float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("%w: tukey alpha must be in [0,1]: %f", core.ErrInvalidArgument, alpha)
	}
	return nil
}
