package nfft

// Transformer runs one-shot forward solves and inverse evaluations on
// freshly built plans. Each call builds its own plan and solver, so a
// Transformer is safe for concurrent use.
type Transformer struct {
	opts []Option
}

// NewTransformer returns a Transformer whose solves use opts.
func NewTransformer(opts ...Option) *Transformer {
	return &Transformer{opts: append([]Option(nil), opts...)}
}

// Forward solves for coefficients at freqs that reproduce values at
// positions.
func (t *Transformer) Forward(positions, freqs []float64, values []complex128) ([]complex128, error) {
	plan, err := NewPlan(positions, freqs)
	if err != nil {
		return nil, err
	}

	solver, err := NewSolver(plan, t.opts...)
	if err != nil {
		return nil, err
	}

	return solver.Solve(values)
}

// Inverse evaluates coefficients at freqs on positions.
func (t *Transformer) Inverse(positions, freqs []float64, coeffs []complex128) ([]complex128, error) {
	plan, err := NewPlan(positions, freqs)
	if err != nil {
		return nil, err
	}

	return plan.Trafo(coeffs)
}
