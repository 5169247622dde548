package nfft

import (
	"fmt"
	"math/cmplx"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

// Solver defaults.
const (
	DefaultMaxIterations = 500
	DefaultTolerance     = 0.6
)

// Option configures a Solver.
type Option func(*config)

type config struct {
	maxIterations int
	tol           float64
	logger        logrus.FieldLogger
}

func defaultConfig() config {
	return config{
		maxIterations: DefaultMaxIterations,
		tol:           DefaultTolerance,
		logger:        logrus.StandardLogger(),
	}
}

// WithMaxIterations caps the number of CGNR steps.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithTolerance sets the residual magnitude every sample must fall below.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tol = tol
		}
	}
}

// WithLogger routes the iteration-cap warning to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Solver inverts a Plan iteratively. A Solver keeps per-solve state and is
// not safe for concurrent use.
type Solver struct {
	plan *Plan
	cfg  config

	x        []complex128
	r        []complex128
	iter     int
	converge bool
}

// NewSolver binds a solver to plan.
func NewSolver(plan *Plan, opts ...Option) (*Solver, error) {
	if plan == nil {
		return nil, fmt.Errorf("%w: nfft solver requires a plan", core.ErrPreconditionMissing)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Solver{plan: plan, cfg: cfg}, nil
}

// Solve finds coefficients c with Trafo(c) ~ y. It always takes at least
// one step and stops once every residual magnitude is below the tolerance. Reaching the iteration cap is
// not an error: the warning is logged and the best estimate is returned.
func (s *Solver) Solve(y []complex128) ([]complex128, error) {
	p := s.plan
	if len(y) != p.M() {
		return nil, fmt.Errorf("%w: solver expects %d values, got %d", core.ErrInvalidArgument, p.M(), len(y))
	}

	n := p.N()
	s.x = make([]complex128, n)
	s.r = append([]complex128(nil), y...)
	s.iter = 0
	s.converge = false

	z := make([]complex128, n)
	p.adjoint(z, s.r)
	dir := append([]complex128(nil), z...)
	v := make([]complex128, p.M())
	gamma := norm2(z)

	for s.iter < s.cfg.maxIterations {
		p.trafo(v, dir)

		vv := norm2(v)
		if vv == 0 || gamma == 0 {
			break
		}

		alpha := complex(gamma/vv, 0)
		for k := range s.x {
			s.x[k] += alpha * dir[k]
		}

		for j := range s.r {
			s.r[j] -= alpha * v[j]
		}

		p.adjoint(z, s.r)
		next := norm2(z)
		beta := complex(next/gamma, 0)
		gamma = next

		for k := range dir {
			dir[k] = z[k] + beta*dir[k]
		}

		s.iter++

		if s.converged() {
			break
		}
	}

	if !s.converged() && s.iter >= s.cfg.maxIterations {
		s.cfg.logger.WithFields(logrus.Fields{
			"iterations": s.iter,
			"residual":   maxAbs(s.r),
			"tolerance":  s.cfg.tol,
		}).Warn("nfft solver reached its iteration cap before converging")
	}

	return append([]complex128(nil), s.x...), nil
}

func (s *Solver) converged() bool {
	if s.converge {
		return true
	}

	s.converge = maxAbs(s.r) < s.cfg.tol

	return s.converge
}

// Residual returns y - Trafo(c) of the last solve.
func (s *Solver) Residual() []complex128 { return append([]complex128(nil), s.r...) }

// Iterations returns the number of CGNR steps of the last solve.
func (s *Solver) Iterations() int { return s.iter }

// Converged reports whether the last solve met the tolerance.
func (s *Solver) Converged() bool { return s.converge }

func norm2(x []complex128) float64 {
	sum := 0.0
	for _, v := range x {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}

	return sum
}

func maxAbs(x []complex128) float64 {
	m := 0.0
	for _, v := range x {
		if a := cmplx.Abs(v); a > m {
			m = a
		}
	}

	return m
}
