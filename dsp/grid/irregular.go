package grid

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/cwbudde/algo-irregular/dsp/core"
)

// Structure selects the perturbation recipe of the irregular generator.
type Structure int

const (
	// StructureSlight adds Gaussian jitter to every timestamp.
	StructureSlight Structure = iota
	// StructureOutlier opens one empty gap at a break point, then jitters.
	StructureOutlier
	// StructureChangeSpacing rescales a run of timestamps, then jitters.
	StructureChangeSpacing
	// StructureAutomix combines rescaling, a gap and jitter and sorts.
	StructureAutomix
)

// DefaultSigma is the jitter standard deviation in units of dt.
const DefaultSigma = 0.05

var automixGammas = []float64{0.5, 1, 1.5, 2}

var structureNames = map[Structure]string{
	StructureSlight:        "slight",
	StructureOutlier:       "outlier",
	StructureChangeSpacing: "change+spacing",
	StructureAutomix:       "automix",
}

func (s Structure) String() string {
	if n, ok := structureNames[s]; ok {
		return n
	}

	return fmt.Sprintf("structure(%d)", int(s))
}

// Ordered reports whether the recipe guarantees ascending output. Only
// automix sorts; the other recipes keep realistic local inversions.
func (s Structure) Ordered() bool {
	return s == StructureAutomix
}

// ParseStructure resolves a recipe name such as "slight" or "change+spacing".
func ParseStructure(name string) (Structure, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range structureNames {
		if n == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown grid structure %q", core.ErrInvalidArgument, name)
}

// IrregularOption configures an Irregular generator.
type IrregularOption func(*irregularConfig)

type irregularConfig struct {
	structure Structure
	keepGrid  bool
	base      []float64
	seed      int64
	rng       *rand.Rand

	offset      float64
	sigma       float64
	epsilon     []float64
	breakPoint  *int
	emptyWindow *float64
	startPoint  *int
	endPoint    *int
	gamma       *float64
}

func defaultIrregularConfig() irregularConfig {
	return irregularConfig{
		structure: StructureSlight,
		sigma:     DefaultSigma,
		seed:      1,
	}
}

// WithStructure selects the perturbation recipe.
func WithStructure(s Structure) IrregularOption {
	return func(c *irregularConfig) {
		c.structure = s
	}
}

// WithBaseGrid supplies an explicit starting grid of length n.
func WithBaseGrid(values []float64) IrregularOption {
	base := append([]float64(nil), values...)

	return func(c *irregularConfig) {
		c.base = base
	}
}

// WithKeepGrid perturbs the base grid as-is instead of resetting it to the
// regular grid index*dt before applying the recipe.
func WithKeepGrid() IrregularOption {
	return func(c *irregularConfig) {
		c.keepGrid = true
	}
}

// WithSeed seeds the generator's random source.
func WithSeed(seed int64) IrregularOption {
	return func(c *irregularConfig) {
		c.seed = seed
	}
}

// WithRand draws all random parameters from r. It overrides WithSeed.
func WithRand(r *rand.Rand) IrregularOption {
	return func(c *irregularConfig) {
		c.rng = r
	}
}

// WithOffset sets the value the minimum timestamp is normalized to.
func WithOffset(offset float64) IrregularOption {
	return func(c *irregularConfig) {
		c.offset = offset
	}
}

// WithSigma sets the jitter standard deviation in units of dt.
func WithSigma(sigma float64) IrregularOption {
	return func(c *irregularConfig) {
		if sigma >= 0 {
			c.sigma = sigma
		}
	}
}

// WithEpsilon supplies the jitter added to each timestamp directly.
func WithEpsilon(epsilon []float64) IrregularOption {
	eps := append([]float64(nil), epsilon...)

	return func(c *irregularConfig) {
		c.epsilon = eps
	}
}

// WithBreakPoint sets the first index shifted by the outlier gap.
func WithBreakPoint(i int) IrregularOption {
	return func(c *irregularConfig) {
		c.breakPoint = &i
	}
}

// WithEmptyWindow sets the width of the outlier gap.
func WithEmptyWindow(w float64) IrregularOption {
	return func(c *irregularConfig) {
		c.emptyWindow = &w
	}
}

// WithSpacingRange sets the index range [start, end) rescaled by the
// change+spacing recipe.
func WithSpacingRange(start, end int) IrregularOption {
	return func(c *irregularConfig) {
		c.startPoint = &start
		c.endPoint = &end
	}
}

// WithGamma sets the change+spacing rescale factor.
func WithGamma(gamma float64) IrregularOption {
	return func(c *irregularConfig) {
		c.gamma = &gamma
	}
}

// IrregularParams is the fully resolved perturbation recipe. Parameters
// not supplied as options are drawn from the random source once, before
// generation begins.
type IrregularParams struct {
	Structure   Structure
	Offset      float64
	Sigma       float64
	Epsilon     []float64
	BreakPoint  int
	EmptyWindow float64
	StartPoint  int
	EndPoint    int
	Gamma       float64
}

// Irregular synthesizes non-uniform timestamps that emulate real
// acquisition: jitter, gaps and changes of cadence.
type Irregular struct {
	n      int
	dt     float64
	t      []float64
	cfg    irregularConfig
	rng    *rand.Rand
	params IrregularParams
}

// NewIrregular validates the inputs and resolves every recipe parameter.
func NewIrregular(n int, dt float64, opts ...IrregularOption) (*Irregular, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be > 0: %d", core.ErrInvalidArgument, n)
	}

	if dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive and non zero: %f", core.ErrInvalidArgument, dt)
	}

	cfg := defaultIrregularConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if _, ok := structureNames[cfg.structure]; !ok {
		return nil, fmt.Errorf("%w: unknown grid structure %d", core.ErrInvalidArgument, int(cfg.structure))
	}

	t := cfg.base
	if t == nil {
		t = regular(n, dt, 0)
	}

	if len(t) != n {
		return nil, fmt.Errorf("%w: base grid length %d != n %d", core.ErrInvalidArgument, len(t), n)
	}

	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.seed))
	}

	g := &Irregular{
		n:   n,
		dt:  dt,
		t:   append([]float64(nil), t...),
		cfg: cfg,
		rng: rng,
	}

	if err := g.resolve(); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Irregular) resolve() error {
	c := g.cfg
	p := IrregularParams{
		Structure: c.structure,
		Offset:    c.offset,
		Sigma:     c.sigma,
	}

	if c.epsilon != nil {
		if len(c.epsilon) != g.n {
			return fmt.Errorf("%w: epsilon length %d != n %d", core.ErrInvalidArgument, len(c.epsilon), g.n)
		}
		p.Epsilon = c.epsilon
	} else {
		p.Epsilon = g.normal(p.Sigma * g.dt)
	}

	p.BreakPoint = g.intOr(c.breakPoint)
	p.EmptyWindow = g.floatOr(c.emptyWindow, float64(g.n)*g.dt)
	p.StartPoint = g.intOr(c.startPoint)

	p.EndPoint = g.n
	if c.endPoint != nil {
		p.EndPoint = *c.endPoint
	}

	if c.gamma != nil {
		p.Gamma = *c.gamma
	} else {
		p.Gamma = automixGammas[g.rng.Intn(len(automixGammas))]
	}

	if p.BreakPoint < 0 || p.BreakPoint > g.n {
		return fmt.Errorf("%w: break point %d out of range [0,%d]", core.ErrInvalidArgument, p.BreakPoint, g.n)
	}

	if p.StartPoint < 0 || p.EndPoint > g.n || p.StartPoint > p.EndPoint {
		return fmt.Errorf("%w: spacing range [%d,%d) out of range for n %d", core.ErrInvalidArgument, p.StartPoint, p.EndPoint, g.n)
	}

	g.params = p

	return nil
}

func (g *Irregular) normal(std float64) []float64 {
	out := make([]float64, g.n)
	for i := range out {
		out[i] = g.rng.NormFloat64() * std
	}

	return out
}

func (g *Irregular) intOr(v *int) int {
	if v != nil {
		return *v
	}

	return g.rng.Intn(g.n)
}

func (g *Irregular) floatOr(v *float64, scale float64) float64 {
	if v != nil {
		return *v
	}

	return g.rng.Float64() * scale
}

// Params returns the resolved recipe parameters.
func (g *Irregular) Params() IrregularParams {
	p := g.params
	p.Epsilon = append([]float64(nil), p.Epsilon...)

	return p
}

// Compute applies the configured recipe and returns the timestamps. Only
// automix output is guaranteed ascending.
func (g *Irregular) Compute() []float64 {
	if !g.cfg.keepGrid {
		g.t = regular(g.n, g.dt, 0)
	}

	p := g.params

	switch p.Structure {
	case StructureOutlier:
		g.outlier(p)
	case StructureChangeSpacing:
		g.changeSpacing(p)
	case StructureAutomix:
		g.automix()
	default:
		g.base(p)
	}

	return append([]float64(nil), g.t...)
}

func (g *Irregular) addIrregularities(epsilon []float64) {
	for i := range g.t {
		g.t[i] += epsilon[i]
	}
}

// normalize shifts the whole grid so its minimum equals offset.
func (g *Irregular) normalize(offset float64) {
	min, _, _, _ := core.MinMax(g.t)
	if min == offset {
		return
	}

	shift := offset - min
	for i := range g.t {
		g.t[i] += shift
	}
}

func (g *Irregular) base(p IrregularParams) {
	g.addIrregularities(p.Epsilon)
	g.normalize(p.Offset)
}

func (g *Irregular) outlier(p IrregularParams) {
	for i := p.BreakPoint; i < g.n; i++ {
		g.t[i] += p.EmptyWindow
	}

	g.base(p)
}

func (g *Irregular) changeSpacing(p IrregularParams) {
	for i := p.StartPoint; i < p.EndPoint; i++ {
		g.t[i] *= p.Gamma
	}

	g.base(p)
}

func (g *Irregular) automix() {
	span := float64(g.n) * g.dt
	gamma := automixGammas[g.rng.Intn(len(automixGammas))]
	offset := g.rng.Float64() * span
	emptyWindow := g.rng.Float64() * span * 0.5

	sort.Float64s(g.t)

	fifth := g.n / 5
	for i := 2 * fifth; i < 4*fifth; i++ {
		g.t[i] *= gamma
	}

	for i := 3 * fifth; i < g.n; i++ {
		g.t[i] += emptyWindow
	}

	g.addIrregularities(g.normal(DefaultSigma * g.dt))
	sort.Float64s(g.t)
	g.normalize(offset)
}

func regular(n int, dt, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + float64(i)*dt
	}

	return out
}
