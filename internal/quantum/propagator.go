package quantum

// coefficients encode the implicit (b) and explicit (e) tridiagonal operators
// and the forward elimination terms. Off-diagonal entries are all 1.
// They are read-only once built and may be shared between propagators.
type coefficients struct {
	b, e        []complex128
	beta, gamma []complex128
}

// Option configures a Propagator.
type Option func(*Propagator)

// WithEnergyScale multiplies every potential value by e when building the
// operators. The default is 1.
func WithEnergyScale(e float64) Option {
	return func(p *Propagator) {
		p.scale = e
	}
}

// Propagator advances wave functions on a fixed grid with the Crank-Nicolson
// scheme. Initialize must be called before any Update.
type Propagator struct {
	grid    Grid
	scale   float64
	coef    *coefficients
	scratch []complex128
}

// NewPropagator returns an uninitialized propagator bound to g.
func NewPropagator(g Grid, opts ...Option) *Propagator {
	p := &Propagator{
		grid:    g,
		scale:   1,
		scratch: make([]complex128, g.N),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Propagator) Grid() Grid { return p.grid }

// Ready reports whether Initialize has been called.
func (p *Propagator) Ready() bool { return p.coef != nil }

// Clone returns a propagator sharing p's coefficients with a scratch buffer of
// its own, suitable for use on another goroutine.
func (p *Propagator) Clone() *Propagator {
	return &Propagator{
		grid:    p.grid,
		scale:   p.scale,
		coef:    p.coef,
		scratch: make([]complex128, p.grid.N),
	}
}

// Initialize builds the operators for potential v and precomputes the
// elimination coefficients shared by every subsequent step.
func (p *Propagator) Initialize(v Profile) error {
	n := p.grid.N
	if len(v) != n {
		return dimensionError("potential", len(v), n)
	}

	c := &coefficients{
		b:     make([]complex128, n),
		e:     make([]complex128, n),
		beta:  make([]complex128, n),
		gamma: make([]complex128, n),
	}

	dx2 := p.grid.Dx * p.grid.Dx
	ia := complex(0, p.grid.Alpha)
	c.b[0], c.b[n-1] = 1, 1
	for k := 1; k < n-1; k++ {
		w := complex(dx2*v[k]*p.scale, 0)
		c.b[k] = ia - w - 2
		c.e[k] = ia + w + 2
	}

	c.beta[0] = c.b[0]
	c.gamma[0] = 1 / c.beta[0]
	for k := 1; k < n; k++ {
		c.beta[k] = c.b[k] - c.gamma[k-1]
		c.gamma[k] = 1 / c.beta[k]
	}

	p.coef = c
	return nil
}

// Evolution is the outcome of propagating to a target time. Elapsed is the
// first multiple of dt not below the target, which is the time Psi belongs to.
type Evolution struct {
	Psi     WaveFunction
	Elapsed float64
	Steps   int
}

// Update propagates a copy of psi0 until the elapsed time reaches t.
// A target of zero returns an unchanged copy.
func (p *Propagator) Update(psi0 WaveFunction, t float64) (WaveFunction, error) {
	ev, err := p.Evolve(psi0, t)
	if err != nil {
		return nil, err
	}
	return ev.Psi, nil
}

// Evolve is Update that also reports the elapsed time and step count.
func (p *Propagator) Evolve(psi0 WaveFunction, t float64) (*Evolution, error) {
	if err := p.check(psi0); err != nil {
		return nil, err
	}
	if err := p.grid.CheckTime(t); err != nil {
		return nil, err
	}

	psi := psi0.Clone()
	ev := &Evolution{Psi: psi}
	for ev.Elapsed < t {
		p.step(psi)
		ev.Elapsed += p.grid.Dt
		ev.Steps++
	}
	return ev, nil
}

// Advance performs steps implicit steps on psi in place.
func (p *Propagator) Advance(psi WaveFunction, steps int) error {
	if err := p.check(psi); err != nil {
		return err
	}
	if steps < 0 {
		return &ParameterError{Name: "steps", Value: float64(steps), Reason: "step count must be non-negative"}
	}
	for i := 0; i < steps; i++ {
		p.step(psi)
	}
	return nil
}

func (p *Propagator) check(psi WaveFunction) error {
	if p.coef == nil {
		return ErrNotInitialized
	}
	if len(psi) != p.grid.N {
		return dimensionError("wave function", len(psi), p.grid.N)
	}
	return nil
}

// step solves one Crank-Nicolson step: forward sweep of the explicit right
// hand side into the scratch buffer, then back substitution into psi.
func (p *Propagator) step(psi WaveFunction) {
	n := p.grid.N
	c, x := p.coef, p.scratch

	x[0] = (c.e[0]*psi[0] - psi[1]) / c.beta[0]
	for k := 1; k < n-1; k++ {
		r := -psi[k-1] + c.e[k]*psi[k] - psi[k+1]
		x[k] = (r - x[k-1]) / c.beta[k]
	}
	r := -psi[n-2] + c.e[n-1]*psi[n-1]
	x[n-1] = (r - x[n-2]) / c.beta[n-1]

	psi[n-1] = x[n-1]
	for k := n - 2; k >= 0; k-- {
		psi[k] = x[k] - c.gamma[k]*psi[k+1]
	}

	// Dirichlet endpoints.
	psi[0], psi[n-1] = 0, 0
}
