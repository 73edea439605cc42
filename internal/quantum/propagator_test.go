package quantum

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Propagator", func() {
	const (
		points = 401
		x0     = 0.5
		k0     = 40.0
		sigma0 = 0.05
	)

	var (
		g    Grid
		psi0 WaveFunction
	)

	BeforeEach(func() {
		var err error
		g, err = NewGrid(points, 1.0)
		Expect(err).NotTo(HaveOccurred())
		_, psi0 = g.Psi0(x0, k0, sigma0)
	})

	ready := func(v Profile, opts ...Option) *Propagator {
		p := NewPropagator(g, opts...)
		Expect(p.Initialize(v)).To(Succeed())
		return p
	}

	Describe("lifecycle", func() {
		It("rejects updates before Initialize", func() {
			p := NewPropagator(g)
			Expect(p.Ready()).To(BeFalse())
			_, err := p.Update(psi0, g.Dt)
			Expect(err).To(MatchError(ErrNotInitialized))
		})

		It("rejects a potential of the wrong length", func() {
			p := NewPropagator(g)
			Expect(p.Initialize(make(Profile, points-1))).To(MatchError(ErrDimensionMismatch))
			Expect(p.Ready()).To(BeFalse())
		})

		It("rejects a wave function of the wrong length", func() {
			p := ready(make(Profile, points))
			_, err := p.Update(make(WaveFunction, 10), g.Dt)
			Expect(err).To(MatchError(ErrDimensionMismatch))
		})

		It("rejects negative, NaN and unreachable target times", func() {
			p := ready(make(Profile, points))
			for _, t := range []float64{-g.Dt, math.NaN(), math.Inf(1), math.Inf(-1), 1e17 * g.Dt} {
				_, err := p.Update(psi0, t)
				Expect(err).To(MatchError(ErrInvalidParameter), "t = %v", t)
				var pe *ParameterError
				Expect(errors.As(err, &pe)).To(BeTrue())
				Expect(pe.Name).To(Equal("t"))
			}
		})

		It("rejects negative step counts", func() {
			p := ready(make(Profile, points))
			Expect(p.Advance(psi0.Clone(), -1)).To(MatchError(ErrInvalidParameter))
		})
	})

	Describe("zero target time", func() {
		It("returns the input unchanged", func() {
			p := ready(BarrierPotential(g, 1e4, 0.02))
			ev, err := p.Evolve(psi0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Steps).To(Equal(0))
			Expect(ev.Elapsed).To(Equal(0.0))
			Expect(ev.Psi).To(Equal(psi0))
		})
	})

	Describe("boundary invariant", func() {
		DescribeTable("endpoints stay exactly zero",
			func(build func(Grid) Profile) {
				p := ready(build(g), WithEnergyScale(100))
				psi := psi0
				for i := 0; i < 3; i++ {
					var err error
					psi, err = p.Update(psi, 7*g.Dt)
					Expect(err).NotTo(HaveOccurred())
					Expect(psi[0]).To(Equal(complex128(0)))
					Expect(psi[points-1]).To(Equal(complex128(0)))
				}
			},
			Entry("free", func(g Grid) Profile { return make(Profile, g.N) }),
			Entry("step", func(g Grid) Profile { return StepPotential(g, 5) }),
			Entry("barrier", func(g Grid) Profile { return BarrierPotential(g, 5, 0.02) }),
			Entry("well", func(g Grid) Profile { return WellPotential(g, 5, 0.02) }),
			Entry("gaussian", func(g Grid) Profile { return GaussianPotential(g, 0.5, 0.05) }),
		)
	})

	It("does not mutate the initial state", func() {
		p := ready(StepPotential(g, 3))
		before := psi0.Clone()
		_, err := p.Update(psi0, 10*g.Dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(psi0).To(Equal(before))
	})

	It("is deterministic", func() {
		a, err := ready(GaussianPotential(g, 0.5, 0.05)).Update(psi0, 25*g.Dt)
		Expect(err).NotTo(HaveOccurred())
		b, err := ready(GaussianPotential(g, 0.5, 0.05)).Update(psi0, 25*g.Dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("approximately conserves the norm for a free particle", func() {
		p := ready(make(Profile, points))
		psi, err := p.Update(psi0, 40*g.Dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(psi.IsValid()).To(BeTrue())

		n0, n1 := psi0.Norm(), psi.Norm()
		Expect(math.Abs(n1-n0) / n0).To(BeNumerically("<", 1e-6))
	})

	It("moves the packet towards positive x for positive k0", func() {
		p := ready(make(Profile, points))
		psi, err := p.Update(psi0, 40*g.Dt)
		Expect(err).NotTo(HaveOccurred())

		x := g.Coordinates()
		mean := func(w WaveFunction) float64 {
			d := w.Density()
			s, m := 0.0, 0.0
			for i := range d {
				s += d[i]
				m += d[i] * x[i]
			}
			return m / s
		}
		Expect(mean(psi)).To(BeNumerically(">", mean(psi0)))
	})

	It("reuses the coefficients across calls", func() {
		p := ready(BarrierPotential(g, 2, 0.02), WithEnergyScale(50))
		_, err := p.Update(psi0, 5*g.Dt)
		Expect(err).NotTo(HaveOccurred())
		late, err := p.Update(psi0, 12.5*g.Dt)
		Expect(err).NotTo(HaveOccurred())

		fresh, err := ready(BarrierPotential(g, 2, 0.02), WithEnergyScale(50)).Update(psi0, 12.5*g.Dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(late).To(Equal(fresh))
	})

	DescribeTable("performs ceil(t/dt) steps and reports the overshoot",
		func(multiple float64, want int) {
			p := ready(make(Profile, points))
			ev, err := p.Evolve(psi0, multiple*g.Dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Steps).To(Equal(want))
			Expect(ev.Steps).To(Equal(int(math.Ceil(multiple))))
			Expect(ev.Elapsed).To(BeNumerically(">=", multiple*g.Dt))
			Expect(ev.Elapsed).To(BeNumerically("~", float64(want)*g.Dt, 1e-12))
		},
		Entry("half a step", 0.5, 1),
		Entry("three and a half", 3.5, 4),
		Entry("ten and a quarter", 10.25, 11),
	)

	It("can take one extra step at an exact multiple of dt", func() {
		k := 0
		for m := 1; m <= 2000; m++ {
			if g.StepsFor(float64(m)*g.Dt) == m+1 {
				k = m
				break
			}
		}
		Expect(k).NotTo(BeZero(), "accumulated dt never fell short of an exact multiple")

		target := float64(k) * g.Dt
		ev, err := ready(make(Profile, points)).Evolve(psi0, target)
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Steps).To(Equal(k + 1))
		Expect(ev.Elapsed).To(BeNumerically(">=", target))
	})

	It("matches Update when advancing incrementally", func() {
		p := ready(WellPotential(g, 4, 0.05), WithEnergyScale(20))
		t1, t2 := 6.5*g.Dt, 15.5*g.Dt

		direct, err := p.Update(psi0, t2)
		Expect(err).NotTo(HaveOccurred())

		psi, err := p.Update(psi0, t1)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Advance(psi, g.StepsFor(t2)-g.StepsFor(t1))).To(Succeed())
		Expect(psi).To(Equal(direct))
	})

	It("gives clones identical results with separate scratch", func() {
		p := ready(StepPotential(g, 3), WithEnergyScale(10))
		c := p.Clone()
		Expect(c.Ready()).To(BeTrue())
		Expect(&c.scratch[0]).NotTo(BeIdenticalTo(&p.scratch[0]))

		a, err := p.Update(psi0, 9*g.Dt)
		Expect(err).NotTo(HaveOccurred())
		b, err := c.Update(psi0, 9*g.Dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("recomputes coefficients when initialized with a new potential", func() {
		p := ready(make(Profile, points))
		free, err := p.Update(psi0, 10*g.Dt)
		Expect(err).NotTo(HaveOccurred())

		Expect(p.Initialize(BarrierPotential(g, 1, 0.02).Scale(1e4))).To(Succeed())
		blocked, err := p.Update(psi0, 10*g.Dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocked).NotTo(Equal(free))
	})
})
