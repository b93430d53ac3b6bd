package kinetics_test

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gokinetics/kinetics"
	"github.com/notargets/gokinetics/mechanism"
	"github.com/notargets/gokinetics/thermo"
)

func newEngine(t *testing.T, name string) *kinetics.Engine {
	t.Helper()
	m, err := mechanism.Lookup(name)
	require.NoError(t, err)
	return kinetics.NewEngine(m)
}

// sampleX returns a reacting mole fraction vector with every species present
func sampleX(e *kinetics.Engine) (x []float64) {
	x = make([]float64, e.NS)
	switch e.Mech.Name {
	case "JL4": // CH4, O2, H2O, N2, CO, CO2, H2
		copy(x, []float64{0.05, 0.15, 0.08, 0.65, 0.02, 0.03, 0.02})
	default: // H2, O2, H2O, H, O, OH, HO2, H2O2, N2
		copy(x, []float64{0.12, 0.08, 0.10, 0.01, 0.004, 0.008, 0.0006, 0.0004, 0.677})
	}
	floats.Scale(1./floats.Sum(x), x)
	return
}

func assertRelSlice(t *testing.T, want, got []float64, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	scale := math.Max(floats.Norm(want, math.Inf(1)), 1.e-300)
	for i := range want {
		assert.LessOrEqual(t, math.Abs(want[i]-got[i]), tol*scale, msgAndArgs...)
	}
}

func TestMassConservation(t *testing.T) {
	for _, name := range mechanism.Names() {
		var (
			e          = newEngine(t, name)
			w          = e.Mech.Weights()
			parameters = gopter.DefaultTestParameters()
		)
		parameters.MinSuccessfulTests = 200
		properties := gopter.NewProperties(parameters)
		properties.Property(name+" production conserves mass", prop.ForAll(
			func(x []float64, T, P float64) bool {
				var (
					c    = make([]float64, e.NS)
					wdot = make([]float64, e.NS)
					mw   = make([]float64, e.NS)
				)
				e.XToConcP(P*thermo.PAtm, T, x, c)
				e.ProductionRates(c, T, wdot)
				floats.MulTo(mw, wdot, w)
				scale := floats.Norm(mw, 1)
				if scale == 0 {
					return true
				}
				return math.Abs(floats.Sum(mw)) <= 1.e-12*scale
			},
			gen.SliceOfN(e.NS, gen.Float64Range(1.e-6, 1.)),
			gen.Float64Range(300., 3000.),
			gen.Float64Range(0.01, 100.),
		))
		properties.TestingRun(t)
	}
}

func TestRateConstants(t *testing.T) {
	var (
		e   = newEngine(t, "H2O2")
		NR  = e.NR
		T   = 1400.
		c   = make([]float64, e.NS)
		kf  = make([]float64, NR)
		kr  = make([]float64, NR)
		kc  = make([]float64, NR)
		gRT = make([]float64, e.NS)
	)
	e.XToConcP(thermo.PAtm, T, sampleX(e), c)
	e.RateConstants(c, T, kf, kr)
	e.EquilibriumConstantsT(T, kc)
	e.Thermo().GRT(thermo.NewTempPowers(T), gRT)
	for i := 0; i < NR; i++ {
		var (
			r  = &e.Mech.Reactions[i]
			dG float64
		)
		for k, nu := range e.Mech.NetStoich(i) {
			dG += nu * gRT[k]
		}
		want := math.Pow(thermo.PAtm/(thermo.R*T), e.Mech.SumNu(i)) * math.Exp(-dG)
		assert.InEpsilon(t, want, kc[i], 1.e-10, r.Equation)
		switch {
		case !r.Reversible:
			assert.Equal(t, 0., kr[i], r.Equation)
		case r.HasReverse:
			rev := e.Active().Reactions[i].Reverse
			want := rev.A * math.Pow(T, rev.Beta) * math.Exp(-rev.Ea/(thermo.Rc*T))
			assert.InEpsilon(t, want, kr[i], 1.e-10, r.Equation)
		default:
			assert.InEpsilon(t, kc[i], kf[i]/kr[i], 1.e-10, r.Equation)
		}
	}
	{ // Elementary reactions use the bare Arrhenius form
		p := e.Active().Reactions[6].Forward
		want := p.A * math.Pow(T, p.Beta) * math.Exp(-p.Ea/(thermo.Rc*T))
		assert.InEpsilon(t, want, kf[6], 1.e-12)
	}
	{ // Third body reactions carry [M] in the effective rate constant
		var (
			ws   = e.NewWorkspace()
			ctot = floats.Sum(c)
		)
		e.Evaluate(c, T, ws, false)
		M := ctot + 1.5*c[0] + 11.*c[2]
		assert.InEpsilon(t, M, ws.Reactions[4].M, 1.e-12)
		assert.InEpsilon(t, M*ws.Reactions[4].KInf, kf[4], 1.e-12)
		// The specific collider counts water only
		assert.InEpsilon(t, c[2], ws.Reactions[3].M, 1.e-12)
	}
}

func TestExplicitReverseRoundTrip(t *testing.T) {
	var (
		e = newEngine(t, "H2O2")
		m = e.Mech
		i = 10 // HO2 + H <=> H2 + O2
	)
	require.True(t, m.Reactions[i].HasReverse)
	// The same mechanism with the reverse rate left to detailed balance
	var (
		species   = append([]mechanism.Species(nil), m.Species...)
		reactions = append([]mechanism.Reaction(nil), m.Reactions...)
	)
	reactions[i].HasReverse = false
	m2, err := mechanism.New(m.Name, species, reactions, m.Default.Clone(), m.ReactionMap())
	require.NoError(t, err)
	e2 := kinetics.NewEngine(m2)
	for _, T := range []float64{600., 1000., 1800., 2600.} {
		var (
			c        = make([]float64, e.NS)
			kf, kr   = make([]float64, e.NR), make([]float64, e.NR)
			kf2, kr2 = make([]float64, e.NR), make([]float64, e.NR)
			kc       = make([]float64, e.NR)
		)
		e.XToConcP(thermo.PAtm, T, sampleX(e), c)
		e.RateConstants(c, T, kf, kr)
		e2.RateConstants(c, T, kf2, kr2)
		e.EquilibriumConstantsT(T, kc)
		assert.Equal(t, kf[i], kf2[i])
		assert.InEpsilon(t, kf[i]/kc[i], kr2[i], 1.e-12)
		assert.InEpsilon(t, kc[i], kf2[i]/kr2[i], 1.e-12)
		// Every other reaction is unchanged
		kf[i], kr[i], kf2[i], kr2[i] = 0, 0, 0, 0
		assert.Equal(t, kf, kf2)
		assert.Equal(t, kr, kr2)
	}
}

func TestEquilibriumContinuity(t *testing.T) {
	var (
		e       = newEngine(t, "H2O2")
		below   = make([]float64, e.NR)
		above   = make([]float64, e.NR)
		Tswitch = 1000.
	)
	e.EquilibriumConstantsT(math.Nextafter(Tswitch, 0), below)
	e.EquilibriumConstantsT(Tswitch, above)
	for i := range below {
		assert.InEpsilon(t, below[i], above[i], 1.e-2, e.Mech.Reactions[i].Equation)
	}
}

func constant(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// uniformForPr returns uniform concentrations that set the reduced pressure
// of falloff reaction i to one
func uniformForPr(e *kinetics.Engine, i int, T float64) (c []float64) {
	ws := e.NewWorkspace()
	e.Evaluate(constant(e.NS, 1.), T, ws, false)
	rs := ws.Reactions[i]
	// M and k0*M/kInf are linear in a uniform scale
	return constant(e.NS, rs.KInf/(rs.K0*rs.M))
}

func TestFalloff(t *testing.T) {
	var (
		e  = newEngine(t, "H2O2")
		T  = 1100.
		ws = e.NewWorkspace()
	)
	{ // SRI at Pr = 1 reduces to d T^e (a exp(-b/T) + exp(-T/c))
		e.Evaluate(uniformForPr(e, 0, T), T, ws, false)
		var (
			rs   = ws.Reactions[0]
			p    = e.Active().Reactions[0].SRI
			want = p.D * math.Pow(T, p.E) * (p.A*math.Exp(-p.B/T) + math.Exp(-T/p.C))
		)
		assert.InEpsilon(t, 1., rs.Pr, 1.e-12)
		assert.InEpsilon(t, want, rs.F, 1.e-10)
		assert.InEpsilon(t, 0.5*rs.KInf*rs.F, rs.Kf, 1.e-10)
	}
	for _, i := range []int{1, 2} { // Troe, three and four parameter
		e.Evaluate(uniformForPr(e, i, T), T, ws, false)
		var (
			rs    = ws.Reactions[i]
			p     = e.Active().Reactions[i].Troe
			Fcent = (1.-p.A)*math.Exp(-T/p.T3) + p.A*math.Exp(-T/p.T1)
		)
		if p.Len == 4 {
			Fcent += math.Exp(-p.T2 / T)
		}
		var (
			lf   = math.Log10(Fcent)
			cc   = -0.4 - 0.67*lf
			n    = 0.75 - 1.27*lf
			f1   = cc / (n - 0.14*cc)
			want = math.Pow(10., lf/(1.+f1*f1))
		)
		assert.InEpsilon(t, want, rs.F, 1.e-10, e.Mech.Reactions[i].Equation)
		assert.Less(t, rs.F, 1.)
	}
	{ // Lindemann blending has no broadening
		e.Evaluate(uniformForPr(e, 3, T), T, ws, false)
		rs := ws.Reactions[3]
		assert.Equal(t, 1., rs.F)
		assert.InEpsilon(t, 0.5*rs.KInf, rs.Kf, 1.e-12)
	}
	{ // The effective rate is bounded by both limits and grows with pressure
		// through the falloff region. Far above it the Troe F reaches one where
		// n - 0.14 (log10 Pr + c) vanishes and then falls slowly back toward Fcent.
		for _, i := range []int{1, 2, 3} {
			var (
				base = uniformForPr(e, i, T)
				c    = make([]float64, e.NS)
				last float64
			)
			for _, scale := range []float64{1.e-12, 1.e-6, 1.e-2, 1., 1.e2, 1.e6, 1.e12} {
				floats.ScaleTo(c, scale, base)
				e.Evaluate(c, T, ws, false)
				rs := ws.Reactions[i]
				if scale == 1.e-12 { // Low pressure limit k0 [M] F
					assert.InEpsilon(t, rs.K0*rs.M*rs.F, rs.Kf, 1.e-9)
				}
				assert.LessOrEqual(t, rs.Kf, rs.KInf*(1.+1.e-12))
				assert.LessOrEqual(t, rs.Kf, rs.K0*rs.M*(1.+1.e-12))
				assert.Greater(t, rs.F, 0.)
				assert.LessOrEqual(t, rs.F, 1.)
				if scale <= 1.e6 {
					assert.Greater(t, rs.Kf, last)
				}
				last = rs.Kf
			}
			// Far above the falloff region kf approaches kInf F
			rs := ws.Reactions[i]
			assert.InEpsilon(t, rs.KInf*rs.F, rs.Kf, 1.e-9)
		}
	}
	{ // An empty mixture clamps the reduced pressure and produces nothing
		var (
			zero = make([]float64, e.NS)
			wdot = make([]float64, e.NS)
		)
		e.Evaluate(zero, T, ws, false)
		for i := range ws.Reactions {
			assert.False(t, math.IsNaN(ws.Reactions[i].Kf))
			assert.Equal(t, 0., ws.Reactions[i].Qf)
		}
		e.ProductionRates(zero, T, wdot)
		assert.Equal(t, make([]float64, e.NS), wdot)
	}
}

func TestParameterReset(t *testing.T) {
	var (
		e    = newEngine(t, "H2O2")
		T    = 1300.
		c    = make([]float64, e.NS)
		base = make([]float64, e.NS)
		mod  = make([]float64, e.NS)
		back = make([]float64, e.NS)
	)
	e.XToConcP(thermo.PAtm, T, sampleX(e), c)
	e.ProductionRates(c, T, base)
	assert.True(t, e.Active().Equal(e.Mech.Default))

	snap := e.Snapshot()
	act := e.Active()
	act.Reactions[6].Forward.A *= 3.
	act.Reactions[1].Efficiencies[1] = 20.
	act.Reactions[0].SRI.D = 1.
	e.ProductionRates(c, T, mod)
	assert.NotEqual(t, base, mod)
	assert.False(t, e.Active().Equal(e.Mech.Default))
	// The generation time values are untouched
	assert.Equal(t, 3.547e15, e.Mech.Default.Reactions[6].Forward.A)
	assert.Equal(t, 11., e.Mech.Default.Reactions[1].Efficiencies[1])

	e.ResetToDefault()
	e.ProductionRates(c, T, back)
	assert.Equal(t, base, back)

	act.Reactions[6].Units.Prefactor = 10.
	e.Restore(snap)
	e.ProductionRates(c, T, back)
	assert.Equal(t, base, back)
	assert.True(t, e.Active().Equal(snap))

	{ // Units scale the prefactor and the activation energy
		kf := make([]float64, e.NR)
		kr := make([]float64, e.NR)
		e.RateConstants(c, T, kf, kr)
		k0 := kf[7]
		act.Reactions[7].Units.Prefactor = 2.
		e.RateConstants(c, T, kf, kr)
		assert.InEpsilon(t, 2.*k0, kf[7], 1.e-14)
		act.Reactions[7].Units.Activation = 0.
		e.RateConstants(c, T, kf, kr)
		p := e.Mech.Default.Reactions[7].Forward
		assert.InEpsilon(t, 2.*p.A*math.Pow(T, p.Beta), kf[7], 1.e-12)
		e.ResetToDefault()
	}
}

func TestCompositionEntryPoints(t *testing.T) {
	for _, name := range mechanism.Names() {
		var (
			e    = newEngine(t, name)
			NS   = e.NS
			NR   = e.NR
			T    = 1250.
			P    = 2.5 * thermo.PAtm
			x    = sampleX(e)
			y    = make([]float64, NS)
			x2   = make([]float64, NS)
			c    = make([]float64, NS)
			ref  = make([]float64, NS)
			wdot = make([]float64, NS)
			qref = make([]float64, NR)
			q    = make([]float64, NR)
			qf   = make([]float64, NR)
			qr   = make([]float64, NR)
		)
		e.XToY(x, y)
		assert.InDelta(t, 1., floats.Sum(y), 1.e-14)
		e.YToX(y, x2)
		assertRelSlice(t, x, x2, 1.e-14)
		e.XToConcP(P, T, x, c)
		assert.InEpsilon(t, P, e.PressureC(T, c), 1.e-14)
		e.CToX(c, x2)
		assertRelSlice(t, x, x2, 1.e-14)
		e.CToY(c, x2)
		assertRelSlice(t, y, x2, 1.e-14)
		assert.InEpsilon(t, e.MeanWeightX(x), e.MeanWeightY(y), 1.e-14)
		assert.InEpsilon(t, e.MeanWeightX(x), e.MeanWeightC(c), 1.e-14)

		rho := e.DensityY(P, T, y)
		assert.InEpsilon(t, rho, e.DensityX(P, T, x), 1.e-14)
		assert.InEpsilon(t, P, e.PressureY(rho, T, y), 1.e-14)
		assert.InEpsilon(t, P, e.PressureX(rho, T, x), 1.e-14)

		e.ProductionRates(c, T, ref)
		e.ProgressRates(c, T, qref)

		e.ProductionRatesXP(P, T, x, wdot)
		assert.Equal(t, ref, wdot)
		e.ProductionRatesYP(P, T, y, wdot)
		assertRelSlice(t, ref, wdot, 1.e-10)
		e.ProductionRatesYR(rho, T, y, wdot)
		assertRelSlice(t, ref, wdot, 1.e-10)
		e.ProductionRatesXR(rho, T, x, wdot)
		assertRelSlice(t, ref, wdot, 1.e-10)

		e.ProgressRatesXP(P, T, x, q)
		assert.Equal(t, qref, q)
		e.ProgressRatesYP(P, T, y, q)
		assertRelSlice(t, qref, q, 1.e-10)
		e.ProgressRatesYR(rho, T, y, q)
		assertRelSlice(t, qref, q, 1.e-10)
		e.ProgressRatesXR(rho, T, x, q)
		assertRelSlice(t, qref, q, 1.e-10)

		e.ProgressRatesFRXP(P, T, x, qf, qr)
		floats.SubTo(q, qf, qr)
		assert.Equal(t, qref, q)
		e.ProgressRatesFR(c, T, qf, qr)
		floats.SubTo(q, qf, qr)
		assert.Equal(t, qref, q)
	}
}

func TestSourceTerms(t *testing.T) {
	for _, name := range mechanism.Names() {
		var (
			e    = newEngine(t, name)
			NS   = e.NS
			T    = 1700.
			c    = make([]float64, NS)
			wdot = make([]float64, NS)
			out  = make([]float64, NS+1)
			cp   = make([]float64, NS)
			h    = make([]float64, NS)
			tp   = thermo.NewTempPowers(T)
		)
		e.XToConcP(thermo.PAtm, T, sampleX(e), c)
		e.ProductionRates(c, T, wdot)
		e.Thermo().CpR(tp, cp)
		e.Thermo().HRT(tp, h)
		for _, form := range []kinetics.Formulation{kinetics.ConstantPressure, kinetics.ConstantVolume} {
			e.SourceTerms(c, T, form, out)
			assert.Equal(t, wdot, out[:NS])
			shift := 0.
			if form == kinetics.ConstantVolume {
				shift = 1.
			}
			var num, den float64
			for k := 0; k < NS; k++ {
				num += (h[k] - shift) * wdot[k]
				den += (cp[k] - shift) * c[k]
			}
			assert.InEpsilon(t, -T*num/den, out[NS], 1.e-12, form.String())
		}
	}
	assert.Equal(t, kinetics.ConstantVolume, kinetics.NewFormulation("V"))
	assert.Equal(t, kinetics.ConstantPressure, kinetics.NewFormulation("ConstantPressure"))
	assert.Equal(t, "ConstantVolume", kinetics.ConstantVolume.String())
}

// batchState fills N cells with random temperature, pressure and composition
func batchState(e *kinetics.Engine, N int) (c, T []float64) {
	var (
		NS  = e.NS
		rng = rand.New(rand.NewSource(int64(N)))
		x   = make([]float64, NS)
	)
	c = make([]float64, N*NS)
	T = make([]float64, N)
	for n := 0; n < N; n++ {
		T[n] = 600. + 2400.*rng.Float64()
		for k := range x {
			x[k] = 1.e-4 + rng.Float64()
		}
		floats.Scale(1./floats.Sum(x), x)
		e.XToConcP(thermo.PAtm*(0.1+10.*rng.Float64()), T[n], x, c[n*NS:(n+1)*NS])
	}
	return
}

func TestBatchMatchesScalar(t *testing.T) {
	for _, name := range mechanism.Names() {
		var (
			e      = newEngine(t, name)
			NS, NR = e.NS, e.NR
			N      = 5
			c, T   = batchState(e, N)
			b      = e.NewBatch(N)
			wdot   = make([]float64, N*NS)
			ref    = make([]float64, N*NS)
			qf     = make([]float64, N*NR)
			qr     = make([]float64, N*NR)
			qfRef  = make([]float64, N*NR)
			qrRef  = make([]float64, N*NR)
		)
		for n := 0; n < N; n++ {
			e.ProductionRates(c[n*NS:(n+1)*NS], T[n], ref[n*NS:(n+1)*NS])
			e.ProgressRatesFR(c[n*NS:(n+1)*NS], T[n], qfRef[n*NR:(n+1)*NR], qrRef[n*NR:(n+1)*NR])
		}
		b.ProductionRates(c, T, wdot)
		assert.Equal(t, ref, wdot)
		b.ProgressRatesFR(c, T, qf, qr)
		assert.Equal(t, qfRef, qf)
		assert.Equal(t, qrRef, qr)

		{ // Density and mass fraction entry
			var (
				rho = make([]float64, N)
				y   = make([]float64, N*NS)
			)
			for n := 0; n < N; n++ {
				cn := c[n*NS : (n+1)*NS]
				e.CToY(cn, y[n*NS:(n+1)*NS])
				rho[n] = floats.Dot(cn, e.Mech.Weights())
				e.ProductionRatesYR(rho[n], T[n], y[n*NS:(n+1)*NS], ref[n*NS:(n+1)*NS])
			}
			b.ProductionRatesYR(rho, T, y, wdot)
			assert.Equal(t, ref, wdot)

			h := make([]float64, N*NS)
			b.EnthalpyMass(T, h)
			for n := 0; n < N; n++ {
				yn := y[n*NS : (n+1)*NS]
				hmix, _ := e.Thermo().MixtureEnthalpyMass(T[n], yn, e.Mech.InvWeights())
				assert.InEpsilon(t, hmix, floats.Dot(yn, h[n*NS:(n+1)*NS]), 1.e-10)
			}
		}
		{ // Partitioned evaluation over goroutines
			const Nbig = 37
			c, T := batchState(e, Nbig)
			ref := make([]float64, Nbig*NS)
			e.NewBatch(Nbig).ProductionRates(c, T, ref)
			for _, degree := range []int{0, 1, 4, 64} {
				out := make([]float64, Nbig*NS)
				require.NoError(t, e.ProductionRatesParallel(context.Background(), degree, c, T, out))
				assert.Equal(t, ref, out)
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			assert.ErrorIs(t, e.ProductionRatesParallel(ctx, 2, c, T, make([]float64, Nbig*NS)), context.Canceled)
		}
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	var (
		e    = newEngine(t, "H2O2")
		NS   = e.NS
		N    = 16
		c, T = batchState(e, N)
		ref  = make([]float64, N*NS)
		out  = make([]float64, N*NS)
		g    errgroup.Group
		mu   sync.Mutex
		done int
	)
	for n := 0; n < N; n++ {
		e.ProductionRates(c[n*NS:(n+1)*NS], T[n], ref[n*NS:(n+1)*NS])
	}
	for n := 0; n < N; n++ {
		g.Go(func() error {
			for rep := 0; rep < 20; rep++ {
				e.ProductionRates(c[n*NS:(n+1)*NS], T[n], out[n*NS:(n+1)*NS])
			}
			mu.Lock()
			done++
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, N, done)
	assert.Equal(t, ref, out)
}
