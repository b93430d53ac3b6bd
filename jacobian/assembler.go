package jacobian

import (
	"fmt"
	"sync"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gokinetics/kinetics"
	"github.com/notargets/gokinetics/mechanism"
	"github.com/notargets/gokinetics/thermo"
)

// Assembler computes the analytic Jacobian of kinetics.Engine.SourceTerms
// with respect to the concentrations and temperature. Blocks are row major
// (NS+1)x(NS+1): J[i*N+j] = d(rhs_i)/d(x_j) with x = (c_0..c_NS-1, T).
type Assembler struct {
	e                 *kinetics.Engine
	NS, N             int
	rows              [][]int // Species with nonzero net stoichiometry per reaction
	cols, colsPrecond [][]int // Species entering the rate of progress per reaction
	pool              sync.Pool
}

type scratch struct {
	ws              *kinetics.Workspace
	cR, ehRT, dcRdT []float64
	wdot, dq        []float64
	J               []float64
}

func NewAssembler(e *kinetics.Engine) (a *Assembler) {
	mech := e.Mech
	a = &Assembler{
		e:           e,
		NS:          e.NS,
		N:           e.NS + 1,
		rows:        make([][]int, e.NR),
		cols:        make([][]int, e.NR),
		colsPrecond: make([][]int, e.NR),
	}
	for i := 0; i < e.NR; i++ {
		a.rows[i] = reactionRows(mech, i)
		a.cols[i] = reactionColumns(mech, i, false)
		a.colsPrecond[i] = reactionColumns(mech, i, true)
	}
	a.pool.New = func() any {
		return &scratch{
			ws:    e.NewWorkspace(),
			cR:    make([]float64, a.NS),
			ehRT:  make([]float64, a.NS),
			dcRdT: make([]float64, a.NS),
			wdot:  make([]float64, a.NS),
			dq:    make([]float64, a.NS),
			J:     make([]float64, a.N*a.N),
		}
	}
	return
}

// Dense fills J (len (NS+1)^2) with the full analytic Jacobian.
// A species with a fractional reaction order below one has an unbounded
// derivative at zero concentration: its column is infinite (and the
// temperature row entry may be NaN) while the source terms stay finite.
// Solvers that can reach zero concentrations should clamp c to a small
// positive floor before assembling.
func (a *Assembler) Dense(c []float64, T float64, form kinetics.Formulation, J []float64) {
	s := a.pool.Get().(*scratch)
	a.assemble(c, T, form, false, s, J)
	a.pool.Put(s)
}

// Precond fills J with the preconditioner Jacobian, which drops the
// dependence of third body and falloff rates on the collider concentration
func (a *Assembler) Precond(c []float64, T float64, form kinetics.Formulation, J []float64) {
	s := a.pool.Get().(*scratch)
	a.assemble(c, T, form, true, s, J)
	a.pool.Put(s)
}

func (a *Assembler) DenseMatrix(c []float64, T float64, form kinetics.Formulation) *mat.Dense {
	J := make([]float64, a.N*a.N)
	a.Dense(c, T, form, J)
	return mat.NewDense(a.N, a.N, J)
}

// FillCSC fills values (len p.NNZ()) in the column compressed order of p
// for the p.Cells cells given by c (Cells*NS) and T (Cells)
func (a *Assembler) FillCSC(p *Pattern, c, T []float64, values []float64) {
	var (
		N  = a.N
		NS = a.NS
		s  = a.pool.Get().(*scratch)
	)
	defer a.pool.Put(s)
	if p.N != N {
		panic(fmt.Errorf("pattern block size %d does not match mechanism block size %d", p.N, N))
	}
	for cell := 0; cell < p.Cells; cell++ {
		a.assemble(c[cell*NS:(cell+1)*NS], T[cell], p.Form, p.Precond, s, s.J)
		for j := 0; j < N; j++ {
			base := p.ColPtrs[cell*N+j]
			for i := 0; i < N; i++ {
				if off := p.slot[i*N+j]; off >= 0 {
					values[base+off] = s.J[i*N+j]
				}
			}
		}
	}
}

// Sparse returns the block diagonal Jacobian of p.Cells cells as a column
// compressed matrix with its own copy of the pattern indices
func (a *Assembler) Sparse(p *Pattern, c, T []float64) *sparse.CSC {
	var (
		NT     = p.Cells * p.N
		values = make([]float64, p.NNZ())
	)
	a.FillCSC(p, c, T, values)
	colPtrs := append([]int(nil), p.ColPtrs...)
	rowVals := append([]int(nil), p.RowVals...)
	return sparse.NewCSC(NT, NT, colPtrs, rowVals, values)
}

func (a *Assembler) assemble(c []float64, T float64, form kinetics.Formulation, precond bool,
	s *scratch, J []float64) {
	var (
		e      = a.e
		mech   = e.Mech
		active = e.Active()
		N, NS  = a.N, a.NS
		ws     = s.ws
		dq     = s.dq
		wdot   = s.wdot
	)
	for i := range J[:N*N] {
		J[i] = 0
	}
	for k := range wdot {
		wdot[k] = 0
	}
	e.Evaluate(c, T, ws, true)
	for i := range mech.Reactions {
		var (
			r    = &mech.Reactions[i]
			rs   = &ws.Reactions[i]
			ph   = active.Reactions[i].Units.Phase
			q    = rs.Qf - rs.Qr
			nu   = mech.NetStoich(i)
			cols = a.cols[i]
		)
		if precond {
			cols = a.colsPrecond[i]
		}
		for _, j := range cols {
			dq[j] = 0
		}
		orders := r.ForwardOrders()
		for m, st := range orders {
			dq[st.Species] += rs.C * rs.Kf * ph * dPhi(orders, m, c)
		}
		if r.Reversible {
			for m, st := range r.Products {
				dq[st.Species] -= rs.C * rs.Kr * ph * dPhi(r.Products, m, c)
			}
		}
		if r.HasThirdBody() && !precond {
			a.thirdBodyDerivative(r, active.Reactions[i].Efficiencies, rs.DqdM, dq)
		}
		for _, k := range a.rows[i] {
			wdot[k] += nu[k] * q
			row := J[k*N : (k+1)*N]
			for _, j := range cols {
				row[j] += nu[k] * dq[j]
			}
			row[NS] += nu[k] * rs.DqdT
		}
	}
	a.temperatureRow(c, T, form, s, J)
}

func (a *Assembler) thirdBodyDerivative(r *mechanism.Reaction, eff []float64, dqdM float64, dq []float64) {
	if r.ThirdBody.AllSpecies {
		for k := 0; k < a.NS; k++ {
			dq[k] += dqdM
		}
		for j, k := range r.ThirdBody.Species {
			dq[k] += (eff[j] - 1.) * dqdM
		}
		return
	}
	for j, k := range r.ThirdBody.Species {
		dq[k] += eff[j] * dqdM
	}
}

// dPhi is the derivative of prod(c_k^o_k) over terms with respect to the
// concentration of terms[m]
func dPhi(terms []mechanism.StoichTerm, m int, c []float64) (d float64) {
	st := terms[m]
	d = st.Coeff * kinetics.Power(c[st.Species], st.Coeff-1.)
	for n, other := range terms {
		if n != m {
			d *= kinetics.Power(c[other.Species], other.Coeff)
		}
	}
	return
}

// temperatureRow fills the last row from dT/dt = -T sum(eh_k wdot_k) / sum(c_k cR_k)
// where eh, cR are h/RT, cp/R at constant pressure and u/RT, cv/R at
// constant volume
func (a *Assembler) temperatureRow(c []float64, T float64, form kinetics.Formulation,
	s *scratch, J []float64) {
	var (
		e                 = a.e
		N, NS             = a.N, a.NS
		tp                = thermo.NewTempPowers(T)
		cR, ehRT, dcRdT   = s.cR, s.ehRT, s.dcRdT
		wdot              = s.wdot
		cmix, ehmix       float64
		dcmixdT, dehmixdT float64
	)
	if form == kinetics.ConstantVolume {
		e.Thermo().CvR(tp, cR)
		e.Thermo().URT(tp, ehRT)
	} else {
		e.Thermo().CpR(tp, cR)
		e.Thermo().HRT(tp, ehRT)
	}
	e.Thermo().DCpRdT(tp, dcRdT)
	for k := 0; k < NS; k++ {
		cmix += cR[k] * c[k]
		ehmix += ehRT[k] * wdot[k]
		dcmixdT += dcRdT[k] * c[k]
		dehmixdT += (cR[k]-ehRT[k])*tp.InvT*wdot[k] + ehRT[k]*J[k*N+NS]
	}
	var (
		cmixInv = 1. / cmix
		tmp1    = ehmix * cmixInv
		tmp3    = T * cmixInv
		tmp2    = tmp1 * tmp3
		rowT    = J[NS*N : (NS+1)*N]
	)
	for j := 0; j < NS; j++ {
		var dehmixdc float64
		for m := 0; m < NS; m++ {
			dehmixdc += ehRT[m] * J[m*N+j]
		}
		rowT[j] = tmp2*cR[j] - tmp3*dehmixdc
	}
	rowT[NS] = -tmp1 + tmp2*dcmixdT - tmp3*dehmixdT
}
