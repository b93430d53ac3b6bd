package kinetics

import (
	"math"

	"github.com/notargets/gokinetics/mechanism"
	"github.com/notargets/gokinetics/thermo"
	"github.com/notargets/gokinetics/utils"
)

// lnRefConc is ln(PAtm/R), the standard state concentration at T = 1 K
var lnRefConc = math.Log(thermo.PAtm / thermo.R)

// ReactionState is one evaluated reaction. Derivative fields are only
// valid after an evaluation that requested them.
type ReactionState struct {
	KInf, K0, Pr, F float64 // Falloff internals, KInf is the Arrhenius forward rate
	Kf, Kr, Kc      float64 // Effective forward, reverse and equilibrium constants
	M               float64 // Weighted third body concentration
	C               float64 // Rate multiplier, [M] for third body reactions and 1 otherwise
	PhiF, PhiR      float64 // Concentration products
	Qf, Qr          float64
	DlnKfdT         float64
	DlnKrdT         float64
	DKfdM           float64
	DqdT, DqdM      float64
}

func arrhenius(a *mechanism.Arrhenius, u *mechanism.Units, tp thermo.TempPowers) float64 {
	return u.Prefactor * a.A * math.Exp(a.Beta*tp.LogT-u.Activation*a.Ea*tp.InvT)
}

func dlnArrheniusdT(a *mechanism.Arrhenius, u *mechanism.Units, tp thermo.TempPowers) float64 {
	return (a.Beta + u.Activation*a.Ea*tp.InvT) * tp.InvT
}

// Power raises a concentration to a stoichiometric exponent, taking the
// multiply path for small integer exponents
func Power(c, p float64) float64 {
	if ip := int(p); float64(ip) == p {
		return utils.POW(c, ip)
	}
	return math.Pow(c, p)
}

func concProduct(terms []mechanism.StoichTerm, c []float64) (phi float64) {
	phi = 1.
	for _, st := range terms {
		phi *= Power(c[st.Species], st.Coeff)
	}
	return
}

// ForwardRateConstants fills the Arrhenius forward (high pressure limit)
// rate constant of every reaction. It depends on temperature only.
func (e *Engine) ForwardRateConstants(tp thermo.TempPowers, kInf []float64) {
	for i := range e.active.Reactions {
		p := &e.active.Reactions[i]
		kInf[i] = arrhenius(&p.Forward, &p.Units, tp)
	}
}

// ThirdBodyConcentrations fills the efficiency weighted collider
// concentration of every reaction; elementary reactions get zero.
func (e *Engine) ThirdBodyConcentrations(c []float64, M []float64) {
	var (
		ctot float64
	)
	for k := 0; k < e.NS; k++ {
		ctot += c[k]
	}
	for i := range e.Mech.Reactions {
		M[i] = e.thirdBody(i, c, ctot)
	}
}

func (e *Engine) thirdBody(i int, c []float64, ctot float64) (M float64) {
	var (
		r   = &e.Mech.Reactions[i]
		eff = e.active.Reactions[i].Efficiencies
	)
	switch {
	case r.Kind == mechanism.Elementary:
		return 0
	case r.ThirdBody.AllSpecies:
		M = ctot
		for j, k := range r.ThirdBody.Species {
			M += (eff[j] - 1.) * c[k]
		}
	default:
		for j, k := range r.ThirdBody.Species {
			M += eff[j] * c[k]
		}
	}
	return
}

// EquilibriumConstants fills Kc in concentration units from g/RT of every
// species. Reactions are handled alike whatever the sign of their mole change.
func (e *Engine) EquilibriumConstants(tp thermo.TempPowers, gRT []float64, kc []float64) {
	var (
		lnRef = lnRefConc - tp.LogT
	)
	for i := range e.Mech.Reactions {
		var (
			r  = &e.Mech.Reactions[i]
			dG float64
		)
		for _, st := range r.Products {
			dG += st.Coeff * gRT[st.Species]
		}
		for _, st := range r.Reactants {
			dG -= st.Coeff * gRT[st.Species]
		}
		kc[i] = math.Exp(e.Mech.SumNu(i)*lnRef - dG)
	}
}

// dlnKcdT is d(ln Kc)/dT = sum(nu_k (h_k/RT - 1))/T
func (e *Engine) dlnKcdT(i int, tp thermo.TempPowers, hRT []float64) (d float64) {
	r := &e.Mech.Reactions[i]
	for _, st := range r.Products {
		d += st.Coeff * hRT[st.Species]
	}
	for _, st := range r.Reactants {
		d -= st.Coeff * hRT[st.Species]
	}
	return (d - e.Mech.SumNu(i)) * tp.InvT
}

// evaluateReactions completes the reaction states from the temperature
// only quantities already held in ws (KInf, Kc, and HRT when derivs is set)
func (e *Engine) evaluateReactions(c []float64, tp thermo.TempPowers, ws *Workspace, derivs bool) {
	e.ThirdBodyConcentrations(c, ws.M)
	for i := range e.Mech.Reactions {
		var (
			r  = &e.Mech.Reactions[i]
			p  = &e.active.Reactions[i]
			rs = &ws.Reactions[i]
		)
		*rs = ReactionState{
			KInf: ws.KInf[i],
			Kc:   ws.Kc[i],
			M:    ws.M[i],
			C:    1.,
			Kf:   ws.KInf[i],
		}
		if derivs {
			rs.DlnKfdT = dlnArrheniusdT(&p.Forward, &p.Units, tp)
		}
		switch r.Kind {
		case mechanism.FalloffReaction:
			falloffBlend(r, p, tp, rs.KInf, rs.M, derivs, rs)
		case mechanism.ThirdBodyReaction:
			rs.C = rs.M
		}
		switch {
		case r.HasReverse:
			rs.Kr = arrhenius(&p.Reverse, &p.Units, tp)
			if derivs {
				rs.DlnKrdT = dlnArrheniusdT(&p.Reverse, &p.Units, tp)
			}
		case r.Reversible:
			rs.Kr = rs.Kf / rs.Kc
			if derivs {
				rs.DlnKrdT = rs.DlnKfdT - e.dlnKcdT(i, tp, ws.HRT)
			}
		}
		rs.PhiF = p.Units.Phase * concProduct(r.ForwardOrders(), c)
		if r.Reversible {
			rs.PhiR = p.Units.Phase * concProduct(r.Products, c)
		}
		rs.Qf = rs.C * rs.Kf * rs.PhiF
		rs.Qr = rs.C * rs.Kr * rs.PhiR
		if !derivs {
			continue
		}
		rs.DqdT = rs.C * (rs.Kf*rs.DlnKfdT*rs.PhiF - rs.Kr*rs.DlnKrdT*rs.PhiR)
		switch r.Kind {
		case mechanism.ThirdBodyReaction:
			rs.DqdM = rs.Kf*rs.PhiF - rs.Kr*rs.PhiR
		case mechanism.FalloffReaction:
			rs.DqdM = rs.DKfdM * rs.PhiF
			if r.Reversible {
				rs.DqdM -= rs.DKfdM / rs.Kc * rs.PhiR
			}
		}
	}
}

// prepare fills the temperature only parts of the workspace
func (e *Engine) prepare(tp thermo.TempPowers, ws *Workspace, derivs bool) {
	e.thermo.GRT(tp, ws.GRT)
	e.ForwardRateConstants(tp, ws.KInf)
	e.EquilibriumConstants(tp, ws.GRT, ws.Kc)
	if derivs {
		e.thermo.HRT(tp, ws.HRT)
	}
}

// Evaluate fills ws with the reaction states at concentrations c (mol/cm^3)
// and temperature T. With derivs set the temperature and third body
// derivatives used by the Jacobian are filled as well.
func (e *Engine) Evaluate(c []float64, T float64, ws *Workspace, derivs bool) {
	tp := thermo.NewTempPowers(T)
	e.prepare(tp, ws, derivs)
	e.evaluateReactions(c, tp, ws, derivs)
}

// RateConstants fills the effective forward and reverse rate constants,
// including falloff blending and third body weighting, for diagnostics
func (e *Engine) RateConstants(c []float64, T float64, kf, kr []float64) {
	ws := e.getWorkspace()
	defer e.putWorkspace(ws)
	e.Evaluate(c, T, ws, false)
	for i := range ws.Reactions {
		kf[i] = ws.Reactions[i].C * ws.Reactions[i].Kf
		kr[i] = ws.Reactions[i].C * ws.Reactions[i].Kr
	}
}

// EquilibriumConstantsT returns Kc of every reaction at temperature T
func (e *Engine) EquilibriumConstantsT(T float64, kc []float64) {
	ws := e.getWorkspace()
	defer e.putWorkspace(ws)
	tp := thermo.NewTempPowers(T)
	e.thermo.GRT(tp, ws.GRT)
	e.EquilibriumConstants(tp, ws.GRT, kc)
}
