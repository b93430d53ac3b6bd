package kinetics

import (
	"github.com/notargets/gokinetics/thermo"
)

type Formulation uint8

const (
	ConstantPressure Formulation = iota
	ConstantVolume
)

func (f Formulation) String() string {
	return []string{"ConstantPressure", "ConstantVolume"}[f]
}

func NewFormulation(label string) Formulation {
	switch label {
	case "ConstantVolume", "constant-volume", "consV", "V":
		return ConstantVolume
	}
	return ConstantPressure
}

// accumulate sums the net production of every species from the evaluated
// reaction states
func (e *Engine) accumulate(ws *Workspace, wdot []float64) {
	for k := 0; k < e.NS; k++ {
		wdot[k] = 0
	}
	for i := range e.Mech.Reactions {
		var (
			r = &e.Mech.Reactions[i]
			q = ws.Reactions[i].Qf - ws.Reactions[i].Qr
		)
		for _, st := range r.Reactants {
			wdot[st.Species] -= st.Coeff * q
		}
		for _, st := range r.Products {
			wdot[st.Species] += st.Coeff * q
		}
	}
}

// ProductionRates fills the net molar production rate of every species in
// mol/(cm^3 s) from concentrations c in mol/cm^3
func (e *Engine) ProductionRates(c []float64, T float64, wdot []float64) {
	ws := e.getWorkspace()
	e.Evaluate(c, T, ws, false)
	e.accumulate(ws, wdot)
	e.putWorkspace(ws)
}

// ProgressRatesFR fills the forward and reverse rates of progress
func (e *Engine) ProgressRatesFR(c []float64, T float64, qf, qr []float64) {
	ws := e.getWorkspace()
	e.Evaluate(c, T, ws, false)
	for i := range ws.Reactions {
		qf[i], qr[i] = ws.Reactions[i].Qf, ws.Reactions[i].Qr
	}
	e.putWorkspace(ws)
}

// ProgressRates fills the net rate of progress of every reaction
func (e *Engine) ProgressRates(c []float64, T float64, q []float64) {
	ws := e.getWorkspace()
	e.Evaluate(c, T, ws, false)
	for i := range ws.Reactions {
		q[i] = ws.Reactions[i].Qf - ws.Reactions[i].Qr
	}
	e.putWorkspace(ws)
}

// ProductionRatesYP uses mass fractions at pressure P (dyne/cm^2)
func (e *Engine) ProductionRatesYP(P, T float64, y, wdot []float64) {
	ws := e.getWorkspace()
	e.YToConcP(P, T, y, ws.C)
	e.Evaluate(ws.C, T, ws, false)
	e.accumulate(ws, wdot)
	e.putWorkspace(ws)
}

// ProductionRatesXP uses mole fractions at pressure P
func (e *Engine) ProductionRatesXP(P, T float64, x, wdot []float64) {
	ws := e.getWorkspace()
	e.XToConcP(P, T, x, ws.C)
	e.Evaluate(ws.C, T, ws, false)
	e.accumulate(ws, wdot)
	e.putWorkspace(ws)
}

// ProductionRatesYR uses mass fractions at density rho (g/cm^3)
func (e *Engine) ProductionRatesYR(rho, T float64, y, wdot []float64) {
	ws := e.getWorkspace()
	e.YToConcR(rho, y, ws.C)
	e.Evaluate(ws.C, T, ws, false)
	e.accumulate(ws, wdot)
	e.putWorkspace(ws)
}

// ProductionRatesXR uses mole fractions at density rho
func (e *Engine) ProductionRatesXR(rho, T float64, x, wdot []float64) {
	ws := e.getWorkspace()
	e.XToConcR(rho, x, ws.C)
	e.Evaluate(ws.C, T, ws, false)
	e.accumulate(ws, wdot)
	e.putWorkspace(ws)
}

func (e *Engine) ProgressRatesYP(P, T float64, y, q []float64) {
	ws := e.getWorkspace()
	e.YToConcP(P, T, y, ws.C)
	e.netProgress(ws.C, T, ws, q)
	e.putWorkspace(ws)
}

func (e *Engine) ProgressRatesXP(P, T float64, x, q []float64) {
	ws := e.getWorkspace()
	e.XToConcP(P, T, x, ws.C)
	e.netProgress(ws.C, T, ws, q)
	e.putWorkspace(ws)
}

func (e *Engine) ProgressRatesYR(rho, T float64, y, q []float64) {
	ws := e.getWorkspace()
	e.YToConcR(rho, y, ws.C)
	e.netProgress(ws.C, T, ws, q)
	e.putWorkspace(ws)
}

func (e *Engine) ProgressRatesXR(rho, T float64, x, q []float64) {
	ws := e.getWorkspace()
	e.XToConcR(rho, x, ws.C)
	e.netProgress(ws.C, T, ws, q)
	e.putWorkspace(ws)
}

// ProgressRatesFRXP returns forward and reverse rates of progress from mole
// fractions at pressure P, for partial equilibrium analysis
func (e *Engine) ProgressRatesFRXP(P, T float64, x, qf, qr []float64) {
	ws := e.getWorkspace()
	e.XToConcP(P, T, x, ws.C)
	e.Evaluate(ws.C, T, ws, false)
	for i := range ws.Reactions {
		qf[i], qr[i] = ws.Reactions[i].Qf, ws.Reactions[i].Qr
	}
	e.putWorkspace(ws)
}

func (e *Engine) netProgress(c []float64, T float64, ws *Workspace, q []float64) {
	e.Evaluate(c, T, ws, false)
	for i := range ws.Reactions {
		q[i] = ws.Reactions[i].Qf - ws.Reactions[i].Qr
	}
}

// SourceTerms fills out[:NS] with the species production rates and out[NS]
// with dT/dt of an adiabatic reactor closed at constant pressure (cp, h)
// or constant volume (cv, u)
func (e *Engine) SourceTerms(c []float64, T float64, form Formulation, out []float64) {
	var (
		tp          = thermo.NewTempPowers(T)
		ws          = e.getWorkspace()
		cmix, ehmix float64
	)
	e.prepare(tp, ws, false)
	e.evaluateReactions(c, tp, ws, false)
	e.accumulate(ws, out[:e.NS])
	// HRT is free scratch when derivatives are off
	cR, ehRT := ws.GRT, ws.HRT
	e.thermo.CpR(tp, cR)
	e.thermo.HRT(tp, ehRT)
	if form == ConstantVolume {
		for k := 0; k < e.NS; k++ {
			cR[k] -= 1.
			ehRT[k] -= 1.
		}
	}
	for k := 0; k < e.NS; k++ {
		cmix += cR[k] * c[k]
		ehmix += ehRT[k] * out[k]
	}
	out[e.NS] = -T * ehmix / cmix
	e.putWorkspace(ws)
}
