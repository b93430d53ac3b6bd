package thermo

import (
	"math"
)

const (
	// R is the universal gas constant in erg/(mol K)
	R = 8.31446261815324e7
	// Rc is the universal gas constant in cal/(mol K)
	Rc = 1.98720425864083
	// PAtm is one standard atmosphere in dyne/cm^2
	PAtm = 1013250.
)

// NASA7 is a two range, seven coefficient polynomial fit of the standard
// state properties of one species. Low is used for T < TMid, High otherwise.
type NASA7 struct {
	TLow, TMid, THigh float64
	Low, High         [7]float64
}

// TempPowers holds the powers of temperature shared by every species fit
type TempPowers struct {
	T, InvT, LogT, T2, T3, T4 float64
}

func NewTempPowers(T float64) (tp TempPowers) {
	tp.T = T
	tp.InvT = 1. / T
	tp.LogT = math.Log(T)
	tp.T2 = T * T
	tp.T3 = tp.T2 * T
	tp.T4 = tp.T3 * T
	return
}

func (n *NASA7) coeffs(T float64) *[7]float64 {
	if T < n.TMid {
		return &n.Low
	}
	return &n.High
}

func (n *NASA7) CpR(tp TempPowers) float64 {
	a := n.coeffs(tp.T)
	return a[0] + a[1]*tp.T + a[2]*tp.T2 + a[3]*tp.T3 + a[4]*tp.T4
}

func (n *NASA7) HRT(tp TempPowers) float64 {
	a := n.coeffs(tp.T)
	return a[0] + a[1]*tp.T/2. + a[2]*tp.T2/3. + a[3]*tp.T3/4. + a[4]*tp.T4/5. + a[5]*tp.InvT
}

func (n *NASA7) SR(tp TempPowers) float64 {
	a := n.coeffs(tp.T)
	return a[0]*tp.LogT + a[1]*tp.T + a[2]*tp.T2/2. + a[3]*tp.T3/3. + a[4]*tp.T4/4. + a[6]
}

func (n *NASA7) GRT(tp TempPowers) float64 {
	a := n.coeffs(tp.T)
	return a[0]*(1.-tp.LogT) - a[1]*tp.T/2. - a[2]*tp.T2/6. - a[3]*tp.T3/12. - a[4]*tp.T4/20. +
		a[5]*tp.InvT - a[6]
}

func (n *NASA7) DCpRdT(tp TempPowers) float64 {
	a := n.coeffs(tp.T)
	return a[1] + 2.*a[2]*tp.T + 3.*a[3]*tp.T2 + 4.*a[4]*tp.T3
}

// Table evaluates the fits of an ordered species list. Every method writes
// one value per species into a caller supplied buffer of len(tb).
type Table []NASA7

func (tb Table) CpR(tp TempPowers, cpR []float64) {
	for i := range tb {
		cpR[i] = tb[i].CpR(tp)
	}
}

func (tb Table) CvR(tp TempPowers, cvR []float64) {
	for i := range tb {
		cvR[i] = tb[i].CpR(tp) - 1.
	}
}

// HRT is the dimensionless enthalpy h/RT
func (tb Table) HRT(tp TempPowers, hRT []float64) {
	for i := range tb {
		hRT[i] = tb[i].HRT(tp)
	}
}

// URT is the dimensionless internal energy u/RT
func (tb Table) URT(tp TempPowers, uRT []float64) {
	for i := range tb {
		uRT[i] = tb[i].HRT(tp) - 1.
	}
}

func (tb Table) SR(tp TempPowers, sR []float64) {
	for i := range tb {
		sR[i] = tb[i].SR(tp)
	}
}

// GRT is the dimensionless Gibbs energy g/RT
func (tb Table) GRT(tp TempPowers, gRT []float64) {
	for i := range tb {
		gRT[i] = tb[i].GRT(tp)
	}
}

// ART is the dimensionless Helmholtz energy a/RT
func (tb Table) ART(tp TempPowers, aRT []float64) {
	for i := range tb {
		aRT[i] = tb[i].GRT(tp) - 1.
	}
}

// DCpRdT is the temperature derivative of cp/R, which equals that of cv/R
func (tb Table) DCpRdT(tp TempPowers, dcpRdT []float64) {
	for i := range tb {
		dcpRdT[i] = tb[i].DCpRdT(tp)
	}
}

// SwitchTemperature returns the common range boundary of a species fit
func (tb Table) SwitchTemperature(i int) float64 {
	return tb[i].TMid
}
