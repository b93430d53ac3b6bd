package kinetics

import (
	"math"

	"github.com/notargets/gokinetics/mechanism"
	"github.com/notargets/gokinetics/thermo"
)

const (
	ln10        = math.Ln10
	minReducedP = 1.e-200
)

// troe returns the broadening factor F together with dlnF/dlog10(Pr) and
// dlnF/dT at fixed Pr
func troe(p *mechanism.Troe, tp thermo.TempPowers, logPr float64) (F, dlnFdx, dlnFdT float64) {
	var (
		T                = tp.T
		Fcent, dFcentdT  float64
		logFcent, dLdT   float64
		c, n, u, d, f1   float64
		df1dx, df1dL, g  float64
		dlogFdx, dlogFdL float64
	)
	if p.T3 != 0 {
		e3 := math.Exp(-T / p.T3)
		Fcent += (1. - p.A) * e3
		dFcentdT -= (1. - p.A) * e3 / p.T3
	}
	if p.T1 != 0 {
		e1 := math.Exp(-T / p.T1)
		Fcent += p.A * e1
		dFcentdT -= p.A * e1 / p.T1
	}
	if p.Len == 4 {
		e2 := math.Exp(-p.T2 * tp.InvT)
		Fcent += e2
		dFcentdT += p.T2 * tp.InvT * tp.InvT * e2
	}
	logFcent = math.Log10(Fcent)
	dLdT = dFcentdT / (Fcent * ln10)
	c = -0.4 - 0.67*logFcent
	n = 0.75 - 1.27*logFcent
	u = logPr + c
	d = n - 0.14*u
	f1 = u / d
	g = 1. / (1. + f1*f1)
	// d(f1)/dx = n/d^2, dc/dL = -0.67, dd/dL = -1.27 + 0.14*0.67
	df1dx = n / (d * d)
	df1dL = (-0.67*d + (1.27-0.14*0.67)*u) / (d * d)
	dlogFdx = -logFcent * 2. * f1 * df1dx * g * g
	dlogFdL = g - logFcent*2.*f1*df1dL*g*g
	F = math.Pow(10., logFcent*g)
	dlnFdx = ln10 * dlogFdx
	dlnFdT = ln10 * dlogFdL * dLdT
	return
}

// sri returns F = d T^e [a exp(-b/T) + exp(-T/c)]^X with X = 1/(1+log10(Pr)^2)
// and its log derivatives
func sri(p *mechanism.SRI, tp thermo.TempPowers, logPr float64) (F, dlnFdx, dlnFdT float64) {
	var (
		X       = 1. / (1. + logPr*logPr)
		eb      = p.A * math.Exp(-p.B*tp.InvT)
		ec      float64
		Z, lnZ  float64
		d, ee   = 1., 0.
		dZdT    float64
		lnPrefx float64
	)
	if p.C != 0 {
		ec = math.Exp(-tp.T / p.C)
		dZdT -= ec / p.C
	}
	Z = eb + ec
	dZdT += eb * p.B * tp.InvT * tp.InvT
	lnZ = math.Log(Z)
	if p.Len == 5 {
		d, ee = p.D, p.E
	}
	lnPrefx = math.Log(d) + ee*tp.LogT
	F = math.Exp(X*lnZ + lnPrefx)
	dlnFdx = -lnZ * 2. * logPr * X * X
	dlnFdT = ee*tp.InvT + X*dZdT/Z
	return
}

// falloffBlend computes the pressure dependent rate constant from both
// limits. The returned derivatives are dln(kf)/dT at fixed concentrations
// and dkf/d[M] at fixed T; they are only filled when derivs is set.
func falloffBlend(r *mechanism.Reaction, p *mechanism.ReactionParams, tp thermo.TempPowers,
	kInf, M float64, derivs bool, rs *ReactionState) {
	var (
		k0             = arrhenius(&p.Low, &p.Units, tp)
		Pr             = k0 * M / kInf
		logPr          float64
		F              = 1.
		dlnFdx, dlnFdT float64
		clamped        bool
		onePlusPrInv   float64
		dlnk0, dlnkInf float64
		dlnPr, dlnkfdT float64
	)
	if Pr < minReducedP {
		logPr = math.Log10(minReducedP)
		clamped = true
	} else {
		logPr = math.Log10(Pr)
	}
	switch r.Falloff {
	case mechanism.TroeFalloff:
		F, dlnFdx, dlnFdT = troe(&p.Troe, tp, logPr)
	case mechanism.SRIFalloff:
		F, dlnFdx, dlnFdT = sri(&p.SRI, tp, logPr)
	}
	if clamped {
		dlnFdx = 0
	}
	onePlusPrInv = 1. / (1. + Pr)
	rs.K0, rs.Pr, rs.F = k0, Pr, F
	rs.Kf = kInf * Pr * onePlusPrInv * F
	if !derivs {
		return
	}
	dlnk0 = dlnArrheniusdT(&p.Low, &p.Units, tp)
	dlnkInf = dlnArrheniusdT(&p.Forward, &p.Units, tp)
	dlnPr = dlnk0 - dlnkInf
	dlnkfdT = dlnkInf + dlnPr*onePlusPrInv + dlnFdT + dlnFdx*dlnPr/ln10
	rs.DlnKfdT = dlnkfdT
	rs.DKfdM = k0 * F * (onePlusPrInv*onePlusPrInv + dlnFdx*onePlusPrInv/ln10)
}
