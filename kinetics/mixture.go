package kinetics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gokinetics/thermo"
)

// MeanWeightY is the mixture molecular weight from mass fractions
func (e *Engine) MeanWeightY(y []float64) float64 {
	return 1. / floats.Dot(y, e.Mech.InvWeights())
}

// MeanWeightX is the mixture molecular weight from mole fractions
func (e *Engine) MeanWeightX(x []float64) float64 {
	return floats.Dot(x, e.Mech.Weights())
}

// MeanWeightC is the mixture molecular weight from concentrations
func (e *Engine) MeanWeightC(c []float64) float64 {
	return floats.Dot(c, e.Mech.Weights()) / floats.Sum(c)
}

func (e *Engine) YToX(y, x []float64) {
	var (
		wbar = e.MeanWeightY(y)
		iw   = e.Mech.InvWeights()
	)
	for k := 0; k < e.NS; k++ {
		x[k] = y[k] * iw[k] * wbar
	}
}

func (e *Engine) XToY(x, y []float64) {
	var (
		wbarInv = 1. / e.MeanWeightX(x)
		w       = e.Mech.Weights()
	)
	for k := 0; k < e.NS; k++ {
		y[k] = x[k] * w[k] * wbarInv
	}
}

func (e *Engine) CToX(c, x []float64) {
	var (
		ctotInv = 1. / floats.Sum(c)
	)
	for k := 0; k < e.NS; k++ {
		x[k] = c[k] * ctotInv
	}
}

func (e *Engine) CToY(c, y []float64) {
	var (
		w      = e.Mech.Weights()
		rhoInv = 1. / floats.Dot(c, w)
	)
	for k := 0; k < e.NS; k++ {
		y[k] = c[k] * w[k] * rhoInv
	}
}

// YToConcP converts mass fractions at pressure P (dyne/cm^2) to mol/cm^3
func (e *Engine) YToConcP(P, T float64, y, c []float64) {
	var (
		iw    = e.Mech.InvWeights()
		scale = P / (thermo.R * T * floats.Dot(y, iw))
	)
	for k := 0; k < e.NS; k++ {
		c[k] = scale * y[k] * iw[k]
	}
}

// YToConcR converts mass fractions at density rho (g/cm^3) to mol/cm^3
func (e *Engine) YToConcR(rho float64, y, c []float64) {
	iw := e.Mech.InvWeights()
	for k := 0; k < e.NS; k++ {
		c[k] = rho * y[k] * iw[k]
	}
}

func (e *Engine) XToConcP(P, T float64, x, c []float64) {
	ctot := P / (thermo.R * T)
	for k := 0; k < e.NS; k++ {
		c[k] = ctot * x[k]
	}
}

func (e *Engine) XToConcR(rho float64, x, c []float64) {
	ctot := rho / e.MeanWeightX(x)
	for k := 0; k < e.NS; k++ {
		c[k] = ctot * x[k]
	}
}

// PressureY is the ideal gas pressure of a mixture given by mass fractions
func (e *Engine) PressureY(rho, T float64, y []float64) float64 {
	return rho * thermo.R * T * floats.Dot(y, e.Mech.InvWeights())
}

func (e *Engine) PressureX(rho, T float64, x []float64) float64 {
	return rho * thermo.R * T / e.MeanWeightX(x)
}

func (e *Engine) PressureC(T float64, c []float64) float64 {
	return floats.Sum(c) * thermo.R * T
}

func (e *Engine) DensityY(P, T float64, y []float64) float64 {
	return P * e.MeanWeightY(y) / (thermo.R * T)
}

func (e *Engine) DensityX(P, T float64, x []float64) float64 {
	return P * e.MeanWeightX(x) / (thermo.R * T)
}
