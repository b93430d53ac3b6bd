package thermo

import (
	"errors"
	"fmt"
	"math"
)

var ErrNoConvergence = errors.New("temperature iteration did not converge")

const (
	MaxTemperatureIterations = 50
	temperatureTolerance     = 1.e-6
	defaultTemperatureGuess  = 1000.
)

// TemperatureFromEnthalpy inverts the mixture specific enthalpy h (erg/g)
// at mass fractions y for temperature using Newton iteration from tGuess.
// invW holds the inverse molecular weights of the species.
func (tb Table) TemperatureFromEnthalpy(h float64, y, invW []float64, tGuess float64) (T float64, err error) {
	return tb.solveTemperature(h, y, invW, tGuess, 0.)
}

// TemperatureFromEnergy inverts the mixture specific internal energy e (erg/g)
func (tb Table) TemperatureFromEnergy(e float64, y, invW []float64, tGuess float64) (T float64, err error) {
	return tb.solveTemperature(e, y, invW, tGuess, 1.)
}

// MixtureEnthalpyMass returns h (erg/g) and cp (erg/(g K)) of the mixture
func (tb Table) MixtureEnthalpyMass(T float64, y, invW []float64) (h, cp float64) {
	return tb.mixtureEnergy(NewTempPowers(T), y, invW, 0.)
}

// MixtureEnergyMass returns e (erg/g) and cv (erg/(g K)) of the mixture
func (tb Table) MixtureEnergyMass(T float64, y, invW []float64) (e, cv float64) {
	return tb.mixtureEnergy(NewTempPowers(T), y, invW, 1.)
}

// shift is 0 for the enthalpy form and 1 for the internal energy form, using
// u/RT = h/RT - 1 and cv/R = cp/R - 1
func (tb Table) mixtureEnergy(tp TempPowers, y, invW []float64, shift float64) (f, dfdT float64) {
	var (
		RT = R * tp.T
	)
	for i := range tb {
		yw := y[i] * invW[i]
		f += yw * (tb[i].HRT(tp) - shift) * RT
		dfdT += yw * (tb[i].CpR(tp) - shift) * R
	}
	return
}

func (tb Table) solveTemperature(target float64, y, invW []float64, tGuess, shift float64) (T float64, err error) {
	T = tGuess
	if !(T > 0) || math.IsInf(T, 0) {
		T = defaultTemperatureGuess
	}
	for iter := 0; iter < MaxTemperatureIterations; iter++ {
		f, dfdT := tb.mixtureEnergy(NewTempPowers(T), y, invW, shift)
		dT := (target - f) / dfdT
		if math.IsNaN(dT) || math.IsInf(dT, 0) {
			break
		}
		// Limit the step so the iterate never leaves the positive axis
		if T+dT <= 0 {
			dT = -0.5 * T
		}
		T += dT
		if math.Abs(dT) < temperatureTolerance*T {
			return T, nil
		}
	}
	err = fmt.Errorf("%w: target %g after %d iterations, last T = %g",
		ErrNoConvergence, target, MaxTemperatureIterations, T)
	return
}
