package InputParameters

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gokinetics/kinetics"
	"github.com/notargets/gokinetics/mechanism"
	"github.com/notargets/gokinetics/thermo"
)

func TestParse(t *testing.T) {
	var rs ReactorState
	require.NoError(t, rs.Parse([]byte(ExampleFile)))
	assert.Equal(t, "H2O2", rs.Mechanism)
	assert.Equal(t, 1200., rs.Temperature)
	assert.Equal(t, 3.76, rs.Composition["N2"])
	assert.Equal(t, kinetics.ConstantPressure, rs.Form())

	var buf bytes.Buffer
	rs.Print(&buf)
	assert.Contains(t, buf.String(), "X[O2] = 1")
	assert.Contains(t, buf.String(), "= Mechanism")

	{ // Defaults
		var rs ReactorState
		require.NoError(t, rs.Parse([]byte(`
Mechanism: JL4
Temperature: 1500
Density: 1.e-3
Formulation: ConstantVolume
Composition: {CH4: 1, O2: 2, N2: 7.52}
`)))
		assert.Equal(t, "X", rs.Basis)
		assert.Equal(t, 1, rs.Cells)
		assert.Equal(t, kinetics.ConstantVolume, rs.Form())
	}
	bad := []string{
		`Temperature: 1000
Pressure: 1
Composition: {H2: 1}`,
		`Mechanism: H2O2
Temperature: -5
Pressure: 1
Composition: {H2: 1}`,
		`Mechanism: H2O2
Temperature: 1000
Composition: {H2: 1}`,
		`Mechanism: H2O2
Temperature: 1000
Pressure: 1
Basis: Z
Composition: {H2: 1}`,
		`Mechanism: H2O2
Temperature: 1000
Pressure: 1`,
		`Mechanism: [H2O2`,
	}
	for _, in := range bad {
		var rs ReactorState
		assert.Error(t, rs.Parse([]byte(in)), in)
	}
}

func TestConcentrations(t *testing.T) {
	m, err := mechanism.H2O2()
	require.NoError(t, err)
	e := kinetics.NewEngine(m)
	var rs ReactorState
	require.NoError(t, rs.Parse([]byte(ExampleFile)))

	c, err := rs.Concentrations(e)
	require.NoError(t, err)
	assert.InEpsilon(t, thermo.PAtm, e.PressureC(rs.Temperature, c), 1.e-14)
	assert.InEpsilon(t, 2., c[0]/c[1], 1.e-14)
	assert.Equal(t, 0., c[3])

	{ // Mass fractions at the same density recover the same state
		y := make([]float64, e.NS)
		e.CToY(c, y)
		rho := floats.Dot(c, m.Weights())
		rsY := ReactorState{Mechanism: "H2O2", Temperature: rs.Temperature, Density: rho, Basis: "Y",
			Composition: map[string]float64{}}
		for k, name := range m.SpeciesNames() {
			if y[k] > 0 {
				rsY.Composition[name] = y[k]
			}
		}
		cY, err := rsY.Concentrations(e)
		require.NoError(t, err)
		for k := range c {
			assert.InDelta(t, c[k], cY[k], 1.e-14*floats.Max(c))
		}
	}
	{ // Unknown species
		rsBad := rs
		rsBad.Composition = map[string]float64{"CH4": 1.}
		_, err := rsBad.Concentrations(e)
		assert.True(t, errors.Is(err, mechanism.ErrUnknownSpecies))
	}
	{ // Cells spread in temperature at fixed pressure
		rsCells := rs
		rsCells.Cells = 4
		rsCells.TemperatureSpread = 900.
		cc, T, err := rsCells.CellStates(e)
		require.NoError(t, err)
		assert.Equal(t, []float64{1200., 1500., 1800., 2100.}, T)
		for n := range T {
			assert.InEpsilon(t, thermo.PAtm, e.PressureC(T[n], cc[n*e.NS:(n+1)*e.NS]), 1.e-14)
		}
	}
}

func TestReadFile(t *testing.T) {
	var (
		dir  = t.TempDir()
		file = filepath.Join(dir, "state.yaml")
	)
	require.NoError(t, os.WriteFile(file, []byte(ExampleFile), 0o644))
	rs, err := ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "Stoichiometric hydrogen in air", rs.Title)
	_, err = ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
