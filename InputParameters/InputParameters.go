package InputParameters

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gokinetics/kinetics"
	"github.com/notargets/gokinetics/thermo"
)

// ReactorState is a homogeneous reactor condition read from a YAML file
type ReactorState struct {
	Title       string             `json:"Title"`
	Mechanism   string             `json:"Mechanism"`
	Temperature float64            `json:"Temperature"` // K
	Pressure    float64            `json:"Pressure"`    // atm, the density is used when zero
	Density     float64            `json:"Density"`     // g/cm^3
	Basis       string             `json:"Basis"`       // X (mole), Y (mass) or C (mol/cm^3)
	Composition map[string]float64 `json:"Composition"`
	Formulation string             `json:"Formulation"` // ConstantPressure or ConstantVolume
	Cells       int                `json:"Cells"`
	// Cells are spread linearly from Temperature to Temperature+TemperatureSpread
	TemperatureSpread float64 `json:"TemperatureSpread"`
}

const ExampleFile = `
########################################
Title: "Stoichiometric hydrogen in air"
Mechanism: H2O2
Temperature: 1200.
Pressure: 1. # atm
Basis: X
Composition:
  H2: 2.
  O2: 1.
  N2: 3.76
Formulation: ConstantPressure
Cells: 1
########################################
`

func (rs *ReactorState) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, rs); err != nil {
		return
	}
	if len(rs.Basis) == 0 {
		rs.Basis = "X"
	}
	if rs.Cells == 0 {
		rs.Cells = 1
	}
	switch {
	case len(rs.Mechanism) == 0:
		err = fmt.Errorf("no mechanism given")
	case !(rs.Temperature > 0):
		err = fmt.Errorf("temperature must be positive, have %g", rs.Temperature)
	case rs.Basis != "X" && rs.Basis != "Y" && rs.Basis != "C":
		err = fmt.Errorf("unknown composition basis %q, want X, Y or C", rs.Basis)
	case rs.Basis != "C" && !(rs.Pressure > 0) && !(rs.Density > 0):
		err = fmt.Errorf("one of pressure or density must be positive")
	case len(rs.Composition) == 0:
		err = fmt.Errorf("empty composition")
	case rs.Cells < 0:
		err = fmt.Errorf("cell count %d is negative", rs.Cells)
	}
	return
}

func ReadFile(fileName string) (rs *ReactorState, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	rs = &ReactorState{}
	if err = rs.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return
}

func (rs *ReactorState) Form() kinetics.Formulation {
	return kinetics.NewFormulation(rs.Formulation)
}

// Concentrations converts the composition to mol/cm^3 in species order
func (rs *ReactorState) Concentrations(e *kinetics.Engine) (c []float64, err error) {
	return rs.concentrationsAt(e, rs.Temperature)
}

func (rs *ReactorState) concentrationsAt(e *kinetics.Engine, T float64) (c []float64, err error) {
	var (
		frac = make([]float64, e.NS)
	)
	for name, v := range rs.Composition {
		var k int
		if k, err = e.Mech.SpeciesIndex(name); err != nil {
			return
		}
		if v < 0 {
			return nil, fmt.Errorf("species %s has negative amount %g", name, v)
		}
		frac[k] = v
	}
	c = make([]float64, e.NS)
	if rs.Basis == "C" {
		copy(c, frac)
		return
	}
	sum := floats.Sum(frac)
	if !(sum > 0) {
		return nil, fmt.Errorf("composition sums to %g", sum)
	}
	floats.Scale(1./sum, frac)
	switch {
	case rs.Basis == "X" && rs.Pressure > 0:
		e.XToConcP(rs.Pressure*thermo.PAtm, T, frac, c)
	case rs.Basis == "X":
		e.XToConcR(rs.Density, frac, c)
	case rs.Pressure > 0:
		e.YToConcP(rs.Pressure*thermo.PAtm, T, frac, c)
	default:
		e.YToConcR(rs.Density, frac, c)
	}
	return
}

// CellStates expands the state into rs.Cells cells, cell major
func (rs *ReactorState) CellStates(e *kinetics.Engine) (c, T []float64, err error) {
	var (
		NS = e.NS
		cn []float64
	)
	c = make([]float64, rs.Cells*NS)
	T = make([]float64, rs.Cells)
	for n := range T {
		T[n] = rs.Temperature
		if rs.Cells > 1 {
			T[n] += rs.TemperatureSpread * float64(n) / float64(rs.Cells-1)
		}
		if cn, err = rs.concentrationsAt(e, T[n]); err != nil {
			return
		}
		copy(c[n*NS:], cn)
	}
	return
}

func (rs *ReactorState) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", rs.Title)
	fmt.Fprintf(w, "[%s]\t\t\t= Mechanism\n", rs.Mechanism)
	fmt.Fprintf(w, "%8.3f\t\t= Temperature (K)\n", rs.Temperature)
	if rs.Pressure > 0 {
		fmt.Fprintf(w, "%8.5f\t\t= Pressure (atm)\n", rs.Pressure)
	} else {
		fmt.Fprintf(w, "%8.5g\t\t= Density (g/cm^3)\n", rs.Density)
	}
	fmt.Fprintf(w, "[%s]\t= Formulation\n", rs.Form())
	fmt.Fprintf(w, "[%d]\t\t\t\t= Cells\n", rs.Cells)
	keys := make([]string, 0, len(rs.Composition))
	for k := range rs.Composition {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s[%s] = %g\n", rs.Basis, key, rs.Composition[key])
	}
}
