package mechanism

import (
	"fmt"
)

type Arrhenius struct {
	A, Beta, Ea float64
}

// Troe holds a, T***, T* and the optional T** (Len == 4)
type Troe struct {
	A, T3, T1, T2 float64
	Len           int
}

// SRI holds a, b, c and the optional d, e (Len == 5, otherwise d=1, e=0)
type SRI struct {
	A, B, C, D, E float64
	Len           int
}

// Units holds the scale factors applied to the raw reaction parameters.
// Activation converts Ea to Kelvin, Prefactor scales A, Phase scales the
// concentration products.
type Units struct {
	Activation, Prefactor, Phase float64
}

// DefaultUnits are for A in cm-mol-s and Ea in cal/mol
var DefaultUnits = Units{
	Activation: 1. / 1.98720425864083,
	Prefactor:  1.,
	Phase:      1.,
}

type ReactionParams struct {
	Forward Arrhenius // High pressure limit for falloff reactions
	Low     Arrhenius
	Reverse Arrhenius
	Troe    Troe
	SRI     SRI
	// Efficiencies are aligned with Reaction.ThirdBody.Species
	Efficiencies []float64
	Units        Units
}

// ParameterSet holds every numeric rate parameter of a mechanism
type ParameterSet struct {
	Reactions []ReactionParams
}

func (ps *ParameterSet) Clone() (c *ParameterSet) {
	c = &ParameterSet{Reactions: make([]ReactionParams, len(ps.Reactions))}
	c.CopyFrom(ps)
	return
}

// CopyFrom overwrites the receiver with src without reallocating when the
// shapes agree
func (ps *ParameterSet) CopyFrom(src *ParameterSet) {
	if len(ps.Reactions) != len(src.Reactions) {
		ps.Reactions = make([]ReactionParams, len(src.Reactions))
	}
	for i := range src.Reactions {
		eff := ps.Reactions[i].Efficiencies
		ps.Reactions[i] = src.Reactions[i]
		if len(eff) == len(src.Reactions[i].Efficiencies) && eff != nil {
			copy(eff, src.Reactions[i].Efficiencies)
			ps.Reactions[i].Efficiencies = eff
		} else if src.Reactions[i].Efficiencies != nil {
			ps.Reactions[i].Efficiencies = append([]float64(nil), src.Reactions[i].Efficiencies...)
		}
	}
}

func (ps *ParameterSet) Equal(o *ParameterSet) bool {
	if len(ps.Reactions) != len(o.Reactions) {
		return false
	}
	for i := range ps.Reactions {
		a, b := &ps.Reactions[i], &o.Reactions[i]
		if a.Forward != b.Forward || a.Low != b.Low || a.Reverse != b.Reverse ||
			a.Troe != b.Troe || a.SRI != b.SRI || a.Units != b.Units ||
			len(a.Efficiencies) != len(b.Efficiencies) {
			return false
		}
		for j := range a.Efficiencies {
			if a.Efficiencies[j] != b.Efficiencies[j] {
				return false
			}
		}
	}
	return true
}

func (ps *ParameterSet) String() string {
	return fmt.Sprintf("ParameterSet[%d reactions]", len(ps.Reactions))
}
