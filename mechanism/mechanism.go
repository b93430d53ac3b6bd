package mechanism

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/gokinetics/thermo"
)

var (
	ErrUnknownMechanism = errors.New("unknown mechanism")
	ErrUnknownSpecies   = errors.New("unknown species")
)

type ReactionKind uint8

const (
	Elementary ReactionKind = iota
	ThirdBodyReaction
	FalloffReaction
)

func (rk ReactionKind) String() string {
	return []string{"Elementary", "ThirdBody", "Falloff"}[rk]
}

type FalloffKind uint8

const (
	Lindemann FalloffKind = iota
	TroeFalloff
	SRIFalloff
)

func (fk FalloffKind) String() string {
	return []string{"Lindemann", "Troe", "SRI"}[fk]
}

type ElementCount struct {
	Element string
	Count   int
}

type Species struct {
	Name        string
	Composition []ElementCount
	Weight      float64
	InvWeight   float64
	Thermo      thermo.NASA7
}

type StoichTerm struct {
	Species int
	Coeff   float64
}

// ThirdBody lists the collision partners of a pressure dependent reaction.
// With AllSpecies set every species contributes, those in Species with the
// efficiency held at the same position in ReactionParams.Efficiencies and
// the rest with unit efficiency. Otherwise only the listed species count.
type ThirdBody struct {
	AllSpecies bool
	Species    []int
}

// Reaction is the fixed structure of one reaction. Numeric rate parameters
// live in a ParameterSet so they can be perturbed without touching structure.
type Reaction struct {
	Equation   string
	Reactants  []StoichTerm
	Products   []StoichTerm
	Orders     []StoichTerm // Forward concentration exponents, nil means the reactant coefficients
	Reversible bool
	HasReverse bool // Explicit reverse Arrhenius parameters
	Kind       ReactionKind
	Falloff    FalloffKind
	ThirdBody  ThirdBody
}

func (r *Reaction) ForwardOrders() []StoichTerm {
	if r.Orders != nil {
		return r.Orders
	}
	return r.Reactants
}

func (r *Reaction) IsPressureDependent() bool {
	return r.Kind == FalloffReaction
}

func (r *Reaction) HasThirdBody() bool {
	return r.Kind != Elementary
}

type Mechanism struct {
	Name      string
	Species   []Species
	Reactions []Reaction
	// Default is the generation time parameter set. It is never modified
	// after New returns; evaluation works on a copy.
	Default     *ParameterSet
	reactionMap []int
	thermoTable thermo.Table
	weights     []float64
	invWeights  []float64
	netStoich   [][]float64
	sumNu       []float64
	speciesIdx  map[string]int
}

// New assembles a mechanism from its tables. Species weights are computed
// from the elemental composition. rmap maps internal reaction order to the
// external numbering; nil means the identity numbered from one. The species,
// reaction and map slices and the parameter set are copied, so the caller's
// values are left untouched.
func New(name string, species []Species, reactions []Reaction, params *ParameterSet,
	rmap []int) (m *Mechanism, err error) {
	m = &Mechanism{
		Name:       name,
		Species:    append([]Species(nil), species...),
		Reactions:  append([]Reaction(nil), reactions...),
		speciesIdx: make(map[string]int, len(species)),
	}
	var (
		NS = len(species)
		NR = len(reactions)
	)
	m.thermoTable = make(thermo.Table, NS)
	m.weights = make([]float64, NS)
	m.invWeights = make([]float64, NS)
	for k := range m.Species {
		sp := &m.Species[k]
		if _, dup := m.speciesIdx[sp.Name]; dup {
			return nil, fmt.Errorf("mechanism %s: duplicate species %s", name, sp.Name)
		}
		m.speciesIdx[sp.Name] = k
		if sp.Weight, err = molecularWeight(sp.Composition); err != nil {
			return nil, fmt.Errorf("mechanism %s, species %s: %w", name, sp.Name, err)
		}
		sp.InvWeight = 1. / sp.Weight
		if !(sp.Thermo.TMid > 0) {
			return nil, fmt.Errorf("mechanism %s, species %s: switch temperature must be positive",
				name, sp.Name)
		}
		m.thermoTable[k] = sp.Thermo
		m.weights[k] = sp.Weight
		m.invWeights[k] = sp.InvWeight
	}
	if params == nil || len(params.Reactions) != NR {
		return nil, fmt.Errorf("mechanism %s: parameter set does not match %d reactions", name, NR)
	}
	m.Default = params.Clone()
	if rmap == nil {
		rmap = make([]int, NR)
		for i := range rmap {
			rmap[i] = i + 1
		}
	}
	if len(rmap) != NR {
		return nil, fmt.Errorf("mechanism %s: reaction map has %d entries, want %d", name, len(rmap), NR)
	}
	m.reactionMap = append([]int(nil), rmap...)
	m.netStoich = make([][]float64, NR)
	m.sumNu = make([]float64, NR)
	for i := range m.Reactions {
		if err = m.validateReaction(i); err != nil {
			return nil, fmt.Errorf("mechanism %s, reaction %d (%s): %w",
				name, i, m.Reactions[i].Equation, err)
		}
		nu := make([]float64, NS)
		for _, st := range m.Reactions[i].Reactants {
			nu[st.Species] -= st.Coeff
		}
		for _, st := range m.Reactions[i].Products {
			nu[st.Species] += st.Coeff
		}
		m.netStoich[i] = nu
		for _, v := range nu {
			m.sumNu[i] += v
		}
	}
	return
}

func (m *Mechanism) validateReaction(i int) (err error) {
	var (
		r  = &m.Reactions[i]
		p  = &m.Default.Reactions[i]
		NS = len(m.Species)
	)
	checkTerms := func(label string, terms []StoichTerm) error {
		for _, st := range terms {
			if st.Species < 0 || st.Species >= NS {
				return fmt.Errorf("%s species index %d out of range", label, st.Species)
			}
			if !(st.Coeff > 0) {
				return fmt.Errorf("%s coefficient %g must be positive", label, st.Coeff)
			}
		}
		return nil
	}
	if err = checkTerms("reactant", r.Reactants); err != nil {
		return
	}
	if err = checkTerms("product", r.Products); err != nil {
		return
	}
	if err = checkTerms("order", r.Orders); err != nil {
		return
	}
	if r.HasReverse && !r.Reversible {
		return fmt.Errorf("explicit reverse parameters on an irreversible reaction")
	}
	if r.HasReverse && r.Kind == FalloffReaction {
		return fmt.Errorf("explicit reverse parameters are not supported on falloff reactions")
	}
	if r.Kind == Elementary {
		if len(r.ThirdBody.Species) != 0 || len(p.Efficiencies) != 0 {
			return fmt.Errorf("third body efficiencies on an elementary reaction")
		}
	} else {
		for _, k := range r.ThirdBody.Species {
			if k < 0 || k >= NS {
				return fmt.Errorf("third body species index %d out of range", k)
			}
		}
		if len(p.Efficiencies) != len(r.ThirdBody.Species) {
			return fmt.Errorf("%d efficiencies for %d third body species",
				len(p.Efficiencies), len(r.ThirdBody.Species))
		}
		if !r.ThirdBody.AllSpecies && len(r.ThirdBody.Species) == 0 {
			return fmt.Errorf("specific collider reaction without collider")
		}
	}
	if r.Kind == FalloffReaction {
		switch r.Falloff {
		case TroeFalloff:
			if p.Troe.Len != 3 && p.Troe.Len != 4 {
				return fmt.Errorf("troe parameter count %d, want 3 or 4", p.Troe.Len)
			}
		case SRIFalloff:
			if p.SRI.Len != 3 && p.SRI.Len != 5 {
				return fmt.Errorf("sri parameter count %d, want 3 or 5", p.SRI.Len)
			}
		}
	}
	return m.checkElementBalance(r)
}

func (m *Mechanism) checkElementBalance(r *Reaction) error {
	balance := make(map[string]float64)
	for _, st := range r.Reactants {
		for _, ec := range m.Species[st.Species].Composition {
			balance[ec.Element] -= st.Coeff * float64(ec.Count)
		}
	}
	for _, st := range r.Products {
		for _, ec := range m.Species[st.Species].Composition {
			balance[ec.Element] += st.Coeff * float64(ec.Count)
		}
	}
	for el, v := range balance {
		if math.Abs(v) > 1.e-12 {
			return fmt.Errorf("element %s unbalanced by %g", el, v)
		}
	}
	return nil
}

func (m *Mechanism) NumSpecies() int   { return len(m.Species) }
func (m *Mechanism) NumReactions() int { return len(m.Reactions) }

func (m *Mechanism) SpeciesIndex(name string) (k int, err error) {
	var ok bool
	if k, ok = m.speciesIdx[name]; !ok {
		return -1, fmt.Errorf("%w: %s in mechanism %s", ErrUnknownSpecies, name, m.Name)
	}
	return
}

func (m *Mechanism) SpeciesNames() (names []string) {
	names = make([]string, len(m.Species))
	for k := range m.Species {
		names[k] = m.Species[k].Name
	}
	return
}

// Weights returns the molecular weights in g/mol. The slice is shared and
// must not be modified.
func (m *Mechanism) Weights() []float64    { return m.weights }
func (m *Mechanism) InvWeights() []float64 { return m.invWeights }

// Thermo returns the species polynomial fits in species order
func (m *Mechanism) Thermo() thermo.Table { return m.thermoTable }

// NetStoich is the product minus reactant coefficient of every species in
// reaction i. The slice is shared and must not be modified.
func (m *Mechanism) NetStoich(i int) []float64 { return m.netStoich[i] }

// SumNu is the change in moles across reaction i
func (m *Mechanism) SumNu(i int) float64 { return m.sumNu[i] }

// ReactionMap returns the external reaction number of every internal reaction
func (m *Mechanism) ReactionMap() []int {
	rm := make([]int, len(m.reactionMap))
	copy(rm, m.reactionMap)
	return rm
}

func (m *Mechanism) ExternalIndex(i int) int { return m.reactionMap[i] }

// Lookup returns a fresh copy of a built in mechanism by name
func Lookup(name string) (m *Mechanism, err error) {
	switch name {
	case "JL4", "jl4":
		return JL4()
	case "H2O2", "h2o2":
		return H2O2()
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMechanism, name)
}

// Names lists the built in mechanisms
func Names() []string {
	return []string{"JL4", "H2O2"}
}
