package mechanism

// H2O2 is a reduced hydrogen-oxygen mechanism with nitrogen diluent. It
// carries every rate law family: falloff with Troe (three and four
// parameter), SRI and Lindemann blending, a specific collider, plain third
// body reactions, an explicit reverse rate and an irreversible step.
//
// Reactions are stored falloff first, then third body, then elementary;
// the reaction map recovers the input file numbering.
func H2O2() (*Mechanism, error) {
	const (
		H2 = iota
		O2
		H2O
		H
		O
		OH
		HO2
		H2O2
		N2
	)
	species := speciesList("H2", "O2", "H2O", "H", "O", "OH", "HO2", "H2O2", "N2")
	tbAll := func(k ...int) ThirdBody { return ThirdBody{AllSpecies: true, Species: k} }
	reactions := []Reaction{
		{ // 7
			Equation:   "H + OH (+M) <=> H2O (+M)",
			Reactants:  []StoichTerm{{H, 1}, {OH, 1}},
			Products:   []StoichTerm{{H2O, 1}},
			Reversible: true,
			Kind:       FalloffReaction,
			Falloff:    SRIFalloff,
			ThirdBody:  tbAll(H2, H2O),
		},
		{ // 8
			Equation:   "H + O2 (+M) <=> HO2 (+M)",
			Reactants:  []StoichTerm{{H, 1}, {O2, 1}},
			Products:   []StoichTerm{{HO2, 1}},
			Reversible: true,
			Kind:       FalloffReaction,
			Falloff:    TroeFalloff,
			ThirdBody:  tbAll(H2, H2O, O2),
		},
		{ // 10
			Equation:   "H2O2 (+M) <=> 2 OH (+M)",
			Reactants:  []StoichTerm{{H2O2, 1}},
			Products:   []StoichTerm{{OH, 2}},
			Reversible: true,
			Kind:       FalloffReaction,
			Falloff:    TroeFalloff,
			ThirdBody:  tbAll(H2, H2O),
		},
		{ // 12
			Equation:   "H + O2 (+H2O) <=> HO2 (+H2O)",
			Reactants:  []StoichTerm{{H, 1}, {O2, 1}},
			Products:   []StoichTerm{{HO2, 1}},
			Reversible: true,
			Kind:       FalloffReaction,
			Falloff:    Lindemann,
			ThirdBody:  ThirdBody{Species: []int{H2O}},
		},
		{ // 5
			Equation:   "H2 + M <=> 2 H + M",
			Reactants:  []StoichTerm{{H2, 1}},
			Products:   []StoichTerm{{H, 2}},
			Reversible: true,
			Kind:       ThirdBodyReaction,
			ThirdBody:  tbAll(H2, H2O),
		},
		{ // 6
			Equation:   "2 O + M <=> O2 + M",
			Reactants:  []StoichTerm{{O, 2}},
			Products:   []StoichTerm{{O2, 1}},
			Reversible: true,
			Kind:       ThirdBodyReaction,
			ThirdBody:  tbAll(H2, H2O),
		},
		{ // 1
			Equation:   "H + O2 <=> O + OH",
			Reactants:  []StoichTerm{{H, 1}, {O2, 1}},
			Products:   []StoichTerm{{O, 1}, {OH, 1}},
			Reversible: true,
		},
		{ // 2
			Equation:   "O + H2 <=> H + OH",
			Reactants:  []StoichTerm{{O, 1}, {H2, 1}},
			Products:   []StoichTerm{{H, 1}, {OH, 1}},
			Reversible: true,
		},
		{ // 3
			Equation:   "H2 + OH <=> H2O + H",
			Reactants:  []StoichTerm{{H2, 1}, {OH, 1}},
			Products:   []StoichTerm{{H2O, 1}, {H, 1}},
			Reversible: true,
		},
		{ // 4
			Equation:   "O + H2O <=> 2 OH",
			Reactants:  []StoichTerm{{O, 1}, {H2O, 1}},
			Products:   []StoichTerm{{OH, 2}},
			Reversible: true,
		},
		{ // 9
			Equation:   "HO2 + H <=> H2 + O2",
			Reactants:  []StoichTerm{{HO2, 1}, {H, 1}},
			Products:   []StoichTerm{{H2, 1}, {O2, 1}},
			Reversible: true,
			HasReverse: true,
		},
		{ // 11
			Equation:  "HO2 + OH => H2O + O2",
			Reactants: []StoichTerm{{HO2, 1}, {OH, 1}},
			Products:  []StoichTerm{{H2O, 1}, {O2, 1}},
		},
	}
	u := DefaultUnits
	params := &ParameterSet{
		Reactions: []ReactionParams{
			{
				Forward:      Arrhenius{4.0e13, 0.234, -114.2},
				Low:          Arrhenius{2.2e22, -2.0, 0.},
				SRI:          SRI{A: 0.45, B: 797., C: 979., D: 1.1, E: -0.05, Len: 5},
				Efficiencies: []float64{2.5, 12.},
				Units:        u,
			},
			{
				Forward:      Arrhenius{1.475e12, 0.60, 0.},
				Low:          Arrhenius{6.366e20, -1.72, 524.8},
				Troe:         Troe{A: 0.8, T3: 1.e-30, T1: 1.e30, Len: 3},
				Efficiencies: []float64{2.0, 11., 0.78},
				Units:        u,
			},
			{
				Forward:      Arrhenius{2.951e14, 0., 48430.},
				Low:          Arrhenius{1.202e17, 0., 45500.},
				Troe:         Troe{A: 0.735, T3: 94., T1: 1756., T2: 5182., Len: 4},
				Efficiencies: []float64{2.5, 12.},
				Units:        u,
			},
			{
				Forward:      Arrhenius{1.475e12, 0.60, 0.},
				Low:          Arrhenius{9.38e18, -0.76, 0.},
				Efficiencies: []float64{1.},
				Units:        u,
			},
			{
				Forward:      Arrhenius{4.577e19, -1.40, 104380.},
				Efficiencies: []float64{2.5, 12.},
				Units:        u,
			},
			{
				Forward:      Arrhenius{6.165e15, -0.5, 0.},
				Efficiencies: []float64{2.5, 12.},
				Units:        u,
			},
			{Forward: Arrhenius{3.547e15, -0.406, 16599.}, Units: u},
			{Forward: Arrhenius{5.08e4, 2.67, 6290.}, Units: u},
			{Forward: Arrhenius{2.16e8, 1.51, 3430.}, Units: u},
			{Forward: Arrhenius{2.97e6, 2.02, 13400.}, Units: u},
			{
				Forward: Arrhenius{1.66e13, 0., 823.},
				Reverse: Arrhenius{3.164e12, 0.35, 55510.},
				Units:   u,
			},
			{Forward: Arrhenius{2.89e13, 0., -497.}, Units: u},
		},
	}
	rmap := []int{7, 8, 10, 12, 5, 6, 1, 2, 3, 4, 9, 11}
	return New("H2O2", species, reactions, params, rmap)
}
