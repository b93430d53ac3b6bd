package mechanism

// JL4 is the Jones-Lindstedt four step global methane mechanism
//
//	1: CH4 + 0.5 O2 => CO + 2 H2     FORD CH4 0.5, O2 1.25
//	2: CH4 + H2O => CO + 3 H2
//	3: H2 + 0.5 O2 <=> H2O           FORD H2 0.25, O2 1.5
//	4: CO + H2O <=> CO2 + H2
func JL4() (*Mechanism, error) {
	const (
		CH4 = iota
		O2
		H2O
		N2
		CO
		CO2
		H2
	)
	species := speciesList("CH4", "O2", "H2O", "N2", "CO", "CO2", "H2")
	reactions := []Reaction{
		{
			Equation:  "CH4 + 0.5 O2 => CO + 2 H2",
			Reactants: []StoichTerm{{CH4, 1}, {O2, 0.5}},
			Products:  []StoichTerm{{CO, 1}, {H2, 2}},
			Orders:    []StoichTerm{{CH4, 0.5}, {O2, 1.25}},
		},
		{
			Equation:  "CH4 + H2O => CO + 3 H2",
			Reactants: []StoichTerm{{CH4, 1}, {H2O, 1}},
			Products:  []StoichTerm{{CO, 1}, {H2, 3}},
		},
		{
			Equation:   "H2 + 0.5 O2 <=> H2O",
			Reactants:  []StoichTerm{{H2, 1}, {O2, 0.5}},
			Products:   []StoichTerm{{H2O, 1}},
			Orders:     []StoichTerm{{H2, 0.25}, {O2, 1.5}},
			Reversible: true,
		},
		{
			Equation:   "CO + H2O <=> CO2 + H2",
			Reactants:  []StoichTerm{{CO, 1}, {H2O, 1}},
			Products:   []StoichTerm{{CO2, 1}, {H2, 1}},
			Reversible: true,
		},
	}
	params := &ParameterSet{
		Reactions: []ReactionParams{
			{Forward: Arrhenius{7.82e13, 0, 30000.}, Units: DefaultUnits},
			{Forward: Arrhenius{3.0e11, 0, 30000.}, Units: DefaultUnits},
			{Forward: Arrhenius{4.45e18, -1., 40000.}, Units: DefaultUnits},
			{Forward: Arrhenius{2.75e12, 0, 20000.}, Units: DefaultUnits},
		},
	}
	return New("JL4", species, reactions, params, nil)
}
