package mechanism

import (
	"github.com/notargets/gokinetics/thermo"
)

// Standard state fits of the GRI-Mech 3.0 thermodynamic database
var speciesLibrary = map[string]Species{
	"H2": {
		Name:        "H2",
		Composition: []ElementCount{{"H", 2}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{2.34433112e+00, 7.98052075e-03, -1.94781510e-05, 2.01572094e-08,
				-7.37611761e-12, -9.17935173e+02, 6.83010238e-01},
			High: [7]float64{3.33727920e+00, -4.94024731e-05, 4.99456778e-07, -1.79566394e-10,
				2.00255376e-14, -9.50158922e+02, -3.20502331e+00},
		},
	},
	"O2": {
		Name:        "O2",
		Composition: []ElementCount{{"O", 2}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{3.78245636e+00, -2.99673416e-03, 9.84730201e-06, -9.68129509e-09,
				3.24372837e-12, -1.06394356e+03, 3.65767573e+00},
			High: [7]float64{3.28253784e+00, 1.48308754e-03, -7.57966669e-07, 2.09470555e-10,
				-2.16717794e-14, -1.08845772e+03, 5.45323129e+00},
		},
	},
	"H2O": {
		Name:        "H2O",
		Composition: []ElementCount{{"H", 2}, {"O", 1}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{4.19864056e+00, -2.03643410e-03, 6.52040211e-06, -5.48797062e-09,
				1.77197817e-12, -3.02937267e+04, -8.49032208e-01},
			High: [7]float64{3.03399249e+00, 2.17691804e-03, -1.64072518e-07, -9.70419870e-11,
				1.68200992e-14, -3.00042971e+04, 4.96677010e+00},
		},
	},
	"H": {
		Name:        "H",
		Composition: []ElementCount{{"H", 1}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{2.50000000e+00, 7.05332819e-13, -1.99591964e-15, 2.30081632e-18,
				-9.27732332e-22, 2.54736599e+04, -4.46682853e-01},
			High: [7]float64{2.50000001e+00, -2.30842973e-11, 1.61561948e-14, -4.73515235e-18,
				4.98197357e-22, 2.54736599e+04, -4.46682914e-01},
		},
	},
	"O": {
		Name:        "O",
		Composition: []ElementCount{{"O", 1}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{3.16826710e+00, -3.27931884e-03, 6.64306396e-06, -6.12806624e-09,
				2.11265971e-12, 2.91222592e+04, 2.05193346e+00},
			High: [7]float64{2.56942078e+00, -8.59741137e-05, 4.19484589e-08, -1.00177799e-11,
				1.22833691e-15, 2.92175791e+04, 4.78433864e+00},
		},
	},
	"OH": {
		Name:        "OH",
		Composition: []ElementCount{{"O", 1}, {"H", 1}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{3.99201543e+00, -2.40131752e-03, 4.61793841e-06, -3.88113333e-09,
				1.36411470e-12, 3.61508056e+03, -1.03925458e-01},
			High: [7]float64{3.09288767e+00, 5.48429716e-04, 1.26505228e-07, -8.79461556e-11,
				1.17412376e-14, 3.85865700e+03, 4.47669610e+00},
		},
	},
	"HO2": {
		Name:        "HO2",
		Composition: []ElementCount{{"H", 1}, {"O", 2}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{4.30179801e+00, -4.74912051e-03, 2.11582891e-05, -2.42763894e-08,
				9.29225124e-12, 2.94808040e+02, 3.71666245e+00},
			High: [7]float64{4.01721090e+00, 2.23982013e-03, -6.33658150e-07, 1.14246370e-10,
				-1.07908535e-14, 1.11856713e+02, 3.78510215e+00},
		},
	},
	"H2O2": {
		Name:        "H2O2",
		Composition: []ElementCount{{"H", 2}, {"O", 2}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{4.27611269e+00, -5.42822417e-04, 1.67335701e-05, -2.15770813e-08,
				8.62454363e-12, -1.77025821e+04, 3.43505074e+00},
			High: [7]float64{4.16500285e+00, 4.90831694e-03, -1.90139225e-06, 3.71185986e-10,
				-2.87908305e-14, -1.78617877e+04, 2.91615662e+00},
		},
	},
	"N2": {
		Name:        "N2",
		Composition: []ElementCount{{"N", 2}},
		Thermo: thermo.NASA7{
			TLow: 300, TMid: 1000, THigh: 5000,
			Low: [7]float64{3.298677e+00, 1.4082404e-03, -3.963222e-06, 5.641515e-09,
				-2.444854e-12, -1.020899e+03, 3.950372e+00},
			High: [7]float64{2.92664e+00, 1.4879768e-03, -5.68476e-07, 1.0097038e-10,
				-6.753351e-15, -9.227977e+02, 5.980528e+00},
		},
	},
	"CH4": {
		Name:        "CH4",
		Composition: []ElementCount{{"C", 1}, {"H", 4}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{5.14987613e+00, -1.36709788e-02, 4.91800599e-05, -4.84743026e-08,
				1.66693956e-11, -1.02466476e+04, -4.64130376e+00},
			High: [7]float64{7.48514950e-02, 1.33909467e-02, -5.73285809e-06, 1.22292535e-09,
				-1.01815230e-13, -9.46834459e+03, 1.84373180e+01},
		},
	},
	"CO": {
		Name:        "CO",
		Composition: []ElementCount{{"C", 1}, {"O", 1}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{3.57953347e+00, -6.10353680e-04, 1.01681433e-06, 9.07005884e-10,
				-9.04424499e-13, -1.43440860e+04, 3.50840928e+00},
			High: [7]float64{2.71518561e+00, 2.06252743e-03, -9.98825771e-07, 2.30053008e-10,
				-2.03647716e-14, -1.41518724e+04, 7.81868772e+00},
		},
	},
	"CO2": {
		Name:        "CO2",
		Composition: []ElementCount{{"C", 1}, {"O", 2}},
		Thermo: thermo.NASA7{
			TLow: 200, TMid: 1000, THigh: 3500,
			Low: [7]float64{2.35677352e+00, 8.98459677e-03, -7.12356269e-06, 2.45919022e-09,
				-1.43699548e-13, -4.83719697e+04, 9.90105222e+00},
			High: [7]float64{3.85746029e+00, 4.41437026e-03, -2.21481404e-06, 5.23490188e-10,
				-4.72084164e-14, -4.87591660e+04, 2.27163806e+00},
		},
	},
}

func speciesList(names ...string) (sp []Species) {
	sp = make([]Species, len(names))
	for i, name := range names {
		s, ok := speciesLibrary[name]
		if !ok {
			panic("species " + name + " missing from the thermodynamic library")
		}
		s.Composition = append([]ElementCount(nil), s.Composition...)
		sp[i] = s
	}
	return
}
