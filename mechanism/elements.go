package mechanism

import (
	"fmt"
)

// AtomicWeights in g/mol
var AtomicWeights = map[string]float64{
	"H":  1.00797,
	"C":  12.01115,
	"N":  14.0067,
	"O":  15.9994,
	"AR": 39.948,
}

func molecularWeight(comp []ElementCount) (w float64, err error) {
	for _, ec := range comp {
		aw, ok := AtomicWeights[ec.Element]
		if !ok {
			return 0, fmt.Errorf("unknown element %s", ec.Element)
		}
		w += aw * float64(ec.Count)
	}
	if !(w > 0) {
		err = fmt.Errorf("species has no mass")
	}
	return
}
