package jacobian

import (
	"fmt"
	"sort"

	"github.com/notargets/gokinetics/kinetics"
	"github.com/notargets/gokinetics/mechanism"
)

// Pattern is the structural nonzero set of the block diagonal Jacobian of
// Cells independent cells, each block (NS+1)x(NS+1) with the temperature
// equation last. It is stored compressed by column.
//
// A Pattern is immutable once built and safe for concurrent readers.
type Pattern struct {
	NS, N   int // Species count and block size NS+1
	Cells   int
	Precond bool
	Form    kinetics.Formulation
	ColPtrs []int // len Cells*N+1
	RowVals []int
	block   [][]bool // N x N structure of one cell, [row][col]
	slot    []int    // Row major block position -> offset inside a block column, -1 if absent
}

// reactionColumns lists the species whose concentration enters the rate of
// progress of reaction i. The third body collision partners are left out
// of the preconditioner.
func reactionColumns(mech *mechanism.Mechanism, i int, precond bool) (cols []int) {
	var (
		r    = &mech.Reactions[i]
		seen = make(map[int]bool)
		add  = func(k int) {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	)
	for _, st := range r.ForwardOrders() {
		add(st.Species)
	}
	if r.Reversible {
		for _, st := range r.Products {
			add(st.Species)
		}
	}
	if r.HasThirdBody() && !precond {
		if r.ThirdBody.AllSpecies {
			for k := 0; k < mech.NumSpecies(); k++ {
				add(k)
			}
		} else {
			for _, k := range r.ThirdBody.Species {
				add(k)
			}
		}
	}
	sort.Ints(cols)
	return
}

// reactionRows lists the species with nonzero net stoichiometry in reaction i
func reactionRows(mech *mechanism.Mechanism, i int) (rows []int) {
	for k, nu := range mech.NetStoich(i) {
		if nu != 0 {
			rows = append(rows, k)
		}
	}
	return
}

func NewPattern(mech *mechanism.Mechanism, form kinetics.Formulation, Cells int) *Pattern {
	return newPattern(mech, form, Cells, false)
}

// NewPrecondPattern is the structure of the preconditioner Jacobian of one cell
func NewPrecondPattern(mech *mechanism.Mechanism, form kinetics.Formulation) *Pattern {
	return newPattern(mech, form, 1, true)
}

func newPattern(mech *mechanism.Mechanism, form kinetics.Formulation, Cells int, precond bool) (p *Pattern) {
	var (
		NS = mech.NumSpecies()
		N  = NS + 1
	)
	if Cells < 1 {
		panic(fmt.Errorf("pattern needs at least one cell, have %d", Cells))
	}
	p = &Pattern{
		NS:      NS,
		N:       N,
		Cells:   Cells,
		Precond: precond,
		Form:    form,
		block:   make([][]bool, N),
		slot:    make([]int, N*N),
	}
	for i := range p.block {
		p.block[i] = make([]bool, N)
		p.block[i][i] = true
	}
	for i := 0; i < mech.NumReactions(); i++ {
		rows := reactionRows(mech, i)
		for _, k := range rows {
			for _, j := range reactionColumns(mech, i, precond) {
				p.block[k][j] = true
			}
			p.block[k][NS] = true
		}
	}
	// The temperature rate depends on every concentration through the
	// mixture heat capacity
	for j := 0; j < N; j++ {
		p.block[NS][j] = true
	}
	var (
		nnzBlock int
	)
	for j := 0; j < N; j++ {
		var off int
		for i := 0; i < N; i++ {
			p.slot[i*N+j] = -1
			if p.block[i][j] {
				p.slot[i*N+j] = off
				off++
				nnzBlock++
			}
		}
	}
	p.ColPtrs = make([]int, Cells*N+1)
	p.RowVals = make([]int, 0, Cells*nnzBlock)
	for cell := 0; cell < Cells; cell++ {
		for j := 0; j < N; j++ {
			col := cell*N + j
			for i := 0; i < N; i++ {
				if p.block[i][j] {
					p.RowVals = append(p.RowVals, cell*N+i)
				}
			}
			p.ColPtrs[col+1] = len(p.RowVals)
		}
	}
	return
}

// NNZ is the number of structural nonzeros over all cells
func (p *Pattern) NNZ() int { return len(p.RowVals) }

// Has reports whether (row, col) of one cell block is structurally nonzero
func (p *Pattern) Has(row, col int) bool { return p.block[row][col] }

// CSR returns the same structure compressed by row, with indices offset by
// base (1 for Fortran style solvers)
func (p *Pattern) CSR(base int) (rowPtrs, colVals []int) {
	var (
		NT = p.Cells * p.N
	)
	rowPtrs = make([]int, NT+1)
	colVals = make([]int, 0, p.NNZ())
	rowPtrs[0] = base
	for cell := 0; cell < p.Cells; cell++ {
		for i := 0; i < p.N; i++ {
			row := cell*p.N + i
			for j := 0; j < p.N; j++ {
				if p.block[i][j] {
					colVals = append(colVals, cell*p.N+j+base)
				}
			}
			rowPtrs[row+1] = len(colVals) + base
		}
	}
	return
}

func (p *Pattern) String() string {
	return fmt.Sprintf("Pattern[%dx%d blocks, %d cells, nnz %d, precond %v, %s]",
		p.N, p.N, p.Cells, p.NNZ(), p.Precond, p.Form)
}
