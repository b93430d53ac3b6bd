package kinetics

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/gokinetics/thermo"
	"github.com/notargets/gokinetics/utils"
)

// Batch evaluates many independent cells against one engine. Composition
// arrays are cell major: cell n occupies [n*NS, (n+1)*NS).
//
// The temperature only stages run over all cells first, with the results
// kept in structure of arrays storage, then each cell is finished with the
// same kernels as the scalar path, so results are bit identical to calling
// Engine.ProductionRates once per cell. A Batch owns its scratch and is not
// safe for concurrent use; ProductionRatesParallel builds one per goroutine.
type Batch struct {
	e        *Engine
	N        int
	tp       []thermo.TempPowers
	gRT      []float64 // N*NS
	kInf, kc []float64 // N*NR
	ws       *Workspace
}

func (e *Engine) NewBatch(N int) *Batch {
	return &Batch{
		e:    e,
		N:    N,
		tp:   make([]thermo.TempPowers, N),
		gRT:  make([]float64, N*e.NS),
		kInf: make([]float64, N*e.NR),
		kc:   make([]float64, N*e.NR),
		ws:   e.NewWorkspace(),
	}
}

func (b *Batch) prepare(T []float64) {
	var (
		e      = b.e
		NS, NR = e.NS, e.NR
	)
	for n := 0; n < b.N; n++ {
		b.tp[n] = thermo.NewTempPowers(T[n])
	}
	for n := 0; n < b.N; n++ {
		e.thermo.GRT(b.tp[n], b.gRT[n*NS:(n+1)*NS])
	}
	for n := 0; n < b.N; n++ {
		e.ForwardRateConstants(b.tp[n], b.kInf[n*NR:(n+1)*NR])
	}
	for n := 0; n < b.N; n++ {
		e.EquilibriumConstants(b.tp[n], b.gRT[n*NS:(n+1)*NS], b.kc[n*NR:(n+1)*NR])
	}
}

// cell points the workspace at the precomputed stages of cell n and
// finishes the reaction states
func (b *Batch) cell(n int, c []float64) {
	var (
		e      = b.e
		NS, NR = e.NS, e.NR
		ws     = b.ws
	)
	copy(ws.GRT, b.gRT[n*NS:(n+1)*NS])
	copy(ws.KInf, b.kInf[n*NR:(n+1)*NR])
	copy(ws.Kc, b.kc[n*NR:(n+1)*NR])
	e.evaluateReactions(c[n*NS:(n+1)*NS], b.tp[n], ws, false)
}

// ProductionRates fills wdot (N*NS) for concentrations c (N*NS) and
// temperatures T (N)
func (b *Batch) ProductionRates(c, T, wdot []float64) {
	NS := b.e.NS
	b.prepare(T)
	for n := 0; n < b.N; n++ {
		b.cell(n, c)
		b.e.accumulate(b.ws, wdot[n*NS:(n+1)*NS])
	}
}

// ProgressRatesFR fills qf and qr (N*NR)
func (b *Batch) ProgressRatesFR(c, T, qf, qr []float64) {
	NR := b.e.NR
	b.prepare(T)
	for n := 0; n < b.N; n++ {
		b.cell(n, c)
		for i := range b.ws.Reactions {
			qf[n*NR+i], qr[n*NR+i] = b.ws.Reactions[i].Qf, b.ws.Reactions[i].Qr
		}
	}
}

// ProductionRatesYR converts mass fractions at density rho per cell, the
// usual layout of a reacting flow solver
func (b *Batch) ProductionRatesYR(rho, T, y, wdot []float64) {
	var (
		e  = b.e
		NS = e.NS
		c  = make([]float64, b.N*NS)
	)
	for n := 0; n < b.N; n++ {
		e.YToConcR(rho[n], y[n*NS:(n+1)*NS], c[n*NS:(n+1)*NS])
	}
	b.ProductionRates(c, T, wdot)
}

// EnthalpyMass fills the specific enthalpy (erg/g) of every species in
// every cell, N*NS
func (b *Batch) EnthalpyMass(T, h []float64) {
	var (
		e  = b.e
		NS = e.NS
		iw = e.Mech.InvWeights()
	)
	for n := 0; n < b.N; n++ {
		tp := thermo.NewTempPowers(T[n])
		hn := h[n*NS : (n+1)*NS]
		e.thermo.HRT(tp, hn)
		RT := thermo.R * tp.T
		for k := 0; k < NS; k++ {
			hn[k] *= RT * iw[k]
		}
	}
}

// ProductionRatesParallel splits the cells into contiguous partitions, one
// Batch per partition. A ParallelDegree of zero uses every CPU.
func (e *Engine) ProductionRatesParallel(ctx context.Context, ParallelDegree int,
	c, T, wdot []float64) (err error) {
	var (
		N  = len(T)
		NS = e.NS
	)
	if N == 0 {
		return
	}
	if ParallelDegree <= 0 {
		ParallelDegree = runtime.NumCPU()
	}
	if ParallelDegree > N {
		ParallelDegree = N
	}
	pm := utils.NewPartitionMap(ParallelDegree, N)
	g, ctx := errgroup.WithContext(ctx)
	for np := 0; np < pm.ParallelDegree; np++ {
		kMin, kMax := pm.GetBucketRange(np)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b := e.NewBatch(kMax - kMin)
			b.ProductionRates(c[kMin*NS:kMax*NS], T[kMin:kMax], wdot[kMin*NS:kMax*NS])
			return nil
		})
	}
	return g.Wait()
}
