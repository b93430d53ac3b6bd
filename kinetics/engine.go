package kinetics

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/notargets/gokinetics/mechanism"
	"github.com/notargets/gokinetics/thermo"
)

// Engine evaluates the kinetics of one mechanism. It owns the ACTIVE rate
// parameter set; the mechanism tables and their DEFAULT parameters are
// shared read only.
//
// Evaluation methods are safe for concurrent use. Modifying the ACTIVE set
// (Active, ResetToDefault, Restore) is not, and must only happen while no
// evaluation is in flight.
type Engine struct {
	Mech   *mechanism.Mechanism
	active *mechanism.ParameterSet
	thermo thermo.Table
	NS, NR int
	logger zerolog.Logger
	pool   sync.Pool
}

type Option func(*Engine)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(mech *mechanism.Mechanism, opts ...Option) (e *Engine) {
	e = &Engine{
		Mech:   mech,
		active: mech.Default.Clone(),
		thermo: mech.Thermo(),
		NS:     mech.NumSpecies(),
		NR:     mech.NumReactions(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.pool.New = func() any { return e.NewWorkspace() }
	e.logger.Debug().
		Str("mechanism", mech.Name).
		Int("species", e.NS).
		Int("reactions", e.NR).
		Msg("kinetics engine created")
	return
}

// Active returns the parameter set used by every evaluation
func (e *Engine) Active() *mechanism.ParameterSet { return e.active }

// ResetToDefault copies the DEFAULT parameters over the ACTIVE set
func (e *Engine) ResetToDefault() {
	e.active.CopyFrom(e.Mech.Default)
	e.logger.Debug().Str("mechanism", e.Mech.Name).Msg("active parameters reset to default")
}

// Snapshot returns a deep copy of the ACTIVE parameters
func (e *Engine) Snapshot() *mechanism.ParameterSet {
	return e.active.Clone()
}

// Restore overwrites the ACTIVE parameters with a snapshot
func (e *Engine) Restore(ps *mechanism.ParameterSet) {
	e.active.CopyFrom(ps)
	e.logger.Debug().Str("mechanism", e.Mech.Name).Msg("active parameters restored")
}

func (e *Engine) Thermo() thermo.Table { return e.thermo }

func (e *Engine) getWorkspace() *Workspace {
	return e.pool.Get().(*Workspace)
}

func (e *Engine) putWorkspace(ws *Workspace) {
	e.pool.Put(ws)
}

// Workspace holds the per call scratch of one evaluation
type Workspace struct {
	GRT, HRT  []float64
	KInf, Kc  []float64
	M         []float64
	C         []float64 // Concentrations converted from mass or mole fractions
	Reactions []ReactionState
}

func (e *Engine) NewWorkspace() *Workspace {
	return &Workspace{
		GRT:       make([]float64, e.NS),
		HRT:       make([]float64, e.NS),
		KInf:      make([]float64, e.NR),
		Kc:        make([]float64, e.NR),
		M:         make([]float64, e.NR),
		C:         make([]float64, e.NS),
		Reactions: make([]ReactionState, e.NR),
	}
}
