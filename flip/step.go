package flip

// Step phase names, reported to the PhaseHook in execution order.
const (
	PhaseIntegrate   = "integrate"
	PhaseSeparate    = "separate"
	PhaseCollide     = "collide"
	PhaseToGrid      = "to_grid"
	PhaseDensity     = "density"
	PhasePressure    = "pressure"
	PhaseToParticles = "to_particles"
	PhaseColor       = "color"
)

// Phases lists every step phase in execution order.
var Phases = []string{
	PhaseIntegrate,
	PhaseSeparate,
	PhaseCollide,
	PhaseToGrid,
	PhaseDensity,
	PhasePressure,
	PhaseToParticles,
	PhaseColor,
}

// PhaseHook is called at the start of each step phase.
type PhaseHook func(phase string)

// SetPhaseHook installs fn to be called as each phase starts. Pass nil to
// remove it.
func (f *Fluid) SetPhaseHook(fn PhaseHook) {
	f.onPhase = fn
}

func (f *Fluid) phase(name string) {
	if f.onPhase != nil {
		f.onPhase(name)
	}
}

// StepParams are the per-frame solver parameters.
type StepParams struct {
	DT                float32
	Gravity           float32
	FlipRatio         float32
	NumPressureIters  int
	NumParticleIters  int
	OverRelaxation    float32
	CompensateDrift   bool
	SeparateParticles bool
	Color             ColorOptions
}

// numSubSteps is the number of solver substeps per Step.
const numSubSteps = 1

// Step advances the simulation by p.DT.
//
// The phase order matters: the pressure solve reads the cell types and
// densities produced by the transfer and density phases just before it.
func (f *Fluid) Step(p StepParams, obs Obstacle) {
	sdt := p.DT / numSubSteps

	for s := 0; s < numSubSteps; s++ {
		f.phase(PhaseIntegrate)
		f.Integrate(sdt, p.Gravity)

		if p.SeparateParticles {
			f.phase(PhaseSeparate)
			f.Separate(p.NumParticleIters)
		}

		f.phase(PhaseCollide)
		f.Collide(obs)

		f.phase(PhaseToGrid)
		f.TransferToGrid()

		f.phase(PhaseDensity)
		f.EstimateDensity()

		f.phase(PhasePressure)
		f.SolvePressure(p.NumPressureIters, sdt, p.OverRelaxation, p.CompensateDrift)

		f.phase(PhaseToParticles)
		f.TransferToParticles(p.FlipRatio)
	}

	f.phase(PhaseColor)
	f.ColorParticles(p.Color)
	f.ColorCells(p.Color.CellMap)
}
