package cloth

// Simulation defaults matching the SCA 2012 hanging cloth demo.
const (
	DefaultDt         = 1.0 / 60.0
	DefaultIterations = 5
	DefaultSlack      = 1.0
	DefaultDamping    = 0.99
	DefaultWidth      = 30
	DefaultHeight     = 30
	DefaultSpacing    = 0.05
)

// DefaultGravity returns the default gravitational acceleration.
func DefaultGravity() Vec3 { return Vec3{Y: -9.8} }

// StepParams are the per-tick simulation parameters. All of them are read
// fresh every tick, so they can be adjusted between ticks without a rebuild.
type StepParams struct {
	Dt         float64
	Gravity    Vec3
	Iterations int
	LRA        bool
	Slack      float64
	Damping    float64
}

// DefaultStepParams returns the demo defaults: five solver
// iterations, LRA on with no slack, light velocity damping.
func DefaultStepParams() StepParams {
	return StepParams{
		Dt:         DefaultDt,
		Gravity:    DefaultGravity(),
		Iterations: DefaultIterations,
		LRA:        true,
		Slack:      DefaultSlack,
		Damping:    DefaultDamping,
	}
}

// Clamp forces the parameters into their valid ranges: at least one solver
// iteration, slack no lower than 1 (an attachment may never be shorter than
// its rest distance), damping in (0, 1], positive dt.
func (p *StepParams) Clamp() {
	if p.Iterations < 1 {
		p.Iterations = 1
	}
	if p.Slack < 1 {
		p.Slack = 1
	}
	if p.Damping <= 0 || p.Damping > 1 {
		p.Damping = DefaultDamping
	}
	if p.Dt <= 0 {
		p.Dt = DefaultDt
	}
}
