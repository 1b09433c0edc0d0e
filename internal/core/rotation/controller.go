package rotation

import (
	"fmt"
	"math"
	"time"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/integrator"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
	"github.com/zeusync/interact/pkg/geom"
)

// DefaultRadialOffset is the distance of the handle beyond the top edge.
const DefaultRadialOffset = 50.0

// Mode selects whether the view has a rotation handle and whether it spins.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeNormal
	ModeSpinnable
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSpinnable:
		return "spinnable"
	default:
		return "none"
	}
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Mode          Mode
	Axis          gesture.Axis
	VelocityScale float64
	Threshold     float64
	RadialOffset  float64
	Model         physics.AngularVelocityModel
	Interval      time.Duration
}

// Controller drives Angle from a handle dragged along a circle around the
// view centre. In spinnable mode a fast release keeps the view turning.
type Controller struct {
	state   *model.State
	opts    Options
	model   physics.AngularVelocityModel
	spinner *integrator.Integrator
	logger  log.Log

	onStep func()
}

func New(state *model.State, scheduler integrator.Scheduler, opts Options, logger log.Log) *Controller {
	if opts.VelocityScale == 0 {
		opts.VelocityScale = gesture.DefaultAngularVelocityScale
	}
	if opts.RadialOffset == 0 {
		opts.RadialOffset = DefaultRadialOffset
	}
	if opts.Interval <= 0 {
		opts.Interval = integrator.DefaultSpinInterval
	}
	if opts.Model == nil {
		opts.Model = physics.NewConstantAngular(0)
	}
	if logger == nil {
		logger = log.NewNop()
	}
	c := &Controller{
		state:  state,
		opts:   opts,
		model:  opts.Model,
		logger: logger.With(log.String("component", "rotation")),
	}
	if opts.Mode == ModeSpinnable {
		c.spinner = integrator.New(scheduler, opts.Interval, c.step, c.logger)
	}
	return c
}

// OnStep registers a callback run after every spin step.
func (c *Controller) OnStep(fn func()) { c.onStep = fn }

// Radius is magnification·height/2 plus the radial offset. A flipped view
// keeps its handle on the same circle.
func (c *Controller) Radius() float64 {
	return Radius(c.state, c.opts.RadialOffset)
}

// Radius computes the handle circle radius for state.
func Radius(state *model.State, radialOffset float64) float64 {
	return state.Magnification*math.Abs(state.Size.Height)/2 + radialOffset
}

func (c *Controller) Handle(s gesture.Sample) error {
	if err := s.Validate(); err != nil {
		return err
	}
	switch s.Phase {
	case gesture.PhaseBegan, gesture.PhaseChanged:
		c.Change(s.Translation, s.Time)
	case gesture.PhaseEnded:
		return c.End(s.Translation, s.Time)
	case gesture.PhaseCancelled:
		c.Cancel()
	}
	return nil
}

// Change updates the live deltaTheta. The first sample of a session stops
// a running spin.
func (c *Controller) Change(translation geom.Vector2, at time.Time) {
	if !gesture.IsRotating(c.state.Spin) {
		c.Reset()
	}
	t := c.opts.Axis.Normalize(translation)
	c.state.Spin = gesture.NextRotation(c.state.Spin, t, at, c.Radius(), c.state.Angle, c.opts.VelocityScale)
}

// End commits angle += deltaTheta(final translation) and starts a spin when
// the release angular speed is strictly above the threshold.
func (c *Controller) End(translation geom.Vector2, _ time.Time) error {
	t := c.opts.Axis.Normalize(translation)
	if !gesture.IsRotating(c.state.Spin) {
		c.Reset()
	}
	near := gesture.DeltaThetaOf(c.state.Spin)
	omega := gesture.AngularVelocityOf(c.state.Spin)
	delta := gesture.DeltaTheta(c.Radius(), c.state.Angle, t, near)

	c.state.Angle += delta
	c.state.Spin = gesture.Inactive{}

	c.logger.Debug("Rotation committed",
		log.Float64("angle", c.state.Angle),
		log.Float64("angular_velocity", omega))

	if c.spinner == nil || math.Abs(omega) <= c.opts.Threshold {
		return nil
	}
	return c.spin(omega)
}

func (c *Controller) Cancel() {
	c.state.Spin = gesture.Inactive{}
}

// Reset stops a running spin and zeroes the model. It is idempotent.
func (c *Controller) Reset() {
	if c.spinner != nil {
		c.spinner.Stop()
	}
	c.model.SetAngularVelocity(0)
	c.state.Spinning = false
}

func (c *Controller) Spinning() bool { return c.spinner != nil && c.spinner.Running() }

func (c *Controller) Model() physics.AngularVelocityModel { return c.model }

func (c *Controller) Options() Options { return c.opts }

// HandlePosition returns where the handle is drawn, relative to the view
// centre.
func (c *Controller) HandlePosition() geom.Vector2 {
	return HandlePosition(c.state, c.opts.RadialOffset)
}

func (c *Controller) spin(omega float64) error {
	c.Reset()
	c.model.SetAngularVelocity(omega)
	if _, err := c.spinner.Start(); err != nil {
		c.model.SetAngularVelocity(0)
		return fmt.Errorf("start spin: %w", err)
	}
	c.state.Spinning = true
	c.logger.Debug("Spin started", log.Float64("angular_velocity", omega))
	return nil
}

func (c *Controller) step(dt float64) {
	w := c.model.Next(c.state.Angle, dt)
	if !math.IsNaN(w) && !math.IsInf(w, 0) {
		c.state.Angle += w * dt
	}
	if c.onStep != nil {
		c.onStep()
	}
}
