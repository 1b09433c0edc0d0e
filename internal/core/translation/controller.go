package translation

import (
	"fmt"
	"time"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/integrator"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
	"github.com/zeusync/interact/pkg/geom"
)

// Mode selects plain dragging or dragging with an inertial throw on release.
type Mode uint8

const (
	ModeDrag Mode = iota
	ModeThrowable
)

func (m Mode) String() string {
	if m == ModeThrowable {
		return "throwable"
	}
	return "drag"
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Mode Mode
	Axis gesture.Axis
	// VelocityScale damps the release velocity; zero means gesture.DefaultVelocityScale.
	VelocityScale float64
	// Threshold is the release speed that must be exceeded to start a throw.
	Threshold float64
	// Model drives the throw; nil means a constant-velocity model.
	Model physics.VelocityModel
	// Interval is the nominal integration step; zero means integrator.DefaultThrowInterval.
	Interval time.Duration
}

// Controller turns drag samples into the view's offset. In throwable mode a
// fast enough release hands the offset to an inertial integrator.
type Controller struct {
	state   *model.State
	opts    Options
	model   physics.VelocityModel
	inertia *integrator.Integrator
	logger  log.Log

	onStep func()
}

// New creates a Controller writing into state. scheduler may be nil in drag mode.
func New(state *model.State, scheduler integrator.Scheduler, opts Options, logger log.Log) *Controller {
	if opts.VelocityScale == 0 {
		opts.VelocityScale = gesture.DefaultVelocityScale
	}
	if opts.Interval <= 0 {
		opts.Interval = integrator.DefaultThrowInterval
	}
	if opts.Model == nil {
		opts.Model = physics.NewConstant(geom.Vector2{})
	}
	if logger == nil {
		logger = log.NewNop()
	}
	c := &Controller{
		state:  state,
		opts:   opts,
		model:  opts.Model,
		logger: logger.With(log.String("component", "translation")),
	}
	if opts.Mode == ModeThrowable {
		c.inertia = integrator.New(scheduler, opts.Interval, c.step, c.logger)
	}
	return c
}

// OnStep registers a callback run after every integrator step, typically to
// publish the new offset.
func (c *Controller) OnStep(fn func()) { c.onStep = fn }

// Handle dispatches a sample by phase.
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

// Change records the cumulative translation of the current drag. The first
// sample of a drag cancels a running throw so only one writer drives Offset.
func (c *Controller) Change(translation geom.Vector2, at time.Time) {
	if !gesture.IsTranslating(c.state.Drag) {
		c.Reset()
	}
	t := c.opts.Axis.Normalize(translation)
	c.state.Drag = gesture.NextTranslation(c.state.Drag, t, at, c.opts.VelocityScale)
}

// End commits offset += translation and, in throwable mode, starts the throw
// when the release speed is strictly above the threshold.
func (c *Controller) End(translation geom.Vector2, at time.Time) error {
	t := c.opts.Axis.Normalize(translation)
	if !gesture.IsTranslating(c.state.Drag) {
		c.Reset()
	}
	velocity := gesture.VelocityOf(c.state.Drag)
	c.state.Offset = c.state.Offset.Add(t)
	c.state.Drag = gesture.Inactive{}

	c.logger.Debug("Drag committed",
		log.Vector("offset", c.state.Offset),
		log.Vector("velocity", velocity))

	if c.inertia == nil || velocity.Length() <= c.opts.Threshold {
		return nil
	}
	return c.throw(velocity)
}

// Cancel abandons the current drag without committing it.
func (c *Controller) Cancel() {
	c.state.Drag = gesture.Inactive{}
}

// Reset stops a running throw and zeroes the model's velocity. Calling it
// repeatedly has the same effect as calling it once.
func (c *Controller) Reset() {
	if c.inertia != nil {
		c.inertia.Stop()
	}
	c.model.SetVelocity(geom.Vector2{})
	c.state.Throwing = false
}

// Throwing reports whether the integrator is running.
func (c *Controller) Throwing() bool { return c.inertia != nil && c.inertia.Running() }

// Model returns the velocity model driving throws.
func (c *Controller) Model() physics.VelocityModel { return c.model }

// Options returns the effective options.
func (c *Controller) Options() Options { return c.opts }

func (c *Controller) throw(velocity geom.Vector2) error {
	c.Reset()
	c.model.SetVelocity(velocity)
	if _, err := c.inertia.Start(); err != nil {
		c.model.SetVelocity(geom.Vector2{})
		return fmt.Errorf("start throw: %w", err)
	}
	c.state.Throwing = true
	c.logger.Debug("Throw started", log.Vector("velocity", velocity))
	return nil
}

func (c *Controller) step(dt float64) {
	body := physics.Body{
		Offset:      c.state.Offset,
		Size:        c.state.Size,
		ParentFrame: c.state.ParentFrame,
	}
	v := c.model.Next(body, dt)
	if v.IsFinite() {
		c.state.Offset = c.state.Offset.Add(v.Scale(dt))
	}
	if c.onStep != nil {
		c.onStep()
	}
}
