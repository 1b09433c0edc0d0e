package physics

import (
	"math"

	"github.com/zeusync/interact/pkg/geom"
)

const (
	DefaultFriction        = 0.01
	DefaultGravity         = 500
	DefaultDragCoefficient = 0.001
	DefaultRestitution     = 0.96
)

var (
	_ VelocityModel        = (*Constant)(nil)
	_ VelocityModel        = (*FrictionalDecay)(nil)
	_ VelocityModel        = (*AirResistance)(nil)
	_ AngularVelocityModel = (*ConstantAngular)(nil)
	_ AngularVelocityModel = (*FrictionalAngular)(nil)
)

// Constant keeps whatever velocity it was given.
type Constant struct {
	v geom.Vector2
}

func NewConstant(v geom.Vector2) *Constant { return &Constant{v: v} }

func (c *Constant) Velocity() geom.Vector2              { return c.v }
func (c *Constant) SetVelocity(v geom.Vector2)          { c.v = v }
func (c *Constant) Next(_ Body, _ float64) geom.Vector2 { return c.v }

// FrictionalDecay removes a fixed fraction of the velocity on every step.
type FrictionalDecay struct {
	v        geom.Vector2
	Friction float64
}

func NewFrictionalDecay(friction float64) *FrictionalDecay {
	return &FrictionalDecay{Friction: friction}
}

func (f *FrictionalDecay) Velocity() geom.Vector2     { return f.v }
func (f *FrictionalDecay) SetVelocity(v geom.Vector2) { f.v = v }

func (f *FrictionalDecay) Next(_ Body, _ float64) geom.Vector2 {
	f.v = f.v.Sub(f.v.Scale(f.Friction))
	return f.v
}

// AirResistance applies quadratic drag and constant gravity along +Y, and
// bounces the body off the edges of its parent frame.
type AirResistance struct {
	v               geom.Vector2
	Gravity         float64
	DragCoefficient float64
	// Restitution scales the reflected velocity component: 0 stops the body
	// dead at the wall, 1 is a perfectly elastic bounce.
	Restitution float64
}

func NewAirResistance(gravity, drag, restitution float64) *AirResistance {
	return &AirResistance{Gravity: gravity, DragCoefficient: drag, Restitution: restitution}
}

// NewDefaultAirResistance uses the library defaults.
func NewDefaultAirResistance() *AirResistance {
	return NewAirResistance(DefaultGravity, DefaultDragCoefficient, DefaultRestitution)
}

func (a *AirResistance) Velocity() geom.Vector2     { return a.v }
func (a *AirResistance) SetVelocity(v geom.Vector2) { a.v = v }

// Next returns the mean of the velocity before and after this step's
// acceleration, which integrates position with the trapezoid rule.
func (a *AirResistance) Next(body Body, dt float64) geom.Vector2 {
	checked := a.Collide(body, a.v)
	speed := checked.Length()
	accel := geom.Vector2{
		X: -a.DragCoefficient * speed * checked.X,
		Y: a.Gravity - a.DragCoefficient*speed*checked.Y,
	}
	next := checked.Add(accel.Scale(dt))
	if !next.IsFinite() {
		next = geom.Vector2{}
	}
	a.v = next
	return checked.Add(next).Scale(0.5)
}

// Collide reflects each velocity component whose edge touches or crosses the
// parent frame while moving outward. An empty parent frame disables collisions.
func (a *AirResistance) Collide(body Body, v geom.Vector2) geom.Vector2 {
	parent := body.ParentFrame.Size()
	if parent.Width <= 0 || parent.Height <= 0 {
		return v
	}
	center := parent.Half().Add(body.Offset)
	half := geom.Size{Width: math.Abs(body.Size.Width), Height: math.Abs(body.Size.Height)}.Half()

	leading := center.X-half.X <= 0 && v.X < 0
	trailing := center.X+half.X >= parent.Width && v.X > 0
	top := center.Y-half.Y <= 0 && v.Y < 0
	bottom := center.Y+half.Y >= parent.Height && v.Y > 0

	if leading || trailing {
		v.X = -a.Restitution * v.X
	}
	if top || bottom {
		v.Y = -a.Restitution * v.Y
	}
	return v
}

// ConstantAngular keeps whatever angular velocity it was given.
type ConstantAngular struct {
	w float64
}

func NewConstantAngular(w float64) *ConstantAngular { return &ConstantAngular{w: w} }

func (c *ConstantAngular) AngularVelocity() float64     { return c.w }
func (c *ConstantAngular) SetAngularVelocity(w float64) { c.w = w }
func (c *ConstantAngular) Next(_, _ float64) float64    { return c.w }

// FrictionalAngular removes a fixed fraction of the angular velocity per step.
type FrictionalAngular struct {
	w        float64
	Friction float64
}

func NewFrictionalAngular(friction float64) *FrictionalAngular {
	return &FrictionalAngular{Friction: friction}
}

func (f *FrictionalAngular) AngularVelocity() float64     { return f.w }
func (f *FrictionalAngular) SetAngularVelocity(w float64) { f.w = w }

func (f *FrictionalAngular) Next(_, _ float64) float64 {
	f.w -= f.w * f.Friction
	return f.w
}
