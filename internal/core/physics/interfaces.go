package physics

import "github.com/zeusync/interact/pkg/geom"

// Velocity models drive a thrown view after its drag is released.
// Implementations keep the current velocity and may change it on every step
// to add forces such as friction, air resistance or gravity.

// Body is the moving view as seen by a VelocityModel. Offset is the view
// centre relative to the centre of ParentFrame.
type Body struct {
	Offset      geom.Vector2
	Size        geom.Size
	ParentFrame geom.Rect
}

// VelocityModel produces the translational velocity for each integration step.
type VelocityModel interface {
	// Velocity returns the stored velocity without advancing the model.
	Velocity() geom.Vector2
	// SetVelocity loads a release velocity, or zero on reset.
	SetVelocity(v geom.Vector2)
	// Next advances the model by dt seconds and returns the velocity to
	// integrate over that step.
	Next(body Body, dt float64) geom.Vector2
}

// AngularVelocityModel produces the angular velocity for each spin step.
type AngularVelocityModel interface {
	AngularVelocity() float64
	SetAngularVelocity(w float64)
	// Next advances the model by dt seconds at the given angle and returns
	// the angular velocity to integrate over that step.
	Next(angle, dt float64) float64
}
