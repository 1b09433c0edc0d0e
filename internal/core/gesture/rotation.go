package gesture

import (
	"math"
	"time"

	"github.com/zeusync/interact/pkg/geom"
)

// DefaultAngularVelocityScale damps handle angular velocity before a spin.
const DefaultAngularVelocityScale = 0.5

// RotationState is either Inactive or ActiveRotation.
type RotationState interface {
	isRotationState()
}

// ActiveRotation is a drag of a handle constrained to a circle.
type ActiveRotation struct {
	Translation     geom.Vector2
	Time            time.Time
	DeltaTheta      float64
	AngularVelocity float64
}

func (Inactive) isRotationState()       {}
func (ActiveRotation) isRotationState() {}

// DeltaThetaOf returns the live rotation delta, zero when inactive.
func DeltaThetaOf(s RotationState) float64 {
	if a, ok := s.(ActiveRotation); ok {
		return a.DeltaTheta
	}
	return 0
}

// AngularVelocityOf returns the live angular velocity, zero when inactive.
func AngularVelocityOf(s RotationState) float64 {
	if a, ok := s.(ActiveRotation); ok {
		return a.AngularVelocity
	}
	return 0
}

// IsRotating reports whether s is an active handle drag.
func IsRotating(s RotationState) bool {
	_, ok := s.(ActiveRotation)
	return ok
}

// DeltaTheta converts a linear drag of a handle sitting on a circle of the
// given radius at angle into the rotation it implies. The handle rests at
// (r·sin a, -r·cos a), straight up at angle zero. The result is taken on the
// branch closest to near, normally the previous delta of the same session,
// so crossing the ±π seam of atan2 never produces a jump.
func DeltaTheta(radius, angle float64, translation geom.Vector2, near float64) float64 {
	if radius <= 0 || math.IsNaN(radius) {
		return 0
	}
	sin, cos := math.Sincos(angle)
	x := radius*sin + translation.X
	y := -radius*cos + translation.Y
	if x == 0 && y == 0 {
		return 0
	}
	raw := math.Atan2(y, x) + math.Pi/2 - angle
	return finiteOrZero(near + geom.WrapAngle(raw-near))
}

// NextRotation folds one handle sample into the state.
func NextRotation(prev RotationState, translation geom.Vector2, at time.Time, radius, angle, scale float64) ActiveRotation {
	active, ok := prev.(ActiveRotation)
	if !ok {
		return ActiveRotation{
			Translation: translation,
			Time:        at,
			DeltaTheta:  DeltaTheta(radius, angle, translation, 0),
		}
	}
	delta := DeltaTheta(radius, angle, translation, active.DeltaTheta)
	return ActiveRotation{
		Translation:     translation,
		Time:            at,
		DeltaTheta:      delta,
		AngularVelocity: EstimateAngularVelocity(active.DeltaTheta, active.Time, delta, at, scale),
	}
}

// EstimateAngularVelocity is scale*(to-from)/(toTime-fromTime), zero when no
// time has elapsed.
func EstimateAngularVelocity(from float64, fromTime time.Time, to float64, toTime time.Time, scale float64) float64 {
	dt := toTime.Sub(fromTime).Seconds()
	if dt <= 0 {
		return 0
	}
	return finiteOrZero(scale * (to - from) / dt)
}
