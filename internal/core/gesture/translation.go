package gesture

import (
	"math"
	"time"

	"github.com/zeusync/interact/pkg/geom"
)

// DefaultVelocityScale damps drag velocity before it is handed to a throw.
const DefaultVelocityScale = 0.3

// TranslationState is either Inactive or ActiveTranslation. The interface is
// sealed so a velocity can only exist while a drag is active.
type TranslationState interface {
	isTranslationState()
}

// Inactive is the resting state shared by translation and rotation sessions.
type Inactive struct{}

// ActiveTranslation is a drag in progress.
type ActiveTranslation struct {
	Translation geom.Vector2
	Velocity    geom.Vector2
	Time        time.Time
}

func (Inactive) isTranslationState()          {}
func (ActiveTranslation) isTranslationState() {}

// TranslationOf returns the live translation, zero when inactive.
func TranslationOf(s TranslationState) geom.Vector2 {
	if a, ok := s.(ActiveTranslation); ok {
		return a.Translation
	}
	return geom.Vector2{}
}

// VelocityOf returns the live drag velocity, zero when inactive.
func VelocityOf(s TranslationState) geom.Vector2 {
	if a, ok := s.(ActiveTranslation); ok {
		return a.Velocity
	}
	return geom.Vector2{}
}

// IsTranslating reports whether s is an active drag.
func IsTranslating(s TranslationState) bool {
	_, ok := s.(ActiveTranslation)
	return ok
}

// NextTranslation folds one sample (already axis-normalized) into the state.
// The first sample of a session carries zero velocity.
func NextTranslation(prev TranslationState, translation geom.Vector2, at time.Time, scale float64) ActiveTranslation {
	active, ok := prev.(ActiveTranslation)
	if !ok {
		return ActiveTranslation{Translation: translation, Time: at}
	}
	return ActiveTranslation{
		Translation: translation,
		Velocity:    EstimateVelocity(active.Translation, active.Time, translation, at, scale),
		Time:        at,
	}
}

// EstimateVelocity is scale*(to-from)/(toTime-fromTime). A zero or negative
// elapsed time, or a non-finite result, yields zero.
func EstimateVelocity(from geom.Vector2, fromTime time.Time, to geom.Vector2, toTime time.Time, scale float64) geom.Vector2 {
	dt := toTime.Sub(fromTime).Seconds()
	if dt <= 0 {
		return geom.Vector2{}
	}
	v := to.Sub(from).Scale(scale / dt)
	if !v.IsFinite() {
		return geom.Vector2{}
	}
	return v
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
