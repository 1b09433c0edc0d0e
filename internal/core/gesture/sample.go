package gesture

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeusync/interact/pkg/geom"
)

var (
	ErrUnknownPhase  = errors.New("unknown gesture phase")
	ErrInvalidSample = errors.New("invalid gesture sample")
)

// Phase is the lifecycle position of a pointer sample within a gesture session.
type Phase uint8

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "began":
		return PhaseBegan, nil
	case "changed":
		return PhaseChanged, nil
	case "ended":
		return PhaseEnded, nil
	case "cancelled":
		return PhaseCancelled, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}

// Sample is one pointer callback from the host's recognizer. Translation is
// cumulative since the gesture began.
type Sample struct {
	Translation geom.Vector2
	Time        time.Time
	Phase       Phase
}

// Validate rejects samples that would poison committed state.
func (s Sample) Validate() error {
	if s.Phase > PhaseCancelled {
		return fmt.Errorf("%w: %d", ErrUnknownPhase, s.Phase)
	}
	if !s.Translation.IsFinite() {
		return fmt.Errorf("%w: non-finite translation %v", ErrInvalidSample, s.Translation)
	}
	return nil
}

// ScalarSample carries a pinch magnification or a two-finger rotation in
// radians, cumulative since the gesture began.
type ScalarSample struct {
	Value float64
	Time  time.Time
	Phase Phase
}

func (s ScalarSample) Validate() error {
	if s.Phase > PhaseCancelled {
		return fmt.Errorf("%w: %d", ErrUnknownPhase, s.Phase)
	}
	if !isFinite(s.Value) {
		return fmt.Errorf("%w: non-finite value %v", ErrInvalidSample, s.Value)
	}
	return nil
}

// Axis selects the vertical convention of incoming translations.
type Axis uint8

const (
	// AxisYDown passes translations through unchanged (screen coordinates).
	AxisYDown Axis = iota
	// AxisYUp negates Y, for hosts whose recognizer reports y growing upward.
	AxisYUp
)

func (a Axis) String() string {
	if a == AxisYUp {
		return "y-up"
	}
	return "y-down"
}

// ParseAxis accepts "y-down" (or empty) and "y-up".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "", "y-down":
		return AxisYDown, nil
	case "y-up":
		return AxisYUp, nil
	}
	return 0, fmt.Errorf("unknown axis convention %q", s)
}

// Normalize converts a host translation into the library's y-down space.
func (a Axis) Normalize(v geom.Vector2) geom.Vector2 {
	if a == AxisYUp {
		return v.FlipY()
	}
	return v
}
