package server

import (
	"fmt"
	"time"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/interaction"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/pkg/geom"
)

// Gesture names accepted in InputMessage.Gesture.
const (
	GestureDrag     = "drag"
	GestureRotation = "rotation"
	GestureCorner   = "corner"
	GesturePinch    = "pinch"
	GestureTwist    = "twist"
	GestureTap      = "tap"
	GestureReset    = "reset"
)

// InputMessage is one pointer sample sent by a playground client.
type InputMessage struct {
	Gesture string  `json:"gesture"`
	Phase   string  `json:"phase,omitempty"`
	Corner  string  `json:"corner,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	// Value carries the pinch factor or the twist angle in radians.
	Value float64 `json:"value,omitempty"`
	// TimeMillis is the client timestamp; zero means the time of receipt.
	TimeMillis int64 `json:"time_ms,omitempty"`
}

const (
	OutputState = "state"
	OutputError = "error"
)

// OutputMessage is pushed to every client.
type OutputMessage struct {
	Type  string          `json:"type"`
	State *model.Snapshot `json:"state,omitempty"`
	Error string          `json:"error,omitempty"`
}

func (m InputMessage) timestamp(received time.Time) time.Time {
	if m.TimeMillis == 0 {
		return received
	}
	return time.UnixMilli(m.TimeMillis)
}

func (m InputMessage) sample(received time.Time) (gesture.Sample, error) {
	phase, err := gesture.ParsePhase(m.Phase)
	if err != nil {
		return gesture.Sample{}, err
	}
	return gesture.Sample{
		Translation: geom.V2(m.X, m.Y),
		Time:        m.timestamp(received),
		Phase:       phase,
	}, nil
}

func (m InputMessage) scalar(received time.Time) (gesture.ScalarSample, error) {
	phase, err := gesture.ParsePhase(m.Phase)
	if err != nil {
		return gesture.ScalarSample{}, err
	}
	return gesture.ScalarSample{Value: m.Value, Time: m.timestamp(received), Phase: phase}, nil
}

// Apply routes the message to the matching gesture of view. It must run on
// the view's loop.
func (m InputMessage) Apply(view *interaction.Interactive, received time.Time) error {
	switch m.Gesture {
	case GestureTap:
		return view.Tap()
	case GestureReset:
		return view.Reset()
	case GesturePinch, GestureTwist:
		s, err := m.scalar(received)
		if err != nil {
			return err
		}
		if m.Gesture == GesturePinch {
			return view.Pinch(s)
		}
		return view.Twist(s)
	case GestureDrag, GestureRotation, GestureCorner:
		s, err := m.sample(received)
		if err != nil {
			return err
		}
		switch m.Gesture {
		case GestureDrag:
			return view.Drag(s)
		case GestureRotation:
			return view.RotationHandle(s)
		}
		c, err := model.ParseCorner(m.Corner)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
		}
		return view.Corner(c, s)
	}
	return fmt.Errorf("%w: %q", ErrUnknownGesture, m.Gesture)
}
