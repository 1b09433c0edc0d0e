package model

import (
	"fmt"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/pkg/geom"
)

// DefaultSize is used when no initial size is configured.
var DefaultSize = geom.Size{Width: 100, Height: 100}

// Corner names one of the four resize handles.
type Corner uint8

const (
	TopLeading Corner = iota
	BottomLeading
	TopTrailing
	BottomTrailing
)

// Corners lists every corner in the order their scale effects are applied.
var Corners = [4]Corner{TopLeading, BottomLeading, TopTrailing, BottomTrailing}

func (c Corner) String() string {
	switch c {
	case TopLeading:
		return "top-leading"
	case BottomLeading:
		return "bottom-leading"
	case TopTrailing:
		return "top-trailing"
	case BottomTrailing:
		return "bottom-trailing"
	default:
		return fmt.Sprintf("corner(%d)", uint8(c))
	}
}

// ParseCorner is the inverse of Corner.String.
func ParseCorner(s string) (Corner, error) {
	for _, c := range Corners {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown corner %q", s)
}

// Signs returns (sx, sy): -1 for leading/top, +1 for trailing/bottom.
func (c Corner) Signs() geom.Vector2 {
	switch c {
	case TopLeading:
		return geom.V2(-1, -1)
	case BottomLeading:
		return geom.V2(-1, 1)
	case TopTrailing:
		return geom.V2(1, -1)
	default:
		return geom.V2(1, 1)
	}
}

// Opposite returns the corner that stays fixed while c is dragged.
func (c Corner) Opposite() Corner {
	switch c {
	case TopLeading:
		return BottomTrailing
	case BottomLeading:
		return TopTrailing
	case TopTrailing:
		return BottomLeading
	default:
		return TopLeading
	}
}

// Valid reports whether c is one of the four corners.
func (c Corner) Valid() bool { return c <= BottomTrailing }

// State is everything one interactive view owns. Every controller of that
// view holds the same *State; the single-threaded event model keeps two
// controllers from writing the same field within one event turn.
//
// Committed fields (Offset, Size, Angle, Magnification at rest) change only
// when a gesture ends or an integrator steps. Live fields (Drag, Spin,
// Corners, Twist, Magnification while pinching) are added on top for display.
type State struct {
	Offset        geom.Vector2
	Size          geom.Size
	Magnification float64
	Angle         float64
	// Twist is the live two-finger rotation, folded into Angle on release.
	Twist      float64
	IsSelected bool

	Drag    gesture.TranslationState
	Spin    gesture.RotationState
	Corners [4]geom.Vector2

	// ParentFrame bounds collisions of thrown views; empty disables them.
	ParentFrame geom.Rect

	Throwing   bool
	Spinning   bool
	Magnifying bool
	Twisting   bool
}

// NewState creates a resting state of the given size.
func NewState(size geom.Size) *State {
	if size.Width == 0 && size.Height == 0 {
		size = DefaultSize
	}
	return &State{
		Size:          size,
		Magnification: 1,
		Drag:          gesture.Inactive{},
		Spin:          gesture.Inactive{},
	}
}

// Corner returns the live drag of corner c.
func (s *State) Corner(c Corner) geom.Vector2 { return s.Corners[c] }

// CurrentOffset is the committed offset plus any live drag.
func (s *State) CurrentOffset() geom.Vector2 {
	return s.Offset.Add(gesture.TranslationOf(s.Drag))
}

// CurrentAngle is the committed angle plus live handle and two-finger rotation.
func (s *State) CurrentAngle() float64 {
	return s.Angle + gesture.DeltaThetaOf(s.Spin) + s.Twist
}

// Resizing reports whether any corner handle is live.
func (s *State) Resizing() bool {
	for _, c := range s.Corners {
		if !c.IsZero() {
			return true
		}
	}
	return false
}
