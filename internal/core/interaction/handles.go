package interaction

import (
	"fmt"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/internal/core/resize"
	"github.com/zeusync/interact/pkg/geom"
)

// HandleID names a handle drawn over the view. The first four values
// coincide with model.Corner.
type HandleID uint8

const (
	HandleTopLeading     = HandleID(model.TopLeading)
	HandleBottomLeading  = HandleID(model.BottomLeading)
	HandleTopTrailing    = HandleID(model.TopTrailing)
	HandleBottomTrailing = HandleID(model.BottomTrailing)
	HandleRotation       = HandleID(4)
)

func (h HandleID) String() string {
	if h == HandleRotation {
		return "rotation"
	}
	if c := model.Corner(h); c.Valid() {
		return c.String()
	}
	return fmt.Sprintf("handle(%d)", uint8(h))
}

// HandleVisual is what the host needs to style a handle.
type HandleVisual struct {
	IsSelected bool
	IsActive   bool
}

// RenderFunc draws one handle at a position in parent coordinates.
type RenderFunc func(id HandleID, position geom.Vector2, visual HandleVisual)

// RenderHandles calls fn for the four corner handles and, when enabled, the
// rotation handle.
func (i *Interactive) RenderHandles(fn RenderFunc) {
	s := i.state
	centre := s.ParentFrame.Center().Add(s.CurrentOffset())
	place := geom.Translate(centre).Multiply(geom.Rotation(s.CurrentAngle()))

	for _, c := range model.Corners {
		fn(HandleID(c), place.Apply(resize.HandlePosition(s, c)), HandleVisual{
			IsSelected: s.IsSelected,
			IsActive:   !s.Corner(c).IsZero(),
		})
	}
	if i.rotator == nil {
		return
	}
	fn(HandleRotation, centre.Add(i.rotator.HandlePosition()), HandleVisual{
		IsSelected: s.IsSelected,
		IsActive:   gesture.IsRotating(s.Spin) || s.Spinning,
	})
}

// HandlePosition returns the parent-space position of one handle.
func (i *Interactive) HandlePosition(id HandleID) (geom.Vector2, bool) {
	var (
		pos   geom.Vector2
		found bool
	)
	i.RenderHandles(func(h HandleID, p geom.Vector2, _ HandleVisual) {
		if h == id {
			pos, found = p, true
		}
	})
	return pos, found
}
