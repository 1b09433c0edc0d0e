package resize

import (
	"fmt"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/pkg/geom"
)

type Options struct {
	Axis   gesture.Axis
	Policy SizePolicy
}

// Engine resizes a view from its four corner handles. Each corner keeps its
// own live translation in State.Corners; a release commits only that corner
// while the opposite corner stays fixed on screen.
type Engine struct {
	state  *model.State
	opts   Options
	logger log.Log
}

func New(state *model.State, opts Options, logger log.Log) *Engine {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Engine{
		state:  state,
		opts:   opts,
		logger: logger.With(log.String("component", "resize")),
	}
}

func (e *Engine) Options() Options { return e.opts }

// Handle dispatches a sample of corner c by phase.
func (e *Engine) Handle(c model.Corner, s gesture.Sample) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCorner, c)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	switch s.Phase {
	case gesture.PhaseBegan, gesture.PhaseChanged:
		e.Change(c, s.Translation)
	case gesture.PhaseEnded:
		e.End(c, s.Translation)
	case gesture.PhaseCancelled:
		e.Cancel(c)
	}
	return nil
}

// Change stores the live translation of corner c.
func (e *Engine) Change(c model.Corner, translation geom.Vector2) {
	t := e.opts.Axis.Normalize(translation)
	e.state.Corners[c] = e.opts.Policy.Limit(c, e.state.Size, t)
}

// End commits corner c: the size grows by the signed translation and the
// centre moves by half the translation rotated into parent space.
func (e *Engine) End(c model.Corner, translation geom.Vector2) {
	t := e.opts.Policy.Limit(c, e.state.Size, e.opts.Axis.Normalize(translation))
	s := c.Signs()

	e.state.Offset = e.state.Offset.Add(t.Rotate(e.state.Angle).Scale(0.5))
	e.state.Size = e.state.Size.Grow(t.Mul(s))
	e.state.Corners[c] = geom.Vector2{}

	e.logger.Debug("Resize committed",
		log.String("corner", c.String()),
		log.Float64("width", e.state.Size.Width),
		log.Float64("height", e.state.Size.Height))
}

func (e *Engine) Cancel(c model.Corner) {
	e.state.Corners[c] = geom.Vector2{}
}

// ScaleFactors returns the live stretch of corner c relative to the
// committed size. A zero committed dimension yields a factor of 1.
func (e *Engine) ScaleFactors(c model.Corner) geom.Vector2 {
	return ScaleFactors(e.state, c)
}

func ScaleFactors(state *model.State, c model.Corner) geom.Vector2 {
	d := state.Corners[c]
	s := c.Signs()
	return geom.Vector2{
		X: factor(state.Size.Width, s.X*d.X),
		Y: factor(state.Size.Height, s.Y*d.Y),
	}
}

func factor(dim, delta float64) float64 {
	if dim == 0 {
		return 1
	}
	return (dim + delta) / dim
}

// Anchor is the opposite corner of c in local centred coordinates of the
// committed frame.
func Anchor(state *model.State, c model.Corner) geom.Vector2 {
	return c.Opposite().Signs().Mul(state.Size.Half())
}

// CornerTransform stretches the view by corner c's live drag about its anchor.
func CornerTransform(state *model.State, c model.Corner) geom.Transform {
	f := ScaleFactors(state, c)
	return geom.ScaleAbout(f.X, f.Y, Anchor(state, c))
}

// LocalTransform applies the four corner stretches in the order of
// model.Corners.
func LocalTransform(state *model.State) geom.Transform {
	t := geom.Identity()
	for _, c := range model.Corners {
		t = CornerTransform(state, c).Multiply(t)
	}
	return t
}

// NetSizeDelta is the size change all live corners would commit.
func (e *Engine) NetSizeDelta() geom.Vector2 {
	var d geom.Vector2
	for _, c := range model.Corners {
		d = d.Add(e.state.Corners[c].Mul(c.Signs()))
	}
	return d
}

// NetOffsetDelta is the centre shift all live corners would commit.
func (e *Engine) NetOffsetDelta() geom.Vector2 {
	var d geom.Vector2
	for _, c := range model.Corners {
		d = d.Add(e.state.Corners[c].Rotate(e.state.Angle).Scale(0.5))
	}
	return d
}

// HandlePosition returns where the handle of corner c is drawn, in local
// centred coordinates before rotation. Each edge follows the live drags of
// both corners on it, and magnification spreads the handles outward.
func (e *Engine) HandlePosition(c model.Corner) geom.Vector2 {
	return HandlePosition(e.state, c)
}

func HandlePosition(state *model.State, c model.Corner) geom.Vector2 {
	s := c.Signs()
	spread := state.Size.Vector().Scale(state.Magnification / 2).Mul(s)

	var xSide, ySide [2]model.Corner
	if s.X < 0 {
		xSide = [2]model.Corner{model.TopLeading, model.BottomLeading}
	} else {
		xSide = [2]model.Corner{model.TopTrailing, model.BottomTrailing}
	}
	if s.Y < 0 {
		ySide = [2]model.Corner{model.TopLeading, model.TopTrailing}
	} else {
		ySide = [2]model.Corner{model.BottomLeading, model.BottomTrailing}
	}

	return geom.Vector2{
		X: spread.X + state.Corners[xSide[0]].X + state.Corners[xSide[1]].X,
		Y: spread.Y + state.Corners[ySide[0]].Y + state.Corners[ySide[1]].Y,
	}
}
