package resize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/pkg/geom"
)

// cornerOnScreen is where corner c of the committed frame sits in parent space.
func cornerOnScreen(s *model.State, c model.Corner) geom.Vector2 {
	return s.Offset.Add(c.Signs().Mul(s.Size.Half()).Rotate(s.Angle))
}

func TestCommit(t *testing.T) {
	t.Run("Bottom-trailing drag keeps the top-leading corner", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		e := New(state, Options{}, nil)
		anchor := cornerOnScreen(state, model.TopLeading)

		e.Change(model.BottomTrailing, geom.V2(30, 20))
		require.Equal(t, geom.Size{Width: 100, Height: 100}, state.Size)

		e.End(model.BottomTrailing, geom.V2(30, 20))
		require.Equal(t, geom.Size{Width: 130, Height: 120}, state.Size)
		require.Equal(t, geom.V2(15, 10), state.Offset)
		require.Equal(t, anchor, cornerOnScreen(state, model.TopLeading))
		require.True(t, state.Corner(model.BottomTrailing).IsZero())
	})

	t.Run("Every corner anchors its opposite at any angle", func(t *testing.T) {
		for _, angle := range []float64{0, math.Pi / 6, math.Pi / 2, -2.5} {
			for _, c := range model.Corners {
				state := model.NewState(geom.Size{Width: 80, Height: 60})
				state.Offset = geom.V2(12, -7)
				state.Angle = angle
				e := New(state, Options{}, nil)
				anchor := cornerOnScreen(state, c.Opposite())

				e.End(c, geom.V2(17, -9))

				got := cornerOnScreen(state, c.Opposite())
				require.True(t, anchor.Approx(got, 1e-9), "%s at %v: %v != %v", c, angle, anchor, got)
			}
		}
	})

	t.Run("Sign of each corner", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		e := New(state, Options{}, nil)
		e.End(model.TopLeading, geom.V2(10, 20))
		require.Equal(t, geom.Size{Width: 90, Height: 80}, state.Size)
		e.End(model.BottomLeading, geom.V2(10, 20))
		require.Equal(t, geom.Size{Width: 80, Height: 100}, state.Size)
		e.End(model.TopTrailing, geom.V2(10, 20))
		require.Equal(t, geom.Size{Width: 90, Height: 80}, state.Size)
	})

	t.Run("Flip allows negative sizes", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		e := New(state, Options{}, nil)
		e.End(model.BottomTrailing, geom.V2(-150, 0))
		require.Equal(t, -50.0, state.Size.Width)
	})

	t.Run("Clamp stops at the minimum", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		e := New(state, Options{Policy: SizePolicy{Mode: PolicyClamp, Min: 10}}, nil)
		anchor := cornerOnScreen(state, model.TopLeading)

		e.Change(model.BottomTrailing, geom.V2(-150, 5))
		require.Equal(t, geom.V2(-90, 5), state.Corner(model.BottomTrailing))

		e.End(model.BottomTrailing, geom.V2(-150, 5))
		require.Equal(t, 10.0, state.Size.Width)
		require.Equal(t, 105.0, state.Size.Height)
		require.Equal(t, anchor, cornerOnScreen(state, model.TopLeading))

		e.End(model.TopLeading, geom.V2(150, 0))
		require.Equal(t, 10.0, state.Size.Width)
	})

	t.Run("Y-up axis", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		e := New(state, Options{Axis: gesture.AxisYUp}, nil)
		e.End(model.BottomTrailing, geom.V2(0, -10))
		require.Equal(t, 110.0, state.Size.Height)
	})

	t.Run("Handle and cancel", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		e := New(state, Options{}, nil)
		require.NoError(t, e.Handle(model.TopTrailing, gesture.Sample{Translation: geom.V2(5, 5), Phase: gesture.PhaseChanged}))
		require.True(t, state.Resizing())
		require.NoError(t, e.Handle(model.TopTrailing, gesture.Sample{Phase: gesture.PhaseCancelled}))
		require.False(t, state.Resizing())
		require.Equal(t, geom.Size{Width: 100, Height: 100}, state.Size)

		err := e.Handle(model.Corner(9), gesture.Sample{})
		require.ErrorIs(t, err, ErrUnknownCorner)
	})
}

func TestLiveEffects(t *testing.T) {
	t.Run("Scale factors", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		state.Corners[model.BottomTrailing] = geom.V2(30, 20)
		state.Corners[model.TopLeading] = geom.V2(30, 20)
		e := New(state, Options{}, nil)

		require.True(t, e.ScaleFactors(model.BottomTrailing).Approx(geom.V2(1.3, 1.2), 1e-12))
		require.True(t, e.ScaleFactors(model.TopLeading).Approx(geom.V2(0.7, 0.8), 1e-12))
		require.Equal(t, geom.V2(1, 1), e.ScaleFactors(model.TopTrailing))

		state.Size = geom.Size{Width: 0, Height: 100}
		require.Equal(t, 1.0, e.ScaleFactors(model.BottomTrailing).X)
	})

	t.Run("Corner stretch fixes the anchor", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		state.Corners[model.BottomTrailing] = geom.V2(30, 20)
		tr := CornerTransform(state, model.BottomTrailing)

		require.True(t, tr.Apply(geom.V2(-50, -50)).Approx(geom.V2(-50, -50), 1e-9))
		require.True(t, tr.Apply(geom.V2(50, 50)).Approx(geom.V2(80, 70), 1e-9))
	})

	t.Run("Local transform with no drags is identity", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		require.True(t, LocalTransform(state).Approx(geom.Identity(), 1e-12))
	})

	t.Run("Net deltas", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		e := New(state, Options{}, nil)
		e.Change(model.TopLeading, geom.V2(10, 10))
		e.Change(model.BottomTrailing, geom.V2(5, 5))
		require.Equal(t, geom.V2(-5, -5), e.NetSizeDelta())
		require.Equal(t, geom.V2(7.5, 7.5), e.NetOffsetDelta())
	})

	t.Run("Handle positions", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 100, Height: 100})
		e := New(state, Options{}, nil)
		require.Equal(t, geom.V2(50, 50), e.HandlePosition(model.BottomTrailing))
		require.Equal(t, geom.V2(-50, -50), e.HandlePosition(model.TopLeading))
		require.Equal(t, geom.V2(-50, 50), e.HandlePosition(model.BottomLeading))

		state.Corners[model.TopTrailing] = geom.V2(10, -20)
		require.Equal(t, geom.V2(60, 50), e.HandlePosition(model.BottomTrailing))
		require.Equal(t, geom.V2(-50, -70), e.HandlePosition(model.TopLeading))

		state.Corners[model.TopTrailing] = geom.Vector2{}
		state.Magnification = 2
		require.Equal(t, geom.V2(100, 100), e.HandlePosition(model.BottomTrailing))
	})
}

func TestPolicy(t *testing.T) {
	m, err := ParsePolicyMode("clamp")
	require.NoError(t, err)
	require.Equal(t, PolicyClamp, m)
	require.Equal(t, "clamp", m.String())

	_, err = ParsePolicyMode("shrink")
	require.ErrorIs(t, err, ErrInvalidPolicy)

	require.NoError(t, SizePolicy{}.Validate())
	require.ErrorIs(t, SizePolicy{Mode: PolicyClamp, Min: -1}.Validate(), ErrInvalidPolicy)

	t.Run("Below minimum only grows", func(t *testing.T) {
		p := SizePolicy{Mode: PolicyClamp, Min: 10}
		size := geom.Size{Width: 5, Height: 5}
		require.Equal(t, geom.V2(0, 3), p.Limit(model.BottomTrailing, size, geom.V2(-2, 3)))
	})
}

func TestMagnifier(t *testing.T) {
	state := model.NewState(geom.Size{Width: 100, Height: 80})
	m := NewMagnifier(state)

	require.NoError(t, m.Handle(gesture.ScalarSample{Value: 2, Phase: gesture.PhaseChanged}))
	require.Equal(t, 2.0, state.Magnification)
	require.True(t, state.Magnifying)
	require.Equal(t, geom.Size{Width: 100, Height: 80}, state.Size)

	require.NoError(t, m.Handle(gesture.ScalarSample{Value: 1.5, Phase: gesture.PhaseEnded}))
	require.Equal(t, geom.Size{Width: 150, Height: 120}, state.Size)
	require.Equal(t, 1.0, state.Magnification)
	require.False(t, state.Magnifying)

	m.Change(3)
	m.Cancel()
	require.Equal(t, 1.0, state.Magnification)
	require.Equal(t, geom.Size{Width: 150, Height: 120}, state.Size)
}
