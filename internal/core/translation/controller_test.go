package translation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/integrator"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/internal/core/physics"
	"github.com/zeusync/interact/pkg/geom"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return epoch.Add(time.Duration(ms) * time.Millisecond) }

func newThrowable(threshold float64) (*Controller, *model.State, *integrator.FrameScheduler) {
	state := model.NewState(geom.Size{Width: 50, Height: 50})
	sched := integrator.NewFrameScheduler()
	c := New(state, sched, Options{
		Mode:          ModeThrowable,
		VelocityScale: 1,
		Threshold:     threshold,
		Interval:      10 * time.Millisecond,
	}, nil)
	return c, state, sched
}

func TestDrag(t *testing.T) {
	t.Run("Commit adds the final translation exactly", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 50; trial++ {
			state := model.NewState(geom.Size{Width: 10, Height: 10})
			state.Offset = geom.V2(rng.Float64()*100, rng.Float64()*100)
			before := state.Offset
			c := New(state, nil, Options{}, nil)

			n := 1 + rng.Intn(20)
			var last geom.Vector2
			ms := 0
			for i := 0; i < n; i++ {
				last = geom.V2(rng.Float64()*400-200, rng.Float64()*400-200)
				ms += rng.Intn(3) // zero gaps included
				require.NoError(t, c.Handle(gesture.Sample{Translation: last, Time: at(ms), Phase: gesture.PhaseChanged}))
				require.Equal(t, before, state.Offset, "offset must not move during a drag")
			}
			require.NoError(t, c.Handle(gesture.Sample{Translation: last, Time: at(ms + 1), Phase: gesture.PhaseEnded}))

			require.Equal(t, before.Add(last), state.Offset)
			require.False(t, gesture.IsTranslating(state.Drag))
		}
	})

	t.Run("Live translation is visible but uncommitted", func(t *testing.T) {
		state := model.NewState(geom.Size{})
		c := New(state, nil, Options{}, nil)
		c.Change(geom.V2(3, 4), at(0))
		require.Equal(t, geom.V2(3, 4), state.CurrentOffset())
		require.True(t, state.Offset.IsZero())
	})

	t.Run("Cancel drops the drag", func(t *testing.T) {
		state := model.NewState(geom.Size{})
		c := New(state, nil, Options{}, nil)
		c.Change(geom.V2(3, 4), at(0))
		require.NoError(t, c.Handle(gesture.Sample{Phase: gesture.PhaseCancelled}))
		require.True(t, state.CurrentOffset().IsZero())
	})

	t.Run("Y-up axis flips vertical translation", func(t *testing.T) {
		state := model.NewState(geom.Size{})
		c := New(state, nil, Options{Axis: gesture.AxisYUp}, nil)
		c.Change(geom.V2(3, 4), at(0))
		require.Equal(t, geom.V2(3, -4), gesture.TranslationOf(state.Drag))
		require.NoError(t, c.End(geom.V2(3, 4), at(1)))
		require.Equal(t, geom.V2(3, -4), state.Offset)
	})

	t.Run("Invalid sample leaves state untouched", func(t *testing.T) {
		state := model.NewState(geom.Size{})
		c := New(state, nil, Options{}, nil)
		err := c.Handle(gesture.Sample{Phase: 42})
		require.ErrorIs(t, err, gesture.ErrUnknownPhase)
		require.Equal(t, gesture.Inactive{}, state.Drag)
	})

	t.Run("Drag mode never throws", func(t *testing.T) {
		state := model.NewState(geom.Size{})
		c := New(state, nil, Options{VelocityScale: 1}, nil)
		c.Change(geom.V2(0, 0), at(0))
		c.Change(geom.V2(100, 0), at(10))
		require.NoError(t, c.End(geom.V2(100, 0), at(20)))
		require.False(t, c.Throwing())
	})
}

func TestThrow(t *testing.T) {
	t.Run("Threshold comparison is strict", func(t *testing.T) {
		measured, measuredState, _ := newThrowable(0)
		measured.Change(geom.V2(0, 0), at(0))
		measured.Change(geom.V2(10, 0), at(100))
		speed := gesture.VelocityOf(measuredState.Drag).Length()
		require.Greater(t, speed, 0.0)

		atThreshold, _, _ := newThrowable(speed)
		atThreshold.Change(geom.V2(0, 0), at(0))
		atThreshold.Change(geom.V2(10, 0), at(100))
		require.NoError(t, atThreshold.End(geom.V2(10, 0), at(100)))
		require.False(t, atThreshold.Throwing())

		below, _, _ := newThrowable(speed - 1e-9)
		below.Change(geom.V2(0, 0), at(0))
		below.Change(geom.V2(10, 0), at(100))
		require.NoError(t, below.End(geom.V2(10, 0), at(100)))
		require.True(t, below.Throwing())
	})

	t.Run("Throw integrates the release velocity", func(t *testing.T) {
		c, state, sched := newThrowable(0)
		steps := 0
		c.OnStep(func() { steps++ })

		c.Change(geom.V2(0, 0), at(0))
		c.Change(geom.V2(10, 0), at(100))
		require.NoError(t, c.End(geom.V2(10, 0), at(100)))
		require.Equal(t, geom.V2(10, 0), state.Offset)
		require.True(t, state.Throwing)

		v := c.Model().Velocity()
		sched.Advance(10 * time.Millisecond)
		sched.Advance(10 * time.Millisecond)
		require.True(t, state.Offset.Approx(geom.V2(10, 0).Add(v.Scale(0.02)), 1e-9), "got %v", state.Offset)
		require.Equal(t, 2, steps)
	})

	t.Run("Reset is idempotent", func(t *testing.T) {
		c, state, sched := newThrowable(0)
		c.Change(geom.V2(0, 0), at(0))
		c.Change(geom.V2(10, 5), at(100))
		require.NoError(t, c.End(geom.V2(10, 5), at(100)))
		require.True(t, c.Throwing())

		c.Reset()
		once := state.Offset
		require.False(t, c.Throwing())
		require.True(t, c.Model().Velocity().IsZero())
		require.Equal(t, 0, sched.Len())

		c.Reset()
		require.False(t, c.Throwing())
		require.True(t, c.Model().Velocity().IsZero())
		require.Equal(t, 0, sched.Len())

		sched.Advance(10 * time.Millisecond)
		require.Equal(t, once, state.Offset)
	})

	t.Run("New drag cancels a running throw", func(t *testing.T) {
		c, state, sched := newThrowable(0)
		c.Change(geom.V2(0, 0), at(0))
		c.Change(geom.V2(10, 0), at(100))
		require.NoError(t, c.End(geom.V2(10, 0), at(100)))
		require.True(t, c.Throwing())

		c.Change(geom.V2(1, 1), at(200))
		require.False(t, c.Throwing())
		require.False(t, state.Throwing)
		require.Equal(t, 0, sched.Len())

		committed := state.Offset
		sched.Advance(10 * time.Millisecond)
		require.Equal(t, committed, state.Offset)
	})

	t.Run("Collision model bounces inside the parent", func(t *testing.T) {
		state := model.NewState(geom.Size{Width: 50, Height: 50})
		state.ParentFrame = geom.Rect{Width: 300, Height: 300}
		sched := integrator.NewFrameScheduler()
		c := New(state, sched, Options{
			Mode:          ModeThrowable,
			VelocityScale: 1,
			Model:         physics.NewAirResistance(0, 0, 1),
			Interval:      10 * time.Millisecond,
		}, nil)

		c.Change(geom.V2(0, 0), at(0))
		c.Change(geom.V2(-10, 0), at(10))
		require.NoError(t, c.End(geom.V2(-10, 0), at(10)))

		for i := 0; i < 500; i++ {
			sched.Advance(10 * time.Millisecond)
			require.GreaterOrEqual(t, state.Offset.X, -125.0-10.0)
			require.LessOrEqual(t, state.Offset.X, 125.0+10.0)
		}
	})
}
