package rotation

import (
	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/model"
)

// Twist folds a two-finger rotation gesture into Angle. The live value is
// kept in State.Twist until the gesture ends.
type Twist struct {
	state *model.State
}

func NewTwist(state *model.State) *Twist {
	return &Twist{state: state}
}

func (t *Twist) Handle(s gesture.ScalarSample) error {
	if err := s.Validate(); err != nil {
		return err
	}
	switch s.Phase {
	case gesture.PhaseBegan, gesture.PhaseChanged:
		t.Change(s.Value)
	case gesture.PhaseEnded:
		t.End(s.Value)
	case gesture.PhaseCancelled:
		t.Cancel()
	}
	return nil
}

func (t *Twist) Change(radians float64) {
	t.state.Twist = radians
	t.state.Twisting = true
}

func (t *Twist) End(radians float64) {
	t.state.Angle += radians
	t.state.Twist = 0
	t.state.Twisting = false
}

func (t *Twist) Cancel() {
	t.state.Twist = 0
	t.state.Twisting = false
}
