package resize

import (
	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/model"
)

// Magnifier scales the view with a pinch. The live factor is shown through
// Magnification and baked into Size on release.
type Magnifier struct {
	state *model.State
}

func NewMagnifier(state *model.State) *Magnifier {
	return &Magnifier{state: state}
}

func (m *Magnifier) Handle(s gesture.ScalarSample) error {
	if err := s.Validate(); err != nil {
		return err
	}
	switch s.Phase {
	case gesture.PhaseBegan, gesture.PhaseChanged:
		m.Change(s.Value)
	case gesture.PhaseEnded:
		m.End(s.Value)
	case gesture.PhaseCancelled:
		m.Cancel()
	}
	return nil
}

func (m *Magnifier) Change(value float64) {
	m.state.Magnification = value
	m.state.Magnifying = true
}

func (m *Magnifier) End(value float64) {
	m.state.Size = m.state.Size.Scale(value)
	m.state.Magnification = 1
	m.state.Magnifying = false
}

func (m *Magnifier) Cancel() {
	m.state.Magnification = 1
	m.state.Magnifying = false
}
