package interaction

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/integrator"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/resize"
	"github.com/zeusync/interact/internal/core/rotation"
	"github.com/zeusync/interact/internal/core/translation"
	"github.com/zeusync/interact/pkg/geom"
)

// EventStateChanged is published with a model.Snapshot payload whenever the
// rendered state of an Interactive changes.
const EventStateChanged = "interaction.state.changed"

var (
	ErrRotationDisabled        = errors.New("rotation handle is disabled")
	ErrRotationGestureDisabled = errors.New("two-finger rotation is disabled")
)

// Options selects the gestures an Interactive responds to.
type Options struct {
	InitialSize geom.Size
	ParentFrame geom.Rect
	// Axis overrides the axis of every controller.
	Axis        gesture.Axis
	Translation translation.Options
	// Rotation.Mode == rotation.ModeNone removes the rotation handle.
	Rotation        rotation.Options
	RotationGesture bool
	SizePolicy      resize.SizePolicy
}

// Interactive is one draggable, resizable, rotatable view. It owns the
// view's State and every controller writing into it.
//
// Interactive is not safe for concurrent use: input methods and scheduler
// ticks must run on the same goroutine.
type Interactive struct {
	id     string
	state  *model.State
	opts   Options
	events bus.EventBus
	logger log.Log

	drag      *translation.Controller
	rotator   *rotation.Controller
	twist     *rotation.Twist
	resizer   *resize.Engine
	magnifier *resize.Magnifier

	published   bool
	fingerprint uint64
}

// New builds an Interactive. events may be nil when the host polls
// Snapshot instead of subscribing.
func New(scheduler integrator.Scheduler, events bus.EventBus, opts Options, logger log.Log) *Interactive {
	if logger == nil {
		logger = log.NewNop()
	}
	id := uuid.NewString()
	logger = logger.With(log.String("interactive", id))

	state := model.NewState(opts.InitialSize)
	state.ParentFrame = opts.ParentFrame

	opts.Translation.Axis = opts.Axis
	opts.Rotation.Axis = opts.Axis

	i := &Interactive{
		id:        id,
		state:     state,
		opts:      opts,
		events:    events,
		logger:    logger,
		drag:      translation.New(state, scheduler, opts.Translation, logger),
		resizer:   resize.New(state, resize.Options{Axis: opts.Axis, Policy: opts.SizePolicy}, logger),
		magnifier: resize.NewMagnifier(state),
	}
	i.drag.OnStep(i.tick)
	if opts.Rotation.Mode != rotation.ModeNone {
		i.rotator = rotation.New(state, scheduler, opts.Rotation, logger)
		i.rotator.OnStep(i.tick)
	}
	if opts.RotationGesture {
		i.twist = rotation.NewTwist(state)
	}

	logger.Info("Interactive created",
		log.String("translation", opts.Translation.Mode.String()),
		log.String("rotation", opts.Rotation.Mode.String()),
		log.Bool("rotation_gesture", opts.RotationGesture))
	return i
}

func (i *Interactive) ID() string { return i.id }

func (i *Interactive) Options() Options { return i.opts }

// Snapshot returns the current published form of the state.
func (i *Interactive) Snapshot() model.Snapshot { return i.state.Snapshot(i.id) }

// Drag feeds a sample of the body drag gesture.
func (i *Interactive) Drag(s gesture.Sample) error {
	if err := i.drag.Handle(s); err != nil {
		return err
	}
	return i.publish()
}

// RotationHandle feeds a sample of the rotation handle.
func (i *Interactive) RotationHandle(s gesture.Sample) error {
	if i.rotator == nil {
		return ErrRotationDisabled
	}
	if err := i.rotator.Handle(s); err != nil {
		return err
	}
	return i.publish()
}

// Corner feeds a sample of one resize handle.
func (i *Interactive) Corner(c model.Corner, s gesture.Sample) error {
	if err := i.resizer.Handle(c, s); err != nil {
		return err
	}
	return i.publish()
}

// Pinch feeds a magnification sample.
func (i *Interactive) Pinch(s gesture.ScalarSample) error {
	if err := i.magnifier.Handle(s); err != nil {
		return err
	}
	return i.publish()
}

// Twist feeds a two-finger rotation sample in radians.
func (i *Interactive) Twist(s gesture.ScalarSample) error {
	if i.twist == nil {
		return ErrRotationGestureDisabled
	}
	if err := i.twist.Handle(s); err != nil {
		return err
	}
	return i.publish()
}

// Tap toggles the selection.
func (i *Interactive) Tap() error {
	i.state.IsSelected = !i.state.IsSelected
	return i.publish()
}

// SetParentFrame updates the bounds used by collision models and by Transform.
func (i *Interactive) SetParentFrame(r geom.Rect) {
	i.state.ParentFrame = r
}

// Reset stops any running throw or spin and publishes the settled state.
func (i *Interactive) Reset() error {
	i.drag.Reset()
	if i.rotator != nil {
		i.rotator.Reset()
	}
	return i.publish()
}

// Transform maps local centred view coordinates into parent coordinates:
// magnification first, then the live corner stretches, then rotation about
// the centre, then translation to the view position.
func (i *Interactive) Transform() geom.Transform {
	s := i.state
	return geom.Translate(s.ParentFrame.Center().Add(s.CurrentOffset())).
		Multiply(geom.Rotation(s.CurrentAngle())).
		Multiply(resize.LocalTransform(s)).
		Multiply(geom.ScaleXY(s.Magnification, s.Magnification))
}

func (i *Interactive) tick() {
	if err := i.publish(); err != nil {
		i.logger.Warn("State publish failed", log.Error(err))
	}
}

// publish emits the snapshot when its fingerprint differs from the last one.
func (i *Interactive) publish() error {
	fp := i.state.Fingerprint()
	if i.published && fp == i.fingerprint {
		return nil
	}
	i.published = true
	i.fingerprint = fp
	if i.events == nil {
		return nil
	}
	ev := bus.NewEvent(EventStateChanged, i.id, i.Snapshot())
	if err := i.events.PublishToTopic(i.id, ev); err != nil {
		return fmt.Errorf("publish state: %w", err)
	}
	return nil
}
