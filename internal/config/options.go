package config

import (
	"fmt"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/interaction"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/rotation"
	"github.com/zeusync/interact/internal/core/translation"
)

func parseTranslationMode(s string) (translation.Mode, error) {
	switch s {
	case "", "drag":
		return translation.ModeDrag, nil
	case "throwable":
		return translation.ModeThrowable, nil
	}
	return 0, fmt.Errorf("%w: translation %q", ErrUnknownMode, s)
}

func parseRotationMode(s string) (rotation.Mode, error) {
	switch s {
	case "", "none":
		return rotation.ModeNone, nil
	case "normal":
		return rotation.ModeNormal, nil
	case "spinnable":
		return rotation.ModeSpinnable, nil
	}
	return 0, fmt.Errorf("%w: rotation %q", ErrUnknownMode, s)
}

// Options validates c and converts it into interaction options with fresh
// velocity models. Each call builds new models, so the result may be used
// for exactly one Interactive.
func (c *Config) Options() (interaction.Options, error) {
	if err := c.Validate(); err != nil {
		return interaction.Options{}, err
	}

	axis, _ := gesture.ParseAxis(c.Axis)
	tMode, _ := parseTranslationMode(c.Translation.Mode)
	rMode, _ := parseRotationMode(c.Rotation.Mode)
	velocity, _ := c.Translation.Model.Velocity()
	angular, _ := c.Rotation.Model.Angular()
	policy, _ := c.SizePolicy.Policy()

	return interaction.Options{
		InitialSize: c.InitialSize,
		ParentFrame: c.ParentFrame,
		Axis:        axis,
		Translation: translation.Options{
			Mode:          tMode,
			VelocityScale: c.Translation.VelocityScale,
			Threshold:     c.Translation.Threshold,
			Model:         velocity,
			Interval:      c.Translation.RefreshRate,
		},
		Rotation: rotation.Options{
			Mode:          rMode,
			VelocityScale: c.Rotation.VelocityScale,
			Threshold:     c.Rotation.Threshold,
			RadialOffset:  c.Rotation.RadialOffset,
			Model:         angular,
			Interval:      c.Rotation.RefreshRate,
		},
		RotationGesture: c.RotationGesture,
		SizePolicy:      policy,
	}, nil
}

// LogLevel returns the configured level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.LevelInfo
	}
	return level
}
