package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/integrator"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
	"github.com/zeusync/interact/internal/core/resize"
	"github.com/zeusync/interact/internal/core/rotation"
	"github.com/zeusync/interact/pkg/geom"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownMode   = errors.New("unknown mode")
	ErrUnknownModel  = errors.New("unknown velocity model")
)

const (
	ModelConstant      = "constant"
	ModelFriction      = "friction"
	ModelAirResistance = "air_resistance"
)

// Config describes one interactive view and the playground serving it.
type Config struct {
	InitialSize     geom.Size         `json:"initial_size" yaml:"initial_size"`
	ParentFrame     geom.Rect         `json:"parent_frame" yaml:"parent_frame"`
	Axis            string            `json:"axis" yaml:"axis"`
	Translation     TranslationConfig `json:"translation" yaml:"translation"`
	Rotation        RotationConfig    `json:"rotation" yaml:"rotation"`
	RotationGesture bool              `json:"rotation_gesture" yaml:"rotation_gesture"`
	SizePolicy      SizePolicyConfig  `json:"size_policy" yaml:"size_policy"`
	Log             LogConfig         `json:"log" yaml:"log"`
	Server          ServerConfig      `json:"server" yaml:"server"`
}

type TranslationConfig struct {
	Mode          string        `json:"mode" yaml:"mode"`
	Threshold     float64       `json:"threshold" yaml:"threshold"`
	VelocityScale float64       `json:"velocity_scale" yaml:"velocity_scale"`
	RefreshRate   time.Duration `json:"refresh_rate" yaml:"refresh_rate"`
	Model         ModelConfig   `json:"model" yaml:"model"`
}

type RotationConfig struct {
	Mode          string        `json:"mode" yaml:"mode"`
	Threshold     float64       `json:"threshold" yaml:"threshold"`
	VelocityScale float64       `json:"velocity_scale" yaml:"velocity_scale"`
	RadialOffset  float64       `json:"radial_offset" yaml:"radial_offset"`
	RefreshRate   time.Duration `json:"refresh_rate" yaml:"refresh_rate"`
	Model         ModelConfig   `json:"model" yaml:"model"`
}

// ModelConfig selects a velocity model. Only the fields of the selected
// kind are read.
type ModelConfig struct {
	Kind        string  `json:"kind" yaml:"kind"`
	Friction    float64 `json:"friction" yaml:"friction"`
	Gravity     float64 `json:"gravity" yaml:"gravity"`
	Drag        float64 `json:"drag" yaml:"drag"`
	Restitution float64 `json:"restitution" yaml:"restitution"`
}

type SizePolicyConfig struct {
	Mode string  `json:"mode" yaml:"mode"`
	Min  float64 `json:"min" yaml:"min"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

type ServerConfig struct {
	Addr       string `json:"addr" yaml:"addr"`
	MaxClients int    `json:"max_clients" yaml:"max_clients"`
	// Token, when non-empty, is required from every playground client.
	Token string `json:"token" yaml:"token"`
}

// Default returns the configuration used when no file is given. Loading a
// file overlays it, so omitted keys keep these values.
func Default() *Config {
	return &Config{
		InitialSize: model.DefaultSize,
		Axis:        gesture.AxisYDown.String(),
		Translation: TranslationConfig{
			Mode:          "drag",
			VelocityScale: gesture.DefaultVelocityScale,
			RefreshRate:   integrator.DefaultThrowInterval,
			Model:         defaultModel(),
		},
		Rotation: RotationConfig{
			Mode:          rotation.ModeNone.String(),
			VelocityScale: gesture.DefaultAngularVelocityScale,
			RadialOffset:  rotation.DefaultRadialOffset,
			RefreshRate:   integrator.DefaultSpinInterval,
			Model:         defaultModel(),
		},
		SizePolicy: SizePolicyConfig{Mode: resize.PolicyFlip.String()},
		Log:        LogConfig{Level: log.LevelInfo.String()},
		Server:     ServerConfig{Addr: ":8080", MaxClients: 64},
	}
}

func defaultModel() ModelConfig {
	return ModelConfig{
		Kind:        ModelConstant,
		Friction:    physics.DefaultFriction,
		Gravity:     physics.DefaultGravity,
		Drag:        physics.DefaultDragCoefficient,
		Restitution: physics.DefaultRestitution,
	}
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if !c.InitialSize.IsFinite() || c.InitialSize.Width < 0 || c.InitialSize.Height < 0 {
		return fmt.Errorf("%w: initial_size %v", ErrInvalidConfig, c.InitialSize)
	}
	if c.ParentFrame.Width < 0 || c.ParentFrame.Height < 0 {
		return fmt.Errorf("%w: parent_frame %v", ErrInvalidConfig, c.ParentFrame)
	}
	if _, err := gesture.ParseAxis(c.Axis); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Translation.Validate(); err != nil {
		return fmt.Errorf("translation: %w", err)
	}
	if err := c.Rotation.Validate(); err != nil {
		return fmt.Errorf("rotation: %w", err)
	}
	if _, err := c.SizePolicy.Policy(); err != nil {
		return fmt.Errorf("size_policy: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Server.MaxClients < 0 {
		return fmt.Errorf("%w: negative server.max_clients %d", ErrInvalidConfig, c.Server.MaxClients)
	}
	return nil
}

func (t *TranslationConfig) Validate() error {
	if _, err := parseTranslationMode(t.Mode); err != nil {
		return err
	}
	if err := validateMotion(t.Threshold, t.VelocityScale, t.RefreshRate); err != nil {
		return err
	}
	if _, err := t.Model.Velocity(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	return nil
}

func (r *RotationConfig) Validate() error {
	if _, err := parseRotationMode(r.Mode); err != nil {
		return err
	}
	if err := validateMotion(r.Threshold, r.VelocityScale, r.RefreshRate); err != nil {
		return err
	}
	if r.RadialOffset < 0 {
		return fmt.Errorf("%w: negative radial_offset %v", ErrInvalidConfig, r.RadialOffset)
	}
	if _, err := r.Model.Angular(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	return nil
}

func validateMotion(threshold, scale float64, refresh time.Duration) error {
	if threshold < 0 {
		return fmt.Errorf("%w: negative threshold %v", ErrInvalidConfig, threshold)
	}
	if scale < 0 {
		return fmt.Errorf("%w: negative velocity_scale %v", ErrInvalidConfig, scale)
	}
	if refresh <= 0 {
		return fmt.Errorf("%w: refresh_rate must be positive, got %v", ErrInvalidConfig, refresh)
	}
	return nil
}

// Velocity builds the translational model described by m.
func (m ModelConfig) Velocity() (physics.VelocityModel, error) {
	switch m.Kind {
	case "", ModelConstant:
		return physics.NewConstant(geom.Vector2{}), nil
	case ModelFriction:
		if err := m.validateFriction(); err != nil {
			return nil, err
		}
		return physics.NewFrictionalDecay(m.Friction), nil
	case ModelAirResistance:
		if m.Restitution < 0 || m.Restitution > 1 {
			return nil, fmt.Errorf("%w: restitution %v outside [0, 1]", ErrInvalidConfig, m.Restitution)
		}
		if m.Drag < 0 {
			return nil, fmt.Errorf("%w: negative drag %v", ErrInvalidConfig, m.Drag)
		}
		return physics.NewAirResistance(m.Gravity, m.Drag, m.Restitution), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, m.Kind)
}

// Angular builds the angular model described by m. Air resistance has no
// angular form.
func (m ModelConfig) Angular() (physics.AngularVelocityModel, error) {
	switch m.Kind {
	case "", ModelConstant:
		return physics.NewConstantAngular(0), nil
	case ModelFriction:
		if err := m.validateFriction(); err != nil {
			return nil, err
		}
		return physics.NewFrictionalAngular(m.Friction), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, m.Kind)
}

func (m ModelConfig) validateFriction() error {
	if m.Friction < 0 || m.Friction > 1 {
		return fmt.Errorf("%w: friction %v outside [0, 1]", ErrInvalidConfig, m.Friction)
	}
	return nil
}

func (p SizePolicyConfig) Policy() (resize.SizePolicy, error) {
	mode, err := resize.ParsePolicyMode(p.Mode)
	if err != nil {
		return resize.SizePolicy{}, err
	}
	policy := resize.SizePolicy{Mode: mode, Min: p.Min}
	if err := policy.Validate(); err != nil {
		return resize.SizePolicy{}, err
	}
	return policy, nil
}
