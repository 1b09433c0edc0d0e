package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/physics"
	"github.com/zeusync/interact/internal/core/resize"
	"github.com/zeusync/interact/internal/core/rotation"
	"github.com/zeusync/interact/internal/core/translation"
	"github.com/zeusync/interact/pkg/geom"
)

const fullYAML = `
initial_size: {width: 120, height: 80}
parent_frame: {x: 0, y: 0, width: 800, height: 600}
axis: y-up
translation:
  mode: throwable
  threshold: 15
  refresh_rate: 5ms
  model:
    kind: air_resistance
    gravity: 250
rotation:
  mode: spinnable
  radial_offset: 30
  model: {kind: friction, friction: 0.05}
rotation_gesture: true
size_policy: {mode: clamp, min: 20}
log: {level: debug}
server: {addr: "127.0.0.1:9000"}
`

func TestLoad(t *testing.T) {
	t.Run("Empty document keeps defaults", func(t *testing.T) {
		c, err := Load(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, Default(), c)
	})

	t.Run("Full document", func(t *testing.T) {
		c, err := Load(strings.NewReader(fullYAML))
		require.NoError(t, err)
		require.Equal(t, geom.Size{Width: 120, Height: 80}, c.InitialSize)
		require.Equal(t, 5*time.Millisecond, c.Translation.RefreshRate)
		require.Equal(t, 250.0, c.Translation.Model.Gravity)
		// omitted model fields keep their defaults
		require.Equal(t, physics.DefaultRestitution, c.Translation.Model.Restitution)
		require.Equal(t, gesture.DefaultVelocityScale, c.Translation.VelocityScale)
		require.Equal(t, "127.0.0.1:9000", c.Server.Addr)
		require.Equal(t, log.LevelDebug, c.LogLevel())
	})

	t.Run("Unknown keys are rejected", func(t *testing.T) {
		_, err := Load(strings.NewReader("translaton: {mode: drag}\n"))
		require.Error(t, err)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "interact.yaml")
		require.NoError(t, os.WriteFile(path, []byte(fullYAML), 0o600))
		c, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, "spinnable", c.Rotation.Mode)

		c, err = LoadFile("")
		require.NoError(t, err)
		require.Equal(t, Default(), c)

		_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		target error
	}{
		{"translation mode", func(c *Config) { c.Translation.Mode = "fling" }, ErrUnknownMode},
		{"rotation mode", func(c *Config) { c.Rotation.Mode = "twirl" }, ErrUnknownMode},
		{"negative threshold", func(c *Config) { c.Translation.Threshold = -1 }, ErrInvalidConfig},
		{"zero refresh", func(c *Config) { c.Rotation.RefreshRate = 0 }, ErrInvalidConfig},
		{"unknown model", func(c *Config) { c.Translation.Model.Kind = "magnetic" }, ErrUnknownModel},
		{"air resistance spin", func(c *Config) { c.Rotation.Model.Kind = ModelAirResistance }, ErrUnknownModel},
		{"restitution", func(c *Config) {
			c.Translation.Model.Kind = ModelAirResistance
			c.Translation.Model.Restitution = 1.5
		}, ErrInvalidConfig},
		{"friction", func(c *Config) {
			c.Rotation.Model.Kind = ModelFriction
			c.Rotation.Model.Friction = 2
		}, ErrInvalidConfig},
		{"size policy", func(c *Config) { c.SizePolicy.Mode = "shrink" }, resize.ErrInvalidPolicy},
		{"axis", func(c *Config) { c.Axis = "sideways" }, ErrInvalidConfig},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidConfig},
		{"size", func(c *Config) { c.InitialSize.Width = -1 }, ErrInvalidConfig},
		{"max clients", func(c *Config) { c.Server.MaxClients = -1 }, ErrInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			require.ErrorIs(t, c.Validate(), tc.target)

			_, err := c.Options()
			require.ErrorIs(t, err, tc.target)
		})
	}

	require.NoError(t, Default().Validate())
}

func TestOptions(t *testing.T) {
	c, err := Load(strings.NewReader(fullYAML))
	require.NoError(t, err)

	opts, err := c.Options()
	require.NoError(t, err)
	require.Equal(t, gesture.AxisYUp, opts.Axis)
	require.Equal(t, geom.Rect{Width: 800, Height: 600}, opts.ParentFrame)
	require.True(t, opts.RotationGesture)
	require.Equal(t, resize.SizePolicy{Mode: resize.PolicyClamp, Min: 20}, opts.SizePolicy)

	require.Equal(t, translation.ModeThrowable, opts.Translation.Mode)
	require.Equal(t, 15.0, opts.Translation.Threshold)
	require.Equal(t, 5*time.Millisecond, opts.Translation.Interval)
	air, ok := opts.Translation.Model.(*physics.AirResistance)
	require.True(t, ok)
	require.Equal(t, 250.0, air.Gravity)
	require.Equal(t, physics.DefaultDragCoefficient, air.DragCoefficient)

	require.Equal(t, rotation.ModeSpinnable, opts.Rotation.Mode)
	require.Equal(t, 30.0, opts.Rotation.RadialOffset)
	_, ok = opts.Rotation.Model.(*physics.FrictionalAngular)
	require.True(t, ok)

	again, err := c.Options()
	require.NoError(t, err)
	require.NotSame(t, opts.Translation.Model, again.Translation.Model)
}
