package resize

import (
	"errors"
	"fmt"

	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/pkg/geom"
)

var (
	ErrUnknownCorner = errors.New("unknown resize corner")
	ErrInvalidPolicy = errors.New("invalid size policy")
)

// PolicyMode decides what happens when a corner is dragged past its anchor.
type PolicyMode uint8

const (
	// PolicyFlip lets the size go negative; the view renders mirrored.
	PolicyFlip PolicyMode = iota
	// PolicyClamp stops the dragged edge at Min from the anchored one.
	PolicyClamp
)

func (m PolicyMode) String() string {
	if m == PolicyClamp {
		return "clamp"
	}
	return "flip"
}

// ParsePolicyMode accepts "flip" (or empty) and "clamp".
func ParsePolicyMode(s string) (PolicyMode, error) {
	switch s {
	case "", "flip":
		return PolicyFlip, nil
	case "clamp":
		return PolicyClamp, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidPolicy, s)
}

type SizePolicy struct {
	Mode PolicyMode
	Min  float64
}

func (p SizePolicy) Validate() error {
	if p.Mode > PolicyClamp {
		return fmt.Errorf("%w: mode %d", ErrInvalidPolicy, p.Mode)
	}
	if p.Min < 0 {
		return fmt.Errorf("%w: negative minimum %v", ErrInvalidPolicy, p.Min)
	}
	return nil
}

// Limit returns the part of translation t that corner c may apply to a view
// of the given size. Limiting the translation rather than the resulting size
// keeps the opposite corner exactly where it was.
func (p SizePolicy) Limit(c model.Corner, size geom.Size, t geom.Vector2) geom.Vector2 {
	if p.Mode != PolicyClamp {
		return t
	}
	s := c.Signs()
	return geom.Vector2{
		X: limitAxis(s.X, size.Width, t.X, p.Min),
		Y: limitAxis(s.Y, size.Height, t.Y, p.Min),
	}
}

func limitAxis(sign, dim, d, lo float64) float64 {
	if dim+sign*d >= lo {
		return d
	}
	if dim <= lo {
		// already at or below the minimum: only growth is allowed
		if sign*d < 0 {
			return 0
		}
		return d
	}
	return sign * (lo - dim)
}
