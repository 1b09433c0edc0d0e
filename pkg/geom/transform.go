package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform is a 2D affine transformation stored as a row-major 2x3 matrix:
//
//	| a  b  c |
//	| d  e  f |
//
// which maps (x, y) to (a*x + b*y + c, d*x + e*y + f).
type Transform struct {
	m f64.Aff3
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{m: f64.Aff3{1, 0, 0, 0, 1, 0}}
}

// Translate creates a translation.
func Translate(d Vector2) Transform {
	return Transform{m: f64.Aff3{1, 0, d.X, 0, 1, d.Y}}
}

// ScaleXY creates a non-uniform scale about the origin.
func ScaleXY(sx, sy float64) Transform {
	return Transform{m: f64.Aff3{sx, 0, 0, 0, sy, 0}}
}

// ScaleAbout scales by (sx, sy) keeping anchor fixed.
func ScaleAbout(sx, sy float64, anchor Vector2) Transform {
	return Translate(anchor).Multiply(ScaleXY(sx, sy)).Multiply(Translate(anchor.Neg()))
}

// Rotation creates a rotation about the origin by angle radians.
func Rotation(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{m: f64.Aff3{cos, -sin, 0, sin, cos, 0}}
}

// Multiply returns t * o, the transformation that applies o first and t second.
func (t Transform) Multiply(o Transform) Transform {
	a, b := t.m, o.m
	return Transform{m: f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}}
}

// Then returns the transformation that applies t first and o second.
func (t Transform) Then(o Transform) Transform { return o.Multiply(t) }

// Apply maps a point.
func (t Transform) Apply(p Vector2) Vector2 {
	return Vector2{
		X: t.m[0]*p.X + t.m[1]*p.Y + t.m[2],
		Y: t.m[3]*p.X + t.m[4]*p.Y + t.m[5],
	}
}

// ApplyVector maps a direction, ignoring translation.
func (t Transform) ApplyVector(v Vector2) Vector2 {
	return Vector2{
		X: t.m[0]*v.X + t.m[1]*v.Y,
		Y: t.m[3]*v.X + t.m[4]*v.Y,
	}
}

// Aff3 exposes the underlying matrix for hosts that draw with x/image.
func (t Transform) Aff3() f64.Aff3 { return t.m }

// Approx reports whether every coefficient of t and o differs by at most eps.
func (t Transform) Approx(o Transform, eps float64) bool {
	for i := range t.m {
		if math.Abs(t.m[i]-o.m[i]) > eps {
			return false
		}
	}
	return true
}
