package geom

import "math"

// Vector2 is a 2D quantity used for offsets, translations, velocities and size deltas.
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V2 is shorthand for Vector2{X: x, Y: y}.
func V2(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

func (v Vector2) Add(w Vector2) Vector2   { return Vector2{X: v.X + w.X, Y: v.Y + w.Y} }
func (v Vector2) Sub(w Vector2) Vector2   { return Vector2{X: v.X - w.X, Y: v.Y - w.Y} }
func (v Vector2) Scale(s float64) Vector2 { return Vector2{X: v.X * s, Y: v.Y * s} }
func (v Vector2) Mul(w Vector2) Vector2   { return Vector2{X: v.X * w.X, Y: v.Y * w.Y} }
func (v Vector2) Neg() Vector2            { return Vector2{X: -v.X, Y: -v.Y} }
func (v Vector2) Length() float64         { return math.Hypot(v.X, v.Y) }
func (v Vector2) IsZero() bool            { return v.X == 0 && v.Y == 0 }
func (v Vector2) FlipY() Vector2          { return Vector2{X: v.X, Y: -v.Y} }

func (v Vector2) Approx(w Vector2, eps float64) bool {
	return math.Abs(v.X-w.X) <= eps && math.Abs(v.Y-w.Y) <= eps
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector2) IsFinite() bool { return isFinite(v.X) && isFinite(v.Y) }

// Rotate rotates v counter-clockwise by angle radians in a y-up frame,
// which is clockwise on screen when y points down.
func (v Vector2) Rotate(angle float64) Vector2 {
	sin, cos := math.Sincos(angle)
	return Vector2{
		X: cos*v.X - sin*v.Y,
		Y: sin*v.X + cos*v.Y,
	}
}

// Size is a width/height pair. Negative values are transient and only
// appear while a corner handle is dragged past its opposite corner.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (s Size) Vector() Vector2      { return Vector2{X: s.Width, Y: s.Height} }
func (s Size) Half() Vector2        { return Vector2{X: s.Width / 2, Y: s.Height / 2} }
func (s Size) Scale(f float64) Size { return Size{Width: s.Width * f, Height: s.Height * f} }
func (s Size) Grow(d Vector2) Size  { return Size{Width: s.Width + d.X, Height: s.Height + d.Y} }
func (s Size) IsFinite() bool       { return isFinite(s.Width) && isFinite(s.Height) }

// Rect is an axis-aligned rectangle, used for the parent frame that bounds
// a thrown view.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (r Rect) Size() Size      { return Size{Width: r.Width, Height: r.Height} }
func (r Rect) Center() Vector2 { return Vector2{X: r.X + r.Width/2, Y: r.Y + r.Height/2} }
func (r Rect) Empty() bool     { return r.Width <= 0 || r.Height <= 0 }

// WrapAngle maps a into (-π, π].
func WrapAngle(a float64) float64 {
	if !isFinite(a) {
		return 0
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
