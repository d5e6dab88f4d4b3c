package math3d

import "math"

// Vec2 represents a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// InUnit reports whether both components lie in [0, 1].
func (a Vec2) InUnit() bool {
	return a.X >= 0 && a.X <= 1 && a.Y >= 0 && a.Y <= 1
}

// Clamp01 clamps both components to [0, 1].
func (a Vec2) Clamp01() Vec2 {
	return Vec2{
		math.Max(0, math.Min(1, a.X)),
		math.Max(0, math.Min(1, a.Y)),
	}
}

// Bary2 blends three texture coordinates with barycentric weights bc.
func Bary2(bc Vec3, a, b, c Vec2) Vec2 {
	return Vec2{
		bc.X*a.X + bc.Y*b.X + bc.Z*c.X,
		bc.X*a.Y + bc.Y*b.Y + bc.Z*c.Y,
	}
}
