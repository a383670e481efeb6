package math2d

// Vec3 is a homogeneous 2D coordinate or a line (A, B, C) with Ax + By + C = 0.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// LineThrough returns the homogeneous line through origin with direction dir.
// The normal (A, B) is dir.Perp() and C = -origin·(A, B).
func LineThrough(origin, dir Vec2) Vec3 {
	n := dir.Perp()
	return Vec3{n.X, n.Y, -origin.Dot(n)}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
// For two homogeneous lines this is their point of intersection.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Dehomogenize divides X and Y by Z.
// Returns false when Z is zero (a point at infinity).
func (a Vec3) Dehomogenize() (Vec2, bool) {
	if a.Z == 0 {
		return Vec2{}, false
	}
	return Vec2{a.X / a.Z, a.Y / a.Z}, true
}
