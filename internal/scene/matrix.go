package scene

import "math"

// Point3 is a point or vector in host space.
type Point3 struct {
	X, Y, Z float64
}

// Matrix3 is a 3x4 affine transform in the host's row convention: three
// basis rows followed by a translation row. Points multiply on the left,
// p * M.
type Matrix3 struct {
	Row1, Row2, Row3, Row4 Point3
}

// Identity returns the identity transform.
func Identity() Matrix3 {
	return Matrix3{
		Row1: Point3{X: 1},
		Row2: Point3{Y: 1},
		Row3: Point3{Z: 1},
	}
}

// MulPoint transforms p into the matrix's target space.
func (m Matrix3) MulPoint(p Point3) Point3 {
	return Point3{
		X: p.X*m.Row1.X + p.Y*m.Row2.X + p.Z*m.Row3.X + m.Row4.X,
		Y: p.X*m.Row1.Y + p.Y*m.Row2.Y + p.Z*m.Row3.Y + m.Row4.Y,
		Z: p.X*m.Row1.Z + p.Y*m.Row2.Z + p.Z*m.Row3.Z + m.Row4.Z,
	}
}

// Mul composes two transforms: the result applies m first, then n.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	mulRow := func(p Point3) Point3 {
		return Point3{
			X: p.X*n.Row1.X + p.Y*n.Row2.X + p.Z*n.Row3.X,
			Y: p.X*n.Row1.Y + p.Y*n.Row2.Y + p.Z*n.Row3.Y,
			Z: p.X*n.Row1.Z + p.Y*n.Row2.Z + p.Z*n.Row3.Z,
		}
	}
	out := Matrix3{
		Row1: mulRow(m.Row1),
		Row2: mulRow(m.Row2),
		Row3: mulRow(m.Row3),
		Row4: mulRow(m.Row4),
	}
	out.Row4.X += n.Row4.X
	out.Row4.Y += n.Row4.Y
	out.Row4.Z += n.Row4.Z
	return out
}

// Translation returns a pure translation transform.
func Translation(t Point3) Matrix3 {
	m := Identity()
	m.Row4 = t
	return m
}

// RotationZ returns a rotation about the host's Z (up) axis. The angle is in
// degrees, matching how the host exposes rotation parameters.
func RotationZ(degrees float64) Matrix3 {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Matrix3{
		Row1: Point3{X: cos, Y: sin},
		Row2: Point3{X: -sin, Y: cos},
		Row3: Point3{Z: 1},
	}
}

// Scaling returns a per-axis scale transform.
func Scaling(s Point3) Matrix3 {
	return Matrix3{
		Row1: Point3{X: s.X},
		Row2: Point3{Y: s.Y},
		Row3: Point3{Z: s.Z},
	}
}
