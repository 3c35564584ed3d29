package ecs

import "math"

// Vec3 is a 3-component vector.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3         { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3         { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3    { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Mul(o Vec3) Vec3         { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Length() float64         { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) ApproxEqual(o Vec3) bool { return v.Sub(o).Length() < 1e-9 }

// Transform is a local position/rotation/scale triple.
// Rotation holds Euler angles in radians, applied X, then Y, then Z.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// IdentityTransform places an entity at the origin of its parent with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// Matrix returns T * Rz * Ry * Rx * S.
func (t Transform) Matrix() Mat4 {
	return Translation(t.Position).
		Mul(RotationZ(t.Rotation.Z)).
		Mul(RotationY(t.Rotation.Y)).
		Mul(RotationX(t.Rotation.X)).
		Mul(Scaling(t.Scale))
}

// Mat4 is a column-major 4x4 matrix.
type Mat4 [16]float64

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translation(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

func Scaling(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

func RotationX(a float64) Mat4 {
	s, c := math.Sincos(a)
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

func RotationY(a float64) Mat4 {
	s, c := math.Sincos(a)
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

func RotationZ(a float64) Mat4 {
	s, c := math.Sincos(a)
	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// TransformPoint applies m to the point p (w = 1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}
