package core

import "math"

// Mat4 is a row-major 4x4 affine transformation matrix.
type Mat4 struct {
	m [16]float64
}

// NewMat4Identity returns the identity transform.
func NewMat4Identity() Mat4 {
	return Mat4{m: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// At returns the element at (row, col).
func (m Mat4) At(row, col int) float64 {
	return m.m[row*4+col]
}

// Mul returns the matrix product m * rhs.
func (m Mat4) Mul(rhs Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.At(i, k) * rhs.At(k, j)
			}
			out.m[i*4+j] = sum
		}
	}
	return out
}

// TransformPoint applies the full affine transform (including translation).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z + m.At(0, 3),
		Y: m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z + m.At(1, 3),
		Z: m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z + m.At(2, 3),
	}
}

// TransformVector applies only the linear part of the transform (no translation).
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// Inverse returns the matrix inverse, derived from the classic MESA adjugate method.
func (m Mat4) Inverse() Mat4 {
	a := m.m
	var inv [16]float64

	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] + a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] - a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] + a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] - a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] - a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] + a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] - a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] + a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] + a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] - a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] + a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] - a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] - a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] + a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] - a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] + a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	det := a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
	invDet := 1.0 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return Mat4{m: inv}
}

// NewScale returns a scale transform.
func NewScale(v Vec3) Mat4 {
	out := NewMat4Identity()
	out.m[0], out.m[5], out.m[10] = v.X, v.Y, v.Z
	return out
}

// NewTranslate returns a translation transform.
func NewTranslate(v Vec3) Mat4 {
	out := NewMat4Identity()
	out.m[3], out.m[7], out.m[11] = v.X, v.Y, v.Z
	return out
}

// NewRotateYXZ returns a rotation transform (degrees, applied Y then X then Z,
// matching the Tungsten scene convention).
func NewRotateYXZ(degrees Vec3) Mat4 {
	r := degrees.Multiply(math.Pi / 180.0)
	cx, cy, cz := math.Cos(r.X), math.Cos(r.Y), math.Cos(r.Z)
	sx, sy, sz := math.Sin(r.X), math.Sin(r.Y), math.Sin(r.Z)

	var out Mat4
	out.m = [16]float64{
		cy*cz - sy*sx*sz, -cy*sz - sy*sx*cz, -sy * cx, 0,
		cx * sz, cx * cz, -sx, 0,
		sy*cz + cy*sx*sz, -sy*sz + cy*sx*cz, cy * cx, 0,
		0, 0, 0, 1,
	}
	return out
}

// NewLookAt builds a camera-to-world transform from an eye position, target
// and up vector.
func NewLookAt(pos, lookAt, up Vec3) Mat4 {
	f := lookAt.Subtract(pos).Normalize()
	r := f.Cross(up).Normalize()
	u := r.Cross(f).Normalize()

	var out Mat4
	out.m = [16]float64{
		r.X, u.X, f.X, pos.X,
		r.Y, u.Y, f.Y, pos.Y,
		r.Z, u.Z, f.Z, pos.Z,
		0, 0, 0, 1,
	}
	return out
}
