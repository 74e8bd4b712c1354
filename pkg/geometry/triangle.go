package geometry

import "github.com/df07/go-progressive-raytracer/pkg/core"

// Triangle holds the three vertex indices of a mesh face, referencing the
// same slot in the mesh's vertex, normal and uv arrays.
type Triangle struct {
	I0, I1, I2 uint32
}

// intersectTriangle implements the Möller–Trumbore ray/triangle test given
// precomputed edge vectors e1 = v1-v0, e2 = v2-v0. Returns (t, u, v, hit).
func intersectTriangle(ray core.Ray, v0, e1, e2 core.Vec3) (float64, float64, float64, bool) {
	p := ray.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -1e-12 && det < 1e-12 {
		return 0, 0, 0, false
	}
	invDet := 1 / det

	t0 := ray.Origin.Subtract(v0)
	u := t0.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := t0.Cross(e1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t := e2.Dot(q) * invDet
	if t <= 0 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}
