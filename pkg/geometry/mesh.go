package geometry

import (
	"errors"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Mesh is an indexed triangle mesh: vertices, shading normals and UVs share
// a 1-1 correspondence by slot, and triangles reference that slot by index.
// Each triangle's edge vectors are precomputed once at construction, and the
// mesh owns a BVH over its own triangle indices for self-intersection.
type Mesh struct {
	vertices    []core.Vec3
	normals     []core.Vec3
	uvs         []core.Vec2
	triangles   []Triangle
	trianglesE1 []core.Vec3
	trianglesE2 []core.Vec3
	bvh         *BVH[uint32]
}

// NewMesh builds a Mesh from parallel vertex/normal/uv arrays and a
// triangle index list. Returns an error if normals are missing, matching
// the fatal-at-construction contract for malformed mesh data.
func NewMesh(vertices, normals []core.Vec3, uvs []core.Vec2, triangles []Triangle) (*Mesh, error) {
	if len(normals) == 0 {
		return nil, errors.New("mesh: missing normals")
	}

	m := &Mesh{
		vertices:  vertices,
		normals:   normals,
		uvs:       uvs,
		triangles: triangles,
	}
	m.computeEdges()

	indices := make([]uint32, len(triangles))
	for i := range indices {
		indices[i] = uint32(i)
	}
	m.bvh = BuildBVH(indices,
		func(idx uint32, axis core.Axis) float64 {
			tri := m.triangles[idx]
			c := m.vertices[tri.I0].Add(m.vertices[tri.I1]).Add(m.vertices[tri.I2]).Divide(3)
			return c.Component(axis)
		},
		func(idx uint32) core.AABB {
			tri := m.triangles[idx]
			return core.NewAABBFromPoints(m.vertices[tri.I0], m.vertices[tri.I1], m.vertices[tri.I2]).Expand(1e-6)
		},
	)

	return m, nil
}

func (m *Mesh) computeEdges() {
	m.trianglesE1 = make([]core.Vec3, len(m.triangles))
	m.trianglesE2 = make([]core.Vec3, len(m.triangles))
	for i, tri := range m.triangles {
		m.trianglesE1[i] = m.vertices[tri.I1].Subtract(m.vertices[tri.I0])
		m.trianglesE2[i] = m.vertices[tri.I2].Subtract(m.vertices[tri.I0])
	}
}

// Intersect finds the closest triangle hit via the mesh's own BVH, then
// barycentrically interpolates the shading normal and UV.
func (m *Mesh) Intersect(ray core.Ray) (Intersection, bool) {
	t, idx, bary := Intersect(m.bvh, ray, m.intersectTriangleItem)
	if t <= 0 {
		return Intersection{}, false
	}
	_ = idx

	tri := m.triangles[bary.triIdx]
	u, v := bary.u, bary.v
	w := 1 - u - v

	n := m.normals[tri.I0].Multiply(w).Add(m.normals[tri.I1].Multiply(u)).Add(m.normals[tri.I2].Multiply(v)).Normalize()

	var uv core.Vec2
	if len(m.uvs) > 0 {
		uv0, uv1, uv2 := m.uvs[tri.I0], m.uvs[tri.I1], m.uvs[tri.I2]
		uv = core.Vec2{
			X: uv0.X*w + uv1.X*u + uv2.X*v,
			Y: uv0.Y*w + uv1.Y*u + uv2.Y*v,
		}
	}

	return Intersection{Distance: t, Normal: n, UV: uv}, true
}

type triHit struct {
	triIdx  uint32
	u, v    float64
}

func (m *Mesh) intersectTriangleItem(ray core.Ray, idx uint32) (float64, triHit) {
	v0 := m.vertices[m.triangles[idx].I0]
	t, u, v, hit := intersectTriangle(ray, v0, m.trianglesE1[idx], m.trianglesE2[idx])
	if !hit {
		return -1, triHit{}
	}
	return t, triHit{triIdx: idx, u: u, v: v}
}

// BoundingBox returns the mesh's bounding box (its internal BVH's root bbox).
func (m *Mesh) BoundingBox() core.AABB {
	return m.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}
