package loaders

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
)

// NamedMesh pairs a mesh with the name given to it by the OBJ file's "o"
// records (or "" if the file never used one).
type NamedMesh struct {
	Name string
	Mesh *geometry.Mesh
}

// objVertexKey identifies a unique (position, uv, normal) triple; OBJ faces
// reference the three index streams independently, so two faces sharing a
// position but not a normal need distinct mesh vertices.
type objVertexKey struct {
	V, U, N int
}

// objTriangle holds the three index triples making up a face, before
// dedup into mesh-local vertex slots.
type objTriangle struct {
	keys [3]objVertexKey
}

type meshCacheEntry struct {
	Name      string
	Vertices  []core.Vec3
	Normals   []core.Vec3
	UVs       []core.Vec2
	Triangles []geometry.Triangle
}

// LoadOBJ parses a Wavefront OBJ file, applying transform to every vertex
// position as it's read (normals are left untransformed, matching the
// reference loader this is grounded on). "o" records split the file into
// separate named meshes; a file with no "o" records yields one mesh named
// "". Results are cached on disk keyed by a hash of (path, transform).
func LoadOBJ(path string, transform core.Mat4) ([]NamedMesh, error) {
	cacheKey := objCacheKey(path, transform)
	if cached, ok := loadOBJCache(cacheKey); ok {
		return cached, nil
	}

	meshes, entries, err := parseOBJ(path, transform)
	if err != nil {
		return nil, err
	}

	saveOBJCache(cacheKey, entries)
	return meshes, nil
}

func parseOBJ(path string, transform core.Mat4) ([]NamedMesh, []meshCacheEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loaders: open %s: %w", path, err)
	}
	defer f.Close()

	var vertices, normals []core.Vec3
	var uvs []core.Vec2
	var triangles []objTriangle
	var meshes []NamedMesh
	var entries []meshCacheEntry
	currName := ""
	var flushErr error

	flush := func() {
		if len(triangles) == 0 || flushErr != nil {
			return
		}
		mesh, entry, err := buildMesh(vertices, normals, uvs, triangles)
		if err != nil {
			flushErr = fmt.Errorf("loaders: %s: %w", path, err)
			return
		}
		entry.Name = currName
		meshes = append(meshes, NamedMesh{Name: currName, Mesh: mesh})
		entries = append(entries, entry)
		triangles = nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, nil, fmt.Errorf("loaders: %s: bad v record: %w", path, err)
			}
			vertices = append(vertices, transform.TransformPoint(v))

		case "vt":
			if len(fields) < 3 {
				return nil, nil, fmt.Errorf("loaders: %s: bad vt record", path)
			}
			u, errU := strconv.ParseFloat(fields[1], 64)
			v, errV := strconv.ParseFloat(fields[2], 64)
			if errU != nil || errV != nil {
				return nil, nil, fmt.Errorf("loaders: %s: bad vt record", path)
			}
			uvs = append(uvs, core.Vec2{X: u, Y: v})

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, nil, fmt.Errorf("loaders: %s: bad vn record: %w", path, err)
			}
			normals = append(normals, n.Normalize())

		case "f":
			tri, err := parseFace(fields[1:], len(vertices), len(uvs), len(normals))
			if err != nil {
				return nil, nil, fmt.Errorf("loaders: %s: bad f record: %w", path, err)
			}
			triangles = append(triangles, tri...)

		case "o":
			flush()
			if flushErr != nil {
				return nil, nil, flushErr
			}
			if len(fields) > 1 {
				currName = fields[1]
			} else {
				currName = ""
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("loaders: %s: %w", path, err)
	}
	flush()
	if flushErr != nil {
		return nil, nil, flushErr
	}

	return meshes, entries, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.Vec3{X: x, Y: y, Z: z}, nil
}

// normalizeObjIndex converts a 1-based (or negative, relative-to-end) OBJ
// index into a 0-based slice index.
func normalizeObjIndex(idx, length int) int {
	if idx < 0 {
		return length + idx
	}
	return idx - 1
}

// parseFace parses a polygon face's vertex groups ("v/vt/vn") and fans it
// into triangles around the first vertex.
func parseFace(groups []string, nv, nu, nn int) ([]objTriangle, error) {
	if len(groups) < 3 {
		return nil, fmt.Errorf("face has fewer than 3 vertices")
	}

	keys := make([]objVertexKey, len(groups))
	for i, g := range groups {
		parts := strings.Split(g, "/")
		vi, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("bad vertex index %q: %w", parts[0], err)
		}
		key := objVertexKey{V: normalizeObjIndex(vi, nv)}

		if len(parts) > 1 && parts[1] != "" {
			ui, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("bad uv index %q: %w", parts[1], err)
			}
			key.U = normalizeObjIndex(ui, nu)
		} else {
			key.U = -1
		}

		if len(parts) > 2 && parts[2] != "" {
			ni, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("bad normal index %q: %w", parts[2], err)
			}
			key.N = normalizeObjIndex(ni, nn)
		} else {
			key.N = -1
		}

		keys[i] = key
	}

	tris := make([]objTriangle, 0, len(groups)-2)
	for i := 2; i < len(keys); i++ {
		tris = append(tris, objTriangle{keys: [3]objVertexKey{keys[0], keys[i-1], keys[i]}})
	}
	return tris, nil
}

// buildMesh deduplicates (v,u,n) index triples into a single mesh-local
// vertex slot per unique combination, matching the reference loader's
// create_mesh so shared edges keep a 1-1 vertex/normal/uv correspondence.
func buildMesh(vertices, normals []core.Vec3, uvs []core.Vec2, triangles []objTriangle) (*geometry.Mesh, meshCacheEntry, error) {
	vertexMap := make(map[objVertexKey]uint32, len(vertices))
	var vs []core.Vec3
	var ns []core.Vec3
	var us []core.Vec2
	var ts []geometry.Triangle

	hasUVs := len(uvs) > 0

	resolve := func(k objVertexKey) (uint32, error) {
		if idx, ok := vertexMap[k]; ok {
			return idx, nil
		}
		if k.V < 0 || k.V >= len(vertices) {
			return 0, fmt.Errorf("vertex index %d out of range", k.V)
		}
		if k.N < 0 || k.N >= len(normals) {
			return 0, fmt.Errorf("mesh: missing normals")
		}

		idx := uint32(len(vs))
		vs = append(vs, vertices[k.V])
		ns = append(ns, normals[k.N])
		if hasUVs {
			if k.U >= 0 && k.U < len(uvs) {
				us = append(us, uvs[k.U])
			} else {
				us = append(us, core.Vec2{})
			}
		}
		vertexMap[k] = idx
		return idx, nil
	}

	for _, tri := range triangles {
		var idxs [3]uint32
		for i, k := range tri.keys {
			idx, err := resolve(k)
			if err != nil {
				return nil, meshCacheEntry{}, err
			}
			idxs[i] = idx
		}
		ts = append(ts, geometry.Triangle{I0: idxs[0], I1: idxs[1], I2: idxs[2]})
	}

	mesh, err := geometry.NewMesh(vs, ns, us, ts)
	if err != nil {
		return nil, meshCacheEntry{}, err
	}
	return mesh, meshCacheEntry{Vertices: vs, Normals: ns, UVs: us, Triangles: ts}, nil
}

func objCacheKey(path string, transform core.Mat4) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			fmt.Fprintf(h, "%x", transform.At(row, col))
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func objCacheDir() string {
	return filepath.Join(os.TempDir(), "obj_cache")
}

func loadOBJCache(key string) ([]NamedMesh, bool) {
	f, err := os.Open(filepath.Join(objCacheDir(), key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var entries []meshCacheEntry
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return nil, false
	}

	meshes := make([]NamedMesh, 0, len(entries))
	for _, e := range entries {
		mesh, err := geometry.NewMesh(e.Vertices, e.Normals, e.UVs, e.Triangles)
		if err != nil {
			return nil, false
		}
		meshes = append(meshes, NamedMesh{Name: e.Name, Mesh: mesh})
	}
	return meshes, true
}

func saveOBJCache(key string, entries []meshCacheEntry) {
	dir := objCacheDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}

	f, err := os.Create(filepath.Join(dir, key))
	if err != nil {
		return
	}
	defer f.Close()

	_ = gob.NewEncoder(f).Encode(entries)
}
