package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/lights"
	"github.com/df07/go-progressive-raytracer/pkg/material"
	"github.com/df07/go-progressive-raytracer/pkg/renderer"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// LoadedScene is the result of loading a Tungsten-style JSON scene: a
// ready-to-render Scene plus the Camera its "camera" block described.
type LoadedScene struct {
	Scene  *scene.Scene
	Camera *renderer.Camera
}

type tungstenDoc struct {
	BSDFs      []json.RawMessage `json:"bsdfs"`
	Primitives []json.RawMessage `json:"primitives"`
	Camera     json.RawMessage   `json:"camera"`
}

type bsdfHeader struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type primitiveHeader struct {
	Type string `json:"type"`
}

// LoadTungstenScene reads a Tungsten-style JSON scene description (bsdfs,
// primitives, camera) from path and builds a Scene and Camera from it.
// baseDir (for resolving relative mesh/bitmap paths) is path's directory.
func LoadTungstenScene(path string) (*LoadedScene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: %w", path, err)
	}

	var doc tungstenDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("loaders: %s: malformed scene JSON: %w", path, err)
	}

	baseDir := filepath.Dir(path)

	named := map[string]material.Material{}
	for _, entry := range doc.BSDFs {
		var hdr bsdfHeader
		if err := json.Unmarshal(entry, &hdr); err != nil {
			return nil, fmt.Errorf("loaders: %s: bad bsdf entry: %w", path, err)
		}
		mat, err := convertBSDF(entry, named, baseDir)
		if err != nil {
			return nil, fmt.Errorf("loaders: %s: bsdf %q: %w", path, hdr.Name, err)
		}
		if hdr.Name != "" {
			named[hdr.Name] = mat
		}
	}

	var objects []scene.Object
	var background lights.Light
	for _, entry := range doc.Primitives {
		var hdr primitiveHeader
		if err := json.Unmarshal(entry, &hdr); err != nil {
			return nil, fmt.Errorf("loaders: %s: bad primitive entry: %w", path, err)
		}

		switch hdr.Type {
		case "quad":
			obj, err := convertQuad(entry, named, path)
			if err != nil {
				return nil, err
			}
			objects = append(objects, obj)

		case "mesh":
			meshObjs, err := convertMesh(entry, named, baseDir, path)
			if err != nil {
				return nil, err
			}
			objects = append(objects, meshObjs...)

		case "infinite_sphere":
			env, err := convertInfiniteSphere(entry, baseDir, path)
			if err != nil {
				return nil, err
			}
			background = env

		default:
			return nil, fmt.Errorf("loaders: %s: unknown primitive type %q", path, hdr.Type)
		}
	}

	cam, err := convertCamera(doc.Camera, path)
	if err != nil {
		return nil, err
	}

	return &LoadedScene{Scene: scene.NewScene(objects, background), Camera: cam}, nil
}

// --- BSDFs ---

type bsdfSpec struct {
	Type      string          `json:"type"`
	Albedo    json.RawMessage `json:"albedo"`
	IOR       json.RawMessage `json:"ior"`
	Material  string          `json:"material"`
	Roughness json.RawMessage `json:"roughness"`
	SigmaA    json.RawMessage `json:"sigma_a"`
	Thickness *float64        `json:"thickness"`
	Substrate json.RawMessage `json:"substrate"`
}

// convertBSDF resolves a single bsdfs[] entry into a Material. Transparency,
// thinsheet and null are deliberately crude: the reference renderer this
// loader is grounded on stubs them (mid-gray diffuse, plain dielectric,
// and a zero-albedo absorber respectively) rather than modeling them
// properly, and this loader follows that same convention.
func convertBSDF(raw json.RawMessage, named map[string]material.Material, baseDir string) (material.Material, error) {
	var spec bsdfSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, err
	}

	albedo, err := convertTexture(spec.Albedo, baseDir, core.Vec3{X: 1, Y: 1, Z: 1})
	if err != nil {
		return nil, err
	}
	roughness, err := convertTexture(spec.Roughness, baseDir, core.Vec3{X: 0.1, Y: 0.1, Z: 0.1})
	if err != nil {
		return nil, err
	}
	ior := floatOrDefault(spec.IOR, 1.5)

	switch spec.Type {
	case "lambert":
		return material.NewDiffuse(albedo), nil
	case "mirror":
		return material.NewMirror(albedo), nil
	case "conductor":
		return material.NewConductorFromSymbol(spec.Material, albedo)
	case "rough_conductor":
		return material.NewRoughConductorFromSymbol(spec.Material, albedo, roughness)
	case "plastic":
		return material.NewPlastic(albedo, ior), nil
	case "rough_plastic":
		return material.NewRoughPlastic(albedo, ior, roughness), nil
	case "dielectric":
		return material.NewDielectric(albedo, ior), nil
	case "rough_dielectric":
		return material.NewRoughDielectric(albedo, ior, roughness), nil
	case "smooth_coat":
		substrate, err := convertBSDFRef(spec.Substrate, named, baseDir)
		if err != nil {
			return nil, fmt.Errorf("substrate: %w", err)
		}
		sigmaA, err := vec3OrDefault(spec.SigmaA, core.Vec3{})
		if err != nil {
			return nil, err
		}
		thickness := 1.0
		if spec.Thickness != nil {
			thickness = *spec.Thickness
		}
		return material.NewSmoothCoat(ior, sigmaA.Multiply(thickness), substrate), nil
	case "transparency":
		return material.NewDiffuse(material.NewConstantTexture(core.Vec3{X: 0.5, Y: 0.5, Z: 0.5})), nil
	case "thinsheet":
		return material.NewDielectric(albedo, ior), nil
	case "null":
		return material.NewDiffuse(material.NewConstantTexture(core.Vec3{})), nil
	default:
		return nil, fmt.Errorf("unknown bsdf type %q", spec.Type)
	}
}

// convertBSDFRef resolves a BsdfRef field, which is either an inline bsdf
// object or a plain JSON string naming a previously declared bsdfs[] entry.
func convertBSDFRef(raw json.RawMessage, named map[string]material.Material, baseDir string) (material.Material, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing bsdf reference")
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		mat, ok := named[name]
		if !ok {
			return nil, fmt.Errorf("undefined bsdf reference %q", name)
		}
		return mat, nil
	}

	return convertBSDF(raw, named, baseDir)
}

// --- Textures ---

type checkerSpec struct {
	Type     string          `json:"type"`
	OnColor  json.RawMessage `json:"on_color"`
	OffColor json.RawMessage `json:"off_color"`
	ResU     float64         `json:"res_u"`
	ResV     float64         `json:"res_v"`
}

// convertTexture resolves a texture field: a constant color (number or
// [r,g,b]), a procedural checker object, a bitmap path string, or (if raw
// is empty) fallback.
func convertTexture(raw json.RawMessage, baseDir string, fallback core.Vec3) (material.Texture, error) {
	if len(raw) == 0 {
		return material.NewConstantTexture(fallback), nil
	}

	var path string
	if err := json.Unmarshal(raw, &path); err == nil {
		img, err := LoadImage(filepath.Join(baseDir, path))
		if err != nil {
			return nil, fmt.Errorf("bitmap texture %q: %w", path, err)
		}
		return material.BitmapTexture{Width: img.Width, Height: img.Height, Pixels: img.Pixels}, nil
	}

	var checker checkerSpec
	if err := json.Unmarshal(raw, &checker); err == nil && checker.Type == "checker" {
		on, err := vec3OrDefault(checker.OnColor, core.Vec3{X: 1, Y: 1, Z: 1})
		if err != nil {
			return nil, err
		}
		off, err := vec3OrDefault(checker.OffColor, core.Vec3{})
		if err != nil {
			return nil, err
		}
		return material.CheckerTexture{OnColor: on, OffColor: off, ResU: checker.ResU, ResV: checker.ResV}, nil
	}

	color, err := vec3OrDefault(raw, fallback)
	if err != nil {
		return nil, fmt.Errorf("bad texture spec: %w", err)
	}
	return material.NewConstantTexture(color), nil
}

// --- Primitives ---

type quadSpec struct {
	Type      string          `json:"type"`
	BSDF      json.RawMessage `json:"bsdf"`
	Transform json.RawMessage `json:"transform"`
	Emission  json.RawMessage `json:"emission"`
}

func convertQuad(raw json.RawMessage, named map[string]material.Material, path string) (scene.Object, error) {
	var spec quadSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("loaders: %s: bad quad: %w", path, err)
	}

	transform, err := convertTransform(spec.Transform)
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: quad transform: %w", path, err)
	}

	edge1 := transform.TransformVector(core.Vec3{X: 0, Y: 0, Z: 1})
	edge2 := transform.TransformVector(core.Vec3{X: 1, Y: 0, Z: 0})
	position := transform.TransformPoint(core.Vec3{X: -0.5, Y: 0, Z: -0.5})
	quad := geometry.NewParallelogram(position, edge1, edge2)

	if len(spec.Emission) > 0 {
		emission, err := vec3OrDefault(spec.Emission, core.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("loaders: %s: quad emission: %w", path, err)
		}
		return scene.NewEmitter(lights.NewAreaLight(quad, emission)), nil
	}

	mat, err := convertBSDFRef(spec.BSDF, named, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: quad bsdf: %w", path, err)
	}
	return scene.NewScatterer(quad, mat), nil
}

type meshSpec struct {
	Type      string          `json:"type"`
	BSDF      json.RawMessage `json:"bsdf"`
	Transform json.RawMessage `json:"transform"`
	File      string          `json:"file"`
}

func convertMesh(raw json.RawMessage, named map[string]material.Material, baseDir, path string) ([]scene.Object, error) {
	var spec meshSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("loaders: %s: bad mesh: %w", path, err)
	}

	transform, err := convertTransform(spec.Transform)
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: mesh transform: %w", path, err)
	}

	mat, err := convertBSDFRef(spec.BSDF, named, baseDir)
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: mesh bsdf: %w", path, err)
	}

	meshes, err := LoadOBJ(filepath.Join(baseDir, spec.File), transform)
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: mesh %q: %w", path, spec.File, err)
	}

	objects := make([]scene.Object, len(meshes))
	for i, m := range meshes {
		objects[i] = scene.NewScatterer(m.Mesh, mat)
	}
	return objects, nil
}

type infiniteSphereSpec struct {
	Type      string          `json:"type"`
	Transform json.RawMessage `json:"transform"`
	Emission  string          `json:"emission"`
}

func convertInfiniteSphere(raw json.RawMessage, baseDir, path string) (lights.Light, error) {
	var spec infiniteSphereSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("loaders: %s: bad infinite_sphere: %w", path, err)
	}

	transform, err := convertTransform(spec.Transform)
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: infinite_sphere transform: %w", path, err)
	}

	img, err := LoadImage(filepath.Join(baseDir, spec.Emission))
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: envmap %q: %w", path, spec.Emission, err)
	}

	return lights.NewEnvMap(defaultLogger{}, img.Width, img.Height, img.Pixels, transform), nil
}

// --- Transform ---

type transformSpec struct {
	Position json.RawMessage `json:"position"`
	LookAt   json.RawMessage `json:"look_at"`
	Up       json.RawMessage `json:"up"`
	Scale    json.RawMessage `json:"scale"`
	Rotation json.RawMessage `json:"rotation"`
}

// convertTransform resolves a Transform field, which is either a
// {position, look_at, up} camera-style transform or a
// {position?, scale?, rotation?} TRS transform (YXZ rotation, degrees).
func convertTransform(raw json.RawMessage) (core.Mat4, error) {
	if len(raw) == 0 {
		return core.NewMat4Identity(), nil
	}

	var spec transformSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return core.Mat4{}, err
	}

	position, err := vec3OrDefault(spec.Position, core.Vec3{})
	if err != nil {
		return core.Mat4{}, err
	}

	if len(spec.LookAt) > 0 {
		lookAt, err := vec3OrDefault(spec.LookAt, core.Vec3{})
		if err != nil {
			return core.Mat4{}, err
		}
		up, err := vec3OrDefault(spec.Up, core.Vec3{X: 0, Y: 1, Z: 0})
		if err != nil {
			return core.Mat4{}, err
		}
		return core.NewLookAt(position, lookAt, up), nil
	}

	scale, err := vec3OrDefault(spec.Scale, core.Vec3{X: 1, Y: 1, Z: 1})
	if err != nil {
		return core.Mat4{}, err
	}
	rotation, err := vec3OrDefault(spec.Rotation, core.Vec3{})
	if err != nil {
		return core.Mat4{}, err
	}

	return core.NewTranslate(position).Mul(core.NewRotateYXZ(rotation)).Mul(core.NewScale(scale)), nil
}

// --- Camera ---

type cameraSpec struct {
	Resolution    json.RawMessage `json:"resolution"`
	Transform     json.RawMessage `json:"transform"`
	FOV           float64         `json:"fov"`
	Tonemap       string          `json:"tonemap"`
	ApertureSize  *float64        `json:"aperture_size"`
	FocusDistance *float64        `json:"focus_distance"`
}

func convertCamera(raw json.RawMessage, path string) (*renderer.Camera, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("loaders: %s: missing camera block", path)
	}

	var spec cameraSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("loaders: %s: bad camera: %w", path, err)
	}

	width, height, err := resolveResolution(spec.Resolution)
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: camera resolution: %w", path, err)
	}

	transform, err := convertTransform(spec.Transform)
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: camera transform: %w", path, err)
	}

	aperture := 0.0
	if spec.ApertureSize != nil {
		aperture = *spec.ApertureSize
	}
	focus := 0.0
	if spec.FocusDistance != nil {
		focus = *spec.FocusDistance
	}

	cam := renderer.NewCamera(transform, width, height, spec.FOV, aperture, focus)
	switch spec.Tonemap {
	case "filmic":
		cam.Tonemap = renderer.Filmic
	case "gamma", "":
		cam.Tonemap = renderer.Gamma
	default:
		return nil, fmt.Errorf("loaders: %s: unknown tonemap %q", path, spec.Tonemap)
	}
	return cam, nil
}

func resolveResolution(raw json.RawMessage) (int, int, error) {
	if len(raw) == 0 {
		return 0, 0, fmt.Errorf("missing resolution")
	}

	var square float64
	if err := json.Unmarshal(raw, &square); err == nil {
		return int(square), int(square), nil
	}

	var pair [2]float64
	if err := json.Unmarshal(raw, &pair); err != nil {
		return 0, 0, err
	}
	return int(pair[0]), int(pair[1]), nil
}

// --- shared scalar/vector JSON helpers ---

func vec3OrDefault(raw json.RawMessage, fallback core.Vec3) (core.Vec3, error) {
	if len(raw) == 0 {
		return fallback, nil
	}

	var scalar float64
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return core.Vec3{X: scalar, Y: scalar, Z: scalar}, nil
	}

	var triple [3]float64
	if err := json.Unmarshal(raw, &triple); err != nil {
		return core.Vec3{}, fmt.Errorf("expected number or [r,g,b]: %w", err)
	}
	return core.Vec3{X: triple[0], Y: triple[1], Z: triple[2]}, nil
}

func floatOrDefault(raw json.RawMessage, fallback float64) float64 {
	if len(raw) == 0 {
		return fallback
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback
	}
	return v
}

// defaultLogger discards degenerate-distribution warnings logged while
// building an environment map's importance sampling distribution.
type defaultLogger struct{}

func (defaultLogger) Printf(format string, args ...interface{}) {}
