package shaders

import (
	"errors"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// Depth renders the scene as seen from a light: each pixel is white shaded
// by its NDC depth, nearer being brighter.
type Depth[T render.Pixel[T]] struct {
	Transform render.Transform

	ndc [3]math3d.Vec3
}

// NewDepth creates a depth shader for the light-space transform tr.
func NewDepth[T render.Pixel[T]](tr render.Transform) *Depth[T] {
	return &Depth[T]{Transform: tr}
}

func (s *Depth[T]) Vertex(face render.Face, _ math3d.Vec3) [3]math3d.Vec3 {
	s.ndc = toNDC(s.Transform, face)
	return s.ndc
}

func (s *Depth[T]) Fragment(bc math3d.Vec3, c *T) bool {
	p := math3d.Bary(bc, s.ndc[0], s.ndc[1], s.ndc[2])
	*c = render.White[T]().Shade((p.Z + 1) / 2)
	return false
}

// ShadowMap is the result of a finished depth pass from a light. It can
// only be obtained from RenderShadowMap.
type ShadowMap struct {
	depth *render.DepthBuffer
	img   *render.Image[render.Gray]
	tr    render.Transform
	stats render.Stats
}

// RenderShadowMap runs the depth pass for mesh as seen through light and
// returns the filled shadow map.
func RenderShadowMap(mesh render.MeshRenderer, light render.Transform, lightDir math3d.Vec3, width, height int) *ShadowMap {
	img := render.NewImage[render.Gray](width, height)
	r := render.NewRasterizer(img)
	r.DrawMesh(mesh, NewDepth[render.Gray](light), light, lightDir)
	return &ShadowMap{depth: r.Depth(), img: img, tr: light, stats: r.Stats}
}

// Image returns the depth pass image.
func (m *ShadowMap) Image() *render.Image[render.Gray] { return m.img }

// Depth returns the depth pass buffer.
func (m *ShadowMap) Depth() *render.DepthBuffer { return m.depth }

// Transform returns the light transform the map was rendered with.
func (m *ShadowMap) Transform() render.Transform { return m.tr }

// Stats returns the rasterizer counters of the depth pass.
func (m *ShadowMap) Stats() render.Stats { return m.stats }

// Lit reports whether the light-screen point p is visible from the light:
// either it falls outside the map, or the stored depth is below p.Z+bias.
func (m *ShadowMap) Lit(p math3d.Vec3, bias float64) bool {
	z, ok := m.depth.Lookup(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	return !ok || z < p.Z+bias
}

// ShadowOptions tunes the shadow test and lighting of a Shadow shader.
type ShadowOptions struct {
	// Bias is added to a fragment's light-space depth before comparing it
	// with the shadow map, in depth-buffer units.
	Bias float64 `yaml:"bias"`

	// Darkness is the fraction of the lit term kept in shadow.
	Darkness float64 `yaml:"darkness"`

	Lighting Lighting `yaml:"lighting"`
}

// DefaultShadowOptions returns bias 43.34, darkness 0.3 and DefaultLighting.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Bias: 43.34, Darkness: 0.3, Lighting: DefaultLighting()}
}

// Shadow is the main pass of shadow mapping: NormalSpecular lighting with
// each fragment reprojected into the shadow map. The specular map is
// optional here; without one the specular term is zero.
type Shadow[T render.Pixel[T]] struct {
	Transform render.Transform
	Maps      *render.Maps[T]
	Options   ShadowOptions

	sm       *ShadowMap
	toShadow math3d.Mat4 // camera screen -> light screen

	uv     [3]math3d.Vec2
	screen [3]math3d.Vec3
	light  math3d.Vec3
}

// NewShadow creates the main-pass shader for camera using the finished
// shadow map sm. maps must hold diffuse and normal maps.
func NewShadow[T render.Pixel[T]](maps *render.Maps[T], camera render.Transform, sm *ShadowMap, opts ShadowOptions) (*Shadow[T], error) {
	if sm == nil {
		return nil, errors.New("shadow: nil shadow map")
	}
	if err := require("diffuse", maps.DiffuseMap != nil); err != nil {
		return nil, err
	}
	if err := require("normal", maps.NormalMap != nil); err != nil {
		return nil, err
	}
	return &Shadow[T]{
		Transform: camera,
		Maps:      maps,
		Options:   opts,
		sm:        sm,
		toShadow:  sm.tr.Whole().Mul(camera.Inverse()),
	}, nil
}

func (s *Shadow[T]) Vertex(face render.Face, lightDir math3d.Vec3) [3]math3d.Vec3 {
	checkUVs(face)
	s.uv = face.UVs
	ndc := toNDC(s.Transform, face)
	for i, p := range ndc {
		s.screen[i] = s.Transform.ViewportPoint(p)
	}
	s.light = s.Transform.NDCDir(lightDir).Normalize()
	return ndc
}

func (s *Shadow[T]) Fragment(bc math3d.Vec3, c *T) bool {
	uv := interpUV(bc, s.uv)

	p := math3d.Bary(bc, s.screen[0], s.screen[1], s.screen[2])
	visibility := s.Options.Darkness
	if s.sm.Lit(s.toShadow.MulVec3(p), s.Options.Bias) {
		visibility = 1
	}

	n := s.Transform.NDCInvTr(s.Maps.Normal(uv)).Normalize()
	var diff, spec float64
	if s.Maps.SpecularMap != nil {
		diff, spec = phong(n, s.light, s.Maps.Specular(uv))
	} else {
		diff = max(0, n.Dot(s.light))
	}
	*c = lit(s.Options.Lighting, s.Maps.Diffuse(uv), visibility, diff, spec)
	return false
}
