package shaders

import (
	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// Gouraud computes a diffuse intensity at each vertex and interpolates it
// across the triangle, shading a single base color.
type Gouraud[T render.Pixel[T]] struct {
	Transform render.Transform
	BaseColor T

	intensity math3d.Vec3
}

// NewGouraud creates a Gouraud shader painting color.
func NewGouraud[T render.Pixel[T]](tr render.Transform, color T) *Gouraud[T] {
	return &Gouraud[T]{Transform: tr, BaseColor: color}
}

// Vertex records max(0, n̂·l̂) for each corner, in object space.
func (s *Gouraud[T]) Vertex(face render.Face, lightDir math3d.Vec3) [3]math3d.Vec3 {
	s.intensity = vertexIntensity(face, lightDir)
	return toNDC(s.Transform, face)
}

func (s *Gouraud[T]) Fragment(bc math3d.Vec3, c *T) bool {
	*c = s.BaseColor.Shade(s.intensity.Dot(bc))
	return false
}

func vertexIntensity(face render.Face, lightDir math3d.Vec3) math3d.Vec3 {
	l := lightDir.Normalize()
	var v [3]float64
	for i, n := range face.Normals {
		v[i] = max(0, n.Normalize().Dot(l))
	}
	return math3d.V3(v[0], v[1], v[2])
}

// GouraudTexture is Gouraud shading applied to the diffuse map.
type GouraudTexture[T render.Pixel[T]] struct {
	Transform render.Transform
	Maps      *render.Maps[T]

	intensity math3d.Vec3
	uv        [3]math3d.Vec2
}

// NewGouraudTexture creates a textured Gouraud shader. maps must hold a
// diffuse map.
func NewGouraudTexture[T render.Pixel[T]](tr render.Transform, maps *render.Maps[T]) (*GouraudTexture[T], error) {
	if err := require("diffuse", maps.DiffuseMap != nil); err != nil {
		return nil, err
	}
	return &GouraudTexture[T]{Transform: tr, Maps: maps}, nil
}

func (s *GouraudTexture[T]) Vertex(face render.Face, lightDir math3d.Vec3) [3]math3d.Vec3 {
	checkUVs(face)
	s.uv = face.UVs
	s.intensity = vertexIntensity(face, lightDir)
	return toNDC(s.Transform, face)
}

func (s *GouraudTexture[T]) Fragment(bc math3d.Vec3, c *T) bool {
	*c = s.Maps.Diffuse(interpUV(bc, s.uv)).Shade(s.intensity.Dot(bc))
	return false
}
