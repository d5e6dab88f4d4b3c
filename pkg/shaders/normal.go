package shaders

import (
	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// NormalMapped replaces the interpolated normal with one read from an
// object-space normal map, lighting the diffuse map per pixel.
type NormalMapped[T render.Pixel[T]] struct {
	Transform render.Transform
	Maps      *render.Maps[T]

	uv    [3]math3d.Vec2
	light math3d.Vec3 // Unit light direction in NDC
}

// NewNormalMapped requires diffuse and normal maps.
func NewNormalMapped[T render.Pixel[T]](tr render.Transform, maps *render.Maps[T]) (*NormalMapped[T], error) {
	if err := require("diffuse", maps.DiffuseMap != nil); err != nil {
		return nil, err
	}
	if err := require("normal", maps.NormalMap != nil); err != nil {
		return nil, err
	}
	return &NormalMapped[T]{Transform: tr, Maps: maps}, nil
}

func (s *NormalMapped[T]) Vertex(face render.Face, lightDir math3d.Vec3) [3]math3d.Vec3 {
	checkUVs(face)
	s.uv = face.UVs
	s.light = s.Transform.NDCDir(lightDir).Normalize()
	return toNDC(s.Transform, face)
}

func (s *NormalMapped[T]) Fragment(bc math3d.Vec3, c *T) bool {
	uv := interpUV(bc, s.uv)
	n := s.Transform.NDCInvTr(s.Maps.Normal(uv)).Normalize()
	*c = s.Maps.Diffuse(uv).Shade(max(0, n.Dot(s.light)))
	return false
}

// NormalSpecular adds Phong specular highlights to NormalMapped, with the
// exponent read from the specular map.
type NormalSpecular[T render.Pixel[T]] struct {
	Transform render.Transform
	Maps      *render.Maps[T]
	Lighting  Lighting

	uv    [3]math3d.Vec2
	light math3d.Vec3
}

// NewNormalSpecular requires diffuse, normal and specular maps.
func NewNormalSpecular[T render.Pixel[T]](tr render.Transform, maps *render.Maps[T], lt Lighting) (*NormalSpecular[T], error) {
	for _, m := range []struct {
		name    string
		present bool
	}{
		{"diffuse", maps.DiffuseMap != nil},
		{"normal", maps.NormalMap != nil},
		{"specular", maps.SpecularMap != nil},
	} {
		if err := require(m.name, m.present); err != nil {
			return nil, err
		}
	}
	return &NormalSpecular[T]{Transform: tr, Maps: maps, Lighting: lt}, nil
}

func (s *NormalSpecular[T]) Vertex(face render.Face, lightDir math3d.Vec3) [3]math3d.Vec3 {
	checkUVs(face)
	s.uv = face.UVs
	s.light = s.Transform.NDCDir(lightDir).Normalize()
	return toNDC(s.Transform, face)
}

func (s *NormalSpecular[T]) Fragment(bc math3d.Vec3, c *T) bool {
	uv := interpUV(bc, s.uv)
	n := s.Transform.NDCInvTr(s.Maps.Normal(uv)).Normalize()
	diff, spec := phong(n, s.light, s.Maps.Specular(uv))
	*c = lit(s.Lighting, s.Maps.Diffuse(uv), 1, diff, spec)
	return false
}
