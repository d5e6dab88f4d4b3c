package shaders

import (
	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// TangentNormal reads normals from a tangent-space map and moves them into
// NDC with the per-triangle Darboux frame. Lighting is Phong when a
// specular map is present, plain diffuse otherwise.
type TangentNormal[T render.Pixel[T]] struct {
	Transform render.Transform
	Maps      *render.Maps[T]
	Lighting  Lighting

	uv      [3]math3d.Vec2
	ndc     [3]math3d.Vec3
	normals [3]math3d.Vec3 // NDC, not normalized
	light   math3d.Vec3
}

// NewTangentNormal requires diffuse and tangent maps.
func NewTangentNormal[T render.Pixel[T]](tr render.Transform, maps *render.Maps[T], lt Lighting) (*TangentNormal[T], error) {
	if err := require("diffuse", maps.DiffuseMap != nil); err != nil {
		return nil, err
	}
	if err := require("tangent", maps.TangentMap != nil); err != nil {
		return nil, err
	}
	return &TangentNormal[T]{Transform: tr, Maps: maps, Lighting: lt}, nil
}

func (s *TangentNormal[T]) Vertex(face render.Face, lightDir math3d.Vec3) [3]math3d.Vec3 {
	checkUVs(face)
	s.uv = face.UVs
	s.ndc = toNDC(s.Transform, face)
	for i, n := range face.Normals {
		s.normals[i] = s.Transform.NDCInvTr(n)
	}
	s.light = s.Transform.NDCDir(lightDir).Normalize()
	return s.ndc
}

// frame returns the tangent and bitangent of the current triangle for the
// interpolated normal n. Both are zero when the UVs are degenerate.
func (s *TangentNormal[T]) frame(n math3d.Vec3) (t, b math3d.Vec3) {
	a := math3d.Mat3FromRows(s.ndc[1].Sub(s.ndc[0]), s.ndc[2].Sub(s.ndc[0]), n).Inverse()
	du1, du2 := s.uv[1].Sub(s.uv[0]), s.uv[2].Sub(s.uv[0])
	t = a.MulVec3(math3d.V3(du1.X, du2.X, 0))
	b = a.MulVec3(math3d.V3(du1.Y, du2.Y, 0))
	return t.Normalize(), b.Normalize()
}

func (s *TangentNormal[T]) Fragment(bc math3d.Vec3, c *T) bool {
	uv := interpUV(bc, s.uv)
	n := math3d.Bary(bc, s.normals[0], s.normals[1], s.normals[2]).Normalize()
	t, b := s.frame(n)
	normal := math3d.Mat3FromCols(t, b, n).MulVec3(s.Maps.Tangent(uv)).Normalize()

	if s.Maps.SpecularMap == nil {
		*c = s.Maps.Diffuse(uv).Shade(max(0, normal.Dot(s.light)))
		return false
	}
	diff, spec := phong(normal, s.light, s.Maps.Specular(uv))
	*c = lit(s.Lighting, s.Maps.Diffuse(uv), 1, diff, spec)
	return false
}
