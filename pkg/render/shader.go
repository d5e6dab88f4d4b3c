package render

import (
	"github.com/taigrr/tinyrender/pkg/math3d"
)

// MeshRenderer is the geometry source the rasterizer draws from.
// This interface allows drawing meshes without importing the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// Face is one triangle with its per-corner attributes in object space.
type Face struct {
	Positions [3]math3d.Vec3
	Normals   [3]math3d.Vec3
	UVs       [3]math3d.Vec2
}

// FaceAt gathers the attributes of triangle i of mesh.
func FaceAt(mesh MeshRenderer, i int) Face {
	var f Face
	for k, vi := range mesh.GetFace(i) {
		f.Positions[k], f.Normals[k], f.UVs[k] = mesh.GetVertex(vi)
	}
	return f
}

// Shader is the two-stage program run for every triangle.
//
// Vertex receives one face and the object-space light direction, records
// whatever per-triangle state Fragment needs, and returns the three corners
// in normalized device coordinates. Each call replaces the state of the
// previous triangle.
//
// Fragment is called for every covered pixel that passes the depth test,
// with the pixel's barycentric weights. It writes the pixel color and
// returns true to discard the pixel instead.
type Shader[T Pixel[T]] interface {
	Vertex(face Face, lightDir math3d.Vec3) [3]math3d.Vec3
	Fragment(bc math3d.Vec3, color *T) (discard bool)
}
