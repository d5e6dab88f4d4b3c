// Package models loads triangle meshes from Wavefront OBJ and glTF files.
package models

import (
	"image"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle with vertex indices and a material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the part of a glTF material the renderer can use.
type Material struct {
	Name      string
	BaseColor [4]float64  // RGBA in 0-1 range
	BaseMap   image.Image // Optional base color texture
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v MeshVertex) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a triangle without a material.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}, Material: -1})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateNormals assigns each face's normal to its vertices. Vertices
// shared between faces keep the normal of the last face.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		normal := m.faceNormal(f).Normalize()
		for _, vi := range f.V {
			m.Vertices[vi].Normal = normal
		}
	}
}

// CalculateSmoothNormals computes area-weighted averaged normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// The unnormalized cross product weights each face by its area.
	for _, f := range m.Faces {
		normal := m.faceNormal(f)
		for _, vi := range f.V {
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// Transform applies mat to every vertex. Normals are transformed by the
// inverse transpose so they stay perpendicular under non-uniform scaling.
func (m *Mesh) Transform(mat math3d.Mat4) {
	normalMat := mat.Inverse().Transpose()
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = normalMat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// NormalizeToUnit centers the mesh on the origin and scales it uniformly
// so its largest dimension spans [-1, 1].
func (m *Mesh) NormalizeToUnit() {
	m.CalculateBounds()
	size := m.Size()
	half := max(size.X, size.Y, size.Z) / 2
	if half == 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(1 / half).Mul(math3d.Translate(m.Center().Scale(-1))))
}

// GetVertex returns the position, normal, and UV for vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetFaceMaterial returns the material index for face i.
// Returns -1 if no material assigned.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// BaseMap returns the first material texture in the mesh, or nil.
func (m *Mesh) BaseMap() image.Image {
	for _, mat := range m.Materials {
		if mat.BaseMap != nil {
			return mat.BaseMap
		}
	}
	return nil
}
