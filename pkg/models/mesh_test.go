package models

import (
	"math"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

func near(a, b math3d.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// slope builds a single triangle lying on the plane x + y = 1.
func slope() *Mesh {
	m := NewMesh("slope")
	n := math3d.V3(1, 1, 0).Normalize()
	m.AddVertex(MeshVertex{Position: math3d.V3(1, 0, 0), Normal: n})
	m.AddVertex(MeshVertex{Position: math3d.V3(0, 1, 0), Normal: n})
	m.AddVertex(MeshVertex{Position: math3d.V3(0, 1, 1), Normal: n})
	m.AddFace(0, 1, 2)
	return m
}

func TestTransformKeepsNormalsPerpendicular(t *testing.T) {
	m := slope()
	m.Transform(math3d.Scale(math3d.V3(4, 1, 1)))

	edge := m.Vertices[1].Position.Sub(m.Vertices[0].Position)
	for i, v := range m.Vertices {
		if d := v.Normal.Dot(edge); math.Abs(d) > 1e-9 {
			t.Errorf("vertex %d normal · edge = %v", i, d)
		}
		if l := v.Normal.Len(); math.Abs(l-1) > 1e-9 {
			t.Errorf("vertex %d normal length = %v", i, l)
		}
	}
	if m.BoundsMax.X != 4 {
		t.Errorf("bounds not updated: %v", m.BoundsMax)
	}
}

func TestNormalizeToUnit(t *testing.T) {
	m := NewMesh("box")
	m.AddVertex(MeshVertex{Position: math3d.V3(2, 10, 4)})
	m.AddVertex(MeshVertex{Position: math3d.V3(6, 12, 5)})
	m.AddVertex(MeshVertex{Position: math3d.V3(4, 11, 6)})
	m.AddFace(0, 1, 2)

	m.NormalizeToUnit()

	if !near(m.BoundsMin, math3d.V3(-1, -0.5, -0.5), 1e-12) || !near(m.BoundsMax, math3d.V3(1, 0.5, 0.5), 1e-12) {
		t.Errorf("bounds = %v .. %v", m.BoundsMin, m.BoundsMax)
	}

	flat := NewMesh("point")
	flat.AddVertex(MeshVertex{Position: math3d.V3(3, 3, 3)})
	flat.NormalizeToUnit()
	if flat.Vertices[0].Position != math3d.V3(3, 3, 3) {
		t.Error("zero-size mesh was moved")
	}
}

func TestCalculateNormals(t *testing.T) {
	// Two faces of a tent sharing the ridge edge 1-2.
	m := NewMesh("tent")
	m.AddVertex(MeshVertex{Position: math3d.V3(-1, 0, 0)})
	m.AddVertex(MeshVertex{Position: math3d.V3(0, 1, 0)})
	m.AddVertex(MeshVertex{Position: math3d.V3(0, 1, -1)})
	m.AddVertex(MeshVertex{Position: math3d.V3(1, 0, 0)})
	m.AddFace(0, 1, 2)
	m.AddFace(3, 2, 1)

	m.CalculateSmoothNormals()
	if got := m.Vertices[1].Normal; !near(got, math3d.V3(0, 1, 0), 1e-12) {
		t.Errorf("ridge normal = %v, want +y", got)
	}
	if got := m.Vertices[0].Normal; !near(got, math3d.V3(-1, 1, 0).Normalize(), 1e-12) {
		t.Errorf("left normal = %v", got)
	}

	m.CalculateNormals()
	if got := m.Vertices[0].Normal; !near(got, math3d.V3(-1, 1, 0).Normalize(), 1e-12) {
		t.Errorf("flat left normal = %v", got)
	}
	if got := m.Vertices[3].Normal; !near(got, math3d.V3(1, 1, 0).Normalize(), 1e-12) {
		t.Errorf("flat right normal = %v", got)
	}
}

func TestFaceMaterialIndex(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
	}
	mesh.AddFace(6, 7, 8)

	if mesh.GetFaceMaterial(1) != 1 {
		t.Errorf("Face 1 should have material 1, got %d", mesh.GetFaceMaterial(1))
	}
	if mesh.GetFaceMaterial(2) != -1 {
		t.Errorf("AddFace should leave the material unset, got %d", mesh.GetFaceMaterial(2))
	}
	if mat := mesh.GetMaterial(0); mat == nil || mat.Name != "red" {
		t.Errorf("GetMaterial(0) should return 'red' material")
	}
	if mesh.GetMaterial(-1) != nil || mesh.GetMaterial(99) != nil {
		t.Errorf("GetMaterial out of range should return nil")
	}
	if mesh.BaseMap() != nil {
		t.Error("BaseMap should be nil without textures")
	}
}
