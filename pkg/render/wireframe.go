package render

import (
	"image/color"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// Wireframe draws 3D lines over a rendered image, without depth testing.
type Wireframe[T Pixel[T]] struct {
	img *Image[T]
	tr  Transform
}

// NewWireframe creates a line overlay for img seen through tr.
func NewWireframe[T Pixel[T]](img *Image[T], tr Transform) *Wireframe[T] {
	return &Wireframe[T]{img: img, tr: tr}
}

// DrawLine3D draws the segment p1-p2, given in object space.
func (w *Wireframe[T]) DrawLine3D(p1, p2 math3d.Vec3, c color.RGBA) {
	s1 := w.tr.WholePoint(p1)
	s2 := w.tr.WholePoint(p2)
	w.img.DrawLine(
		int(math.Floor(s1.X)), int(math.Floor(s1.Y)),
		int(math.Floor(s2.X)), int(math.Floor(s2.Y)),
		ColorOf[T](c),
	)
}

// DrawAxes draws the coordinate axes at the origin: X red, Y green, Z blue.
func (w *Wireframe[T]) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)
}

// DrawMesh outlines every triangle of mesh.
func (w *Wireframe[T]) DrawMesh(mesh MeshRenderer, c color.RGBA) {
	for i := range mesh.TriangleCount() {
		f := FaceAt(mesh, i).Positions
		w.DrawLine3D(f[0], f[1], c)
		w.DrawLine3D(f[1], f[2], c)
		w.DrawLine3D(f[2], f[0], c)
	}
}
