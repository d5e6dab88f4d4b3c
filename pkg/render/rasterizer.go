package render

import (
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// Stats counts what the rasterizer did, for debugging and benchmarking.
type Stats struct {
	Triangles     int // Triangles submitted
	Degenerate    int // Triangles skipped for having (nearly) zero area
	Fragments     int // Pixels written
	DepthRejected int // Candidate pixels that failed the depth test
	Discarded     int // Pixels the shader discarded
}

// Rasterizer fills triangles into one image and its depth buffer.
type Rasterizer[T Pixel[T]] struct {
	img   *Image[T]
	zbuf  *DepthBuffer
	Stats Stats

	// OnFace, if set, is called after each face drawn by DrawMesh.
	OnFace func(i int)
}

// NewRasterizer creates a rasterizer drawing into img with a fresh depth
// buffer of the same size.
func NewRasterizer[T Pixel[T]](img *Image[T]) *Rasterizer[T] {
	return &Rasterizer[T]{
		img:  img,
		zbuf: NewDepthBuffer(img.Width, img.Height),
	}
}

// Image returns the target image.
func (r *Rasterizer[T]) Image() *Image[T] {
	return r.img
}

// Depth returns the depth buffer.
func (r *Rasterizer[T]) Depth() *DepthBuffer {
	return r.zbuf
}

// barycentric returns the weights of pixel p relative to the screen-space
// triangle (a, b, c). Degenerate triangles, whose doubled area is below one
// pixel, return a vector with a negative weight so no pixel is covered.
func barycentric(a, b, c math3d.Vec3, px, py float64) math3d.Vec3 {
	u := math3d.V3(c.X-a.X, b.X-a.X, a.X-px).Cross(math3d.V3(c.Y-a.Y, b.Y-a.Y, a.Y-py))
	if math.Abs(u.Z) < 1 {
		return math3d.V3(-1, 1, 1)
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// Triangle fills the screen-space triangle pts using shader s. A pixel is
// written only if it lies inside the triangle, its interpolated depth is
// strictly greater than the stored depth, and the shader does not discard it.
func (r *Rasterizer[T]) Triangle(s Shader[T], pts [3]math3d.Vec3) {
	r.Stats.Triangles++

	a, b, c := pts[0], pts[1], pts[2]
	if math.Abs((c.X-a.X)*(b.Y-a.Y)-(b.X-a.X)*(c.Y-a.Y)) < 1 {
		r.Stats.Degenerate++
		return
	}

	// Bounding box clamped to the image; the max corner is inclusive.
	minX := max(0, int(math.Floor(min3(a.X, b.X, c.X))))
	maxX := min(r.img.Width-1, int(math.Floor(max3(a.X, b.X, c.X))))
	minY := max(0, int(math.Floor(min3(a.Y, b.Y, c.Y))))
	maxY := min(r.img.Height-1, int(math.Floor(max3(a.Y, b.Y, c.Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := barycentric(a, b, c, float64(x), float64(y))
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*a.Z + bc.Y*b.Z + bc.Z*c.Z
			if z <= r.zbuf.At(x, y) {
				r.Stats.DepthRejected++
				continue
			}

			var color T
			if s.Fragment(bc, &color) {
				r.Stats.Discarded++
				continue
			}
			r.zbuf.Set(x, y, z)
			r.img.Set(x, y, color)
			r.Stats.Fragments++
		}
	}
}

// DrawMesh runs s over every face of mesh: the vertex stage produces NDC
// corners, tr's viewport maps them to the screen, and Triangle fills them.
func (r *Rasterizer[T]) DrawMesh(mesh MeshRenderer, s Shader[T], tr Transform, lightDir math3d.Vec3) {
	for i := range mesh.TriangleCount() {
		ndc := s.Vertex(FaceAt(mesh, i), lightDir)
		var screen [3]math3d.Vec3
		for k, p := range ndc {
			screen[k] = tr.ViewportPoint(p)
		}
		r.Triangle(s, screen)
		if r.OnFace != nil {
			r.OnFace(i)
		}
	}
}
