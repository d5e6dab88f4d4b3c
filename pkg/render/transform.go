package render

import (
	"github.com/taigrr/tinyrender/pkg/math3d"
)

// DepthRange is the depth extent of the viewport: NDC z in [-1, 1] maps to
// screen z in [0, DepthRange].
const DepthRange = 255.0

// LookAt builds a model-view matrix for a camera at eye looking at center.
// The camera basis is z = normalize(eye-center), x = normalize(up×z),
// y = z×x, and center is moved to the origin. Degenerate inputs (eye equal
// to center, or up parallel to the view direction) give a degenerate matrix.
func LookAt(eye, center, up math3d.Vec3) math3d.Mat4 {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x).Normalize()

	m := math3d.Identity()
	for col, v := range [3]float64{x.X, x.Y, x.Z} {
		m.Set(0, col, v)
	}
	for col, v := range [3]float64{y.X, y.Y, y.Z} {
		m.Set(1, col, v)
	}
	for col, v := range [3]float64{z.X, z.Y, z.Z} {
		m.Set(2, col, v)
	}
	m.Set(0, 3, -x.Dot(center))
	m.Set(1, 3, -y.Dot(center))
	m.Set(2, 3, -z.Dot(center))
	return m
}

// Viewport maps the NDC cube onto the pixel rectangle [x, x+w] × [y, y+h],
// with depth mapped to [0, DepthRange].
func Viewport(x, y, w, h int) math3d.Mat4 {
	m := math3d.Identity()
	m.Set(0, 3, float64(x)+float64(w)/2)
	m.Set(1, 3, float64(y)+float64(h)/2)
	m.Set(2, 3, DepthRange/2)
	m.Set(0, 0, float64(w)/2)
	m.Set(1, 1, float64(h)/2)
	m.Set(2, 2, DepthRange/2)
	return m
}

// CentralProjection returns a perspective projection for a camera at
// distance c from the look-at center.
func CentralProjection(c float64) math3d.Mat4 {
	m := math3d.Identity()
	m.Set(3, 2, -1/c)
	return m
}

// Transform bundles the model-view, projection and viewport matrices of one
// camera, plus the products derived from them. Build it with NewTransform;
// the zero value is not usable.
type Transform struct {
	ModelView  math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4

	ndc      math3d.Mat4 // Projection * ModelView
	ndcInvTr math3d.Mat3 // upper 3x3 of (Projection * ModelView)^-T, for normals
	whole    math3d.Mat4 // Viewport * Projection * ModelView
	wholeInv math3d.Mat4
}

// NewTransform precomputes the derived matrices for a camera.
func NewTransform(modelView, projection, viewport math3d.Mat4) Transform {
	ndc := projection.Mul(modelView)
	whole := viewport.Mul(ndc)
	return Transform{
		ModelView:  modelView,
		Projection: projection,
		Viewport:   viewport,
		ndc:        ndc,
		ndcInvTr:   ndc.Inverse().Transpose().Upper3(),
		whole:      whole,
		wholeInv:   whole.Inverse(),
	}
}

// NDC maps an object-space point to normalized device coordinates.
func (t Transform) NDC(p math3d.Vec3) math3d.Vec3 {
	return t.ndc.MulVec3(p)
}

// NDCDir maps an object-space direction, such as a light direction, into
// NDC space. The result is not normalized.
func (t Transform) NDCDir(v math3d.Vec3) math3d.Vec3 {
	return t.ndc.MulVec3Dir(v)
}

// NDCInvTr maps an object-space normal into NDC space using the inverse
// transpose. The result is not normalized.
func (t Transform) NDCInvTr(n math3d.Vec3) math3d.Vec3 {
	return t.ndcInvTr.MulVec3(n)
}

// ViewportPoint maps an NDC point to screen coordinates.
func (t Transform) ViewportPoint(p math3d.Vec3) math3d.Vec3 {
	return t.Viewport.MulVec3(p)
}

// WholePoint maps an object-space point straight to screen coordinates.
func (t Transform) WholePoint(p math3d.Vec3) math3d.Vec3 {
	return t.whole.MulVec3(p)
}

// Whole returns Viewport * Projection * ModelView.
func (t Transform) Whole() math3d.Mat4 {
	return t.whole
}

// Inverse returns the inverse of Whole, mapping screen coordinates back to
// object space.
func (t Transform) Inverse() math3d.Mat4 {
	return t.wholeInv
}
