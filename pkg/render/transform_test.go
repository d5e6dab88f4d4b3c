package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/tinyrender/pkg/math3d"
)

func near3(a, b math3d.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestLookAtRotationMatchesMathgl(t *testing.T) {
	tests := []struct {
		name            string
		eye, center, up math3d.Vec3
	}{
		{"front", math3d.V3(0, 0, 3), math3d.Zero3(), math3d.V3(0, 1, 0)},
		{"oblique", math3d.V3(1, 1, 4), math3d.Zero3(), math3d.V3(0, 1, 0)},
		{"offset center", math3d.V3(2, -1, 3), math3d.V3(0.5, 0.25, -1), math3d.V3(0, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := LookAt(tc.eye, tc.center, tc.up)
			want := mgl64.LookAtV(
				mgl64.Vec3{tc.eye.X, tc.eye.Y, tc.eye.Z},
				mgl64.Vec3{tc.center.X, tc.center.Y, tc.center.Z},
				mgl64.Vec3{tc.up.X, tc.up.Y, tc.up.Z},
			)
			for row := range 3 {
				for col := range 3 {
					if math.Abs(got.Get(row, col)-want.At(row, col)) > 1e-12 {
						t.Fatalf("rotation[%d][%d] = %v, mathgl says %v", row, col, got.Get(row, col), want.At(row, col))
					}
				}
			}

			// The look-at center lands on the origin, the eye on +z.
			if c := got.MulVec3(tc.center); !near3(c, math3d.Zero3(), 1e-12) {
				t.Errorf("center maps to %v, want origin", c)
			}
			dist := tc.eye.Sub(tc.center).Len()
			if e := got.MulVec3(tc.eye); !near3(e, math3d.V3(0, 0, dist), 1e-12) {
				t.Errorf("eye maps to %v, want (0,0,%v)", e, dist)
			}
		})
	}
}

func TestViewport(t *testing.T) {
	vp := Viewport(10, 20, 100, 50)

	tests := []struct {
		in, want math3d.Vec3
	}{
		{math3d.V3(-1, -1, -1), math3d.V3(10, 20, 0)},
		{math3d.V3(1, 1, 1), math3d.V3(110, 70, DepthRange)},
		{math3d.V3(0, 0, 0), math3d.V3(60, 45, DepthRange/2)},
	}
	for _, tc := range tests {
		if got := vp.MulVec3(tc.in); !near3(got, tc.want, 1e-12) {
			t.Errorf("Viewport(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCentralProjection(t *testing.T) {
	p := CentralProjection(4)

	// Points at the center depth are unchanged, nearer points grow.
	if got := p.MulVec3(math3d.V3(1, 1, 0)); !near3(got, math3d.V3(1, 1, 0), 1e-12) {
		t.Errorf("z=0 projects to %v", got)
	}
	if got := p.MulVec3(math3d.V3(1, 1, 2)); !near3(got, math3d.V3(2, 2, 4), 1e-12) {
		t.Errorf("z=2 projects to %v, want (2,2,4)", got)
	}
}

func TestWholeInverseRoundTrip(t *testing.T) {
	cams := []Camera{
		NewCamera(math3d.V3(1, 1, 3)),
		{Eye: math3d.V3(1, 1, 4), Center: math3d.V3(0, 0.2, 0), Up: math3d.V3(0, 1, 0), Perspective: true},
	}
	points := []math3d.Vec3{
		math3d.V3(0, 0, 0), math3d.V3(0.5, -0.25, 0.75), math3d.V3(-1, 1, -1),
	}

	for _, cam := range cams {
		tr := cam.Transform(800, 600)
		for _, p := range points {
			screen := tr.WholePoint(p)
			back := tr.Inverse().MulVec3(screen)
			if !near3(back, p, 1e-9) {
				t.Errorf("perspective=%v: %v -> %v -> %v", cam.Perspective, p, screen, back)
			}
			if via := tr.ViewportPoint(tr.NDC(p)); !near3(via, screen, 1e-9) {
				t.Errorf("Viewport(NDC(p)) = %v, Whole(p) = %v", via, screen)
			}
		}
	}
}

func TestNDCInvTrKeepsNormalsPerpendicular(t *testing.T) {
	// Non-uniform scale squashes directions; the inverse transpose must
	// keep transformed normals perpendicular to transformed surfaces.
	mv := LookAt(math3d.V3(1, 2, 3), math3d.Zero3(), math3d.V3(0, 1, 0)).
		Mul(math3d.Scale(math3d.V3(3, 0.5, 1)))
	tr := NewTransform(mv, math3d.Identity(), Viewport(0, 0, 100, 100))

	normal := math3d.V3(1, 1, 0).Normalize()
	tangent := math3d.V3(1, -1, 0.5)
	if d := normal.Dot(tangent); math.Abs(d) > 1e-12 {
		t.Fatalf("bad fixture: n·t = %v", d)
	}

	n := tr.NDCInvTr(normal)
	tg := tr.NDCDir(tangent)
	if d := n.Dot(tg); math.Abs(d) > 1e-9 {
		t.Errorf("inverse-transposed normal · transformed tangent = %v, want 0", d)
	}
	if d := tr.NDCDir(normal).Dot(tg); math.Abs(d) < 1e-3 {
		t.Errorf("plain transform kept perpendicularity (%v); fixture does not exercise the inverse transpose", d)
	}
}

func TestNDCInvTrIgnoresTranslationAndW(t *testing.T) {
	mv := LookAt(math3d.V3(2, 1, 3), math3d.V3(0.5, 0, 0), math3d.V3(0, 1, 0))
	proj := CentralProjection(4)
	tr := NewTransform(mv, proj, Viewport(0, 0, 100, 100))

	full := proj.Mul(mv).Inverse().Transpose()
	for _, n := range []math3d.Vec3{
		math3d.V3(1, 0, 0),
		math3d.V3(0, 1, 0),
		math3d.V3(0.3, -0.5, 0.8),
	} {
		if got, want := tr.NDCInvTr(n), full.MulVec3Dir(n); !near3(got, want, 1e-12) {
			t.Errorf("NDCInvTr(%v) = %v, want %v", n, got, want)
		}
	}
}

func TestCameraViewportCoversCenter(t *testing.T) {
	tr := NewCamera(math3d.V3(0, 0, 3)).Transform(800, 800)
	if got := tr.WholePoint(math3d.Zero3()); !near3(got, math3d.V3(400, 400, DepthRange/2), 1e-9) {
		t.Errorf("origin maps to %v, want image center", got)
	}
	if got := tr.WholePoint(math3d.V3(1, 1, 0)); !near3(got, math3d.V3(700, 700, DepthRange/2), 1e-9) {
		t.Errorf("(1,1,0) maps to %v, want (700,700)", got)
	}
}
