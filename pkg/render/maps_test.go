package render

import (
	"math"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

func TestPixelCoords(t *testing.T) {
	tests := []struct {
		name  string
		uv    math3d.Vec2
		wantX int
		wantY int
	}{
		{"origin is bottom-left", math3d.V2(0, 0), 0, 3},
		{"one is top-right", math3d.V2(1, 1), 3, 0},
		{"center", math3d.V2(0.5, 0.5), 2, 2},
		{"near edges", math3d.V2(0.99, 0.01), 3, 3},
		{"first texel", math3d.V2(0.2, 0.8), 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := PixelCoords(4, 4, tc.uv)
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("PixelCoords(%v) = (%d, %d), want (%d, %d)", tc.uv, x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestPixelCoordsPanicsOutsideUnitSquare(t *testing.T) {
	for _, uv := range []math3d.Vec2{math3d.V2(1.01, 0.5), math3d.V2(0.5, -0.1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("PixelCoords(%v) did not panic", uv)
				}
			}()
			PixelCoords(8, 8, uv)
		}()
	}
}

func TestNormalEncoding(t *testing.T) {
	if got := EncodeNormal(math3d.V3(0, 0, 1)); got != (RGB{128, 128, 255}) {
		t.Errorf("EncodeNormal(+z) = %v", got)
	}
	if got := EncodeNormal(math3d.V3(-1, 1, 0)); got != (RGB{0, 255, 128}) {
		t.Errorf("EncodeNormal = %v", got)
	}

	for _, n := range []math3d.Vec3{
		math3d.V3(0, 0, 1),
		math3d.V3(0.6, -0.8, 0),
		math3d.V3(1, 1, 1).Normalize(),
	} {
		back := decodeNormal(EncodeNormal(n))
		if !near3(back, n, 1.5/255) {
			t.Errorf("decode(encode(%v)) = %v", n, back)
		}
	}
}

func TestMapsSampling(t *testing.T) {
	diffuse := NewImage[RGB](2, 2)
	diffuse.Set(0, 0, RGB{255, 0, 0}) // top-left
	diffuse.Set(1, 1, RGB{0, 0, 255}) // bottom-right

	spec := NewImage[Gray](1, 1)
	spec.Set(0, 0, Gray{37})

	normals := NewImage[RGB](1, 1)
	normals.Set(0, 0, EncodeNormal(math3d.V3(1, 0, 0)))

	maps := Maps[RGB]{DiffuseMap: diffuse, SpecularMap: spec, NormalMap: normals, TangentMap: normals}

	if got := maps.Diffuse(math3d.V2(0.25, 0.75)); got != (RGB{255, 0, 0}) {
		t.Errorf("top-left sample = %v", got)
	}
	if got := maps.Diffuse(math3d.V2(0.75, 0.25)); got != (RGB{0, 0, 255}) {
		t.Errorf("bottom-right sample = %v", got)
	}
	if got := maps.Specular(math3d.V2(0.5, 0.5)); got != 37 {
		t.Errorf("Specular = %v, want raw byte", got)
	}
	if got := maps.Normal(math3d.V2(0, 0)); math.Abs(got.X-1) > 1e-12 || math.Abs(got.Y) > 0.01 {
		t.Errorf("Normal = %v", got)
	}
	if got := maps.Tangent(math3d.V2(1, 1)); math.Abs(got.X-1) > 1e-12 {
		t.Errorf("Tangent = %v", got)
	}
}
