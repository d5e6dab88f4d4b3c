package shaders

import (
	"math"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/models"
	"github.com/taigrr/tinyrender/pkg/render"
)

// addQuad adds an axis-aligned square facing +z, spanning [-h, h] at depth z.
func addQuad(m *models.Mesh, h, z float64) {
	base := m.VertexCount()
	for _, c := range [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		m.AddVertex(models.MeshVertex{
			Position: math3d.V3(c[0]*h, c[1]*h, z),
			Normal:   math3d.V3(0, 0, 1),
			UV:       math3d.V2((c[0]+1)/2, (c[1]+1)/2),
		})
	}
	m.AddFace(base, base+1, base+2)
	m.AddFace(base, base+2, base+3)
}

// occludedScene is a floor at z=-0.5 under a smaller square at z=0.5,
// lit straight down the z axis.
func occludedScene() *models.Mesh {
	m := models.NewMesh("occluded")
	addQuad(m, 1, -0.5)
	addQuad(m, 0.3, 0.5)
	m.CalculateBounds()
	return m
}

func TestRenderShadowMap(t *testing.T) {
	light := render.NewCamera(math3d.V3(0, 0, 3)).Transform(128, 128)
	sm := RenderShadowMap(occludedScene(), light, math3d.V3(0, 0, 1), 128, 128)

	if sm.Stats().Triangles != 4 || sm.Stats().Fragments == 0 {
		t.Fatalf("stats = %+v", sm.Stats())
	}

	// Depths: occluder at NDC 0.5, floor at NDC -0.5.
	center := light.WholePoint(math3d.Zero3())
	cx, cy := int(center.X), int(center.Y)
	if z := sm.Depth().At(cx, cy); math.Abs(z-191.25) > 1e-9 {
		t.Errorf("center depth = %v, want occluder at 191.25", z)
	}
	edge := light.WholePoint(math3d.V3(0.8, 0, -0.5))
	if z := sm.Depth().At(int(edge.X), int(edge.Y)); math.Abs(z-63.75) > 1e-9 {
		t.Errorf("floor depth = %v, want 63.75", z)
	}
	if got := sm.Image().At(cx, cy); got != (render.Gray{Y: 191}) {
		t.Errorf("depth image = %v", got)
	}
	if got := sm.Image().At(0, 0); got != (render.Gray{}) {
		t.Errorf("empty pixel = %v", got)
	}
}

func TestShadowMapLit(t *testing.T) {
	light := render.NewCamera(math3d.V3(0, 0, 3)).Transform(128, 128)
	sm := RenderShadowMap(occludedScene(), light, math3d.V3(0, 0, 1), 128, 128)
	c := light.WholePoint(math3d.Zero3())

	tests := []struct {
		name string
		p    math3d.Vec3
		want bool
	}{
		{"occluder surface", math3d.V3(c.X, c.Y, 191.25), true},
		{"within bias", math3d.V3(c.X, c.Y, 150), true},
		{"behind occluder", math3d.V3(c.X, c.Y, 63.75), false},
		{"off map", math3d.V3(-5, c.Y, 0), true},
		{"past far edge", math3d.V3(c.X, 128, 0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sm.Lit(tc.p, DefaultShadowOptions().Bias); got != tc.want {
				t.Errorf("Lit(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestShadowScenario(t *testing.T) {
	const size = 128
	mesh := occludedScene()
	lightDir := math3d.V3(0, 0, 1)

	light := render.NewCamera(math3d.V3(0, 0, 3)).Transform(size, size)
	sm := RenderShadowMap(mesh, light, lightDir, size, size)

	camera := render.NewCamera(math3d.V3(1, 0, 3)).Transform(size, size)
	maps := &render.Maps[render.RGB]{
		DiffuseMap: solid(render.RGB{R: 200, G: 200, B: 200}),
		NormalMap:  solid(render.EncodeNormal(math3d.V3(0, 0, 1))),
	}
	opts := DefaultShadowOptions()
	opts.Lighting = Lighting{Diffuse: 1}

	s, err := NewShadow(maps, camera, sm, opts)
	if err != nil {
		t.Fatal(err)
	}
	img := render.NewImage[render.RGB](size, size)
	render.NewRasterizer(img).DrawMesh(mesh, s, camera, lightDir)

	tests := []struct {
		name  string
		world math3d.Vec3
		want  int
	}{
		{"floor under occluder", math3d.V3(0.15, 0, -0.5), 60},
		{"open floor", math3d.V3(0.6, 0, -0.5), 200},
		{"occluder top", math3d.V3(-0.1, 0.1, 0.5), 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := camera.WholePoint(tc.world)
			got := img.At(int(math.Floor(p.X)), int(math.Floor(p.Y)))
			if math.Abs(float64(got.R)-float64(tc.want)) > 2 {
				t.Errorf("pixel at %v = %v, want about %d", tc.world, got, tc.want)
			}
		})
	}
}

func TestNewShadowRequiresMap(t *testing.T) {
	maps := &render.Maps[render.RGB]{
		DiffuseMap: solid(render.RGB{R: 1, G: 1, B: 1}),
		NormalMap:  solid(render.RGB{R: 128, G: 128, B: 255}),
	}
	tr := render.NewCamera(math3d.V3(0, 0, 3)).Transform(8, 8)
	if _, err := NewShadow(maps, tr, nil, DefaultShadowOptions()); err == nil {
		t.Error("NewShadow accepted a nil shadow map")
	}
}
