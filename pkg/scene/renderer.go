package scene

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/models"
	"github.com/taigrr/tinyrender/pkg/render"
	"github.com/taigrr/tinyrender/pkg/shaders"
)

// Frame is a rendered image in any color space.
type Frame interface {
	ToImage() image.Image
	WriteTGA(w io.Writer, rle bool) error
	SavePNG(path string) error
	Draw(scr uv.Screen, area uv.Rectangle)
}

// Result is the output of one render.
type Result struct {
	Frame Frame
	Stats render.Stats

	// Shadow is the depth pass, set only by the shadow shader.
	Shadow *shaders.ShadowMap
}

// Renderer runs scenes described by a Config.
type Renderer struct {
	Config Config
	Logger *slog.Logger

	// OnFace, if set, is called after each face of the main pass.
	OnFace func()
}

// NewRenderer creates a renderer for cfg logging to slog.Default().
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{Config: cfg, Logger: slog.Default()}
}

// Camera returns the viewing camera.
func (r *Renderer) Camera() render.Camera {
	c := r.Config.Camera
	return render.Camera{Eye: c.Eye.V3(), Center: c.Center.V3(), Up: c.Up.V3(), Perspective: c.Perspective}
}

// LightCamera returns the orthographic camera of the depth pass: it sits
// one unit from the look-at center in the light direction. Its up vector is
// the camera's, or +z then +x when that is parallel to the light.
func (r *Renderer) LightCamera() render.Camera {
	c := r.Config.Camera
	dir := r.Config.Light.V3().Normalize()
	return render.Camera{Eye: c.Center.V3().Add(dir), Center: c.Center.V3(), Up: lightUp(dir, c.Up.V3())}
}

func lightUp(dir, up math3d.Vec3) math3d.Vec3 {
	for _, u := range []math3d.Vec3{up, math3d.V3(0, 0, 1), math3d.V3(1, 0, 0)} {
		if dir.Cross(u.Normalize()).Len() > 1e-6 {
			return u
		}
	}
	return up
}

// Render draws mesh. Panics raised by the pipeline, such as a texture
// coordinate outside [0,1], are returned as ErrRenderAborted.
func (r *Renderer) Render(mesh *models.Mesh) (res *Result, err error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	if r.Logger == nil {
		r.Logger = slog.Default()
	}

	defer func() {
		if p := recover(); p != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrRenderAborted, p)
		}
	}()

	switch r.Config.Color {
	case "gray":
		return renderAs[render.Gray](r, mesh)
	case "rgba":
		return renderAs[render.RGBA](r, mesh)
	default:
		return renderAs[render.RGB](r, mesh)
	}
}

func renderAs[T render.Pixel[T]](r *Renderer, mesh *models.Mesh) (*Result, error) {
	cfg := r.Config
	log := r.Logger.With("shader", cfg.Shader, "color", cfg.Color)

	maps, err := LoadMaps[T](cfg.Textures, mesh)
	if err != nil {
		return nil, err
	}

	camera := r.Camera().Transform(cfg.Width, cfg.Height)
	light := r.LightCamera()
	lightDir := cfg.Light.V3().Normalize()
	res := &Result{}

	var s render.Shader[T]
	draw := camera
	switch cfg.Shader {
	case ShaderGouraud:
		s = shaders.NewGouraud(camera, render.ColorOf[T](opaque(cfg.Base)))
	case ShaderGouraudTexture:
		s, err = shaders.NewGouraudTexture(camera, maps)
	case ShaderNormal:
		s, err = shaders.NewNormalMapped(camera, maps)
	case ShaderNormalSpecular:
		s, err = shaders.NewNormalSpecular(camera, maps, cfg.Lighting)
	case ShaderTangent:
		s, err = shaders.NewTangentNormal(camera, maps, cfg.Lighting)
	case ShaderDepth:
		draw = light.Transform(cfg.Width, cfg.Height)
		s = shaders.NewDepth[T](draw)
	case ShaderShadow:
		w, h := cfg.Shadow.Width, cfg.Shadow.Height
		if w == 0 || h == 0 {
			w, h = cfg.Width, cfg.Height
		}
		log.Debug("depth pass", "width", w, "height", h, "light", light.Eye)
		res.Shadow = shaders.RenderShadowMap(mesh, light.Transform(w, h), lightDir, w, h)
		logStats(log, "depth", res.Shadow.Stats())

		s, err = shaders.NewShadow(maps, camera, res.Shadow, shaders.ShadowOptions{
			Bias:     cfg.Shadow.Bias,
			Darkness: cfg.Shadow.Darkness,
			Lighting: cfg.Lighting,
		})
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownShader, cfg.Shader)
	}
	if err != nil {
		return nil, err
	}

	img := render.NewImage[T](cfg.Width, cfg.Height)
	if cfg.Background != ([3]uint8{}) {
		img.Clear(render.ColorOf[T](opaque(cfg.Background)))
	}
	rast := render.NewRasterizer(img)
	if r.OnFace != nil {
		rast.OnFace = func(int) { r.OnFace() }
	}

	log.Debug("main pass", "width", cfg.Width, "height", cfg.Height, "eye", cfg.Camera.Eye, "faces", mesh.TriangleCount())
	rast.DrawMesh(mesh, s, draw, lightDir)
	logStats(log, "main", rast.Stats)

	overlay := render.NewWireframe(img, draw)
	if cfg.Wireframe {
		overlay.DrawMesh(mesh, render.ColorGreen)
	}
	if cfg.Axes {
		overlay.DrawAxes(1)
	}

	res.Frame = img
	res.Stats = rast.Stats
	return res, nil
}

func logStats(log *slog.Logger, pass string, st render.Stats) {
	log.Info("pass complete",
		"pass", pass,
		"triangles", st.Triangles,
		"degenerate", st.Degenerate,
		"fragments", st.Fragments,
		"depth_rejected", st.DepthRejected,
		"discarded", st.Discarded,
	)
}

// PrepareMesh applies the mesh options of cfg: normalization first, then
// rotation about the origin.
func PrepareMesh(cfg Config, mesh *models.Mesh) {
	if cfg.Normalize {
		mesh.NormalizeToUnit()
	}
	if r := cfg.Rotation; r != (Vec{}) {
		rad := func(deg float64) float64 { return deg * math.Pi / 180 }
		mesh.Transform(math3d.RotateX(rad(r[0])).
			Mul(math3d.RotateY(rad(r[1]))).
			Mul(math3d.RotateZ(rad(r[2]))))
	}
}

func opaque(c [3]uint8) color.RGBA {
	return color.RGBA{c[0], c[1], c[2], 255}
}
