// Package scene turns a YAML scene description into a rendered image: it
// loads the mesh and texture maps, picks the shader, runs the depth and
// main passes, and encodes the result.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/shaders"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownShader is returned for a shader name not in Shaders.
	ErrUnknownShader = errors.New("unknown shader")

	// ErrUnsupportedFormat is returned for a file extension no loader or
	// encoder handles.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrRenderAborted wraps a panic raised while rendering, such as a
	// texture coordinate outside [0,1].
	ErrRenderAborted = errors.New("render aborted")

	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("invalid scene config")
)

// Shader names accepted in Config.Shader.
const (
	ShaderGouraud        = "gouraud"
	ShaderGouraudTexture = "gouraud-texture"
	ShaderNormal         = "normal"
	ShaderNormalSpecular = "normal-specular"
	ShaderTangent        = "tangent"
	ShaderShadow         = "shadow"
	ShaderDepth          = "depth"
)

// Shaders lists every shader name in order of increasing complexity.
var Shaders = []string{
	ShaderGouraud, ShaderGouraudTexture, ShaderNormal, ShaderNormalSpecular,
	ShaderTangent, ShaderShadow, ShaderDepth,
}

// Color spaces accepted in Config.Color.
var colorSpaces = []string{"gray", "rgb", "rgba"}

// Output formats, by file extension.
var outputFormats = []string{".tga", ".png", ".bmp"}

// Vec is a 3D vector written as a YAML sequence, e.g. [1, 1, 4].
type Vec [3]float64

// V3 converts v to a math3d vector.
func (v Vec) V3() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Config describes one render.
type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Model  string `yaml:"model"`

	// Normalize centers the mesh and scales it into [-1, 1].
	Normalize bool `yaml:"normalize"`
	// Rotation turns the mesh about the X, Y and Z axes, in degrees.
	Rotation Vec `yaml:"rotation"`

	Camera     CameraConfig     `yaml:"camera"`
	Light      Vec              `yaml:"light"` // Direction towards the light
	Shader     string           `yaml:"shader"`
	Color      string           `yaml:"color"`
	Base       [3]uint8         `yaml:"base_color"` // Gouraud surface color
	Background [3]uint8         `yaml:"background"`
	Textures   TextureConfig    `yaml:"textures"`
	Lighting   shaders.Lighting `yaml:"lighting"`
	Shadow     ShadowConfig     `yaml:"shadow"`
	Output     OutputConfig     `yaml:"output"`
	Axes       bool             `yaml:"axes"`
	Wireframe  bool             `yaml:"wireframe"` // Outline every triangle
}

// CameraConfig places the camera.
type CameraConfig struct {
	Eye         Vec  `yaml:"eye"`
	Center      Vec  `yaml:"center"`
	Up          Vec  `yaml:"up"`
	Perspective bool `yaml:"perspective"`
}

// TextureConfig holds texture map paths. Empty paths are not loaded.
type TextureConfig struct {
	Diffuse  string `yaml:"diffuse"`
	Normal   string `yaml:"normal"`
	Tangent  string `yaml:"tangent"`
	Specular string `yaml:"specular"`
}

// ShadowConfig tunes the shadow pass.
type ShadowConfig struct {
	Bias     float64 `yaml:"bias"`
	Darkness float64 `yaml:"darkness"`

	// Size of the shadow map; zero means the image size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// OutputConfig names the output file. The format follows the extension.
type OutputConfig struct {
	Path string `yaml:"path"`
	RLE  bool   `yaml:"rle"`
}

// Default returns the reference scene: a 1024×1024 RGB image seen from
// (1, 1, 4), lit from (1, 1, 0), written to output.tga.
func Default() Config {
	shadow := shaders.DefaultShadowOptions()
	return Config{
		Width:  1024,
		Height: 1024,
		Camera: CameraConfig{
			Eye: Vec{1, 1, 4},
			Up:  Vec{0, 1, 0},
		},
		Light:    Vec{1, 1, 0},
		Shader:   ShaderGouraud,
		Color:    "rgb",
		Base:     [3]uint8{255, 255, 255},
		Lighting: shaders.DefaultLighting(),
		Shadow:   ShadowConfig{Bias: shadow.Bias, Darkness: shadow.Darkness},
		Output:   OutputConfig{Path: "output.tga", RLE: true},
	}
}

// Load reads a YAML scene file. Fields the file omits keep their Default
// values; relative paths are resolved against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scene: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scene %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{
		&cfg.Model, &cfg.Textures.Diffuse, &cfg.Textures.Normal,
		&cfg.Textures.Tangent, &cfg.Textures.Specular,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Shadow.Width < 0 || c.Shadow.Height < 0:
		return fmt.Errorf("%w: shadow map size %dx%d", ErrInvalidConfig, c.Shadow.Width, c.Shadow.Height)
	case c.Shadow.Darkness < 0 || c.Shadow.Darkness > 1:
		return fmt.Errorf("%w: shadow darkness %v outside [0,1]", ErrInvalidConfig, c.Shadow.Darkness)
	case c.Camera.Eye == c.Camera.Center:
		return fmt.Errorf("%w: camera eye equals center", ErrInvalidConfig)
	case c.Light == (Vec{}):
		return fmt.Errorf("%w: zero light direction", ErrInvalidConfig)
	case !slices.Contains(Shaders, c.Shader):
		return fmt.Errorf("%w: %q", ErrUnknownShader, c.Shader)
	case !slices.Contains(colorSpaces, c.Color):
		return fmt.Errorf("%w: color space %q", ErrInvalidConfig, c.Color)
	}
	if ext := strings.ToLower(filepath.Ext(c.Output.Path)); !slices.Contains(outputFormats, ext) {
		return fmt.Errorf("%w: output %q", ErrUnsupportedFormat, c.Output.Path)
	}
	return nil
}
