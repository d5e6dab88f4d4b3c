package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Width != 1024 || cfg.Height != 1024 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Camera.Eye != (Vec{1, 1, 4}) || cfg.Light != (Vec{1, 1, 0}) {
		t.Errorf("camera %v, light %v", cfg.Camera.Eye, cfg.Light)
	}
	if cfg.Shadow.Bias != 43.34 || cfg.Shadow.Darkness != 0.3 {
		t.Errorf("shadow = %+v", cfg.Shadow)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	src := `
width: 64
height: 48
shader: normal
model: head.obj
camera:
  eye: [0, 0, 3]
lighting:
  ambient: 10
textures:
  diffuse: tex/diffuse.png
output:
  path: out.png
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Width != 64 || cfg.Height != 48 || cfg.Shader != ShaderNormal {
		t.Errorf("got %dx%d %q", cfg.Width, cfg.Height, cfg.Shader)
	}
	if cfg.Camera.Eye != (Vec{0, 0, 3}) || cfg.Camera.Up != (Vec{0, 1, 0}) {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Lighting.Ambient != 10 || cfg.Lighting.Diffuse != 1 || cfg.Lighting.Specular != 0.6 {
		t.Errorf("lighting = %+v", cfg.Lighting)
	}
	if want := filepath.Join(dir, "tex", "diffuse.png"); cfg.Textures.Diffuse != want {
		t.Errorf("diffuse = %q, want %q", cfg.Textures.Diffuse, want)
	}
	if want := filepath.Join(dir, "head.obj"); cfg.Model != want {
		t.Errorf("model = %q, want %q", cfg.Model, want)
	}
	if cfg.Color != "rgb" || !cfg.Output.RLE {
		t.Errorf("defaults lost: color %q, rle %v", cfg.Color, cfg.Output.RLE)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("width: [1, 2\n"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected a parse error")
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	os.WriteFile(unknown, []byte("shader: phong\n"), 0o644)
	if _, err := Load(unknown); !errors.Is(err, ErrUnknownShader) {
		t.Errorf("err = %v, want ErrUnknownShader", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidConfig},
		{"negative shadow size", func(c *Config) { c.Shadow.Height = -1 }, ErrInvalidConfig},
		{"darkness above one", func(c *Config) { c.Shadow.Darkness = 2 }, ErrInvalidConfig},
		{"eye on center", func(c *Config) { c.Camera.Eye = c.Camera.Center }, ErrInvalidConfig},
		{"zero light", func(c *Config) { c.Light = Vec{} }, ErrInvalidConfig},
		{"unknown shader", func(c *Config) { c.Shader = "phong" }, ErrUnknownShader},
		{"unknown color", func(c *Config) { c.Color = "cmyk" }, ErrInvalidConfig},
		{"unknown output", func(c *Config) { c.Output.Path = "out.gif" }, ErrUnsupportedFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}

	for _, name := range Shaders {
		cfg := Default()
		cfg.Shader = name
		if err := cfg.Validate(); err != nil {
			t.Errorf("shader %q rejected: %v", name, err)
		}
	}
}
