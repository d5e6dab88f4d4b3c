// tinyrender - software triangle rasterizer
// Renders an OBJ or GLB model to a TGA, PNG or BMP image with one of several
// shaders, including two-pass shadow mapping.
//
// Scenes are described in YAML (see -config); flags override the file.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/taigrr/tinyrender/pkg/scene"
)

var (
	configPath = flag.String("config", "", "Scene file (YAML)")
	shader     = flag.String("shader", "", "Shader: "+strings.Join(scene.Shaders, ", "))
	outPath    = flag.String("o", "", "Output image (.tga, .png or .bmp)")
	width      = flag.Int("width", 0, "Image width")
	height     = flag.Int("height", 0, "Image height")
	colorSpace = flag.String("color", "", "Color space: gray, rgb or rgba")
	rle        = flag.Bool("rle", true, "Run-length encode TGA output")
	axes       = flag.Bool("axes", false, "Draw the world axes over the image")
	wireframe  = flag.Bool("wireframe", false, "Outline every triangle")
	normalize  = flag.Bool("normalize", false, "Center and scale the model into [-1, 1]")
	preview    = flag.Bool("preview", false, "Show the result in the terminal")
	verbose    = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tinyrender - software triangle rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tinyrender [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nShaders:\n")
		fmt.Fprintf(os.Stderr, "  gouraud          - Per-vertex diffuse, solid color\n")
		fmt.Fprintf(os.Stderr, "  gouraud-texture  - Per-vertex diffuse over the diffuse map\n")
		fmt.Fprintf(os.Stderr, "  normal           - Object-space normal map\n")
		fmt.Fprintf(os.Stderr, "  normal-specular  - Normal map with Phong specular\n")
		fmt.Fprintf(os.Stderr, "  tangent          - Tangent-space normal map\n")
		fmt.Fprintf(os.Stderr, "  shadow           - Shadow mapping with Phong lighting\n")
		fmt.Fprintf(os.Stderr, "  depth            - Depth as seen from the light\n")
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the scene file, if any, and applies the flags that were
// set on the command line.
func loadConfig() (scene.Config, error) {
	cfg := scene.Default()
	if *configPath != "" {
		var err error
		if cfg, err = scene.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	if flag.NArg() > 0 {
		cfg.Model = flag.Arg(0)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shader":
			cfg.Shader = *shader
		case "o":
			cfg.Output.Path = *outPath
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "color":
			cfg.Color = *colorSpace
		case "rle":
			cfg.Output.RLE = *rle
		case "axes":
			cfg.Axes = *axes
		case "wireframe":
			cfg.Wireframe = *wireframe
		case "normalize":
			cfg.Normalize = *normalize
		}
	})

	if cfg.Model == "" {
		return cfg, fmt.Errorf("no model given")
	}
	return cfg, cfg.Validate()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		flag.Usage()
		return err
	}

	mesh, err := scene.LoadMesh(cfg.Model)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	scene.PrepareMesh(cfg, mesh)
	slog.Info("loaded model",
		"model", filepath.Base(cfg.Model),
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
	)

	r := scene.NewRenderer(cfg)
	if term.IsTerminal(int(os.Stderr.Fd())) && !*verbose {
		pb := progressbar.Default(int64(mesh.TriangleCount()), cfg.Shader)
		defer pb.Close()
		r.OnFace = func() { pb.Add(1) }
	}

	res, err := r.Render(mesh)
	if err != nil {
		return err
	}

	if err := scene.Save(res.Frame, cfg.Output.Path, cfg.Output.RLE); err != nil {
		return err
	}
	slog.Info("wrote image", "path", cfg.Output.Path, "width", cfg.Width, "height", cfg.Height)

	if res.Shadow != nil && *verbose {
		depthPath := strings.TrimSuffix(cfg.Output.Path, filepath.Ext(cfg.Output.Path)) + "-depth" + filepath.Ext(cfg.Output.Path)
		if err := scene.Save(res.Shadow.Image(), depthPath, cfg.Output.RLE); err != nil {
			return err
		}
		slog.Debug("wrote depth pass", "path", depthPath)
	}

	if *preview {
		return show(res.Frame)
	}
	return nil
}

// show draws frame full-screen until a key is pressed.
func show(frame scene.Frame) error {
	t := uv.DefaultTerminal()

	w, h, err := t.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := t.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	t.EnterAltScreen()
	t.HideCursor()
	t.Resize(w, h)

	defer func() {
		t.ExitAltScreen()
		t.ShowCursor()
		t.Shutdown(context.Background())
	}()

	frame.Draw(t, uv.Rectangle(image.Rect(0, 0, w, h)))
	if err := t.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	for ev := range t.Events() {
		if _, ok := ev.(uv.KeyPressEvent); ok {
			return nil
		}
	}
	return nil
}
