package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/taigrr/tinyrender/pkg/models"
	"github.com/taigrr/tinyrender/pkg/render"
	"github.com/taigrr/tinyrender/pkg/tga"
)

// LoadMesh loads an OBJ, GLB or glTF file, picked by extension.
func LoadMesh(path string) (*models.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return models.LoadOBJ(path)
	case ".glb", ".gltf":
		return models.LoadGLB(path)
	default:
		return nil, fmt.Errorf("%w: model %q", ErrUnsupportedFormat, path)
	}
}

// LoadImage decodes a TGA, PNG, JPEG or BMP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	// TGA has no magic number, so it cannot go through image.Decode.
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := tga.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// imageConfig reads the dimensions of an image file without decoding it.
func imageConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	var cfg image.Config
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		cfg, err = tga.DecodeConfig(f)
	} else {
		cfg, _, err = image.DecodeConfig(f)
	}
	if err != nil {
		return image.Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

func loadMap[T render.Pixel[T]](path string) (*render.Image[T], error) {
	if path == "" {
		return nil, nil
	}
	cfg, err := imageConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: empty image %s", ErrInvalidConfig, path)
	}
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return render.ImageFromGo[T](img), nil
}

// LoadMaps loads the configured texture maps. Without a diffuse path, the
// mesh's first material texture is used, if it has one.
func LoadMaps[T render.Pixel[T]](tc TextureConfig, mesh *models.Mesh) (*render.Maps[T], error) {
	var maps render.Maps[T]
	var err error

	if maps.DiffuseMap, err = loadMap[T](tc.Diffuse); err != nil {
		return nil, fmt.Errorf("diffuse map: %w", err)
	}
	if maps.DiffuseMap == nil && mesh != nil {
		if base := mesh.BaseMap(); base != nil {
			maps.DiffuseMap = render.ImageFromGo[T](base)
		}
	}
	if maps.NormalMap, err = loadMap[render.RGB](tc.Normal); err != nil {
		return nil, fmt.Errorf("normal map: %w", err)
	}
	if maps.TangentMap, err = loadMap[render.RGB](tc.Tangent); err != nil {
		return nil, fmt.Errorf("tangent map: %w", err)
	}
	if maps.SpecularMap, err = loadMap[render.Gray](tc.Specular); err != nil {
		return nil, fmt.Errorf("specular map: %w", err)
	}
	return &maps, nil
}
