package render

import (
	"fmt"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// Maps holds the texture maps a shader may sample. Every map is optional;
// shaders that need one check for it at construction. All maps keep row 0
// at the top, so texture coordinate v=1 samples the first row.
type Maps[T Pixel[T]] struct {
	DiffuseMap  *Image[T]
	NormalMap   *Image[RGB]  // Object-space normals
	TangentMap  *Image[RGB]  // Tangent-space normals
	SpecularMap *Image[Gray] // Specular exponents
}

// PixelCoords maps a texture coordinate in [0,1]² to the nearest texel of a
// width×height map. It panics if uv is outside the unit square.
func PixelCoords(width, height int, uv math3d.Vec2) (x, y int) {
	CheckUV(uv)
	x = min(width-1, int(math.Floor(uv.X*float64(width))))
	y = min(height-1, int(math.Floor(float64(height)-uv.Y*float64(height))))
	return x, y
}

// CheckUV panics if uv is outside the unit square. Shaders call it from
// their vertex stage so bad meshes fail before any pixel is written.
func CheckUV(uv math3d.Vec2) {
	if !uv.InUnit() {
		panic(fmt.Sprintf("render: texture coordinate %v outside [0,1]", uv))
	}
}

func sample[C Pixel[C]](img *Image[C], uv math3d.Vec2) C {
	x, y := PixelCoords(img.Width, img.Height, uv)
	return img.Pix[y*img.Width+x]
}

// decodeNormal maps each 8-bit channel from [0, 255] to [-1, 1].
func decodeNormal(c RGB) math3d.Vec3 {
	return math3d.V3(
		2*float64(c.R)/255-1,
		2*float64(c.G)/255-1,
		2*float64(c.B)/255-1,
	)
}

// EncodeNormal is the inverse of the normal map decoding, rounding to the
// nearest byte. It is used to build normal maps procedurally.
func EncodeNormal(n math3d.Vec3) RGB {
	enc := func(v float64) uint8 { return channel(math.Round((v + 1) / 2 * 255)) }
	return RGB{enc(n.X), enc(n.Y), enc(n.Z)}
}

// Diffuse returns the diffuse color at uv.
func (m *Maps[T]) Diffuse(uv math3d.Vec2) T {
	return sample(m.DiffuseMap, uv)
}

// Normal returns the object-space normal at uv. It is not normalized.
func (m *Maps[T]) Normal(uv math3d.Vec2) math3d.Vec3 {
	return decodeNormal(sample(m.NormalMap, uv))
}

// Tangent returns the tangent-space normal at uv. It is not normalized.
func (m *Maps[T]) Tangent(uv math3d.Vec2) math3d.Vec3 {
	return decodeNormal(sample(m.TangentMap, uv))
}

// Specular returns the specular exponent at uv, the raw byte value.
func (m *Maps[T]) Specular(uv math3d.Vec2) float64 {
	return float64(sample(m.SpecularMap, uv).Y)
}
