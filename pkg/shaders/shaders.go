// Package shaders provides the shader programs the rasterizer runs: Gouraud
// shading, diffuse texturing, object- and tangent-space normal mapping with
// Phong highlights, and two-pass shadow mapping.
package shaders

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// ErrMissingMap is returned by constructors when a required texture map is
// nil. The error names the map.
var ErrMissingMap = errors.New("missing texture map")

// Lighting holds the Phong weights. Ambient is added to every channel in
// 0-255 units; Diffuse and Specular scale the surface color.
type Lighting struct {
	Ambient  float64 `yaml:"ambient"`
	Diffuse  float64 `yaml:"diffuse"`
	Specular float64 `yaml:"specular"`
}

// DefaultLighting returns ambient 5, diffuse 1.0, specular 0.6.
func DefaultLighting() Lighting {
	return Lighting{Ambient: 5, Diffuse: 1.0, Specular: 0.6}
}

// phong returns the diffuse and specular terms for the unit normal n and
// unit light direction l. The specular exponent is the raw specular map
// value; the highlight is measured against the view axis (+z in NDC).
func phong(n, l math3d.Vec3, exponent float64) (diffuse, specular float64) {
	nl := n.Dot(l)
	r := n.Scale(2 * nl).Sub(l).Normalize()
	return max(0, nl), math.Pow(max(0, r.Z), exponent)
}

// lit applies the lighting weights lt to c. The lit term is scaled by
// visibility, which is 1 outside shadows.
func lit[T render.Pixel[T]](lt Lighting, c T, visibility, diffuse, specular float64) T {
	k := visibility * (lt.Diffuse*diffuse + lt.Specular*specular)
	return c.Map(func(v float64) float64 {
		return min(255, lt.Ambient+v*k)
	})
}

func require(name string, present bool) error {
	if !present {
		return fmt.Errorf("%w: %s", ErrMissingMap, name)
	}
	return nil
}

// toNDC maps the face corners to normalized device coordinates.
func toNDC(tr render.Transform, face render.Face) [3]math3d.Vec3 {
	var out [3]math3d.Vec3
	for i, p := range face.Positions {
		out[i] = tr.NDC(p)
	}
	return out
}

// checkUVs panics if any corner's texture coordinate is outside [0,1].
func checkUVs(face render.Face) {
	for _, uv := range face.UVs {
		render.CheckUV(uv)
	}
}

// interpUV interpolates the corner UVs and clamps the result so float
// drift at triangle edges cannot leave the unit square.
func interpUV(bc math3d.Vec3, uvs [3]math3d.Vec2) math3d.Vec2 {
	return math3d.Bary2(bc, uvs[0], uvs[1], uvs[2]).Clamp01()
}
