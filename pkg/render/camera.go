package render

import (
	"github.com/taigrr/tinyrender/pkg/math3d"
)

// Camera describes a viewpoint by position, target and up vector.
// The light used for shadow mapping is a Camera too.
type Camera struct {
	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	// Perspective enables the central projection; otherwise the projection
	// is orthographic.
	Perspective bool
}

// NewCamera creates an orthographic camera at eye looking at the origin
// with +Y up.
func NewCamera(eye math3d.Vec3) Camera {
	return Camera{
		Eye:    eye,
		Center: math3d.Zero3(),
		Up:     math3d.V3(0, 1, 0),
	}
}

// Distance returns the distance from the eye to the look-at center.
func (c Camera) Distance() float64 {
	return c.Eye.Sub(c.Center).Len()
}

// Transform builds the camera transform for a width×height image. The
// viewport covers the central three quarters of the image.
func (c Camera) Transform(width, height int) Transform {
	proj := math3d.Identity()
	if c.Perspective {
		proj = CentralProjection(c.Distance())
	}
	return NewTransform(
		LookAt(c.Eye, c.Center, c.Up),
		proj,
		Viewport(width/8, height/8, width*3/4, height*3/4),
	)
}
