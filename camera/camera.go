// Package camera turns a perspective camera pose into view/projection matrices and
// unprojects viewport positions into world-space rays.
package camera

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrDegenerate is returned when the camera cannot produce a valid ray.
	ErrDegenerate = errors.New("camera: degenerate projection")
	// ErrViewport is returned for an empty viewport.
	ErrViewport = errors.New("camera: empty viewport")
)

// Projection holds perspective parameters. FovY is in radians.
type Projection struct {
	FovY float32
	Near float32
	Far  float32
}

// DefaultProjection mirrors a typical 3D camera: 45 degree vertical fov.
func DefaultProjection() Projection {
	return Projection{FovY: mgl32.DegToRad(45), Near: 0.1, Far: 1000}
}

func (p Projection) valid() bool {
	return p.FovY > 0 && p.FovY < math.Pi && p.Near > 0 && p.Far > p.Near
}

// Camera is a world-space pose plus projection. It looks down its local -Z axis.
type Camera struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Projection
}

func (c Camera) rotation() mgl32.Quat {
	if c.Rotation.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return c.Rotation
}

func (c Camera) Forward() mgl32.Vec3 {
	return c.rotation().Rotate(mgl32.Vec3{0, 0, -1})
}

func (c Camera) Up() mgl32.Vec3 {
	return c.rotation().Rotate(mgl32.Vec3{0, 1, 0})
}

// Target is a point one unit in front of the camera.
func (c Camera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Forward())
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target(), c.Up())
}

func (c Camera) Perspective(viewport mgl32.Vec2) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, viewport.X()/viewport.Y(), c.Near, c.Far)
}

// Ray is a half line with a unit direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Point returns the position at distance along the ray.
func (r Ray) Point(distance float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(distance))
}

// ViewportToWorld converts a cursor position (pixels, origin top-left) into a ray
// starting on the near plane.
func (c Camera) ViewportToWorld(viewport, cursor mgl32.Vec2) (Ray, error) {
	if viewport.X() <= 0 || viewport.Y() <= 0 {
		return Ray{}, ErrViewport
	}
	if !c.valid() {
		return Ray{}, ErrDegenerate
	}

	view := c.View()
	proj := c.Perspective(viewport)
	width, height := int(viewport.X()), int(viewport.Y())

	// Window coordinates have their origin bottom-left.
	win := mgl32.Vec3{cursor.X(), viewport.Y() - cursor.Y(), 0}
	near, err := mgl32.UnProject(win, view, proj, 0, 0, width, height)
	if err != nil {
		return Ray{}, errors.Join(ErrDegenerate, err)
	}
	win[2] = 1
	far, err := mgl32.UnProject(win, view, proj, 0, 0, width, height)
	if err != nil {
		return Ray{}, errors.Join(ErrDegenerate, err)
	}

	direction := far.Sub(near)
	length := direction.Len()
	if length == 0 || !finite(near) || !finite(direction) {
		return Ray{}, ErrDegenerate
	}
	return Ray{Origin: near, Direction: direction.Mul(1 / length)}, nil
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
