package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Shape uint8

const (
	SphereShape Shape = iota
	BoxShape
	CapsuleShape
	PlaneShape
)

// Collider describes a primitive volume in the local space of its entity.
type Collider struct {
	Shape Shape
	// Radius is used by spheres and capsules.
	Radius float32
	// HalfHeight is half the length of a capsule's inner segment along local Y.
	HalfHeight float32
	// HalfExtents is used by boxes; planes use X and Z.
	HalfExtents mgl32.Vec3
}

func Sphere(radius float32) Collider {
	return Collider{Shape: SphereShape, Radius: radius}
}

func Box(halfExtents mgl32.Vec3) Collider {
	return Collider{Shape: BoxShape, HalfExtents: halfExtents}
}

func Capsule(radius, halfHeight float32) Collider {
	return Collider{Shape: CapsuleShape, Radius: radius, HalfHeight: halfHeight}
}

// Plane is a horizontal rectangle in local XZ.
func Plane(halfX, halfZ float32) Collider {
	return Collider{Shape: PlaneShape, HalfExtents: mgl32.Vec3{halfX, 0, halfZ}}
}

// Pose places a collider in the world.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Bottom returns the lowest world Y of an upright collider centred at position.
func (c Collider) Bottom(position mgl32.Vec3) float32 {
	switch c.Shape {
	case SphereShape:
		return position.Y() - c.Radius
	case CapsuleShape:
		return position.Y() - c.HalfHeight - c.Radius
	case BoxShape:
		return position.Y() - c.HalfExtents.Y()
	}
	return position.Y()
}

// OverlapsSphere tests a world-space sphere against the collider at pose.
func (c Collider) OverlapsSphere(pose Pose, center mgl32.Vec3, radius float32) bool {
	rotation := pose.Rotation
	if rotation.Len() == 0 {
		rotation = mgl32.QuatIdent()
	}
	local := rotation.Inverse().Rotate(center.Sub(pose.Position))

	switch c.Shape {
	case SphereShape:
		return local.Len() <= c.Radius+radius
	case BoxShape:
		closest := mgl32.Vec3{
			mgl32.Clamp(local.X(), -c.HalfExtents.X(), c.HalfExtents.X()),
			mgl32.Clamp(local.Y(), -c.HalfExtents.Y(), c.HalfExtents.Y()),
			mgl32.Clamp(local.Z(), -c.HalfExtents.Z(), c.HalfExtents.Z()),
		}
		return local.Sub(closest).Len() <= radius
	case CapsuleShape:
		axis := mgl32.Vec3{0, mgl32.Clamp(local.Y(), -c.HalfHeight, c.HalfHeight), 0}
		return local.Sub(axis).Len() <= c.Radius+radius
	case PlaneShape:
		if local.Y() > radius {
			return false
		}
		return abs(local.X()) <= c.HalfExtents.X() && abs(local.Z()) <= c.HalfExtents.Z()
	}
	return false
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
