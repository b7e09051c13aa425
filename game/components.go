package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/plus3/fpsproto/camera"
)

// Transform is the world pose of an entity.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func NewTransform(position mgl32.Vec3) Transform {
	return Transform{Position: position, Rotation: mgl32.QuatIdent()}
}

// Player marks the single controllable entity.
type Player struct{}

// Look accumulates the player's view angles in radians.
type Look struct {
	Yaw   float32
	Pitch float32
}

type Health struct {
	Alive bool
}

// CameraRig attaches a camera to an entity at a local offset.
type CameraRig struct {
	Offset     mgl32.Vec3
	Projection camera.Projection
}

// Camera returns the world-space camera for an entity carrying the rig.
func (r CameraRig) Camera(t Transform) camera.Camera {
	rotation := t.Rotation
	if rotation.Len() == 0 {
		rotation = mgl32.QuatIdent()
	}
	return camera.Camera{
		Position:   t.Position.Add(rotation.Rotate(r.Offset)),
		Rotation:   rotation,
		Projection: r.Projection,
	}
}

// Projectile travels in a straight line. Velocity is fixed when the projectile is spawned.
type Projectile struct {
	Velocity mgl32.Vec3
}

// Lifetime counts down the seconds an entity has left.
type Lifetime struct {
	Remaining float32
}

type ShapeKind uint8

const (
	Cuboid ShapeKind = iota
	Tetrahedron
	CapsuleShape
	Torus
	Cylinder
	Cone
	ConicalFrustum
	IcoSphere
	UVSphere
)

var shapeNames = [...]string{
	Cuboid:         "cuboid",
	Tetrahedron:    "tetrahedron",
	CapsuleShape:   "capsule",
	Torus:          "torus",
	Cylinder:       "cylinder",
	Cone:           "cone",
	ConicalFrustum: "conical-frustum",
	IcoSphere:      "ico-sphere",
	UVSphere:       "uv-sphere",
}

func (k ShapeKind) String() string {
	if int(k) < len(shapeNames) {
		return shapeNames[k]
	}
	return "unknown"
}

// Shape is a static decorative primitive.
type Shape struct {
	Kind ShapeKind
}

// Ground is the static floor plane.
type Ground struct {
	Size  float32
	Color colorful.Color
}

type DirectionalLight struct {
	Direction   mgl32.Vec3
	Illuminance float32
}

type Font uint8

const (
	FontBold Font = iota
	FontMedium
)

type Anchor uint8

const (
	TopLeft Anchor = iota
	BottomRight
)

// Label positions overlay text on screen.
type Label struct {
	Font   Font
	Size   float32
	Anchor Anchor
	Margin float32
}

// FPSText is a two-section readout: a fixed prefix followed by the latest value.
type FPSText struct {
	Prefix     string
	Value      string
	ValueFont  Font
	ValueColor colorful.Color
}

// ColorText is a caption whose color cycles over time.
type ColorText struct {
	Text  string
	Color colorful.Color
}
