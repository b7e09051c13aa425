package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/ooftn/ecs"

	"github.com/plus3/fpsproto/camera"
	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/physics"
)

// ShapeKinds lists the decorative primitives in the order they are laid out along X.
var ShapeKinds = []ShapeKind{
	Cuboid,
	Tetrahedron,
	CapsuleShape,
	Torus,
	Cylinder,
	Cone,
	ConicalFrustum,
	IcoSphere,
	UVSphere,
}

// Row layout of the decorative shapes.
const (
	shapeRowWidth = 14
	shapeRowY     = 2
	shapeRowZ     = 2.5
	shapeTilt     = -math.Pi / 4
	groundSize    = 20
)

var (
	groundColor = colorful.Color{R: 0.3, G: 0.5, B: 0.3}
	valueColor  = colorful.Color{R: 1, G: 0.843, B: 0}
)

// ShapeCollider approximates each primitive with a unit-sized volume.
func ShapeCollider(kind ShapeKind) physics.Collider {
	switch kind {
	case Cuboid:
		return physics.Box(mgl32.Vec3{0.5, 0.5, 0.5})
	case CapsuleShape:
		return physics.Capsule(0.5, 0.5)
	case Torus:
		return physics.Box(mgl32.Vec3{1, 0.25, 1})
	case Cylinder, Cone, ConicalFrustum:
		return physics.Box(mgl32.Vec3{0.5, 0.5, 0.5})
	}
	return physics.Sphere(0.5)
}

// ShapePosition returns where the i-th of count shapes sits in the row.
func ShapePosition(i, count int) mgl32.Vec3 {
	x := float32(-shapeRowWidth / 2)
	if count > 1 {
		x += float32(i) / float32(count-1) * shapeRowWidth
	}
	return mgl32.Vec3{x, shapeRowY, shapeRowZ}
}

// Setup spawns the static scene, the player with its camera and the overlay text. It returns the player.
func Setup(storage *ecs.Storage, cfg *config.Config) ecs.EntityId {
	tilt := mgl32.QuatRotate(shapeTilt, mgl32.Vec3{1, 0, 0})
	for i, kind := range ShapeKinds {
		storage.Spawn(
			Shape{Kind: kind},
			Transform{Position: ShapePosition(i, len(ShapeKinds)), Rotation: tilt},
			ShapeCollider(kind),
		)
	}

	storage.Spawn(
		Ground{Size: groundSize, Color: groundColor},
		NewTransform(mgl32.Vec3{}),
		physics.Plane(groundSize/2, groundSize/2),
	)

	storage.Spawn(DirectionalLight{
		Direction:   mgl32.Vec3{-1, -1, -1}.Normalize(),
		Illuminance: 10000,
	})

	projection := camera.DefaultProjection()
	projection.FovY = mgl32.DegToRad(cfg.Window.FieldOfView)
	spawn := cfg.Player.Spawn
	player := storage.Spawn(
		Player{},
		NewTransform(mgl32.Vec3{spawn[0], spawn[1], spawn[2]}),
		Look{},
		Health{Alive: true},
		physics.Body{Kind: physics.Dynamic, Mass: cfg.Player.Mass},
		physics.Capsule(cfg.Player.Radius, cfg.Player.HalfHeight),
		CameraRig{Offset: mgl32.Vec3{0, cfg.Player.EyeHeight, 0}, Projection: projection},
	)

	storage.Spawn(
		FPSText{Prefix: "FPS: ", ValueFont: FontMedium, ValueColor: valueColor},
		Label{Font: FontBold, Size: cfg.UI.FPSFontSize, Anchor: TopLeft, Margin: 5},
	)
	storage.Spawn(
		ColorText{Text: cfg.UI.ColorText, Color: CycleColor(0)},
		Label{Font: FontBold, Size: cfg.UI.ColorFontSize, Anchor: BottomRight, Margin: 5},
	)

	return player
}
