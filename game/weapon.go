package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/ooftn/ecs"
	"go.uber.org/zap"

	"github.com/plus3/fpsproto/camera"
	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/input"
	"github.com/plus3/fpsproto/physics"
)

type cameraView struct {
	*Transform
	*CameraRig
}

// ActiveCamera resolves the single camera rig in the world.
func ActiveCamera(storage *ecs.Storage) (camera.Camera, error) {
	view := ecs.NewView[cameraView](storage)
	rig, err := single("camera", view.Iter())
	if err != nil {
		return camera.Camera{}, err
	}
	return rig.CameraRig.Camera(*rig.Transform), nil
}

// ShotVelocity aims from origin at the point distance along ray and scales to speed.
// ok is false when the point coincides with the origin.
func ShotVelocity(origin mgl32.Vec3, ray camera.Ray, distance, speed float32) (mgl32.Vec3, bool) {
	toward := ray.Point(distance).Sub(origin)
	length := toward.Len()
	if length == 0 {
		return mgl32.Vec3{}, false
	}
	return toward.Mul(speed / length), true
}

// FireSystem spawns a projectile from the camera toward the cursor on the fire button's rising edge.
// A cursor outside the window or a camera that cannot produce a ray skips the shot silently.
type FireSystem struct {
	Input   ecs.Singleton[input.State]
	Sounds  ecs.Singleton[SoundQueue]
	Stats   ecs.Singleton[ProjectileStats]
	Cameras ecs.Query[cameraView]

	Weapon config.WeaponConfig
	Log    *zap.Logger

	check precondition
}

func (s *FireSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	if !state.JustPressed(input.Fire) {
		return
	}

	rig, err := single("camera", s.Cameras.Iter())
	if !s.check.ok(s.Log, err) {
		return
	}
	cam := rig.CameraRig.Camera(*rig.Transform)

	cursor, ok := state.Aim()
	if !ok {
		return
	}
	ray, err := cam.ViewportToWorld(state.Viewport, cursor)
	if err != nil {
		s.Log.Debug("shot skipped", zap.Error(err))
		return
	}
	velocity, ok := ShotVelocity(cam.Position, ray, s.Weapon.RayDistance, s.Weapon.ProjectileSpeed)
	if !ok {
		return
	}

	frame.Commands.Spawn(
		NewTransform(cam.Position),
		Projectile{Velocity: velocity},
		Lifetime{Remaining: s.Weapon.Lifetime},
		physics.Sphere(s.Weapon.ProjectileRadius),
	)
	s.Stats.Get().Spawned++
	s.Sounds.Get().Push(s.Weapon.Sound)

	s.Log.Debug("projectile fired",
		zap.Float32s("origin", cam.Position[:]),
		zap.Float32s("velocity", velocity[:]),
	)
}
