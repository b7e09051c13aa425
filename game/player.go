package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/ooftn/ecs"
	"go.uber.org/zap"

	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/input"
	"github.com/plus3/fpsproto/physics"
)

// maxPitch keeps the view just short of straight up or down.
const maxPitch = math.Pi/2 - 0.01

var (
	worldUp = mgl32.Vec3{0, 1, 0}
	localX  = mgl32.Vec3{1, 0, 0}
)

// LookRotation composes yaw about world up with pitch about the resulting local right axis.
// Rebuilding from the two angles each frame keeps roll at zero.
func LookRotation(look Look) mgl32.Quat {
	yaw := mgl32.QuatRotate(look.Yaw, worldUp)
	pitch := mgl32.QuatRotate(look.Pitch, localX)
	return yaw.Mul(pitch).Normalize()
}

// PlanarAxes returns the unit forward and right vectors on the ground plane for a yaw angle.
func PlanarAxes(yaw float32) (forward, right mgl32.Vec3) {
	rotation := mgl32.QuatRotate(yaw, worldUp)
	return rotation.Rotate(mgl32.Vec3{0, 0, -1}), rotation.Rotate(localX)
}

type playerView struct {
	*Player
	*Transform
	*Look
}

// PlayerLookSystem turns mouse motion into yaw and pitch.
type PlayerLookSystem struct {
	Input   ecs.Singleton[input.State]
	Players ecs.Query[playerView]

	Settings config.PlayerConfig
	Log      *zap.Logger

	check precondition
}

func (s *PlayerLookSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	player, err := single("player", s.Players.Iter())
	if !s.check.ok(s.Log, err) {
		return
	}

	delta := state.MouseDelta
	player.Look.Yaw += -delta.X() * s.Settings.YawSensitivity
	player.Look.Pitch += -delta.Y() * s.Settings.PitchSensitivity
	player.Look.Pitch = mgl32.Clamp(player.Look.Pitch, -maxPitch, maxPitch)
	player.Transform.Rotation = LookRotation(*player.Look)
}

// PlayerMoveSystem steps the player along the ground plane for every held movement key.
type PlayerMoveSystem struct {
	Input   ecs.Singleton[input.State]
	Players ecs.Query[playerView]

	Settings config.PlayerConfig
	Log      *zap.Logger

	check precondition
}

func (s *PlayerMoveSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	player, err := single("player", s.Players.Iter())
	if !s.check.ok(s.Log, err) {
		return
	}

	forward, right := PlanarAxes(player.Look.Yaw)
	var step mgl32.Vec3
	if state.Held(input.Forward) {
		step = step.Add(forward)
	}
	if state.Held(input.Back) {
		step = step.Sub(forward)
	}
	if state.Held(input.Left) {
		step = step.Sub(right)
	}
	if state.Held(input.Right) {
		step = step.Add(right)
	}
	player.Transform.Position = player.Transform.Position.Add(step.Mul(s.Settings.MoveStep))
}

// JumpSystem applies an upward impulse on the jump key's rising edge while the player is alive.
type JumpSystem struct {
	Input   ecs.Singleton[input.State]
	Players ecs.Query[struct {
		*Player
		*Health
		*physics.Body
	}]

	Settings config.PlayerConfig
	Log      *zap.Logger

	check precondition
}

func (s *JumpSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	if !state.JustPressed(input.Jump) {
		return
	}
	player, err := single("player", s.Players.Iter())
	if !s.check.ok(s.Log, err) {
		return
	}
	if !player.Health.Alive {
		return
	}
	if s.Settings.RequireGrounded && !player.Body.Grounded {
		return
	}
	player.Body.ApplyImpulse(mgl32.Vec3{0, s.Settings.JumpImpulse, 0})
}

// PhysicsSystem integrates every entity with a body.
type PhysicsSystem struct {
	Bodies ecs.Query[struct {
		*Transform
		*physics.Body
		*physics.Collider
	}]

	World physics.World
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for body := range s.Bodies.Iter() {
		body.Transform.Position = s.World.Step(body.Body, body.Transform.Position, *body.Collider, dt)
	}
}

// ExitSystem requests a graceful shutdown on the exit key's rising edge.
type ExitSystem struct {
	Input    ecs.Singleton[input.State]
	Shutdown ecs.Singleton[Shutdown]

	Log *zap.Logger
}

func (s *ExitSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Input.Get().JustPressed(input.Exit) {
		return
	}
	shutdown := s.Shutdown.Get()
	if shutdown.Requested {
		return
	}
	shutdown.Requested = true
	shutdown.Reason = "exit key"
	s.Log.Info("shutdown requested", zap.String("reason", shutdown.Reason))
}
