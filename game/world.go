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

// InputSource fills the input state from a device once per frame.
// Poll receives the state after the previous frame's buttons have been latched.
type InputSource interface {
	Poll(state *input.State)
}

// InputSystem runs first every frame and refreshes the input singleton.
type InputSystem struct {
	Input ecs.Singleton[input.State]

	Source InputSource
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	state.Begin()
	if s.Source != nil {
		s.Source.Poll(state)
	}
}

type Options struct {
	Logger *zap.Logger
	Audio  SoundPlayer
	Input  InputSource
	// Components registers frontend component types alongside the game's own.
	Components func(registry *ecs.ComponentRegistry)
}

// World owns the ECS storage and scheduler of one running game.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Config    *config.Config
	Player    ecs.EntityId

	log         *zap.Logger
	input       *ecs.Singleton[input.State]
	debug       *ecs.Singleton[DebugSettings]
	shutdown    *ecs.Singleton[Shutdown]
	stats       *ecs.Singleton[ProjectileStats]
	clock       *ecs.Singleton[Clock]
	diagnostics *ecs.Singleton[FrameDiagnostics]
}

func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Look](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[CameraRig](registry)
	ecs.RegisterComponent[Projectile](registry)
	ecs.RegisterComponent[Lifetime](registry)
	ecs.RegisterComponent[Shape](registry)
	ecs.RegisterComponent[Ground](registry)
	ecs.RegisterComponent[DirectionalLight](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[FPSText](registry)
	ecs.RegisterComponent[ColorText](registry)
	ecs.RegisterComponent[physics.Body](registry)
	ecs.RegisterComponent[physics.Collider](registry)
	return registry
}

// NewWorld builds the scene described by cfg and registers every system in frame order.
func NewWorld(cfg *config.Config, opts Options) *World {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	registry := NewRegistry()
	if opts.Components != nil {
		opts.Components(registry)
	}
	storage := ecs.NewStorage(registry)
	viewport := mgl32.Vec2{float32(cfg.Window.Width), float32(cfg.Window.Height)}

	w := &World{
		Storage:     storage,
		Scheduler:   ecs.NewScheduler(storage),
		Config:      cfg,
		log:         log,
		input:       ecs.NewSingleton[input.State](storage, input.NewState(viewport)),
		clock:       ecs.NewSingleton[Clock](storage, Clock{}),
		debug:       ecs.NewSingleton[DebugSettings](storage, DebugSettings{}),
		shutdown:    ecs.NewSingleton[Shutdown](storage, Shutdown{}),
		stats:       ecs.NewSingleton[ProjectileStats](storage, ProjectileStats{}),
		diagnostics: ecs.NewSingleton[FrameDiagnostics](storage, NewFrameDiagnostics(DefaultDiagnosticsHistory)),
	}
	ecs.NewSingleton[SoundQueue](storage, SoundQueue{})

	w.Player = Setup(storage, cfg)

	s := w.Scheduler
	s.Register(&InputSystem{Source: opts.Input})
	s.Register(&ClockSystem{})
	s.Register(&DiagnosticsSystem{})
	s.Register(&PlayerLookSystem{Settings: cfg.Player, Log: log.Named("look")})
	s.Register(&PlayerMoveSystem{Settings: cfg.Player, Log: log.Named("move")})
	s.Register(&JumpSystem{Settings: cfg.Player, Log: log.Named("jump")})
	s.Register(&PhysicsSystem{World: physics.World{Gravity: mgl32.Vec3{0, -cfg.Physics.Gravity, 0}}})
	s.Register(&FireSystem{Weapon: cfg.Weapon, Log: log.Named("weapon")})
	s.Register(&ProjectileSystem{Weapon: cfg.Weapon, Log: log.Named("projectile")})
	s.Register(&DebugToggleSystem{Log: log.Named("debug")})
	s.Register(&ExitSystem{Log: log.Named("exit")})
	s.Register(&FPSTextSystem{Refresh: float64(cfg.UI.FPSRefresh)})
	s.Register(&ColorTextSystem{})
	s.Register(&AudioSystem{Player: opts.Audio})

	log.Info("world ready",
		zap.Int("shapes", len(ShapeKinds)),
		zap.Int("systems", s.GetStats().SystemCount),
	)
	return w
}

// Step runs every system once for a frame of dt seconds.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

func (w *World) Input() *input.State {
	return w.input.Get()
}

func (w *World) Debug() DebugSettings {
	return *w.debug.Get()
}

func (w *World) Shutdown() Shutdown {
	return *w.shutdown.Get()
}

func (w *World) Stats() ProjectileStats {
	return *w.stats.Get()
}

func (w *World) Clock() Clock {
	return *w.clock.Get()
}

func (w *World) Diagnostics() *FrameDiagnostics {
	return w.diagnostics.Get()
}

// Camera returns the active camera, or an error when there is not exactly one.
func (w *World) Camera() (camera.Camera, error) {
	return ActiveCamera(w.Storage)
}

// RequestShutdown asks the frontend to stop, for example when its window is closed.
func (w *World) RequestShutdown(reason string) {
	shutdown := w.shutdown.Get()
	if shutdown.Requested {
		return
	}
	shutdown.Requested = true
	shutdown.Reason = reason
	w.log.Info("shutdown requested", zap.String("reason", reason))
}
