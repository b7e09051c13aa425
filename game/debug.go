package game

import (
	"cmp"
	"slices"
	"time"

	"github.com/plus3/ooftn/ecs"
	"go.uber.org/zap"

	"github.com/plus3/fpsproto/input"
)

// DebugToggleSystem flips collider wireframes on the debug key's rising edge.
type DebugToggleSystem struct {
	Input ecs.Singleton[input.State]
	Debug ecs.Singleton[DebugSettings]

	Log *zap.Logger
}

func (s *DebugToggleSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Input.Get().JustPressed(input.Debug) {
		return
	}
	settings := s.Debug.Get()
	settings.DebugColliders = !settings.DebugColliders
	s.Log.Info("debug settings changed", zap.Bool("debug colliders", settings.DebugColliders))
}

// DebugSnapshot is the frame and scheduler state shown by debug panels.
type DebugSnapshot struct {
	Frame       uint64
	FPS         float64
	AverageFPS  float64
	FrameTime   time.Duration
	Projectiles ProjectileStats
	// Systems is ordered slowest first by average duration.
	Systems []ecs.SystemStats
}

func (w *World) Snapshot() DebugSnapshot {
	diagnostics := w.Diagnostics()
	fps, _ := diagnostics.Smoothed()
	average, _ := diagnostics.Average()

	systems := w.Scheduler.GetStats().Systems
	slices.SortStableFunc(systems, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})

	return DebugSnapshot{
		Frame:       w.Clock().Frame,
		FPS:         fps,
		AverageFPS:  average,
		FrameTime:   time.Duration(diagnostics.FrameTime() * float64(time.Second)),
		Projectiles: w.Stats(),
		Systems:     systems,
	}
}
