// Package rlview is the first-person raylib frontend.
package rlview

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/game"
)

// Run opens the window and drives the world until the game asks to stop or the window is closed.
func Run(cfg *config.Config, log *zap.Logger, sounds game.SoundPlayer) error {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))
	// Escape is bound as a game action; raylib must not close the window on its own.
	rl.SetExitKey(rl.KeyNull)
	rl.DisableCursor()

	in := &Input{Keys: cfg.KeyMap(), Locked: true}
	world := game.NewWorld(cfg, game.Options{
		Logger: log,
		Audio:  sounds,
		Input:  in,
	})

	renderer := NewRenderer(cfg.UI, log.Named("render"))
	defer renderer.Unload()

	lastTime := rl.GetTime()
	for {
		if rl.WindowShouldClose() {
			world.RequestShutdown("window closed")
		}
		if shutdown := world.Shutdown(); shutdown.Requested {
			log.Info("leaving main loop", zap.String("reason", shutdown.Reason))
			break
		}

		currentTime := rl.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		world.Step(deltaTime)
		renderer.Draw(world)
	}

	stats := world.Stats()
	log.Info("session finished",
		zap.Uint64("frames", world.Clock().Frame),
		zap.Int("projectiles", stats.Spawned),
		zap.Int("peak live projectiles", stats.Peak),
	)
	return nil
}
