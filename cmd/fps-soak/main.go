package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/game"
	"github.com/plus3/fpsproto/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults are used when empty.")
	duration := flag.Duration("duration", 10*time.Second, "The wall-clock duration the soak should run for.")
	step := flag.Duration("step", time.Second/60, "The simulated frame time passed to every update.")
	fireEvery := flag.Int("fire-every", 6, "Fire once every this many frames.")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error).")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	session := uuid.NewString()
	log, err := logging.New(logging.Options{Level: *logLevel, Session: session})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal("failed to load config", zap.Error(err))
		}
	}

	log.Info("starting soak", zap.Duration("duration", *duration), zap.Int("fire every", *fireEvery))

	world := newWorld(cfg, *fireEvery, log.Named("game"))

	report := &Report{
		Session:        session,
		Duration:       *duration,
		Step:           *step,
		FireEvery:      *fireEvery,
		Lifetime:       time.Duration(float64(cfg.Weapon.Lifetime) * float64(time.Second)),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	dt := step.Seconds()
	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			world.Step(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++

			if world.Shutdown().Requested {
				break Loop
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.SimulatedTime = time.Duration(world.Clock().Elapsed * float64(time.Second))
	report.Projectiles = world.Stats()
	report.Systems = world.Scheduler.GetStats().Systems
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("soak finished",
		zap.Int64("updates", totalUpdates),
		zap.Int("spawned", report.Projectiles.Spawned),
		zap.Int("peak live", report.Projectiles.Peak),
	)

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
}

// newWorld builds a world driven by Script. The soak runs without a sound device, so the queue is drained silently.
func newWorld(cfg *config.Config, fireEvery int, log *zap.Logger) *game.World {
	return game.NewWorld(cfg, game.Options{
		Logger: log,
		Input:  &Script{FireEvery: fireEvery, Window: cfg.Window},
	})
}
