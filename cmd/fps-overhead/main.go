package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/plus3/fpsproto/audio"
	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/game"
	"github.com/plus3/fpsproto/logging"
	"github.com/plus3/fpsproto/overhead"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults are used when empty.")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error).")
	dev := flag.Bool("dev", false, "Use the development console logger.")
	flag.Parse()

	log, err := logging.New(logging.Options{Level: *logLevel, Development: *dev})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(*configPath, log); err != nil {
		log.Error("fps-overhead stopped", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(configPath string, log *zap.Logger) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	var sounds game.SoundPlayer = audio.Nop{}
	if cfg.Audio.Enabled {
		player := audio.Load(cfg.Audio, log.Named("audio"))
		if err := player.Start(); err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer player.Close()
			sounds = player
		}
	}

	return overhead.Run(cfg, log, sounds)
}
