// Package audio loads the game's sound clips and plays them through the speaker.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"go.uber.org/zap"

	"github.com/plus3/fpsproto/config"
)

const (
	sampleRate = beep.SampleRate(44100)
	// resampleQuality is the beep.Resample quality level.
	resampleQuality = 4
)

// Player keeps decoded clips in memory and mixes them onto one output.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	clips   map[string]*beep.Buffer
	volume  float64
	started bool
	log     *zap.Logger
}

// Load decodes every configured clip. Clips that cannot be read are skipped with a warning.
func Load(cfg config.AudioConfig, log *zap.Logger) *Player {
	p := &Player{
		mixer:  &beep.Mixer{},
		clips:  make(map[string]*beep.Buffer, len(cfg.Clips)),
		volume: cfg.Volume,
		log:    log,
	}
	for name, path := range cfg.Clips {
		if err := p.loadFile(name, path); err != nil {
			log.Warn("skipping sound clip", zap.String("clip", name), zap.Error(err))
			continue
		}
		log.Debug("sound clip loaded", zap.String("clip", name), zap.String("path", path))
	}
	return p
}

func (p *Player) loadFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	streamer, format, err := vorbis.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	defer streamer.Close()
	return p.AddClip(name, streamer, format)
}

// AddClip buffers a streamer at the output sample rate under name.
func (p *Player) AddClip(name string, streamer beep.Streamer, format beep.Format) error {
	source := streamer
	if format.SampleRate != sampleRate {
		source = beep.Resample(resampleQuality, format.SampleRate, sampleRate, streamer)
	}
	format.SampleRate = sampleRate

	buffer := beep.NewBuffer(format)
	buffer.Append(source)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("failed to buffer clip %q: %w", name, err)
	}

	p.mu.Lock()
	p.clips[name] = buffer
	p.mu.Unlock()
	return nil
}

// Start opens the speaker and begins playing the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Play mixes a clip in from its start. Unknown clips are ignored.
func (p *Player) Play(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	buffer, ok := p.clips[name]
	if !ok {
		p.log.Debug("unknown sound clip", zap.String("clip", name))
		return
	}

	streamer := withVolume(buffer.Streamer(0, buffer.Len()), p.volume)
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(streamer)
}

// Playing returns the number of clips currently in the mix.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

func (p *Player) Clips() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clips)
}

// Close stops every clip and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.mixer.Clear()
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer.Clear()
	p.started = false
}

func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume == 0 {
		return s
	}
	if math.IsInf(volume, -1) {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: volume}
}

// Nop discards every clip. It is used when audio is disabled or unavailable.
type Nop struct{}

func (Nop) Play(string) {}
