package game

import (
	"github.com/plus3/ooftn/ecs"
)

// SoundPlayer plays named clips. Unknown names are ignored by implementations.
type SoundPlayer interface {
	Play(name string)
}

// AudioSystem hands every queued clip to the player and empties the queue.
type AudioSystem struct {
	Sounds ecs.Singleton[SoundQueue]

	Player SoundPlayer
}

func (s *AudioSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Sounds.Get()
	if s.Player != nil {
		for _, clip := range queue.Pending {
			s.Player.Play(clip)
		}
	}
	queue.Pending = queue.Pending[:0]
}
