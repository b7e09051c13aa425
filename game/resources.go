package game

import (
	"errors"
	"fmt"
	"iter"
)

// Clock tracks frame time. It is advanced first every frame.
type Clock struct {
	Elapsed float64
	Delta   float64
	Frame   uint64
}

// DebugSettings is read by the renderers once per frame.
type DebugSettings struct {
	DebugColliders bool
}

// Shutdown is set when the game asks its frontend to stop.
type Shutdown struct {
	Requested bool
	Reason    string
}

// SoundQueue collects clip names to play at the end of the frame.
type SoundQueue struct {
	Pending []string
}

func (q *SoundQueue) Push(clip string) {
	if clip != "" {
		q.Pending = append(q.Pending, clip)
	}
}

// ProjectileStats counts projectile traffic.
type ProjectileStats struct {
	Spawned   int
	Expired   int
	OutOfArea int
	Hit       int
	Live      int
	Peak      int
}

func (s ProjectileStats) Despawned() int {
	return s.Expired + s.OutOfArea + s.Hit
}

var (
	ErrNoEntity        = errors.New("no matching entity")
	ErrAmbiguousEntity = errors.New("more than one matching entity")
)

// single returns the only element of seq, or an error naming kind when there are none or several.
func single[T any](kind string, seq iter.Seq[T]) (T, error) {
	var (
		found T
		count int
	)
	for item := range seq {
		count++
		if count > 1 {
			var zero T
			return zero, fmt.Errorf("%s: %w", kind, ErrAmbiguousEntity)
		}
		found = item
	}
	if count == 0 {
		return found, fmt.Errorf("%s: %w", kind, ErrNoEntity)
	}
	return found, nil
}
