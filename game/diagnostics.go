package game

import (
	"github.com/plus3/ooftn/ecs"
)

// DefaultDiagnosticsHistory is the number of frames kept for the FPS average.
const DefaultDiagnosticsHistory = 20

// FrameDiagnostics measures frames per second from frame durations.
// Smoothed is an exponential moving average with factor 2/(history+1);
// Average is the mean over the kept history.
type FrameDiagnostics struct {
	samples  []float64
	next     int
	count    int
	smoothed float64
	alpha    float64
	last     float64
}

func NewFrameDiagnostics(history int) FrameDiagnostics {
	if history < 1 {
		history = 1
	}
	return FrameDiagnostics{
		samples: make([]float64, history),
		alpha:   2 / float64(history+1),
	}
}

// Add records one frame duration in seconds. Non-positive durations are ignored.
func (d *FrameDiagnostics) Add(dt float64) {
	if dt <= 0 || len(d.samples) == 0 {
		return
	}
	fps := 1 / dt
	d.last = dt

	d.samples[d.next] = fps
	d.next = (d.next + 1) % len(d.samples)
	if d.count < len(d.samples) {
		d.count++
	}

	if d.count == 1 {
		d.smoothed = fps
	} else {
		d.smoothed += (fps - d.smoothed) * d.alpha
	}
}

func (d *FrameDiagnostics) Smoothed() (float64, bool) {
	return d.smoothed, d.count > 0
}

func (d *FrameDiagnostics) Average() (float64, bool) {
	if d.count == 0 {
		return 0, false
	}
	var sum float64
	for i := 0; i < d.count; i++ {
		sum += d.samples[i]
	}
	return sum / float64(d.count), true
}

// FrameTime returns the most recent frame duration in seconds.
func (d *FrameDiagnostics) FrameTime() float64 {
	return d.last
}

type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Delta = frame.DeltaTime
	clock.Elapsed += frame.DeltaTime
	clock.Frame++
}

type DiagnosticsSystem struct {
	Diagnostics ecs.Singleton[FrameDiagnostics]
}

func (s *DiagnosticsSystem) Execute(frame *ecs.UpdateFrame) {
	s.Diagnostics.Get().Add(frame.DeltaTime)
}
