package game

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/ooftn/ecs"
)

// Angular frequencies of the red, green and blue channels of the cycling caption.
const (
	redFrequency   = 1.25
	greenFrequency = 0.75
	blueFrequency  = 0.50
)

func wave(frequency, t float64) float64 {
	return math.Sin(frequency*t)/2 + 0.5
}

// CycleColor returns the caption colour for t seconds since startup. Every channel stays in [0, 1].
func CycleColor(t float64) colorful.Color {
	return colorful.Color{
		R: wave(redFrequency, t),
		G: wave(greenFrequency, t),
		B: wave(blueFrequency, t),
	}
}

// FPSTextSystem writes the measured frame rate into every FPS readout.
// The first write shows the average over the startup history; later writes show the smoothed value.
type FPSTextSystem struct {
	Diagnostics ecs.Singleton[FrameDiagnostics]
	Texts       ecs.Query[struct{ *FPSText }]

	// Refresh is the number of seconds between writes. Zero writes every tick.
	Refresh float64

	sinceWrite float64
	written    bool
}

func (s *FPSTextSystem) Execute(frame *ecs.UpdateFrame) {
	s.sinceWrite += frame.DeltaTime
	if s.written && s.sinceWrite < s.Refresh {
		return
	}

	diagnostics := s.Diagnostics.Get()
	var value string
	if !s.written {
		average, ok := diagnostics.Average()
		if !ok {
			return
		}
		value = fmt.Sprintf("%.1f", average)
	} else {
		smoothed, ok := diagnostics.Smoothed()
		if !ok {
			return
		}
		value = fmt.Sprintf("%.2f", smoothed)
	}

	for text := range s.Texts.Iter() {
		text.FPSText.Value = value
	}
	s.written = true
	s.sinceWrite = 0
}

// ColorTextSystem recolours every cycling caption from the elapsed time.
type ColorTextSystem struct {
	Clock ecs.Singleton[Clock]
	Texts ecs.Query[struct{ *ColorText }]
}

func (s *ColorTextSystem) Execute(frame *ecs.UpdateFrame) {
	color := CycleColor(s.Clock.Get().Elapsed)
	for text := range s.Texts.Iter() {
		text.ColorText.Color = color
	}
}
