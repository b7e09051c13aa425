package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/fpsproto/config"
	"github.com/plus3/fpsproto/input"
)

// Script fires on a fixed cadence while strafing and sweeping the view.
type Script struct {
	FireEvery int
	Window    config.WindowConfig

	frame int
}

const (
	strafeFrames = 120
	sweepPixels  = 4
)

func (s *Script) Poll(state *input.State) {
	s.frame++
	state.Viewport = mgl32.Vec2{float32(s.Window.Width), float32(s.Window.Height)}
	state.Cursor = state.Center()
	state.CursorValid = true

	// The button must be released between shots, so the fastest cadence is every other frame.
	cadence := max(s.FireEvery, 2)
	fire := s.FireEvery > 0 && s.frame%cadence == 0
	state.Set(input.Fire, fire)

	leftward := (s.frame/strafeFrames)%2 == 0
	state.Set(input.Left, leftward)
	state.Set(input.Right, !leftward)

	if leftward {
		state.MouseDelta = mgl32.Vec2{sweepPixels, 0}
	} else {
		state.MouseDelta = mgl32.Vec2{-sweepPixels, 0}
	}
}
