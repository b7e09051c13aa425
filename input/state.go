// Package input keeps per-frame action state independent of the windowing backend.
// Frontends mirror device levels into a State singleton; game systems only see actions.
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
)

// State holds the action levels of the current and previous frame plus mouse data.
// The zero value is usable.
type State struct {
	// MouseDelta is the mouse motion in pixels since the previous frame.
	MouseDelta mgl32.Vec2
	// Cursor is the aim position in viewport pixels, origin top-left.
	Cursor mgl32.Vec2
	// CursorValid is false when the cursor is outside the window.
	CursorValid bool
	// Viewport is the size of the rendered view in pixels.
	Viewport mgl32.Vec2

	current  *intmap.Map[Action, bool]
	previous *intmap.Map[Action, bool]
}

// NewState returns a State sized for the fixed action set.
func NewState(viewport mgl32.Vec2) State {
	return State{
		Viewport: viewport,
		current:  intmap.New[Action, bool](len(Actions)),
		previous: intmap.New[Action, bool](len(Actions)),
	}
}

func (s *State) ensure() {
	if s.current == nil {
		s.current = intmap.New[Action, bool](len(Actions))
	}
	if s.previous == nil {
		s.previous = intmap.New[Action, bool](len(Actions))
	}
}

// Begin starts a new frame: current levels become the previous ones and mouse motion resets.
func (s *State) Begin() {
	s.ensure()
	for _, action := range Actions {
		down, _ := s.current.Get(action)
		s.previous.Put(action, down)
	}
	s.MouseDelta = mgl32.Vec2{}
}

// Set records the level of an action for the current frame.
func (s *State) Set(action Action, down bool) {
	s.ensure()
	s.current.Put(action, down)
}

// Mirror sets every bound action from a backend level query.
func (s *State) Mirror(keys KeyMap, down func(Key) bool) {
	for action, key := range keys {
		s.Set(action, down(key))
	}
}

// Held reports the level of an action this frame.
func (s *State) Held(action Action) bool {
	if s.current == nil {
		return false
	}
	down, _ := s.current.Get(action)
	return down
}

// JustPressed reports a rising edge: down now, up on the previous frame.
func (s *State) JustPressed(action Action) bool {
	if !s.Held(action) {
		return false
	}
	if s.previous == nil {
		return true
	}
	was, _ := s.previous.Get(action)
	return !was
}

// JustReleased reports a falling edge.
func (s *State) JustReleased(action Action) bool {
	if s.Held(action) || s.previous == nil {
		return false
	}
	was, _ := s.previous.Get(action)
	return was
}

// Aim returns the cursor position and whether it is usable.
func (s *State) Aim() (mgl32.Vec2, bool) {
	return s.Cursor, s.CursorValid
}

// Center returns the middle of the viewport, used as the crosshair while the cursor is locked.
func (s *State) Center() mgl32.Vec2 {
	return s.Viewport.Mul(0.5)
}
