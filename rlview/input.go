package rlview

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/fpsproto/input"
)

var keyCodes = func() map[input.Key]int32 {
	codes := map[input.Key]int32{
		input.KeySpace:       rl.KeySpace,
		input.KeyEscape:      rl.KeyEscape,
		input.KeyEnter:       rl.KeyEnter,
		input.KeyTab:         rl.KeyTab,
		input.KeyLeftShift:   rl.KeyLeftShift,
		input.KeyLeftControl: rl.KeyLeftControl,
	}
	for k := input.KeyA; k <= input.KeyZ; k++ {
		codes[k] = rl.KeyA + int32(k-input.KeyA)
	}
	for k := input.KeyF1; k <= input.KeyF12; k++ {
		codes[k] = rl.KeyF1 + int32(k-input.KeyF1)
	}
	return codes
}()

var mouseButtons = map[input.Key]rl.MouseButton{
	input.MouseLeft:   rl.MouseButtonLeft,
	input.MouseRight:  rl.MouseButtonRight,
	input.MouseMiddle: rl.MouseButtonMiddle,
}

func keyDown(key input.Key) bool {
	if button, ok := mouseButtons[key]; ok {
		return rl.IsMouseButtonDown(button)
	}
	if code, ok := keyCodes[key]; ok {
		return rl.IsKeyDown(code)
	}
	return false
}

// Input mirrors raylib's keyboard and mouse into the game's input state.
type Input struct {
	Keys input.KeyMap
	// Locked is true while the cursor is captured; the crosshair then sits at the viewport centre.
	Locked bool
}

func (in *Input) Poll(state *input.State) {
	state.Viewport = mgl32.Vec2{float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())}
	state.Mirror(in.Keys, keyDown)

	delta := rl.GetMouseDelta()
	state.MouseDelta = mgl32.Vec2{delta.X, delta.Y}

	if in.Locked {
		state.Cursor = state.Center()
		state.CursorValid = rl.IsWindowFocused()
		return
	}
	mouse := rl.GetMousePosition()
	state.Cursor = mgl32.Vec2{mouse.X, mouse.Y}
	state.CursorValid = rl.IsCursorOnScreen()
}
