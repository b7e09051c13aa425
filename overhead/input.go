package overhead

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooftn/ecs"
	"github.com/plus3/ooftn/ecs/debugui"

	"github.com/plus3/fpsproto/input"
)

var keyCodes = func() map[input.Key]ebiten.Key {
	codes := map[input.Key]ebiten.Key{
		input.KeySpace:       ebiten.KeySpace,
		input.KeyEscape:      ebiten.KeyEscape,
		input.KeyEnter:       ebiten.KeyEnter,
		input.KeyTab:         ebiten.KeyTab,
		input.KeyLeftShift:   ebiten.KeyShiftLeft,
		input.KeyLeftControl: ebiten.KeyControlLeft,
	}
	for k := input.KeyA; k <= input.KeyZ; k++ {
		codes[k] = ebiten.KeyA + ebiten.Key(k-input.KeyA)
	}
	for k := input.KeyF1; k <= input.KeyF12; k++ {
		codes[k] = ebiten.KeyF1 + ebiten.Key(k-input.KeyF1)
	}
	return codes
}()

var mouseButtons = map[input.Key]ebiten.MouseButton{
	input.MouseLeft:   ebiten.MouseButtonLeft,
	input.MouseRight:  ebiten.MouseButtonRight,
	input.MouseMiddle: ebiten.MouseButtonMiddle,
}

func keyDown(key input.Key) bool {
	if button, ok := mouseButtons[key]; ok {
		return ebiten.IsMouseButtonPressed(button)
	}
	if code, ok := keyCodes[key]; ok {
		return ebiten.IsKeyPressed(code)
	}
	return false
}

// Input mirrors ebiten's keyboard and captured mouse into the game's input state.
type Input struct {
	Keys     input.KeyMap
	Viewport mgl32.Vec2
	// UI reports whether the debug panels are taking the mouse.
	UI *ecs.Singleton[debugui.ImguiInputState]

	lastX, lastY int
	seen         bool
}

func (in *Input) Poll(state *input.State) {
	state.Viewport = in.Viewport
	state.Mirror(in.Keys, keyDown)
	if in.UI != nil && in.UI.Get().WantCaptureMouse {
		state.Set(input.Fire, false)
	}

	x, y := ebiten.CursorPosition()
	if in.seen {
		state.MouseDelta = mgl32.Vec2{float32(x - in.lastX), float32(y - in.lastY)}
	}
	in.lastX, in.lastY, in.seen = x, y, true

	// The first-person camera is aimed through the centre while the cursor is captured.
	state.Cursor = state.Center()
	state.CursorValid = ebiten.IsFocused() && ebiten.CursorMode() == ebiten.CursorModeCaptured
}
