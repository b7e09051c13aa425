package input

import (
	"fmt"
	"strings"
)

// Action is a backend-neutral game action that keys are bound to.
type Action int32

const (
	Forward Action = iota + 1
	Back
	Left
	Right
	Jump
	Exit
	Debug
	Fire
)

// Actions lists every action in declaration order.
var Actions = []Action{Forward, Back, Left, Right, Jump, Exit, Debug, Fire}

var actionNames = map[Action]string{
	Forward: "forward",
	Back:    "back",
	Left:    "left",
	Right:   "right",
	Jump:    "jump",
	Exit:    "exit",
	Debug:   "debug",
	Fire:    "fire",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int32(a))
}

// ParseAction resolves a config binding name such as "jump".
func ParseAction(name string) (Action, error) {
	for action, n := range actionNames {
		if strings.EqualFold(n, name) {
			return action, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Key is a backend-neutral physical key or mouse button.
type Key int32

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeySpace
	KeyEscape
	KeyEnter
	KeyTab
	KeyLeftShift
	KeyLeftControl
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	MouseLeft
	MouseRight
	MouseMiddle
)

var keyNames = func() map[Key]string {
	names := map[Key]string{
		KeySpace:       "Space",
		KeyEscape:      "Escape",
		KeyEnter:       "Enter",
		KeyTab:         "Tab",
		KeyLeftShift:   "LeftShift",
		KeyLeftControl: "LeftControl",
		MouseLeft:      "MouseLeft",
		MouseRight:     "MouseRight",
		MouseMiddle:    "MouseMiddle",
	}
	for k := KeyA; k <= KeyZ; k++ {
		names[k] = string(rune('A' + int(k-KeyA)))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		names[k] = fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	return names
}()

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}

// IsMouse reports whether the key is a mouse button.
func (k Key) IsMouse() bool {
	return k >= MouseLeft && k <= MouseMiddle
}

// ParseKey resolves a key name case-insensitively ("w", "F1", "mouseleft").
func ParseKey(name string) (Key, error) {
	for key, n := range keyNames {
		if strings.EqualFold(n, name) {
			return key, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// KeyMap binds each action to one key.
type KeyMap map[Action]Key
