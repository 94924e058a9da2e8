package core

import "sync"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions, a subset of the virtual key table.
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_ENTER     KeyCode = 0x0D
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20

	KEY_1 KeyCode = 0x31
	KEY_2 KeyCode = 0x32

	KEY_C KeyCode = 0x43
	KEY_N KeyCode = 0x4E
	KEY_R KeyCode = 0x52

	KEYS_MAX_KEYS KeyCode = 0xFF
)

type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool
}

type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// Input state structure that holds current and previous states for keyboard and mouse
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
}

var inputMu sync.Mutex
var inputState *InputState = nil

func InputInitialize() error {
	inputMu.Lock()
	defer inputMu.Unlock()
	inputState = &InputState{}
	LogDebug("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputMu.Lock()
	defer inputMu.Unlock()
	inputState = nil
	return nil
}

func getInputState() *InputState {
	inputMu.Lock()
	defer inputMu.Unlock()
	return inputState
}

// InputUpdate copies the current state into the previous one. Call it last
// in the frame so edges can be detected by the next one.
func InputUpdate() {
	is := getInputState()
	if is == nil {
		return
	}
	is.KeyboardPrevious = is.KeyboardCurrent
	is.MousePrevious = is.MouseCurrent
}

func InputIsKeyDown(key KeyCode) bool {
	is := getInputState()
	if is == nil || key >= KEYS_MAX_KEYS {
		return false
	}
	return is.KeyboardCurrent.Keys[key]
}

func InputWasKeyDown(key KeyCode) bool {
	is := getInputState()
	if is == nil || key >= KEYS_MAX_KEYS {
		return false
	}
	return is.KeyboardPrevious.Keys[key]
}

func InputProcessKey(key KeyCode, pressed bool) {
	is := getInputState()
	if is == nil || key >= KEYS_MAX_KEYS {
		return
	}
	// Only handle this if the state actually changed.
	if is.KeyboardCurrent.Keys[key] == pressed {
		return
	}
	is.KeyboardCurrent.Keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	EventFire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key},
	})
}

func InputIsButtonDown(button Button) bool {
	is := getInputState()
	if is == nil || button >= BUTTON_MAX_BUTTONS {
		return false
	}
	return is.MouseCurrent.Buttons[button]
}

func InputGetMousePosition() (float64, float64) {
	is := getInputState()
	if is == nil {
		return 0, 0
	}
	return is.MouseCurrent.X, is.MouseCurrent.Y
}

func InputGetPreviousMousePosition() (float64, float64) {
	is := getInputState()
	if is == nil {
		return 0, 0
	}
	return is.MousePrevious.X, is.MousePrevious.Y
}

func InputProcessButton(button Button, pressed bool) {
	is := getInputState()
	if is == nil || button >= BUTTON_MAX_BUTTONS {
		return
	}
	if is.MouseCurrent.Buttons[button] == pressed {
		return
	}
	is.MouseCurrent.Buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	EventFire(EventContext{
		Type: code,
		Data: &MouseEvent{Button: button},
	})
}

// InputProcessMouseMove records the pointer position and fires
// EVENT_CODE_MOUSE_MOVED. Every call fires, even when the position did not
// change, so followers always track the latest report.
func InputProcessMouseMove(x float64, y float64) {
	is := getInputState()
	if is == nil {
		return
	}
	is.MouseCurrent.X = x
	is.MouseCurrent.Y = y

	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: &MouseEvent{PosX: x, PosY: y},
	})
}

func InputProcessMouseWheel(zDelta int8) {
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{Scroll: zDelta},
	})
}
