package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data: *MouseEvent (Button)
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data: *MouseEvent (Button)
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data: *MouseEvent (PosX, PosY), window client coordinates.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel. Data: *MouseEvent (Scroll)
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data: *SystemEvent
	EVENT_CODE_RESIZED EventCode = 0x08

	// The configuration file changed on disk and was parsed successfully.
	// Data: the decoded configuration.
	EVENT_CODE_CONFIG_RELOADED EventCode = 0x10

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   float64
	PosY   float64
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type FnOnEvent func(context EventContext)

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	mu         sync.RWMutex
	registered map[EventCode][]registeredEvent
}

var eventState *eventSystemState = nil
var eventStateMu sync.Mutex

func EventSystemInitialize() bool {
	eventStateMu.Lock()
	defer eventStateMu.Unlock()
	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{
		registered: make(map[EventCode][]registeredEvent),
	}
	return true
}

func EventSystemShutdown() error {
	eventStateMu.Lock()
	defer eventStateMu.Unlock()
	if eventState == nil {
		return ErrNotInitialized
	}
	eventState = nil
	return nil
}

func getEventState() *eventSystemState {
	eventStateMu.Lock()
	defer eventStateMu.Unlock()
	return eventState
}

// EventRegister subscribes listener to code. A listener can only be
// registered once per code; duplicates return false.
func EventRegister(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	es := getEventState()
	if es == nil || onEvent == nil {
		return false
	}
	es.mu.Lock()
	defer es.mu.Unlock()
	for _, e := range es.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	es.registered[code] = append(es.registered[code], registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// EventUnregister removes listener from code. Returns false when nothing
// matched.
func EventUnregister(code EventCode, listener interface{}) bool {
	es := getEventState()
	if es == nil {
		return false
	}
	es.mu.Lock()
	defer es.mu.Unlock()
	events := es.registered[code]
	for i, e := range events {
		if e.listener == listener {
			es.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// EventFire dispatches synchronously to every listener of context.Type in
// registration order. Listeners may unregister themselves while handling.
func EventFire(context EventContext) bool {
	es := getEventState()
	if es == nil {
		return false
	}
	es.mu.RLock()
	events := make([]registeredEvent, len(es.registered[context.Type]))
	copy(events, es.registered[context.Type])
	es.mu.RUnlock()

	for _, e := range events {
		e.callback(context)
	}
	return len(events) > 0
}

// EventListenerCount is mostly useful to assert teardown.
func EventListenerCount(code EventCode) int {
	es := getEventState()
	if es == nil {
		return 0
	}
	es.mu.RLock()
	defer es.mu.RUnlock()
	return len(es.registered[code])
}
