package cursor

import (
	"sync"

	"github.com/google/uuid"
	"github.com/spaghettifunk/bubble/engine/core"
)

// Follower keeps one marker element glued to the pointer. It listens for
// EVENT_CODE_MOUSE_MOVED from the moment it is created until Dispose.
type Follower struct {
	layer   *Layer
	element *Element

	mu       sync.Mutex
	last     Point
	seen     bool
	disposed bool
}

// NewFollower creates the marker element, attaches it to layer and starts
// listening for pointer moves.
func NewFollower(layer *Layer, class string) *Follower {
	if class == "" {
		class = DefaultClass
	}
	f := &Follower{
		layer:   layer,
		element: CreateElement(class),
	}
	layer.Attach(f.element)
	if !core.EventRegister(core.EVENT_CODE_MOUSE_MOVED, f, f.onMouseMoved) {
		core.LogWarn("cursor follower %s could not subscribe to pointer moves", f.element.ID)
	}
	core.LogDebug("cursor follower %s mounted with class %q", f.element.ID, class)
	return f
}

func (f *Follower) onMouseMoved(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	f.OnPointerMove(Point{X: me.PosX, Y: me.PosY})
}

// OnPointerMove places the marker at p. No-op once disposed.
func (f *Follower) OnPointerMove(p Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disposed {
		return
	}
	f.last = p
	f.seen = true
	f.layer.Move(f.element.ID, p)
}

// Position returns the last pointer position and whether one was observed.
func (f *Follower) Position() (Point, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.seen
}

func (f *Follower) ID() uuid.UUID {
	return f.element.ID
}

func (f *Follower) Class() string {
	return f.element.Class
}

// Dispose unsubscribes and removes the marker. Safe to call more than once.
func (f *Follower) Dispose() {
	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		return
	}
	f.disposed = true
	f.seen = false
	f.mu.Unlock()

	core.EventUnregister(core.EVENT_CODE_MOUSE_MOVED, f)
	f.layer.Detach(f.element.ID)
	core.LogDebug("cursor follower %s disposed", f.element.ID)
}
