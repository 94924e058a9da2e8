// Package cursor draws a marker that tracks the pointer on an overlay layer
// above the scene.
package cursor

import (
	"sync"

	"github.com/google/uuid"
)

const DefaultClass = "custom-cursor"

type Point struct {
	X float64
	Y float64
}

// Element is a positioned overlay item. Position is in logical window
// pixels from the top-left corner of the client area.
type Element struct {
	ID       uuid.UUID
	Class    string
	Position Point
	// Hidden until the element is positioned for the first time.
	Visible bool
}

// Layer is the screen-space document overlay elements live in. Styles are
// looked up by element class.
type Layer struct {
	mu       sync.RWMutex
	elements []*Element
	styles   map[string]Style
}

func NewLayer() *Layer {
	return &Layer{
		styles: map[string]Style{DefaultClass: DefaultStyle()},
	}
}

// CreateElement returns a detached element with a fresh id.
func CreateElement(class string) *Element {
	return &Element{
		ID:    uuid.New(),
		Class: class,
	}
}

func (l *Layer) Attach(el *Element) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.elements {
		if e.ID == el.ID {
			return
		}
	}
	l.elements = append(l.elements, el)
}

// Detach removes the element with id. Returns false when it was not attached.
func (l *Layer) Detach(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.elements {
		if e.ID == id {
			l.elements = append(l.elements[:i:i], l.elements[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Layer) Contains(id uuid.UUID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.elements {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Move positions an attached element and makes it visible.
func (l *Layer) Move(id uuid.UUID, p Point) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.elements {
		if e.ID == id {
			e.Position = p
			e.Visible = true
			return true
		}
	}
	return false
}

// Elements returns a snapshot in attach order.
func (l *Layer) Elements() []Element {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Element, len(l.elements))
	for i, e := range l.elements {
		out[i] = *e
	}
	return out
}

func (l *Layer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.elements)
}

func (l *Layer) SetStyle(class string, s Style) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.styles[class] = s
}

// SetStyles replaces the stylesheet. The default class keeps its built-in
// style unless styles overrides it.
func (l *Layer) SetStyles(styles map[string]Style) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.styles = map[string]Style{DefaultClass: DefaultStyle()}
	for class, s := range styles {
		l.styles[class] = s
	}
}

func (l *Layer) Style(class string) (Style, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.styles[class]
	return s, ok
}
