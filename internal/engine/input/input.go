// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies processed input events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventPointerDown
	EventPointerUp
	EventPointerMove
	EventWheel
)

// Event is a processed input event. Pointer moves carry relative
// deltas; wheel events carry notch counts in WheelY.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int

	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Button uint8

	WheelY int

	// Shift reports whether a shift key was held when the event fired
	// (the pan modifier).
	Shift bool
}

// Input polls and translates SDL events.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true when a quit was requested.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	shift := sdl.GetModState()&sdl.KMOD_SHIFT != 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type:  EventKeyDown,
					Key:   e.Keysym.Scancode,
					Shift: shift,
				})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventPointerMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
				Shift:  shift,
			})

		case *sdl.MouseButtonEvent:
			t := EventPointerDown
			if e.Type == sdl.MOUSEBUTTONUP {
				t = EventPointerUp
			}
			i.events = append(i.events, Event{
				Type:   t,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
				Shift:  shift,
			})

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:   EventWheel,
				WheelY: int(e.Y),
				Shift:  shift,
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
