// Package input translates SDL2 events into session events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is the kind of a translated event.
type EventType int

const (
	EventNone EventType = iota
	// EventQuit covers the window close button, Escape and Q.
	EventQuit
	EventWindowResize
	EventScreenshot
)

// Event is a translated input event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Poller drains the SDL queue once per frame.
type Poller struct {
	events []Event
	poll   func() sdl.Event
}

// New creates a poller reading from the SDL event queue.
func New() *Poller {
	return &Poller{
		events: make([]Event, 0, 8),
		poll:   sdl.PollEvent,
	}
}

// Update drains every pending event. It returns true if a quit was requested.
func (p *Poller) Update() bool {
	p.events = p.events[:0]

	quit := false
	for event := p.poll(); event != nil; event = p.poll() {
		e := Translate(event)
		if e.Type == EventNone {
			continue
		}
		if e.Type == EventQuit {
			quit = true
		}
		p.events = append(p.events, e)
	}
	return quit
}

// Events returns the events from the last Update.
func (p *Poller) Events() []Event {
	return p.events
}

// Translate maps one SDL event to an Event. Unhandled events yield EventNone.
func Translate(event sdl.Event) Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			break
		}
		switch e.Keysym.Sym {
		case sdl.K_ESCAPE, sdl.K_q:
			return Event{Type: EventQuit}
		case sdl.K_F12:
			return Event{Type: EventScreenshot}
		}
	}

	return Event{Type: EventNone}
}
