package flappy

import "sort"

// EventKind identifies a deferred popup effect.
type EventKind int

const (
	EventReveal        EventKind = iota // reveal the reward or no-reward outcome
	EventCountdownGo                    // switch the countdown from "ready" to "go"
	EventCountdownDone                  // leave the countdown and resume play
)

func (k EventKind) String() string {
	switch k {
	case EventReveal:
		return "reveal"
	case EventCountdownGo:
		return "countdown-go"
	case EventCountdownDone:
		return "countdown-done"
	default:
		return "unknown"
	}
}

// Event is a deferred effect. It only applies while the popup token it was
// scheduled under is still current.
type Event struct {
	Due   float64 // session clock, ms
	Token uint64
	Kind  EventKind
}

// EventQueue holds deferred events ordered by due time; events with equal
// due times keep insertion order.
type EventQueue struct {
	events []Event
}

// Push schedules ev.
func (q *EventQueue) Push(ev Event) {
	i := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Due > ev.Due
	})
	q.events = append(q.events, Event{})
	copy(q.events[i+1:], q.events[i:])
	q.events[i] = ev
}

// ConsumeDue removes and returns every event due at or before now.
func (q *EventQueue) ConsumeDue(now float64) []Event {
	n := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Due > now
	})
	if n == 0 {
		return nil
	}
	due := append([]Event(nil), q.events[:n]...)
	q.events = append(q.events[:0], q.events[n:]...)
	return due
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Clear drops every pending event.
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
}
