package burrow

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type eventInstance[T any] struct {
	id    int
	event T
}

// Events is a double-buffered event queue. Events sent during one update
// pass stay readable through the next one, then are dropped. Readers track
// their own position with an EventReader, so several consumers can read the
// same events independently.
type Events[T any] struct {
	buffers [2][]eventInstance[T]
	current int
	count   int
}

// Send appends ev to the current buffer.
func (e *Events[T]) Send(ev T) {
	e.buffers[e.current] = append(e.buffers[e.current], eventInstance[T]{id: e.count, event: ev})
	e.count++
}

// Update swaps buffers, dropping events sent before the previous Update.
func (e *Events[T]) Update() {
	e.current ^= 1
	e.buffers[e.current] = e.buffers[e.current][:0]
}

// Len returns the number of events still retained.
func (e *Events[T]) Len() int {
	return len(e.buffers[0]) + len(e.buffers[1])
}

// Reader returns a reader that only sees events sent after this call.
func (e *Events[T]) Reader() EventReader[T] {
	return EventReader[T]{last: e.count}
}

// EventReader is a cursor over an Events queue. The zero value reads every
// retained event.
type EventReader[T any] struct {
	last int
}

// Read returns the events sent since the previous read, oldest first, and
// advances the cursor.
func (r *EventReader[T]) Read(e *Events[T]) []T {
	var out []T
	older := e.buffers[e.current^1]
	for _, buf := range [2][]eventInstance[T]{older, e.buffers[e.current]} {
		for _, inst := range buf {
			if inst.id >= r.last {
				out = append(out, inst.event)
			}
		}
	}
	r.last = e.count
	return out
}

// Last returns the newest unread event, discarding the older ones.
func (r *EventReader[T]) Last(e *Events[T]) (T, bool) {
	var last T
	found := false
	for _, buf := range [2][]eventInstance[T]{e.buffers[e.current^1], e.buffers[e.current]} {
		for _, inst := range buf {
			if inst.id >= r.last {
				last, found = inst.event, true
			}
		}
	}
	r.last = e.count
	return last, found
}

// Any reports whether there are unread events and marks them read.
func (r *EventReader[T]) Any(e *Events[T]) bool {
	_, ok := r.Last(e)
	return ok
}

// eventQueue is implemented by every EventQueue so the App can initialize
// and swap queues without knowing their event types.
type eventQueue interface {
	init(w donburi.World)
	update(w donburi.World)
}

// EventQueue binds an Events queue to a world resource. Register it with
// App.AddEvent so its buffers swap once per update pass.
type EventQueue[T any] struct {
	res *Resource[Events[T]]
}

// NewEventQueue declares an event queue. name is used in diagnostics.
func NewEventQueue[T any](name string) *EventQueue[T] {
	return &EventQueue[T]{res: NewResource[Events[T]](name)}
}

// Events returns the queue stored in w. It panics with a *ProtocolError if
// the queue was never registered.
func (q *EventQueue[T]) Events(w donburi.World) *Events[T] {
	return q.res.MustGet(w)
}

// Send appends ev to the queue stored in w.
func (q *EventQueue[T]) Send(w donburi.World, ev T) {
	q.Events(w).Send(ev)
}

func (q *EventQueue[T]) init(w donburi.World) {
	q.res.GetOrInsert(w, func() Events[T] { return Events[T]{} })
}

func (q *EventQueue[T]) update(w donburi.World) {
	q.Events(w).Update()
}

// Built-in event queues.
var (
	ExitEvents     = NewEventQueue[AppExit]("AppExit")
	FontPathEvents = NewEventQueue[SetFontPath]("SetFontPath")
	ResizedEvents  = NewEventQueue[Resized]("Resized")
)

// ResizedEvent mirrors every Resized event to donburi's event bus for
// subscribe-style consumers. Subscribers run during the next update pass.
var ResizedEvent = events.NewEventType[Resized]()
