// Package event provides the event plumbing for visibility tracking: a
// small named-event emitter whose listeners detach via returned disposers,
// and throttle/debounce wrappers that bound how often a callback runs in
// response to high-frequency triggers like scroll and resize.
package event

import "sync"

type listener struct {
	fn func()
}

// Emitter dispatches named events to registered listeners.
// The zero value is ready to use.
type Emitter struct {
	mu        sync.Mutex
	listeners map[string][]*listener
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// On registers fn for the named event and returns a disposer that detaches
// it. Calling the disposer more than once is harmless.
func (e *Emitter) On(event string, fn func()) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listeners == nil {
		e.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	e.listeners[event] = append(e.listeners[event], l)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		ls := e.listeners[event]
		for i, cand := range ls {
			if cand == l {
				e.listeners[event] = append(ls[:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Emit invokes every listener registered for the named event. Listeners
// run outside the emitter lock, so they may detach themselves or register
// new listeners.
func (e *Emitter) Emit(event string) {
	e.mu.Lock()
	ls := make([]*listener, len(e.listeners[event]))
	copy(ls, e.listeners[event])
	e.mu.Unlock()

	for _, l := range ls {
		l.fn()
	}
}
