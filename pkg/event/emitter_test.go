package event

import "testing"

func TestEmitter_OnEmit(t *testing.T) {
	e := NewEmitter()
	count := 0
	e.On("scroll", func() { count++ })

	e.Emit("scroll")
	e.Emit("scroll")
	if count != 2 {
		t.Errorf("expected 2 invocations, got %d", count)
	}

	e.Emit("resize")
	if count != 2 {
		t.Error("unrelated event must not invoke the listener")
	}
}

func TestEmitter_Disposer(t *testing.T) {
	e := NewEmitter()
	count := 0
	off := e.On("scroll", func() { count++ })

	e.Emit("scroll")
	off()
	e.Emit("scroll")
	if count != 1 {
		t.Errorf("expected 1 invocation after disposal, got %d", count)
	}

	// Second disposal is a no-op
	off()
	e.Emit("scroll")
	if count != 1 {
		t.Errorf("expected disposer to stay idempotent, got %d", count)
	}
}

func TestEmitter_MultipleListeners(t *testing.T) {
	e := NewEmitter()
	a, b := 0, 0
	offA := e.On("resize", func() { a++ })
	e.On("resize", func() { b++ })

	e.Emit("resize")
	offA()
	e.Emit("resize")

	if a != 1 || b != 2 {
		t.Errorf("expected a=1 b=2, got a=%d b=%d", a, b)
	}
}

func TestEmitter_ListenerDetachesItself(t *testing.T) {
	e := NewEmitter()
	count := 0
	var off func()
	off = e.On("scroll", func() {
		count++
		off()
	})

	e.Emit("scroll")
	e.Emit("scroll")
	if count != 1 {
		t.Errorf("expected self-detaching listener to run once, got %d", count)
	}
}
