package event

import (
	"sync"
	"time"
)

// Throttle wraps fn so that invocations are spaced at least interval apart.
// The first call fires immediately; calls landing inside the window are
// coalesced into at most one trailing invocation at the window's end.
// Returns the wrapped invocable and a disposer that cancels any pending
// trailing invocation.
//
// fn runs while the limiter's lock is held, so invocations never overlap.
// fn must not call the wrapped invocable reentrantly.
func Throttle(fn func(), interval time.Duration) (func(), func()) {
	var (
		mu      sync.Mutex
		last    time.Time
		timer   *time.Timer
		stopped bool
	)

	invoke := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped || timer != nil {
			return // disposed, or trailing call already scheduled
		}
		elapsed := time.Since(last)
		if elapsed >= interval {
			last = time.Now()
			fn()
			return
		}
		timer = time.AfterFunc(interval-elapsed, func() {
			mu.Lock()
			defer mu.Unlock()
			if stopped {
				return
			}
			timer = nil
			last = time.Now()
			fn()
		})
	}

	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}

	return invoke, stop
}

// Debounce wraps fn so that it fires only after interval has elapsed with
// no further calls; every call resets the pending timer. Returns the
// wrapped invocable and a disposer that cancels the pending call.
//
// As with Throttle, fn runs under the limiter's lock and invocations never
// overlap.
func Debounce(fn func(), interval time.Duration) (func(), func()) {
	var (
		mu      sync.Mutex
		timer   *time.Timer
		stopped bool
	)

	invoke := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(interval, func() {
			mu.Lock()
			defer mu.Unlock()
			if stopped {
				return
			}
			timer = nil
			fn()
		})
	}

	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}

	return invoke, stop
}
