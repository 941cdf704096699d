// Package lazy defers image loading until elements scroll into view. A
// Controller watches a set of tracked elements; whenever the rate-limited
// scroll/resize handling (or an explicit registration) runs, every element
// whose bounding box intersects the threshold-expanded visible area starts
// its one and only fetch, and the asynchronous outcome is reconciled back
// into the element's lifecycle state and presentation classes.
package lazy

import (
	"sync"

	"unveil/pkg/css"
	"unveil/pkg/event"
	"unveil/pkg/geom"
	"unveil/pkg/html"
	"unveil/pkg/resource"
)

// Controller drives the lazy-loading lifecycle for a document's elements.
//
// All state is guarded by one mutex; loader completion callbacks re-enter
// through it, so a completion never interleaves with a visibility pass.
type Controller struct {
	mu   sync.Mutex
	opts Options
	doc  *html.Document
	reg  *registry

	stopLimiter func()
	disposers   []func()
	destroyed   bool
}

// New creates a Controller over the document, immediately registers the
// elements the descriptor resolves to, and runs a first visibility pass.
//
// The descriptor may be a selector string (resolved against doc), a
// *html.Node, a []*html.Node, or nil for none.
func New(doc *html.Document, descriptor any, opts ...Option) *Controller {
	c := &Controller{
		doc:  doc,
		reg:  newRegistry(),
		opts: defaultOptions(),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}

	c.attachListeners()
	c.AddOrUpdate(descriptor)
	return c
}

// attachListeners wires scroll/resize through the configured rate limiter.
func (c *Controller) attachListeners() {
	if !c.opts.Reactive || c.opts.Events == nil {
		return
	}

	var invoke func()
	if c.opts.Debounce {
		invoke, c.stopLimiter = event.Debounce(c.UpdateState, c.opts.Interval)
	} else {
		invoke, c.stopLimiter = event.Throttle(c.UpdateState, c.opts.Interval)
	}
	c.disposers = append(c.disposers,
		c.opts.Events.On("scroll", invoke),
		c.opts.Events.On("resize", invoke),
	)
}

// AddOrUpdate registers the elements the descriptor resolves to. Elements
// already tracked keep their entry and info record; their initialization
// side effects (placeholder, inited class, hook) are re-run only while no
// load is in flight. Registration always triggers an immediate visibility
// pass, bypassing the rate limiter.
func (c *Controller) AddOrUpdate(descriptor any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}

	for _, el := range c.resolve(descriptor) {
		if info, ok := c.reg.get(el); ok {
			if !info.Loading {
				c.applyInited(el, info)
			}
			continue
		}
		info := c.buildInfo(el)
		c.reg.add(el, info)
		c.applyInited(el, info)
	}

	c.updateStateLocked()
}

// Remove stops tracking the elements the descriptor resolves to and clears
// their info records. In-flight fetches are not cancelled; their late
// callbacks find no info record and do nothing.
func (c *Controller) Remove(descriptor any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, el := range c.resolve(descriptor) {
		c.reg.remove(el)
	}
}

// Clean stops tracking every element.
func (c *Controller) Clean() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.clear()
}

// Destroy detaches the scroll/resize listeners, clears the registry, and
// resets the options to their defaults. The controller must not be used
// afterwards.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	stop := c.stopLimiter
	c.stopLimiter = nil
	disposers := c.disposers
	c.disposers = nil
	c.reg.clear()
	c.opts = defaultOptions()
	c.mu.Unlock()

	// Listener teardown happens outside the controller lock: a
	// rate-limited pass may be blocked on it right now.
	if stop != nil {
		stop()
	}
	for _, off := range disposers {
		off()
	}
}

// SetOptions applies the given options over the current ones. Repeated
// partial calls are cumulative; callers that need a reset to defaults must
// pass a full option set. Listener wiring (Reactive, Interval, Debounce)
// is fixed at construction and not re-derived here.
func (c *Controller) SetOptions(opts ...Option) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, opt := range opts {
		opt(&c.opts)
	}
}

// UpdateState runs a visibility pass: every tracked element that is not
// already loading and whose bounding box intersects the active area starts
// its load.
func (c *Controller) UpdateState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateStateLocked()
}

func (c *Controller) updateStateLocked() {
	if c.reg.empty() {
		return
	}

	area := c.activeAreaLocked()
	for _, el := range c.reg.snapshot() {
		info, ok := c.reg.get(el)
		if !ok || info.Loading {
			continue
		}
		rect, ok := c.boundsOf(el)
		if !ok {
			continue
		}
		if geom.Intersects(area, rect) {
			c.startLoad(el, info)
		}
	}
}

// activeAreaLocked computes the threshold-expanded visible area.
func (c *Controller) activeAreaLocked() geom.Rect {
	var visible geom.Rect
	switch {
	case c.opts.VisibleAreaGetter != nil:
		visible = c.opts.VisibleAreaGetter()
	case c.opts.Viewport != nil:
		w, h := c.opts.Viewport()
		visible = geom.ViewportRect(w, h)
	}
	return visible.Expand(c.opts.Threshold)
}

func (c *Controller) boundsOf(el *html.Node) (geom.Rect, bool) {
	if c.opts.BoundsOf == nil {
		return geom.Rect{}, false
	}
	return c.opts.BoundsOf(el)
}

// startLoad transitions the element into Loading and fires the fetch.
// The Loading flag gates re-entry: a later pass skips the element, so at
// most one fetch is ever initiated per element.
func (c *Controller) startLoad(el *html.Node, info *ElementInfo) {
	info.Loading = true
	info.State = StateLoading
	el.AddClass(ClassLoading)
	c.fireHook(StateLoading, info.URL, el)

	if c.opts.Loader == nil {
		return
	}
	url := info.URL
	c.opts.Loader.Load(url, resource.Callbacks{
		OnStart: func(u string, h *resource.Handle) {
			c.onLoadStart(el, u, h)
		},
		OnLoaded: func() {
			c.onLoaded(el)
		},
		OnError: func(error) {
			c.onLoadError(el)
		},
	})
}

// onLoadStart drives eager showing: poll the handle until the natural
// width is known, then apply the URL ahead of the full decode. This races
// harmlessly with onLoaded, which applies the same URL again.
func (c *Controller) onLoadStart(el *html.Node, url string, h *resource.Handle) {
	c.mu.Lock()
	eager := c.opts.EagerShowing
	c.mu.Unlock()
	if !eager {
		return
	}

	p := newPoller(eagerPollInterval)
	p.run(func() bool {
		if h.Failed() {
			return true
		}
		w, _ := h.NaturalSize()
		if w == 0 && !h.Done() {
			return false
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if info, ok := c.reg.get(el); ok {
			applyEagerURL(el, info.kind, url)
		}
		return true
	})
}

// onLoaded reconciles a successful fetch: final URL, Loaded state, and
// deregistration. A late callback after removal is a silent no-op.
func (c *Controller) onLoaded(el *html.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, ok := c.reg.get(el)
	if !ok {
		return
	}
	applyFinalURL(el, info.kind, info.URL)
	info.Loading = false
	info.State = StateLoaded
	el.RemoveClass(ClassLoading)
	el.AddClass(ClassLoaded)
	c.reg.remove(el)
	c.fireHook(StateLoaded, info.URL, el)
}

// onLoadError reconciles a failed fetch, independent of any eager-showing
// attempt still in flight.
func (c *Controller) onLoadError(el *html.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, ok := c.reg.get(el)
	if !ok {
		return
	}
	info.Loading = false
	info.State = StateError
	el.RemoveClass(ClassLoading)
	el.AddClass(ClassError)
	c.reg.remove(el)
	c.fireHook(StateError, info.URL, el)
}

// applyInited runs the registration side effects: placeholder, class
// reset, and the hook.
func (c *Controller) applyInited(el *html.Node, info *ElementInfo) {
	applyPlaceholder(el, info.kind, info, c.opts.Placeholder)
	el.RemoveClass(ClassLoading)
	el.RemoveClass(ClassLoaded)
	el.RemoveClass(ClassError)
	el.AddClass(ClassInited)
	c.fireHook(StateInited, info.URL, el)
}

// buildInfo constructs a fresh info record for a newly tracked element.
func (c *Controller) buildInfo(el *html.Node) *ElementInfo {
	info := &ElementInfo{}
	if c.opts.InfoGetter != nil {
		if got := c.opts.InfoGetter(el); got != nil {
			*info = *got
		}
	}
	info.Loading = false
	info.State = StateInited
	info.kind = kindOf(el)
	return info
}

func (c *Controller) fireHook(state LifecycleState, url string, el *html.Node) {
	if c.opts.OnStateChange != nil {
		c.opts.OnStateChange(state, url, el, c)
	}
}

// resolve turns a descriptor into a concrete element list. Unmatched
// selectors and empty collections yield an empty list, never an error.
func (c *Controller) resolve(descriptor any) []*html.Node {
	switch d := descriptor.(type) {
	case nil:
		return nil
	case string:
		if d == "" || c.doc == nil {
			return nil
		}
		return css.QueryAll(c.doc.Root, d)
	case *html.Node:
		if d == nil {
			return nil
		}
		return []*html.Node{d}
	case []*html.Node:
		out := make([]*html.Node, 0, len(d))
		for _, el := range d {
			if el != nil {
				out = append(out, el)
			}
		}
		return out
	}
	return nil
}
