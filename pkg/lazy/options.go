package lazy

import (
	"strconv"
	"time"

	"unveil/pkg/event"
	"unveil/pkg/geom"
	"unveil/pkg/html"
	"unveil/pkg/images"
	"unveil/pkg/resource"
)

// Options configures a Controller. Construction applies Option values over
// the defaults; SetOptions applies further values over the current state,
// so repeated partial calls are cumulative.
type Options struct {
	// Threshold expands the active area by this many pixels on every
	// side. Negative values shrink it.
	Threshold float64
	// Interval is the rate-limit window for scroll/resize handling.
	Interval time.Duration
	// Debounce selects debouncing instead of throttling.
	Debounce bool
	// Reactive controls whether scroll/resize listeners are attached
	// at all.
	Reactive bool
	// EagerShowing shows an image as soon as its intrinsic size is
	// known, ahead of the full decode.
	EagerShowing bool

	// InfoGetter extracts the initial info record from an element.
	InfoGetter func(el *html.Node) *ElementInfo
	// VisibleAreaGetter overrides the viewport-derived visible area.
	// The threshold is still applied on top of it.
	VisibleAreaGetter func() geom.Rect
	// OnStateChange is invoked on every lifecycle transition. It runs
	// with the controller lock held and must not call back into the
	// controller; panics propagate to whatever triggered the transition.
	OnStateChange func(state LifecycleState, url string, el *html.Node, ctrl *Controller)

	// Viewport reports the current viewport size. Ignored when
	// VisibleAreaGetter is set.
	Viewport func() (width, height float64)
	// BoundsOf reports an element's bounding box. Elements without a
	// known box never intersect the active area.
	BoundsOf func(el *html.Node) (geom.Rect, bool)
	// Events supplies the scroll and resize events.
	Events *event.Emitter
	// Loader is the asynchronous image-fetch primitive.
	Loader resource.Loader
	// Placeholder produces the inline placeholder for a pixel size.
	Placeholder func(width, height int) string
}

func defaultOptions() Options {
	return Options{
		Interval:    200 * time.Millisecond,
		Reactive:    true,
		InfoGetter:  InfoFromDataAttributes,
		Loader:      resource.NewImageLoader(resource.NewFetcher("")),
		Placeholder: images.Placeholder,
	}
}

// Option mutates an Options value. Applying none keeps the defaults.
type Option func(*Options)

func WithThreshold(px float64) Option {
	return func(o *Options) { o.Threshold = px }
}

func WithInterval(d time.Duration) Option {
	return func(o *Options) { o.Interval = d }
}

func WithDebounce(debounce bool) Option {
	return func(o *Options) { o.Debounce = debounce }
}

func WithReactive(reactive bool) Option {
	return func(o *Options) { o.Reactive = reactive }
}

func WithEagerShowing(eager bool) Option {
	return func(o *Options) { o.EagerShowing = eager }
}

func WithInfoGetter(fn func(*html.Node) *ElementInfo) Option {
	return func(o *Options) { o.InfoGetter = fn }
}

func WithVisibleArea(fn func() geom.Rect) Option {
	return func(o *Options) { o.VisibleAreaGetter = fn }
}

func WithOnStateChange(fn func(LifecycleState, string, *html.Node, *Controller)) Option {
	return func(o *Options) { o.OnStateChange = fn }
}

func WithViewport(fn func() (float64, float64)) Option {
	return func(o *Options) { o.Viewport = fn }
}

func WithBounds(fn func(*html.Node) (geom.Rect, bool)) Option {
	return func(o *Options) { o.BoundsOf = fn }
}

func WithEvents(e *event.Emitter) Option {
	return func(o *Options) { o.Events = e }
}

func WithLoader(l resource.Loader) Option {
	return func(o *Options) { o.Loader = l }
}

func WithPlaceholder(fn func(int, int) string) Option {
	return func(o *Options) { o.Placeholder = fn }
}

// InfoFromDataAttributes is the default InfoGetter: the URL comes from
// data-src and the placeholder size from data-width/data-height.
func InfoFromDataAttributes(el *html.Node) *ElementInfo {
	info := &ElementInfo{}
	if src, ok := el.GetAttribute("data-src"); ok {
		info.URL = src
	}
	if w, ok := el.GetAttribute("data-width"); ok {
		if n, err := strconv.Atoi(w); err == nil {
			info.Width = n
		}
	}
	if h, ok := el.GetAttribute("data-height"); ok {
		if n, err := strconv.Atoi(h); err == nil {
			info.Height = n
		}
	}
	return info
}
