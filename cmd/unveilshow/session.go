package main

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"unveil/pkg/event"
	"unveil/pkg/geom"
	"unveil/pkg/html"
	"unveil/pkg/lazy"
	"unveil/pkg/resource"
)

// pageSession ties one loaded page to the scroll view: a widget slot per
// lazy image, a controller watching the scroll offset, and a loader whose
// decoded images are painted back into the slots.
type pageSession struct {
	ctrl   *lazy.Controller
	events *event.Emitter
	scroll *container.Scroll
	status *widget.Label

	mu    sync.Mutex
	slots map[*html.Node]*canvas.Image
}

func newPageSession(url string, doc *html.Document, scroll *container.Scroll, body *fyne.Container, status *widget.Label) *pageSession {
	s := &pageSession{
		events: event.NewEmitter(),
		scroll: scroll,
		status: status,
		slots:  make(map[*html.Node]*canvas.Image),
	}

	var targets []*html.Node
	doc.Root.Walk(func(n *html.Node) bool {
		if _, ok := n.GetAttribute("data-src"); ok {
			targets = append(targets, n)
		}
		return false
	})

	body.RemoveAll()
	for _, el := range targets {
		slot := canvas.NewImageFromImage(blank())
		slot.FillMode = canvas.ImageFillContain
		slot.SetMinSize(fyne.NewSize(slotWidth, slotHeight))
		s.slots[el] = slot
		body.Add(slot)
	}
	body.Refresh()

	index := make(map[*html.Node]int, len(targets))
	for i, el := range targets {
		index[el] = i
	}

	loader := resource.NewImageLoader(resource.NewFetcher(url))
	s.ctrl = lazy.New(doc, targets,
		lazy.WithThreshold(slotHeight/2),
		lazy.WithEvents(s.events),
		lazy.WithVisibleArea(func() geom.Rect {
			off := scroll.Offset.Y
			return geom.Rect{
				Top:    float64(off),
				Left:   0,
				Right:  windowWidth,
				Bottom: float64(off) + windowHeight,
			}
		}),
		lazy.WithBounds(func(el *html.Node) (geom.Rect, bool) {
			i, ok := index[el]
			if !ok {
				return geom.Rect{}, false
			}
			return geom.NewRect(0, float64(i*slotHeight), slotWidth, slotHeight), true
		}),
		lazy.WithLoader(&paintingLoader{session: s, inner: loader}),
		lazy.WithOnStateChange(func(state lazy.LifecycleState, url string, el *html.Node, _ *lazy.Controller) {
			status.SetText(state.String() + " " + url)
		}),
	)

	scroll.OnScrolled = func(fyne.Position) {
		s.events.Emit("scroll")
	}
	return s
}

func (s *pageSession) close() {
	s.scroll.OnScrolled = nil
	s.ctrl.Destroy()
}

// paint draws the decoded image into the slot of every element whose
// pending fetch produced it.
func (s *pageSession) paint(url string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for el, slot := range s.slots {
		if src, _ := el.GetAttribute("data-src"); src == url {
			slot.Image = img
			slot.Refresh()
		}
	}
}

// paintingLoader chains the controller's callbacks with slot painting:
// on success the fetched image lands in the UI before the controller
// reconciles the lifecycle state.
type paintingLoader struct {
	session *pageSession
	inner   resource.Loader
}

func (l *paintingLoader) Load(url string, cb resource.Callbacks) {
	var handle *resource.Handle
	l.inner.Load(url, resource.Callbacks{
		OnStart: func(u string, h *resource.Handle) {
			handle = h
			if cb.OnStart != nil {
				cb.OnStart(u, h)
			}
		},
		OnLoaded: func() {
			if handle != nil {
				if img := handle.Image(); img != nil {
					l.session.paint(url, img)
				}
			}
			if cb.OnLoaded != nil {
				cb.OnLoaded()
			}
		},
		OnError: cb.OnError,
	})
}

// blank is the placeholder slot content before an image arrives.
func blank() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, slotWidth, slotHeight))
	grey := color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	for y := 0; y < slotHeight; y++ {
		for x := 0; x < slotWidth; x++ {
			img.Set(x, y, grey)
		}
	}
	return img
}
