package lazy

import (
	"fmt"

	"unveil/pkg/html"
)

// LifecycleState is the per-element loading lifecycle. It only ever moves
// forward along Inited → Loading → (Loaded | Error); no state is revisited.
type LifecycleState int

const (
	StateInited LifecycleState = iota
	StateLoading
	StateLoaded
	StateError
)

func (s LifecycleState) String() string {
	switch s {
	case StateInited:
		return "inited"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Presentation classes applied to elements as they move through the
// lifecycle.
const (
	ClassInited  = "lazy-inited"
	ClassLoading = "lazy-loading"
	ClassLoaded  = "lazy-loaded"
	ClassError   = "lazy-error"
)

// ElementInfo is the metadata record the registry attaches to a tracked
// element. It is owned by the registry for the element's tracked lifetime
// and never shared across elements.
type ElementInfo struct {
	URL     string
	Width   int
	Height  int
	Loading bool
	State   LifecycleState
	Extra   map[string]any

	kind targetKind
}

// targetKind distinguishes how the final URL lands on an element, decided
// once at registration.
type targetKind int

const (
	targetImage      targetKind = iota // <img>: URL goes to the src attribute
	targetBackground                   // anything else: URL becomes a background image
)

func kindOf(el *html.Node) targetKind {
	if el.TagName == "img" {
		return targetImage
	}
	return targetBackground
}

// applyFinalURL puts the fully loaded URL onto the element.
func applyFinalURL(el *html.Node, kind targetKind, url string) {
	switch kind {
	case targetImage:
		el.SetAttribute("src", url)
	case targetBackground:
		el.SetAttribute("style", backgroundStyle(url))
	}
}

// applyEagerURL shows the URL as soon as the intrinsic size is known.
// For images the src is cleared before being reset, forcing a repaint in
// renderers that cache a previously failed attempt. Background targets
// wait for the full load.
func applyEagerURL(el *html.Node, kind targetKind, url string) {
	if kind != targetImage {
		return
	}
	el.RemoveAttribute("src")
	el.SetAttribute("src", url)
}

// applyPlaceholder reserves layout space with a generated placeholder
// sized from the info record.
func applyPlaceholder(el *html.Node, kind targetKind, info *ElementInfo, generate func(w, h int) string) {
	if generate == nil {
		return
	}
	data := generate(info.Width, info.Height)
	if data == "" {
		return
	}
	switch kind {
	case targetImage:
		el.SetAttribute("src", data)
	case targetBackground:
		el.SetAttribute("style", backgroundStyle(data))
	}
}

func backgroundStyle(url string) string {
	return fmt.Sprintf("background-image:url('%s')", url)
}
