package resource

import (
	"image"
	"sync"

	"unveil/pkg/images"
)

// Handle exposes what is currently known about an image fetch in flight.
// The natural size becomes available ahead of the full decode, so callers
// polling the handle can show the image early.
type Handle struct {
	mu            sync.Mutex
	naturalWidth  int
	naturalHeight int
	img           image.Image
	done          bool
	failed        bool
}

// NaturalSize returns the intrinsic dimensions, or zeros if the size is
// not yet known.
func (h *Handle) NaturalSize() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.naturalWidth, h.naturalHeight
}

// Done reports whether the fetch completed successfully.
func (h *Handle) Done() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// Failed reports whether the fetch ended in an error.
func (h *Handle) Failed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failed
}

// Image returns the decoded image once Done, nil before that.
func (h *Handle) Image() image.Image {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.img
}

// NewHandle creates an empty handle. Loader implementations use the Mark
// methods to publish progress to pollers.
func NewHandle() *Handle {
	return &Handle{}
}

// MarkSize records the intrinsic dimensions.
func (h *Handle) MarkSize(w, hgt int) {
	h.mu.Lock()
	h.naturalWidth, h.naturalHeight = w, hgt
	h.mu.Unlock()
}

// MarkLoaded records the decoded image and flags the handle done.
func (h *Handle) MarkLoaded(img image.Image) {
	h.mu.Lock()
	h.img = img
	h.done = true
	h.mu.Unlock()
}

// MarkFailed flags the handle as failed.
func (h *Handle) MarkFailed() {
	h.mu.Lock()
	h.failed = true
	h.mu.Unlock()
}

// Callbacks receive the outcome of an asynchronous image fetch.
// OnStart is best-effort and fires once the intrinsic size is known,
// before the full decode; afterwards exactly one of OnLoaded or OnError
// fires. Any callback may be nil.
type Callbacks struct {
	OnStart  func(url string, h *Handle)
	OnLoaded func()
	OnError  func(err error)
}

// Loader begins asynchronous image fetches. Implementations must invoke
// the callbacks in the order start → (loaded xor error) and must not
// invoke any callback twice.
type Loader interface {
	Load(url string, cb Callbacks)
}

// ImageLoader fetches image bytes through a Fetcher and decodes them.
// Data URLs are decoded inline without touching the network.
type ImageLoader struct {
	fetcher Fetcher
}

// NewImageLoader creates an ImageLoader over the given fetcher.
func NewImageLoader(f Fetcher) *ImageLoader {
	return &ImageLoader{fetcher: f}
}

// Load fetches and decodes the image at url on its own goroutine.
func (l *ImageLoader) Load(url string, cb Callbacks) {
	go func() {
		handle := NewHandle()

		var data []byte
		var err error
		if images.IsDataURL(url) {
			data, err = images.DecodeDataURL(url)
		} else {
			data, _, err = l.fetcher.Fetch(url)
		}
		if err != nil {
			handle.MarkFailed()
			if cb.OnError != nil {
				cb.OnError(err)
			}
			return
		}

		// Size probe failing is not fatal: the full decode below gives
		// the authoritative result.
		if w, h, perr := images.ProbeSize(data); perr == nil {
			handle.MarkSize(w, h)
			if cb.OnStart != nil {
				cb.OnStart(url, handle)
			}
		}

		img, err := images.Decode(data)
		if err != nil {
			handle.MarkFailed()
			if cb.OnError != nil {
				cb.OnError(err)
			}
			return
		}

		handle.MarkLoaded(img)
		if cb.OnLoaded != nil {
			cb.OnLoaded()
		}
	}()
}
