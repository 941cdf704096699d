package resource

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

type loadResult struct {
	started bool
	handle  *Handle
	loaded  bool
	failed  bool
}

// runLoad drives a Load call to completion and records the callback order.
func runLoad(t *testing.T, loader Loader, url string) loadResult {
	t.Helper()
	var res loadResult
	done := make(chan struct{})

	loader.Load(url, Callbacks{
		OnStart: func(_ string, h *Handle) {
			res.started = true
			res.handle = h
		},
		OnLoaded: func() {
			if res.failed {
				t.Error("OnLoaded after OnError")
			}
			res.loaded = true
			close(done)
		},
		OnError: func(err error) {
			if res.loaded {
				t.Error("OnError after OnLoaded")
			}
			res.failed = true
			close(done)
		},
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("load did not complete")
	}
	return res
}

func TestImageLoader_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes(t, 8, 5))
	}))
	defer srv.Close()

	loader := NewImageLoader(NewFetcher(srv.URL))
	res := runLoad(t, loader, srv.URL+"/photo.png")

	if !res.started {
		t.Error("expected OnStart before OnLoaded")
	}
	if !res.loaded {
		t.Fatal("expected OnLoaded")
	}
	if w, h := res.handle.NaturalSize(); w != 8 || h != 5 {
		t.Errorf("expected natural size 8x5, got %dx%d", w, h)
	}
	if !res.handle.Done() || res.handle.Failed() {
		t.Error("expected handle done without failure")
	}
	if res.handle.Image() == nil {
		t.Error("expected decoded image on handle")
	}
}

func TestImageLoader_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	loader := NewImageLoader(NewFetcher(srv.URL))
	res := runLoad(t, loader, srv.URL+"/missing.png")

	if !res.failed {
		t.Fatal("expected OnError for HTTP 404")
	}
	if res.started || res.loaded {
		t.Error("expected no OnStart/OnLoaded on fetch failure")
	}
}

func TestImageLoader_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	loader := NewImageLoader(NewFetcher(srv.URL))
	res := runLoad(t, loader, srv.URL+"/broken.png")

	if !res.failed {
		t.Fatal("expected OnError for undecodable body")
	}
}

func TestImageLoader_DataURL(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 3, 3))

	loader := NewImageLoader(NewFetcher(""))
	res := runLoad(t, loader, uri)

	if !res.loaded {
		t.Fatal("expected data URL to load without network")
	}
	if w, h := res.handle.NaturalSize(); w != 3 || h != 3 {
		t.Errorf("expected 3x3, got %dx%d", w, h)
	}
}

func TestDefaultFetcher_ResolvesRelative(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(pngBytes(t, 1, 1))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL + "/gallery/index.html")
	if _, _, err := f.Fetch("img/a.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/gallery/img/a.png" {
		t.Errorf("expected resolved path /gallery/img/a.png, got %s", gotPath)
	}
}

func TestDefaultFetcher_RejectsNonNetwork(t *testing.T) {
	f := NewFetcher("")
	if _, _, err := f.Fetch("file:///etc/passwd"); err == nil {
		t.Error("expected error for non-network URI")
	}
}
