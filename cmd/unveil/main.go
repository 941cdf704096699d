// Command unveil loads a page headlessly and lazy-loads its images by
// sweeping a virtual viewport down the document, logging each lifecycle
// transition. The input is a URL or a local HTML file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"unveil/pkg/event"
	"unveil/pkg/geom"
	"unveil/pkg/html"
	"unveil/pkg/js"
	"unveil/pkg/lazy"
	"unveil/pkg/resource"
	stdnet "unveil/std/net"
)

// rowHeight is the vertical slot each lazy element occupies in the
// simulated layout.
const rowHeight = 200.0

func main() {
	width := flag.Float64("w", 800, "viewport width in pixels")
	height := flag.Float64("h", 600, "viewport height in pixels")
	threshold := flag.Float64("threshold", 100, "extra distance around the viewport that counts as visible")
	interval := flag.Duration("interval", 200*time.Millisecond, "minimum delay between visibility passes")
	step := flag.Float64("step", 150, "scroll step per tick in pixels")
	scripts := flag.Bool("scripts", false, "execute page scripts instead of auto-registering img[data-src]")
	timeout := flag.Duration("timeout", 30*time.Second, "give up after this long")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: unveil [flags] <url-or-file>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	content, baseURL, err := readPage(input)
	if err != nil {
		logger.Error("read page", "input", input, "err", err)
		os.Exit(1)
	}

	doc, err := html.Parse(content)
	if err != nil {
		logger.Error("parse page", "input", input, "err", err)
		os.Exit(1)
	}

	targets := findTargets(doc)
	if len(targets) == 0 && !*scripts {
		logger.Info("no lazy elements found", "input", input)
		return
	}
	bounds := slotBounds(targets)
	contentHeight := float64(len(targets)) * rowHeight

	var scrollMu sync.Mutex
	scrollTop := 0.0

	events := event.NewEmitter()
	var settled atomic.Int64

	opts := []lazy.Option{
		lazy.WithThreshold(*threshold),
		lazy.WithInterval(*interval),
		lazy.WithEvents(events),
		lazy.WithBounds(bounds),
		lazy.WithVisibleArea(func() geom.Rect {
			scrollMu.Lock()
			defer scrollMu.Unlock()
			return geom.Rect{Top: scrollTop, Left: 0, Right: *width, Bottom: scrollTop + *height}
		}),
		lazy.WithLoader(resource.NewImageLoader(resource.NewFetcher(baseURL))),
		lazy.WithOnStateChange(func(state lazy.LifecycleState, url string, el *html.Node, _ *lazy.Controller) {
			logger.Info("state change", "state", state.String(), "url", url, "tag", el.TagName)
			if state == lazy.StateLoaded || state == lazy.StateError {
				settled.Add(1)
			}
		}),
	}

	if *scripts {
		engine := js.New(opts...)
		if err := engine.Execute(doc); err != nil {
			logger.Error("run scripts", "err", err)
			os.Exit(1)
		}
		defer engine.Close()
	} else {
		ctrl := lazy.New(doc, targets, opts...)
		defer ctrl.Destroy()
	}

	// Sweep the viewport down the document, letting the throttled
	// scroll handling pick elements up as they enter the active area.
	ticker := time.NewTicker(*interval / 4)
	defer ticker.Stop()
	deadline := time.After(*timeout)
	for {
		if int(settled.Load()) >= len(targets) {
			logger.Info("all elements settled", "count", len(targets))
			return
		}
		select {
		case <-deadline:
			logger.Error("timed out waiting for loads", "settled", settled.Load(), "total", len(targets))
			os.Exit(1)
		case <-ticker.C:
			scrollMu.Lock()
			if scrollTop < contentHeight {
				scrollTop += *step
			}
			scrollMu.Unlock()
			events.Emit("scroll")
		}
	}
}

// readPage fetches a network URL or reads a local file, returning the
// content and the base URL relative resources resolve against.
func readPage(input string) (string, string, error) {
	if stdnet.IsNetworkURL(input) {
		body, _, err := stdnet.Fetch(input)
		if err != nil {
			return "", "", err
		}
		return string(body), input, nil
	}
	body, err := os.ReadFile(input)
	if err != nil {
		return "", "", err
	}
	return string(body), "", nil
}

// findTargets collects every element carrying a data-src attribute, in
// document order.
func findTargets(doc *html.Document) []*html.Node {
	var targets []*html.Node
	doc.Root.Walk(func(n *html.Node) bool {
		if _, ok := n.GetAttribute("data-src"); ok {
			targets = append(targets, n)
		}
		return false
	})
	return targets
}

// slotBounds lays the targets out as a single column of fixed-height rows.
func slotBounds(targets []*html.Node) func(*html.Node) (geom.Rect, bool) {
	index := make(map[*html.Node]int, len(targets))
	for i, el := range targets {
		index[el] = i
	}
	return func(el *html.Node) (geom.Rect, bool) {
		i, ok := index[el]
		if !ok {
			return geom.Rect{}, false
		}
		return geom.NewRect(0, float64(i)*rowHeight, rowHeight*2, rowHeight-10), true
	}
}
